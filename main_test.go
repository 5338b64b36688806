package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mcncl/jsontodart/internal/config"
	"github.com/mcncl/jsontodart/internal/errors"
	"github.com/mcncl/jsontodart/internal/fetch"
	"github.com/mcncl/jsontodart/internal/output"
	"github.com/mcncl/jsontodart/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConfirmer struct {
	answer bool
	asked  int
}

func (s *stubConfirmer) ConfirmOverwrite(string) (bool, error) {
	s.asked++
	return s.answer, nil
}

// testApp returns an app with captured output and a private settings store.
func testApp(t *testing.T, cfg *config.Config) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	if cfg == nil {
		cfg = config.NewConfig()
	}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &App{
		Config: cfg,
		Stdin:  strings.NewReader(""),
		Stdout: stdout,
		Stderr: stderr,
		Store:  settings.NewStoreAt(filepath.Join(t.TempDir(), "settings.yml")),
		Fetcher: fetch.NewClient(fetch.Options{
			RetryMax:     1,
			RetryWaitMin: time.Millisecond,
			RetryWaitMax: time.Millisecond,
			Logger:       logger,
		}),
		Logger: logger,
	}, stdout, stderr
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_SimpleJSON(t *testing.T) {
	// Save original CLI state
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTemp(t, "input.json", `{"name": "John", "age": 30, "active": true}`)

	cfg := config.NewConfig()
	cfg.RootName = "Person"
	app, stdout, _ := testApp(t, cfg)

	result, err := run(context.Background(), app)
	require.NoError(t, err)
	assert.True(t, result.Written)
	assert.Empty(t, result.Path)

	code := stdout.String()
	assert.Contains(t, code, "part 'person.g.dart';")
	assert.Contains(t, code, "class Person {")
	assert.Contains(t, code, "  final String name;\n")
	assert.Contains(t, code, "  final int age;\n")
	assert.Contains(t, code, "  final bool active;\n")
}

func TestRun_WithOutputFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTemp(t, "input.json", `{"id": 1, "email": "test@example.com"}`)
	CLI.Output = filepath.Join(t.TempDir(), "user.dart")

	cfg := config.NewConfig()
	cfg.RootName = "User"
	cfg.Serialization = config.SerializationManual
	app, stdout, stderr := testApp(t, cfg)

	_, err := run(context.Background(), app)
	require.NoError(t, err)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Generated Dart code written to "+CLI.Output)

	content, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	code := string(content)
	assert.Contains(t, code, "class User {")
	assert.Contains(t, code, "factory User.fromJson(Map<String, dynamic> json) {")
	assert.Contains(t, code, "'email': email,")
}

func TestRun_OutputDirectory(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	dir := t.TempDir()
	CLI.Input = writeTemp(t, "input.json", `{"id": 1}`)
	CLI.Output = dir

	cfg := config.NewConfig()
	cfg.RootName = "OrderLine"
	app, _, _ := testApp(t, cfg)

	result, err := run(context.Background(), app)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "order_line.dart"), result.Path)
	assert.FileExists(t, result.Path)
}

func TestRun_InvalidJSON(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTemp(t, "input.json", `{"invalid": json}`)
	app, stdout, _ := testApp(t, nil)

	_, err := run(context.Background(), app)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
	assert.Empty(t, stdout.String())
}

func TestRun_RemembersSettings(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTemp(t, "input.json", `{"a": 1}`)

	cfg := config.NewConfig()
	cfg.RootName = "Payload"
	cfg.Serialization = config.SerializationManual
	cfg.Sort = true
	app, _, _ := testApp(t, cfg)

	_, err := run(context.Background(), app)
	require.NoError(t, err)

	remembered, err := app.Store.Load()
	require.NoError(t, err)
	require.NotNil(t, remembered)
	assert.Equal(t, config.SerializationManual, remembered.Serialization)
	assert.True(t, remembered.Sort)

	next, err := config.LoadConfigWithCLI("", remembered, config.CLIOverrides{})
	require.NoError(t, err)
	assert.Equal(t, config.DefaultRootName, next.RootName)
}

func TestRun_NoRemember(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTemp(t, "input.json", `{"a": 1}`)
	CLI.NoRemember = true
	app, _, _ := testApp(t, nil)

	_, err := run(context.Background(), app)
	require.NoError(t, err)

	remembered, err := app.Store.Load()
	require.NoError(t, err)
	assert.Nil(t, remembered)
}

func TestRun_FailedGenerationIsNotRemembered(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTemp(t, "input.json", `{not json`)
	app, _, _ := testApp(t, nil)

	_, err := run(context.Background(), app)
	require.Error(t, err)

	remembered, err := app.Store.Load()
	require.NoError(t, err)
	assert.Nil(t, remembered)
}

func TestRun_OverwriteDeclined(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTemp(t, "input.json", `{"a": 1}`)
	CLI.Output = writeTemp(t, "root.dart", "// keep me\n")

	confirm := &stubConfirmer{answer: false}
	app, _, _ := testApp(t, nil)
	app.Confirm = confirm

	_, err := run(context.Background(), app)
	require.Error(t, err)
	assert.True(t, output.IsDeclined(err))
	assert.Equal(t, 1, confirm.asked)

	content, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, "// keep me\n", string(content))
}

func TestRun_ForceSkipsConfirmation(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTemp(t, "input.json", `{"a": 1}`)
	CLI.Output = writeTemp(t, "root.dart", "// old\n")
	CLI.Force = true

	confirm := &stubConfirmer{}
	app, _, _ := testApp(t, nil)
	app.Confirm = confirm

	_, err := run(context.Background(), app)
	require.NoError(t, err)
	assert.Zero(t, confirm.asked)

	content, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "class Root {")
}

func TestReadInput_FromFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTemp(t, "input.json", `{"user": {"name": "Alice", "id": 42}}`)
	app, _, _ := testApp(t, nil)

	text, err := readInput(context.Background(), app)
	require.NoError(t, err)
	assert.Equal(t, `{"user": {"name": "Alice", "id": 42}}`, text)
}

func TestReadInput_FromStdin(t *testing.T) {
	originalCLI := CLI
	originalStdin := os.Stdin
	defer func() {
		CLI = originalCLI
		os.Stdin = originalStdin
	}()

	// Clear input file to force stdin reading
	CLI.Input = ""

	// Create a pipe to simulate stdin
	jsonData := `[{"item": "apple"}, {"item": "banana"}]`
	r, w, err := os.Pipe()
	require.NoError(t, err)
	go func() {
		defer func() { _ = w.Close() }()
		_, _ = w.WriteString(jsonData)
	}()
	defer func() { _ = r.Close() }()

	app, _, _ := testApp(t, nil)
	app.Stdin = r

	text, err := readInput(context.Background(), app)
	require.NoError(t, err)
	assert.Equal(t, jsonData, text)
}

func TestReadInput_EmptyStdin(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = ""
	app, _, _ := testApp(t, nil)
	app.Stdin = strings.NewReader("  \n")

	_, err := readInput(context.Background(), app)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrEmptyInput)
}

func TestReadInput_EmptyFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTemp(t, "empty.json", "")
	app, _, _ := testApp(t, nil)

	_, err := readInput(context.Background(), app)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestReadInput_NonExistentFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = "/non/existent/file.json"
	app, _, _ := testApp(t, nil)

	_, err := readInput(context.Background(), app)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestReadInput_ConflictingInputAndURL(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = "/some/file.json"
	CLI.URL = "https://example.com/api"
	app, _, _ := testApp(t, nil)

	_, err := readInput(context.Background(), app)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConflictingInput)
	assert.Contains(t, err.Error(), "cannot specify both --input and --url")
}

func TestReadInput_FromURL(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 7, "tags": ["a"]}`))
	}))
	defer server.Close()

	CLI.URL = server.URL
	cfg := config.NewConfig()
	cfg.RootName = "Remote"
	app, stdout, _ := testApp(t, cfg)

	_, err := run(context.Background(), app)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "class Remote {")
	assert.Contains(t, stdout.String(), "  final List<String> tags;\n")
}

func TestReadInput_InvalidURLScheme(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = ""
	app, _, _ := testApp(t, nil)

	tests := []struct {
		name string
		url  string
	}{
		{"ftp scheme", "ftp://example.com/data.json"},
		{"file scheme", "file:///path/to/file.json"},
		{"no scheme", "example.com/api"},
		{"invalid scheme", "notascheme://example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			CLI.URL = tt.url
			_, err := readInput(context.Background(), app)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid URL")
		})
	}
}

func TestOverrides(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.RootName = "  Order  "
	CLI.Serialization = "custom"
	CLI.PropertyAnnotation = "@Field('%s')"
	CLI.NoFormat = true
	CLI.Sort = true

	cfg, err := config.LoadConfigWithCLI("", &config.Settings{Serialization: config.SerializationManual}, overrides())
	require.NoError(t, err)
	assert.Equal(t, "Order", cfg.RootName)
	assert.Equal(t, config.SerializationCustom, cfg.Serialization, "flags beat remembered settings")
	assert.Equal(t, "@Field('%s')", cfg.Custom.PropertyAnnotation)
	assert.False(t, cfg.Formatting.Enabled)
	assert.True(t, cfg.Sort)
}

func TestOverrides_InvalidValue(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Nullability = "sometimes"

	_, err := config.LoadConfigWithCLI("", nil, overrides())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown nullability")
}

func TestWatch_RequiresInput(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = ""
	app, _, _ := testApp(t, nil)

	err := watch(context.Background(), app)
	require.Error(t, err)
	assert.Contains(t, errors.UserFriendlyError(err), "--watch needs an input file")
}

func TestWatch_RegeneratesOnChange(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTemp(t, "input.json", `{"a": 1}`)
	CLI.Output = filepath.Join(t.TempDir(), "root.dart")

	app, _, _ := testApp(t, nil)
	app.Confirm = &stubConfirmer{answer: false}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watch(ctx, app) }()

	require.Eventually(t, func() bool {
		content, err := os.ReadFile(CLI.Output)
		return err == nil && strings.Contains(string(content), "final int a;")
	}, 3*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(CLI.Input, []byte(`{"a": 1, "b": "x"}`), 0o644))

	require.Eventually(t, func() bool {
		content, err := os.ReadFile(CLI.Output)
		return err == nil && strings.Contains(string(content), "final String b;")
	}, 3*time.Second, 20*time.Millisecond, "later changes overwrite the file without asking")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(strings.NewReader("{}")))

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer func() { _ = r.Close(); _ = w.Close() }()
	assert.False(t, isTerminal(r))
}
