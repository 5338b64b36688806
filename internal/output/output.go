// Package output writes generated Dart code to stdout, a file or a directory.
package output

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcncl/jsontodart/internal/errors"
	"github.com/mcncl/jsontodart/internal/naming"
)

// Confirmer asks whether an existing file may be replaced.
type Confirmer interface {
	ConfirmOverwrite(path string) (bool, error)
}

// Result describes where the code went.
type Result struct {
	// Path is empty when the code was written to stdout.
	Path    string
	Written bool
}

// Writer delivers generated code. Without a Confirmer existing files are
// replaced, matching non-interactive use.
type Writer struct {
	Stdout  io.Writer
	Force   bool
	Confirm Confirmer
	logger  *slog.Logger
}

// NewWriter creates a writer that prints to stdout when no target is given.
func NewWriter(stdout io.Writer, confirm Confirmer) *Writer {
	return &Writer{
		Stdout:  stdout,
		Confirm: confirm,
		logger:  slog.Default().With("component", "output"),
	}
}

// Resolve maps an output target to a file path. A directory target, either
// existing or written with a trailing separator, gets <snake_case(root)>.dart.
func Resolve(target, rootName string) string {
	if target == "" {
		return ""
	}
	fileName := naming.FileStem(rootName) + ".dart"
	if strings.HasSuffix(target, string(filepath.Separator)) || strings.HasSuffix(target, "/") {
		return filepath.Join(target, fileName)
	}
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return filepath.Join(target, fileName)
	}
	return target
}

// Write sends code to target. Declining an overwrite returns an output error
// wrapping ErrOverwriteDeclined and leaves the file untouched.
func (w *Writer) Write(target, rootName, code string) (Result, error) {
	if !strings.HasSuffix(code, "\n") {
		code += "\n"
	}

	path := Resolve(target, rootName)
	if path == "" {
		if _, err := io.WriteString(w.Stdout, code); err != nil {
			return Result{}, errors.NewOutputError("failed to write to stdout", err)
		}
		return Result{Written: true}, nil
	}

	exists, err := fileExists(path)
	if err != nil {
		return Result{Path: path}, errors.NewOutputError(fmt.Sprintf("failed to inspect '%s'", path), err)
	}
	if exists && !w.Force && w.Confirm != nil {
		ok, err := w.Confirm.ConfirmOverwrite(path)
		if err != nil {
			return Result{Path: path}, errors.NewOutputError("failed to confirm overwrite", err)
		}
		if !ok {
			w.logger.Debug("overwrite declined", "path", path)
			return Result{Path: path}, errors.NewOutputError(fmt.Sprintf("'%s' already exists", path), errors.ErrOverwriteDeclined)
		}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Result{Path: path}, errors.NewOutputError(fmt.Sprintf("failed to create directory '%s'", dir), err)
		}
	}
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		return Result{Path: path}, errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
	}
	w.logger.Debug("wrote output", "path", path, "bytes", len(code))
	return Result{Path: path, Written: true}, nil
}

// IsDeclined reports whether err came from a declined overwrite.
func IsDeclined(err error) bool {
	return stderrors.Is(err, errors.ErrOverwriteDeclined)
}

func fileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, fmt.Errorf("'%s' is a directory", path)
	}
	return true, nil
}
