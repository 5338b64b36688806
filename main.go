package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/carlmjohnson/versioninfo"
	"github.com/charmbracelet/huh"
	"github.com/mcncl/jsontodart/internal/config"
	"github.com/mcncl/jsontodart/internal/engine"
	"github.com/mcncl/jsontodart/internal/errors"
	"github.com/mcncl/jsontodart/internal/fetch"
	"github.com/mcncl/jsontodart/internal/logging"
	"github.com/mcncl/jsontodart/internal/output"
	"github.com/mcncl/jsontodart/internal/parser"
	"github.com/mcncl/jsontodart/internal/prompts"
	"github.com/mcncl/jsontodart/internal/settings"
	"github.com/mcncl/jsontodart/internal/watcher"
)

// CLI defines the command-line interface
var CLI struct {
	Input              string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	URL                string `help:"URL to fetch JSON from." short:"u" name:"url"`
	Output             string `help:"Output Dart file or directory. If not specified, writes to stdout." short:"o" type:"path"`
	RootName           string `help:"Name for the root class (default Root)." short:"r" name:"root-name"`
	Serialization      string `help:"Serialization style: json_serializable, manual or custom." short:"s"`
	Nullability        string `help:"Field nullability: auto, nullable or non-nullable." short:"n"`
	DefaultValue       string `help:"Fallback values for non-nullable fields: none, non-null or null." name:"default-value"`
	Naming             string `help:"Field naming: camelCase, snake_case or PascalCase."`
	Sort               bool   `help:"Sort fields alphabetically."`
	JSONAnnotation     bool   `help:"Import json_annotation with the manual and custom styles." name:"json-annotation"`
	CustomImport       string `help:"Import line for the custom style." name:"custom-import"`
	ClassAnnotation    string `help:"Class annotation for the custom style." name:"class-annotation"`
	PropertyAnnotation string `help:"Property annotation for the custom style; %s is replaced with the JSON key." name:"property-annotation"`
	Config             string `help:"Path to a .jsontodart.yml config file. Discovered from the working directory when omitted." short:"c" type:"path"`
	NoFormat           bool   `help:"Skip output normalisation." name:"no-format"`
	Force              bool   `help:"Overwrite existing output files without asking."`
	Watch              bool   `help:"Regenerate whenever the input file changes." short:"w"`
	NoRemember         bool   `help:"Do not save these settings as the defaults for the next run." name:"no-remember"`
	Debug              bool   `help:"Enable debug logging." short:"d"`
	Version            bool   `help:"Show version information." short:"v"`
	Interactive        bool   `help:"Fill in the class name, JSON and settings in a form." short:"I"`
}

// App holds the runtime collaborators of one invocation
type App struct {
	Config  *config.Config
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Store   *settings.Store
	Fetcher *fetch.Client
	Confirm output.Confirmer
	Logger  *slog.Logger

	force bool
}

func main() {
	// Parse CLI arguments with Kong
	cli := kong.Must(&CLI,
		kong.Name("jsontodart"),
		kong.Description("A tool to convert JSON to Dart data classes"),
		kong.UsageOnError(),
	)

	if _, err := cli.Parse(os.Args[1:]); err != nil {
		// The usage has already been shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("jsontodart version %s\n", versioninfo.Short())
		return
	}

	// No arguments on a terminal opens the form
	interactive := CLI.Interactive || len(os.Args) == 1

	app, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case CLI.Watch:
		err = watch(ctx, app)
	case interactive && isTerminal(app.Stdin) && CLI.Input == "" && CLI.URL == "":
		err = runInteractive(app)
	default:
		_, err = run(ctx, app)
	}

	if output.IsDeclined(err) {
		prompts.PrintWarning(os.Stderr, errors.UserFriendlyError(err)+", kept the existing file")
		return
	}
	if err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsontodart --help\n")
		stop()
		os.Exit(1)
	}
}

// newApp loads the effective configuration and wires the collaborators.
func newApp() (*App, error) {
	store, storeErr := settings.NewStore()

	var remembered *config.Settings
	var loadErr error
	if store != nil {
		remembered, loadErr = store.Load()
	}

	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg, err := config.LoadConfigWithCLI(configPath, remembered, overrides())
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to load configuration: %v", err), err)
	}

	logger := logging.Setup(os.Stderr, cfg.Dev.Debug)
	if storeErr != nil {
		logger.Warn("settings will not be remembered", "error", storeErr)
	}
	if loadErr != nil {
		logger.Warn("ignoring remembered settings", "error", loadErr)
	}
	if configPath != "" {
		logger.Debug("loaded config file", "path", configPath)
	}

	app := &App{
		Config:  cfg,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Store:   store,
		Fetcher: fetch.NewClient(fetch.Options{Logger: logger}),
		Logger:  logger,
	}
	if isTerminal(os.Stdin) {
		app.Confirm = prompts.OverwriteConfirmer{}
	}
	return app, nil
}

// overrides collects the flags that take precedence over config files.
func overrides() config.CLIOverrides {
	return config.CLIOverrides{
		RootName:           strings.TrimSpace(CLI.RootName),
		Serialization:      CLI.Serialization,
		Nullability:        CLI.Nullability,
		DefaultValue:       CLI.DefaultValue,
		Naming:             CLI.Naming,
		Sort:               CLI.Sort,
		UseJSONAnnotation:  CLI.JSONAnnotation,
		CustomImport:       CLI.CustomImport,
		ClassAnnotation:    CLI.ClassAnnotation,
		PropertyAnnotation: CLI.PropertyAnnotation,
		NoFormat:           CLI.NoFormat,
		Debug:              CLI.Debug,
	}
}

// run executes the main program logic
func run(ctx context.Context, app *App) (output.Result, error) {
	jsonText, err := readInput(ctx, app)
	if err != nil {
		return output.Result{}, err
	}
	return generate(app, jsonText)
}

// generate turns JSON text into Dart code and delivers it.
func generate(app *App, jsonText string) (output.Result, error) {
	code, err := engine.Generate(jsonText, app.Config.RootName, app.Config)
	if err != nil {
		return output.Result{}, err
	}
	remember(app)

	writer := output.NewWriter(app.Stdout, app.Confirm)
	writer.Force = CLI.Force || app.force
	result, err := writer.Write(CLI.Output, app.Config.RootName, code)
	if err != nil {
		return result, err
	}
	if result.Path != "" {
		fmt.Fprintf(app.Stderr, "Generated Dart code written to %s\n", result.Path)
	}
	return result, nil
}

// remember stores the settings of a successful generation for the next run.
func remember(app *App) {
	if CLI.NoRemember || app.Store == nil {
		return
	}
	if err := app.Store.Save(app.Config.Settings()); err != nil {
		app.logger().Warn("failed to remember settings", "error", err)
		return
	}
	app.logger().Debug("remembered settings", "path", app.Store.Path())
}

// readInput reads JSON from a file, a URL or stdin
func readInput(ctx context.Context, app *App) (string, error) {
	if CLI.Input != "" && CLI.URL != "" {
		return "", errors.NewInputError("cannot specify both --input and --url", errors.ErrConflictingInput)
	}

	if CLI.Input != "" {
		return parser.ReadFile(CLI.Input)
	}

	if CLI.URL != "" {
		fetcher := app.Fetcher
		if fetcher == nil {
			fetcher = fetch.NewClient(fetch.Options{Logger: app.logger()})
		}
		return fetcher.Fetch(ctx, CLI.URL)
	}

	if isTerminal(app.Stdin) {
		// No data provided on stdin
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Read from stdin (piped input)
	jsonData, err := io.ReadAll(app.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	if len(strings.TrimSpace(string(jsonData))) == 0 {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return string(jsonData), nil
}

// runInteractive collects the class name, JSON and settings in a form,
// generates, and prints a summary.
func runInteractive(app *App) error {
	in := prompts.GenerateInput{
		ClassName: app.Config.RootName,
		Settings:  app.Config.Settings(),
	}

	err := prompts.RunGenerateForm(&in)
	if stderrors.Is(err, huh.ErrUserAborted) {
		return nil
	}
	if err != nil {
		return errors.NewInputError("interactive form failed", err)
	}

	app.Config.RootName = in.ClassName
	app.Config.ApplySettings(in.Settings)
	if err := app.Config.Validate(); err != nil {
		return errors.NewConfigError("invalid settings", err)
	}

	result, err := generate(app, in.JSON)
	if err != nil {
		return err
	}
	prompts.PrintResult(app.Stderr, prompts.Summary(app.Config.RootName, result.Path, app.Config), "Dart classes generated")
	return nil
}

// watch regenerates on every change of the input file until ctx is done.
func watch(ctx context.Context, app *App) error {
	if CLI.Input == "" {
		return errors.NewConfigError("--watch needs an input file given with --input", nil)
	}

	w, err := watcher.New(CLI.Input, watcher.Options{Logger: app.logger()})
	if err != nil {
		return errors.NewInputError(fmt.Sprintf("failed to watch '%s'", CLI.Input), err)
	}

	regenerate := func() {
		result, err := run(ctx, app)
		if err != nil {
			fmt.Fprintf(app.Stderr, "%s\n", errors.UserFriendlyError(err))
			return
		}
		// Later changes replace the file we wrote without asking again
		if result.Written {
			app.force = true
		}
	}

	regenerate()
	fmt.Fprintf(app.Stderr, "Watching %s for changes (Ctrl+C to stop)\n", CLI.Input)
	return w.Run(ctx, func(event watcher.Event) {
		app.logger().Debug("regenerating", "op", event.Op.String())
		regenerate()
	})
}

func (app *App) logger() *slog.Logger {
	if app.Logger != nil {
		return app.Logger
	}
	return slog.Default()
}

// isTerminal reports whether r is an interactive terminal
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
