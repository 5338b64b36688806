// Package engine turns JSON text into Dart data classes in a single call.
package engine

import (
	"log/slog"

	"github.com/mcncl/jsontodart/internal/analyzer"
	"github.com/mcncl/jsontodart/internal/config"
	"github.com/mcncl/jsontodart/internal/errors"
	"github.com/mcncl/jsontodart/internal/formatter"
	"github.com/mcncl/jsontodart/internal/generator"
	"github.com/mcncl/jsontodart/internal/parser"
)

// Generate infers classes from jsonText and renders them as Dart source.
// A root array is treated as a set of samples of the root class.
//
// The only failure is an Invalid-Input error for text that is not JSON; every
// other ambiguity resolves to a fallback and still produces source.
func Generate(jsonText, rootClassName string, cfg *config.Config) (string, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if rootClassName == "" {
		rootClassName = cfg.RootName
	}

	ir, err := parser.ParseString(jsonText)
	if err != nil {
		if errors.IsInvalidInput(err) {
			return "", err
		}
		return "", errors.NewInvalidInputError(err.Error(), errors.ErrInvalidJSON)
	}

	result, err := analyzer.NewAnalyzerWithConfig(cfg).Analyze(ir, rootClassName)
	if err != nil {
		return "", errors.NewAnalysisError("failed to analyze JSON structure", err)
	}

	root, _ := result.Root()
	code, err := generator.NewGeneratorWithConfig(cfg).Generate(result.Reversed(), root.Name)
	if err != nil {
		return "", err
	}

	if !cfg.Formatting.Enabled {
		return code, nil
	}

	formatted, err := formatter.NewFormatter().Format(code)
	if err != nil {
		// Unusual user annotations can confuse the formatter; the raw text is still usable.
		slog.Debug("skipping formatting", "error", err)
		return code, nil
	}
	return formatted, nil
}
