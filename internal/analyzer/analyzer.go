package analyzer

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcncl/jsontodart/internal/config"
	"github.com/mcncl/jsontodart/internal/models"
)

// Analyzer infers Dart class definitions from JSON samples.
type Analyzer struct {
	// classNames tracks generated class names to avoid collisions
	classNames map[string]int
	// config holds configuration settings for analysis
	config *config.Config
	logger *slog.Logger
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(config.NewConfig())
}

// NewAnalyzerWithConfig creates a new Analyzer instance with custom configuration.
func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Analyzer{
		classNames: make(map[string]int),
		config:     cfg,
		logger:     slog.Default().With("component", "analyzer"),
	}
}

// Analyze builds the root class and every nested class from the parsed document.
// A root array contributes each element as one sample of the root class.
// Classes are returned nested-first, with the root class last.
func (a *Analyzer) Analyze(ir models.IntermediateRepresentation, rootClassName string) (models.AnalysisResult, error) {
	rootClassName = strings.TrimSpace(rootClassName)
	if rootClassName == "" {
		rootClassName = config.DefaultRootName
	}

	// Each call is independent
	a.classNames = map[string]int{rootClassName: 1}

	samples := ir.Samples()
	classes := a.buildClass(samples, rootClassName)
	if len(classes) == 0 {
		return models.AnalysisResult{}, fmt.Errorf("no class produced for %q", rootClassName)
	}
	classes[len(classes)-1].IsRoot = true

	a.logger.Debug("analysis complete", "root", rootClassName, "classes", len(classes), "samples", len(samples))

	return models.AnalysisResult{Classes: classes}, nil
}

// uniqueClassName appends a numeric suffix when a class name was already handed out.
func (a *Analyzer) uniqueClassName(base string) string {
	name := base
	for n := 2; a.classNames[name] > 0; n++ {
		name = fmt.Sprintf("%s%d", base, n)
	}
	a.classNames[name]++
	return name
}
