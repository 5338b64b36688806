package generator

import (
	"bytes"
	"embed"
	"log/slog"
	"strings"
	"text/template"

	"github.com/mcncl/jsontodart/internal/config"
	"github.com/mcncl/jsontodart/internal/errors"
	"github.com/mcncl/jsontodart/internal/models"
	"github.com/mcncl/jsontodart/internal/naming"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Generator is responsible for generating Dart class source from analysis results
type Generator struct {
	config *config.Config
	logger *slog.Logger
}

// NewGenerator creates a new Generator instance
func NewGenerator() *Generator {
	return NewGeneratorWithConfig(config.NewConfig())
}

// NewGeneratorWithConfig creates a new Generator instance with custom configuration
func NewGeneratorWithConfig(cfg *config.Config) *Generator {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Generator{
		config: cfg,
		logger: slog.Default().With("component", "generator"),
	}
}

type fileView struct {
	Imports []string
	Part    string
	Classes []classView
}

type classView struct {
	Name       string
	Annotation string
	Methods    string
	Fields     []fieldView
}

type fieldView struct {
	Name       string
	Key        string
	Type       string
	Annotation string
	Param      string
	FromJSON   string
	ToJSON     string
}

// Generate renders the classes in the order given. rootClassName names the
// part file of the json_serializable strategy.
func (g *Generator) Generate(result models.AnalysisResult, rootClassName string) (string, error) {
	s, err := newStrategy(g.config)
	if err != nil {
		return "", errors.NewGenerateError("cannot select serialization strategy", err)
	}

	if strings.TrimSpace(rootClassName) == "" {
		if root, ok := result.Root(); ok {
			rootClassName = root.Name
		} else {
			rootClassName = config.DefaultRootName
		}
	}

	g.logger.Debug("rendering classes", "strategy", g.config.Serialization, "classes", len(result.Classes))

	view := fileView{
		Imports: s.imports(),
		Part:    s.part(rootClassName),
		Classes: make([]classView, 0, len(result.Classes)),
	}
	for _, cls := range result.Classes {
		view.Classes = append(view.Classes, newClassView(s, cls))
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "file", view); err != nil {
		return "", errors.NewGenerateError("failed to render Dart source", err)
	}
	return buf.String(), nil
}

func newClassView(s strategy, cls models.ClassDef) classView {
	view := classView{
		Name:       cls.Name,
		Annotation: s.classAnnotation(),
		Methods:    s.methods(),
		Fields:     make([]fieldView, 0, len(cls.Fields)),
	}
	for _, f := range cls.Fields {
		view.Fields = append(view.Fields, fieldView{
			Name:       f.Name,
			Key:        naming.DartString(f.JSONKey),
			Type:       fieldType(f),
			Annotation: s.fieldAnnotation(f),
			Param:      constructorParam(s, f),
			FromJSON:   fromJSONExpr(f),
			ToJSON:     toJSONExpr(f),
		})
	}
	return view
}

// constructorParam renders one named constructor parameter. Fields that are
// non-nullable and carry no default must be passed by the caller.
func constructorParam(s strategy, f models.FieldDef) string {
	if lit, ok := s.constructorDefault(f); ok {
		return "this." + f.Name + " = " + lit
	}
	if !f.Nullable {
		return "required this." + f.Name
	}
	return "this." + f.Name
}
