// Package prompts provides the interactive terminal forms of the CLI.
package prompts

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mcncl/jsontodart/internal/errors"
	"github.com/mcncl/jsontodart/internal/parser"
)

// Theme returns the shared huh theme used across all forms.
func Theme() *huh.Theme {
	theme := huh.ThemeBase16()
	theme.FieldSeparator = lipgloss.NewStyle().SetString("\n").MarginBottom(1)
	theme.Form = theme.Form.MarginTop(1)
	theme.Group = theme.Group.MarginTop(1)
	theme.Focused.Title = theme.Focused.Title.Foreground(lipgloss.Color("#02569b"))
	theme.Blurred.Title = theme.Blurred.Title.Foreground(lipgloss.Color("#bababa"))
	return theme
}

// ResultField is a label-value pair for PrintResult.
type ResultField struct {
	Label string
	Value string
}

// PrintResult prints a styled summary with green checkmarks and gray labels.
func PrintResult(w io.Writer, fields []ResultField, successMsg string) {
	success := lipgloss.NewStyle().Foreground(lipgloss.Color("#27ca3f"))
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("#bababa"))
	check := success.Render("✓")

	_, _ = fmt.Fprintln(w)
	for _, f := range fields {
		_, _ = fmt.Fprintf(w, "%s %s %s\n", check, label.Render(f.Label+":"), f.Value)
	}

	if successMsg != "" {
		_, _ = fmt.Fprintln(w, success.Render("\n"+successMsg))
	}
}

// PrintWarning prints a single highlighted line, used for non-fatal outcomes.
func PrintWarning(w io.Writer, msg string) {
	warn := lipgloss.NewStyle().Foreground(lipgloss.Color("#f9ca24"))
	_, _ = fmt.Fprintln(w, warn.Render("! "+msg))
}

// jsonValidator rejects text the generator would refuse, so the form can
// report it before submitting.
func jsonValidator(s string) error {
	if strings.TrimSpace(s) == "" {
		return stderrors.New("JSON is required")
	}
	if _, err := parser.ParseString(s); err != nil {
		return stderrors.New(errors.UserFriendlyError(err))
	}
	return nil
}

// annotationValidator accepts an empty value or a Dart annotation.
func annotationValidator(s string) error {
	s = strings.TrimSpace(s)
	if s != "" && !strings.HasPrefix(s, "@") {
		return stderrors.New("annotations start with @")
	}
	return nil
}

// importValidator accepts an empty value or a Dart import directive.
func importValidator(s string) error {
	s = strings.TrimSpace(s)
	if s != "" && !strings.HasPrefix(s, "import ") {
		return stderrors.New("expected an import directive, e.g. import 'package:x/x.dart';")
	}
	return nil
}
