package formatter

import (
	"fmt"
	"sort"
	"strings"
)

// Formatter normalises generated Dart source: line endings, trailing whitespace,
// blank lines and the import block.
type Formatter struct{}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format takes Dart code as a string and returns the normalised code
func (f *Formatter) Format(code string) (string, error) {
	// Handle empty input
	if strings.TrimSpace(code) == "" {
		return "", nil
	}

	if err := checkBalanced(code); err != nil {
		return "", fmt.Errorf("failed to parse Dart code: %w", err)
	}

	code = strings.ReplaceAll(code, "\r\n", "\n")
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	lines = f.formatImports(lines)
	lines = collapseBlankLines(lines)

	return strings.Join(lines, "\n") + "\n", nil
}

// formatImports deduplicates the leading import directives and orders them
// dart: first, then package:, then relative imports, with a blank line between groups.
func (f *Formatter) formatImports(lines []string) []string {
	start := 0
	for start < len(lines) && lines[start] == "" {
		start++
	}

	end := start
	var imports []string
	seen := make(map[string]bool)
	for end < len(lines) {
		line := lines[end]
		if line == "" {
			end++
			continue
		}
		if !strings.HasPrefix(line, "import ") {
			break
		}
		if !seen[line] {
			seen[line] = true
			imports = append(imports, line)
		}
		end++
	}
	if len(imports) == 0 {
		return lines
	}

	groups := make([][]string, 3)
	for _, imp := range imports {
		groups[importGroup(imp)] = append(groups[importGroup(imp)], imp)
	}

	block := make([]string, 0, len(imports)+3)
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		sort.Strings(group)
		if len(block) > 0 {
			block = append(block, "")
		}
		block = append(block, group...)
	}
	block = append(block, "")

	result := make([]string, 0, len(lines))
	result = append(result, block...)
	return append(result, lines[end:]...)
}

func importGroup(line string) int {
	switch {
	case strings.Contains(line, "'dart:") || strings.Contains(line, `"dart:`):
		return 0
	case strings.Contains(line, "'package:") || strings.Contains(line, `"package:`):
		return 1
	default:
		return 2
	}
}

// collapseBlankLines drops leading blank lines, runs of blank lines, blank lines
// before a closing brace and trailing blank lines.
func collapseBlankLines(lines []string) []string {
	result := make([]string, 0, len(lines))
	for i, line := range lines {
		if line == "" {
			if len(result) == 0 || result[len(result)-1] == "" {
				continue
			}
			if next := nextNonBlank(lines, i); next == "" || strings.HasPrefix(strings.TrimSpace(next), "}") {
				continue
			}
		}
		result = append(result, line)
	}
	for len(result) > 0 && result[len(result)-1] == "" {
		result = result[:len(result)-1]
	}
	return result
}

func nextNonBlank(lines []string, from int) string {
	for _, line := range lines[from:] {
		if line != "" {
			return line
		}
	}
	return ""
}

// checkBalanced verifies that brackets pair up outside string literals and line comments.
func checkBalanced(code string) error {
	pairs := map[rune]rune{')': '(', ']': '[', '}': '{'}
	var stack []rune
	var quote, prev rune
	escaped, comment := false, false

	for _, r := range code {
		if comment {
			if r == '\n' {
				comment = false
			}
			continue
		}
		if quote == 0 && prev == '/' && r == '/' {
			comment = true
			prev = 0
			continue
		}
		prev = r
		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == quote:
				quote = 0
			}
			continue
		}
		switch r {
		case '\'', '"':
			quote = r
		case '(', '[', '{':
			stack = append(stack, r)
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != pairs[r] {
				return fmt.Errorf("unexpected %q", r)
			}
			stack = stack[:len(stack)-1]
		}
	}

	if quote != 0 {
		return fmt.Errorf("unterminated string literal")
	}
	if len(stack) > 0 {
		return fmt.Errorf("unclosed %q", stack[len(stack)-1])
	}
	return nil
}
