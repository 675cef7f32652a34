package diagnostics

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Reporter formats diagnostics with Rust-like styling, grounded on the
// teacher's internal/errors/reporter.go (box-drawing source context,
// carets, notes).
type Reporter struct {
	source string
	lines  []string
}

// NewReporter builds a Reporter over the raw decision text a diagnostic's
// position is relative to (the decision's canonical text, not a whole
// source file, since the core never sees the enclosing document).
func NewReporter(source string) *Reporter {
	return &Reporter{source: source, lines: strings.Split(source, "\n")}
}

// Format renders one diagnostic for terminal display.
func (r *Reporter) Format(d Diagnostic) string {
	var b strings.Builder

	levelColor := color.New(color.FgRed, color.Bold).SprintFunc()
	if d.Kind == KindInfeasible || d.Kind == KindTimeout {
		levelColor = color.New(color.FgYellow, color.Bold).SprintFunc()
	}
	dim := color.New(color.Faint).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	if d.Code != "" {
		b.WriteString(fmt.Sprintf("%s[%s]: %s\n", levelColor(string(d.Kind)), d.Code, d.Message))
	} else {
		b.WriteString(fmt.Sprintf("%s: %s\n", levelColor(string(d.Kind)), d.Message))
	}

	if d.ModuleName != "" {
		b.WriteString(fmt.Sprintf("  %s %s\n", dim("-->"), d.ModuleName))
	}
	b.WriteString(fmt.Sprintf("  %s\n", dim("│")))

	line := d.Pos.Line
	if line > 0 && line <= len(r.lines) {
		b.WriteString(fmt.Sprintf("%s %s %s\n", bold(fmt.Sprintf("%3d", line)), dim("│"), r.lines[line-1]))
		caret := strings.Repeat(" ", max(d.Pos.Column-1, 0)) + "^"
		b.WriteString(fmt.Sprintf("    %s %s\n", dim("│"), levelColor(caret)))
	} else if d.Decision != "" {
		b.WriteString(fmt.Sprintf("    %s %s\n", dim("│"), d.Decision))
	}

	b.WriteString("\n")
	return b.String()
}
