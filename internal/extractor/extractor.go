// Package extractor finds every top-level `if (…) { … } else { … }` decision
// in a module's formula text (spec §4.3, component C5).
package extractor

import (
	"fmt"
	"strings"

	"mcdcsynth/internal/module"
)

// Diagnostic is a non-fatal extraction warning (spec §4.3 edge cases).
type Diagnostic struct {
	Message string
	Offset  int
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("offset %d: %s", d.Offset, d.Message)
}

// Extract scans formula for every `if (...) { ... } [else { ... }]` block,
// honoring balanced parens/braces, and returns one module.Decision per
// occurrence in source order (spec §5 ordering guarantee).
//
// A nested `if` inside a then/else block is left untouched as part of that
// block's text rather than being recursively split (spec §4.3 edge case);
// this falls out naturally because the scan cursor jumps past the whole
// decision (condition + then + else) before searching for the next `if`.
func Extract(formula string) ([]module.Decision, []Diagnostic) {
	var decisions []module.Decision
	var diags []Diagnostic

	i := 0
	for {
		idx := findKeyword(formula, "if", i)
		if idx < 0 {
			break
		}
		j := idx + 2
		j = skipSpace(formula, j)
		if j >= len(formula) || formula[j] != '(' {
			i = idx + 2
			continue
		}
		condEnd, ok := matchDelim(formula, j, '(', ')')
		if !ok {
			diags = append(diags, Diagnostic{Message: "unbalanced parentheses in decision", Offset: idx})
			i = idx + 2
			continue
		}
		raw := formula[j+1 : condEnd]

		k := skipSpace(formula, condEnd+1)
		if k >= len(formula) || formula[k] != '{' {
			diags = append(diags, Diagnostic{Message: "missing '{' after decision", Offset: idx})
			i = condEnd + 1
			continue
		}
		thenEnd, ok := matchDelim(formula, k, '{', '}')
		if !ok {
			diags = append(diags, Diagnostic{Message: "unbalanced braces in then-block", Offset: idx})
			i = k + 1
			continue
		}
		thenBlock := formula[k+1 : thenEnd]

		elseBlock := ""
		cursor := thenEnd + 1
		m := skipSpace(formula, cursor)
		if matchesKeyword(formula, m, "else") {
			m = skipSpace(formula, m+4)
			if m < len(formula) && formula[m] == '{' {
				elseEnd, ok := matchDelim(formula, m, '{', '}')
				if !ok {
					diags = append(diags, Diagnostic{Message: "unbalanced braces in else-block", Offset: idx})
					i = m + 1
					continue
				}
				elseBlock = formula[m+1 : elseEnd]
				cursor = elseEnd + 1
			}
		}

		decisions = append(decisions, module.Decision{
			Raw:    strings.TrimSpace(raw),
			Then:   strings.TrimSpace(thenBlock),
			Else:   strings.TrimSpace(elseBlock),
			Offset: idx,
		})
		i = cursor
	}

	return decisions, diags
}

// findKeyword finds the next whole-word occurrence of kw in s at or after
// from.
func findKeyword(s, kw string, from int) int {
	for {
		idx := strings.Index(s[from:], kw)
		if idx < 0 {
			return -1
		}
		pos := from + idx
		beforeOK := pos == 0 || !isIdentByte(s[pos-1])
		afterPos := pos + len(kw)
		afterOK := afterPos >= len(s) || !isIdentByte(s[afterPos])
		if beforeOK && afterOK {
			return pos
		}
		from = pos + 1
		if from >= len(s) {
			return -1
		}
	}
}

func matchesKeyword(s string, at int, kw string) bool {
	if at+len(kw) > len(s) {
		return false
	}
	if s[at:at+len(kw)] != kw {
		return false
	}
	before := at == 0 || !isIdentByte(s[at-1])
	afterPos := at + len(kw)
	after := afterPos >= len(s) || !isIdentByte(s[afterPos])
	return before && after
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	return i
}

// matchDelim returns the index of the closing delimiter matching s[open],
// counting nested occurrences of open/close.
func matchDelim(s string, open int, openC, closeC byte) (int, bool) {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case openC:
			depth++
		case closeC:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return -1, false
}
