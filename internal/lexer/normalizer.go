// Package lexer canonicalizes raw decision text and tokenizes the result
// (spec §4.1, component C2).
package lexer

import (
	"regexp"
	"strings"
)

// Alias records a `last(X)` fold: the synthetic identifier `_X_` that
// replaced it and the original name X, so the Outcome Encoder (internal/outcome)
// can render it back as `last(X)` (spec §4.1 step 2, §4.6).
type Alias struct {
	Synthetic string
	Original  string
}

var (
	dashes       = regexp.MustCompile(`[\x{2013}\x{2014}]`)
	lastCall     = regexp.MustCompile(`\blast\s*\(\s*([A-Za-z_][A-Za-z0-9_]*)\s*\)`)
	unitAnnot    = regexp.MustCompile(`,\s*ms\s*,`)
	whitespace   = regexp.MustCompile(`\s+`)
	loneEquals   = regexp.MustCompile(`(^|[^=!<>])=([^=]|$)`)
	spacedOpsRe  = regexp.MustCompile(`\s*(==|!=|<=|>=|&&|\|\||[<>+\-*/(),!])\s*`)
	durationCall = "duration"
)

// HasLoneEquals reports whether raw contains a bare `=` comparison (not
// part of `==`, `!=`, `<=`, or `>=`) before any normalization runs. Callers
// in strict mode (spec §9 Open Question 4) use this to reject the decision
// outright instead of letting Normalize silently fold it to `==`.
func HasLoneEquals(raw string) bool {
	return loneEquals.MatchString(raw)
}

// Normalize applies the ordered, idempotent transformation pipeline of
// spec §4.1 to raw decision text, returning the canonical string and the
// `last(X)` aliases it folded.
func Normalize(raw string) (string, []Alias) {
	s := raw

	// 1. Unicode en-dash / em-dash -> ASCII minus.
	s = dashes.ReplaceAllString(s, "-")

	// 2. Fold last(X) -> _X_, recording the alias.
	var aliases []Alias
	seen := make(map[string]bool)
	s = lastCall.ReplaceAllStringFunc(s, func(m string) string {
		sub := lastCall.FindStringSubmatch(m)
		name := sub[1]
		synthetic := "_" + name + "_"
		if !seen[synthetic] {
			seen[synthetic] = true
			aliases = append(aliases, Alias{Synthetic: synthetic, Original: name})
		}
		return synthetic
	})

	// 3. abs(E) is folded to an ast.Abs node by the parser, not here — the
	// canonical text still contains the literal `abs(...)` call (spec §4.1
	// step 3 "at the AST level").

	// 4. duration(...) -> boolean literal true. Balanced-paren aware because
	// arguments may themselves contain parens.
	s = foldBalancedCall(s, durationCall, func(string) string { return "true" })

	// 5. Strip stray ", ms ," unit annotations.
	s = unitAnnot.ReplaceAllString(s, "")

	// 6. Collapse whitespace; normalize a lone `=` to `==`; single-space
	// every operator.
	s = loneEquals.ReplaceAllString(s, "$1==$2")
	s = whitespace.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = spacedOpsRe.ReplaceAllString(s, " $1 ")
	s = whitespace.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	return s, aliases
}

// foldBalancedCall replaces every top-level call `name(...)` in s — honoring
// nested parentheses inside the argument list — with replace(args).
func foldBalancedCall(s, name string, replace func(args string) string) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		idx := indexWordBoundary(s, name, i)
		if idx < 0 {
			b.WriteString(s[i:])
			break
		}
		// Find the '(' (allowing whitespace) after the identifier.
		j := idx + len(name)
		for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
			j++
		}
		if j >= len(s) || s[j] != '(' {
			b.WriteString(s[i : idx+len(name)])
			i = idx + len(name)
			continue
		}
		end, ok := matchParen(s, j)
		if !ok {
			b.WriteString(s[i:])
			break
		}
		b.WriteString(s[i:idx])
		b.WriteString(replace(s[j+1 : end]))
		i = end + 1
	}
	return b.String()
}

// indexWordBoundary finds the next occurrence of name in s at or after
// from, bounded on both sides by non-identifier characters (or string
// edges), so it never matches inside a longer identifier.
func indexWordBoundary(s, name string, from int) int {
	for {
		idx := strings.Index(s[from:], name)
		if idx < 0 {
			return -1
		}
		pos := from + idx
		before := pos == 0 || !isIdentByte(s[pos-1])
		afterIdx := pos + len(name)
		after := afterIdx >= len(s) || !isIdentByte(s[afterIdx])
		if before && after {
			return pos
		}
		from = pos + 1
		if from >= len(s) {
			return -1
		}
	}
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// matchParen returns the index of the ')' matching the '(' at s[open],
// counting nested parens (spec §4.3's balanced-paren requirement, reused
// here for call folding).
func matchParen(s string, open int) (int, bool) {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return -1, false
}
