// Package resolver binds decision AST identifiers to catalog entries and
// synthesizes typed symbolic values (spec §4.4, component C4).
package resolver

import (
	"regexp"

	"mcdcsynth/internal/ast"
	"mcdcsynth/internal/catalog"
	"mcdcsynth/internal/diagnostics"
	"mcdcsynth/internal/lexer"
	"mcdcsynth/internal/module"
)

// Binding is a resolved symbol: either a fixed constant or a typed,
// range-bounded free variable (spec §4.4).
type Binding struct {
	Symbol     string
	Kind       catalog.Kind
	Min, Max   float64
	IsConstant bool
	ConstValue float64
	// AliasOf is non-empty when Symbol is a `_X_` synthetic alias of the
	// real catalog variable X (spec §4.1 step 2, §4.4).
	AliasOf string
}

// Bindings is the resolved symbol table for one decision.
type Bindings struct {
	order  []string
	byName map[string]*Binding
}

func newBindings() *Bindings {
	return &Bindings{byName: make(map[string]*Binding)}
}

func (b *Bindings) add(bd *Binding) {
	if _, ok := b.byName[bd.Symbol]; ok {
		return
	}
	b.order = append(b.order, bd.Symbol)
	b.byName[bd.Symbol] = bd
}

// Get returns the binding for symbol, if resolved.
func (b *Bindings) Get(symbol string) (*Binding, bool) {
	bd, ok := b.byName[symbol]
	return bd, ok
}

// Symbols returns every resolved symbol in first-reference order.
func (b *Bindings) Symbols() []string {
	return append([]string(nil), b.order...)
}

var aliasPattern = regexp.MustCompile(`^_([A-Za-z][A-Za-z0-9_]*)_$`)

// Resolver binds a decision's identifiers against a Catalog and its
// enclosing Module's declared inputs/outputs.
type Resolver struct{}

func New() *Resolver { return &Resolver{} }

// Resolve walks expr, binding every *ast.Ident it finds, and type-checks
// every *ast.Atom's operand shape. aliases carries the `last(X)` fold
// table produced by the normalizer (spec §4.1 step 2) so a `_X_` alias can
// be traced back to X even when the catalog has no literal `_X_` entry.
//
// Returns the bindings and any diagnostics; ok is false when the decision
// must be skipped (spec §7: resolution error or type mismatch).
func (r *Resolver) Resolve(expr ast.Expr, aliases []lexer.Alias, cat *catalog.Catalog, mod *module.Module) (*Bindings, []diagnostics.Diagnostic, bool) {
	aliasOf := make(map[string]string, len(aliases))
	for _, a := range aliases {
		aliasOf[a.Synthetic] = a.Original
	}

	bindings := newBindings()
	var diags []diagnostics.Diagnostic
	ok := true

	moduleSymbols := make(map[string]bool)
	for _, s := range mod.Inputs {
		moduleSymbols[s] = true
	}
	for _, s := range mod.Outputs {
		moduleSymbols[s] = true
	}

	pendingFallback := make(map[string]bool)

	for _, name := range ast.Idents(expr) {
		original := name
		isAlias := false
		if target, found := aliasOf[name]; found {
			original = target
			isAlias = true
		} else if m := aliasPattern.FindStringSubmatch(name); m != nil {
			original = m[1]
			isAlias = true
		}

		if isAlias {
			if _, clash := cat.LookupVariable(name); clash || cat.IsConstant(name) {
				ok = false
				diags = append(diags, diagnostics.Diagnostic{
					Kind:    diagnostics.KindResolution,
					Code:    diagnostics.CodeUnresolvableAlias,
					Message: "alias " + name + " for last(" + original + ") collides with the catalog symbol of the same name",
					Pos:     identPos(expr, name),
				})
				continue
			}
		}

		if k, found := cat.LookupConstant(original); found {
			bindings.add(&Binding{Symbol: name, Kind: catalog.KindReal, IsConstant: true, ConstValue: k.Value})
			continue
		}
		if v, found := cat.LookupVariable(original); found {
			bindings.add(&Binding{Symbol: name, Kind: v.Kind, Min: v.Min, Max: v.Max, AliasOf: aliasOrEmpty(isAlias, original)})
			continue
		}
		if moduleSymbols[name] {
			// Kind is unknown until we've seen how the atom compares it
			// (see refineFallbackKind below); default to a bounded real.
			bindings.add(&Binding{Symbol: name, Kind: catalog.KindReal, Min: -1e6, Max: 1e6})
			pendingFallback[name] = true
			continue
		}

		ok = false
		diags = append(diags, diagnostics.Diagnostic{
			Kind:    diagnostics.KindResolution,
			Code:    diagnostics.CodeUnknownIdentifier,
			Message: "unknown identifier: " + name,
			Pos:     identPos(expr, name),
		})
	}

	if len(pendingFallback) > 0 {
		for _, atom := range ast.Atoms(expr) {
			refineFallbackKind(atom, bindings, pendingFallback)
		}
	}

	for _, atom := range ast.Atoms(expr) {
		if msg, bad := shapeError(atom.Left, bindings); bad {
			ok = false
			diags = append(diags, diagnostics.Diagnostic{Kind: diagnostics.KindTypeMismatch, Code: diagnostics.CodeTypeMismatch, Message: msg, Pos: atom.Pos()})
		}
		if msg, bad := shapeError(atom.Right, bindings); bad {
			ok = false
			diags = append(diags, diagnostics.Diagnostic{Kind: diagnostics.KindTypeMismatch, Code: diagnostics.CodeTypeMismatch, Message: msg, Pos: atom.Pos()})
		}
	}

	return bindings, diags, ok
}

// refineFallbackKind promotes a module-input/output fallback binding
// (defaulted to KindReal) to KindBool when the atom it appears in compares
// it against an unambiguously boolean operand — a bare BoolLit, or another
// identifier already bound as KindBool. Without this, a boolean-flag
// module symbol with no Catalog entry (e.g. `flag == true`) would be
// probed with numeric candidates during realization and never solve.
func refineFallbackKind(atom *ast.Atom, bindings *Bindings, pending map[string]bool) {
	refineSide(atom.Left, atom.Right, bindings, pending)
	refineSide(atom.Right, atom.Left, bindings, pending)
}

func refineSide(side, sibling ast.Expr, bindings *Bindings, pending map[string]bool) {
	name := bareIdentName(side)
	if name == "" || !pending[name] {
		return
	}
	if !isBoolShape(sibling, bindings) {
		return
	}
	if bd, ok := bindings.Get(name); ok {
		bd.Kind = catalog.KindBool
	}
}

// bareIdentName unwraps Paren and returns the identifier name e resolves
// to, or "" if e isn't a (possibly parenthesized) identifier.
func bareIdentName(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.Ident:
		return n.Name
	case *ast.Paren:
		return bareIdentName(n.X)
	default:
		return ""
	}
}

// isBoolShape reports whether e is a literal true/false or an identifier
// already bound as KindBool.
func isBoolShape(e ast.Expr, bindings *Bindings) bool {
	switch n := e.(type) {
	case *ast.BoolLit:
		return true
	case *ast.Paren:
		return isBoolShape(n.X, bindings)
	case *ast.Ident:
		bd, ok := bindings.Get(n.Name)
		return ok && bd.Kind == catalog.KindBool
	default:
		return false
	}
}

func aliasOrEmpty(isAlias bool, original string) string {
	if isAlias {
		return original
	}
	return ""
}

// shapeError reports whether e is a legal Atom operand: an arithmetic
// expression over identifiers/literals, or (for boolean equality atoms) a
// bare boolean identifier/literal — never a nested decision (And/Or/Not/Atom),
// spec §7 error kind 4.
func shapeError(e ast.Expr, bindings *Bindings) (string, bool) {
	switch n := e.(type) {
	case *ast.And, *ast.Or, *ast.Not, *ast.Atom:
		return "comparison operand cannot itself be a decision", true
	case *ast.Paren:
		return shapeError(n.X, bindings)
	case *ast.Neg:
		return shapeError(n.Child, bindings)
	case *ast.ArithBinary:
		if msg, bad := shapeError(n.Left, bindings); bad {
			return msg, true
		}
		return shapeError(n.Right, bindings)
	case *ast.Abs:
		return shapeError(n.X, bindings)
	case *ast.Ident:
		if bd, ok := bindings.Get(n.Name); ok && bd.Kind == catalog.KindBool {
			return "", false
		}
		return "", false
	case *ast.NumberLit, *ast.BoolLit, *ast.BadExpr:
		return "", false
	}
	return "", false
}

func identPos(expr ast.Expr, name string) ast.Position {
	var pos ast.Position
	ast.Walk(expr, func(n ast.Expr) bool {
		if id, ok := n.(*ast.Ident); ok && id.Name == name {
			pos = id.Pos()
			return false
		}
		return true
	})
	return pos
}
