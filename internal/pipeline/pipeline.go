// Package pipeline orchestrates the core components C1-C8 end to end: one
// module at a time, one decision at a time, one atom at a time (spec §5).
// It is peripheral to the core (spec §1 Non-goals: orchestration), but is
// the one concrete place that exercises every component together.
package pipeline

import (
	"regexp"
	"strings"

	"mcdcsynth/internal/ast"
	"mcdcsynth/internal/catalog"
	"mcdcsynth/internal/config"
	"mcdcsynth/internal/decparser"
	"mcdcsynth/internal/depgraph"
	"mcdcsynth/internal/diagnostics"
	"mcdcsynth/internal/emit"
	"mcdcsynth/internal/extractor"
	"mcdcsynth/internal/lexer"
	"mcdcsynth/internal/module"
	"mcdcsynth/internal/outcome"
	"mcdcsynth/internal/resolver"
	"mcdcsynth/internal/smt"
)

// Summary tracks per-run synthesis counters (SUPPLEMENTED FEATURES
// "Per-decision diagnostic counters" in SPEC_FULL.md), folded into the
// pipeline's return value rather than only logged.
type Summary struct {
	ModulesProcessed     int
	DecisionsExtracted   int
	DecisionsSkipped     int
	DecisionsSynthesized int
	AtomsMasked          int
	PairsEmitted         int

	// SymbolFanOut counts, per symbol name, how many of its own module's
	// decisions reference it (internal/depgraph "symbol usage
	// diagnostics"); a later module's count wins if two modules happen to
	// share a symbol name. A symbol with high fan-out is load-bearing
	// across many decisions in the same module.
	SymbolFanOut map[string]int
	// SelfReferenceCycles lists every `last(X)` alias self-reference cycle
	// depgraph.SelfReferenceCycles found, one module at a time.
	SelfReferenceCycles [][]string
}

// Run processes every module against cat, emitting records through a fresh
// Emitter and reporting diagnostics to sink.
func Run(modules []*module.Module, cat *catalog.Catalog, cfg *config.Config, sink diagnostics.Sink) (*emit.Emitter, Summary) {
	if cfg == nil {
		cfg = config.Default()
	}
	emitter := emit.New()
	summary := Summary{SymbolFanOut: make(map[string]int)}

	for _, mod := range modules {
		summary.ModulesProcessed++
		runModule(mod, cat, cfg, sink, emitter, &summary)
	}

	return emitter, summary
}

func runModule(mod *module.Module, cat *catalog.Catalog, cfg *config.Config, sink diagnostics.Sink, emitter *emit.Emitter, summary *Summary) {
	decisions, extractDiags := extractor.Extract(mod.Formula)
	for _, d := range extractDiags {
		emitDiag(sink, diagnostics.Diagnostic{
			Kind: diagnostics.KindParse, Code: diagnostics.CodeMalformedDecision,
			Message: d.Message, ModuleID: mod.ID, ModuleName: mod.Name,
		})
	}
	summary.DecisionsExtracted += len(decisions)

	var parsedExprs []ast.Expr
	var parsedAliases [][]lexer.Alias

	resv := resolver.New()
	for i := range decisions {
		dec := &decisions[i]

		if cfg.Strict && lexer.HasLoneEquals(dec.Raw) {
			emitDiag(sink, diagnostics.Diagnostic{
				Kind: diagnostics.KindParse, Code: diagnostics.CodeMalformedDecision,
				Message:  "lone `=` is not a valid comparison in strict mode (use `==`)",
				ModuleID: mod.ID, ModuleName: mod.Name, Decision: dec.Raw,
			})
			summary.DecisionsSkipped++
			continue
		}

		canonical, aliases := lexer.Normalize(dec.Raw)
		dec.CanonicalText = canonical

		expr, perrs := decparser.Parse(canonical)
		if len(perrs) > 0 {
			for _, pe := range perrs {
				emitDiag(sink, diagnostics.Diagnostic{
					Kind: diagnostics.KindParse, Code: diagnostics.CodeMalformedDecision,
					Message: pe.Message, Pos: pe.Pos, ModuleID: mod.ID, ModuleName: mod.Name, Decision: canonical,
				})
			}
			summary.DecisionsSkipped++
			continue
		}
		parsedExprs = append(parsedExprs, expr)
		parsedAliases = append(parsedAliases, aliases)

		bindings, diags, ok := resv.Resolve(expr, aliases, cat, mod)
		for _, dg := range diags {
			dg.ModuleID, dg.ModuleName, dg.Decision = mod.ID, mod.Name, canonical
			emitDiag(sink, dg)
		}
		if !ok {
			summary.DecisionsSkipped++
			continue
		}

		pairs, sdiags := smt.Synthesize(expr, bindings, canonical, mod.ID, mod.Name)
		for _, dg := range sdiags {
			emitDiag(sink, dg)
		}
		summary.AtomsMasked += len(sdiags)
		if len(pairs) > 0 {
			summary.DecisionsSynthesized++
		} else {
			summary.DecisionsSkipped++
		}

		for _, p := range pairs {
			summary.PairsEmitted++
			emitter.Emit(emit.Record{
				ModuleID: mod.ID, ModuleName: mod.Name, Precondition: mod.Precondition,
				DecisionText:     canonical,
				AssignmentString: outcome.RenderPrecise(p.Plus.Env, cfg.Precision),
				ExpectedResult:   outcome.ExpectedResult(p.Plus.Result),
				ThenBlock:        dec.Then, ElseBlock: dec.Else,
			})
			emitter.Emit(emit.Record{
				ModuleID: mod.ID, ModuleName: mod.Name, Precondition: mod.Precondition,
				DecisionText:     canonical,
				AssignmentString: outcome.RenderPrecise(p.Minus.Env, cfg.Precision),
				ExpectedResult:   outcome.ExpectedResult(p.Minus.Result),
				ThenBlock:        dec.Then, ElseBlock: dec.Else,
			})
		}
	}

	recordSymbolUsage(mod, parsedExprs, parsedAliases, sink, summary)
}

// recordSymbolUsage builds the module's decision/symbol graph and folds its
// diagnostics into summary: shared-variable fan-out counts (per module; a
// later module's count replaces an earlier one for the same symbol name)
// and any `last(X)` self-reference cycle, reported
// through sink as a resolution diagnostic since a self-referential alias
// chain can never resolve to a consistent witness.
func recordSymbolUsage(mod *module.Module, exprs []ast.Expr, aliases [][]lexer.Alias, sink diagnostics.Sink, summary *Summary) {
	if len(exprs) == 0 {
		return
	}
	graph, err := depgraph.Build(exprs, aliases)
	if err != nil {
		return
	}
	for i, expr := range exprs {
		aliasOf := make(map[string]string, len(aliases[i]))
		for _, a := range aliases[i] {
			aliasOf[a.Synthetic] = a.Original
		}
		for _, sym := range ast.Idents(expr) {
			canonical := sym
			if orig, ok := aliasOf[sym]; ok {
				canonical = orig
			} else if m := fanOutAliasPattern.FindStringSubmatch(sym); m != nil {
				canonical = m[1]
			}
			summary.SymbolFanOut[canonical] = graph.FanOut(canonical)
		}
	}

	cycles, err := graph.SelfReferenceCycles()
	if err != nil || len(cycles) == 0 {
		return
	}
	summary.SelfReferenceCycles = append(summary.SelfReferenceCycles, cycles...)
	for _, cycle := range cycles {
		emitDiag(sink, diagnostics.Diagnostic{
			Kind: diagnostics.KindResolution, Code: diagnostics.CodeUnresolvableAlias,
			Message:    "last(X) alias self-reference cycle: " + strings.Join(cycle, " -> "),
			ModuleID:   mod.ID,
			ModuleName: mod.Name,
		})
	}
}

var fanOutAliasPattern = regexp.MustCompile(`^_([A-Za-z][A-Za-z0-9_]*)_$`)

func emitDiag(sink diagnostics.Sink, d diagnostics.Diagnostic) {
	if sink != nil {
		sink.Emit(d)
	}
}
