// Package loader parses the two peripheral document formats of spec §6
// (Catalog document, Module document) with github.com/alecthomas/participle/v2
// — reused here for a declarative struct-tag grammar, a different concern
// than the core's hand-written decision parser (internal/decparser).
//
// This loader is explicitly peripheral (spec §1 Non-goals: document
// ingestion format is not prescribed); it exists to give the core a
// concrete reader to exercise it end to end.
package loader

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// ModuleLexer tokenizes the labelled-line Module document of spec §6
// (`任务名称:NAME`, `编号:ID`, …). Only an ASCII `:` is recognized after a
// label; a full-width `：` is lexed as part of the Text that follows, so
// such a line does not parse. Label keywords are tried before the
// catch-all Text rule so a line's label is recognized even though it
// shares no delimiter with free-form value text (grounded on the teacher's
// grammar/lexer.go rule-ordering convention: "Punctuation (must come after
// operators)").
var ModuleLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Label", `任务名称|编号|功能|前置条件|输入|输出|公式`, nil},
		{"Colon", `:`, nil},
		{"Newline", `\r?\n`, nil},
		{"Text", `[^\n]+`, nil},
	},
})

// CatalogLexer tokenizes the tabular Catalog document of spec §6: one row
// per variable/constant, `|`-delimited fields
// (name, symbol, type, type_desc, initial, comment, flag, min, max).
var CatalogLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Pipe", `\|`, nil},
		{"Newline", `\r?\n`, nil},
		{"Field", `[^|\n]+`, nil},
	},
})
