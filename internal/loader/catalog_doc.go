package loader

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"

	"mcdcsynth/internal/catalog"
)

// CatalogRow is one `|`-delimited row of the tabular Catalog document
// (spec §6 "Catalog document": name, symbol, type, type_desc, initial,
// comment, flag, min, max).
type CatalogRow struct {
	Name     string `@Field "|"`
	Symbol   string `@Field "|"`
	Type     string `@Field "|"`
	TypeDesc string `@Field "|"`
	Initial  string `@Field "|"`
	Comment  string `@Field "|"`
	Flag     string `@Field "|"`
	Min      string `@Field "|"`
	Max      string `@Field`
}

// CatalogDoc is the whole Catalog document: one row per line.
type CatalogDoc struct {
	Rows []*CatalogRow `(@@ Newline)* @@?`
}

var catalogParser = participle.MustBuild[CatalogDoc](
	participle.Lexer(CatalogLexer),
)

// ParseCatalogDoc parses a tabular Catalog document.
func ParseCatalogDoc(src string) (*CatalogDoc, error) {
	return catalogParser.ParseString("", src)
}

// ToCatalog converts a parsed CatalogDoc into the core's catalog.Catalog,
// applying the same variable-to-constant promotion rule AddVariable does
// (spec §3) uniformly across rows.
func (d *CatalogDoc) ToCatalog() (*catalog.Catalog, error) {
	cat := catalog.New()
	for _, row := range d.Rows {
		if row == nil {
			continue
		}
		symbol := strings.TrimSpace(row.Symbol)
		kind := parseKind(row.Type)

		if kind != catalog.KindBool {
			initial, hasInitial := parseOptionalFloat(row.Initial)
			min, hasMin := parseOptionalFloat(row.Min)
			max, hasMax := parseOptionalFloat(row.Max)
			if !hasMin {
				min = initial
			}
			if !hasMax {
				max = initial
			}
			if err := cat.AddVariable(&catalog.Variable{
				Name: strings.TrimSpace(row.Name), Symbol: symbol, Kind: kind,
				Min: min, Max: max, Initial: initial, HasInitial: hasInitial,
				Comment: strings.TrimSpace(row.Comment),
			}); err != nil {
				return nil, err
			}
			continue
		}

		initial, hasInitial := parseOptionalFloat(row.Initial)
		if err := cat.AddVariable(&catalog.Variable{
			Name: strings.TrimSpace(row.Name), Symbol: symbol, Kind: catalog.KindBool,
			Initial: initial, HasInitial: hasInitial, Comment: strings.TrimSpace(row.Comment),
		}); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

func parseKind(s string) catalog.Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "int", "integer":
		return catalog.KindInt
	case "bool", "boolean":
		return catalog.KindBool
	default:
		return catalog.KindReal
	}
}

func parseOptionalFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
