// Package catalog holds the typed variables and constants a module's
// decisions are resolved against (spec §3, component C1).
package catalog

import "fmt"

// Kind is the declared type of a Variable or the inferred type of a Constant.
type Kind int

const (
	KindInt Kind = iota
	KindReal
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindReal:
		return "real"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Variable is a typed, range-bounded catalog entry.
//
// Bool variables carry no numeric range; Min/Max are meaningless for them.
type Variable struct {
	Name       string
	Symbol     string
	Kind       Kind
	Min        float64
	Max        float64
	Initial    float64
	HasInitial bool
	Comment    string
}

// Constant is an immutable symbol→value catalog entry.
type Constant struct {
	Symbol  string
	Value   float64
	Comment string
}

// Catalog is the read-only-after-ingestion variable/constant table (§3).
// Symbol names are unique across both maps.
type Catalog struct {
	variables map[string]*Variable
	constants map[string]*Constant
}

// New returns an empty Catalog ready for ingestion.
func New() *Catalog {
	return &Catalog{
		variables: make(map[string]*Variable),
		constants: make(map[string]*Constant),
	}
}

// AddVariable registers v, promoting it to a Constant when its range has
// collapsed to a single point (min == max == initial — §3 "Variable"
// promotion rule). A variable declared with only an initial value is
// promoted only if its Min and Max equal that value; internal/loader fills
// missing bounds from the initial value so such rows qualify.
func (c *Catalog) AddVariable(v *Variable) error {
	if err := c.checkSymbolFree(v.Symbol); err != nil {
		return err
	}
	if v.Kind != KindBool && v.HasInitial && v.Min == v.Max && v.Min == v.Initial {
		c.constants[v.Symbol] = &Constant{Symbol: v.Symbol, Value: v.Initial, Comment: v.Comment}
		return nil
	}
	c.variables[v.Symbol] = v
	return nil
}

// AddConstant registers a standalone constant.
func (c *Catalog) AddConstant(k *Constant) error {
	if err := c.checkSymbolFree(k.Symbol); err != nil {
		return err
	}
	c.constants[k.Symbol] = k
	return nil
}

func (c *Catalog) checkSymbolFree(symbol string) error {
	if _, ok := c.variables[symbol]; ok {
		return fmt.Errorf("catalog: symbol %q already declared as a variable", symbol)
	}
	if _, ok := c.constants[symbol]; ok {
		return fmt.Errorf("catalog: symbol %q already declared as a constant", symbol)
	}
	return nil
}

// LookupVariable returns the variable registered under symbol, if any.
func (c *Catalog) LookupVariable(symbol string) (*Variable, bool) {
	v, ok := c.variables[symbol]
	return v, ok
}

// LookupConstant returns the constant registered under symbol, if any.
func (c *Catalog) LookupConstant(symbol string) (*Constant, bool) {
	k, ok := c.constants[symbol]
	return k, ok
}

// IsConstant reports whether symbol resolves to a constant.
func (c *Catalog) IsConstant(symbol string) bool {
	_, ok := c.constants[symbol]
	return ok
}

// Symbols returns every registered symbol name (variables and constants),
// unordered.
func (c *Catalog) Symbols() []string {
	out := make([]string, 0, len(c.variables)+len(c.constants))
	for s := range c.variables {
		out = append(out, s)
	}
	for s := range c.constants {
		out = append(out, s)
	}
	return out
}

// Variables returns a snapshot of the registered variables.
func (c *Catalog) Variables() map[string]*Variable {
	out := make(map[string]*Variable, len(c.variables))
	for s, v := range c.variables {
		out[s] = v
	}
	return out
}

// Constants returns a snapshot of the registered constants.
func (c *Catalog) Constants() map[string]*Constant {
	out := make(map[string]*Constant, len(c.constants))
	for s, k := range c.constants {
		out[s] = k
	}
	return out
}
