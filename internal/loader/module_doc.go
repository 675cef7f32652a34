package loader

import (
	"strings"

	"github.com/alecthomas/participle/v2"

	"mcdcsynth/internal/module"
)

// ModuleDoc is the struct-tag grammar for one Module record (spec §6
// "Module document"). Formula is multi-paragraph: every Text line after
// `公式:` that doesn't begin a new labelled field is folded in and
// whitespace-collapsed (spec §6 "concatenated whitespace-stripped").
type ModuleDoc struct {
	Name         string   `"任务名称" ":" @Text`
	ID           string   `"编号" ":" @Text`
	Function     string   `"功能" ":" @Text`
	Precondition string   `"前置条件" ":" @Text`
	InputsRaw    string   `"输入" ":" @Text`
	OutputsRaw   string   `"输出" ":" @Text`
	FormulaLines []string `"公式" ":" @Text+`
}

var moduleParser = participle.MustBuild[ModuleDoc](
	participle.Lexer(ModuleLexer),
	participle.Elide("Newline"),
)

// ParseModuleDoc parses one Module record.
func ParseModuleDoc(src string) (*ModuleDoc, error) {
	return moduleParser.ParseString("", src)
}

// ToModule converts a parsed ModuleDoc into the core's module.Module.
func (d *ModuleDoc) ToModule() *module.Module {
	return &module.Module{
		ID:           strings.TrimSpace(d.ID),
		Name:         strings.TrimSpace(d.Name),
		Function:     strings.TrimSpace(d.Function),
		Precondition: strings.TrimSpace(d.Precondition),
		Inputs:       splitFields(d.InputsRaw),
		Outputs:      splitFields(d.OutputsRaw),
		Formula:      collapseWhitespace(strings.Join(d.FormulaLines, " ")),
	}
}

func splitFields(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '，' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
