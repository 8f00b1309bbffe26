package setting

import "strings"

const (
	VariableName       = "variable"
	CustomArgumentName = "custom_argument"
)

// Variable is a hurl template variable. Variables from every level are
// merged; a variable closer to the leaf replaces one with the same name.
//
//	variable=host=https://example.org
type Variable struct {
	VarName  string
	VarValue string
}

func parseVariable(value string) (Setting, bool) {
	name, val, _ := strings.Cut(value, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false
	}
	return &Variable{VarName: name, VarValue: strings.TrimSpace(val)}, true
}

func (v *Variable) Name() string       { return VariableName }
func (v *Variable) Key() string        { return v.VarName }
func (v *Variable) Behavior() Behavior { return Merge }
func (v *Variable) Value() string      { return v.VarName + "=" + v.VarValue }

func (v *Variable) Arguments() []string {
	if v.VarName == "" {
		return nil
	}
	return []string{"--variable", v.Value()}
}

// CustomArgument passes raw tokens to hurl, split on whitespace. Entries
// merge across levels; identical arguments are only passed once.
//
//	custom_argument=--very-verbose
type CustomArgument struct {
	Tokens []string
}

func parseCustomArgument(value string) (Setting, bool) {
	tokens := strings.Fields(value)
	if len(tokens) == 0 {
		return nil, false
	}
	return &CustomArgument{Tokens: tokens}, true
}

func (c *CustomArgument) Name() string        { return CustomArgumentName }
func (c *CustomArgument) Key() string         { return c.Value() }
func (c *CustomArgument) Behavior() Behavior  { return Merge }
func (c *CustomArgument) Value() string       { return strings.Join(c.Tokens, " ") }
func (c *CustomArgument) Arguments() []string { return append([]string(nil), c.Tokens...) }
