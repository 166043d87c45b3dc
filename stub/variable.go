package stub

import "fmt"

type Scope int

const (
	ScopeInput Scope = iota
	ScopeOutput
	ScopeLocal
	ScopeModuleStatic
	ScopeReturnValue
)

func (s Scope) String() string {
	switch s {
	case ScopeInput:
		return "input"
	case ScopeOutput:
		return "output"
	case ScopeLocal:
		return "local"
	case ScopeModuleStatic:
		return "module static"
	case ScopeReturnValue:
		return "return value"
	}
	return fmt.Sprintf("scope(%d)", int(s))
}

// Variable is a C variable. A variable whose ElementCount is greater than 1 is an array and is
// passed as a pointer.
type Variable struct {
	Type         PrimitiveType
	Identifier   string
	ElementCount int
	Scope        Scope

	// InitialValue is the literal a module static variable is initialized with.
	InitialValue string
}

func NewVariable(typ PrimitiveType, id string, elemCount int, scope Scope) *Variable {
	return &Variable{
		Type:         typ,
		Identifier:   id,
		ElementCount: elemCount,
		Scope:        scope,
	}
}

func (v *Variable) IsArray() bool {
	return v.ElementCount > 1
}

// Length returns the size of the variable in bytes.
func (v *Variable) Length() int {
	return v.ElementCount * v.Type.Length()
}

// Declaration returns a declaration statement like `   int8_t _result;`, terminated by a newline.
// Only local, return-value, and module static variables can be declared; other scopes panic.
func (v *Variable) Declaration() string {
	return fmt.Sprintf("%v%v;\n", v.prefix(), v.typed())
}

// Initialization is Declaration with the initial value assigned.
func (v *Variable) Initialization() string {
	return fmt.Sprintf("%v%v = %v;\n", v.prefix(), v.typed(), v.InitialValue)
}

// Parameter returns the variable as it appears in a parameter list.
func (v *Variable) Parameter() string {
	return v.typed()
}

// Reference returns an expression evaluating to the address of the variable.
func (v *Variable) Reference() string {
	if v.IsArray() {
		return v.Identifier
	}
	return "&" + v.Identifier
}

func (v *Variable) typed() string {
	if v.IsArray() {
		return fmt.Sprintf("%v *%v", v.Type.CType(), v.Identifier)
	}
	return fmt.Sprintf("%v %v", v.Type.CType(), v.Identifier)
}

func (v *Variable) prefix() string {
	switch v.Scope {
	case ScopeModuleStatic:
		return "static "
	case ScopeLocal, ScopeReturnValue:
		return indent
	case ScopeInput, ScopeOutput:
	}
	panic(fmt.Sprintf("a variable of %v scope cannot be declared: %v", v.Scope, v.Identifier))
}
