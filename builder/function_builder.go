package builder

import (
	"fmt"

	"github.com/elasticai/stubgen/stub"
)

type CallPattern int

const (
	CallPatternSync CallPattern = iota
	CallPatternAsync
)

func (p CallPattern) String() string {
	switch p {
	case CallPatternSync:
		return "sync"
	case CallPatternAsync:
		return "async"
	}
	return fmt.Sprintf("call pattern(%d)", int(p))
}

// FunctionBuilder accumulates one user function. The return type is void until it is set.
type FunctionBuilder struct {
	pattern    CallPattern
	name       string
	prefix     string
	returnType stub.PrimitiveType
	params     []*stub.Variable
}

func NewFunctionBuilder() *FunctionBuilder {
	return &FunctionBuilder{
		pattern:    CallPatternSync,
		returnType: stub.PrimitiveTypeVoid,
	}
}

// SetCallPattern accepts only the synchronous pattern.
func (b *FunctionBuilder) SetCallPattern(p CallPattern) error {
	switch p {
	case CallPatternSync:
		b.pattern = p
		return nil
	case CallPatternAsync:
	}
	return fmt.Errorf("%w: %v", ErrUnsupportedPattern, p)
}

func (b *FunctionBuilder) SetName(name string) {
	b.name = name
}

// SetNamePrefix sets the prefix the function name gets joined to with an underscore.
func (b *FunctionBuilder) SetNamePrefix(prefix string) {
	b.prefix = prefix
}

func (b *FunctionBuilder) SetReturnType(typeName string) error {
	typ, err := stub.ParsePrimitiveType(typeName)
	if err != nil {
		return err
	}
	b.returnType = typ
	return nil
}

func (b *FunctionBuilder) AddInputParameter(name string, typeName string, elemCount int) error {
	typ, err := stub.ParsePrimitiveType(typeName)
	if err != nil {
		return err
	}
	if elemCount < 1 {
		return fmt.Errorf("%w: %v[%v] %v", ErrInvalidElementCount, typeName, elemCount, name)
	}
	for _, p := range b.params {
		if p.Identifier == name {
			return fmt.Errorf("%w: %v", ErrDuplicateParameter, name)
		}
	}
	b.params = append(b.params, stub.NewVariable(typ, name, elemCount, stub.ScopeInput))
	return nil
}

// Name returns the name as written in the source, without the prefix.
func (b *FunctionBuilder) Name() string {
	return b.name
}

func (b *FunctionBuilder) Build() *stub.Function {
	id := b.name
	if b.prefix != "" {
		id = fmt.Sprintf("%v_%v", b.prefix, b.name)
	}
	params := make([]*stub.Variable, len(b.params))
	copy(params, b.params)
	return stub.NewSyncCall(id, b.returnType, params)
}
