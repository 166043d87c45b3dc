package builder

import (
	"github.com/elasticai/stubgen/config"
	"github.com/elasticai/stubgen/stub"
)

// StubBuilder accumulates one stub. It is not safe for concurrent use.
type StubBuilder struct {
	config         *config.Config
	name           string
	middlewarePath string
	accelID        *uint64
	accelAddr      *uint32
	functions      []*FunctionBuilder
	generated      bool
}

// NewStubBuilder returns a builder. When c is nil, the default configuration applies.
func NewStubBuilder(c *config.Config) *StubBuilder {
	if c == nil {
		c = config.Default()
	}
	return &StubBuilder{
		config: c,
	}
}

func (b *StubBuilder) SetName(name string) error {
	if name == "" {
		return ErrMissingName
	}
	b.name = name
	return nil
}

// SetCallPattern starts a new function. The following function setters apply to it.
func (b *StubBuilder) SetCallPattern(p CallPattern) error {
	fb := NewFunctionBuilder()
	err := fb.SetCallPattern(p)
	if err != nil {
		return err
	}
	b.functions = append(b.functions, fb)
	return nil
}

func (b *StubBuilder) SetMiddlewarePath(path string) {
	b.middlewarePath = path
}

func (b *StubBuilder) SetAcceleratorID(id uint64) {
	b.accelID = &id
}

func (b *StubBuilder) SetAcceleratorAddress(addr uint32) {
	b.accelAddr = &addr
}

func (b *StubBuilder) SetFunctionName(name string) error {
	fb, err := b.current()
	if err != nil {
		return err
	}
	fb.SetName(name)
	return nil
}

func (b *StubBuilder) SetFunctionReturnType(typeName string) error {
	fb, err := b.current()
	if err != nil {
		return err
	}
	return fb.SetReturnType(typeName)
}

func (b *StubBuilder) AddFunctionInputParameter(name string, typeName string, elemCount int) error {
	fb, err := b.current()
	if err != nil {
		return err
	}
	return fb.AddInputParameter(name, typeName, elemCount)
}

func (b *StubBuilder) current() (*FunctionBuilder, error) {
	if len(b.functions) == 0 {
		return nil, ErrNoFunctionInProgress
	}
	return b.functions[len(b.functions)-1], nil
}

// Generate returns the stub. It panics when the name is missing or when it has already been called.
func (b *StubBuilder) Generate() *stub.Stub {
	if b.name == "" {
		panic("the stub name must be set before generating a stub")
	}
	if b.generated {
		panic("a stub builder can generate only once")
	}
	b.generated = true

	s := stub.NewStub(b.name, b.config)
	s.MiddlewarePath = b.middlewarePath
	if b.accelID != nil && b.accelAddr != nil {
		s.SetDeploy(*b.accelID, *b.accelAddr)
	}
	for _, fb := range b.functions {
		fb.SetNamePrefix(b.name)
		s.AddFunction(fb.Build())
	}
	return s
}
