package builder

import (
	"errors"
	"testing"

	"github.com/elasticai/stubgen/stub"
	"github.com/google/go-cmp/cmp"
)

func TestStubBuilder(t *testing.T) {
	b := NewStubBuilder(nil)
	err := b.SetName("another_test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b.SetMiddlewarePath("../middleware")
	b.SetAcceleratorID(1)
	b.SetAcceleratorAddress(4000)
	b.SetAcceleratorID(47)

	err = b.SetCallPattern(CallPatternSync)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = b.SetFunctionName("predict")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = b.AddFunctionInputParameter("inputs", "int8", 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = b.AddFunctionInputParameter("more_inputs", "bool", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = b.SetFunctionReturnType("int8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := b.Generate()
	if s.Name != "another_test" || s.MiddlewarePath != "../middleware" {
		t.Fatalf("unexpected stub: %v %v", s.Name, s.MiddlewarePath)
	}
	if !s.Deployable() {
		t.Fatal("a stub with an id and an address must be deployable")
	}
	var vals []string
	for _, v := range s.Variables() {
		vals = append(vals, v.InitialValue)
	}
	if diff := cmp.Diff([]string{"47", "4000"}, vals); diff != "" {
		t.Fatalf("the last write must win (-want +got):\n%v", diff)
	}

	fs := s.Functions()
	if len(fs) != 1 {
		t.Fatalf("unexpected function count; want: 1, got: %v", len(fs))
	}
	if sig := fs[0].Signature(); sig != "int8_t another_test_predict(int8_t *inputs, bool more_inputs)" {
		t.Fatalf("unexpected signature: %v", sig)
	}
}

func TestStubBuilder_Errors(t *testing.T) {
	tests := []struct {
		caption string
		run     func(b *StubBuilder) error
		err     error
	}{
		{
			caption: "a stub name must not be empty",
			run: func(b *StubBuilder) error {
				return b.SetName("")
			},
			err: ErrMissingName,
		},
		{
			caption: "the async pattern is not supported",
			run: func(b *StubBuilder) error {
				return b.SetCallPattern(CallPatternAsync)
			},
			err: ErrUnsupportedPattern,
		},
		{
			caption: "a function name needs a function under construction",
			run: func(b *StubBuilder) error {
				return b.SetFunctionName("f")
			},
			err: ErrNoFunctionInProgress,
		},
		{
			caption: "an unknown parameter type",
			run: func(b *StubBuilder) error {
				b.SetCallPattern(CallPatternSync)
				return b.AddFunctionInputParameter("x", "float", 1)
			},
			err: stub.ErrUnknownType,
		},
		{
			caption: "an unknown return type",
			run: func(b *StubBuilder) error {
				b.SetCallPattern(CallPatternSync)
				return b.SetFunctionReturnType("uint128")
			},
			err: stub.ErrUnknownType,
		},
		{
			caption: "an element count must be positive",
			run: func(b *StubBuilder) error {
				b.SetCallPattern(CallPatternSync)
				return b.AddFunctionInputParameter("x", "int8", 0)
			},
			err: ErrInvalidElementCount,
		},
		{
			caption: "parameter names must be unique within a function",
			run: func(b *StubBuilder) error {
				b.SetCallPattern(CallPatternSync)
				err := b.AddFunctionInputParameter("x", "int8", 1)
				if err != nil {
					return err
				}
				return b.AddFunctionInputParameter("x", "bool", 1)
			},
			err: ErrDuplicateParameter,
		},
		{
			caption: "parameter names may repeat across functions",
			run: func(b *StubBuilder) error {
				b.SetCallPattern(CallPatternSync)
				err := b.AddFunctionInputParameter("x", "int8", 1)
				if err != nil {
					return err
				}
				b.SetCallPattern(CallPatternSync)
				return b.AddFunctionInputParameter("x", "int8", 1)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			err := tt.run(NewStubBuilder(nil))
			if tt.err == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.err) {
				t.Fatalf("unexpected error; want: %v, got: %v", tt.err, err)
			}
		})
	}
}

func TestStubBuilder_Generate(t *testing.T) {
	mustPanic := func(t *testing.T, f func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Fatal("a panic must occur")
			}
		}()
		f()
	}

	t.Run("generating without a name panics", func(t *testing.T) {
		mustPanic(t, func() {
			NewStubBuilder(nil).Generate()
		})
	})

	t.Run("generating twice panics", func(t *testing.T) {
		b := NewStubBuilder(nil)
		b.SetName("s")
		b.Generate()
		mustPanic(t, func() {
			b.Generate()
		})
	})

	t.Run("an id alone does not make a stub deployable", func(t *testing.T) {
		b := NewStubBuilder(nil)
		b.SetName("s")
		b.SetAcceleratorID(47)
		if b.Generate().Deployable() {
			t.Fatal("a stub without an address must not be deployable")
		}
	})
}

func TestFunctionBuilder(t *testing.T) {
	fb := NewFunctionBuilder()
	fb.SetName("doSomething")
	f := fb.Build()
	if sig := f.Signature(); sig != "void doSomething(void)" {
		t.Fatalf("the return type must default to void; got: %v", sig)
	}

	fb.SetNamePrefix("another_test")
	if sig := fb.Build().Signature(); sig != "void another_test_doSomething(void)" {
		t.Fatalf("unexpected signature: %v", sig)
	}
	if fb.Name() != "doSomething" {
		t.Fatalf("unexpected name: %v", fb.Name())
	}
}
