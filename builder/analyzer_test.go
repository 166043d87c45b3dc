package builder

import (
	"errors"
	"strings"
	"testing"

	"github.com/elasticai/stubgen/driver"
	verr "github.com/elasticai/stubgen/error"
	"github.com/elasticai/stubgen/grammar"
	"github.com/elasticai/stubgen/stub"
)

func parse(t *testing.T, src string) *driver.Node {
	t.Helper()

	cg, err := grammar.IDL()
	if err != nil {
		t.Fatal(err)
	}
	gram := driver.NewGrammar(cg)
	toks, err := driver.NewTokenStream(gram, strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	treeAct := driver.NewSyntaxTreeActionSet(gram)
	p, err := driver.NewParser(toks, gram, driver.SemanticAction(treeAct))
	if err != nil {
		t.Fatal(err)
	}
	err = p.Parse()
	if err != nil {
		t.Fatal(err)
	}
	return treeAct.CST()
}

func TestAnalyzer_Analyze(t *testing.T) {
	src := `
stub another_test

path ../middleware
deploy 47 4000

sync doSomething () : void
sync predict ( int8[6] inputs, bool more_inputs ) : int8
`
	b := NewStubBuilder(nil)
	a := NewAnalyzer(b)
	err := a.Analyze(parse(t, src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Warnings()) != 0 {
		t.Fatalf("unexpected warnings: %v", a.Warnings())
	}

	s := b.Generate()
	if s.Name != "another_test" || s.MiddlewarePath != "../middleware" || !s.Deployable() {
		t.Fatalf("unexpected stub: %+v", s)
	}
	var sigs []string
	for _, f := range s.Functions() {
		sigs = append(sigs, f.Signature())
	}
	want := []string{
		"void another_test_doSomething(void)",
		"int8_t another_test_predict(int8_t *inputs, bool more_inputs)",
	}
	if strings.Join(sigs, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected functions; want: %v, got: %v", want, sigs)
	}
	offsets := s.Functions()[1].Offsets()
	if offsets[0] != 0 || offsets[1] != 6 {
		t.Fatalf("unexpected offsets: %v", offsets)
	}
}

func TestAnalyzer_AddressIsIgnored(t *testing.T) {
	b := NewStubBuilder(nil)
	a := NewAnalyzer(b, SourceName("s.idl"))
	err := a.Analyze(parse(t, "stub s\naddress 4000\nsync f() : void"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ws := a.Warnings()
	if len(ws) != 1 {
		t.Fatalf("unexpected warning count; want: 1, got: %v", len(ws))
	}
	if !errors.Is(ws[0], WarnAddressIgnored) || !ws[0].Warning || ws[0].Row != 2 || ws[0].Col != 1 {
		t.Fatalf("unexpected warning: %v", ws[0])
	}
	if b.Generate().Deployable() {
		t.Fatal("an address attribute must not make a stub deployable")
	}
}

func TestAnalyzer_Errors(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		err     error
		row     int
		col     int
	}{
		{
			caption: "async functions are rejected",
			src:     "stub s\nasync f() : void",
			err:     ErrUnsupportedPattern,
			row:     2,
			col:     1,
		},
		{
			caption: "function names must be unique",
			src:     "stub s\nsync f() : void\nsync f(bool x) : int8",
			err:     ErrDuplicateFunction,
			row:     3,
			col:     6,
		},
		{
			caption: "parameter names must be unique",
			src:     "stub s\nsync f(bool x, int8 x) : void",
			err:     ErrDuplicateParameter,
			row:     2,
			col:     16,
		},
		{
			caption: "an array needs at least one element",
			src:     "stub s sync f(int8[0] x) : void",
			err:     ErrInvalidElementCount,
			row:     1,
			col:     15,
		},
		{
			caption: "an accelerator id must fit in 64 bits",
			src:     "stub s deploy 18446744073709551616 1 sync f() : void",
			err:     ErrNumberOutOfRange,
			row:     1,
			col:     15,
		},
		{
			caption: "an accelerator address must fit in 32 bits",
			src:     "stub s deploy 1 4294967296 sync f() : void",
			err:     ErrNumberOutOfRange,
			row:     1,
			col:     17,
		},
		{
			caption: "an element count must fit in 32 bits",
			src:     "stub x sync f(int64[2305843009213693952] a, int8 b) : void",
			err:     ErrNumberOutOfRange,
			row:     1,
			col:     21,
		},
		{
			caption: "an array must fit in the 32-bit address space",
			src:     "stub x sync f(int64[536870912] a) : void",
			err:     ErrNumberOutOfRange,
			row:     1,
			col:     21,
		},
		{
			caption: "the inputs of a function must end within the 32-bit address space",
			src:     "stub x sync f(int32[1073741823] a, int32[2] b) : void",
			err:     ErrNumberOutOfRange,
			row:     1,
			col:     42,
		},
		{
			caption: "a scalar can overflow the address space too",
			src:     "stub x sync f(int32[1073741823] a, int32 b) : void",
			err:     ErrNumberOutOfRange,
			row:     1,
			col:     36,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			err := NewAnalyzer(NewStubBuilder(nil)).Analyze(parse(t, tt.src))
			if !errors.Is(err, tt.err) {
				t.Fatalf("unexpected error; want: %v, got: %v", tt.err, err)
			}
			var specErr *verr.SpecError
			if !errors.As(err, &specErr) {
				t.Fatalf("an error must be a spec error; got: %T", err)
			}
			if specErr.Row != tt.row || specErr.Col != tt.col {
				t.Fatalf("unexpected position; want: %v:%v, got: %v:%v", tt.row, tt.col, specErr.Row, specErr.Col)
			}
		})
	}
}

func TestAnalyzer_MaxValues(t *testing.T) {
	b := NewStubBuilder(nil)
	err := NewAnalyzer(b).Analyze(parse(t, "stub s deploy 18446744073709551615 4294967295 sync f() : void"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vars := b.Generate().Variables()
	if vars[0].InitialValue != "18446744073709551615" || vars[1].InitialValue != "4294967295" {
		t.Fatalf("unexpected values: %v, %v", vars[0].InitialValue, vars[1].InitialValue)
	}
	if vars[0].Type != stub.PrimitiveTypeID || vars[1].Type != stub.PrimitiveTypeAddress {
		t.Fatalf("unexpected types: %v, %v", vars[0].Type, vars[1].Type)
	}
}
