package compiler

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/elasticai/stubgen/builder"
	"github.com/elasticai/stubgen/config"
	"github.com/elasticai/stubgen/driver"
	verr "github.com/elasticai/stubgen/error"
	"github.com/google/go-cmp/cmp"
)

func TestCompile(t *testing.T) {
	res, err := Compile(strings.NewReader("stub test\nsync function () : void"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectedHeader := `#ifndef TEST_STUB_H
#define TEST_STUB_H

#include <stdbool.h>
#include <stdint.h>

void test_function(void);

#endif
`
	if diff := cmp.Diff(expectedHeader, res.Stub.Header()); diff != "" {
		t.Fatalf("unexpected header (-want +got):\n%v", diff)
	}
	src := res.Stub.Source()
	want := "   modelCompute(true);\n\n   while( middlewareUserlogicGetBusyStatus() );\n\n   modelCompute(false);\n"
	if !strings.Contains(src, want) {
		t.Fatalf("the busy poll must be surrounded by the compute trigger; got:\n%v", src)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
}

func TestCompile_Deploy(t *testing.T) {
	src := `
stub another_test
path ../middleware
deploy 47 4000
sync predict ( int8[6] inputs, bool more_inputs ) : int8
`
	res, err := Compile(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	header := res.Stub.Header()
	source := res.Stub.Source()
	for _, want := range []string{
		"bool another_test_deploy(void);\n",
		"int8_t another_test_predict(int8_t *inputs, bool more_inputs);\n",
	} {
		if !strings.Contains(header, want) {
			t.Fatalf("the header must contain %#v; got:\n%v", want, header)
		}
	}
	for _, want := range []string{
		"static uint64_t accelerator_id = 47;\nstatic uint32_t accelerator_addr = 4000;\n",
		"middlewareWriteBlocking(ADDR_SKELETON_INPUTS+0, (uint8_t*)(inputs), 6);\n",
		"middlewareWriteBlocking(ADDR_SKELETON_INPUTS+6, (uint8_t*)(&more_inputs), 1);\n",
		"#include \"../middleware/middleware.h\"\n",
	} {
		if !strings.Contains(source, want) {
			t.Fatalf("the source must contain %#v; got:\n%v", want, source)
		}
	}
	if n := strings.Count(source, "bool another_test_deploy(void)\n{\n"); n != 1 {
		t.Fatalf("a deploy function must be defined exactly once; got: %v", n)
	}
}

func TestCompile_WithConfig(t *testing.T) {
	c := config.Default()
	c.ReadRepeat = 3
	c.SettleDelayMS = 10
	res, err := Compile(strings.NewReader("stub s deploy 1 2 sync f() : int8"), WithConfig(c))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	source := res.Stub.Source()
	if n := strings.Count(source, "middlewareReadBlocking("); n != 3 {
		t.Fatalf("unexpected read count; want: 3, got: %v", n)
	}
	if !strings.Contains(source, "sleep_for_ms(10);") {
		t.Fatalf("the settle delay must be configurable; got:\n%v", source)
	}

	invalid := config.Default()
	invalid.ReadRepeat = 0
	_, err = Compile(strings.NewReader("stub s sync f() : void"), WithConfig(invalid))
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("unexpected error; want: %v, got: %v", config.ErrInvalidConfig, err)
	}
}

func TestCompile_Warnings(t *testing.T) {
	res, err := Compile(strings.NewReader("stub s address 4000 sync f() : void"), WithSourceName("s.idl"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Warnings) != 1 || !errors.Is(res.Warnings[0], builder.WarnAddressIgnored) {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
	if !strings.HasPrefix(res.Warnings[0].Error(), "s.idl: 1: warning: the address attribute has no effect") {
		t.Fatalf("unexpected warning message: %v", res.Warnings[0])
	}
}

func TestCompile_Errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.idl")
	src := "stub s\nsync f(bool x, bool x) : void\n"
	err := os.WriteFile(path, []byte(src), 0644)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		caption string
		src     string
		err     error
		message string
	}{
		{
			caption: "a semantic error quotes the source line",
			src:     src,
			err:     builder.ErrDuplicateParameter,
			message: "s.idl: 2: error: duplicate parameter: x\n    sync f(bool x, bool x) : void\n                   ^",
		},
		{
			caption: "async is rejected",
			src:     "stub s\nasync f() : void\n",
			err:     builder.ErrUnsupportedPattern,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			_, err := Compile(strings.NewReader(tt.src), WithSourceName("s.idl"), WithFilePath(path))
			if !errors.Is(err, tt.err) {
				t.Fatalf("unexpected error; want: %v, got: %v", tt.err, err)
			}
			if tt.message != "" && err.Error() != tt.message {
				t.Fatalf("unexpected message; want: %#v, got: %#v", tt.message, err.Error())
			}
		})
	}
}

func TestCompile_SyntaxError(t *testing.T) {
	_, err := Compile(strings.NewReader("stub s\nsync f() : int16"), WithSourceName("s.idl"))
	var specErr *verr.SpecError
	if !errors.As(err, &specErr) {
		t.Fatalf("a syntax error must be a spec error; got: %v", err)
	}
	if specErr.Row != 2 || specErr.Col != 12 {
		t.Fatalf("unexpected position; want: 2:12, got: %v:%v", specErr.Row, specErr.Col)
	}
	var synErr *driver.SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("a spec error must wrap a syntax error; got: %v", err)
	}
	want := "s.idl: 2: error: syntax error: unexpected token: 'int16'; expected: 'int8', 'void'"
	if err.Error() != want {
		t.Fatalf("unexpected message; want: %#v, got: %#v", want, err.Error())
	}
}

func TestParse(t *testing.T) {
	cst, err := Parse(strings.NewReader("stub s sync f() : void"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cst.KindName != "stub" || len(cst.Children) != 3 {
		t.Fatalf("unexpected tree: %v %v", cst.KindName, len(cst.Children))
	}
}
