package error

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSpecError(t *testing.T) {
	cause := errors.New("unknown type")
	path := filepath.Join(t.TempDir(), "s.idl")
	err := os.WriteFile(path, []byte("stub s\n\tsync f(float x) : void\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		caption string
		err     *SpecError
		message string
	}{
		{
			caption: "a cause only",
			err: &SpecError{
				Cause: cause,
			},
			message: "error: unknown type",
		},
		{
			caption: "a source name, a row, and a detail",
			err: &SpecError{
				Cause:      cause,
				Detail:     "float",
				SourceName: "s.idl",
				Row:        2,
			},
			message: "s.idl: 2: error: unknown type: float",
		},
		{
			caption: "the source line and a caret",
			err: &SpecError{
				Cause:      cause,
				FilePath:   path,
				SourceName: "s.idl",
				Row:        2,
				Col:        9,
			},
			message: "s.idl: 2: error: unknown type\n    \tsync f(float x) : void\n    \t       ^",
		},
		{
			caption: "a warning",
			err: &SpecError{
				Cause:      cause,
				SourceName: "s.idl",
				Row:        2,
				Warning:    true,
			},
			message: "s.idl: 2: warning: unknown type",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			if msg := tt.err.Error(); msg != tt.message {
				t.Fatalf("unexpected message; want: %#v, got: %#v", tt.message, msg)
			}
			if !errors.Is(tt.err, cause) {
				t.Fatal("a spec error must unwrap to its cause")
			}
		})
	}
}
