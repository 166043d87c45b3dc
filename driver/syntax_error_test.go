package driver

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParserWithSyntaxErrorAndExpectedLookahead(t *testing.T) {
	tests := []struct {
		caption  string
		src      string
		message  string
		cause    string
		eof      bool
		row      int
		col      int
		expected []string
	}{
		{
			caption:  "a stub name must follow the stub keyword",
			src:      `stub 42 sync f() : void`,
			message:  "unexpected token",
			cause:    "42",
			row:      0,
			col:      5,
			expected: []string{"identifier"},
		},
		{
			caption: "a stub needs at least one function",
			src:     `stub s`,
			message: "unexpected token",
			eof:     true,
			expected: []string{
				"'sync'",
				"'async'",
				"'path'",
				"'address'",
				"'deploy'",
			},
		},
		{
			caption: "a keyword cannot be used as a name",
			src:     "stub s\nsync sync() : void",
			message: "unexpected token",
			cause:   "sync",
			row:     1,
			col:     5,
			expected: []string{
				"identifier",
			},
		},
		{
			caption: "an attribute cannot follow a function",
			src:     "stub s sync f() : void path p",
			message: "unexpected token",
			cause:   "path",
			row:     0,
			col:     23,
			expected: []string{
				"<eof>",
				"'sync'",
				"'async'",
			},
		},
		{
			caption: "int16 is not a return type",
			src:     "stub s sync f() : int16",
			message: "unexpected token",
			cause:   "int16",
			row:     0,
			col:     18,
			expected: []string{
				"'int8'",
				"'void'",
			},
		},
		{
			caption:  "an unknown character is an invalid token",
			src:      "stub s sync f($) : void",
			message:  "invalid token",
			cause:    "$",
			row:      0,
			col:      14,
			expected: []string{"'bool'", "'int8'", "'int16'", "'int32'", "'int64'", "')'"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			p := newIDLParser(t, tt.src)
			err := p.Parse()
			if err == nil {
				t.Fatal("an error must occur")
			}

			var synErr *SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("unexpected error: %v", err)
			}
			if synErr.Message != tt.message {
				t.Fatalf("unexpected message; want: %v, got: %v", tt.message, synErr.Message)
			}
			if tt.eof {
				if !synErr.Token.EOF() {
					t.Fatalf("the cause must be EOF; got: %v", string(synErr.Token.Lexeme()))
				}
			} else {
				if cause := string(synErr.Token.Lexeme()); cause != tt.cause {
					t.Fatalf("unexpected cause; want: %v, got: %v", tt.cause, cause)
				}
				if synErr.Row != tt.row || synErr.Col != tt.col {
					t.Fatalf("unexpected position; want: %v:%v, got: %v:%v", tt.row, tt.col, synErr.Row, synErr.Col)
				}
			}
			if diff := cmp.Diff(tt.expected, synErr.ExpectedTerminals); diff != "" {
				t.Fatalf("unexpected expected terminals (-want +got):\n%v", diff)
			}
		})
	}
}
