package driver

import (
	"fmt"
	"io"

	"github.com/elasticai/stubgen/idl"
)

type vToken struct {
	terminalID int
	tok        *idl.Token
}

func (t *vToken) TerminalID() int {
	return t.terminalID
}

func (t *vToken) Lexeme() []byte {
	return []byte(t.tok.Text)
}

func (t *vToken) EOF() bool {
	return t.tok.EOF
}

func (t *vToken) Invalid() bool {
	return t.tok.Invalid
}

func (t *vToken) Position() (int, int) {
	return t.tok.Row, t.tok.Col
}

func (t *vToken) String() string {
	return t.tok.String()
}

type tokenStream struct {
	lex  *idl.Lexer
	gram Grammar
}

// NewTokenStream lexes IDL source and maps each token kind to the terminal of the same name.
func NewTokenStream(gram Grammar, src io.Reader) (TokenStream, error) {
	lex, err := idl.NewLexer(src)
	if err != nil {
		return nil, err
	}

	return &tokenStream{
		lex:  lex,
		gram: gram,
	}, nil
}

func (s *tokenStream) Next() (VToken, error) {
	tok, err := s.lex.Next()
	if err != nil {
		return nil, err
	}
	if tok.EOF {
		return &vToken{
			terminalID: s.gram.EOF(),
			tok:        tok,
		}, nil
	}
	if tok.Invalid {
		// 0 is the nil terminal, so the parsing table has no entry for an invalid token.
		return &vToken{
			tok: tok,
		}, nil
	}

	term, ok := s.gram.TerminalID(tok.Kind.String())
	if !ok {
		return nil, fmt.Errorf("a token kind has no corresponding terminal: %v", tok.Kind)
	}
	return &vToken{
		terminalID: term,
		tok:        tok,
	}, nil
}
