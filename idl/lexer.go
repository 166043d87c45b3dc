package idl

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

type TokenKind string

const (
	TokenKindKWStub    = TokenKind("kw_stub")
	TokenKindKWSync    = TokenKind("kw_sync")
	TokenKindKWAsync   = TokenKind("kw_async")
	TokenKindKWPath    = TokenKind("kw_path")
	TokenKindKWAddress = TokenKind("kw_address")
	TokenKindKWDeploy  = TokenKind("kw_deploy")
	TokenKindKWBool    = TokenKind("kw_bool")
	TokenKindKWInt8    = TokenKind("kw_int8")
	TokenKindKWInt16   = TokenKind("kw_int16")
	TokenKindKWInt32   = TokenKind("kw_int32")
	TokenKindKWInt64   = TokenKind("kw_int64")
	TokenKindKWVoid    = TokenKind("kw_void")
	TokenKindLBracket  = TokenKind("l_bracket")
	TokenKindRBracket  = TokenKind("r_bracket")
	TokenKindLParen    = TokenKind("l_paren")
	TokenKindRParen    = TokenKind("r_paren")
	TokenKindComma     = TokenKind("comma")
	TokenKindColon     = TokenKind("colon")
	TokenKindNumber    = TokenKind("number")
	TokenKindName      = TokenKind("name")
	TokenKindPath      = TokenKind("path_string")
	TokenKindEOF       = TokenKind("<eof>")
	TokenKindInvalid   = TokenKind("<invalid>")

	tokenKindWhiteSpace = TokenKind("white_space")
)

func (k TokenKind) String() string {
	return string(k)
}

const (
	lexModeDefault = mlspec.LexModeName("default")
	lexModePath    = mlspec.LexModeName("path")
)

type lexEntry struct {
	kind    TokenKind
	pattern string
	literal bool
	modes   []mlspec.LexModeName
	push    mlspec.LexModeName
	pop     bool
}

// lexEntries is ordered by priority. When several entries match a lexeme of the same length,
// the lexer picks the one defined first, so keywords must precede `name`.
var lexEntries = []*lexEntry{
	{kind: tokenKindWhiteSpace, pattern: "[\u0009\u000A\u000D ]+", modes: []mlspec.LexModeName{lexModeDefault, lexModePath}},
	{kind: TokenKindKWStub, pattern: "stub", literal: true},
	{kind: TokenKindKWSync, pattern: "sync", literal: true},
	{kind: TokenKindKWAsync, pattern: "async", literal: true},
	{kind: TokenKindKWPath, pattern: "path", literal: true, push: lexModePath},
	{kind: TokenKindKWAddress, pattern: "address", literal: true},
	{kind: TokenKindKWDeploy, pattern: "deploy", literal: true},
	{kind: TokenKindKWBool, pattern: "bool", literal: true},
	{kind: TokenKindKWInt8, pattern: "int8", literal: true},
	{kind: TokenKindKWInt16, pattern: "int16", literal: true},
	{kind: TokenKindKWInt32, pattern: "int32", literal: true},
	{kind: TokenKindKWInt64, pattern: "int64", literal: true},
	{kind: TokenKindKWVoid, pattern: "void", literal: true},
	{kind: TokenKindLBracket, pattern: "[", literal: true},
	{kind: TokenKindRBracket, pattern: "]", literal: true},
	{kind: TokenKindLParen, pattern: "(", literal: true},
	{kind: TokenKindRParen, pattern: ")", literal: true},
	{kind: TokenKindComma, pattern: ",", literal: true},
	{kind: TokenKindColon, pattern: ":", literal: true},
	{kind: TokenKindNumber, pattern: "[0-9]+"},
	{kind: TokenKindName, pattern: "[A-Za-z][0-9A-Za-z_]*"},
	// A path string accepts almost anything, so it is only reachable right after the `path` keyword.
	{kind: TokenKindPath, pattern: "[^\u0009\u000A\u000D ]+", modes: []mlspec.LexModeName{lexModePath}, pop: true},
}

// Keywords returns the spellings of the keyword tokens keyed by their kinds.
func Keywords() map[TokenKind]string {
	kws := map[TokenKind]string{}
	for _, e := range lexEntries {
		if !e.literal || !strings.HasPrefix(e.kind.String(), "kw_") {
			continue
		}
		kws[e.kind] = e.pattern
	}
	return kws
}

// Spelling returns the fixed spelling of a token kind, or an empty string when the kind matches
// a variable lexeme.
func Spelling(kind TokenKind) string {
	for _, e := range lexEntries {
		if e.kind == kind && e.literal {
			return e.pattern
		}
	}
	return ""
}

func genLexSpec() *mlspec.LexSpec {
	entries := make([]*mlspec.LexEntry, 0, len(lexEntries))
	for _, e := range lexEntries {
		pattern := e.pattern
		if e.literal {
			pattern = mlspec.EscapePattern(pattern)
		}
		entries = append(entries, &mlspec.LexEntry{
			Modes:   e.modes,
			Kind:    mlspec.LexKindName(e.kind),
			Pattern: mlspec.LexPattern(pattern),
			Push:    e.push,
			Pop:     e.pop,
		})
	}
	return &mlspec.LexSpec{
		Name:    "idl",
		Entries: entries,
	}
}

var (
	compileOnce sync.Once
	clspec      *mlspec.CompiledLexSpec
	compileErr  error
)

func compiledLexSpec() (*mlspec.CompiledLexSpec, error) {
	compileOnce.Do(func() {
		s, err, cErrs := mlcompiler.Compile(genLexSpec(), mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				var b strings.Builder
				writeCompileError(&b, cErrs[0])
				for _, cerr := range cErrs[1:] {
					fmt.Fprintf(&b, "\n")
					writeCompileError(&b, cerr)
				}
				compileErr = fmt.Errorf("cannot compile the lexical specification: %v", b.String())
				return
			}
			compileErr = fmt.Errorf("cannot compile the lexical specification: %w", err)
			return
		}
		clspec = s
	})
	return clspec, compileErr
}

func writeCompileError(w io.Writer, cErr *mlcompiler.CompileError) {
	if cErr.Fragment {
		fmt.Fprintf(w, "fragment ")
	}
	fmt.Fprintf(w, "%v: %v", cErr.Kind, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}

// Token is a lexeme of IDL source. Row and Col are zero-based; Col counts code points.
type Token struct {
	Kind    TokenKind
	Text    string
	Row     int
	Col     int
	EOF     bool
	Invalid bool
}

func (t *Token) String() string {
	switch {
	case t.EOF:
		return TokenKindEOF.String()
	case t.Invalid:
		return fmt.Sprintf("'%v' (%v)", t.Text, TokenKindInvalid)
	}
	return fmt.Sprintf("'%v' (%v)", t.Text, t.Kind)
}

// Lexer yields the tokens of IDL source on demand. White spaces are never returned.
type Lexer struct {
	src  []byte
	spec *mlspec.CompiledLexSpec
	d    *mldriver.Lexer
	done bool
}

func NewLexer(src io.Reader) (*Lexer, error) {
	b, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	s, err := compiledLexSpec()
	if err != nil {
		return nil, err
	}
	l := &Lexer{
		src:  b,
		spec: s,
	}
	err = l.Restart()
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Restart rewinds the lexer to the beginning of the source.
func (l *Lexer) Restart() error {
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(l.spec), bytes.NewReader(l.src))
	if err != nil {
		return err
	}
	l.d = d
	l.done = false
	return nil
}

// Next returns the next token. Once the EOF token has been returned, Next keeps returning it.
func (l *Lexer) Next() (*Token, error) {
	if l.done {
		return &Token{
			Kind: TokenKindEOF,
			EOF:  true,
		}, nil
	}

	for {
		tok, err := l.d.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			l.done = true
			return &Token{
				Kind: TokenKindEOF,
				Row:  tok.Row,
				Col:  tok.Col,
				EOF:  true,
			}, nil
		}
		if tok.Invalid {
			return &Token{
				Kind:    TokenKindInvalid,
				Text:    string(tok.Lexeme),
				Row:     tok.Row,
				Col:     tok.Col,
				Invalid: true,
			}, nil
		}

		kind := TokenKind(l.spec.KindNames[tok.KindID].String())
		if kind == tokenKindWhiteSpace {
			continue
		}

		return &Token{
			Kind: kind,
			Text: string(tok.Lexeme),
			Row:  tok.Row,
			Col:  tok.Col,
		}, nil
	}
}

// Tokenize returns all tokens of src including the trailing EOF token.
func Tokenize(src io.Reader) ([]*Token, error) {
	l, err := NewLexer(src)
	if err != nil {
		return nil, err
	}
	var toks []*Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.EOF {
			return toks, nil
		}
	}
}
