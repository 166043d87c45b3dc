package driver

import (
	"fmt"
	"strings"
)

type Grammar interface {
	// InitialState returns the initial state of a parser.
	InitialState() int

	// StartProduction returns the start production of grammar.
	StartProduction() int

	// Action returns an ACTION entry corresponding to a (state, terminal symbol) pair.
	Action(state int, terminal int) int

	// GoTo returns a GOTO entry corresponding to a (state, non-terminal symbol) pair.
	GoTo(state int, lhs int) int

	// AlternativeSymbolCount returns the RHS length of a production.
	AlternativeSymbolCount(prod int) int

	// TerminalCount returns a terminal symbol count of grammar.
	TerminalCount() int

	// LHS returns a LHS symbol of a production.
	LHS(prod int) int

	// EOF returns the EOF symbol.
	EOF() int

	// Terminal returns a string representation of a terminal symbol.
	Terminal(terminal int) string

	// TerminalAlias returns a human-readable spelling of a terminal symbol.
	TerminalAlias(terminal int) string

	// NonTerminal returns a string representation of a non-terminal symbol.
	NonTerminal(nonTerminal int) string

	// TerminalID returns the terminal symbol named name.
	TerminalID(name string) (int, bool)

	// ExpectedTerminals returns the terminal symbols having an ACTION entry in a state.
	ExpectedTerminals(state int) []int
}

type VToken interface {
	// TerminalID returns a terminal ID.
	TerminalID() int

	// Lexeme returns a lexeme.
	Lexeme() []byte

	// EOF returns true when a token represents EOF.
	EOF() bool

	// Invalid returns true when a token is invalid.
	Invalid() bool

	// Position returns (row, column) pair.
	Position() (int, int)
}

type TokenStream interface {
	Next() (VToken, error)
}

// SyntaxError reports the first token the parsing table has no entry for. Row and Col are zero-based.
type SyntaxError struct {
	Row               int
	Col               int
	Message           string
	Token             VToken
	ExpectedTerminals []string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "syntax error: %v", e.Message)
	switch {
	case e.Token == nil:
	case e.Token.EOF():
		fmt.Fprintf(&b, ": unexpected end of input")
	default:
		fmt.Fprintf(&b, ": '%v'", string(e.Token.Lexeme()))
	}
	if len(e.ExpectedTerminals) > 0 {
		fmt.Fprintf(&b, "; expected: %v", strings.Join(e.ExpectedTerminals, ", "))
	}
	return b.String()
}

type ParserOption func(p *Parser) error

func SemanticAction(semAct SemanticActionSet) ParserOption {
	return func(p *Parser) error {
		p.semAct = semAct
		return nil
	}
}

// Parser is a table-driven LR parser. It stops at the first syntax error.
type Parser struct {
	toks       TokenStream
	gram       Grammar
	stateStack *stateStack
	semAct     SemanticActionSet
}

func NewParser(toks TokenStream, gram Grammar, opts ...ParserOption) (*Parser, error) {
	p := &Parser{
		toks:       toks,
		gram:       gram,
		stateStack: &stateStack{},
	}

	for _, opt := range opts {
		err := opt(p)
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *Parser) Parse() error {
	p.stateStack.push(p.gram.InitialState())
	tok, err := p.toks.Next()
	if err != nil {
		return err
	}

	for {
		act := p.lookupAction(tok)

		switch {
		case act < 0: // Shift
			p.shift(act * -1)

			if p.semAct != nil {
				p.semAct.Shift(tok)
			}

			tok, err = p.toks.Next()
			if err != nil {
				return err
			}
		case act > 0: // Reduce
			accepted := p.reduce(act)
			if accepted {
				if p.semAct != nil {
					p.semAct.Accept()
				}

				return nil
			}

			if p.semAct != nil {
				p.semAct.Reduce(act)
			}
		default: // Error
			row, col := tok.Position()
			msg := "unexpected token"
			if tok.Invalid() {
				msg = "invalid token"
			}
			return &SyntaxError{
				Row:               row,
				Col:               col,
				Message:           msg,
				Token:             tok,
				ExpectedTerminals: p.searchLookahead(p.stateStack.top()),
			}
		}
	}
}

func (p *Parser) lookupAction(tok VToken) int {
	if tok.Invalid() {
		return 0
	}
	return p.gram.Action(p.stateStack.top(), tok.TerminalID())
}

func (p *Parser) shift(nextState int) {
	p.stateStack.push(nextState)
}

func (p *Parser) reduce(prodNum int) bool {
	if prodNum == p.gram.StartProduction() {
		return true
	}
	lhs := p.gram.LHS(prodNum)
	n := p.gram.AlternativeSymbolCount(prodNum)
	p.stateStack.pop(n)
	nextState := p.gram.GoTo(p.stateStack.top(), lhs)
	p.stateStack.push(nextState)
	return false
}

func (p *Parser) searchLookahead(state int) []string {
	terms := p.gram.ExpectedTerminals(state)
	names := make([]string, 0, len(terms))
	for _, term := range terms {
		if term == p.gram.EOF() {
			names = append(names, "<eof>")
			continue
		}

		if alias := p.gram.TerminalAlias(term); alias != "" {
			names = append(names, alias)
		} else {
			names = append(names, p.gram.Terminal(term))
		}
	}

	return names
}

type stateStack struct {
	items []int
}

func (s *stateStack) top() int {
	return s.items[len(s.items)-1]
}

func (s *stateStack) push(state int) {
	s.items = append(s.items, state)
}

func (s *stateStack) pop(n int) {
	s.items = s.items[:len(s.items)-n]
}
