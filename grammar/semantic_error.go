package grammar

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	ErrNoStartSymbol       = newSemanticError("a grammar needs a start symbol")
	ErrNoProduction        = newSemanticError("a grammar needs at least one production")
	ErrUndefinedSym        = newSemanticError("undefined symbol")
	ErrUnusedProduction    = newSemanticError("unused production")
	ErrUnusedTerminal      = newSemanticError("unused terminal")
	ErrDuplicateProduction = newSemanticError("duplicate production")
	ErrDuplicateTerminal   = newSemanticError("duplicate terminal")
	ErrTerminalAsLHS       = newSemanticError("a terminal cannot appear on the LHS of a production")
	ErrConflict            = newSemanticError("the grammar is not LALR(1)")
)
