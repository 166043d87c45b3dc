package builder

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
	ErrMissingName          = newSemanticError("a stub needs a name")
	ErrUnsupportedPattern   = newSemanticError("unsupported call pattern")
	ErrNoFunctionInProgress = newSemanticError("no function is under construction")
	ErrInvalidElementCount  = newSemanticError("an element count must be 1 or greater")
	ErrDuplicateParameter   = newSemanticError("duplicate parameter")
	ErrDuplicateFunction    = newSemanticError("duplicate function")
	ErrNoFunction           = newSemanticError("a stub needs at least one function")
	ErrNumberOutOfRange     = newSemanticError("number out of range")

	// WarnAddressIgnored is reported, not returned. The `address` attribute parses but changes nothing.
	WarnAddressIgnored = newSemanticError("the address attribute has no effect; use deploy <id> <address>")
)
