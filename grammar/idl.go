package grammar

import (
	"fmt"
	"sync"

	"github.com/elasticai/stubgen/idl"
)

// Non-terminal names of the IDL grammar. The semantic pass dispatches on them.
const (
	NonTerminalStub       = "stub"
	NonTerminalAttrs      = "attrs"
	NonTerminalAttr       = "attr"
	NonTerminalFunctions  = "functions"
	NonTerminalFunction   = "function"
	NonTerminalPattern    = "pattern"
	NonTerminalReturnType = "return_type"
	NonTerminalParams     = "params"
	NonTerminalParam      = "param"
	NonTerminalPrimType   = "prim_type"
)

var idlTerminals = []idl.TokenKind{
	idl.TokenKindKWStub,
	idl.TokenKindKWSync,
	idl.TokenKindKWAsync,
	idl.TokenKindKWPath,
	idl.TokenKindKWAddress,
	idl.TokenKindKWDeploy,
	idl.TokenKindKWBool,
	idl.TokenKindKWInt8,
	idl.TokenKindKWInt16,
	idl.TokenKindKWInt32,
	idl.TokenKindKWInt64,
	idl.TokenKindKWVoid,
	idl.TokenKindLBracket,
	idl.TokenKindRBracket,
	idl.TokenKindLParen,
	idl.TokenKindRParen,
	idl.TokenKindComma,
	idl.TokenKindColon,
	idl.TokenKindNumber,
	idl.TokenKindName,
	idl.TokenKindPath,
}

func terminalAlias(kind idl.TokenKind) string {
	if s := idl.Spelling(kind); s != "" {
		return fmt.Sprintf("'%v'", s)
	}
	switch kind {
	case idl.TokenKindNumber:
		return "number"
	case idl.TokenKindName:
		return "identifier"
	case idl.TokenKindPath:
		return "path"
	}
	return ""
}

// NewIDLGrammarBuilder declares the IDL grammar. Lists are left-recursive so that the parser
// reduces their elements in source order.
func NewIDLGrammarBuilder() *GrammarBuilder {
	b := NewGrammarBuilder("idl")
	for _, kind := range idlTerminals {
		b.Terminal(kind.String(), terminalAlias(kind))
	}

	t := func(kind idl.TokenKind) string {
		return kind.String()
	}

	b.Production(NonTerminalStub, t(idl.TokenKindKWStub), t(idl.TokenKindName), NonTerminalAttrs, NonTerminalFunctions)
	b.Production(NonTerminalStub, t(idl.TokenKindKWStub), t(idl.TokenKindName), NonTerminalFunctions)
	b.Production(NonTerminalAttrs, NonTerminalAttrs, NonTerminalAttr)
	b.Production(NonTerminalAttrs, NonTerminalAttr)
	b.Production(NonTerminalAttr, t(idl.TokenKindKWPath), t(idl.TokenKindPath))
	b.Production(NonTerminalAttr, t(idl.TokenKindKWAddress), t(idl.TokenKindNumber))
	b.Production(NonTerminalAttr, t(idl.TokenKindKWDeploy), t(idl.TokenKindNumber), t(idl.TokenKindNumber))
	b.Production(NonTerminalFunctions, NonTerminalFunctions, NonTerminalFunction)
	b.Production(NonTerminalFunctions, NonTerminalFunction)
	b.Production(NonTerminalFunction, NonTerminalPattern, t(idl.TokenKindName), t(idl.TokenKindLParen), NonTerminalParams, t(idl.TokenKindRParen), t(idl.TokenKindColon), NonTerminalReturnType)
	b.Production(NonTerminalFunction, NonTerminalPattern, t(idl.TokenKindName), t(idl.TokenKindLParen), t(idl.TokenKindRParen), t(idl.TokenKindColon), NonTerminalReturnType)
	b.Production(NonTerminalPattern, t(idl.TokenKindKWSync))
	b.Production(NonTerminalPattern, t(idl.TokenKindKWAsync))
	b.Production(NonTerminalReturnType, t(idl.TokenKindKWInt8))
	b.Production(NonTerminalReturnType, t(idl.TokenKindKWVoid))
	b.Production(NonTerminalParams, NonTerminalParams, t(idl.TokenKindComma), NonTerminalParam)
	b.Production(NonTerminalParams, NonTerminalParam)
	b.Production(NonTerminalParam, NonTerminalPrimType, t(idl.TokenKindName))
	b.Production(NonTerminalParam, NonTerminalPrimType, t(idl.TokenKindLBracket), t(idl.TokenKindNumber), t(idl.TokenKindRBracket), t(idl.TokenKindName))
	b.Production(NonTerminalPrimType, t(idl.TokenKindKWBool))
	b.Production(NonTerminalPrimType, t(idl.TokenKindKWInt8))
	b.Production(NonTerminalPrimType, t(idl.TokenKindKWInt16))
	b.Production(NonTerminalPrimType, t(idl.TokenKindKWInt32))
	b.Production(NonTerminalPrimType, t(idl.TokenKindKWInt64))

	return b
}

var (
	idlOnce    sync.Once
	idlGrammar *CompiledGrammar
	idlErr     error
)

// IDL returns the compiled IDL grammar. It is compiled on the first call and shared afterwards;
// callers must not modify it.
func IDL() (*CompiledGrammar, error) {
	idlOnce.Do(func() {
		g, err := NewIDLGrammarBuilder().Build()
		if err != nil {
			idlErr = err
			return
		}
		idlGrammar, idlErr = Compile(g)
	})
	return idlGrammar, idlErr
}
