package grammar

import (
	"testing"
)

type testSymbolGenerator func(text string) symbol

func newTestSymbolGenerator(t *testing.T, symTab *symbolTable) testSymbolGenerator {
	return func(text string) symbol {
		t.Helper()

		sym, ok := symTab.toSymbol(text)
		if !ok {
			t.Fatalf("symbol was not found: %v", text)
		}
		return sym
	}
}

type testProductionGenerator func(lhs string, rhs ...string) *production

func newTestProductionGenerator(t *testing.T, genSym testSymbolGenerator) testProductionGenerator {
	return func(lhs string, rhs ...string) *production {
		t.Helper()

		rhsSym := []symbol{}
		for _, text := range rhs {
			rhsSym = append(rhsSym, genSym(text))
		}
		prod, err := newProduction(genSym(lhs), rhsSym)
		if err != nil {
			t.Fatalf("failed to create a production: %v", err)
		}

		return prod
	}
}

type testLR0ItemGenerator func(lhs string, dot int, rhs ...string) *lrItem

func newTestLR0ItemGenerator(t *testing.T, genProd testProductionGenerator) testLR0ItemGenerator {
	return func(lhs string, dot int, rhs ...string) *lrItem {
		t.Helper()

		prod := genProd(lhs, rhs...)
		item, err := newLR0Item(prod, dot)
		if err != nil {
			t.Fatalf("failed to create a LR0 item: %v", err)
		}

		return item
	}
}

// newExprGrammarBuilder returns the classic arithmetic expression grammar.
func newExprGrammarBuilder() *GrammarBuilder {
	return NewGrammarBuilder("expr").
		Terminal("add", "'+'").
		Terminal("mul", "'*'").
		Terminal("l_paren", "'('").
		Terminal("r_paren", "')'").
		Terminal("id", "identifier").
		Production("expr", "expr", "add", "term").
		Production("expr", "term").
		Production("term", "term", "mul", "factor").
		Production("term", "factor").
		Production("factor", "l_paren", "expr", "r_paren").
		Production("factor", "id")
}

// accepts runs the parsing table over a sequence of terminal names without building anything.
func accepts(t *testing.T, g *CompiledGrammar, input []string) bool {
	t.Helper()

	tab := g.ParsingTable
	stack := []int{tab.InitialState}
	pos := 0
	next := func() int {
		if pos >= len(input) {
			return tab.EOFSymbol
		}
		term, ok := g.TerminalID(input[pos])
		if !ok {
			t.Fatalf("unknown terminal: %v", input[pos])
		}
		return term
	}
	term := next()
	for {
		act := tab.Action[stack[len(stack)-1]*tab.TerminalCount+term]
		switch {
		case act < 0:
			stack = append(stack, act*-1)
			pos++
			term = next()
		case act > 0:
			if act == tab.StartProduction {
				return true
			}
			stack = stack[:len(stack)-tab.AlternativeSymbolCounts[act]]
			lhs := tab.LHSSymbols[act]
			stack = append(stack, tab.GoTo[stack[len(stack)-1]*tab.NonTerminalCount+lhs])
		default:
			return false
		}
	}
}
