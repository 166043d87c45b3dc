package grammar

import (
	"fmt"
	"strings"
)

type terminalDef struct {
	name  string
	alias string
}

type productionDef struct {
	lhs string
	rhs []string
}

// GrammarBuilder collects the terminals and productions of a grammar. The LHS of the first production
// is the start symbol.
type GrammarBuilder struct {
	name  string
	terms []*terminalDef
	prods []*productionDef
}

func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{
		name: name,
	}
}

// Terminal declares a terminal symbol. alias is a human-readable spelling used in diagnostics.
func (b *GrammarBuilder) Terminal(name string, alias string) *GrammarBuilder {
	b.terms = append(b.terms, &terminalDef{
		name:  name,
		alias: alias,
	})
	return b
}

// Production declares `lhs → rhs`. An empty rhs declares an empty production.
func (b *GrammarBuilder) Production(lhs string, rhs ...string) *GrammarBuilder {
	b.prods = append(b.prods, &productionDef{
		lhs: lhs,
		rhs: rhs,
	})
	return b
}

type Grammar struct {
	name     string
	symTab   *symbolTable
	prods    *productionSet
	startSym symbol
}

func (b *GrammarBuilder) Build() (*Grammar, error) {
	if len(b.prods) == 0 {
		return nil, ErrNoProduction
	}
	start := b.prods[0].lhs
	if start == "" {
		return nil, ErrNoStartSymbol
	}

	symTab := newSymbolTable()

	termNames := map[string]struct{}{}
	for _, t := range b.terms {
		if _, ok := termNames[t.name]; ok {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateTerminal, t.name)
		}
		termNames[t.name] = struct{}{}
		_, err := symTab.registerTerminal(t.name, t.alias)
		if err != nil {
			return nil, err
		}
	}

	startSym := symTab.registerStartSymbol(start)
	for _, p := range b.prods {
		if _, ok := termNames[p.lhs]; ok {
			return nil, fmt.Errorf("%w: %v", ErrTerminalAsLHS, p.lhs)
		}
		_, err := symTab.registerNonTerminal(p.lhs)
		if err != nil {
			return nil, err
		}
	}

	prods := newProductionSet()
	{
		startProd, err := newProduction(startSym, []symbol{mustLookUp(symTab, start)})
		if err != nil {
			return nil, err
		}
		prods.append(startProd)
	}
	for _, p := range b.prods {
		lhs := mustLookUp(symTab, p.lhs)
		rhs := make([]symbol, 0, len(p.rhs))
		for _, name := range p.rhs {
			sym, ok := symTab.toSymbol(name)
			if !ok || sym.isStart() || sym.isEOF() {
				return nil, fmt.Errorf("%w: %v", ErrUndefinedSym, name)
			}
			rhs = append(rhs, sym)
		}
		prod, err := newProduction(lhs, rhs)
		if err != nil {
			return nil, err
		}
		if !prods.append(prod) {
			return nil, fmt.Errorf("%w: %v → %v", ErrDuplicateProduction, p.lhs, strings.Join(p.rhs, " "))
		}
	}

	g := &Grammar{
		name:     b.name,
		symTab:   symTab,
		prods:    prods,
		startSym: startSym,
	}

	err := g.checkUnusedSymbols()
	if err != nil {
		return nil, err
	}

	return g, nil
}

func mustLookUp(symTab *symbolTable, name string) symbol {
	sym, ok := symTab.toSymbol(name)
	if !ok {
		panic(fmt.Errorf("symbol was not registered: %v", name))
	}
	return sym
}

// checkUnusedSymbols rejects non-terminals unreachable from the start symbol and terminals that
// no production uses.
func (g *Grammar) checkUnusedSymbols() error {
	reached := map[symbol]struct{}{
		g.startSym: {},
	}
	unchecked := []symbol{g.startSym}
	for len(unchecked) > 0 {
		var next []symbol
		for _, lhs := range unchecked {
			prods, _ := g.prods.findByLHS(lhs)
			for _, prod := range prods {
				for _, sym := range prod.rhs {
					if _, ok := reached[sym]; ok {
						continue
					}
					reached[sym] = struct{}{}
					if sym.isNonTerminal() {
						next = append(next, sym)
					}
				}
			}
		}
		unchecked = next
	}

	for _, prod := range g.prods.all() {
		if _, ok := reached[prod.lhs]; !ok {
			return fmt.Errorf("%w: %v", ErrUnusedProduction, g.symTab.toName(prod.lhs))
		}
	}
	for num := symbolNumMin; num < g.symTab.terminalCount(); num++ {
		sym, _ := newSymbol(true, num)
		if _, ok := reached[sym]; !ok {
			return fmt.Errorf("%w: %v", ErrUnusedTerminal, g.symTab.toName(sym))
		}
	}
	return nil
}

// ParsingTable is the flattened LALR(1) table consumed by the driver. An action is a negative state
// number to shift, a positive production number to reduce, or 0 for a syntax error. Reducing by
// StartProduction accepts the input.
type ParsingTable struct {
	Action                  []int
	GoTo                    []int
	StateCount              int
	InitialState            int
	StartProduction         int
	LHSSymbols              []int
	AlternativeSymbolCounts []int
	Terminals               []string
	TerminalAliases         []string
	TerminalCount           int
	NonTerminals            []string
	NonTerminalCount        int
	EOFSymbol               int
	ExpectedTerminals       [][]int
}

type CompiledGrammar struct {
	Name         string
	ParsingTable *ParsingTable
	Description  *Description
}

func Compile(g *Grammar) (*CompiledGrammar, error) {
	first, err := genFirstSet(g.prods)
	if err != nil {
		return nil, err
	}

	lr0, err := genLR0Automaton(g.prods, g.startSym)
	if err != nil {
		return nil, err
	}

	lalr1, err := genLALR1Automaton(lr0, g.prods, first)
	if err != nil {
		return nil, err
	}

	b := &lrTableBuilder{
		automaton: lalr1,
		prods:     g.prods,
		symTab:    g.symTab,
	}
	tab, err := b.build()
	if err != nil {
		return nil, err
	}
	err = b.conflictError()
	if err != nil {
		return nil, err
	}

	action := make([]int, len(tab.actionTable))
	for i, e := range tab.actionTable {
		action[i] = int(e)
	}
	goTo := make([]int, len(tab.goToTable))
	for i, e := range tab.goToTable {
		goTo[i] = int(e)
	}

	lhsSyms := make([]int, g.prods.count())
	altSymCounts := make([]int, g.prods.count())
	for _, p := range g.prods.all() {
		lhsSyms[p.num] = p.lhs.num()
		altSymCounts[p.num] = p.rhsLen
	}

	expected := make([][]int, tab.stateCount)
	for state := 0; state < tab.stateCount; state++ {
		for term := symbolEOF.num(); term < tab.terminalCount; term++ {
			if !tab.readAction(state, term).isEmpty() {
				expected[state] = append(expected[state], term)
			}
		}
	}

	return &CompiledGrammar{
		Name: g.name,
		ParsingTable: &ParsingTable{
			Action:                  action,
			GoTo:                    goTo,
			StateCount:              tab.stateCount,
			InitialState:            tab.initialState.Int(),
			StartProduction:         productionNumStart.Int(),
			LHSSymbols:              lhsSyms,
			AlternativeSymbolCounts: altSymCounts,
			Terminals:               g.symTab.termNames,
			TerminalAliases:         g.symTab.termAliases,
			TerminalCount:           tab.terminalCount,
			NonTerminals:            g.symTab.nonTermNames,
			NonTerminalCount:        tab.nonTerminalCount,
			EOFSymbol:               symbolEOF.num(),
			ExpectedTerminals:       expected,
		},
		Description: genDescription(g, lalr1, tab),
	}, nil
}

// TerminalID returns the terminal number of a terminal name.
func (g *CompiledGrammar) TerminalID(name string) (int, bool) {
	for num, t := range g.ParsingTable.Terminals {
		if num == 0 {
			continue
		}
		if t == name {
			return num, true
		}
	}
	return 0, false
}
