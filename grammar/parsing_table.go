package grammar

import (
	"fmt"
	"sort"
	"strings"
)

type ActionType string

const (
	ActionTypeShift  = ActionType("shift")
	ActionTypeReduce = ActionType("reduce")
	ActionTypeError  = ActionType("error")
)

// actionEntry encodes a shift as a negative state number and a reduction as a positive production
// number. Since no transition leads to the initial state, 0 is free to mean an empty entry.
type actionEntry int

const actionEntryEmpty = actionEntry(0)

func newShiftActionEntry(state stateNum) actionEntry {
	return actionEntry(state * -1)
}

func newReduceActionEntry(prod productionNum) actionEntry {
	return actionEntry(prod)
}

func (e actionEntry) isEmpty() bool {
	return e == actionEntryEmpty
}

func (e actionEntry) describe() (ActionType, stateNum, productionNum) {
	if e == actionEntryEmpty {
		return ActionTypeError, stateNumInitial, productionNumNil
	}
	if e < 0 {
		return ActionTypeShift, stateNum(e * -1), productionNumNil
	}
	return ActionTypeReduce, stateNumInitial, productionNum(e)
}

type goToEntry uint

const goToEntryEmpty = goToEntry(0)

type conflict interface {
	fmt.Stringer
	conflict()
}

type shiftReduceConflict struct {
	state     stateNum
	sym       string
	nextState stateNum
	prodNum   productionNum
}

func (c *shiftReduceConflict) conflict() {
}

func (c *shiftReduceConflict) String() string {
	return fmt.Sprintf("shift/reduce conflict in state %v on %v: shift %v, reduce %v", c.state, c.sym, c.nextState, c.prodNum)
}

type reduceReduceConflict struct {
	state    stateNum
	sym      string
	prodNum1 productionNum
	prodNum2 productionNum
}

func (c *reduceReduceConflict) conflict() {
}

func (c *reduceReduceConflict) String() string {
	return fmt.Sprintf("reduce/reduce conflict in state %v on %v: reduce %v, reduce %v", c.state, c.sym, c.prodNum1, c.prodNum2)
}

var (
	_ conflict = &shiftReduceConflict{}
	_ conflict = &reduceReduceConflict{}
)

type parsingTable struct {
	actionTable      []actionEntry
	goToTable        []goToEntry
	stateCount       int
	terminalCount    int
	nonTerminalCount int
	initialState     stateNum
}

func (t *parsingTable) readAction(state int, term int) actionEntry {
	return t.actionTable[state*t.terminalCount+term]
}

func (t *parsingTable) writeAction(state int, term int, act actionEntry) {
	t.actionTable[state*t.terminalCount+term] = act
}

func (t *parsingTable) readGoTo(state int, nonTerm int) goToEntry {
	return t.goToTable[state*t.nonTerminalCount+nonTerm]
}

func (t *parsingTable) writeGoTo(state int, nonTerm int, next stateNum) {
	t.goToTable[state*t.nonTerminalCount+nonTerm] = goToEntry(next)
}

type lrTableBuilder struct {
	automaton *lalr1Automaton
	prods     *productionSet
	symTab    *symbolTable

	conflicts []conflict
}

func (b *lrTableBuilder) build() (*parsingTable, error) {
	initialState := b.automaton.states[b.automaton.initialState]
	ptab := &parsingTable{
		actionTable:      make([]actionEntry, len(b.automaton.states)*b.symTab.terminalCount()),
		goToTable:        make([]goToEntry, len(b.automaton.states)*b.symTab.nonTerminalCount()),
		stateCount:       len(b.automaton.states),
		terminalCount:    b.symTab.terminalCount(),
		nonTerminalCount: b.symTab.nonTerminalCount(),
		initialState:     initialState.num,
	}

	states := b.automaton.orderedStates()
	for _, state := range states {
		for sym, kID := range state.next {
			nextState := b.automaton.states[kID]
			if sym.isTerminal() {
				ptab.writeAction(state.num.Int(), sym.num(), newShiftActionEntry(nextState.num))
			} else {
				ptab.writeGoTo(state.num.Int(), sym.num(), nextState.num)
			}
		}
	}

	for _, state := range states {
		var reducibleItems []*lrItem
		for _, item := range state.items {
			if item.reducible {
				reducibleItems = append(reducibleItems, item)
			}
		}
		reducibleItems = append(reducibleItems, state.emptyProdItems...)

		for _, item := range reducibleItems {
			prod, ok := b.prods.findByID(item.prod)
			if !ok {
				return nil, fmt.Errorf("reducible production not found: %v", item.prod)
			}
			for _, a := range sortedSymbols(item.lookAhead.symbols) {
				b.writeReduceAction(ptab, state.num, a, prod.num)
			}
		}
	}

	return ptab, nil
}

func (b *lrTableBuilder) writeReduceAction(ptab *parsingTable, state stateNum, sym symbol, prod productionNum) {
	act := ptab.readAction(state.Int(), sym.num())
	if act.isEmpty() {
		ptab.writeAction(state.Int(), sym.num(), newReduceActionEntry(prod))
		return
	}

	ty, nextState, p := act.describe()
	if ty == ActionTypeShift {
		b.conflicts = append(b.conflicts, &shiftReduceConflict{
			state:     state,
			sym:       b.symTab.toName(sym),
			nextState: nextState,
			prodNum:   prod,
		})
		return
	}
	if p == prod {
		return
	}
	b.conflicts = append(b.conflicts, &reduceReduceConflict{
		state:    state,
		sym:      b.symTab.toName(sym),
		prodNum1: p,
		prodNum2: prod,
	})
}

func (b *lrTableBuilder) conflictError() error {
	if len(b.conflicts) == 0 {
		return nil
	}
	var msgs []string
	for _, c := range b.conflicts {
		msgs = append(msgs, c.String())
	}
	return fmt.Errorf("%w: %v", ErrConflict, strings.Join(msgs, "; "))
}

func sortedSymbols(syms map[symbol]struct{}) []symbol {
	sorted := make([]symbol, 0, len(syms))
	for sym := range syms {
		sorted = append(sorted, sym)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	return sorted
}
