package grammar

import (
	"fmt"
)

// symbol packs a kind bit and a number into 16 bits. The number 0 is reserved for the nil symbol and
// the number 1 is used by the augmented start symbol (non-terminal) and by EOF (terminal).
//
// 1xxx xxxx xxxx xxxx: terminal
// 0xxx xxxx xxxx xxxx: non-terminal
type symbol uint16

const (
	symbolTerminalBit = uint16(0x8000)
	symbolNumMask     = uint16(0x7fff)

	symbolNil   = symbol(0)
	symbolStart = symbol(0x0001)
	symbolEOF   = symbol(symbolTerminalBit | 0x0001)

	// Neither name can collide with user-defined symbols, which are lower snake case.
	symbolNameEOF         = "<eof>"
	symbolNameStartSuffix = "'"

	symbolNumMin = 2
	symbolNumMax = int(symbolNumMask)
)

func newSymbol(terminal bool, num int) (symbol, error) {
	if num < symbolNumMin || num > symbolNumMax {
		return symbolNil, fmt.Errorf("a symbol number is out of range; min: %v, max: %v, passed: %v", symbolNumMin, symbolNumMax, num)
	}
	if terminal {
		return symbol(symbolTerminalBit | uint16(num)), nil
	}
	return symbol(num), nil
}

func (s symbol) num() int {
	return int(uint16(s) & symbolNumMask)
}

func (s symbol) isNil() bool {
	return s.num() == 0
}

func (s symbol) isStart() bool {
	return s == symbolStart
}

func (s symbol) isEOF() bool {
	return s == symbolEOF
}

func (s symbol) isTerminal() bool {
	if s.isNil() {
		return false
	}
	return uint16(s)&symbolTerminalBit != 0
}

func (s symbol) isNonTerminal() bool {
	if s.isNil() {
		return false
	}
	return uint16(s)&symbolTerminalBit == 0
}

func (s symbol) byte() []byte {
	return []byte{byte(uint16(s) >> 8), byte(uint16(s) & 0x00ff)}
}

func (s symbol) String() string {
	switch {
	case s.isNil():
		return "nil"
	case s.isStart():
		return "s1"
	case s.isEOF():
		return "e1"
	case s.isTerminal():
		return fmt.Sprintf("t%v", s.num())
	}
	return fmt.Sprintf("n%v", s.num())
}

type symbolTable struct {
	name2Sym       map[string]symbol
	termNames      []string
	termAliases    []string
	nonTermNames   []string
	nextTermNum    int
	nextNonTermNum int
}

func newSymbolTable() *symbolTable {
	return &symbolTable{
		name2Sym: map[string]symbol{
			symbolNameEOF: symbolEOF,
		},
		termNames: []string{
			"",            // nil
			symbolNameEOF, // EOF
		},
		termAliases: []string{
			"",
			"end of input",
		},
		nonTermNames: []string{
			"", // nil
			"", // augmented start symbol
		},
		nextTermNum:    symbolNumMin,
		nextNonTermNum: symbolNumMin,
	}
}

func (t *symbolTable) registerStartSymbol(name string) symbol {
	startName := name + symbolNameStartSuffix
	t.name2Sym[startName] = symbolStart
	t.nonTermNames[symbolStart.num()] = startName
	return symbolStart
}

func (t *symbolTable) registerTerminal(name string, alias string) (symbol, error) {
	if sym, ok := t.name2Sym[name]; ok {
		return sym, nil
	}
	sym, err := newSymbol(true, t.nextTermNum)
	if err != nil {
		return symbolNil, err
	}
	t.nextTermNum++
	t.name2Sym[name] = sym
	t.termNames = append(t.termNames, name)
	t.termAliases = append(t.termAliases, alias)
	return sym, nil
}

func (t *symbolTable) registerNonTerminal(name string) (symbol, error) {
	if sym, ok := t.name2Sym[name]; ok {
		return sym, nil
	}
	sym, err := newSymbol(false, t.nextNonTermNum)
	if err != nil {
		return symbolNil, err
	}
	t.nextNonTermNum++
	t.name2Sym[name] = sym
	t.nonTermNames = append(t.nonTermNames, name)
	return sym, nil
}

func (t *symbolTable) toSymbol(name string) (symbol, bool) {
	sym, ok := t.name2Sym[name]
	return sym, ok
}

func (t *symbolTable) toName(sym symbol) string {
	if sym.isTerminal() {
		return t.termNames[sym.num()]
	}
	return t.nonTermNames[sym.num()]
}

func (t *symbolTable) terminalCount() int {
	return len(t.termNames)
}

func (t *symbolTable) nonTerminalCount() int {
	return len(t.nonTermNames)
}
