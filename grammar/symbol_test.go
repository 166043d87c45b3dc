package grammar

import "testing"

func TestSymbol(t *testing.T) {
	tab := newSymbolTable()
	start := tab.registerStartSymbol("stub")
	stub, _ := tab.registerNonTerminal("stub")
	attrs, _ := tab.registerNonTerminal("attrs")
	kwStub, _ := tab.registerTerminal("kw_stub", "'stub'")
	name, _ := tab.registerTerminal("name", "identifier")

	tests := []struct {
		caption     string
		sym         symbol
		text        string
		nonTerminal bool
		terminal    bool
		isStart     bool
		isEOF       bool
		num         int
	}{
		{caption: "augmented start symbol", sym: start, text: "stub'", nonTerminal: true, isStart: true, num: 1},
		{caption: "first non-terminal", sym: stub, text: "stub", nonTerminal: true, num: 2},
		{caption: "second non-terminal", sym: attrs, text: "attrs", nonTerminal: true, num: 3},
		{caption: "EOF", sym: symbolEOF, text: symbolNameEOF, terminal: true, isEOF: true, num: 1},
		{caption: "first terminal", sym: kwStub, text: "kw_stub", terminal: true, num: 2},
		{caption: "second terminal", sym: name, text: "name", terminal: true, num: 3},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			if tt.sym.isNonTerminal() != tt.nonTerminal {
				t.Errorf("isNonTerminal; want: %v, got: %v", tt.nonTerminal, tt.sym.isNonTerminal())
			}
			if tt.sym.isTerminal() != tt.terminal {
				t.Errorf("isTerminal; want: %v, got: %v", tt.terminal, tt.sym.isTerminal())
			}
			if tt.sym.isStart() != tt.isStart {
				t.Errorf("isStart; want: %v, got: %v", tt.isStart, tt.sym.isStart())
			}
			if tt.sym.isEOF() != tt.isEOF {
				t.Errorf("isEOF; want: %v, got: %v", tt.isEOF, tt.sym.isEOF())
			}
			if tt.sym.num() != tt.num {
				t.Errorf("num; want: %v, got: %v", tt.num, tt.sym.num())
			}
			if text := tab.toName(tt.sym); text != tt.text {
				t.Errorf("name; want: %v, got: %v", tt.text, text)
			}
			sym, ok := tab.toSymbol(tt.text)
			if !ok || sym != tt.sym {
				t.Errorf("symbol; want: %v, got: %v", tt.sym, sym)
			}
		})
	}

	t.Run("registering a name twice returns the same symbol", func(t *testing.T) {
		sym, err := tab.registerTerminal("name", "identifier")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sym != name {
			t.Fatalf("want: %v, got: %v", name, sym)
		}
		if tab.terminalCount() != 4 {
			t.Fatalf("unexpected terminal count: %v", tab.terminalCount())
		}
	})

	t.Run("the nil symbol is neither a terminal nor a non-terminal", func(t *testing.T) {
		if symbolNil.isTerminal() || symbolNil.isNonTerminal() {
			t.Fatalf("the nil symbol must not have a kind")
		}
	})
}
