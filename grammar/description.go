package grammar

import (
	"fmt"
	"io"
	"strings"
	"text/template"
)

type Terminal struct {
	Number int
	Name   string
	Alias  string
}

type NonTerminal struct {
	Number int
	Name   string
}

// Production's RHS holds terminal numbers as positive values and non-terminal numbers as negative ones.
type Production struct {
	Number int
	LHS    int
	RHS    []int
}

type Item struct {
	Production int
	Dot        int
}

type Transition struct {
	Symbol int
	State  int
}

type Reduce struct {
	LookAhead  []int
	Production int
}

type State struct {
	Number int
	Kernel []*Item
	Shift  []*Transition
	Reduce []*Reduce
	GoTo   []*Transition
}

type Description struct {
	Terminals    []*Terminal
	NonTerminals []*NonTerminal
	Productions  []*Production
	States       []*State
}

func genDescription(g *Grammar, automaton *lalr1Automaton, tab *parsingTable) *Description {
	terms := make([]*Terminal, g.symTab.terminalCount())
	for num := range terms {
		terms[num] = &Terminal{
			Number: num,
			Name:   g.symTab.termNames[num],
			Alias:  g.symTab.termAliases[num],
		}
	}

	nonTerms := make([]*NonTerminal, g.symTab.nonTerminalCount())
	for num := range nonTerms {
		nonTerms[num] = &NonTerminal{
			Number: num,
			Name:   g.symTab.nonTermNames[num],
		}
	}

	prods := make([]*Production, g.prods.count())
	prods[productionNumNil] = &Production{}
	for _, p := range g.prods.all() {
		rhs := make([]int, len(p.rhs))
		for i, sym := range p.rhs {
			if sym.isTerminal() {
				rhs[i] = sym.num()
			} else {
				rhs[i] = sym.num() * -1
			}
		}
		prods[p.num] = &Production{
			Number: p.num.Int(),
			LHS:    p.lhs.num(),
			RHS:    rhs,
		}
	}

	var states []*State
	for _, s := range automaton.orderedStates() {
		kernel := make([]*Item, 0, len(s.items))
		for _, item := range s.items {
			prod, _ := g.prods.findByID(item.prod)
			kernel = append(kernel, &Item{
				Production: prod.num.Int(),
				Dot:        item.dot,
			})
		}

		var shift []*Transition
		var reduce []*Reduce
		reduceByProd := map[int]*Reduce{}
		for term := symbolEOF.num(); term < tab.terminalCount; term++ {
			ty, next, prod := tab.readAction(s.num.Int(), term).describe()
			switch ty {
			case ActionTypeShift:
				shift = append(shift, &Transition{
					Symbol: term,
					State:  next.Int(),
				})
			case ActionTypeReduce:
				r, ok := reduceByProd[prod.Int()]
				if !ok {
					r = &Reduce{
						Production: prod.Int(),
					}
					reduceByProd[prod.Int()] = r
					reduce = append(reduce, r)
				}
				r.LookAhead = append(r.LookAhead, term)
			}
		}

		var goTo []*Transition
		for nonTerm := symbolNumMin; nonTerm < tab.nonTerminalCount; nonTerm++ {
			e := tab.readGoTo(s.num.Int(), nonTerm)
			if e == goToEntryEmpty {
				continue
			}
			goTo = append(goTo, &Transition{
				Symbol: nonTerm,
				State:  int(e),
			})
		}

		states = append(states, &State{
			Number: s.num.Int(),
			Kernel: kernel,
			Shift:  shift,
			Reduce: reduce,
			GoTo:   goTo,
		})
	}

	return &Description{
		Terminals:    terms,
		NonTerminals: nonTerms,
		Productions:  prods,
		States:       states,
	}
}

const descTemplate = `# Terminals

{{ range slice .Terminals 1 -}}
{{ printTerminal . }}
{{ end }}
# Productions

{{ range slice .Productions 1 -}}
{{ printProduction . }}
{{ end }}
# States
{{ range .States }}
## State {{ .Number }}

{{ range .Kernel -}}
{{ printItem . }}
{{ end }}
{{ range .Shift -}}
{{ printShift . }}
{{ end -}}
{{ range .Reduce -}}
{{ printReduce . }}
{{ end -}}
{{ range .GoTo -}}
{{ printGoTo . }}
{{ end -}}
{{ end }}`

// WriteDescription prints the terminals, the productions, and every state of the parsing table
// in a readable format.
func WriteDescription(w io.Writer, desc *Description) error {
	termName := func(sym int) string {
		if desc.Terminals[sym].Alias != "" {
			return desc.Terminals[sym].Alias
		}
		return desc.Terminals[sym].Name
	}

	nonTermName := func(sym int) string {
		return desc.NonTerminals[sym].Name
	}

	rhsSymbolName := func(sym int) string {
		if sym > 0 {
			return termName(sym)
		}
		return nonTermName(sym * -1)
	}

	fns := template.FuncMap{
		"printTerminal": func(term *Terminal) string {
			if term.Alias != "" {
				return fmt.Sprintf("%4v %v (%v)", term.Number, term.Name, term.Alias)
			}
			return fmt.Sprintf("%4v %v", term.Number, term.Name)
		},
		"printProduction": func(prod *Production) string {
			var b strings.Builder
			fmt.Fprintf(&b, "%v →", nonTermName(prod.LHS))
			if len(prod.RHS) > 0 {
				for _, e := range prod.RHS {
					fmt.Fprintf(&b, " %v", rhsSymbolName(e))
				}
			} else {
				fmt.Fprintf(&b, " ε")
			}
			return fmt.Sprintf("%4v %v", prod.Number, b.String())
		},
		"printItem": func(item *Item) string {
			prod := desc.Productions[item.Production]

			var b strings.Builder
			fmt.Fprintf(&b, "%v →", nonTermName(prod.LHS))
			for i, e := range prod.RHS {
				if i == item.Dot {
					fmt.Fprintf(&b, " ・")
				}
				fmt.Fprintf(&b, " %v", rhsSymbolName(e))
			}
			if item.Dot >= len(prod.RHS) {
				fmt.Fprintf(&b, " ・")
			}
			return fmt.Sprintf("%4v %v", prod.Number, b.String())
		},
		"printShift": func(tran *Transition) string {
			return fmt.Sprintf("shift  %4v on %v", tran.State, termName(tran.Symbol))
		},
		"printReduce": func(reduce *Reduce) string {
			names := make([]string, len(reduce.LookAhead))
			for i, a := range reduce.LookAhead {
				names[i] = termName(a)
			}
			return fmt.Sprintf("reduce %4v on %v", reduce.Production, strings.Join(names, ", "))
		},
		"printGoTo": func(tran *Transition) string {
			return fmt.Sprintf("goto   %4v on %v", tran.State, nonTermName(tran.Symbol))
		},
	}

	tmpl, err := template.New("").Funcs(fns).Parse(descTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, desc)
}
