package grammar

import (
	"fmt"
)

type stateAndLRItem struct {
	kernelID kernelID
	itemID   lrItemID
}

type propagation struct {
	src  *stateAndLRItem
	dest []*stateAndLRItem
}

type lalr1Automaton struct {
	*lr0Automaton
}

// genLALR1Automaton attaches look-ahead symbols to the kernel items of lr0. For every kernel item it
// computes the LR(1) closure with a placeholder look-ahead; symbols that show up in the closure are
// generated spontaneously, and the placeholder marks where the kernel's own symbols propagate to.
// The propagation is then repeated until no item gains a symbol.
func genLALR1Automaton(lr0 *lr0Automaton, prods *productionSet, first *firstSet) (*lalr1Automaton, error) {
	// [S' → ・S, $]
	iniState := lr0.states[lr0.initialState]
	iniState.items[0].lookAhead.symbols = map[symbol]struct{}{
		symbolEOF: {},
	}

	var props []*propagation
	for _, state := range lr0.orderedStates() {
		for _, kItem := range state.items {
			kItem.lookAhead.propagation = true

			items, err := genLALR1Closure(kItem, prods, first)
			if err != nil {
				return nil, err
			}

			var propDests []*stateAndLRItem
			for _, item := range items {
				if item.reducible {
					p, ok := prods.findByID(item.prod)
					if !ok {
						return nil, fmt.Errorf("production not found: %v", item.prod)
					}
					if !p.isEmpty() {
						continue
					}

					var reducibleItem *lrItem
					for _, it := range state.emptyProdItems {
						if it.id == item.id {
							reducibleItem = it
							break
						}
					}
					if reducibleItem == nil {
						return nil, fmt.Errorf("reducible item not found: %v", item.id)
					}
					if item.lookAhead.propagation {
						propDests = append(propDests, &stateAndLRItem{
							kernelID: state.id,
							itemID:   item.id,
						})
					} else {
						addLookAhead(reducibleItem, item.lookAhead.symbols)
					}

					continue
				}

				nextKID := state.next[item.dottedSymbol]
				var nextItemID lrItemID
				{
					p, ok := prods.findByID(item.prod)
					if !ok {
						return nil, fmt.Errorf("production not found: %v", item.prod)
					}
					it, err := newLR0Item(p, item.dot+1)
					if err != nil {
						return nil, fmt.Errorf("failed to generate an item ID: %v", err)
					}
					nextItemID = it.id
				}

				if item.lookAhead.propagation {
					propDests = append(propDests, &stateAndLRItem{
						kernelID: nextKID,
						itemID:   nextItemID,
					})
					continue
				}

				nextItem, err := findItem(lr0, nextKID, nextItemID)
				if err != nil {
					return nil, err
				}
				addLookAhead(nextItem, item.lookAhead.symbols)
			}
			if len(propDests) == 0 {
				continue
			}

			props = append(props, &propagation{
				src: &stateAndLRItem{
					kernelID: state.id,
					itemID:   kItem.id,
				},
				dest: propDests,
			})
		}
	}

	err := propagateLookAhead(lr0, props)
	if err != nil {
		return nil, fmt.Errorf("failed to propagate look-ahead symbols: %v", err)
	}

	return &lalr1Automaton{
		lr0Automaton: lr0,
	}, nil
}

func addLookAhead(item *lrItem, syms map[symbol]struct{}) bool {
	if item.lookAhead.symbols == nil {
		item.lookAhead.symbols = map[symbol]struct{}{}
	}
	added := false
	for a := range syms {
		if _, ok := item.lookAhead.symbols[a]; ok {
			continue
		}
		item.lookAhead.symbols[a] = struct{}{}
		added = true
	}
	return added
}

// findItem looks up an item among the kernel items and the empty-production items of a state.
func findItem(lr0 *lr0Automaton, kID kernelID, itemID lrItemID) (*lrItem, error) {
	state, ok := lr0.states[kID]
	if !ok {
		return nil, fmt.Errorf("state not found: %v", kID)
	}
	for _, item := range state.items {
		if item.id == itemID {
			return item, nil
		}
	}
	for _, item := range state.emptyProdItems {
		if item.id == itemID {
			return item, nil
		}
	}
	return nil, fmt.Errorf("item not found: %v", itemID)
}

func genLALR1Closure(srcItem *lrItem, prods *productionSet, first *firstSet) ([]*lrItem, error) {
	items := []*lrItem{srcItem}
	knownItems := map[lrItemID]map[symbol]struct{}{}
	knownItemsProp := map[lrItemID]struct{}{}
	uncheckedItems := []*lrItem{srcItem}
	for len(uncheckedItems) > 0 {
		nextUncheckedItems := []*lrItem{}
		for _, item := range uncheckedItems {
			if !item.dottedSymbol.isNonTerminal() {
				continue
			}

			p, ok := prods.findByID(item.prod)
			if !ok {
				return nil, fmt.Errorf("production not found: %v", item.prod)
			}

			fst, err := first.find(p, item.dot+1)
			if err != nil {
				return nil, err
			}

			lookAheadSyms := []symbol{}
			for s := range fst.symbols {
				lookAheadSyms = append(lookAheadSyms, s)
			}
			if fst.empty {
				for a := range item.lookAhead.symbols {
					lookAheadSyms = append(lookAheadSyms, a)
				}
			}

			ps, _ := prods.findByLHS(item.dottedSymbol)
			for _, prod := range ps {
				for _, a := range lookAheadSyms {
					newItem, err := newLR0Item(prod, 0)
					if err != nil {
						return nil, err
					}
					if syms, exist := knownItems[newItem.id]; exist {
						if _, exist := syms[a]; exist {
							continue
						}
					}

					newItem.lookAhead.symbols = map[symbol]struct{}{
						a: {},
					}

					items = append(items, newItem)
					if knownItems[newItem.id] == nil {
						knownItems[newItem.id] = map[symbol]struct{}{}
					}
					knownItems[newItem.id][a] = struct{}{}
					nextUncheckedItems = append(nextUncheckedItems, newItem)
				}

				if fst.empty && item.lookAhead.propagation {
					newItem, err := newLR0Item(prod, 0)
					if err != nil {
						return nil, err
					}
					if _, exist := knownItemsProp[newItem.id]; exist {
						continue
					}

					newItem.lookAhead.propagation = true

					items = append(items, newItem)
					knownItemsProp[newItem.id] = struct{}{}
					nextUncheckedItems = append(nextUncheckedItems, newItem)
				}
			}
		}
		uncheckedItems = nextUncheckedItems
	}

	return items, nil
}

func propagateLookAhead(lr0 *lr0Automaton, props []*propagation) error {
	for {
		changed := false
		for _, prop := range props {
			srcItem, err := findItem(lr0, prop.src.kernelID, prop.src.itemID)
			if err != nil {
				return fmt.Errorf("source %v", err)
			}

			for _, dest := range prop.dest {
				destItem, err := findItem(lr0, dest.kernelID, dest.itemID)
				if err != nil {
					return fmt.Errorf("destination %v", err)
				}
				if addLookAhead(destItem, srcItem.lookAhead.symbols) {
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	return nil
}
