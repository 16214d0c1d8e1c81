package automaton

import "github.com/dekarrin/snpsim/internal/util"

// NFA is an ε-free nondeterministic automaton produced from an ENFA by
// RemoveEpsilons.
type NFA struct {
	states []state
	start  int
	finals map[int]bool
}

// epsilonClosure returns the reflexive-transitive set of states reachable
// from q using only ε-transitions.
func epsilonClosure(e *ENFA, q int) util.Set[int] {
	closure := util.Set[int]{q: true}
	stack := util.Stack[int]{Of: []int{q}}
	for stack.Len() > 0 {
		n := stack.Pop()
		for _, t := range e.states[n].trans[epsilon] {
			if !closure.Has(t) {
				closure.Add(t)
				stack.Push(t)
			}
		}
	}
	return closure
}

// RemoveEpsilons converts e into an ε-free NFA over the same alphabet:
//
//	δ'(q, s) = ⋃ { ε-closure(q') | q' ∈ δ(r, s), r ∈ ε-closure(q), s ≠ ε }
//	finals'  = { q | ε-closure(q) ∩ finals ≠ ∅ }
//
// The initial state and the state indices themselves are preserved — only
// the transition table and final-state set change — so RemoveEpsilons does
// not need a fresh arena the way the subset construction in ToDFA does.
func (e *ENFA) RemoveEpsilons() *NFA {
	nodes := e.Nodes()
	closures := map[int]util.Set[int]{}
	for n := range nodes {
		closures[n] = epsilonClosure(e, n)
	}

	nfa := &NFA{
		states: make([]state, len(e.states)),
		start:  e.start,
		finals: map[int]bool{},
	}
	for i := range nfa.states {
		nfa.states[i] = state{trans: map[string][]int{}}
	}

	for q := range nodes {
		reached := map[string]util.Set[int]{}
		for r := range closures[q] {
			for sym, targets := range e.states[r].trans {
				if sym == epsilon {
					continue
				}
				if reached[sym] == nil {
					reached[sym] = util.Set[int]{}
				}
				for _, t := range targets {
					reached[sym].AddAll(closures[t])
				}
			}
		}
		for sym, set := range reached {
			nfa.states[q].trans[sym] = set.Elements()
		}

		if closures[q].Any(func(s int) bool { return e.finals[s] }) {
			nfa.finals[q] = true
		}
	}

	return nfa
}

// Nodes returns every state index reachable from the initial state.
func (n *NFA) Nodes() util.Set[int] {
	visited := util.Set[int]{n.start: true}
	stack := util.Stack[int]{Of: []int{n.start}}
	for stack.Len() > 0 {
		q := stack.Pop()
		for _, targets := range n.states[q].trans {
			for _, t := range targets {
				if !visited.Has(t) {
					visited.Add(t)
					stack.Push(t)
				}
			}
		}
	}
	return visited
}

// Symbols returns every symbol appearing on some transition.
func (n *NFA) Symbols() util.Set[string] {
	symbols := util.Set[string]{}
	for q := range n.Nodes() {
		for sym := range n.states[q].trans {
			symbols.Add(sym)
		}
	}
	return symbols
}

// move returns the set of states reachable from some state in from on
// input sym.
func (n *NFA) move(from util.Set[int], sym string) util.Set[int] {
	out := util.Set[int]{}
	for q := range from {
		out.AddAll(util.NewSet(n.states[q].trans[sym]...))
	}
	return out
}
