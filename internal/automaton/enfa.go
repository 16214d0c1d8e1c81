package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/snpsim/internal/util"
)

// epsilon is the sentinel transition symbol meaning "no input consumed".
// Surface regex symbols are never empty strings, so this cannot collide with a
// real symbol.
const epsilon = ""

// state is one ε-NFA/NFA state: a symbol-or-ε keyed transition table whose
// values are sets of destination state indices. Node identity is simply
// the slice index into the owning automaton's arena.
type state struct {
	trans map[string][]int
}

// ENFA is an automaton with ε-transitions, built by Compile. Its initial
// state and final-state set are both arena indices into states.
type ENFA struct {
	states []state
	start  int
	finals map[int]bool
}

// Nodes returns every state index reachable from the initial state.
func (e *ENFA) Nodes() util.Set[int] {
	visited := util.Set[int]{e.start: true}
	stack := util.Stack[int]{Of: []int{e.start}}
	for stack.Len() > 0 {
		n := stack.Pop()
		for _, targets := range e.states[n].trans {
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

// Symbols returns every non-ε symbol appearing on some transition.
func (e *ENFA) Symbols() util.Set[string] {
	symbols := util.Set[string]{}
	for n := range e.Nodes() {
		for sym := range e.states[n].trans {
			if sym != epsilon {
				symbols.Add(sym)
			}
		}
	}
	return symbols
}

// RenderDOT renders e as a Graphviz DOT digraph: one entry
// node pointing at the initial state, single circles for ordinary states,
// double circles for final states, and one edge per (source, target) pair
// labeled with the symbols (or "ɛ", U+025B, for ε-transitions) that
// transition between them.
func (e *ENFA) RenderDOT() string {
	var sb strings.Builder
	sb.WriteString("digraph graph_rendered{\n")
	sb.WriteString("    node [shape = point]; qi\n")
	sb.WriteString(fmt.Sprintf("    qi -> q%d;\n", e.start))

	nodes := e.Nodes()
	ordered := make([]int, 0, len(nodes))
	for n := range nodes {
		ordered = append(ordered, n)
	}
	sort.Ints(ordered)

	for _, n := range ordered {
		shape := "circle"
		if e.finals[n] {
			shape = "doublecircle"
		}
		sb.WriteString(fmt.Sprintf("    node [shape = %s, label = \"q%d\"]; q%d\n", shape, n, n))
	}

	type edgeKey struct{ from, to int }
	labels := map[edgeKey][]string{}
	for _, n := range ordered {
		for sym, targets := range e.states[n].trans {
			label := sym
			if label == epsilon {
				label = "ɛ"
			}
			for _, t := range targets {
				k := edgeKey{n, t}
				labels[k] = append(labels[k], label)
			}
		}
	}
	type edgeOut struct {
		k edgeKey
		v []string
	}
	edges := make([]edgeOut, 0, len(labels))
	for k, v := range labels {
		sort.Strings(v)
		edges = append(edges, edgeOut{k, v})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].k.from != edges[j].k.from {
			return edges[i].k.from < edges[j].k.from
		}
		return edges[i].k.to < edges[j].k.to
	})
	for _, edge := range edges {
		sb.WriteString(fmt.Sprintf("    q%d -> q%d [label = \"%s\"];\n", edge.k.from, edge.k.to, strings.Join(edge.v, ", ")))
	}

	sb.WriteString("}")
	return sb.String()
}
