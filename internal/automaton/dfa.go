package automaton

import (
	"container/heap"
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/snpsim/internal/util"
)

// dfaState is one DFA state: a deterministic symbol -> state-index table.
type dfaState struct {
	trans map[string]int
}

// DFA is a deterministic automaton produced from an NFA by subset
// construction (ToDFA). It exposes both string acceptance and a
// multiset-acceptance query.
type DFA struct {
	states []dfaState
	start  int
	finals map[int]bool
}

// subsetKey canonicalizes a set of NFA state indices into a single string
// so that two subset-construction worklist entries reaching the same set
// of NFA states are recognized as the same DFA state, without relying on
// node identity.
func subsetKey(states util.Set[int]) string {
	ordered := make([]int, 0, len(states))
	for s := range states {
		ordered = append(ordered, s)
	}
	sort.Ints(ordered)

	parts := make([]string, len(ordered))
	for i, s := range ordered {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ",")
}

// ToDFA performs subset construction on n: states are sets of
// NFA states keyed canonically (see subsetKey); the worklist starts at
// {initial} and, for each set Q and symbol s, computes T = move(Q, s) and
// enqueues T if it hasn't been seen, adding the transition Q --s--> T.
// Final DFA states are those whose underlying NFA-state set intersects the
// NFA's final states.
func (n *NFA) ToDFA() *DFA {
	symbols := n.Symbols()

	startSet := util.NewSet(n.start)
	startKey := subsetKey(startSet)

	dfa := &DFA{states: []dfaState{}, finals: map[int]bool{}}
	keyToIndex := map[string]int{}

	newDFAState := func(set util.Set[int]) int {
		idx := len(dfa.states)
		dfa.states = append(dfa.states, dfaState{trans: map[string]int{}})
		if set.Any(func(s int) bool { return n.finals[s] }) {
			dfa.finals[idx] = true
		}
		return idx
	}

	dfa.start = newDFAState(startSet)
	keyToIndex[startKey] = dfa.start

	worklist := []util.Set[int]{startSet}
	worklistKeys := []string{startKey}

	for len(worklist) > 0 {
		q := worklist[0]
		qKey := worklistKeys[0]
		worklist = worklist[1:]
		worklistKeys = worklistKeys[1:]
		qIdx := keyToIndex[qKey]

		for sym := range symbols {
			t := n.move(q, sym)
			if t.Empty() {
				continue
			}
			tKey := subsetKey(t)
			tIdx, seen := keyToIndex[tKey]
			if !seen {
				tIdx = newDFAState(t)
				keyToIndex[tKey] = tIdx
				worklist = append(worklist, t)
				worklistKeys = append(worklistKeys, tKey)
			}
			dfa.states[qIdx].trans[sym] = tIdx
		}
	}

	return dfa
}

// IsConsistent reports whether every reachable state either is final or has
// a path to a final state.
//
// It computes the forward-reachable set from start, then the set of states
// that can reach some final state by walking the reversed transition graph
// from the finals, and checks the former is a subset of the latter.
func (d *DFA) IsConsistent() bool {
	reachable := util.Set[int]{d.start: true}
	stack := util.Stack[int]{Of: []int{d.start}}
	reverse := map[int][]int{}
	for stack.Len() > 0 {
		n := stack.Pop()
		for _, t := range d.states[n].trans {
			reverse[t] = append(reverse[t], n)
			if !reachable.Has(t) {
				reachable.Add(t)
				stack.Push(t)
			}
		}
	}

	canReachFinal := util.Set[int]{}
	var rstack util.Stack[int]
	for f := range d.finals {
		if reachable.Has(f) && !canReachFinal.Has(f) {
			canReachFinal.Add(f)
			rstack.Push(f)
		}
	}
	for rstack.Len() > 0 {
		n := rstack.Pop()
		for _, p := range reverse[n] {
			if !canReachFinal.Has(p) {
				canReachFinal.Add(p)
				rstack.Push(p)
			}
		}
	}

	for n := range reachable {
		if !canReachFinal.Has(n) {
			return false
		}
	}
	return true
}

// Accepts performs the standard deterministic walk over word, rejecting as
// soon as a symbol has no transition.
func (d *DFA) Accepts(word []string) bool {
	cur := d.start
	for _, sym := range word {
		next, ok := d.states[cur].trans[sym]
		if !ok {
			return false
		}
		cur = next
	}
	return d.finals[cur]
}

// msSearchState is one node of the best-first search frontier used by
// AcceptsMultiset: a remaining-symbol count vector (relative to a fixed
// symbol ordering established at query entry) paired with a DFA node.
type msSearchState struct {
	consumed int
	counts   []int
	node     int
}

type msFrontier []msSearchState

func (f msFrontier) Len() int            { return len(f) }
func (f msFrontier) Less(i, j int) bool  { return f[i].consumed < f[j].consumed }
func (f msFrontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i] }
func (f *msFrontier) Push(x interface{}) { *f = append(*f, x.(msSearchState)) }
func (f *msFrontier) Pop() interface{} {
	old := *f
	n := len(old)
	v := old[n-1]
	*f = old[:n-1]
	return v
}

func countsKey(counts []int) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ",")
}

// AcceptsMultiset answers: does there exist an ordering of m's elements
// whose concatenation is accepted?
//
// It performs a best-first search over states
// (remaining-multiset, dfa-node), where remaining-multiset is the vector of
// per-symbol counts relative to a fixed ordering of m.Set() established at
// entry. The priority is symbols consumed so far, fewest first (ties broken
// arbitrarily, here by container/heap's order, which is deterministic but
// not insertion-stable);
// the visited set is keyed on (count-vector, node), which dedupes
// exponentially many reorderings that reach the same configuration.
func (d *DFA) AcceptsMultiset(m util.Multiset[string]) bool {
	symbols := m.OrderedKeys(func(a, b string) bool { return a < b })
	counts := make([]int, len(symbols))
	for i, s := range symbols {
		counts[i] = m.Count(s)
	}

	frontier := &msFrontier{{consumed: 0, counts: counts, node: d.start}}
	heap.Init(frontier)

	visited := map[string]bool{}

	for frontier.Len() > 0 {
		cur := heap.Pop(frontier).(msSearchState)

		key := countsKey(cur.counts) + "|" + strconv.Itoa(cur.node)
		if visited[key] {
			continue
		}
		visited[key] = true

		allZero := true
		for _, c := range cur.counts {
			if c > 0 {
				allZero = false
				break
			}
		}
		if allZero && d.finals[cur.node] {
			return true
		}

		for i, sym := range symbols {
			if cur.counts[i] <= 0 {
				continue
			}
			next, ok := d.states[cur.node].trans[sym]
			if !ok {
				continue
			}
			newCounts := append([]int{}, cur.counts...)
			newCounts[i]--
			heap.Push(frontier, msSearchState{
				consumed: cur.consumed + 1,
				counts:   newCounts,
				node:     next,
			})
		}
	}
	return false
}
