// Package automaton compiles a tokenized regex into an ε-NFA, removes
// ε-transitions to produce an NFA, and subset-constructs a DFA exposing both
// string acceptance and multiset acceptance queries.
//
// Nodes are arena-indexed integers rather than pointers: every automaton
// owns a single slice of states and refers to other states purely by
// index, which sidesteps the identity-keyed pointer graphs and
// cyclic-ownership concerns an implementation built on node identity would
// need to manage explicitly.
package automaton

import "github.com/dekarrin/snpsim/internal/snperr"

// Token is one element of an already-tokenized regex: either a single
// symbol, or one of the four reserved grouping/postfix operators. The
// surface-language evaluator is responsible for producing this list; this
// package never tokenizes raw source text.
type Token string

// Reserved regex operator tokens.
const (
	OpenParen  Token = "("
	CloseParen Token = ")"
	Star       Token = "*"
	Plus       Token = "+"
)

// IsOperator reports whether t is one of the four reserved grouping/postfix
// operator tokens rather than a symbol.
func (t Token) IsOperator() bool {
	switch t {
	case OpenParen, CloseParen, Star, Plus:
		return true
	default:
		return false
	}
}

const component = "automaton"

// regexBuilder accumulates ε-NFA states for a single Compile call. All
// sub-expressions of one regex share this one arena, which is simpler than
// building disjoint sub-arenas and splicing them (the arena already owns
// every node from the moment it is created, so there is never a detached
// sub-automaton to merge).
type regexBuilder struct {
	enfa *ENFA
}

func (b *regexBuilder) newState() int {
	b.enfa.states = append(b.enfa.states, state{trans: map[string][]int{}})
	return len(b.enfa.states) - 1
}

func (b *regexBuilder) addEpsilon(from, to int) {
	b.enfa.states[from].trans[epsilon] = append(b.enfa.states[from].trans[epsilon], to)
}

func (b *regexBuilder) addSymbol(from int, sym string, to int) {
	b.enfa.states[from].trans[sym] = append(b.enfa.states[from].trans[sym], to)
}

// fragment is a sub-automaton under construction: an initial state and the
// set of its final states, all living in the shared builder arena.
type fragment struct {
	start  int
	finals []int
}

// Compile turns a tokenized regex into an ε-NFA via a Thompson-style
// construction:
//
//	ε              -> one state, both initial and final
//	single symbol  -> initial --symbol--> final
//	concatenation  -> ε-bridge from every final of L to the initial of R
//	X*             -> ε-loop back from every final of X to X's initial,
//	                  and X's initial is additionally marked final
//	X+             -> ε-loop back from every final of X to X's initial,
//	                  with no extra final marking
//
// A nil or empty token slice compiles to the empty regex (accepts only the
// empty string/multiset). Star and Plus are applied by the same general
// rule regardless of whether the preceding atom was a parenthesized group
// or a bare symbol, so the two constructions are indistinguishable.
func Compile(tokens []Token) (*ENFA, error) {
	b := &regexBuilder{enfa: &ENFA{}}
	frag, consumed, err := b.parseConcat(tokens, 0)
	if err != nil {
		return nil, err
	}
	if consumed != len(tokens) {
		return nil, snperr.UnexpectedErrorf(component, "unconsumed input after parsing regex: %v", tokens[consumed:])
	}
	b.enfa.start = frag.start
	b.enfa.finals = map[int]bool{}
	for _, f := range frag.finals {
		b.enfa.finals[f] = true
	}
	return b.enfa, nil
}

// CompileDFA compiles tokens straight through to a DFA: Compile, then
// RemoveEpsilons, then ToDFA. This is the entry point Rule uses to turn a
// regex spec into the predicate it evaluates at simulation time.
func CompileDFA(tokens []Token) (*DFA, error) {
	enfa, err := Compile(tokens)
	if err != nil {
		return nil, err
	}
	return enfa.RemoveEpsilons().ToDFA(), nil
}

// parseConcat parses a sequence of terms until a closing paren or the end
// of input, concatenating each onto the last. It returns the number of
// tokens consumed from tokens[from:].
func (b *regexBuilder) parseConcat(tokens []Token, from int) (fragment, int, error) {
	i := from
	var acc *fragment

	for i < len(tokens) && tokens[i] != CloseParen {
		term, consumed, err := b.parseTerm(tokens, i)
		if err != nil {
			return fragment{}, 0, err
		}
		i += consumed

		if acc == nil {
			acc = &term
		} else {
			acc = concatFragments(b, *acc, term)
		}
	}

	if acc == nil {
		// empty regex: one state, both initial and final
		s := b.newState()
		acc = &fragment{start: s, finals: []int{s}}
	}

	return *acc, i - from, nil
}

// parseTerm parses a single atom (a symbol or a parenthesized group) and
// then an optional trailing Star/Plus.
func (b *regexBuilder) parseTerm(tokens []Token, from int) (fragment, int, error) {
	if from >= len(tokens) {
		return fragment{}, 0, snperr.UnexpectedErrorf(component, "expected a regex term, found end of input")
	}

	var atom fragment
	i := from

	switch tokens[i] {
	case OpenParen:
		inner, consumed, err := b.parseConcat(tokens, i+1)
		if err != nil {
			return fragment{}, 0, err
		}
		i += 1 + consumed
		if i >= len(tokens) || tokens[i] != CloseParen {
			return fragment{}, 0, snperr.UnexpectedErrorf(component, "unterminated regex group")
		}
		i++
		atom = inner
	case CloseParen, Star, Plus:
		return fragment{}, 0, snperr.UnexpectedErrorf(component, "unexpected regex operator %q", tokens[i])
	default:
		sym := string(tokens[i])
		s0 := b.newState()
		s1 := b.newState()
		b.addSymbol(s0, sym, s1)
		atom = fragment{start: s0, finals: []int{s1}}
		i++
	}

	if i < len(tokens) {
		switch tokens[i] {
		case Star:
			atom = starFragment(b, atom)
			i++
		case Plus:
			atom = plusFragment(b, atom)
			i++
		}
	}

	return atom, i - from, nil
}

// concatFragments builds L R: bridge every final of l to r's initial.
func concatFragments(b *regexBuilder, l, r fragment) *fragment {
	for _, f := range l.finals {
		b.addEpsilon(f, r.start)
	}
	return &fragment{start: l.start, finals: r.finals}
}

// starFragment builds X*: loop every final of x back to x's initial, and
// additionally mark x's initial as final (so the empty string is accepted).
func starFragment(b *regexBuilder, x fragment) fragment {
	for _, f := range x.finals {
		b.addEpsilon(f, x.start)
	}
	finals := append(append([]int{}, x.finals...), x.start)
	return fragment{start: x.start, finals: finals}
}

// plusFragment builds X+: loop every final of x back to x's initial, with
// no additional final marking (the empty string is not accepted unless X
// already accepted it).
func plusFragment(b *regexBuilder, x fragment) fragment {
	for _, f := range x.finals {
		b.addEpsilon(f, x.start)
	}
	return fragment{start: x.start, finals: x.finals}
}
