// Package snprule implements the compiled firing rule described in spec
// §3/§4.5: a regex predicate (compiled once, at construction, to a DFA), a
// consumed multiset, a channel-to-payload mapping, and a nonnegative firing
// delay.
package snprule

import (
	"github.com/dekarrin/snpsim/internal/automaton"
	"github.com/dekarrin/snpsim/internal/util"
)

// Rule is a compiled firing rule attached to one neuron. It is created once
// at build time and is read-only for the lifetime of a simulation.
type Rule struct {
	// Neuron is the id of the neuron this rule is attached to.
	Neuron string

	// Regex is the rule's predicate, compiled once at construction. A nil
	// Regex means the rule has no predicate: unless the rule is forgetting,
	// it fires iff Consumed equals the neuron's entire current state.
	Regex *automaton.DFA

	// Consumed is the multiset subtracted from the neuron's state (and from
	// every target's arriving spikes do not affect this) each time the rule
	// fires.
	Consumed util.Multiset[string]

	// Channels maps channel id to the payload multiset sent along that
	// channel each time the rule fires. An empty Channels makes the rule
	// forgetting.
	Channels map[string]util.Multiset[string]

	// Block is the nonnegative number of steps the rule delays firing once
	// selected. Zero fires immediately.
	Block int
}

// New compiles regexTokens (if non-nil) to a DFA and returns the resulting
// Rule. A nil regexTokens produces a Rule with no predicate.
func New(neuron string, regexTokens []automaton.Token, consumed util.Multiset[string], channels map[string]util.Multiset[string], block int) (*Rule, error) {
	var dfa *automaton.DFA
	if regexTokens != nil {
		compiled, err := automaton.CompileDFA(regexTokens)
		if err != nil {
			return nil, err
		}
		dfa = compiled
	}
	if channels == nil {
		channels = map[string]util.Multiset[string]{}
	}
	return &Rule{
		Neuron:   neuron,
		Regex:    dfa,
		Consumed: consumed,
		Channels: channels,
		Block:    block,
	}, nil
}

// Forgetting reports whether the rule sends nothing anywhere: it consumes
// symbols without emitting.
func (r *Rule) Forgetting() bool {
	return len(r.Channels) == 0
}

// Valid reports whether r may fire against state: Consumed must be
// contained in state, and additionally either r is forgetting, or r has no
// regex and Consumed equals state exactly, or r's regex DFA accepts some
// ordering of state.
func (r *Rule) Valid(state util.Multiset[string]) bool {
	if !state.Contains(r.Consumed) {
		return false
	}
	if r.Forgetting() {
		return true
	}
	if r.Regex == nil {
		return r.Consumed.Equal(state)
	}
	return r.Regex.AcceptsMultiset(state)
}
