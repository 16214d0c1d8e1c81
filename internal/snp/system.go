// Package snp implements the Spiking Neural P-system model: neurons,
// channels, and rules, the build API that the surface-language
// evaluator calls to populate a System, and the
// nondeterministic maximal-step simulator that runs it.
package snp

import (
	"sort"

	"github.com/dekarrin/snpsim/internal/automaton"
	"github.com/dekarrin/snpsim/internal/snperr"
	"github.com/dekarrin/snpsim/internal/snprule"
	"github.com/dekarrin/snpsim/internal/util"
)

// Out is the sentinel neuron id meaning "the output membrane". It is never
// created as an ordinary neuron by AddSymbols/AddRule; it is only ever the
// target of channels. SetOutput defaults to this sentinel when never
// called.
const Out = "out"

const component = "snp"

// System is a collection of neurons, channels, and rules, plus distinguished
// input and output neuron references. It is built once through the
// AddSymbols/AddChannel/AddRule/SetInput/SetOutput calls and then run zero
// or more times via Run; building is not reentrant with running.
type System struct {
	input  string
	output string

	neurons  util.Set[string]
	contents map[string]util.Multiset[string]

	// channels[channelID][source] is the set of targets a spike sent on
	// channelID from source is delivered to.
	channels map[string]map[string]util.Set[string]

	rules map[string][]*snprule.Rule
}

// New creates an empty System whose output defaults to the Out sentinel.
func New() *System {
	return &System{
		output:   Out,
		neurons:  util.Set[string]{},
		contents: map[string]util.Multiset[string]{},
		channels: map[string]map[string]util.Set[string]{},
		rules:    map[string][]*snprule.Rule{},
	}
}

// register implicitly creates neuron if it has not been seen before: every
// build API call implicitly registers the neuron ids it mentions.
func (s *System) register(neuron string) {
	if !s.neurons.Has(neuron) {
		s.neurons.Add(neuron)
		s.contents[neuron] = util.Multiset[string]{}
	}
}

// SetInput designates the neuron that receives the run's input multiset.
func (s *System) SetInput(neuron string) {
	s.register(neuron)
	s.input = neuron
}

// SetOutput designates the neuron whose arriving spikes are reported by Run.
func (s *System) SetOutput(neuron string) {
	s.register(neuron)
	s.output = neuron
}

// Input returns the currently designated input neuron, or "" if unset.
func (s *System) Input() string { return s.input }

// Output returns the currently designated output neuron.
func (s *System) Output() string { return s.output }

// AddSymbols appends symbols to neuron's initial content.
func (s *System) AddSymbols(neuron string, symbols ...string) {
	s.register(neuron)
	content := s.contents[neuron]
	content.Extend(symbols)
	s.contents[neuron] = content
}

// AddChannel appends a synapse from source to target under channelID.
//
// It enforces two build-time invariants: a channel may not loop a neuron
// back to itself (CircularSinapsisError),
// and a channel may not originate from the Out sentinel, which never fires
// rules and so can never legitimately be a channel source
// (EnvValueError).
func (s *System) AddChannel(channelID, source, target string) error {
	if source == target {
		return snperr.CircularSinapsisErrorf(component, "channel %q: membrane %q cannot synapse to itself", channelID, source)
	}
	if source == Out {
		return snperr.EnvValueErrorf(component, "channel %q: the output sentinel %q cannot be a channel source", channelID, Out)
	}

	s.register(source)
	s.register(target)

	if s.channels[channelID] == nil {
		s.channels[channelID] = map[string]util.Set[string]{}
	}
	if s.channels[channelID][source] == nil {
		s.channels[channelID][source] = util.Set[string]{}
	}
	s.channels[channelID][source].Add(target)
	return nil
}

// AddRule compiles and attaches a rule to neuron. regexTokens may be nil,
// meaning the rule has no predicate: a nil-regex rule with channels fires
// only when consumed equals the neuron's entire current state, and a
// forgetting one (no channels) fires whenever consumed is contained in it.
func (s *System) AddRule(neuron string, regexTokens []automaton.Token, consumed util.Multiset[string], channels map[string]util.Multiset[string], block int) error {
	s.register(neuron)
	r, err := snprule.New(neuron, regexTokens, consumed, channels, block)
	if err != nil {
		return err
	}
	s.rules[neuron] = append(s.rules[neuron], r)
	return nil
}

// Neurons returns every registered neuron id, sorted for deterministic
// iteration.
func (s *System) Neurons() []string {
	ids := s.neurons.Elements()
	sort.Strings(ids)
	return ids
}

// Rules returns the rules attached to neuron, in the order they were added.
func (s *System) Rules(neuron string) []*snprule.Rule {
	return s.rules[neuron]
}
