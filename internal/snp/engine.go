package snp

import (
	"math/rand"

	"github.com/dekarrin/snpsim/internal/snprule"
	"github.com/dekarrin/snpsim/internal/util"
)

// RNG is the randomness source rule selection draws from. It is an injected
// dependency so tests can seed it deterministically; *rand.Rand
// satisfies it.
type RNG interface {
	Intn(n int) int
}

// Renderer receives one snapshot per simulation step when rendering is
// requested. Diagnostic rendering is handled by a separate collaborator;
// the core only needs this interface to call out to it.
type Renderer interface {
	RenderStep(step int, current map[string]util.Multiset[string]) error
}

// delayState is a neuron's firing-delay countdown: k=-1 idle, k=0 fire-now,
// k>0 waiting. rule is the pending rule to fire when k reaches 0.
type delayState struct {
	k    int
	rule *snprule.Rule
}

// RunOptions configures a single Run invocation.
type RunOptions struct {
	// MaxSteps bounds the number of steps taken. Nil means unbounded (the
	// simulator still terminates naturally for systems whose reachable
	// configuration space is finite).
	MaxSteps *int

	// RNG is the source of randomness for nondeterministic rule selection.
	// A nil RNG defaults to a math/rand.Rand seeded with 1, so every run
	// without an injected RNG makes the same sequence of choices.
	RNG RNG

	// Renderer, if non-nil, receives one snapshot per step.
	Renderer Renderer
}

// Run executes the system against input and returns a result shaped by
// mode. Each call to Run rebuilds all runtime state from scratch
// (current, next, delay countdowns, and history), so repeated Runs of the
// same built System are independent of each other.
func (s *System) Run(input util.Multiset[string], mode Mode, opts RunOptions) Result {
	rng := opts.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	neurons := s.Neurons()

	next := map[string]util.Multiset[string]{}
	for _, n := range neurons {
		next[n] = s.contents[n].Clone()
	}
	if s.input != "" {
		if _, ok := next[s.input]; !ok {
			next[s.input] = util.Multiset[string]{}
		}
		in := next[s.input]
		in.Extend(input.Elements())
		next[s.input] = in
	}

	current := cloneState(next)

	delay := map[string]delayState{}
	for _, n := range neurons {
		delay[n] = delayState{k: -1}
	}

	var history []map[string]util.Multiset[string]

	step := 0
	for {
		frame := map[string]util.Multiset[string]{}
		history = append(history, frame)

		modifiedAny := false
		for _, n := range neurons {
			if runNeuron(s, n, current, next, delay, frame, rng) {
				modifiedAny = true
			}
		}

		if !modifiedAny {
			history = history[:len(history)-1]
			break
		}

		current = cloneState(next)
		if opts.Renderer != nil {
			_ = opts.Renderer.RenderStep(step, cloneState(current))
		}

		step++
		if opts.MaxSteps != nil && step >= *opts.MaxSteps {
			break
		}
	}

	return buildResult(mode, current[s.output], history)
}

func cloneState(m map[string]util.Multiset[string]) map[string]util.Multiset[string] {
	out := make(map[string]util.Multiset[string], len(m))
	for k, v := range m {
		out[k] = v.Clone()
	}
	return out
}

// runNeuron runs nondeterministic rule selection with delay for a single
// neuron and reports whether it modified any state this step.
func runNeuron(
	s *System,
	n string,
	current, next map[string]util.Multiset[string],
	delay map[string]delayState,
	frame map[string]util.Multiset[string],
	rng RNG,
) bool {
	d := delay[n]
	modified := false

	if d.k > 0 {
		d.k--
		delay[n] = d
		return true
	}
	if d.k == 0 {
		fireOnce(s, n, d.rule, current, next, frame)
		delay[n] = delayState{k: -1}
		modified = true
	}

	valid := validRules(s, n, current)
	if len(valid) == 0 {
		return modified
	}

	preferred := make([]*snprule.Rule, 0, len(valid))
	for _, r := range valid {
		if !r.Forgetting() {
			preferred = append(preferred, r)
		}
	}
	if len(preferred) == 0 {
		preferred = valid
	}

	r := preferred[rng.Intn(len(preferred))]
	if r.Block > 0 {
		delay[n] = delayState{k: r.Block, rule: r}
		return true
	}

	for r.Valid(current[n]) {
		fireOnce(s, n, r, current, next, frame)
		modified = true
	}
	return modified
}

func validRules(s *System, n string, current map[string]util.Multiset[string]) []*snprule.Rule {
	state := current[n]
	var valid []*snprule.Rule
	for _, r := range s.rules[n] {
		if r.Valid(state) {
			valid = append(valid, r)
		}
	}
	return valid
}

// fireOnce applies one firing of r in neuron n: it subtracts r.Consumed from
// both current[n] and next[n], then delivers each channel's payload to
// every target the channel reaches from n, recording output-bound
// deliveries into frame.
func fireOnce(s *System, n string, r *snprule.Rule, current, next map[string]util.Multiset[string], frame map[string]util.Multiset[string]) {
	current[n] = current[n].Minus(r.Consumed)
	next[n] = next[n].Minus(r.Consumed)

	for channelID, payload := range r.Channels {
		targets := s.channels[channelID][n]
		for target := range targets {
			next[target] = next[target].Plus(payload)
			if target == s.output {
				existing := frame[channelID]
				frame[channelID] = existing.Plus(payload)
			}
		}
	}
}
