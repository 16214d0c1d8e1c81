package snp

import "github.com/dekarrin/snpsim/internal/util"

// Mode selects one of the four reporting shapes Run can produce.
type Mode string

const (
	// Halt reports the output neuron's final content at termination.
	Halt Mode = "halt"

	// HaltMC merges every step's output-targeted channel deliveries into one
	// channel-to-multiset mapping covering the whole run.
	HaltMC Mode = "halt-mc"

	// Time lists, per step, the union of all payloads delivered to output
	// during that step, channel labels discarded.
	Time Mode = "time"

	// TimeMC lists, per step, the full channel-to-multiset mapping of
	// deliveries to output during that step.
	TimeMC Mode = "time-mc"
)

// Result is the mode-shaped outcome of a Run call. Exactly one field is
// populated, matching the Mode that produced it.
type Result struct {
	Mode Mode

	// Halt
	Final util.Multiset[string]

	// HaltMC
	Merged map[string]util.Multiset[string]

	// Time
	PerStep []util.Multiset[string]

	// TimeMC
	History []map[string]util.Multiset[string]
}

// buildResult shapes a finished run's output-directed history into the
// Result the requested mode describes. final is current[output] at
// termination; history is one frame per step actually taken, each frame
// mapping channel id to the multiset delivered to output on that step (spec
// §4.6's history[current-step][c] accumulation, already filtered to
// output-bound deliveries by fireOnce).
func buildResult(mode Mode, final util.Multiset[string], history []map[string]util.Multiset[string]) Result {
	switch mode {
	case HaltMC:
		merged := map[string]util.Multiset[string]{}
		for _, frame := range history {
			for channelID, payload := range frame {
				existing := merged[channelID]
				merged[channelID] = existing.Plus(payload)
			}
		}
		return Result{Mode: mode, Merged: merged}

	case Time:
		perStep := make([]util.Multiset[string], len(history))
		for i, frame := range history {
			union := util.Multiset[string]{}
			for _, payload := range frame {
				union = union.Union(payload)
			}
			perStep[i] = union
		}
		return Result{Mode: mode, PerStep: perStep}

	case TimeMC:
		return Result{Mode: mode, History: history}

	default: // Halt
		return Result{Mode: Halt, Final: final}
	}
}
