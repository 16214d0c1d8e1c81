// Package render implements the diagnostic graph-rendering collaborator
// named but left external by the core: a Graphviz DOT writer that
// snapshots a System's neuron contents once per simulation step, grounded
// on the same render_dot shape internal/automaton uses for automata.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dekarrin/snpsim/internal/snperr"
	"github.com/dekarrin/snpsim/internal/util"
	"github.com/google/uuid"
)

const component = "render"

// DirWriter implements snp.Renderer. Each DirWriter gets its own
// uuid-named subdirectory under Path, so separate DirWriters against the
// same --render-path never clobber each other's snapshots. Runs that share
// one DirWriter write into the same subdirectory, and a later run's
// step_NNNN.dot files replace an earlier run's files of the same step.
type DirWriter struct {
	// Path is the parent directory snapshot subdirectories are created
	// under.
	Path string

	runDir string
}

// NewDirWriter creates the uuid-tagged run directory under path and returns
// a DirWriter ready to receive RenderStep calls.
func NewDirWriter(path string) (*DirWriter, error) {
	runDir := filepath.Join(path, uuid.NewString())
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, snperr.Wrap(snperr.UnexpectedError, component, err, "create render directory")
	}
	return &DirWriter{Path: path, runDir: runDir}, nil
}

// RunDir returns the uuid-tagged directory this writer's snapshots land in.
func (w *DirWriter) RunDir() string { return w.runDir }

// RenderStep writes one DOT file snapshotting every neuron's contents at
// the given step.
func (w *DirWriter) RenderStep(step int, current map[string]util.Multiset[string]) error {
	dot := RenderSnapshotDOT(step, current)
	name := filepath.Join(w.runDir, fmt.Sprintf("step_%04d.dot", step))
	if err := os.WriteFile(name, []byte(dot), 0o644); err != nil {
		return snperr.Wrap(snperr.UnexpectedError, component, err, "write render snapshot")
	}
	return nil
}

// RenderSnapshotDOT renders one step's neuron contents as a Graphviz DOT
// digraph: one node per neuron, labeled with its id and current multiset.
func RenderSnapshotDOT(step int, current map[string]util.Multiset[string]) string {
	neurons := make([]string, 0, len(current))
	for n := range current {
		neurons = append(neurons, n)
	}
	sort.Strings(neurons)

	var sb strings.Builder
	fmt.Fprintf(&sb, "digraph step_%d{\n", step)
	for _, n := range neurons {
		contents := current[n]
		elems := contents.OrderedKeys(func(a, b string) bool { return a < b })
		parts := make([]string, 0, len(elems))
		for _, e := range elems {
			parts = append(parts, fmt.Sprintf("%s:%d", e, contents.Count(e)))
		}
		label := n
		if len(parts) > 0 {
			label = fmt.Sprintf("%s\\n%s", n, strings.Join(parts, ", "))
		}
		fmt.Fprintf(&sb, "    %q [shape = box, label = %q];\n", n, label)
	}
	sb.WriteString("}")
	return sb.String()
}
