// Package snpw loads SN P World (.snpw) program files: a TOML-based format
// that plays the role a source-language evaluator would play upstream of
// the builder API.
package snpw

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/snpsim/internal/automaton"
	"github.com/dekarrin/snpsim/internal/snp"
	"github.com/dekarrin/snpsim/internal/snperr"
	"github.com/dekarrin/snpsim/internal/util"
)

const component = "snpw"

// neuronTable is one [[neuron]] entry.
type neuronTable struct {
	ID      string   `toml:"id"`
	Symbols []string `toml:"symbols"`
}

// channelTable is one [[channel]] entry.
type channelTable struct {
	ID   string `toml:"id"`
	From string `toml:"from"`
	To   string `toml:"to"`
}

// ruleTable is one [[rule]] entry. Regex is an already-tokenized sequence of
// symbols and operator strings ("(", ")", "*", "+"); an empty/absent Regex
// means the rule has no predicate.
type ruleTable struct {
	Neuron   string              `toml:"neuron"`
	Regex    []string            `toml:"regex"`
	Consumed []string            `toml:"consumed"`
	Channels map[string][]string `toml:"channels"`
	Block    int                 `toml:"block"`
}

// document is the top-level shape of a .snpw file.
type document struct {
	Input   string         `toml:"input"`
	Output  string         `toml:"output"`
	Neuron  []neuronTable  `toml:"neuron"`
	Channel []channelTable `toml:"channel"`
	Rule    []ruleTable    `toml:"rule"`
}

// LoadFile reads and parses the .snpw file at path, returning a System built
// purely through its builder API.
func LoadFile(path string) (*snp.System, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, snperr.Wrap(snperr.UnexpectedError, component, err, "read program file")
	}
	return Load(data)
}

// Load parses data as a .snpw document and builds the System it describes.
func Load(data []byte) (*snp.System, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, snperr.Wrap(snperr.SyntaxError, component, err, "parse program file")
	}
	return build(doc)
}

func build(doc document) (*snp.System, error) {
	s := snp.New()

	for _, n := range doc.Neuron {
		s.AddSymbols(n.ID, n.Symbols...)
	}

	if doc.Input != "" {
		s.SetInput(doc.Input)
	}
	if doc.Output != "" {
		s.SetOutput(doc.Output)
	}

	for _, c := range doc.Channel {
		if err := s.AddChannel(c.ID, c.From, c.To); err != nil {
			return nil, err
		}
	}

	for _, r := range doc.Rule {
		var tokens []automaton.Token
		if len(r.Regex) > 0 {
			tokens = make([]automaton.Token, len(r.Regex))
			for i, t := range r.Regex {
				tokens[i] = automaton.Token(t)
			}
		}

		channels := make(map[string]util.Multiset[string], len(r.Channels))
		for channelID, payload := range r.Channels {
			channels[channelID] = util.NewMultiset(payload...)
		}

		consumed := util.NewMultiset(r.Consumed...)

		if err := s.AddRule(r.Neuron, tokens, consumed, channels, r.Block); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// ParseInput splits a raw CLI input string into a symbol multiset. sep
// separates symbols (default ","); when strip is true, leading/trailing
// whitespace is trimmed from each symbol before counting.
func ParseInput(raw, sep string, strip bool) util.Multiset[string] {
	if raw == "" {
		return util.Multiset[string]{}
	}
	if sep == "" {
		sep = ","
	}
	parts := splitAndTrim(raw, sep, strip)
	return util.NewMultiset(parts...)
}

func splitAndTrim(raw, sep string, strip bool) []string {
	var out []string
	start := 0
	for i := 0; i <= len(raw)-len(sep); i++ {
		if raw[i:i+len(sep)] == sep {
			out = append(out, maybeTrim(raw[start:i], strip))
			start = i + len(sep)
			i += len(sep) - 1
		}
	}
	out = append(out, maybeTrim(raw[start:], strip))
	return out
}

func maybeTrim(s string, strip bool) string {
	if !strip {
		return s
	}
	i, j := 0, len(s)
	for i < j && isSpace(s[i]) {
		i++
	}
	for j > i && isSpace(s[j-1]) {
		j--
	}
	return s[i:j]
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}
