package automaton

import (
	"strconv"
	"strings"
	"testing"

	"github.com/dekarrin/snpsim/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toks(ss ...string) []Token {
	out := make([]Token, len(ss))
	for i, s := range ss {
		out[i] = Token(s)
	}
	return out
}

func mustDFA(t *testing.T, tokens []Token) *DFA {
	t.Helper()
	d, err := CompileDFA(tokens)
	require.NoError(t, err)
	return d
}

func TestEmptyRegexAcceptsOnlyEmptyString(t *testing.T) {
	d := mustDFA(t, nil)
	assert.True(t, d.Accepts(nil))
	assert.False(t, d.Accepts([]string{"a"}))
}

func TestEmptyRegexAcceptsEmptyMultiset(t *testing.T) {
	d := mustDFA(t, nil)
	assert.True(t, d.AcceptsMultiset(util.Multiset[string]{}))
}

func TestSingleSymbolRegex(t *testing.T) {
	d := mustDFA(t, toks("a"))
	assert.True(t, d.Accepts([]string{"a"}))
	assert.False(t, d.Accepts([]string{"b"}))
	assert.False(t, d.Accepts(nil))
	assert.False(t, d.Accepts([]string{"a", "a"}))
}

// DFA multiset acceptance for regex a*b*.
func TestMultisetAcceptanceAStarBStar(t *testing.T) {
	d := mustDFA(t, toks("a", "*", "b", "*"))

	aab := util.NewMultiset("a", "a", "b")
	assert.True(t, d.AcceptsMultiset(aab))

	bba := util.NewMultiset("b", "b", "a")
	assert.True(t, d.AcceptsMultiset(bba))

	abc := util.NewMultiset("a", "b", "c")
	assert.False(t, d.AcceptsMultiset(abc))
}

// DFA string acceptance for regex (ab)+c*.
func TestStringAcceptanceGroupedPlusThenStar(t *testing.T) {
	d := mustDFA(t, toks("(", "a", "b", ")", "+", "c", "*"))

	accept := []string{"ab", "abc", "ababccc"}
	for _, w := range accept {
		assert.True(t, d.Accepts(strings.Split(w, "")), "expected accept: %q", w)
	}

	reject := []string{"", "c", "cab", "acc"}
	for _, w := range reject {
		assert.False(t, d.Accepts(strings.Split(w, "")), "expected reject: %q", w)
	}
}

func TestGroupedStarIndistinguishableFromBareSymbolStar(t *testing.T) {
	bare := mustDFA(t, toks("a", "*"))
	grouped := mustDFA(t, toks("(", "a", ")", "*"))

	for _, n := range []int{0, 1, 2, 5} {
		word := make([]string, n)
		for i := range word {
			word[i] = "a"
		}
		assert.Equal(t, bare.Accepts(word), grouped.Accepts(word), "n=%d", n)
	}
}

func TestPlusRequiresAtLeastOne(t *testing.T) {
	d := mustDFA(t, toks("a", "+"))
	assert.False(t, d.Accepts(nil))
	assert.True(t, d.Accepts([]string{"a"}))
	assert.True(t, d.Accepts([]string{"a", "a", "a"}))
}

func TestConcatenation(t *testing.T) {
	d := mustDFA(t, toks("a", "b", "c"))
	assert.True(t, d.Accepts([]string{"a", "b", "c"}))
	assert.False(t, d.Accepts([]string{"a", "c", "b"}))
}

func TestConsistentForNonDegenerateRegex(t *testing.T) {
	cases := [][]Token{
		toks("a"),
		toks("a", "*"),
		toks("a", "+"),
		toks("a", "b", "c"),
		toks("(", "a", "b", ")", "+", "c", "*"),
		nil,
	}
	for _, tokens := range cases {
		d := mustDFA(t, tokens)
		assert.True(t, d.IsConsistent(), "tokens=%v", tokens)
	}
}

func TestAcceptsMultisetAgreesWithStringAcceptanceOnASingleOrdering(t *testing.T) {
	d := mustDFA(t, toks("(", "a", "b", ")", "+"))
	ms := util.NewMultiset("a", "b", "a", "b")
	assert.True(t, d.AcceptsMultiset(ms))

	ms2 := util.NewMultiset("a", "b", "b")
	assert.False(t, d.AcceptsMultiset(ms2))
}

func TestRenderDOTIncludesEveryState(t *testing.T) {
	e, err := Compile(toks("a", "*"))
	require.NoError(t, err)
	dot := e.RenderDOT()
	assert.True(t, strings.HasPrefix(dot, "digraph graph_rendered{"))
	for n := range e.Nodes() {
		assert.Contains(t, dot, "q"+strconv.Itoa(n))
	}
}
