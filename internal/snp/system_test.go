package snp

import (
	"testing"

	"github.com/dekarrin/snpsim/internal/snperr"
	"github.com/dekarrin/snpsim/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddChannelRejectsSelfLoop(t *testing.T) {
	s := New()
	err := s.AddChannel("1", "n", "n")
	require.Error(t, err)
	var e *snperr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, snperr.CircularSinapsisError, e.Kind)
}

func TestAddChannelRejectsOutputAsSource(t *testing.T) {
	s := New()
	err := s.AddChannel("1", Out, "n")
	require.Error(t, err)
	var e *snperr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, snperr.EnvValueError, e.Kind)
}

func TestBuildApiImplicitlyRegistersNeurons(t *testing.T) {
	s := New()
	s.AddSymbols("a", "x")
	require.NoError(t, s.AddChannel("c", "a", "b"))

	assert.Equal(t, []string{"a", "b"}, s.Neurons())
}

func TestSetInputAndOutputDefaults(t *testing.T) {
	s := New()
	assert.Equal(t, Out, s.Output())
	assert.Equal(t, "", s.Input())

	s.SetInput("in")
	s.SetOutput("o")
	assert.Equal(t, "in", s.Input())
	assert.Equal(t, "o", s.Output())
}

func TestAddRuleCompilesRegexAndAttachesToNeuron(t *testing.T) {
	s := New()
	require.NoError(t, s.AddRule("n", toks("a", "*"), util.Multiset[string]{}, nil, 0))
	rules := s.Rules("n")
	require.Len(t, rules, 1)
	assert.NotNil(t, rules[0].Regex)
}
