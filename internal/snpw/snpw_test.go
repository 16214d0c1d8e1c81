package snpw

import (
	"testing"

	"github.com/dekarrin/snpsim/internal/snp"
	"github.com/dekarrin/snpsim/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const simpleTransform = `
input = "0"
output = "out"

[[channel]]
id = "1"
from = "0"
to = "out"

[[channel]]
id = "2"
from = "0"
to = "2"

[[rule]]
neuron = "0"
consumed = ["a"]
block = 0

[rule.channels]
"1" = ["1"]
"2" = ["a"]
`

func TestLoadBuildsSystemThatRunsToSpecResult(t *testing.T) {
	sys, err := Load([]byte(simpleTransform))
	require.NoError(t, err)

	result := sys.Run(util.NewMultiset("a"), snp.Halt, snp.RunOptions{})
	assert.True(t, util.NewMultiset("1").Equal(result.Final))
}

func TestLoadRejectsSelfLoopChannel(t *testing.T) {
	doc := `
[[channel]]
id = "1"
from = "0"
to = "0"
`
	_, err := Load([]byte(doc))
	assert.Error(t, err)
}

func TestLoadRejectsChannelFromOutputSentinel(t *testing.T) {
	doc := `
[[channel]]
id = "1"
from = "out"
to = "0"
`
	_, err := Load([]byte(doc))
	assert.Error(t, err)
}

func TestParseInputSplitsAndTrims(t *testing.T) {
	m := ParseInput(" a , a, b ", ",", true)
	assert.Equal(t, 2, m.Count("a"))
	assert.Equal(t, 1, m.Count("b"))
}

func TestParseInputNoStripKeepsWhitespace(t *testing.T) {
	m := ParseInput("a, a", ",", false)
	assert.Equal(t, 1, m.Count("a"))
	assert.Equal(t, 1, m.Count(" a"))
}

func TestParseInputEmptyIsEmptyMultiset(t *testing.T) {
	m := ParseInput("", ",", true)
	assert.True(t, m.Empty())
}
