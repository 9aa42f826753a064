package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDeterministic(t *testing.T) {
	text := "Signal failure near the junction, multiple trains delayed"
	first := Extract(text)
	second := Extract(text)
	require.Equal(t, first, second)
}

func TestExtractNoDuplicates(t *testing.T) {
	// "signal" fires the category and is also one of the first raw words.
	kws := Extract("signal signal signal trouble")
	seen := map[string]bool{}
	for _, kw := range kws {
		assert.False(t, seen[kw], "duplicate keyword %q", kw)
		seen[kw] = true
	}
	assert.Contains(t, kws, "signal")
}

func TestExtractCategoriesAndRawWords(t *testing.T) {
	kws := Extract("Heavy fog conditions, multiple delayed trains")

	assert.Contains(t, kws, "weather", "fog should trigger the weather category")
	assert.Contains(t, kws, "delay", "delayed should trigger the delay category")

	// At least one raw token survives; the first qualifying word is kept verbatim.
	assert.Contains(t, kws, "Heavy")
	assert.Contains(t, kws, "conditions")
	assert.Contains(t, kws, "multiple")
}

func TestExtractStripsTrailingPunctuation(t *testing.T) {
	kws := Extract("derailment reported, urgent response needed!")
	assert.Contains(t, kws, "derailment")
	assert.Contains(t, kws, "reported")
	assert.NotContains(t, kws, "reported,")
}

func TestExtractSkipsShortWords(t *testing.T) {
	kws := Extract("the cab was hit")
	for _, kw := range kws {
		assert.Greater(t, len(kw), 3)
	}
}

func TestExtractTriggerInsideWord(t *testing.T) {
	// Substring matching fires inside longer words; that looseness is the
	// intended search-filter behavior.
	kws := Extract("crewmember unavailable today")
	assert.Contains(t, kws, "crew")
}

func TestExtractEmptyInput(t *testing.T) {
	assert.Empty(t, Extract(""))
}
