package summarize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombineExtracts(t *testing.T) {
	results := []ChunkResult{
		{Index: 1, Extract: "first"},
		{Index: 2, Failure: &Failure{Index: 2}},
		{Index: 3, Extract: "third"},
	}

	assert.Equal(t, "Section 1:\nfirst\n\nSection 3:\nthird", combineExtracts(results))
}

func TestCombineExtracts_AllFailed(t *testing.T) {
	results := []ChunkResult{{Index: 1, Failure: &Failure{Index: 1}}}

	assert.Empty(t, combineExtracts(results))
}

func TestChunkResultOK(t *testing.T) {
	assert.True(t, ChunkResult{Index: 1, Extract: ""}.OK(), "an empty extract is still a success")
	assert.False(t, ChunkResult{Index: 1, Failure: &Failure{}}.OK())
}
