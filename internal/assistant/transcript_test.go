package assistant

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedTurns(n int) []Turn {
	turns := make([]Turn, n)
	for i := range turns {
		turns[i] = Turn{User: fmt.Sprintf("q%d", i+1), Assistant: fmt.Sprintf("a%d", i+1)}
	}
	return turns
}

func TestTranscriptAppendDoesNotMutate(t *testing.T) {
	base := NewTranscript(numberedTurns(2)...)
	next := base.Append(Turn{User: "q3", Assistant: "a3"})
	other := base.Append(Turn{User: "x", Assistant: "y"})

	assert.Equal(t, 2, base.Len())
	require.Equal(t, 3, next.Len())
	assert.Equal(t, "q3", next.Turns()[2].User)
	assert.Equal(t, "x", other.Turns()[2].User)
}

func TestTranscriptTurnsIsCopy(t *testing.T) {
	tr := NewTranscript(numberedTurns(1)...)
	turns := tr.Turns()
	turns[0].User = "changed"
	assert.Equal(t, "q1", tr.Turns()[0].User)
}

func TestTranscriptRecent(t *testing.T) {
	tr := NewTranscript(numberedTurns(10)...)

	recent := tr.Recent(6)
	require.Len(t, recent, 6)
	assert.Equal(t, "q5", recent[0].User)
	assert.Equal(t, "q10", recent[5].User)

	assert.Len(t, tr.Recent(20), 10)
	assert.Nil(t, tr.Recent(0))
	assert.Nil(t, Transcript{}.Recent(6))
}

func TestTranscriptTail(t *testing.T) {
	tr := NewTranscript(numberedTurns(5)...)
	assert.Equal(t, 5, tr.Tail(0).Len())
	assert.Equal(t, 5, tr.Tail(10).Len())

	tail := tr.Tail(2)
	require.Equal(t, 2, tail.Len())
	assert.Equal(t, "q4", tail.Turns()[0].User)
	assert.Equal(t, 5, tr.Len())
}
