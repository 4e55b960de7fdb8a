package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClauseStateFetch(t *testing.T) {
	s := clauseFetch
	assert.True(t, s.word("first"))
	assert.Equal(t, clauseFirstOrNext, s)
	s.count()
	assert.Equal(t, clauseCount, s)
	assert.True(t, s.word("rows"))
	assert.Equal(t, clauseRow, s)
	assert.True(t, s.word("only"))
	assert.Equal(t, clauseNone, s)
}

func TestClauseStateAborts(t *testing.T) {
	tests := []struct {
		name  string
		state clauseState
		word  string
	}{
		{"fetch then noise", clauseFetch, "rows"},
		{"first without count", clauseFirstOrNext, "rows"},
		{"count then noise", clauseCount, "only"},
		{"row then noise", clauseRow, "rows"},
		{"offset without count", clauseOffset, "rows"},
		{"idle", clauseNone, "only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.state
			assert.False(t, s.word(tt.word))
			assert.Equal(t, clauseNone, s)
		})
	}
}

func TestClauseStateCount(t *testing.T) {
	s := clauseOffset
	s.count()
	assert.Equal(t, clauseOffsetCount, s)
	assert.True(t, s.word("row"))
	assert.Equal(t, clauseNone, s)

	s = clauseCount
	s.count()
	assert.Equal(t, clauseNone, s, "a second count aborts")

	assert.Equal(t, "first-or-next", clauseFirstOrNext.String())
	assert.Equal(t, "unknown", clauseState(42).String())
}
