package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifierLatestWins(t *testing.T) {
	n := newNotifier()
	ch := n.subscribe()
	other := n.subscribe()
	require.Equal(t, 2, n.count())

	n.broadcast(1)
	n.broadcast(2)
	n.broadcast(3)

	assert.Equal(t, uint64(3), <-ch)
	assert.Equal(t, uint64(3), <-other)

	n.unsubscribe(ch)
	n.unsubscribe(other)
	assert.Zero(t, n.count())

	_, open := <-ch
	assert.False(t, open)

	// no listeners is fine
	n.broadcast(4)
}
