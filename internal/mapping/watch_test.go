package mapping

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leapstack-labs/leapfrag/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loaded struct {
	doc *Document
	err error
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entities:\n  - name: A\n    where: a = 1\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	updates := make(chan loaded, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, testutil.NewTestLogger(t), func(doc *Document, err error) {
			updates <- loaded{doc, err}
		})
	}()

	next := func() loaded {
		t.Helper()
		select {
		case l := <-updates:
			return l
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for reload")
			return loaded{}
		}
	}

	first := next()
	require.NoError(t, first.err)
	assert.Equal(t, "a = 1", first.doc.Entities[0].Where)

	// a sibling file does not trigger a reload
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o600))

	require.NoError(t, os.WriteFile(path, []byte("entities:\n  - name: A\n    where: b = 2\n"), 0o600))
	second := next()
	require.NoError(t, second.err)
	assert.Equal(t, "b = 2", second.doc.Entities[0].Where)

	require.NoError(t, os.WriteFile(path, []byte("entities:\n  - bogus: 1\n"), 0o600))
	third := next()
	var perr *ParseError
	assert.ErrorAs(t, third.err, &perr)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchMissingDir(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "m.yaml"), nil, func(*Document, error) {})
	assert.Error(t, err)
}
