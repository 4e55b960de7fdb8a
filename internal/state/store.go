// Package state persists render history using SQLite.
//
// Core types are defined in pkg/core. This package re-exports them via type
// aliases so callers can depend on state alone.
package state

import (
	"errors"

	"github.com/leapstack-labs/leapfrag/pkg/core"
)

type (
	// Store is an alias for core.Store.
	Store = core.Store

	// Render is an alias for core.Render.
	Render = core.Render

	// Stats is an alias for core.StoreStats.
	Stats = core.StoreStats
)

// ErrNotFound is returned when a render does not exist.
var ErrNotFound = errors.New("render not found")

var errNotOpened = errors.New("database not opened")

var _ Store = (*SQLiteStore)(nil)
