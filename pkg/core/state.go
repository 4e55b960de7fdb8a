package core

import (
	"context"
	"time"
)

// Store defines the interface for render history persistence.
type Store interface {
	Open(path string) error
	Close() error
	Migrate() error

	// Render operations
	SaveRender(ctx context.Context, r *Render) error
	GetRender(ctx context.Context, id string) (*Render, error)
	FindRender(ctx context.Context, dialect, input string) (*Render, error)
	ListRenders(ctx context.Context, limit int) ([]*Render, error)
	DeleteRender(ctx context.Context, id string) error
	Stats(ctx context.Context) (*StoreStats, error)
}

// Render is one persisted fragment rendering.
type Render struct {
	ID        string
	Dialect   string
	Input     string
	Output    string
	Columns   []string
	Hash      string // sha256 of dialect + input
	Source    string // "cli", "batch", "http", "repl"
	CreatedAt time.Time
}

// StoreStats summarizes the render history.
type StoreStats struct {
	Renders   int
	Dialects  map[string]int
	FirstSeen *time.Time
	LastSeen  *time.Time
}
