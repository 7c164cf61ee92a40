// Package storage persists the engine state. The engine's in-memory state is
// the single source of truth; a Store is a mirror that receives the whole
// snapshot after every mutation and hands it back on startup.
package storage

import (
	"context"
	"errors"

	"github.com/YashSadhu/mentme/internal/model"
)

var ErrNotFound = errors.New("storage: not found")

type Store interface {
	// Load returns the last saved snapshot, or ErrNotFound when the
	// namespace has never been saved.
	Load(ctx context.Context) (model.State, error)
	// Save replaces the snapshot wholesale.
	Save(ctx context.Context, state model.State) error
}
