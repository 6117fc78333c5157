// Package session keeps per-browser console state.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned when no state is stored for an id.
var ErrSessionNotFound = errors.New("session not found")

// Store defines the operations on stored console state.
type Store interface {
	Load(ctx context.Context, id string) (*State, error)
	Save(ctx context.Context, id string, state *State, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
