// Package store persists game snapshots: the flat state string plus the side to move.
package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	mg "chess-board/chessmg"
)

var ErrNotFound = errors.New("snapshot not found")

// Snapshot is everything needed to restore a game.
type Snapshot struct {
	ID        string    `bson:"_id" json:"id"`
	State     string    `bson:"state" json:"state"`
	Side      string    `bson:"side" json:"side"`
	Placement string    `bson:"placement" json:"placement"`
	Hash      string    `bson:"hash" json:"hash"`
	SavedAt   time.Time `bson:"saved_at" json:"saved_at"`
}

// Store saves and loads snapshots by game id.
type Store interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context, id string) (Snapshot, error)
	Delete(ctx context.Context, id string) error
	Close(ctx context.Context) error
}

// SnapshotOf captures the current state of g.
func SnapshotOf(id string, g *mg.Game) Snapshot {
	return Snapshot{
		ID:        id,
		State:     g.StateString(),
		Side:      g.SideToMove().String(),
		Placement: g.Placement(),
		Hash:      strconv.FormatUint(g.Hash(), 16),
		SavedAt:   time.Now().UTC(),
	}
}

// Restore loads the snapshot into g, replacing its board and side to move.
func (s Snapshot) Restore(g *mg.Game) error {
	side, ok := mg.ParseColor(s.Side)
	if !ok {
		return fmt.Errorf("%w: snapshot %s: unknown side %q", mg.ErrInvalidState, s.ID, s.Side)
	}
	return g.RestoreWithSide(s.State, side)
}
