// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"trading-journal/internal/models"
)

// JournalKey is the fixed key under which the trade collection is persisted.
const JournalKey = "journal"

// Store defines the persistence boundary for the journal. The trade
// collection is saved as a single serialized sequence under one fixed key.
type Store interface {
	// LoadJournal returns the persisted trade collection. A missing key
	// returns an empty collection, not an error.
	LoadJournal(ctx context.Context) ([]models.Trade, error)

	// SaveJournal replaces the persisted trade collection wholesale.
	SaveJournal(ctx context.Context, trades []models.Trade) error

	// Lifecycle
	Close() error
}
