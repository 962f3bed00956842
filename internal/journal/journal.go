// Package journal owns the in-memory trade collection and its lifecycle:
// loading, appending, analysis, and persistence side effects.
package journal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"trading-journal/internal/analytics"
	apperrors "trading-journal/internal/errors"
	"trading-journal/internal/logging"
	"trading-journal/internal/models"
	"trading-journal/internal/store"
)

// Journal is the explicitly owned, versioned trade collection. All
// mutations replace the collection wholesale and trigger a save; a store
// failure is logged and the journal carries on in memory only.
type Journal struct {
	mu sync.Mutex

	store  store.Store
	logger zerolog.Logger

	trades  []models.Trade
	version uint64
	seq     uint64

	// lastResult is cleared on every mutation so a displayed analysis can
	// never silently refer to a stale trade set.
	lastResult *models.AnalysisResult

	minTrades int
}

// Open loads the persisted collection into a new Journal. A load failure
// (corrupt or unavailable store) falls back to an empty collection.
func Open(ctx context.Context, st store.Store, minTrades int, logger zerolog.Logger) *Journal {
	j := &Journal{
		store:     st,
		logger:    logger,
		trades:    []models.Trade{},
		minTrades: minTrades,
	}

	if st == nil {
		logger.Warn().Msg("No store configured, journal is in-memory only")
		return j
	}

	trades, err := st.LoadJournal(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to load journal, starting empty")
		return j
	}
	j.trades = trades
	return j
}

// Append assigns ids to the given trades, appends them to the collection
// and persists. It returns the stored trades with ids populated.
func (j *Journal) Append(ctx context.Context, trades ...models.Trade) []models.Trade {
	j.mu.Lock()
	defer j.mu.Unlock()

	added := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		t.ID = j.nextID()
		j.trades = append(j.trades, t)
		added = append(added, t)
	}

	j.mutated(ctx)
	return added
}

// Replace swaps the whole collection, preserving the given order. Ids that
// are missing get assigned.
func (j *Journal) Replace(ctx context.Context, trades []models.Trade) {
	j.mu.Lock()
	defer j.mu.Unlock()

	replaced := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		if t.ID == "" {
			t.ID = j.nextID()
		}
		replaced = append(replaced, t)
	}
	j.trades = replaced

	j.mutated(ctx)
}

// Reset clears the collection.
func (j *Journal) Reset(ctx context.Context) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.trades = []models.Trade{}
	j.mutated(ctx)
}

// Snapshot returns a copy of the collection in insertion order.
func (j *Journal) Snapshot() []models.Trade {
	j.mu.Lock()
	defer j.mu.Unlock()

	out := make([]models.Trade, len(j.trades))
	copy(out, j.trades)
	return out
}

// Len returns the current trade count.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.trades)
}

// Version returns the mutation counter. It increments on every Append,
// Replace, and Reset.
func (j *Journal) Version() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.version
}

// Analyze runs the full analysis over the current collection. On success
// the result becomes the journal's current result; on any failure the
// previous result is cleared, never left stale.
func (j *Journal) Analyze(ctx context.Context) (*models.AnalysisResult, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	started := time.Now()
	result, err := analytics.Analyze(j.trades, j.minTrades)
	if err != nil {
		j.lastResult = nil
		return nil, err
	}

	j.lastResult = result
	logging.LogAnalysis(j.logger, len(j.trades), result.Metrics.TotalNetPnL, time.Since(started))
	return result, nil
}

// LastResult returns the current analysis result, if one exists for the
// current trade set.
func (j *Journal) LastResult() (*models.AnalysisResult, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.lastResult == nil {
		return nil, false
	}
	return j.lastResult, true
}

// FindTrade returns the trade with the given id.
func (j *Journal) FindTrade(id string) (models.Trade, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	for _, t := range j.trades {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Trade{}, apperrors.ErrTradeNotFound
}

// mutated bumps the version, invalidates the last result and persists the
// collection. Callers must hold the lock.
func (j *Journal) mutated(ctx context.Context) {
	j.version++
	j.lastResult = nil

	if j.store == nil {
		return
	}
	if err := j.store.SaveJournal(ctx, j.trades); err != nil {
		j.logger.Error().Err(err).Msg("Failed to persist journal, continuing in memory")
	}
}

// nextID builds a unique trade id. Callers must hold the lock.
func (j *Journal) nextID() string {
	j.seq++
	return fmt.Sprintf("TRD-%d-%d", time.Now().UnixNano(), j.seq)
}
