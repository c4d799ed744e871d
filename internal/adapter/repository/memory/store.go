package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/atlasrisk/varscope-backend/internal/domain"
)

// Store is an in-memory implementation of domain.RiskStore. It backs unit
// and end-to-end tests and the database-less demo mode. ReplaceAll swaps the
// whole dataset under one lock, so readers see either the old or the new
// dataset, never a mix.
type Store struct {
	mu    sync.RWMutex
	batch domain.SeedBatch
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{}
}

// ReplaceAll atomically swaps in the new dataset
func (s *Store) ReplaceAll(_ context.Context, batch domain.SeedBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch = batch
	return nil
}

// LatestSnapshot returns the snapshot for asOf, or the most recent one
func (s *Store) LatestSnapshot(_ context.Context, asOf *time.Time) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *domain.Snapshot
	for i := range s.batch.Snapshots {
		snap := &s.batch.Snapshots[i]
		if asOf != nil && !snap.AsOf.Equal(domain.DateOnly(*asOf)) {
			continue
		}
		if found == nil || snap.AsOf.After(found.AsOf) {
			found = snap
		}
	}
	if found == nil {
		return nil, domain.ErrNotFound
	}

	out := *found
	out.Assets = append([]domain.AssetVaR(nil), found.Assets...)
	return &out, nil
}

// TimeSeries returns the `limit` most recent points for a ric, ascending
func (s *Store) TimeSeries(_ context.Context, ric string, limit int) ([]domain.TimeSeriesPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var points []domain.TimeSeriesPoint
	for _, point := range s.batch.Series {
		if point.RIC == ric {
			points = append(points, point)
		}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	if limit > 0 && len(points) > limit {
		points = points[len(points)-limit:]
	}
	return append([]domain.TimeSeriesPoint(nil), points...), nil
}

// ScenarioValues returns all sample values for a ric in index order
func (s *Store) ScenarioValues(_ context.Context, ric string) ([]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var samples []domain.ScenarioSample
	for _, sample := range s.batch.Scenarios {
		if sample.RIC == ric {
			samples = append(samples, sample)
		}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].Index < samples[j].Index })

	values := make([]float64, len(samples))
	for i, sample := range samples {
		values[i] = sample.Value
	}
	return values, nil
}

// News returns the `limit` most recently published items
func (s *Store) News(_ context.Context, limit int) ([]domain.NewsItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := append([]domain.NewsItem(nil), s.batch.News...)
	sort.Slice(items, func(i, j int) bool { return items[i].PublishedAt.After(items[j].PublishedAt) })

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// Signal returns the market signal for a valuation date
func (s *Store) Signal(_ context.Context, asOf time.Time) (*domain.MarketSignal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day := domain.DateOnly(asOf)
	for _, sig := range s.batch.Signals {
		if sig.AsOf.Equal(day) {
			out := sig
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Commentary returns the driver commentary for a valuation date
func (s *Store) Commentary(_ context.Context, asOf time.Time) (*domain.DriverCommentary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day := domain.DateOnly(asOf)
	for _, comm := range s.batch.Commentaries {
		if comm.AsOf.Equal(day) {
			out := comm
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

// SnapshotDates lists valuation dates, newest first
func (s *Store) SnapshotDates(_ context.Context) ([]time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dates := make([]time.Time, 0, len(s.batch.Snapshots))
	for _, snap := range s.batch.Snapshots {
		dates = append(dates, snap.AsOf)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })
	return dates, nil
}
