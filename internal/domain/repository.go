package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by store queries when no row matches. Callers map
// it to a 404 at the presentation boundary.
var ErrNotFound = errors.New("not found")

// SeedBatch carries the complete output of one synthesis pass. ReplaceAll
// commits or rejects a batch as a whole.
type SeedBatch struct {
	Snapshots    []Snapshot
	Series       []TimeSeriesPoint
	Scenarios    []ScenarioSample
	News         []NewsItem
	Signals      []MarketSignal
	Commentaries []DriverCommentary
}

// RiskStore defines the interface for persisting and querying the generated
// VaR dataset
type RiskStore interface {
	// ReplaceAll atomically discards the previous dataset and stores the
	// batch. On failure the previous dataset must remain intact; readers
	// never observe a mix of old and new rows.
	ReplaceAll(ctx context.Context, batch SeedBatch) error

	// LatestSnapshot retrieves the snapshot for asOf, or the most recent
	// snapshot when asOf is nil
	LatestSnapshot(ctx context.Context, asOf *time.Time) (*Snapshot, error)

	// TimeSeries retrieves the `limit` most recent points for a ric,
	// ordered ascending by date
	TimeSeries(ctx context.Context, ric string, limit int) ([]TimeSeriesPoint, error)

	// ScenarioValues retrieves all scenario sample values for a ric,
	// ordered by scenario index
	ScenarioValues(ctx context.Context, ric string) ([]float64, error)

	// News retrieves the `limit` most recently published news items
	News(ctx context.Context, limit int) ([]NewsItem, error)

	// Signal retrieves the market signal for a valuation date
	Signal(ctx context.Context, asOf time.Time) (*MarketSignal, error)

	// Commentary retrieves the driver commentary for a valuation date
	Commentary(ctx context.Context, asOf time.Time) (*DriverCommentary, error)

	// SnapshotDates lists all valuation dates, sorted descending
	SnapshotDates(ctx context.Context) ([]time.Time, error)
}
