package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlasrisk/varscope-backend/internal/domain"
)

func day(d int) time.Time {
	return time.Date(2025, 4, d, 0, 0, 0, 0, time.UTC)
}

func floatPtr(v float64) *float64 { return &v }

func seedBatch() domain.SeedBatch {
	return domain.SeedBatch{
		Snapshots: []domain.Snapshot{
			{AsOf: day(28), Portfolio: domain.PortfolioVaR{Total: 100}, Assets: []domain.AssetVaR{{RIC: "A", Amount: 50}}},
			{AsOf: day(29), Portfolio: domain.PortfolioVaR{Total: 101}, Assets: []domain.AssetVaR{{RIC: "A", Amount: 51}}},
			{AsOf: day(30), Portfolio: domain.PortfolioVaR{Total: 102}, Assets: []domain.AssetVaR{{RIC: "A", Amount: 52}}},
		},
		Series: []domain.TimeSeriesPoint{
			{RIC: "A", Date: day(28), Value: 1.0},
			{RIC: "A", Date: day(29), Value: 1.1, Change: floatPtr(0.1)},
			{RIC: "A", Date: day(30), Value: 1.2, Change: floatPtr(0.1)},
			{RIC: "B", Date: day(30), Value: 9.9},
		},
		Scenarios: []domain.ScenarioSample{
			{RIC: "A", Index: 1, Value: -0.2},
			{RIC: "A", Index: 0, Value: -0.1},
		},
		News: []domain.NewsItem{
			{Headline: "older", PublishedAt: day(29)},
			{Headline: "newer", PublishedAt: day(30)},
		},
		Signals:      []domain.MarketSignal{{AsOf: day(30), Score: 61.5, Label: "neutral zone"}},
		Commentaries: []domain.DriverCommentary{{AsOf: day(30), TechnicalSummary: "t", NewsSummary: "n"}},
	}
}

func TestLatestSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.ReplaceAll(ctx, seedBatch()))

	latest, err := store.LatestSnapshot(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, day(30), latest.AsOf)

	target := day(28)
	explicit, err := store.LatestSnapshot(ctx, &target)
	require.NoError(t, err)
	assert.Equal(t, 100.0, explicit.Portfolio.Total)
}

func TestLatestSnapshot_NotFound(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	_, err := store.LatestSnapshot(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.ReplaceAll(ctx, seedBatch()))
	missing := day(1)
	_, err = store.LatestSnapshot(ctx, &missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTimeSeries_WindowAscending(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.ReplaceAll(ctx, seedBatch()))

	points, err := store.TimeSeries(ctx, "A", 2)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, day(29), points[0].Date)
	assert.Equal(t, day(30), points[1].Date)
}

func TestTimeSeries_MutatingResultDoesNotTouchStore(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.ReplaceAll(ctx, seedBatch()))

	points, err := store.TimeSeries(ctx, "A", 2)
	require.NoError(t, err)
	points[0].Change = nil

	again, err := store.TimeSeries(ctx, "A", 2)
	require.NoError(t, err)
	assert.NotNil(t, again[0].Change)
}

func TestScenarioValues_IndexOrdered(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.ReplaceAll(ctx, seedBatch()))

	values, err := store.ScenarioValues(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, []float64{-0.1, -0.2}, values)

	empty, err := store.ScenarioValues(ctx, "MISSING")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestNews_NewestFirstLimited(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.ReplaceAll(ctx, seedBatch()))

	items, err := store.News(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "newer", items[0].Headline)
}

func TestSignalAndCommentaryLookup(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.ReplaceAll(ctx, seedBatch()))

	sig, err := store.Signal(ctx, day(30))
	require.NoError(t, err)
	assert.Equal(t, 61.5, sig.Score)

	_, err = store.Signal(ctx, day(1))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	comm, err := store.Commentary(ctx, day(30))
	require.NoError(t, err)
	assert.Equal(t, "t", comm.TechnicalSummary)

	_, err = store.Commentary(ctx, day(1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSnapshotDates_Descending(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.ReplaceAll(ctx, seedBatch()))

	dates, err := store.SnapshotDates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{day(30), day(29), day(28)}, dates)
}

func TestReplaceAll_SwapsWholeDataset(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.ReplaceAll(ctx, seedBatch()))

	replacement := domain.SeedBatch{
		Snapshots: []domain.Snapshot{{AsOf: day(1), Assets: []domain.AssetVaR{{RIC: "Z"}}}},
	}
	require.NoError(t, store.ReplaceAll(ctx, replacement))

	dates, err := store.SnapshotDates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{day(1)}, dates)

	points, err := store.TimeSeries(ctx, "A", 10)
	require.NoError(t, err)
	assert.Empty(t, points)
}
