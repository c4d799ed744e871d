package seeder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/atlasrisk/varscope-backend/internal/domain"
)

// MockRiskStore is a mock implementation of domain.RiskStore
type MockRiskStore struct {
	mock.Mock
}

func (m *MockRiskStore) ReplaceAll(ctx context.Context, batch domain.SeedBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockRiskStore) LatestSnapshot(ctx context.Context, asOf *time.Time) (*domain.Snapshot, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func (m *MockRiskStore) TimeSeries(ctx context.Context, ric string, limit int) ([]domain.TimeSeriesPoint, error) {
	args := m.Called(ctx, ric, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeSeriesPoint), args.Error(1)
}

func (m *MockRiskStore) ScenarioValues(ctx context.Context, ric string) ([]float64, error) {
	args := m.Called(ctx, ric)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}

func (m *MockRiskStore) News(ctx context.Context, limit int) ([]domain.NewsItem, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NewsItem), args.Error(1)
}

func (m *MockRiskStore) Signal(ctx context.Context, asOf time.Time) (*domain.MarketSignal, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketSignal), args.Error(1)
}

func (m *MockRiskStore) Commentary(ctx context.Context, asOf time.Time) (*domain.DriverCommentary, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DriverCommentary), args.Error(1)
}

func (m *MockRiskStore) SnapshotDates(ctx context.Context) ([]time.Time, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func testAnchor() time.Time {
	return time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)
}

func TestSeed_CommitsOneCompleteBatch(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockRiskStore)
	var committed domain.SeedBatch
	mockStore.On("ReplaceAll", ctx, mock.AnythingOfType("domain.SeedBatch")).
		Run(func(args mock.Arguments) {
			committed = args.Get(1).(domain.SeedBatch)
		}).
		Return(nil)

	s := NewSeeder(mockStore, domain.DemoCatalog(), 5, zerolog.Nop())
	require.NoError(t, s.Seed(ctx, testAnchor()))

	mockStore.AssertNumberOfCalls(t, "ReplaceAll", 1)
	assert.Len(t, committed.Snapshots, 5)
	assert.Len(t, committed.Signals, 5)
	assert.Len(t, committed.Commentaries, 5)
	assert.Len(t, committed.News, 10)
	// 20 assets + aggregate
	assert.Len(t, committed.Scenarios, 21*domain.ScenarioWindow)
	assert.NotEmpty(t, committed.Series)
}

func TestSeed_SignalAndCommentaryPerDate(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockRiskStore)
	var committed domain.SeedBatch
	mockStore.On("ReplaceAll", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			committed = args.Get(1).(domain.SeedBatch)
		}).
		Return(nil)

	s := NewSeeder(mockStore, domain.DemoCatalog(), 5, zerolog.Nop())
	require.NoError(t, s.Seed(ctx, testAnchor()))

	for i, snap := range committed.Snapshots {
		assert.Equal(t, snap.AsOf, committed.Signals[i].AsOf)
		assert.Equal(t, snap.AsOf, committed.Commentaries[i].AsOf)
		assert.Equal(t, snap.DriverTotals(), committed.Commentaries[i].DriverTotals)
		assert.GreaterOrEqual(t, committed.Signals[i].Score, 5.0)
		assert.LessOrEqual(t, committed.Signals[i].Score, 95.0)
	}
}

func TestSeed_DeterministicForFixedAnchor(t *testing.T) {
	ctx := context.Background()
	runSeed := func() domain.SeedBatch {
		mockStore := new(MockRiskStore)
		var committed domain.SeedBatch
		mockStore.On("ReplaceAll", ctx, mock.Anything).
			Run(func(args mock.Arguments) {
				committed = args.Get(1).(domain.SeedBatch)
			}).
			Return(nil)
		s := NewSeeder(mockStore, domain.DemoCatalog(), 5, zerolog.Nop())
		require.NoError(t, s.Seed(ctx, testAnchor()))
		return committed
	}

	assert.Equal(t, runSeed(), runSeed())
}

func TestSeed_StoreFailureSurfaces(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockRiskStore)
	mockStore.On("ReplaceAll", ctx, mock.Anything).Return(errors.New("disk full"))

	s := NewSeeder(mockStore, domain.DemoCatalog(), 5, zerolog.Nop())
	err := s.Seed(ctx, testAnchor())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestSeed_EmptyCatalogFails(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockRiskStore)

	s := NewSeeder(mockStore, nil, 5, zerolog.Nop())
	err := s.Seed(ctx, testAnchor())

	require.Error(t, err)
	mockStore.AssertNotCalled(t, "ReplaceAll")
}

func TestNewSeeder_DefaultsDays(t *testing.T) {
	s := NewSeeder(new(MockRiskStore), domain.DemoCatalog(), 0, zerolog.Nop())
	assert.Equal(t, DefaultSnapshotDays, s.days)
}
