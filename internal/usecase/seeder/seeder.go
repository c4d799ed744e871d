package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/atlasrisk/varscope-backend/internal/domain"
	"github.com/atlasrisk/varscope-backend/internal/usecase/commentary"
	"github.com/atlasrisk/varscope-backend/internal/usecase/newsfeed"
	"github.com/atlasrisk/varscope-backend/internal/usecase/scenario"
	"github.com/atlasrisk/varscope-backend/internal/usecase/signal"
	"github.com/atlasrisk/varscope-backend/internal/usecase/snapshot"
	"github.com/atlasrisk/varscope-backend/internal/usecase/timeseries"
)

// DefaultSnapshotDays is the length of the valuation date sequence generated
// per synthesis pass
const DefaultSnapshotDays = 5

// Seeder runs the full synthesis pass and commits it atomically
type Seeder struct {
	store   domain.RiskStore
	catalog []domain.AssetDefinition
	days    int
	logger  zerolog.Logger
}

// NewSeeder creates a Seeder writing to the given store. days falls back to
// DefaultSnapshotDays when non-positive.
func NewSeeder(store domain.RiskStore, catalog []domain.AssetDefinition, days int, logger zerolog.Logger) *Seeder {
	if days <= 0 {
		days = DefaultSnapshotDays
	}
	return &Seeder{
		store:   store,
		catalog: catalog,
		days:    days,
		logger:  logger,
	}
}

// Seed synthesizes the complete dataset anchored at `today` and replaces the
// stored dataset in one transaction. On error the previous dataset stays
// intact; there is no partial-success state.
func (s *Seeder) Seed(ctx context.Context, today time.Time) error {
	dates := domain.ValuationDates(today, s.days)

	snapshots := snapshot.NewBuilder(s.catalog).Build(dates)
	news := newsfeed.NewCatalog().ForDates(dates)

	signals := make([]domain.MarketSignal, 0, len(snapshots))
	commentaries := make([]domain.DriverCommentary, 0, len(snapshots))
	for i := range snapshots {
		snap := &snapshots[i]
		totals := snap.DriverTotals()
		leading := snap.LeadingAsset()
		if leading == nil {
			return fmt.Errorf("snapshot for %s has no assets", snap.AsOf.Format("2006-01-02"))
		}

		signals = append(signals, signal.Score(signal.Input{
			AsOf:                  snap.AsOf,
			DriverTotals:          totals,
			DiversificationEffect: snap.Portfolio.DiversificationEffect,
			PortfolioTotal:        snap.Portfolio.Total,
			ChangePct:             snap.Portfolio.ChangePct,
			LeadingAsset:          *leading,
		}))

		commentaries = append(commentaries, commentary.Compose(commentary.Input{
			AsOf:                  snap.AsOf,
			DriverTotals:          totals,
			LeadingAsset:          *leading,
			DiversificationEffect: snap.Portfolio.DiversificationEffect,
			News:                  newsfeed.ForDate(news, snap.AsOf),
		}))
	}

	batch := domain.SeedBatch{
		Snapshots:    snapshots,
		Series:       timeseries.NewSynthesizer(s.catalog).Build(today),
		Scenarios:    scenario.NewGenerator(s.catalog).Build(),
		News:         news,
		Signals:      signals,
		Commentaries: commentaries,
	}

	if err := s.store.ReplaceAll(ctx, batch); err != nil {
		return fmt.Errorf("failed to commit seed batch: %w", err)
	}

	s.logger.Info().
		Int("snapshots", len(batch.Snapshots)).
		Int("series_points", len(batch.Series)).
		Int("scenario_samples", len(batch.Scenarios)).
		Int("news_items", len(batch.News)).
		Str("as_of", domain.DateOnly(today).Format("2006-01-02")).
		Msg("seeded VaR dataset")

	return nil
}
