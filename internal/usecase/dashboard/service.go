package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/atlasrisk/varscope-backend/internal/domain"
)

// Summary is the combined risk picture served for one valuation date
type Summary struct {
	AsOf       time.Time
	Portfolio  domain.PortfolioVaR
	Assets     []domain.AssetVaR
	Signal     domain.MarketSignal
	Commentary domain.DriverCommentary
}

// TimeSeriesWindow is a bounded slice of one ric's history
type TimeSeriesWindow struct {
	RIC    string
	Points []domain.TimeSeriesPoint
}

// ScenarioDistribution holds histogram-ready P/L samples for one ric
type ScenarioDistribution struct {
	RIC    string
	Values []float64
}

// Service exposes the read-side views consumed by the dashboard
type Service struct {
	Store domain.RiskStore
}

// NewService creates a Service reading from the given store
func NewService(store domain.RiskStore) *Service {
	return &Service{Store: store}
}

// Summary returns the snapshot, market signal and driver commentary for a
// valuation date (latest when asOf is nil). Missing rows surface as
// domain.ErrNotFound.
func (s *Service) Summary(ctx context.Context, asOf *time.Time) (*Summary, error) {
	snapshot, err := s.Store.LatestSnapshot(ctx, asOf)
	if err != nil {
		return nil, err
	}

	sig, err := s.Store.Signal(ctx, snapshot.AsOf)
	if err != nil {
		return nil, fmt.Errorf("signal for %s: %w", snapshot.AsOf.Format("2006-01-02"), err)
	}

	comm, err := s.Store.Commentary(ctx, snapshot.AsOf)
	if err != nil {
		return nil, fmt.Errorf("commentary for %s: %w", snapshot.AsOf.Format("2006-01-02"), err)
	}

	return &Summary{
		AsOf:       snapshot.AsOf,
		Portfolio:  snapshot.Portfolio,
		Assets:     snapshot.Assets,
		Signal:     *sig,
		Commentary: *comm,
	}, nil
}

// TimeSeries returns the `days` most recent points for a ric, ascending. The
// earliest point of the window always reports a nil change, so the chart
// never shows a delta computed against a point outside the window.
func (s *Service) TimeSeries(ctx context.Context, ric string, days int) (*TimeSeriesWindow, error) {
	points, err := s.Store.TimeSeries(ctx, ric, days)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, domain.ErrNotFound
	}

	points[0].Change = nil

	return &TimeSeriesWindow{RIC: ric, Points: points}, nil
}

// ScenarioDistribution returns all scenario samples for a ric in index order
func (s *Service) ScenarioDistribution(ctx context.Context, ric string) (*ScenarioDistribution, error) {
	values, err := s.Store.ScenarioValues(ctx, ric)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, domain.ErrNotFound
	}

	return &ScenarioDistribution{RIC: ric, Values: values}, nil
}

// News returns the `limit` most recently published items
func (s *Service) News(ctx context.Context, limit int) ([]domain.NewsItem, error) {
	return s.Store.News(ctx, limit)
}

// Dates lists all available valuation dates, newest first
func (s *Service) Dates(ctx context.Context) ([]time.Time, error) {
	return s.Store.SnapshotDates(ctx)
}
