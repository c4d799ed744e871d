package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/atlasrisk/varscope-backend/internal/domain"
)

// Named inserts are chunked to stay well under the driver's parameter limit
const insertChunkSize = 500

// riskStore implements domain.RiskStore on PostgreSQL
type riskStore struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewRiskStore creates a PostgreSQL-backed risk store
func NewRiskStore(db *sqlx.DB, timeout time.Duration) domain.RiskStore {
	return &riskStore{db: db, timeout: timeout}
}

type snapshotRow struct {
	AsOf                  time.Time `db:"as_of"`
	PortfolioTotal        float64   `db:"portfolio_total"`
	ChangeAmount          float64   `db:"change_amount"`
	ChangePct             float64   `db:"change_pct"`
	DiversificationEffect float64   `db:"diversification_effect"`
}

type assetRow struct {
	AsOf           time.Time `db:"as_of"`
	RIC            string    `db:"ric"`
	Name           string    `db:"name"`
	Category       string    `db:"category"`
	Amount         float64   `db:"amount"`
	ChangeAmount   float64   `db:"change_amount"`
	ChangePct      float64   `db:"change_pct"`
	WindowDrop     float64   `db:"window_drop"`
	WindowAdd      float64   `db:"window_add"`
	PositionChange float64   `db:"position_change"`
	RankingShift   float64   `db:"ranking_shift"`
}

type seriesRow struct {
	RIC       string    `db:"ric"`
	PointDate time.Time `db:"point_date"`
	Value     float64   `db:"value"`
	Change    *float64  `db:"change"`
}

type scenarioRow struct {
	RIC   string  `db:"ric"`
	Index int     `db:"scenario_index"`
	Value float64 `db:"value"`
}

type newsRow struct {
	ID          uuid.UUID `db:"id"`
	Headline    string    `db:"headline"`
	PublishedAt time.Time `db:"published_at"`
	Source      string    `db:"source"`
	Summary     string    `db:"summary"`
	Angle       string    `db:"angle"`
}

type signalRow struct {
	AsOf      time.Time `db:"as_of"`
	Score     float64   `db:"score"`
	Label     string    `db:"label"`
	Narrative string    `db:"narrative"`
}

type commentaryRow struct {
	AsOf             time.Time `db:"as_of"`
	TechnicalSummary string    `db:"technical_summary"`
	NewsSummary      string    `db:"news_summary"`
	WindowDrop       float64   `db:"window_drop"`
	WindowAdd        float64   `db:"window_add"`
	PositionChange   float64   `db:"position_change"`
	RankingShift     float64   `db:"ranking_shift"`
}

// ReplaceAll clears and repopulates every collection in a single transaction.
// Readers keep seeing the previous dataset until commit; a failure rolls the
// whole batch back.
func (s *riskStore) ReplaceAll(ctx context.Context, batch domain.SeedBatch) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reseed transaction: %w", err)
	}
	defer tx.Rollback()

	// asset_var_records go with their snapshots via ON DELETE CASCADE
	for _, table := range []string{"var_snapshots", "var_timeseries", "scenario_samples", "news_items", "market_signals", "driver_commentaries"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := s.insertSnapshots(ctx, tx, batch.Snapshots); err != nil {
		return err
	}
	if err := insertChunked(ctx, tx,
		`INSERT INTO var_timeseries (ric, point_date, value, change)
		 VALUES (:ric, :point_date, :value, :change)`,
		toSeriesRows(batch.Series)); err != nil {
		return fmt.Errorf("failed to insert time series: %w", err)
	}
	if err := insertChunked(ctx, tx,
		`INSERT INTO scenario_samples (ric, scenario_index, value)
		 VALUES (:ric, :scenario_index, :value)`,
		toScenarioRows(batch.Scenarios)); err != nil {
		return fmt.Errorf("failed to insert scenario samples: %w", err)
	}
	if err := insertChunked(ctx, tx,
		`INSERT INTO news_items (id, headline, published_at, source, summary, angle)
		 VALUES (:id, :headline, :published_at, :source, :summary, :angle)`,
		toNewsRows(batch.News)); err != nil {
		return fmt.Errorf("failed to insert news items: %w", err)
	}
	if err := insertChunked(ctx, tx,
		`INSERT INTO market_signals (as_of, score, label, narrative)
		 VALUES (:as_of, :score, :label, :narrative)`,
		toSignalRows(batch.Signals)); err != nil {
		return fmt.Errorf("failed to insert market signals: %w", err)
	}
	if err := insertChunked(ctx, tx,
		`INSERT INTO driver_commentaries (as_of, technical_summary, news_summary, window_drop, window_add, position_change, ranking_shift)
		 VALUES (:as_of, :technical_summary, :news_summary, :window_drop, :window_add, :position_change, :ranking_shift)`,
		toCommentaryRows(batch.Commentaries)); err != nil {
		return fmt.Errorf("failed to insert driver commentaries: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reseed transaction: %w", err)
	}
	return nil
}

func (s *riskStore) insertSnapshots(ctx context.Context, tx *sqlx.Tx, snapshots []domain.Snapshot) error {
	snapshotRows := make([]snapshotRow, 0, len(snapshots))
	var assetRows []assetRow
	for _, snap := range snapshots {
		snapshotRows = append(snapshotRows, snapshotRow{
			AsOf:                  snap.AsOf,
			PortfolioTotal:        snap.Portfolio.Total,
			ChangeAmount:          snap.Portfolio.ChangeAmount,
			ChangePct:             snap.Portfolio.ChangePct,
			DiversificationEffect: snap.Portfolio.DiversificationEffect,
		})
		for _, asset := range snap.Assets {
			assetRows = append(assetRows, assetRow{
				AsOf:           snap.AsOf,
				RIC:            asset.RIC,
				Name:           asset.Name,
				Category:       string(asset.Category),
				Amount:         asset.Amount,
				ChangeAmount:   asset.ChangeAmount,
				ChangePct:      asset.ChangePct,
				WindowDrop:     asset.Contributions.WindowDrop,
				WindowAdd:      asset.Contributions.WindowAdd,
				PositionChange: asset.Contributions.PositionChange,
				RankingShift:   asset.Contributions.RankingShift,
			})
		}
	}

	if err := insertChunked(ctx, tx,
		`INSERT INTO var_snapshots (as_of, portfolio_total, change_amount, change_pct, diversification_effect)
		 VALUES (:as_of, :portfolio_total, :change_amount, :change_pct, :diversification_effect)`,
		snapshotRows); err != nil {
		return fmt.Errorf("failed to insert snapshots: %w", err)
	}
	if err := insertChunked(ctx, tx,
		`INSERT INTO asset_var_records (as_of, ric, name, category, amount, change_amount, change_pct, window_drop, window_add, position_change, ranking_shift)
		 VALUES (:as_of, :ric, :name, :category, :amount, :change_amount, :change_pct, :window_drop, :window_add, :position_change, :ranking_shift)`,
		assetRows); err != nil {
		return fmt.Errorf("failed to insert asset records: %w", err)
	}
	return nil
}

// LatestSnapshot retrieves the snapshot for asOf, or the most recent one
func (s *riskStore) LatestSnapshot(ctx context.Context, asOf *time.Time) (*domain.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var row snapshotRow
	var err error
	if asOf != nil {
		err = s.db.GetContext(ctx, &row,
			`SELECT as_of, portfolio_total, change_amount, change_pct, diversification_effect
			 FROM var_snapshots WHERE as_of = $1`, domain.DateOnly(*asOf))
	} else {
		err = s.db.GetContext(ctx, &row,
			`SELECT as_of, portfolio_total, change_amount, change_pct, diversification_effect
			 FROM var_snapshots ORDER BY as_of DESC LIMIT 1`)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}

	var assets []assetRow
	if err := s.db.SelectContext(ctx, &assets,
		`SELECT as_of, ric, name, category, amount, change_amount, change_pct, window_drop, window_add, position_change, ranking_shift
		 FROM asset_var_records WHERE as_of = $1 ORDER BY id`, row.AsOf); err != nil {
		return nil, fmt.Errorf("failed to query asset records: %w", err)
	}

	snapshot := &domain.Snapshot{
		AsOf: domain.DateOnly(row.AsOf),
		Portfolio: domain.PortfolioVaR{
			Total:                 row.PortfolioTotal,
			ChangeAmount:          row.ChangeAmount,
			ChangePct:             row.ChangePct,
			DiversificationEffect: row.DiversificationEffect,
		},
		Assets: make([]domain.AssetVaR, 0, len(assets)),
	}
	for _, asset := range assets {
		snapshot.Assets = append(snapshot.Assets, domain.AssetVaR{
			RIC:          asset.RIC,
			Name:         asset.Name,
			Category:     domain.Category(asset.Category),
			Amount:       asset.Amount,
			ChangeAmount: asset.ChangeAmount,
			ChangePct:    asset.ChangePct,
			Contributions: domain.DriverBreakdown{
				WindowDrop:     asset.WindowDrop,
				WindowAdd:      asset.WindowAdd,
				PositionChange: asset.PositionChange,
				RankingShift:   asset.RankingShift,
			},
		})
	}
	return snapshot, nil
}

// TimeSeries retrieves the `limit` most recent points for a ric, ascending
func (s *riskStore) TimeSeries(ctx context.Context, ric string, limit int) ([]domain.TimeSeriesPoint, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var rows []seriesRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT ric, point_date, value, change FROM (
			SELECT ric, point_date, value, change
			FROM var_timeseries WHERE ric = $1
			ORDER BY point_date DESC LIMIT $2
		 ) window_points ORDER BY point_date ASC`, ric, limit); err != nil {
		return nil, fmt.Errorf("failed to query time series: %w", err)
	}

	points := make([]domain.TimeSeriesPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, domain.TimeSeriesPoint{
			RIC:    row.RIC,
			Date:   domain.DateOnly(row.PointDate),
			Value:  row.Value,
			Change: row.Change,
		})
	}
	return points, nil
}

// ScenarioValues retrieves all sample values for a ric in index order
func (s *riskStore) ScenarioValues(ctx context.Context, ric string) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var values []float64
	if err := s.db.SelectContext(ctx, &values,
		`SELECT value FROM scenario_samples WHERE ric = $1 ORDER BY scenario_index`, ric); err != nil {
		return nil, fmt.Errorf("failed to query scenario samples: %w", err)
	}
	return values, nil
}

// News retrieves the `limit` most recently published items
func (s *riskStore) News(ctx context.Context, limit int) ([]domain.NewsItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var rows []newsRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT id, headline, published_at, source, summary, angle
		 FROM news_items ORDER BY published_at DESC LIMIT $1`, limit); err != nil {
		return nil, fmt.Errorf("failed to query news: %w", err)
	}

	items := make([]domain.NewsItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, domain.NewsItem{
			ID:          row.ID,
			Headline:    row.Headline,
			PublishedAt: row.PublishedAt,
			Source:      row.Source,
			Summary:     row.Summary,
			Angle:       row.Angle,
		})
	}
	return items, nil
}

// Signal retrieves the market signal for a valuation date
func (s *riskStore) Signal(ctx context.Context, asOf time.Time) (*domain.MarketSignal, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var row signalRow
	if err := s.db.GetContext(ctx, &row,
		`SELECT as_of, score, label, narrative FROM market_signals WHERE as_of = $1`,
		domain.DateOnly(asOf)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query market signal: %w", err)
	}

	return &domain.MarketSignal{
		AsOf:      domain.DateOnly(row.AsOf),
		Score:     row.Score,
		Label:     row.Label,
		Narrative: row.Narrative,
	}, nil
}

// Commentary retrieves the driver commentary for a valuation date
func (s *riskStore) Commentary(ctx context.Context, asOf time.Time) (*domain.DriverCommentary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var row commentaryRow
	if err := s.db.GetContext(ctx, &row,
		`SELECT as_of, technical_summary, news_summary, window_drop, window_add, position_change, ranking_shift
		 FROM driver_commentaries WHERE as_of = $1`, domain.DateOnly(asOf)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query driver commentary: %w", err)
	}

	return &domain.DriverCommentary{
		AsOf:             domain.DateOnly(row.AsOf),
		TechnicalSummary: row.TechnicalSummary,
		NewsSummary:      row.NewsSummary,
		DriverTotals: domain.DriverBreakdown{
			WindowDrop:     row.WindowDrop,
			WindowAdd:      row.WindowAdd,
			PositionChange: row.PositionChange,
			RankingShift:   row.RankingShift,
		},
	}, nil
}

// SnapshotDates lists valuation dates, newest first
func (s *riskStore) SnapshotDates(ctx context.Context) ([]time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var raw []time.Time
	if err := s.db.SelectContext(ctx, &raw,
		`SELECT as_of FROM var_snapshots ORDER BY as_of DESC`); err != nil {
		return nil, fmt.Errorf("failed to query snapshot dates: %w", err)
	}

	dates := make([]time.Time, len(raw))
	for i, d := range raw {
		dates[i] = domain.DateOnly(d)
	}
	return dates, nil
}

// insertChunked runs a named multi-row insert in chunks
func insertChunked[T any](ctx context.Context, tx *sqlx.Tx, query string, rows []T) error {
	for start := 0; start < len(rows); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(rows) {
			end = len(rows)
		}
		if _, err := tx.NamedExecContext(ctx, query, rows[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func toSeriesRows(points []domain.TimeSeriesPoint) []seriesRow {
	rows := make([]seriesRow, 0, len(points))
	for _, point := range points {
		rows = append(rows, seriesRow{
			RIC:       point.RIC,
			PointDate: point.Date,
			Value:     point.Value,
			Change:    point.Change,
		})
	}
	return rows
}

func toScenarioRows(samples []domain.ScenarioSample) []scenarioRow {
	rows := make([]scenarioRow, 0, len(samples))
	for _, sample := range samples {
		rows = append(rows, scenarioRow{RIC: sample.RIC, Index: sample.Index, Value: sample.Value})
	}
	return rows
}

func toNewsRows(items []domain.NewsItem) []newsRow {
	rows := make([]newsRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, newsRow{
			ID:          item.ID,
			Headline:    item.Headline,
			PublishedAt: item.PublishedAt,
			Source:      item.Source,
			Summary:     item.Summary,
			Angle:       item.Angle,
		})
	}
	return rows
}

func toSignalRows(signals []domain.MarketSignal) []signalRow {
	rows := make([]signalRow, 0, len(signals))
	for _, sig := range signals {
		rows = append(rows, signalRow{AsOf: sig.AsOf, Score: sig.Score, Label: sig.Label, Narrative: sig.Narrative})
	}
	return rows
}

func toCommentaryRows(commentaries []domain.DriverCommentary) []commentaryRow {
	rows := make([]commentaryRow, 0, len(commentaries))
	for _, comm := range commentaries {
		rows = append(rows, commentaryRow{
			AsOf:             comm.AsOf,
			TechnicalSummary: comm.TechnicalSummary,
			NewsSummary:      comm.NewsSummary,
			WindowDrop:       comm.DriverTotals.WindowDrop,
			WindowAdd:        comm.DriverTotals.WindowAdd,
			PositionChange:   comm.DriverTotals.PositionChange,
			RankingShift:     comm.DriverTotals.RankingShift,
		})
	}
	return rows
}
