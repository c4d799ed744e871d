package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS var_snapshots (
	as_of                  DATE PRIMARY KEY,
	portfolio_total        DOUBLE PRECISION NOT NULL,
	change_amount          DOUBLE PRECISION NOT NULL,
	change_pct             DOUBLE PRECISION NOT NULL,
	diversification_effect DOUBLE PRECISION NOT NULL
);

CREATE TABLE IF NOT EXISTS asset_var_records (
	id              BIGSERIAL PRIMARY KEY,
	as_of           DATE NOT NULL REFERENCES var_snapshots(as_of) ON DELETE CASCADE,
	ric             TEXT NOT NULL,
	name            TEXT NOT NULL,
	category        TEXT NOT NULL,
	amount          DOUBLE PRECISION NOT NULL,
	change_amount   DOUBLE PRECISION NOT NULL,
	change_pct      DOUBLE PRECISION NOT NULL,
	window_drop     DOUBLE PRECISION NOT NULL DEFAULT 0,
	window_add      DOUBLE PRECISION NOT NULL DEFAULT 0,
	position_change DOUBLE PRECISION NOT NULL DEFAULT 0,
	ranking_shift   DOUBLE PRECISION NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_asset_var_records_as_of ON asset_var_records (as_of);

CREATE TABLE IF NOT EXISTS var_timeseries (
	id         BIGSERIAL PRIMARY KEY,
	ric        TEXT NOT NULL,
	point_date DATE NOT NULL,
	value      DOUBLE PRECISION NOT NULL,
	change     DOUBLE PRECISION
);
CREATE INDEX IF NOT EXISTS idx_var_timeseries_ric_date ON var_timeseries (ric, point_date);

CREATE TABLE IF NOT EXISTS scenario_samples (
	id             BIGSERIAL PRIMARY KEY,
	ric            TEXT NOT NULL,
	scenario_index INTEGER NOT NULL,
	value          DOUBLE PRECISION NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scenario_samples_ric_index ON scenario_samples (ric, scenario_index);

CREATE TABLE IF NOT EXISTS news_items (
	id           UUID PRIMARY KEY,
	headline     TEXT NOT NULL,
	published_at TIMESTAMPTZ NOT NULL,
	source       TEXT NOT NULL,
	summary      TEXT NOT NULL,
	angle        TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_news_items_published_at ON news_items (published_at);

CREATE TABLE IF NOT EXISTS market_signals (
	as_of     DATE PRIMARY KEY,
	score     DOUBLE PRECISION NOT NULL,
	label     TEXT NOT NULL,
	narrative TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS driver_commentaries (
	as_of             DATE PRIMARY KEY,
	technical_summary TEXT NOT NULL,
	news_summary      TEXT NOT NULL,
	window_drop       DOUBLE PRECISION NOT NULL DEFAULT 0,
	window_add        DOUBLE PRECISION NOT NULL DEFAULT 0,
	position_change   DOUBLE PRECISION NOT NULL DEFAULT 0,
	ranking_shift     DOUBLE PRECISION NOT NULL DEFAULT 0
);
`

// EnsureSchema creates all tables and indexes if they do not exist
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
