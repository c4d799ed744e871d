package domain

import (
	"time"

	"github.com/google/uuid"
)

// AggregateRIC is the reserved identifier for the whole-portfolio aggregate
// on the time series and scenario endpoints
const AggregateRIC = "ALL_ASSETS"

// ScenarioWindow is the fixed number of scenario P/L samples generated per ric
const ScenarioWindow = 800

// TimeSeriesPoint is one day's VaR measurement for an asset or the portfolio
// aggregate. Change is nil on the earliest point of a series.
type TimeSeriesPoint struct {
	RIC    string
	Date   time.Time
	Value  float64
	Change *float64
}

// ScenarioSample is a single synthetic loss draw used to build the
// histogram-style scenario distribution
type ScenarioSample struct {
	RIC   string
	Index int
	Value float64
}

// MarketSignal is the gauge-style macro risk appetite indicator for one
// valuation date. Score is bounded to [5, 95] by construction.
type MarketSignal struct {
	AsOf      time.Time
	Score     float64
	Label     string
	Narrative string
}

// DriverCommentary pairs a day's driver attribution with a related news angle
type DriverCommentary struct {
	AsOf             time.Time
	TechnicalSummary string
	NewsSummary      string
	DriverTotals     DriverBreakdown
}

// NewsItem is a synthetic headline associated with VaR movements. Angle is
// only consumed while composing commentary and never leaves the backend.
type NewsItem struct {
	ID          uuid.UUID
	Headline    string
	PublishedAt time.Time
	Source      string
	Summary     string
	Angle       string
}
