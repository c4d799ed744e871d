package signal

import (
	"fmt"
	"math"
	"time"

	"github.com/atlasrisk/varscope-backend/internal/domain"
)

// Gauge labels, tiered by score
const (
	LabelBullish  = "bullish zone"
	LabelNeutral  = "neutral zone"
	LabelCautious = "cautious zone"
)

// Hard floor/ceiling keep the gauge away from degenerate 0/100 readings
const (
	scoreFloor   = 5.0
	scoreCeiling = 95.0
)

// Input carries one valuation date's aggregates into the scorer
type Input struct {
	AsOf                  time.Time
	DriverTotals          domain.DriverBreakdown
	DiversificationEffect float64
	PortfolioTotal        float64
	ChangePct             float64
	LeadingAsset          domain.AssetVaR
}

// Score derives the bounded macro risk-appetite gauge for a valuation date.
// The diversification ratio guards against zero or near-zero totals by
// dividing by max(total, 1).
func Score(in Input) domain.MarketSignal {
	ratio := in.DiversificationEffect / math.Max(in.PortfolioTotal, 1.0)

	raw := 55 +
		math.Sin(float64(domain.DayOrdinal(in.AsOf))/3)*7 +
		ratio*-220 +
		in.DriverTotals.PositionChange*6 +
		in.DriverTotals.WindowAdd*3 -
		math.Abs(in.DriverTotals.WindowDrop)*4 -
		in.ChangePct*0.8

	score := clamp(domain.Round1(raw), scoreFloor, scoreCeiling)

	return domain.MarketSignal{
		AsOf:      in.AsOf,
		Score:     score,
		Label:     labelFor(score),
		Narrative: narrativeFor(score, in),
	}
}

func labelFor(score float64) string {
	switch {
	case score >= 66:
		return LabelBullish
	case score >= 40:
		return LabelNeutral
	default:
		return LabelCautious
	}
}

func narrativeFor(score float64, in Input) string {
	if score >= 55 {
		return fmt.Sprintf(
			"%s（%s）がリスクを主導する一方、分散効果%.2f億円がポートフォリオ全体の耐性を支えている。",
			in.LeadingAsset.Name, in.LeadingAsset.Category, in.DiversificationEffect,
		)
	}
	return fmt.Sprintf(
		"%s（%s）主導でリスクが振れており、分散効果%.2f億円を踏まえても警戒を要する水準。",
		in.LeadingAsset.Name, in.LeadingAsset.Category, in.DiversificationEffect,
	)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
