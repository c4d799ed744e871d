package domain

import "time"

// Category groups catalog instruments by asset class
type Category string

const (
	CategoryEquity    Category = "株式"
	CategoryRates     Category = "金利"
	CategoryCredit    Category = "クレジット"
	CategoryMortgage  Category = "モーゲージ"
	CategoryCommodity Category = "コモディティ"
)

// AssetDefinition describes one instrument in the static demo catalog.
// Definitions are immutable; all derived analytics key off the RIC.
type AssetDefinition struct {
	RIC        string
	Name       string
	Category   Category
	BaseAmount float64
	Volatility float64
}

// DriverBreakdown quantifies the contribution of each VaR change driver
type DriverBreakdown struct {
	WindowDrop     float64 `json:"window_drop" db:"window_drop"`
	WindowAdd      float64 `json:"window_add" db:"window_add"`
	PositionChange float64 `json:"position_change" db:"position_change"`
	RankingShift   float64 `json:"ranking_shift" db:"ranking_shift"`
}

// Add returns the element-wise sum of two breakdowns
func (d DriverBreakdown) Add(other DriverBreakdown) DriverBreakdown {
	return DriverBreakdown{
		WindowDrop:     d.WindowDrop + other.WindowDrop,
		WindowAdd:      d.WindowAdd + other.WindowAdd,
		PositionChange: d.PositionChange + other.PositionChange,
		RankingShift:   d.RankingShift + other.RankingShift,
	}
}

// AssetVaR is one asset's risk observation for a single valuation date
type AssetVaR struct {
	RIC           string          `json:"ric"`
	Name          string          `json:"name"`
	Category      Category        `json:"category"`
	Amount        float64         `json:"amount"`
	ChangeAmount  float64         `json:"change_amount"`
	ChangePct     float64         `json:"change_pct"`
	Contributions DriverBreakdown `json:"contributions"`
}

// PortfolioVaR aggregates asset risk for a valuation date. The
// diversification effect is always non-positive; Total already includes it.
type PortfolioVaR struct {
	Total                 float64 `json:"total"`
	ChangeAmount          float64 `json:"change_amount"`
	ChangePct             float64 `json:"change_pct"`
	DiversificationEffect float64 `json:"diversification_effect"`
}

// Snapshot is the full risk picture for one valuation date. A snapshot owns
// its asset observations: both are replaced together as one unit.
type Snapshot struct {
	AsOf      time.Time
	Portfolio PortfolioVaR
	Assets    []AssetVaR
}

// LeadingAsset returns the asset carrying the largest risk amount, or nil
// for an empty snapshot
func (s *Snapshot) LeadingAsset() *AssetVaR {
	if len(s.Assets) == 0 {
		return nil
	}
	leading := &s.Assets[0]
	for i := range s.Assets[1:] {
		if s.Assets[i+1].Amount > leading.Amount {
			leading = &s.Assets[i+1]
		}
	}
	return leading
}

// DriverTotals sums driver contributions across all assets in the snapshot
func (s *Snapshot) DriverTotals() DriverBreakdown {
	var totals DriverBreakdown
	for _, asset := range s.Assets {
		totals = totals.Add(asset.Contributions)
	}
	return totals
}
