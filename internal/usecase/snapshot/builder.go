package snapshot

import (
	"math"
	"time"

	"github.com/atlasrisk/varscope-backend/internal/domain"
	"github.com/atlasrisk/varscope-backend/internal/usecase/allocator"
)

// Portfolio VaR is discounted by a fixed 18% of the standalone sum to model
// imperfect correlation between assets
const diversificationRate = -0.18

// Builder computes per-date risk snapshots for a static catalog
type Builder struct {
	catalog []domain.AssetDefinition
}

// NewBuilder creates a Builder over the given catalog
func NewBuilder(catalog []domain.AssetDefinition) *Builder {
	return &Builder{catalog: catalog}
}

// Build computes one snapshot per valuation date, dates supplied ascending.
// Logic per asset and date:
//   - amount = round(base + sin((ordinal(date) + 13*idx)/5) * volatility, 2);
//     the 13*idx term phase-shifts assets so they do not move in lockstep
//   - change fields compare against the asset's previous amount in the date
//     sequence; the first date always shows zero change
//
// The portfolio row sums asset amounts and applies the diversification
// discount. Output is fully deterministic for a given catalog and dates.
func (b *Builder) Build(dates []time.Time) []domain.Snapshot {
	snapshots := make([]domain.Snapshot, 0, len(dates))
	prevAmounts := make(map[string]float64, len(b.catalog))
	prevTotal := 0.0
	havePrevTotal := false

	for _, asOf := range dates {
		assets := make([]domain.AssetVaR, 0, len(b.catalog))
		sumAmount := 0.0

		for idx, def := range b.catalog {
			drift := math.Sin(float64(domain.DayOrdinal(asOf)+idx*13)/5) * def.Volatility
			amount := domain.Round2(def.BaseAmount + drift)

			prev, seen := prevAmounts[def.RIC]
			if !seen {
				prev = amount
			}
			changeAmount := domain.Round2(amount - prev)
			changePct := 0.0
			if prev != 0 {
				changePct = domain.Round2(changeAmount / prev * 100)
			}
			prevAmounts[def.RIC] = amount

			assets = append(assets, domain.AssetVaR{
				RIC:           def.RIC,
				Name:          def.Name,
				Category:      def.Category,
				Amount:        amount,
				ChangeAmount:  changeAmount,
				ChangePct:     changePct,
				Contributions: allocator.Allocate(def.Category, changeAmount),
			})
			sumAmount += amount
		}

		effect := domain.Round2(sumAmount * diversificationRate)
		total := domain.Round2(sumAmount + effect)

		portfolio := domain.PortfolioVaR{
			Total:                 total,
			DiversificationEffect: effect,
		}
		if havePrevTotal {
			portfolio.ChangeAmount = domain.Round2(total - prevTotal)
			if prevTotal != 0 {
				portfolio.ChangePct = domain.Round2(portfolio.ChangeAmount / prevTotal * 100)
			}
		}
		prevTotal = total
		havePrevTotal = true

		snapshots = append(snapshots, domain.Snapshot{
			AsOf:      asOf,
			Portfolio: portfolio,
			Assets:    assets,
		})
	}

	return snapshots
}
