package allocator

import (
	"github.com/atlasrisk/varscope-backend/internal/domain"
)

// Per-category emphasis weights for splitting a day-over-day VaR change into
// driver buckets. Weights intentionally do not sum to 1; they are emphasis
// factors, not a partition.
var contributionProfiles = map[domain.Category]domain.DriverBreakdown{
	domain.CategoryEquity:    {WindowDrop: 0.28, WindowAdd: 0.12, PositionChange: 0.35, RankingShift: 0.25},
	domain.CategoryRates:     {WindowDrop: 0.22, WindowAdd: 0.25, PositionChange: 0.28, RankingShift: 0.25},
	domain.CategoryCredit:    {WindowDrop: 0.26, WindowAdd: 0.14, PositionChange: 0.30, RankingShift: 0.30},
	domain.CategoryMortgage:  {WindowDrop: 0.24, WindowAdd: 0.16, PositionChange: 0.32, RankingShift: 0.28},
	domain.CategoryCommodity: {WindowDrop: 0.25, WindowAdd: 0.20, PositionChange: 0.25, RankingShift: 0.30},
}

// Allocate splits a change amount into the four driver contributions using
// the category's weight profile.
// Logic:
//  1. Look up the weight profile; unknown categories fall back to the equity
//     profile so synthesis always completes
//  2. A zero change yields all-zero contributions regardless of weights
//  3. Otherwise each bucket = round(changeAmount * weight, 3)
func Allocate(category domain.Category, changeAmount float64) domain.DriverBreakdown {
	profile, ok := contributionProfiles[category]
	if !ok {
		profile = contributionProfiles[domain.CategoryEquity]
	}

	if changeAmount == 0 {
		return domain.DriverBreakdown{}
	}

	return domain.DriverBreakdown{
		WindowDrop:     domain.Round3(changeAmount * profile.WindowDrop),
		WindowAdd:      domain.Round3(changeAmount * profile.WindowAdd),
		PositionChange: domain.Round3(changeAmount * profile.PositionChange),
		RankingShift:   domain.Round3(changeAmount * profile.RankingShift),
	}
}
