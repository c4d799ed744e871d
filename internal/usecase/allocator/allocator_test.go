package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atlasrisk/varscope-backend/internal/domain"
)

func TestAllocate_ZeroChangeYieldsZeroContributions(t *testing.T) {
	contributions := Allocate(domain.CategoryRates, 0)

	assert.Equal(t, domain.DriverBreakdown{}, contributions)
}

func TestAllocate_AppliesCategoryWeights(t *testing.T) {
	contributions := Allocate(domain.CategoryEquity, 0.5)

	assert.Equal(t, 0.14, contributions.WindowDrop)
	assert.Equal(t, 0.06, contributions.WindowAdd)
	assert.Equal(t, 0.175, contributions.PositionChange)
	assert.Equal(t, 0.125, contributions.RankingShift)
}

func TestAllocate_NegativeChangeKeepsSign(t *testing.T) {
	contributions := Allocate(domain.CategoryCredit, -1.0)

	assert.Equal(t, -0.26, contributions.WindowDrop)
	assert.Equal(t, -0.14, contributions.WindowAdd)
	assert.Equal(t, -0.3, contributions.PositionChange)
	assert.Equal(t, -0.3, contributions.RankingShift)
}

func TestAllocate_UnknownCategoryFallsBackToEquityProfile(t *testing.T) {
	unknown := Allocate(domain.Category("外国為替"), 0.5)
	equity := Allocate(domain.CategoryEquity, 0.5)

	assert.Equal(t, equity, unknown)
}

func TestAllocate_RoundsToThreeDecimals(t *testing.T) {
	contributions := Allocate(domain.CategoryMortgage, 0.07)

	// 0.07 * 0.24 = 0.0168 -> 0.017
	assert.Equal(t, 0.017, contributions.WindowDrop)
	// 0.07 * 0.16 = 0.0112 -> 0.011
	assert.Equal(t, 0.011, contributions.WindowAdd)
}
