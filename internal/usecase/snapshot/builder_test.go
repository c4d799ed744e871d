package snapshot

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlasrisk/varscope-backend/internal/domain"
)

func buildDates(days int) []time.Time {
	anchor := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)
	return domain.ValuationDates(anchor, days)
}

func TestBuild_OneSnapshotPerDate(t *testing.T) {
	builder := NewBuilder(domain.DemoCatalog())
	snapshots := builder.Build(buildDates(5))

	require.Len(t, snapshots, 5)
	for i, snapshot := range snapshots {
		assert.Len(t, snapshot.Assets, 20)
		if i > 0 {
			assert.True(t, snapshot.AsOf.After(snapshots[i-1].AsOf))
		}
	}
}

func TestBuild_FirstDateHasZeroChange(t *testing.T) {
	builder := NewBuilder(domain.DemoCatalog())
	snapshots := builder.Build(buildDates(3))

	first := snapshots[0]
	assert.Zero(t, first.Portfolio.ChangeAmount)
	assert.Zero(t, first.Portfolio.ChangePct)
	for _, asset := range first.Assets {
		assert.Zero(t, asset.ChangeAmount)
		assert.Zero(t, asset.ChangePct)
		assert.Equal(t, domain.DriverBreakdown{}, asset.Contributions)
	}
}

func TestBuild_DiversificationEffectIsFixedFraction(t *testing.T) {
	builder := NewBuilder(domain.DemoCatalog())
	snapshots := builder.Build(buildDates(5))

	for _, snapshot := range snapshots {
		sum := 0.0
		for _, asset := range snapshot.Assets {
			sum += asset.Amount
		}
		assert.Equal(t, domain.Round2(sum*-0.18), snapshot.Portfolio.DiversificationEffect)
		assert.LessOrEqual(t, snapshot.Portfolio.DiversificationEffect, 0.0)
		assert.Equal(t, domain.Round2(sum+snapshot.Portfolio.DiversificationEffect), snapshot.Portfolio.Total)
	}
}

func TestBuild_ContributionsZeroOnlyWhenChangeIsZero(t *testing.T) {
	builder := NewBuilder(domain.DemoCatalog())
	snapshots := builder.Build(buildDates(5))

	for _, snapshot := range snapshots[1:] {
		for _, asset := range snapshot.Assets {
			magnitude := math.Abs(asset.Contributions.WindowDrop) +
				math.Abs(asset.Contributions.WindowAdd) +
				math.Abs(asset.Contributions.PositionChange) +
				math.Abs(asset.Contributions.RankingShift)
			if asset.ChangeAmount == 0 {
				assert.Zero(t, magnitude, "asset %s", asset.RIC)
			} else {
				assert.Greater(t, magnitude, 0.0, "asset %s", asset.RIC)
			}
		}
	}
}

func TestBuild_ChangeTracksPreviousAmount(t *testing.T) {
	builder := NewBuilder(domain.DemoCatalog())
	snapshots := builder.Build(buildDates(4))

	for i := 1; i < len(snapshots); i++ {
		for j, asset := range snapshots[i].Assets {
			prev := snapshots[i-1].Assets[j].Amount
			assert.Equal(t, domain.Round2(asset.Amount-prev), asset.ChangeAmount, "asset %s date %d", asset.RIC, i)
		}
		prevTotal := snapshots[i-1].Portfolio.Total
		assert.Equal(t, domain.Round2(snapshots[i].Portfolio.Total-prevTotal), snapshots[i].Portfolio.ChangeAmount)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	builder := NewBuilder(domain.DemoCatalog())
	dates := buildDates(5)

	first := builder.Build(dates)
	second := builder.Build(dates)

	assert.Equal(t, first, second)
}

func TestBuild_AssetsUsePhaseOffsets(t *testing.T) {
	// Two assets with identical base and volatility must still diverge
	// thanks to the index-based phase term
	catalog := []domain.AssetDefinition{
		{RIC: "A_ONE", Name: "one", Category: domain.CategoryEquity, BaseAmount: 5.0, Volatility: 0.3},
		{RIC: "A_TWO", Name: "two", Category: domain.CategoryEquity, BaseAmount: 5.0, Volatility: 0.3},
	}
	builder := NewBuilder(catalog)
	snapshots := builder.Build(buildDates(1))

	require.Len(t, snapshots, 1)
	assert.NotEqual(t, snapshots[0].Assets[0].Amount, snapshots[0].Assets[1].Amount)
}
