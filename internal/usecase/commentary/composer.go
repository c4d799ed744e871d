package commentary

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/atlasrisk/varscope-backend/internal/domain"
)

// Emitted when no news item exists for the valuation date
const fallbackNewsSummary = "本日の変動は外部材料よりも、ポジション調整とウィンドウ更新など内部要因によるもの。"

// Input carries one valuation date's attribution context into the composer
type Input struct {
	AsOf                  time.Time
	DriverTotals          domain.DriverBreakdown
	LeadingAsset          domain.AssetVaR
	DiversificationEffect float64
	News                  []domain.NewsItem
}

type rankedDriver struct {
	label string
	value float64
}

// Compose builds the day's narrative pair: a technical summary naming the two
// largest drivers by absolute contribution, and a news summary pairing the
// date's first headline with its narrative angle (or a fixed fallback).
func Compose(in Input) domain.DriverCommentary {
	ranked := rankDrivers(in.DriverTotals)

	technical := fmt.Sprintf(
		"本日の変動は%s（%+.3f）と%s（%+.3f）が中心。最大リスクは%s（%s）で、分散効果%.2f億円が変動を吸収した。",
		ranked[0].label, ranked[0].value,
		ranked[1].label, ranked[1].value,
		in.LeadingAsset.Name, in.LeadingAsset.Category,
		in.DiversificationEffect,
	)

	news := fallbackNewsSummary
	if len(in.News) > 0 {
		item := in.News[0]
		news = fmt.Sprintf("「%s」（%s）。%s", item.Headline, item.Source, item.Angle)
	}

	return domain.DriverCommentary{
		AsOf:             in.AsOf,
		TechnicalSummary: technical,
		NewsSummary:      news,
		DriverTotals:     in.DriverTotals,
	}
}

// rankDrivers orders the four driver totals by absolute magnitude descending.
// Sort is stable so ties keep the canonical driver order.
func rankDrivers(totals domain.DriverBreakdown) []rankedDriver {
	drivers := []rankedDriver{
		{label: "ウィンドウ・ドロップ", value: totals.WindowDrop},
		{label: "ウィンドウ・アド", value: totals.WindowAdd},
		{label: "ポジション変化", value: totals.PositionChange},
		{label: "ランキングシフト", value: totals.RankingShift},
	}
	sort.SliceStable(drivers, func(i, j int) bool {
		return math.Abs(drivers[i].value) > math.Abs(drivers[j].value)
	})
	return drivers
}
