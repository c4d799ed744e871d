package newsfeed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlasrisk/varscope-backend/internal/domain"
)

func testDates() []time.Time {
	return domain.ValuationDates(time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC), 5)
}

func TestForDates_TwoItemsPerDate(t *testing.T) {
	catalog := NewCatalog()
	items := catalog.ForDates(testDates())

	require.Len(t, items, 10)
	for _, date := range testDates() {
		assert.Len(t, ForDate(items, date), 2, "date %s", date.Format("2006-01-02"))
	}
}

func TestForDates_EveryDateHasAnAngle(t *testing.T) {
	catalog := NewCatalog()
	items := catalog.ForDates(testDates())

	for _, date := range testDates() {
		matched := ForDate(items, date)
		require.NotEmpty(t, matched)
		assert.NotEmpty(t, matched[0].Angle)
	}
}

func TestForDates_HeadlinesAreDateStamped(t *testing.T) {
	catalog := NewCatalog()
	date := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)
	items := catalog.ForDates([]time.Time{date})

	require.Len(t, items, 2)
	for _, item := range items {
		assert.Contains(t, item.Headline, "（4/30）")
		assert.Contains(t, item.Summary, "2025-04-30")
	}
}

func TestForDates_PublishTimesOrderedWithinDate(t *testing.T) {
	catalog := NewCatalog()
	date := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)
	items := catalog.ForDates([]time.Time{date})

	require.Len(t, items, 2)
	assert.True(t, items[1].PublishedAt.After(items[0].PublishedAt))
	assert.Equal(t, date, domain.DateOnly(items[0].PublishedAt))
	assert.Equal(t, date, domain.DateOnly(items[1].PublishedAt))
}

func TestForDates_CyclesThroughThePool(t *testing.T) {
	catalog := NewCatalog()
	items := catalog.ForDates(testDates())

	// 5 dates * 2 items covers 10 slots over a 6-template pool, so at least
	// two distinct sources must show up
	sources := make(map[string]bool)
	for _, item := range items {
		sources[item.Source] = true
	}
	assert.GreaterOrEqual(t, len(sources), 2)
}

func TestForDates_ReproducibleIDs(t *testing.T) {
	catalog := NewCatalog()
	first := catalog.ForDates(testDates())
	second := catalog.ForDates(testDates())

	assert.Equal(t, first, second)
}
