package timeseries

import (
	"math"
	"time"

	"github.com/atlasrisk/varscope-backend/internal/domain"
)

const (
	// Points per series; offsets [Window-1 .. 0] map to dates anchor-offset,
	// oldest first
	Window = 122

	// The aggregate series is a flat 82% of the standalone sum per day
	aggregateScale = 0.82
)

// Synthesizer generates the long oscillating VaR history per asset plus the
// scaled portfolio aggregate
type Synthesizer struct {
	catalog []domain.AssetDefinition
}

// NewSynthesizer creates a Synthesizer over the given catalog
func NewSynthesizer(catalog []domain.AssetDefinition) *Synthesizer {
	return &Synthesizer{catalog: catalog}
}

// Build generates Window points per asset ending at the anchor date, then the
// portfolio aggregate series under domain.AggregateRIC. Each series carries
// exactly one nil change, on its oldest point.
//
// The ric string length feeds the oscillation phase. That is arbitrary but
// kept: the demo dataset consumers were tuned against these exact waveforms.
func (s *Synthesizer) Build(anchor time.Time) []domain.TimeSeriesPoint {
	anchorDay := domain.DateOnly(anchor)
	points := make([]domain.TimeSeriesPoint, 0, (len(s.catalog)+1)*Window)
	aggregate := make([]float64, Window)

	for _, def := range s.catalog {
		prev := 0.0
		for i, offset := 0, Window-1; offset >= 0; i, offset = i+1, offset-1 {
			value := domain.Round3(def.BaseAmount + math.Sin(float64(offset+len(def.RIC))/4)*def.Volatility*3)

			point := domain.TimeSeriesPoint{
				RIC:   def.RIC,
				Date:  anchorDay.AddDate(0, 0, -offset),
				Value: value,
			}
			if i > 0 {
				change := domain.Round3(value - prev)
				point.Change = &change
			}
			points = append(points, point)

			aggregate[i] += value
			prev = value
		}
	}

	prev := 0.0
	for i, offset := 0, Window-1; offset >= 0; i, offset = i+1, offset-1 {
		value := domain.Round3(aggregate[i] * aggregateScale)

		point := domain.TimeSeriesPoint{
			RIC:   domain.AggregateRIC,
			Date:  anchorDay.AddDate(0, 0, -offset),
			Value: value,
		}
		if i > 0 {
			change := domain.Round3(value - prev)
			point.Change = &change
		}
		points = append(points, point)
		prev = value
	}

	return points
}
