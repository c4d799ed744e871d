package scenario

import (
	"math"
	"math/rand"

	"github.com/atlasrisk/varscope-backend/internal/domain"
)

// Portfolio samples take a flat 60% of the summed asset losses at each index
const aggregateWeight = 0.6

// Generator produces the Monte-Carlo style scenario P/L distributions
type Generator struct {
	catalog []domain.AssetDefinition
}

// NewGenerator creates a Generator over the given catalog
func NewGenerator(catalog []domain.AssetDefinition) *Generator {
	return &Generator{catalog: catalog}
}

// Build draws domain.ScenarioWindow pseudo-Gaussian loss samples per asset,
// then the index-aligned weighted portfolio aggregate under
// domain.AggregateRIC. Each asset's generator is seeded from the byte sum of
// its ric, so the same catalog reproduces the same samples on every reseed.
func (g *Generator) Build() []domain.ScenarioSample {
	samples := make([]domain.ScenarioSample, 0, (len(g.catalog)+1)*domain.ScenarioWindow)
	aggregate := make([]float64, domain.ScenarioWindow)

	for _, def := range g.catalog {
		rng := rand.New(rand.NewSource(ricSeed(def.RIC)))
		for idx, value := range lossSeries(def.BaseAmount, def.Volatility, rng) {
			samples = append(samples, domain.ScenarioSample{
				RIC:   def.RIC,
				Index: idx,
				Value: value,
			})
			aggregate[idx] += value
		}
	}

	for idx, value := range aggregate {
		samples = append(samples, domain.ScenarioSample{
			RIC:   domain.AggregateRIC,
			Index: idx,
			Value: domain.Round3(value * aggregateWeight),
		})
	}

	return samples
}

// ricSeed sums the character codes of the identifier
func ricSeed(ric string) int64 {
	seed := int64(0)
	for _, ch := range ric {
		seed += int64(ch)
	}
	return seed
}

// lossSeries mimics a normal-ish scenario P/L: a slow seasonal drift plus a
// Gaussian shock, negated into loss convention
func lossSeries(baseAmount, volatility float64, rng *rand.Rand) []float64 {
	meanScale := baseAmount * 0.12
	driftAmplitude := math.Max(0.2, volatility*0.35)
	shockScale := math.Max(0.25, baseAmount*0.03)

	values := make([]float64, domain.ScenarioWindow)
	for idx := range values {
		seasonal := math.Sin((float64(idx)+baseAmount)/32) * driftAmplitude
		gaussian := rng.NormFloat64()
		values[idx] = domain.Round3(-(meanScale + seasonal + gaussian*shockScale))
	}

	return values
}
