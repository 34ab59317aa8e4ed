package judgment

import (
	"math"

	"beadloom/domain/core/aggregates"
	"beadloom/domain/core/entities"
)

// Axis weights for the sealed total.
const (
	WeightResonance  = 0.30
	WeightNovelty    = 0.20
	WeightIntegrity  = 0.20
	WeightAesthetics = 0.20
	WeightResilience = 0.10
)

// BoardSlice is a player's footprint on the board: beads they own and edges
// incident to any bead they own.
type BoardSlice struct {
	BeadCount int
	EdgeCount int
}

// SliceFor computes a player's footprint from the aggregate.
func SliceFor(m *aggregates.Match, playerID string) BoardSlice {
	owner := make(map[string]string, m.BeadCount())
	for _, b := range m.Beads() {
		owner[b.ID()] = b.OwnerID()
	}
	return sliceFor(playerID, owner, m.Edges())
}

func sliceFor(playerID string, owner map[string]string, edges []*entities.Edge) BoardSlice {
	s := BoardSlice{}
	for _, o := range owner {
		if o == playerID {
			s.BeadCount++
		}
	}
	for _, e := range edges {
		if owner[e.From] == playerID || owner[e.To] == playerID {
			s.EdgeCount++
		}
	}
	return s
}

// ResonanceScore rewards edge density relative to bead count.
func ResonanceScore(s BoardSlice) float64 {
	return math.Min(1, (float64(s.EdgeCount)/math.Max(1, float64(s.BeadCount)))*0.6+0.2)
}

// NoveltyScore grows with bead count and saturates.
func NoveltyScore(s BoardSlice) float64 {
	return 0.4 + 0.1*math.Tanh(float64(s.BeadCount)/4)
}

// IntegrityScore grows with edge count and saturates.
func IntegrityScore(s BoardSlice) float64 {
	return 0.5 + 0.1*math.Tanh(float64(s.EdgeCount)/5)
}

// AestheticsScore rewards board presence; a beadless player gets a floor.
func AestheticsScore(s BoardSlice) float64 {
	if s.BeadCount == 0 {
		return 0.2
	}
	return math.Min(1, 0.3+0.05*float64(s.BeadCount))
}

// structuralAggregate is the weighted sum of the four structural axes. The
// resilience evaluator perturbs the board and compares this value against the
// baseline; resilience itself is excluded to avoid circularity.
func structuralAggregate(s BoardSlice) float64 {
	return WeightResonance*ResonanceScore(s) +
		WeightNovelty*NoveltyScore(s) +
		WeightIntegrity*IntegrityScore(s) +
		WeightAesthetics*AestheticsScore(s)
}
