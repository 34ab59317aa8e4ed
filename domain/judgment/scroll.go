package judgment

// Axis names in presentation order.
const (
	AxisResonance  = "resonance"
	AxisNovelty    = "novelty"
	AxisIntegrity  = "integrity"
	AxisAesthetics = "aesthetics"
	AxisResilience = "resilience"
)

// JudgmentAxes lists the five axes in the order they are weighed and narrated.
var JudgmentAxes = []string{AxisResonance, AxisNovelty, AxisIntegrity, AxisAesthetics, AxisResilience}

// AxisContributions is a player's weighted contribution per axis.
type AxisContributions struct {
	Resonance  float64 `json:"resonance"`
	Novelty    float64 `json:"novelty"`
	Integrity  float64 `json:"integrity"`
	Aesthetics float64 `json:"aesthetics"`
	Resilience float64 `json:"resilience"`
}

// JudgedScores is one player's full scorecard.
type JudgedScores struct {
	Resonance     float64           `json:"resonance"`
	Novelty       float64           `json:"novelty"`
	Integrity     float64           `json:"integrity"`
	Aesthetics    float64           `json:"aesthetics"`
	Resilience    float64           `json:"resilience"`
	Contributions AxisContributions `json:"contributions"`
	Total         float64           `json:"total"`
}

// Axis returns the raw score for a named axis.
func (s JudgedScores) Axis(name string) float64 {
	switch name {
	case AxisResonance:
		return s.Resonance
	case AxisNovelty:
		return s.Novelty
	case AxisIntegrity:
		return s.Integrity
	case AxisAesthetics:
		return s.Aesthetics
	case AxisResilience:
		return s.Resilience
	}
	return 0
}

// Contribution returns the weighted contribution for a named axis.
func (s JudgedScores) Contribution(name string) float64 {
	switch name {
	case AxisResonance:
		return s.Contributions.Resonance
	case AxisNovelty:
		return s.Contributions.Novelty
	case AxisIntegrity:
		return s.Contributions.Integrity
	case AxisAesthetics:
		return s.Contributions.Aesthetics
	case AxisResilience:
		return s.Contributions.Resilience
	}
	return 0
}

// StrongPath is a narrated heavy path across the board.
type StrongPath struct {
	Nodes []string `json:"nodes"`
	Why   string   `json:"why"`
}

// AxisRankingEntry places one player on one axis.
type AxisRankingEntry struct {
	PlayerID     string  `json:"playerId"`
	Value        float64 `json:"value"`
	Contribution float64 `json:"contribution"`
}

// DialogueTurn is one beat of the magister's narration. Kind selects which of
// the optional fields are populated: "axis-insight" carries axis, insight and
// ranking; "path-story" carries nodes, pathIndex, weight and story;
// "closing" carries reflection. Every kind carries title and prompt.
type DialogueTurn struct {
	Kind       string             `json:"kind"`
	Title      string             `json:"title"`
	Prompt     string             `json:"prompt"`
	Axis       string             `json:"axis,omitempty"`
	Insight    string             `json:"insight,omitempty"`
	Ranking    []AxisRankingEntry `json:"ranking,omitempty"`
	Nodes      []string           `json:"nodes,omitempty"`
	PathIndex  *int               `json:"pathIndex,omitempty"`
	Weight     *float64           `json:"weight,omitempty"`
	Story      string             `json:"story,omitempty"`
	Reflection string             `json:"reflection,omitempty"`
}

// Dialogue is the full narrated judgment.
type Dialogue struct {
	Magister string         `json:"magister"`
	Turns    []DialogueTurn `json:"turns"`
}

// AxisLead summarizes who leads an axis and by how much.
type AxisLead struct {
	Axis   string  `json:"axis"`
	Leader string  `json:"leader"`
	Value  float64 `json:"value"`
	Margin float64 `json:"margin"`
}

// Summary is the at-a-glance digest of a scroll.
type Summary struct {
	LeadingPlayer   string     `json:"leadingPlayer,omitempty"`
	AxisLeads       []AxisLead `json:"axisLeads"`
	StrongPathCount int        `json:"strongPathCount"`
	WeakSpotCount   int        `json:"weakSpotCount"`
}

// JudgmentScroll is the sealed verdict for a match.
type JudgmentScroll struct {
	Winner       string                  `json:"winner,omitempty"`
	Scores       map[string]JudgedScores `json:"scores"`
	StrongPaths  []StrongPath            `json:"strongPaths"`
	WeakSpots    []string                `json:"weakSpots"`
	FragileEdges []string                `json:"fragileEdges"`
	MissedFuse   *string                 `json:"missedFuse,omitempty"`
	Summary      Summary                 `json:"summary"`
	Dialogue     Dialogue                `json:"dialogue"`
}
