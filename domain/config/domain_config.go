package config

// DomainConfig holds all configurable match rules and constraints
type DomainConfig struct {
	// Match constraints
	MaxPlayers   int
	TotalRounds  int
	StartInsight int
	StartRestraint int

	// Bead constraints
	MaxContentLength int
	MinComplexity    int
	MaxComplexity    int

	// Edge constraints
	MinJustificationSentences int

	// Judgment settings
	StrongPathCount  int
	SearchMaxDepth   int
	SearchMaxVisits  int
	ResilienceTrials int
	JudgeSeed        uint32
	WeakEdgeCount    int
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		// Match constraints
		MaxPlayers:     2,
		TotalRounds:    4,
		StartInsight:   5,
		StartRestraint: 2,

		// Bead constraints
		MaxContentLength: 10000,
		MinComplexity:    1,
		MaxComplexity:    5,

		// Edge constraints
		MinJustificationSentences: 2,

		// Judgment settings
		StrongPathCount:  3,
		SearchMaxDepth:   8,
		SearchMaxVisits:  1000,
		ResilienceTrials: 5,
		JudgeSeed:        1,
		WeakEdgeCount:    3,
	}
}

// Validate checks if the configuration is valid
func (c *DomainConfig) Validate() error {
	return nil
}
