package entities

import "beadloom/domain/core/valueobjects"

// TwistEffect is the rule override a twist imposes while active
type TwistEffect struct {
	ModalityLock       []valueobjects.Modality    `json:"modalityLock,omitempty"`
	RequiredRelation   valueobjects.RelationLabel `json:"requiredRelation,omitempty"`
	JustificationLimit int                        `json:"justificationLimit,omitempty"`
}

// Twist is a constraint card. At most one is active per match; drawing the
// next card replaces the previous one.
type Twist struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Effect      TwistEffect `json:"effect"`
}

// AllowsModality checks a modality against the lock, if any
func (t *Twist) AllowsModality(m valueobjects.Modality) bool {
	if len(t.Effect.ModalityLock) == 0 {
		return true
	}
	for _, allowed := range t.Effect.ModalityLock {
		if allowed == m {
			return true
		}
	}
	return false
}

// StandardDeck returns the fixed twist deck in draw order
func StandardDeck() []Twist {
	return []Twist{
		{
			ID:          "t1",
			Name:        "Scriptorium",
			Description: "Only text beads may be cast while this card is up.",
			Effect: TwistEffect{
				ModalityLock: []valueobjects.Modality{valueobjects.ModalityText},
			},
		},
		{
			ID:          "t2",
			Name:        "Echo Chamber",
			Description: "Every new connection must echo an existing motif.",
			Effect: TwistEffect{
				RequiredRelation: valueobjects.RelationMotifEcho,
			},
		},
		{
			ID:          "t3",
			Name:        "Laconic Court",
			Description: "Justifications are capped at 120 characters.",
			Effect: TwistEffect{
				JustificationLimit: 120,
			},
		},
	}
}
