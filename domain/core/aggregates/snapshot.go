package aggregates

import (
	"beadloom/domain/config"
	"beadloom/domain/core/entities"
	"beadloom/domain/core/valueobjects"
	pkgerrors "beadloom/pkg/errors"
)

// PlayerSnapshot is the wire form of a seated player
type PlayerSnapshot struct {
	ID        string                     `json:"id"`
	Handle    string                     `json:"handle"`
	Resources valueobjects.ResourceLedger `json:"resources"`
}

// BeadSnapshot is the wire form of a bead
type BeadSnapshot struct {
	ID         string `json:"id"`
	OwnerID    string `json:"ownerId"`
	Modality   string `json:"modality"`
	Title      string `json:"title,omitempty"`
	Content    string `json:"content"`
	Complexity int    `json:"complexity"`
	CreatedAt  int64  `json:"createdAt"`
	SeedID     string `json:"seedId,omitempty"`
}

// MatchSnapshot is the exported wire form of a match. It is what the API
// returns, what the archive stores, and what the replay CLI consumes. The
// order slices carry the insertion order the maps cannot.
type MatchSnapshot struct {
	ID              string                  `json:"id"`
	Round           int                     `json:"round"`
	Phase           string                  `json:"phase"`
	Players         []PlayerSnapshot        `json:"players"`
	Seeds           []entities.Seed         `json:"seeds"`
	Beads           map[string]BeadSnapshot `json:"beads"`
	BeadOrder       []string                `json:"beadOrder"`
	Edges           map[string]*entities.Edge `json:"edges"`
	EdgeOrder       []string                `json:"edgeOrder"`
	Moves           []*entities.Move        `json:"moves"`
	Twist           *entities.Twist         `json:"twist,omitempty"`
	TwistsDrawn     int                     `json:"twistsDrawn"`
	Cathedral       *entities.Cathedral     `json:"cathedral,omitempty"`
	CurrentPlayerID string                  `json:"currentPlayerId,omitempty"`
	CreatedAt       int64                   `json:"createdAt"`
	UpdatedAt       int64                   `json:"updatedAt"`
}

// Snapshot exports the aggregate
func (m *Match) Snapshot() *MatchSnapshot {
	s := &MatchSnapshot{
		ID:              m.id,
		Round:           m.round,
		Phase:           m.phase,
		Seeds:           m.Seeds(),
		Beads:           make(map[string]BeadSnapshot, len(m.beads)),
		BeadOrder:       append([]string(nil), m.beadOrder...),
		Edges:           make(map[string]*entities.Edge, len(m.edges)),
		EdgeOrder:       append([]string(nil), m.edgeOrder...),
		Moves:           m.Moves(),
		Twist:           m.Twist(),
		TwistsDrawn:     m.twistDrawn,
		CurrentPlayerID: m.currentPlayerID,
		CreatedAt:       m.createdAt,
		UpdatedAt:       m.updatedAt,
	}
	for _, p := range m.players {
		s.Players = append(s.Players, PlayerSnapshot{
			ID:        p.ID(),
			Handle:    p.Handle(),
			Resources: p.Ledger(),
		})
	}
	for id, b := range m.beads {
		s.Beads[id] = BeadSnapshot{
			ID:         b.ID(),
			OwnerID:    b.OwnerID(),
			Modality:   b.Modality().String(),
			Title:      b.Content().Title(),
			Content:    b.Content().Body(),
			Complexity: b.Complexity(),
			CreatedAt:  b.CreatedAt(),
			SeedID:     b.SeedID(),
		}
	}
	for id, e := range m.edges {
		s.Edges[id] = e
	}
	if m.cathedral != nil {
		c := *m.cathedral
		s.Cathedral = &c
	}
	return s
}

// FromSnapshot rebuilds an aggregate from its exported form
func FromSnapshot(s *MatchSnapshot) (*Match, error) {
	return FromSnapshotWithConfig(s, config.DefaultDomainConfig())
}

// FromSnapshotWithConfig rebuilds an aggregate under explicit configuration
func FromSnapshotWithConfig(s *MatchSnapshot, cfg *config.DomainConfig) (*Match, error) {
	if s == nil {
		return nil, pkgerrors.NewValidationError("snapshot cannot be nil")
	}
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	m := &Match{
		id:              s.ID,
		round:           s.Round,
		phase:           s.Phase,
		seeds:           append([]entities.Seed(nil), s.Seeds...),
		beads:           make(map[string]*entities.Bead, len(s.Beads)),
		edges:           make(map[string]*entities.Edge, len(s.Edges)),
		moves:           append([]*entities.Move(nil), s.Moves...),
		deck:            entities.StandardDeck(),
		twistDrawn:      s.TwistsDrawn,
		currentPlayerID: s.CurrentPlayerID,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
		cfg:             cfg,
	}
	for _, p := range s.Players {
		m.players = append(m.players, entities.ReconstructPlayer(p.ID, p.Handle, p.Resources))
	}

	beadOrder := s.BeadOrder
	if len(beadOrder) != len(s.Beads) {
		return nil, pkgerrors.NewValidationError("snapshot bead order out of sync")
	}
	for _, id := range beadOrder {
		b, ok := s.Beads[id]
		if !ok {
			return nil, pkgerrors.NewValidationError("snapshot bead order references unknown bead")
		}
		content, err := valueobjects.NewBeadContentWithConfig(b.Title, b.Content, cfg)
		if err != nil {
			return nil, err
		}
		m.beads[id] = entities.ReconstructBead(b.ID, b.OwnerID, valueobjects.Modality(b.Modality), content, b.Complexity, b.SeedID, b.CreatedAt)
		m.beadOrder = append(m.beadOrder, id)
	}

	if len(s.EdgeOrder) != len(s.Edges) {
		return nil, pkgerrors.NewValidationError("snapshot edge order out of sync")
	}
	for _, id := range s.EdgeOrder {
		e, ok := s.Edges[id]
		if !ok {
			return nil, pkgerrors.NewValidationError("snapshot edge order references unknown edge")
		}
		m.edges[id] = e
		m.edgeOrder = append(m.edgeOrder, id)
	}

	if s.Cathedral != nil {
		c := *s.Cathedral
		m.cathedral = &c
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
