package entities

import (
	"beadloom/domain/core/valueobjects"
	pkgerrors "beadloom/pkg/errors"
)

// Edge is a directed, labeled claim connecting two beads
type Edge struct {
	ID            string                     `json:"id"`
	From          string                     `json:"from"`
	To            string                     `json:"to"`
	Label         valueobjects.RelationLabel `json:"label"`
	Justification string                     `json:"justification"`
}

// NewEdge creates an edge with validation
func NewEdge(id, from, to string, label valueobjects.RelationLabel, justification string) (*Edge, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("edge id cannot be empty")
	}
	if from == "" || to == "" {
		return nil, pkgerrors.NewValidationError("edge endpoints cannot be empty")
	}
	if from == to {
		return nil, pkgerrors.NewValidationError("edge endpoints must differ")
	}
	if !label.IsValid() {
		return nil, pkgerrors.NewValidationError("invalid relation label")
	}

	return &Edge{
		ID:            id,
		From:          from,
		To:            to,
		Label:         label,
		Justification: justification,
	}, nil
}

// Touches reports whether the edge is incident to the bead
func (e *Edge) Touches(beadID string) bool {
	return e.From == beadID || e.To == beadID
}

// Reversed returns a copy with the endpoints swapped
func (e *Edge) Reversed() *Edge {
	return &Edge{
		ID:            e.ID,
		From:          e.To,
		To:            e.From,
		Label:         e.Label,
		Justification: e.Justification,
	}
}
