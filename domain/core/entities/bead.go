package entities

import (
	"beadloom/domain/config"
	"beadloom/domain/core/valueobjects"
	pkgerrors "beadloom/pkg/errors"
)

// Bead is an immutable knowledge fragment placed on the board. Once cast it
// never changes; prune removes it wholesale.
type Bead struct {
	id         string
	ownerID    string
	modality   valueobjects.Modality
	content    valueobjects.BeadContent
	complexity int
	seedID     string
	createdAt  int64
}

// NewBead creates a bead with validation
func NewBead(id, ownerID string, modality valueobjects.Modality, content valueobjects.BeadContent, complexity int, seedID string, createdAt int64) (*Bead, error) {
	return NewBeadWithConfig(id, ownerID, modality, content, complexity, seedID, createdAt, config.DefaultDomainConfig())
}

// NewBeadWithConfig creates a bead with validation and configuration
func NewBeadWithConfig(id, ownerID string, modality valueobjects.Modality, content valueobjects.BeadContent, complexity int, seedID string, createdAt int64, cfg *config.DomainConfig) (*Bead, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if id == "" {
		return nil, pkgerrors.NewValidationError("bead id cannot be empty")
	}
	if ownerID == "" {
		return nil, pkgerrors.NewValidationError("bead owner cannot be empty")
	}
	if !modality.IsValid() {
		return nil, pkgerrors.NewValidationError("invalid modality")
	}
	if content.IsEmpty() {
		return nil, pkgerrors.NewValidationError("bead content cannot be empty")
	}
	if complexity < cfg.MinComplexity || complexity > cfg.MaxComplexity {
		return nil, pkgerrors.NewValidationError("complexity out of range")
	}

	return &Bead{
		id:         id,
		ownerID:    ownerID,
		modality:   modality,
		content:    content,
		complexity: complexity,
		seedID:     seedID,
		createdAt:  createdAt,
	}, nil
}

// ReconstructBead rebuilds a bead from persisted state, bypassing validation
func ReconstructBead(id, ownerID string, modality valueobjects.Modality, content valueobjects.BeadContent, complexity int, seedID string, createdAt int64) *Bead {
	return &Bead{
		id:         id,
		ownerID:    ownerID,
		modality:   modality,
		content:    content,
		complexity: complexity,
		seedID:     seedID,
		createdAt:  createdAt,
	}
}

// ID returns the bead id
func (b *Bead) ID() string {
	return b.id
}

// OwnerID returns the casting player's id
func (b *Bead) OwnerID() string {
	return b.ownerID
}

// Modality returns the bead's medium
func (b *Bead) Modality() valueobjects.Modality {
	return b.modality
}

// Content returns the title and body
func (b *Bead) Content() valueobjects.BeadContent {
	return b.content
}

// Complexity returns the declared complexity in [1,5]
func (b *Bead) Complexity() int {
	return b.complexity
}

// SeedID returns the originating seed, if any
func (b *Bead) SeedID() string {
	return b.seedID
}

// CreatedAt returns the cast timestamp in unix millis
func (b *Bead) CreatedAt() int64 {
	return b.createdAt
}

// Text returns the searchable text of the bead, title included
func (b *Bead) Text() string {
	if t := b.content.Title(); t != "" {
		return t + " " + b.content.Body()
	}
	return b.content.Body()
}
