package entities

import (
	"beadloom/domain/config"
	"beadloom/domain/core/valueobjects"
	pkgerrors "beadloom/pkg/errors"
)

// Player holds a participant's identity and resource ledger
type Player struct {
	id     string
	handle string
	ledger valueobjects.ResourceLedger
}

// NewPlayer creates a player with the starting ledger
func NewPlayer(id, handle string) (*Player, error) {
	return NewPlayerWithConfig(id, handle, config.DefaultDomainConfig())
}

// NewPlayerWithConfig creates a player with the configured starting ledger
func NewPlayerWithConfig(id, handle string, cfg *config.DomainConfig) (*Player, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if id == "" {
		return nil, pkgerrors.NewValidationError("player id cannot be empty")
	}
	if handle == "" {
		return nil, pkgerrors.NewValidationError("player handle cannot be empty")
	}

	return &Player{
		id:     id,
		handle: handle,
		ledger: valueobjects.ResourceLedger{
			Insight:       cfg.StartInsight,
			Restraint:     cfg.StartRestraint,
			WildAvailable: true,
		},
	}, nil
}

// ReconstructPlayer rebuilds a player from persisted state, bypassing the
// starting-ledger defaults
func ReconstructPlayer(id, handle string, ledger valueobjects.ResourceLedger) *Player {
	return &Player{id: id, handle: handle, ledger: ledger}
}

// ID returns the player id
func (p *Player) ID() string {
	return p.id
}

// Handle returns the display handle
func (p *Player) Handle() string {
	return p.handle
}

// Ledger returns the current resource ledger
func (p *Player) Ledger() valueobjects.ResourceLedger {
	return p.ledger
}

// SetLedger replaces the ledger. Only the move applicator calls this.
func (p *Player) SetLedger(l valueobjects.ResourceLedger) {
	p.ledger = l
}

// Clone returns an independent copy
func (p *Player) Clone() *Player {
	cp := *p
	return &cp
}
