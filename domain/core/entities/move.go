package entities

import (
	"encoding/json"
	"fmt"

	"beadloom/domain/core/valueobjects"
	pkgerrors "beadloom/pkg/errors"
)

// MoveType tags a move with its rule set
type MoveType string

const (
	MoveCast         MoveType = "cast"
	MoveBind         MoveType = "bind"
	MoveMirror       MoveType = "mirror"
	MoveCounterpoint MoveType = "counterpoint"
	MoveLift         MoveType = "lift"
	MoveCanonize     MoveType = "canonize"
	MoveRefute       MoveType = "refute"
	MovePrune        MoveType = "prune"
	MoveJoker        MoveType = "joker"
	MoveCathedral    MoveType = "cathedral"
)

// IsValid checks membership in the move type set
func (t MoveType) IsValid() bool {
	switch t {
	case MoveCast, MoveBind, MoveMirror, MoveCounterpoint, MoveLift,
		MoveCanonize, MoveRefute, MovePrune, MoveJoker, MoveCathedral:
		return true
	default:
		return false
	}
}

// CostOf returns the fixed price of a move type
func CostOf(t MoveType) valueobjects.Cost {
	switch t {
	case MoveCast, MoveMirror, MoveLift:
		return valueobjects.Cost{Insight: 1}
	case MoveBind, MoveCounterpoint, MoveRefute, MovePrune:
		return valueobjects.Cost{Restraint: 1}
	case MoveCanonize:
		return valueobjects.Cost{Insight: 1, Restraint: 1}
	default:
		return valueobjects.Cost{}
	}
}

// RelationFor returns the fixed label an edge-building move asserts
func RelationFor(t MoveType) (valueobjects.RelationLabel, bool) {
	switch t {
	case MoveBind:
		return valueobjects.RelationAnalogy, true
	case MoveCounterpoint:
		return valueobjects.RelationMotifEcho, true
	case MoveCanonize:
		return valueobjects.RelationProof, true
	case MoveRefute:
		return valueobjects.RelationRefutation, true
	default:
		return "", false
	}
}

// MovePayload is the type-specific payload of a move. The concrete type must
// agree with the move type; NewMove enforces the pairing.
type MovePayload interface {
	isMovePayload()
}

// BeadDraft carries the fields of a bead before it is admitted to the board
type BeadDraft struct {
	ID         string                `json:"id"`
	Title      string                `json:"title,omitempty"`
	Content    string                `json:"content"`
	Modality   valueobjects.Modality `json:"modality"`
	Complexity int                   `json:"complexity"`
	SeedID     string                `json:"seedId,omitempty"`
}

// CastPayload places a fresh bead
type CastPayload struct {
	Bead BeadDraft `json:"bead"`
}

// MirrorPayload re-expresses an existing bead in another modality
type MirrorPayload struct {
	Bead     BeadDraft `json:"bead"`
	TargetID string    `json:"targetId"`
}

// LinkPayload connects two beads; used by bind, counterpoint, canonize and
// refute. Label may be omitted, in which case the move type's fixed relation
// applies; when present it must agree with the move type.
type LinkPayload struct {
	EdgeID        string                     `json:"edgeId,omitempty"`
	From          string                     `json:"from"`
	To            string                     `json:"to"`
	Label         valueobjects.RelationLabel `json:"label,omitempty"`
	Justification string                     `json:"justification"`
}

// PrunePayload removes exactly one bead or one edge
type PrunePayload struct {
	BeadID string `json:"beadId,omitempty"`
	EdgeID string `json:"edgeId,omitempty"`
}

// LiftPayload highlights a claimed strongest path
type LiftPayload struct {
	BeadIDs []string `json:"beadIds"`
}

// JokerPayload is the free flourish move
type JokerPayload struct{}

// CathedralPayload raises the closing concord statement
type CathedralPayload struct {
	Content    string   `json:"content"`
	References []string `json:"references"`
}

func (CastPayload) isMovePayload()      {}
func (MirrorPayload) isMovePayload()    {}
func (LinkPayload) isMovePayload()      {}
func (PrunePayload) isMovePayload()     {}
func (LiftPayload) isMovePayload()      {}
func (JokerPayload) isMovePayload()     {}
func (CathedralPayload) isMovePayload() {}

// Move is one append-only entry in a match's history
type Move struct {
	id         string
	playerID   string
	moveType   MoveType
	payload    MovePayload
	timestamp  int64
	durationMs int64
	valid      bool
	notes      string
}

// NewMove creates a move with validation
func NewMove(id, playerID string, t MoveType, payload MovePayload, timestamp, durationMs int64) (*Move, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("move id cannot be empty")
	}
	if playerID == "" {
		return nil, pkgerrors.NewValidationError("move player cannot be empty")
	}
	if !t.IsValid() {
		return nil, pkgerrors.NewValidationError("Unsupported move type")
	}
	if !payloadMatches(t, payload) {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("payload does not match move type %s", t))
	}

	return &Move{
		id:         id,
		playerID:   playerID,
		moveType:   t,
		payload:    payload,
		timestamp:  timestamp,
		durationMs: durationMs,
	}, nil
}

func payloadMatches(t MoveType, payload MovePayload) bool {
	switch t {
	case MoveCast:
		_, ok := payload.(CastPayload)
		return ok
	case MoveMirror:
		_, ok := payload.(MirrorPayload)
		return ok
	case MoveBind, MoveCounterpoint, MoveCanonize, MoveRefute:
		_, ok := payload.(LinkPayload)
		return ok
	case MovePrune:
		_, ok := payload.(PrunePayload)
		return ok
	case MoveLift:
		_, ok := payload.(LiftPayload)
		return ok
	case MoveJoker:
		_, ok := payload.(JokerPayload)
		return ok
	case MoveCathedral:
		_, ok := payload.(CathedralPayload)
		return ok
	default:
		return false
	}
}

// ID returns the move id
func (m *Move) ID() string {
	return m.id
}

// PlayerID returns the acting player's id
func (m *Move) PlayerID() string {
	return m.playerID
}

// Type returns the move type tag
func (m *Move) Type() MoveType {
	return m.moveType
}

// Payload returns the type-specific payload
func (m *Move) Payload() MovePayload {
	return m.payload
}

// Timestamp returns the submission time in unix millis
func (m *Move) Timestamp() int64 {
	return m.timestamp
}

// DurationMs returns how long the player spent composing the move
func (m *Move) DurationMs() int64 {
	return m.durationMs
}

// Valid reports whether the move passed validation
func (m *Move) Valid() bool {
	return m.valid
}

// MarkValid flags the move as accepted
func (m *Move) MarkValid() {
	m.valid = true
}

// Notes returns free-form annotation attached by the server
func (m *Move) Notes() string {
	return m.notes
}

// SetNotes attaches a server annotation
func (m *Move) SetNotes(notes string) {
	m.notes = notes
}

// Cost returns the move's fixed price
func (m *Move) Cost() valueobjects.Cost {
	return CostOf(m.moveType)
}

// Relation returns the effective relation label of an edge-building move
func (m *Move) Relation() (valueobjects.RelationLabel, bool) {
	fixed, ok := RelationFor(m.moveType)
	if !ok {
		return "", false
	}
	if p, isLink := m.payload.(LinkPayload); isLink && p.Label != "" {
		return p.Label, true
	}
	return fixed, true
}

// EdgeID returns the id the move's edge will take: the explicit payload id
// when present, otherwise the move's own id
func (m *Move) EdgeID() string {
	if p, ok := m.payload.(LinkPayload); ok && p.EdgeID != "" {
		return p.EdgeID
	}
	return m.id
}

// Sanitize applies clean to every player-authored text field in the payload
func (m *Move) Sanitize(clean func(string) string) {
	switch p := m.payload.(type) {
	case CastPayload:
		p.Bead.Title = clean(p.Bead.Title)
		p.Bead.Content = clean(p.Bead.Content)
		m.payload = p
	case MirrorPayload:
		p.Bead.Title = clean(p.Bead.Title)
		p.Bead.Content = clean(p.Bead.Content)
		m.payload = p
	case LinkPayload:
		p.Justification = clean(p.Justification)
		m.payload = p
	case CathedralPayload:
		p.Content = clean(p.Content)
		m.payload = p
	}
}

type moveJSON struct {
	ID         string          `json:"id"`
	PlayerID   string          `json:"playerId"`
	Type       MoveType        `json:"type"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Timestamp  int64           `json:"timestamp"`
	DurationMs int64           `json:"durationMs"`
	Valid      bool            `json:"valid"`
	Notes      string          `json:"notes,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (m *Move) MarshalJSON() ([]byte, error) {
	payload, err := json.Marshal(m.payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(moveJSON{
		ID:         m.id,
		PlayerID:   m.playerID,
		Type:       m.moveType,
		Payload:    payload,
		Timestamp:  m.timestamp,
		DurationMs: m.durationMs,
		Valid:      m.valid,
		Notes:      m.notes,
	})
}

// UnmarshalJSON implements json.Unmarshaler, decoding the payload according
// to the move type tag
func (m *Move) UnmarshalJSON(data []byte) error {
	var raw moveJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	payload, err := DecodePayload(raw.Type, raw.Payload)
	if err != nil {
		return err
	}
	m.id = raw.ID
	m.playerID = raw.PlayerID
	m.moveType = raw.Type
	m.payload = payload
	m.timestamp = raw.Timestamp
	m.durationMs = raw.DurationMs
	m.valid = raw.Valid
	m.notes = raw.Notes
	return nil
}

// DecodePayload decodes a raw payload for the given move type
func DecodePayload(t MoveType, data []byte) (MovePayload, error) {
	if !t.IsValid() {
		return nil, pkgerrors.NewValidationError("Unsupported move type")
	}
	if len(data) == 0 {
		data = []byte("{}")
	}
	switch t {
	case MoveCast:
		var p CastPayload
		return p, json.Unmarshal(data, &p)
	case MoveMirror:
		var p MirrorPayload
		return p, json.Unmarshal(data, &p)
	case MoveBind, MoveCounterpoint, MoveCanonize, MoveRefute:
		var p LinkPayload
		return p, json.Unmarshal(data, &p)
	case MovePrune:
		var p PrunePayload
		return p, json.Unmarshal(data, &p)
	case MoveLift:
		var p LiftPayload
		return p, json.Unmarshal(data, &p)
	case MoveJoker:
		var p JokerPayload
		return p, json.Unmarshal(data, &p)
	default:
		var p CathedralPayload
		return p, json.Unmarshal(data, &p)
	}
}
