package aggregates

import (
	"fmt"
	"time"

	"beadloom/domain/config"
	"beadloom/domain/core/entities"
	"beadloom/domain/core/valueobjects"
	"beadloom/domain/events"
	pkgerrors "beadloom/pkg/errors"
)

// Match phases
const (
	PhaseSeedDraw = "SeedDraw"
	PhasePlay     = "Play"
)

// Match is the aggregate root for one game. All mutation goes through Join,
// DrawTwist and the move applicator; everything else reads.
//
// Bead and edge iteration order is insertion order. Judgment, resilience and
// path search all depend on that order being stable, so the aggregate keeps
// explicit order slices alongside its maps.
type Match struct {
	id              string
	round           int
	phase           string
	players         []*entities.Player
	seeds           []entities.Seed
	beads           map[string]*entities.Bead
	beadOrder       []string
	edges           map[string]*entities.Edge
	edgeOrder       []string
	moves           []*entities.Move
	deck            []entities.Twist
	twistDrawn      int
	cathedral       *entities.Cathedral
	currentPlayerID string
	createdAt       int64
	updatedAt       int64

	cfg               *config.DomainConfig
	uncommittedEvents []events.DomainEvent
}

// NewMatch opens a match in the seed-draw phase
func NewMatch(id string, seeds []entities.Seed, now int64) (*Match, error) {
	return NewMatchWithConfig(id, seeds, now, config.DefaultDomainConfig())
}

// NewMatchWithConfig opens a match with explicit rule configuration
func NewMatchWithConfig(id string, seeds []entities.Seed, now int64, cfg *config.DomainConfig) (*Match, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("match id cannot be empty")
	}
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	m := &Match{
		id:        id,
		round:     1,
		phase:     PhaseSeedDraw,
		seeds:     append([]entities.Seed(nil), seeds...),
		beads:     make(map[string]*entities.Bead),
		edges:     make(map[string]*entities.Edge),
		deck:      entities.StandardDeck(),
		createdAt: now,
		updatedAt: now,
		cfg:       cfg,
	}
	m.addEvent(events.NewMatchCreated(id, time.UnixMilli(now)))
	return m, nil
}

// ID returns the match id
func (m *Match) ID() string { return m.id }

// Round returns the current round, 1-based
func (m *Match) Round() int { return m.round }

// Phase returns the lifecycle phase
func (m *Match) Phase() string { return m.phase }

// CreatedAt returns the creation timestamp in unix millis
func (m *Match) CreatedAt() int64 { return m.createdAt }

// UpdatedAt returns the last-mutation timestamp in unix millis
func (m *Match) UpdatedAt() int64 { return m.updatedAt }

// CurrentPlayerID returns the player on turn, empty before the second join
func (m *Match) CurrentPlayerID() string { return m.currentPlayerID }

// Seeds returns the drawn seed prompts
func (m *Match) Seeds() []entities.Seed {
	return append([]entities.Seed(nil), m.seeds...)
}

// Players returns the seated players in join order
func (m *Match) Players() []*entities.Player {
	return append([]*entities.Player(nil), m.players...)
}

// Player finds a seated player by id
func (m *Match) Player(id string) (*entities.Player, bool) {
	for _, p := range m.players {
		if p.ID() == id {
			return p, true
		}
	}
	return nil, false
}

// Beads returns beads in insertion order
func (m *Match) Beads() []*entities.Bead {
	out := make([]*entities.Bead, 0, len(m.beadOrder))
	for _, id := range m.beadOrder {
		out = append(out, m.beads[id])
	}
	return out
}

// Bead finds a bead by id
func (m *Match) Bead(id string) (*entities.Bead, bool) {
	b, ok := m.beads[id]
	return b, ok
}

// BeadCount returns the number of beads on the board
func (m *Match) BeadCount() int { return len(m.beadOrder) }

// Edges returns edges in insertion order
func (m *Match) Edges() []*entities.Edge {
	out := make([]*entities.Edge, 0, len(m.edgeOrder))
	for _, id := range m.edgeOrder {
		out = append(out, m.edges[id])
	}
	return out
}

// Edge finds an edge by id
func (m *Match) Edge(id string) (*entities.Edge, bool) {
	e, ok := m.edges[id]
	return e, ok
}

// EdgeCount returns the number of edges on the board
func (m *Match) EdgeCount() int { return len(m.edgeOrder) }

// Moves returns the append-only move log
func (m *Match) Moves() []*entities.Move {
	return append([]*entities.Move(nil), m.moves...)
}

// Twist returns the active constraint card, if any
func (m *Match) Twist() *entities.Twist {
	if m.twistDrawn == 0 {
		return nil
	}
	t := m.deck[m.twistDrawn-1]
	return &t
}

// Cathedral returns the concord statement, if raised
func (m *Match) Cathedral() *entities.Cathedral { return m.cathedral }

// Config returns the rule configuration the match runs under
func (m *Match) Config() *config.DomainConfig { return m.cfg }

// Join seats a player. The match is capped; on the second join the board
// opens and the first player takes the turn.
func (m *Match) Join(p *entities.Player, now int64) error {
	if len(m.players) >= m.cfg.MaxPlayers {
		return pkgerrors.NewMatchFull(m.id)
	}
	for _, existing := range m.players {
		if existing.ID() == p.ID() {
			return pkgerrors.NewConflictError("player already seated")
		}
	}

	m.players = append(m.players, p)
	m.updatedAt = now
	m.addEvent(events.NewPlayerJoined(m.id, p.ID(), p.Handle(), time.UnixMilli(now)))

	if len(m.players) == m.cfg.MaxPlayers {
		m.currentPlayerID = m.players[0].ID()
		m.phase = PhasePlay
	}
	return nil
}

// DrawTwist turns over the next constraint card, replacing the active one
func (m *Match) DrawTwist(now int64) (*entities.Twist, error) {
	if m.twistDrawn >= len(m.deck) {
		return nil, pkgerrors.NewNoTwistLeft(m.id)
	}
	m.twistDrawn++
	t := m.deck[m.twistDrawn-1]
	m.updatedAt = now
	m.addEvent(events.NewTwistDrawn(m.id, t.ID, t.Name, time.UnixMilli(now)))
	return &t, nil
}

// RaiseCathedral records a concord statement sealed outside the move log,
// replacing any earlier one.
func (m *Match) RaiseCathedral(c *entities.Cathedral, now int64) {
	m.cathedral = c
	m.updatedAt = now
	m.addEvent(events.NewCathedralRaised(m.id, c.ID, time.UnixMilli(now)))
}

// ApplyWithResources applies an already-validated move: append to the log,
// mutate the board, deduct the cost, stamp updatedAt, advance the turn.
// This is the only mutation path for board state. A move that cannot be
// applied is a programmer error and panics; validation must run first.
func (m *Match) ApplyWithResources(move *entities.Move) {
	m.apply(move, true)
}

// Apply is ApplyWithResources without the ledger deduction
func (m *Match) Apply(move *entities.Move) {
	m.apply(move, false)
}

func (m *Match) apply(move *entities.Move, deduct bool) {
	m.moves = append(m.moves, move)

	switch p := move.Payload().(type) {
	case entities.CastPayload:
		m.admitBead(move, p.Bead)
	case entities.MirrorPayload:
		m.admitBead(move, p.Bead)
	case entities.LinkPayload:
		label, ok := move.Relation()
		if !ok {
			panic(fmt.Sprintf("aggregates: move type %s has no relation", move.Type()))
		}
		edge, err := entities.NewEdge(move.EdgeID(), p.From, p.To, label, p.Justification)
		if err != nil {
			panic(fmt.Sprintf("aggregates: invalid edge in validated move: %v", err))
		}
		if _, exists := m.edges[edge.ID]; !exists {
			m.edgeOrder = append(m.edgeOrder, edge.ID)
		}
		m.edges[edge.ID] = edge
	case entities.PrunePayload:
		if p.BeadID != "" {
			m.removeBead(p.BeadID)
		} else {
			m.removeEdge(p.EdgeID)
		}
	case entities.CathedralPayload:
		m.cathedral = &entities.Cathedral{
			ID:         move.ID(),
			Content:    p.Content,
			References: append([]string(nil), p.References...),
		}
		m.addEvent(events.NewCathedralRaised(m.id, move.ID(), time.UnixMilli(move.Timestamp())))
	case entities.LiftPayload, entities.JokerPayload:
		// logged and costed, no board mutation
	default:
		panic(fmt.Sprintf("aggregates: unsupported payload %T", move.Payload()))
	}

	if deduct {
		player, ok := m.Player(move.PlayerID())
		if !ok {
			panic(fmt.Sprintf("aggregates: move by unknown player %s", move.PlayerID()))
		}
		ledger, shortInsight, shortRestraint := player.Ledger().Settle(move.Cost())
		if shortInsight || shortRestraint {
			panic("aggregates: unaffordable move reached the applicator")
		}
		player.SetLedger(ledger)
	}

	m.updatedAt = move.Timestamp()
	m.advanceTurn()
	m.addEvent(events.NewMoveAccepted(m.id, move.ID(), move.PlayerID(), move.Type(), time.UnixMilli(move.Timestamp())))
}

func (m *Match) admitBead(move *entities.Move, draft entities.BeadDraft) {
	content, err := valueobjects.NewBeadContentWithConfig(draft.Title, draft.Content, m.cfg)
	if err != nil {
		panic(fmt.Sprintf("aggregates: invalid bead in validated move: %v", err))
	}
	bead, err := entities.NewBeadWithConfig(draft.ID, move.PlayerID(), draft.Modality, content, draft.Complexity, draft.SeedID, move.Timestamp(), m.cfg)
	if err != nil {
		panic(fmt.Sprintf("aggregates: invalid bead in validated move: %v", err))
	}
	if _, exists := m.beads[bead.ID()]; !exists {
		m.beadOrder = append(m.beadOrder, bead.ID())
	}
	m.beads[bead.ID()] = bead
}

func (m *Match) removeBead(id string) {
	if _, ok := m.beads[id]; !ok {
		panic(fmt.Sprintf("aggregates: prune of unknown bead %s", id))
	}
	delete(m.beads, id)
	m.beadOrder = deleteID(m.beadOrder, id)

	// cascade: every edge touching the bead goes with it
	var doomed []string
	for _, eid := range m.edgeOrder {
		if m.edges[eid].Touches(id) {
			doomed = append(doomed, eid)
		}
	}
	for _, eid := range doomed {
		m.removeEdge(eid)
	}
}

func (m *Match) removeEdge(id string) {
	if _, ok := m.edges[id]; !ok {
		panic(fmt.Sprintf("aggregates: prune of unknown edge %s", id))
	}
	delete(m.edges, id)
	m.edgeOrder = deleteID(m.edgeOrder, id)
}

func deleteID(order []string, id string) []string {
	out := order[:0]
	for _, v := range order {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func (m *Match) advanceTurn() {
	if m.currentPlayerID == "" || len(m.players) == 0 {
		return
	}
	for i, p := range m.players {
		if p.ID() == m.currentPlayerID {
			m.currentPlayerID = m.players[(i+1)%len(m.players)].ID()
			return
		}
	}
}

// Clone returns a deep copy with an empty event buffer. Beads and edges are
// immutable once admitted, so their pointers are shared.
func (m *Match) Clone() *Match {
	cp := &Match{
		id:              m.id,
		round:           m.round,
		phase:           m.phase,
		seeds:           append([]entities.Seed(nil), m.seeds...),
		beads:           make(map[string]*entities.Bead, len(m.beads)),
		beadOrder:       append([]string(nil), m.beadOrder...),
		edges:           make(map[string]*entities.Edge, len(m.edges)),
		edgeOrder:       append([]string(nil), m.edgeOrder...),
		moves:           append([]*entities.Move(nil), m.moves...),
		deck:            append([]entities.Twist(nil), m.deck...),
		twistDrawn:      m.twistDrawn,
		currentPlayerID: m.currentPlayerID,
		createdAt:       m.createdAt,
		updatedAt:       m.updatedAt,
		cfg:             m.cfg,
	}
	for id, b := range m.beads {
		cp.beads[id] = b
	}
	for id, e := range m.edges {
		cp.edges[id] = e
	}
	for _, p := range m.players {
		cp.players = append(cp.players, p.Clone())
	}
	if m.cathedral != nil {
		c := *m.cathedral
		c.References = append([]string(nil), m.cathedral.References...)
		cp.cathedral = &c
	}
	return cp
}

// Rewound returns a copy with the board and move log cleared and every
// ledger reset to its starting balance: the state the match was in when the
// last player sat down. Folding the move log over it reproduces the live
// state.
func (m *Match) Rewound() *Match {
	cp := m.Clone()
	cp.beads = make(map[string]*entities.Bead)
	cp.beadOrder = nil
	cp.edges = make(map[string]*entities.Edge)
	cp.edgeOrder = nil
	cp.moves = nil
	cp.updatedAt = cp.createdAt
	cp.players = nil
	for _, p := range m.players {
		fresh, err := entities.NewPlayerWithConfig(p.ID(), p.Handle(), m.cfg)
		if err != nil {
			panic(fmt.Sprintf("aggregates: rewind of invalid player: %v", err))
		}
		cp.players = append(cp.players, fresh)
	}
	if len(cp.players) >= cp.cfg.MaxPlayers {
		cp.currentPlayerID = cp.players[0].ID()
		cp.phase = PhasePlay
	} else {
		cp.currentPlayerID = ""
		cp.phase = PhaseSeedDraw
	}
	return cp
}

// Validate checks aggregate invariants
func (m *Match) Validate() error {
	if len(m.beads) != len(m.beadOrder) {
		return pkgerrors.NewInternalError("bead index out of sync")
	}
	if len(m.edges) != len(m.edgeOrder) {
		return pkgerrors.NewInternalError("edge index out of sync")
	}
	for _, e := range m.edges {
		if _, ok := m.beads[e.From]; !ok {
			return pkgerrors.NewInternalError(fmt.Sprintf("edge %s has dangling source", e.ID))
		}
		if _, ok := m.beads[e.To]; !ok {
			return pkgerrors.NewInternalError(fmt.Sprintf("edge %s has dangling target", e.ID))
		}
	}
	for _, p := range m.players {
		l := p.Ledger()
		if l.Insight < 0 || l.Restraint < 0 {
			return pkgerrors.NewInternalError(fmt.Sprintf("player %s has a negative ledger", p.ID()))
		}
	}
	return nil
}

// GetUncommittedEvents returns all uncommitted domain events
func (m *Match) GetUncommittedEvents() []events.DomainEvent {
	return append([]events.DomainEvent(nil), m.uncommittedEvents...)
}

// MarkEventsAsCommitted clears all uncommitted events
func (m *Match) MarkEventsAsCommitted() {
	m.uncommittedEvents = nil
}

func (m *Match) addEvent(event events.DomainEvent) {
	m.uncommittedEvents = append(m.uncommittedEvents, event)
}
