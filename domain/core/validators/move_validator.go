package validators

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"beadloom/domain/config"
	"beadloom/domain/core/aggregates"
	"beadloom/domain/core/entities"
	"beadloom/domain/core/valueobjects"
	"beadloom/pkg/sanitize"
)

// Rejection reasons are stable strings: clients and tests match on them.
const (
	ReasonNoSuchPlayer        = "No such player"
	ReasonNotYourTurn         = "Not your turn"
	ReasonNotEnoughInsight    = "Not enough insight"
	ReasonNotEnoughRestraint  = "Not enough restraint"
	ReasonNotEnoughBoth       = "Not enough insight and restraint"
	ReasonUnsupportedMove     = "Unsupported move type"
	ReasonBeadContentRequired = "Bead content required"
	ReasonBeadContentTooLong  = "Bead content too long"
	ReasonComplexityOutOfRange = "Complexity out of range"
	ReasonCastRequiresText    = "Cast requires text modality"
	ReasonMirrorTargetMissing = "Mirror target not found"
	ReasonMirrorSameModality  = "Mirror requires a different modality"
	ReasonEndpointsMissing    = "Edge endpoints must exist"
	ReasonEndpointsEqual      = "Edge endpoints must differ"
	ReasonJustificationShort  = "Justification needs at least two sentences"
	ReasonJustificationCapped = "Justification exceeds twist limit"
	ReasonTwistModality       = "Twist restricts modality"
	ReasonPruneOneTarget      = "Prune requires exactly one target"
	ReasonPruneTargetMissing  = "Prune target not found"
	ReasonLiftUnknownBead     = "Lift references unknown bead"
	ReasonCathedralContent    = "Cathedral content required"
	ReasonCathedralReference  = "Cathedral references must exist"
)

// Result is the outcome of validating a move. Rejections are ordinary
// values, not errors: an invalid move is expected traffic.
type Result struct {
	OK  bool
	Err string
}

// Accept returns a passing result
func Accept() Result {
	return Result{OK: true}
}

// Reject returns a failing result with a stable reason
func Reject(reason string) Result {
	return Result{Err: reason}
}

// MoveValidator checks moves against match state in two phases: normalize
// the player-authored text, then run pure rule checks in a fixed order.
type MoveValidator struct {
	cfg *config.DomainConfig
}

// NewMoveValidator creates a validator with default configuration
func NewMoveValidator() *MoveValidator {
	return NewMoveValidatorWithConfig(config.DefaultDomainConfig())
}

// NewMoveValidatorWithConfig creates a validator with explicit configuration
func NewMoveValidatorWithConfig(cfg *config.DomainConfig) *MoveValidator {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &MoveValidator{cfg: cfg}
}

// Normalize sanitizes every player-authored text field in place. Run before
// Check; the applicator must see exactly what validation saw.
func (v *MoveValidator) Normalize(move *entities.Move) {
	move.Sanitize(sanitize.Markdown)
}

// Validate normalizes and checks a move against state
func (v *MoveValidator) Validate(move *entities.Move, state *aggregates.Match) Result {
	v.Normalize(move)
	return v.Check(move, state)
}

// Check runs the rule checks, short-circuiting on the first failure:
// player, turn order, affordability, per-type structure, twist overrides.
func (v *MoveValidator) Check(move *entities.Move, state *aggregates.Match) Result {
	player, ok := state.Player(move.PlayerID())
	if !ok {
		return Reject(ReasonNoSuchPlayer)
	}

	if current := state.CurrentPlayerID(); current != "" && current != move.PlayerID() {
		return Reject(ReasonNotYourTurn)
	}

	if r := v.checkCost(player, move); !r.OK {
		return r
	}

	if !move.Type().IsValid() {
		return Reject(ReasonUnsupportedMove)
	}

	switch p := move.Payload().(type) {
	case entities.CastPayload:
		return v.checkCast(p, state)
	case entities.MirrorPayload:
		return v.checkMirror(p, state)
	case entities.LinkPayload:
		return v.checkLink(move, p, state)
	case entities.PrunePayload:
		return v.checkPrune(p, state)
	case entities.LiftPayload:
		return v.checkLift(p, state)
	case entities.JokerPayload:
		return Accept()
	case entities.CathedralPayload:
		return v.checkCathedral(p, state)
	default:
		return Reject(ReasonUnsupportedMove)
	}
}

func (v *MoveValidator) checkCost(player *entities.Player, move *entities.Move) Result {
	_, shortInsight, shortRestraint := player.Ledger().Settle(move.Cost())
	switch {
	case shortInsight && shortRestraint:
		return Reject(ReasonNotEnoughBoth)
	case shortInsight:
		return Reject(ReasonNotEnoughInsight)
	case shortRestraint:
		return Reject(ReasonNotEnoughRestraint)
	}
	return Accept()
}

func (v *MoveValidator) checkDraft(draft entities.BeadDraft) Result {
	if strings.TrimSpace(draft.Content) == "" {
		return Reject(ReasonBeadContentRequired)
	}
	if utf8.RuneCountInString(draft.Content) > v.cfg.MaxContentLength {
		return Reject(ReasonBeadContentTooLong)
	}
	if draft.Complexity < v.cfg.MinComplexity || draft.Complexity > v.cfg.MaxComplexity {
		return Reject(ReasonComplexityOutOfRange)
	}
	return Accept()
}

func (v *MoveValidator) checkCast(p entities.CastPayload, state *aggregates.Match) Result {
	if r := v.checkDraft(p.Bead); !r.OK {
		return r
	}
	if p.Bead.Modality != valueobjects.ModalityText {
		return Reject(ReasonCastRequiresText)
	}
	return v.checkTwistModality(p.Bead.Modality, state)
}

func (v *MoveValidator) checkMirror(p entities.MirrorPayload, state *aggregates.Match) Result {
	if r := v.checkDraft(p.Bead); !r.OK {
		return r
	}
	target, ok := state.Bead(p.TargetID)
	if !ok {
		return Reject(ReasonMirrorTargetMissing)
	}
	if target.Modality() == p.Bead.Modality {
		return Reject(ReasonMirrorSameModality)
	}
	return v.checkTwistModality(p.Bead.Modality, state)
}

func (v *MoveValidator) checkLink(move *entities.Move, p entities.LinkPayload, state *aggregates.Match) Result {
	if p.From == p.To {
		return Reject(ReasonEndpointsEqual)
	}
	if _, ok := state.Bead(p.From); !ok {
		return Reject(ReasonEndpointsMissing)
	}
	if _, ok := state.Bead(p.To); !ok {
		return Reject(ReasonEndpointsMissing)
	}

	label, _ := move.Relation()
	if fixed, ok := entities.RelationFor(move.Type()); ok && label != fixed {
		return Reject(fmt.Sprintf("%s requires relation %s", titleCase(string(move.Type())), fixed))
	}

	sentences := SplitSentences(p.Justification)
	if len(sentences) < v.cfg.MinJustificationSentences {
		return Reject(ReasonJustificationShort)
	}

	if twist := state.Twist(); twist != nil {
		if required := twist.Effect.RequiredRelation; required != "" && label != required {
			return Reject(fmt.Sprintf("Twist requires relation %s", required))
		}
		if limit := twist.Effect.JustificationLimit; limit > 0 && utf8.RuneCountInString(p.Justification) > limit {
			return Reject(ReasonJustificationCapped)
		}
	}
	return Accept()
}

func (v *MoveValidator) checkPrune(p entities.PrunePayload, state *aggregates.Match) Result {
	hasBead := p.BeadID != ""
	hasEdge := p.EdgeID != ""
	if hasBead == hasEdge {
		return Reject(ReasonPruneOneTarget)
	}
	if hasBead {
		if _, ok := state.Bead(p.BeadID); !ok {
			return Reject(ReasonPruneTargetMissing)
		}
		return Accept()
	}
	if _, ok := state.Edge(p.EdgeID); !ok {
		return Reject(ReasonPruneTargetMissing)
	}
	return Accept()
}

func (v *MoveValidator) checkLift(p entities.LiftPayload, state *aggregates.Match) Result {
	for _, id := range p.BeadIDs {
		if _, ok := state.Bead(id); !ok {
			return Reject(ReasonLiftUnknownBead)
		}
	}
	return Accept()
}

func (v *MoveValidator) checkCathedral(p entities.CathedralPayload, state *aggregates.Match) Result {
	if strings.TrimSpace(p.Content) == "" {
		return Reject(ReasonCathedralContent)
	}
	for _, id := range p.References {
		if _, ok := state.Bead(id); !ok {
			return Reject(ReasonCathedralReference)
		}
	}
	return Accept()
}

func (v *MoveValidator) checkTwistModality(m valueobjects.Modality, state *aggregates.Match) Result {
	if twist := state.Twist(); twist != nil && !twist.AllowsModality(m) {
		return Reject(ReasonTwistModality)
	}
	return Accept()
}

// SplitSentences splits text on sentence terminators, trimming whitespace
// and dropping empties
func SplitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	out := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
