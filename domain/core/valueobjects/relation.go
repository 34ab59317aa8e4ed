package valueobjects

import pkgerrors "beadloom/pkg/errors"

// RelationLabel classifies the claim an edge makes about its endpoints
type RelationLabel string

const (
	RelationAnalogy        RelationLabel = "analogy"
	RelationIsomorphism    RelationLabel = "isomorphism"
	RelationDuality        RelationLabel = "duality"
	RelationCausality      RelationLabel = "causality"
	RelationSymmetry       RelationLabel = "symmetry"
	RelationInverse        RelationLabel = "inverse"
	RelationProof          RelationLabel = "proof"
	RelationAntiProof      RelationLabel = "anti-proof"
	RelationMotifEcho      RelationLabel = "motif-echo"
	RelationRefutation     RelationLabel = "refutation"
	RelationGeneralization RelationLabel = "generalization"
	RelationSpecialization RelationLabel = "specialization"
)

// ParseRelationLabel validates and converts a raw string
func ParseRelationLabel(s string) (RelationLabel, error) {
	r := RelationLabel(s)
	if !r.IsValid() {
		return "", pkgerrors.NewValidationError("invalid relation label")
	}
	return r, nil
}

// IsValid checks membership in the relation set
func (r RelationLabel) IsValid() bool {
	switch r {
	case RelationAnalogy, RelationIsomorphism, RelationDuality, RelationCausality,
		RelationSymmetry, RelationInverse, RelationProof, RelationAntiProof,
		RelationMotifEcho, RelationRefutation, RelationGeneralization, RelationSpecialization:
		return true
	default:
		return false
	}
}

// String returns the wire representation
func (r RelationLabel) String() string {
	return string(r)
}
