package valueobjects

import pkgerrors "beadloom/pkg/errors"

// Modality represents the medium of a bead
type Modality string

const (
	ModalityText  Modality = "text"
	ModalityImage Modality = "image"
	ModalityAudio Modality = "audio"
	ModalityMath  Modality = "math"
	ModalityCode  Modality = "code"
	ModalityData  Modality = "data"
)

// AllModalities lists every valid modality in declaration order
func AllModalities() []Modality {
	return []Modality{
		ModalityText,
		ModalityImage,
		ModalityAudio,
		ModalityMath,
		ModalityCode,
		ModalityData,
	}
}

// ParseModality validates and converts a raw string
func ParseModality(s string) (Modality, error) {
	m := Modality(s)
	if !m.IsValid() {
		return "", pkgerrors.NewValidationError("invalid modality")
	}
	return m, nil
}

// IsValid checks membership in the modality set
func (m Modality) IsValid() bool {
	switch m {
	case ModalityText, ModalityImage, ModalityAudio, ModalityMath, ModalityCode, ModalityData:
		return true
	default:
		return false
	}
}

// String returns the wire representation
func (m Modality) String() string {
	return string(m)
}
