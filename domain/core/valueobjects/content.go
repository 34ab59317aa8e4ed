package valueobjects

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"beadloom/domain/config"
	pkgerrors "beadloom/pkg/errors"
)

// BeadContent is a value object for a bead's title and body
type BeadContent struct {
	title string
	body  string
}

// NewBeadContent creates content with validation using default configuration
func NewBeadContent(title, body string) (BeadContent, error) {
	return NewBeadContentWithConfig(title, body, config.DefaultDomainConfig())
}

// NewBeadContentWithConfig creates content with validation and configuration
func NewBeadContentWithConfig(title, body string, cfg *config.DomainConfig) (BeadContent, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	title = strings.TrimSpace(title)

	if strings.TrimSpace(body) == "" {
		return BeadContent{}, pkgerrors.NewValidationError("bead content cannot be empty")
	}

	if utf8.RuneCountInString(body) > cfg.MaxContentLength {
		return BeadContent{}, fmt.Errorf("content exceeds maximum length of %d characters", cfg.MaxContentLength)
	}

	return BeadContent{
		title: title,
		body:  body,
	}, nil
}

// Title returns the optional title
func (c BeadContent) Title() string {
	return c.title
}

// Body returns the content body
func (c BeadContent) Body() string {
	return c.body
}

// IsEmpty checks if content is empty
func (c BeadContent) IsEmpty() bool {
	return c.title == "" && c.body == ""
}

// Equals checks if two contents are equal
func (c BeadContent) Equals(other BeadContent) bool {
	return c.title == other.title && c.body == other.body
}

// WordCount returns the approximate word count
func (c BeadContent) WordCount() int {
	combined := c.title + " " + c.body
	return len(strings.Fields(combined))
}
