package catalog

import (
	"github.com/go-playground/validator/v10"
)

// Manifest is the wire format produced by the upload pipeline.
//
// The photos and periods arrays are both required; a manifest missing
// either is rejected rather than partially adopted. The generation token
// identifies the exact content version; older pipelines only stamp
// generatedAt, which then doubles as the token.
type Manifest struct {
	Photos          []Photo  `json:"photos" validate:"required"`
	Periods         []Period `json:"periods" validate:"required"`
	GenerationToken string   `json:"generationToken"`
	GeneratedAt     string   `json:"generatedAt"`
}

// manifestProbe decodes only the fields needed for revalidation.
type manifestProbe struct {
	GenerationToken string `json:"generationToken"`
	GeneratedAt     string `json:"generatedAt"`
}

func (p *manifestProbe) token() string {
	if p.GenerationToken != "" {
		return p.GenerationToken
	}
	return p.GeneratedAt
}

func (m *Manifest) token() string {
	if m.GenerationToken != "" {
		return m.GenerationToken
	}
	return m.GeneratedAt
}

var validate = validator.New()

// Validate checks the manifest's structure.
// Returns a ValidationError describing the first problem found.
func (m *Manifest) Validate() error {
	if err := validate.Struct(m); err != nil {
		return &ValidationError{Reason: "missing required fields", Err: err}
	}
	if m.token() == "" {
		return &ValidationError{Reason: "missing generation token"}
	}
	for _, p := range m.Photos {
		if p.ID == "" || p.MediaRef == "" {
			return &ValidationError{Reason: "photo missing id or media reference"}
		}
		if p.Month < 1 || p.Month > 12 {
			return &ValidationError{Reason: "photo month out of range"}
		}
	}
	return nil
}
