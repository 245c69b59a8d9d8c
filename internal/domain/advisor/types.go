package advisor

import (
	"github.com/yanqian/skinfit/internal/domain/profile"
	"github.com/yanqian/skinfit/internal/domain/recommend"
	"github.com/yanqian/skinfit/internal/domain/routine"
)

// SubmitRequest carries the raw profile form.
type SubmitRequest struct {
	Name       string
	Age        int
	SkinType   string
	Conditions []string
	Frequency  string
}

// Submission is the result of a profile submission or preview.
type Submission struct {
	Profile  profile.Profile     `json:"profile"`
	Routine  routine.Routine     `json:"routine"`
	Products []recommend.Product `json:"products"`
	Warnings []string            `json:"warnings,omitempty"`
}

// Recommendations wraps an ad-hoc product query result.
type Recommendations struct {
	Products []recommend.Product `json:"products"`
	Warnings []string            `json:"warnings,omitempty"`
}

// Config holds runtime knobs for the advisor.
type Config struct {
	MinAge   int
	MaxAge   int
	MaxLimit int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{MinAge: 1, MaxAge: 120, MaxLimit: 50}
}

const (
	warnNoRoutineProducts = "No encontramos productos para tu rutina en este momento."
	warnNoProducts        = "No hay productos disponibles para estos criterios."
)
