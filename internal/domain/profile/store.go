package profile

import "context"

// Repository persists submitted profiles.
type Repository interface {
	Create(ctx context.Context, p Profile) (Profile, error)
	CountBySkinType(ctx context.Context) ([]Count, error)
}

// Dimension names a popularity counter family.
type Dimension string

const (
	DimensionSkinType Dimension = "skin_type"
	DimensionConcern  Dimension = "concern"
)

// Count is a label with its number of occurrences.
type Count struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// Tally counts how often skin types and concerns are requested.
type Tally interface {
	Increment(ctx context.Context, dim Dimension, label string) error
	Top(ctx context.Context, dim Dimension, limit int) ([]Count, error)
}
