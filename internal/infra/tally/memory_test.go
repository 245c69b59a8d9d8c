package tally

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/skinfit/internal/domain/profile"
)

func TestMemoryTallyTop(t *testing.T) {
	ctx := context.Background()
	tally := NewMemoryTally()

	for _, label := range []string{"grasa", "seca", "grasa", "mixta", "seca", "grasa", ""} {
		require.NoError(t, tally.Increment(ctx, profile.DimensionSkinType, label))
	}
	require.NoError(t, tally.Increment(ctx, profile.DimensionConcern, "acne"))

	top, err := tally.Top(ctx, profile.DimensionSkinType, 2)
	require.NoError(t, err)
	require.Equal(t, []profile.Count{{Label: "grasa", Count: 3}, {Label: "seca", Count: 2}}, top)

	all, err := tally.Top(ctx, profile.DimensionSkinType, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)

	concerns, err := tally.Top(ctx, profile.DimensionConcern, 5)
	require.NoError(t, err)
	require.Equal(t, []profile.Count{{Label: "acne", Count: 1}}, concerns)
}

func TestMemoryTallyEmptyDimension(t *testing.T) {
	top, err := NewMemoryTally().Top(context.Background(), profile.DimensionConcern, 3)
	require.NoError(t, err)
	require.Empty(t, top)
}

func TestValkeyTallyKey(t *testing.T) {
	tally := NewValkeyTally(nil, "")
	require.Equal(t, "skinfit:tally:skin_type", tally.key(profile.DimensionSkinType))
}
