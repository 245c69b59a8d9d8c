package tally

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"
	"github.com/valkey-io/valkey-go/mock"
	"go.uber.org/mock/gomock"

	"github.com/yanqian/skinfit/internal/domain/profile"
)

func TestDecodeScores(t *testing.T) {
	cases := []struct {
		name string
		arr  []valkey.ValkeyMessage
		want []profile.Count
	}{
		{
			name: "resp3 pairs",
			arr: []valkey.ValkeyMessage{
				mock.ValkeyArray(mock.ValkeyBlobString("grasa"), mock.ValkeyFloat64(3)),
				mock.ValkeyArray(mock.ValkeyBlobString("seca"), mock.ValkeyFloat64(1)),
			},
			want: []profile.Count{{Label: "grasa", Count: 3}, {Label: "seca", Count: 1}},
		},
		{
			name: "resp2 flat",
			arr: []valkey.ValkeyMessage{
				mock.ValkeyBlobString("acne"), mock.ValkeyBlobString("5"),
				mock.ValkeyBlobString("otro"), mock.ValkeyBlobString("2"),
			},
			want: []profile.Count{{Label: "acne", Count: 5}, {Label: "otro", Count: 2}},
		},
		{
			name: "resp2 dangling member",
			arr:  []valkey.ValkeyMessage{mock.ValkeyBlobString("acne"), mock.ValkeyBlobString("5"), mock.ValkeyBlobString("manchas")},
			want: []profile.Count{{Label: "acne", Count: 5}},
		},
		{
			name: "empty",
			want: []profile.Count{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeScores(tc.arr)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeScoresRejectsBadScore(t *testing.T) {
	_, err := decodeScores([]valkey.ValkeyMessage{mock.ValkeyBlobString("acne"), mock.ValkeyBlobString("lots")})
	require.Error(t, err)

	_, err = decodeScores([]valkey.ValkeyMessage{
		mock.ValkeyArray(mock.ValkeyInt64(1), mock.ValkeyFloat64(2)),
	})
	require.Error(t, err)
}

func TestValkeyTallyCommands(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	tally := NewValkeyTally(client, "")

	client.EXPECT().
		Do(ctx, mock.Match("ZINCRBY", "skinfit:tally:skin_type", "1", "grasa")).
		Return(mock.Result(mock.ValkeyFloat64(1)))
	require.NoError(t, tally.Increment(ctx, profile.DimensionSkinType, "grasa"))
	require.NoError(t, tally.Increment(ctx, profile.DimensionSkinType, ""))

	client.EXPECT().
		Do(ctx, mock.Match("ZREVRANGE", "skinfit:tally:concern", "0", "1", "WITHSCORES")).
		Return(mock.Result(mock.ValkeyArray(
			mock.ValkeyArray(mock.ValkeyBlobString("acne"), mock.ValkeyFloat64(4)),
			mock.ValkeyArray(mock.ValkeyBlobString("arrugas"), mock.ValkeyFloat64(2)),
		)))
	top, err := tally.Top(ctx, profile.DimensionConcern, 2)
	require.NoError(t, err)
	require.Equal(t, []profile.Count{{Label: "acne", Count: 4}, {Label: "arrugas", Count: 2}}, top)
}

func TestValkeyTallyTopMissingKey(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	tally := NewValkeyTally(client, "app")

	client.EXPECT().
		Do(ctx, mock.Match("ZREVRANGE", "app:tally:concern", "0", "9", "WITHSCORES")).
		Return(mock.Result(mock.ValkeyNil()))
	top, err := tally.Top(ctx, profile.DimensionConcern, 0)
	require.NoError(t, err)
	require.Empty(t, top)

	client.EXPECT().
		Do(ctx, mock.Match("ZINCRBY", "app:tally:concern", "1", "acne")).
		Return(mock.ErrorResult(errors.New("connection refused")))
	require.Error(t, tally.Increment(ctx, profile.DimensionConcern, "acne"))
}
