package tally

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/skinfit/internal/domain/profile"
)

// ValkeyTally stores popularity counters in Valkey sorted sets, one per dimension.
type ValkeyTally struct {
	client valkey.Client
	prefix string
}

// NewValkeyTally constructs a tally backed by Valkey.
func NewValkeyTally(client valkey.Client, prefix string) *ValkeyTally {
	if prefix == "" {
		prefix = "skinfit"
	}
	return &ValkeyTally{client: client, prefix: prefix}
}

// Increment implements profile.Tally.
func (t *ValkeyTally) Increment(ctx context.Context, dim profile.Dimension, label string) error {
	if label == "" {
		return nil
	}
	return t.client.Do(ctx, t.client.B().Zincrby().Key(t.key(dim)).Increment(1).Member(label).Build()).Error()
}

// Top implements profile.Tally.
func (t *ValkeyTally) Top(ctx context.Context, dim profile.Dimension, limit int) ([]profile.Count, error) {
	if limit <= 0 {
		limit = 10
	}
	resp := t.client.Do(ctx, t.client.B().Zrevrange().Key(t.key(dim)).Start(0).Stop(int64(limit-1)).Withscores().Build())
	arr, err := resp.ToArray()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, err
	}
	return decodeScores(arr)
}

// decodeScores accepts both RESP3 [member, score] pairs and the flat RESP2
// layout, where scores arrive as bulk strings.
func decodeScores(arr []valkey.ValkeyMessage) ([]profile.Count, error) {
	out := make([]profile.Count, 0, len(arr))
	for i := 0; i < len(arr); {
		var (
			member string
			score  float64
			err    error
		)
		if tuple, tupleErr := arr[i].ToArray(); tupleErr == nil && len(tuple) == 2 {
			if member, err = tuple[0].ToString(); err != nil {
				return nil, err
			}
			if score, err = tuple[1].AsFloat64(); err != nil {
				return nil, err
			}
			i++
		} else {
			if i+1 >= len(arr) {
				break
			}
			if member, err = arr[i].ToString(); err != nil {
				return nil, err
			}
			if score, err = arr[i+1].AsFloat64(); err != nil {
				return nil, err
			}
			i += 2
		}
		out = append(out, profile.Count{Label: member, Count: int64(score)})
	}
	return out, nil
}

func (t *ValkeyTally) key(dim profile.Dimension) string {
	return fmt.Sprintf("%s:tally:%s", t.prefix, dim)
}

var _ profile.Tally = (*ValkeyTally)(nil)
