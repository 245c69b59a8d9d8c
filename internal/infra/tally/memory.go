package tally

import (
	"context"
	"sort"
	"sync"

	"github.com/yanqian/skinfit/internal/domain/profile"
)

// MemoryTally keeps popularity counters in process memory for tests/dev.
type MemoryTally struct {
	mu     sync.RWMutex
	counts map[profile.Dimension]map[string]int64
}

// NewMemoryTally constructs an empty tally.
func NewMemoryTally() *MemoryTally {
	return &MemoryTally{counts: make(map[profile.Dimension]map[string]int64)}
}

// Increment implements profile.Tally.
func (t *MemoryTally) Increment(_ context.Context, dim profile.Dimension, label string) error {
	if label == "" {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	bucket, ok := t.counts[dim]
	if !ok {
		bucket = make(map[string]int64)
		t.counts[dim] = bucket
	}
	bucket[label]++
	return nil
}

// Top implements profile.Tally.
func (t *MemoryTally) Top(_ context.Context, dim profile.Dimension, limit int) ([]profile.Count, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	bucket := t.counts[dim]
	if limit <= 0 {
		limit = len(bucket)
	}
	items := make([]profile.Count, 0, len(bucket))
	for label, count := range bucket {
		items = append(items, profile.Count{Label: label, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Label < items[j].Label
		}
		return items[i].Count > items[j].Count
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

var _ profile.Tally = (*MemoryTally)(nil)
