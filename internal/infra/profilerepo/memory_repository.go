package profilerepo

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/yanqian/skinfit/internal/domain/profile"
	"github.com/yanqian/skinfit/pkg/util"
)

// MemoryRepository keeps profiles in process memory for tests/dev.
type MemoryRepository struct {
	mu       sync.RWMutex
	profiles []profile.Profile
	seq      int64
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Create stores the profile and assigns an id.
func (r *MemoryRepository) Create(_ context.Context, p profile.Profile) (profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	p.ID = r.seq
	if p.CreatedAt.IsZero() {
		p.CreatedAt = util.NowUTC()
	}
	p.Conditions = slices.Clone(p.Conditions)
	r.profiles = append(r.profiles, p)
	return p, nil
}

// CountBySkinType aggregates stored profiles per skin type.
func (r *MemoryRepository) CountBySkinType(_ context.Context) ([]profile.Count, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := map[string]int64{}
	for _, p := range r.profiles {
		counts[string(p.SkinType)]++
	}
	out := make([]profile.Count, 0, len(counts))
	for label, n := range counts {
		out = append(out, profile.Count{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Label < out[j].Label
		}
		return out[i].Count > out[j].Count
	})
	return out, nil
}

var _ profile.Repository = (*MemoryRepository)(nil)
