package dashboard

import (
	"context"
	"log/slog"

	"github.com/sourcegraph/conc/pool"

	"github.com/yanqian/skinfit/internal/domain/catalog"
	"github.com/yanqian/skinfit/internal/domain/profile"
	"github.com/yanqian/skinfit/pkg/util"
)

// Service aggregates catalog and profile statistics.
type Service interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

type service struct {
	cfg    Config
	stats  CatalogStats
	repo   profile.Repository
	tally  profile.Tally
	logger *slog.Logger
	now    util.Clock
}

// NewService precomputes catalog statistics; profile figures are read per snapshot.
func NewService(cfg Config, cat *catalog.Catalog, repo profile.Repository, tally profile.Tally, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		stats:  catalogStats(cat.Entries(), cfg),
		repo:   repo,
		tally:  tally,
		logger: logger.With("component", "dashboard.service"),
		now:    util.NowUTC,
	}
}

func (s *service) Snapshot(ctx context.Context) (Snapshot, error) {
	sources := []func(context.Context) ([]profile.Count, error){
		s.repo.CountBySkinType,
		func(ctx context.Context) ([]profile.Count, error) {
			return s.tally.Top(ctx, profile.DimensionSkinType, s.cfg.TopQueries)
		},
		func(ctx context.Context) ([]profile.Count, error) {
			return s.tally.Top(ctx, profile.DimensionConcern, s.cfg.TopQueries)
		},
	}
	names := []string{"profiles_by_skin_type", "top_skin_types", "top_concerns"}

	results := make([][]profile.Count, len(sources))
	p := pool.New().WithMaxGoroutines(len(sources))
	for idx, fetch := range sources {
		p.Go(func() {
			counts, err := fetch(ctx)
			if err != nil {
				s.logger.WarnContext(ctx, "dashboard source failed", "source", names[idx], "error", err)
				counts = nil
			}
			if counts == nil {
				counts = []profile.Count{}
			}
			results[idx] = counts
		})
	}
	p.Wait()

	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Catalog:            s.stats,
		ProfilesBySkinType: results[0],
		TopSkinTypes:       results[1],
		TopConcerns:        results[2],
		GeneratedAt:        s.now(),
	}, nil
}
