package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yanqian/skinfit/internal/domain/profile"
	"github.com/yanqian/skinfit/internal/domain/recommend"
	"github.com/yanqian/skinfit/internal/domain/routine"
	apperrors "github.com/yanqian/skinfit/pkg/errors"
	"github.com/yanqian/skinfit/pkg/util"
)

// Service turns skin profiles into routines and product picks.
type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (Submission, error)
	Preview(ctx context.Context, req SubmitRequest) (Submission, error)
	Recommend(ctx context.Context, q recommend.Query) (Recommendations, error)
}

// Recommender selects catalog products. *recommend.Engine implements it.
type Recommender interface {
	Recommend(ctx context.Context, q recommend.Query) []recommend.Product
	BindProducts(ctx context.Context, r routine.Routine, skinType, concern string) []recommend.Product
}

type service struct {
	cfg    Config
	repo   profile.Repository
	tally  profile.Tally
	engine Recommender
	logger *slog.Logger
	now    util.Clock
}

// NewService wires up the advisor domain.
func NewService(cfg Config, repo profile.Repository, tally profile.Tally, engine Recommender, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		repo:   repo,
		tally:  tally,
		engine: engine,
		logger: logger.With("component", "advisor.service"),
		now:    util.NowUTC,
	}
}

func (s *service) Submit(ctx context.Context, req SubmitRequest) (Submission, error) {
	p, err := s.validate(req)
	if err != nil {
		return Submission{}, err
	}
	p.CreatedAt = s.now()

	saved, err := s.repo.Create(ctx, p)
	if err != nil {
		s.logger.ErrorContext(ctx, "profile insert failed", "skin_type", p.SkinType, "error", err)
		return Submission{}, apperrors.Wrap(apperrors.CodeStorage, "could not save profile", err)
	}

	out := s.build(ctx, saved)
	s.record(ctx, saved)
	s.logger.InfoContext(ctx, "profile submitted",
		"profile_id", saved.ID,
		"skin_type", saved.SkinType,
		"conditions", profile.JoinConditions(saved.Conditions),
		"frequency", saved.Frequency,
		"steps", len(out.Routine.Steps),
		"products", len(out.Products),
	)
	return out, nil
}

func (s *service) Preview(ctx context.Context, req SubmitRequest) (Submission, error) {
	p, err := s.validate(req)
	if err != nil {
		return Submission{}, err
	}
	return s.build(ctx, p), nil
}

func (s *service) Recommend(ctx context.Context, q recommend.Query) (Recommendations, error) {
	q.SkinType = strings.TrimSpace(q.SkinType)
	q.Concern = strings.ToLower(strings.TrimSpace(q.Concern))
	if q.SkinType == "" {
		return Recommendations{}, apperrors.Wrap(apperrors.CodeInvalidInput, "skinType is required", nil)
	}
	if q.Limit < 0 {
		return Recommendations{}, apperrors.Wrap(apperrors.CodeInvalidInput, "limit must not be negative", nil)
	}
	if s.cfg.MaxLimit > 0 && q.Limit > s.cfg.MaxLimit {
		q.Limit = s.cfg.MaxLimit
	}

	products := s.engine.Recommend(ctx, q)
	out := Recommendations{Products: products}
	if len(products) == 0 {
		out.Warnings = append(out.Warnings, warnNoProducts)
	}

	if st, ok := profile.ParseSkinType(q.SkinType); ok {
		s.increment(ctx, profile.DimensionSkinType, string(st))
	}
	if q.Concern != "" {
		s.increment(ctx, profile.DimensionConcern, string(tallyConcern(q.Concern)))
	}
	return out, nil
}

func (s *service) validate(req SubmitRequest) (profile.Profile, error) {
	name := strings.Join(strings.Fields(req.Name), " ")
	if name == "" {
		return profile.Profile{}, apperrors.Wrap(apperrors.CodeInvalidInput, "name is required", nil)
	}
	if req.Age < s.cfg.MinAge || req.Age > s.cfg.MaxAge {
		return profile.Profile{}, apperrors.Wrap(apperrors.CodeInvalidInput,
			fmt.Sprintf("age must be between %d and %d", s.cfg.MinAge, s.cfg.MaxAge), nil)
	}
	st, ok := profile.ParseSkinType(req.SkinType)
	if !ok {
		return profile.Profile{}, apperrors.Wrap(apperrors.CodeInvalidInput,
			fmt.Sprintf("unknown skin type %q", req.SkinType), nil)
	}
	return profile.Profile{
		Name:       name,
		Age:        req.Age,
		SkinType:   st,
		Conditions: profile.NormalizeConditions(req.Conditions),
		Frequency:  profile.NormalizeFrequency(req.Frequency),
	}, nil
}

func (s *service) build(ctx context.Context, p profile.Profile) Submission {
	r := routine.Generate(p)
	concern := recommend.PrimaryConcern(p.Conditions)
	products := s.engine.BindProducts(ctx, r, string(p.SkinType), string(concern))

	out := Submission{Profile: p, Routine: r, Products: products}
	if len(products) == 0 {
		out.Warnings = append(out.Warnings, warnNoRoutineProducts)
	}
	return out
}

func (s *service) record(ctx context.Context, p profile.Profile) {
	s.increment(ctx, profile.DimensionSkinType, string(p.SkinType))
	seen := make(map[profile.Concern]bool, len(p.Conditions))
	for _, c := range p.Conditions {
		label := tallyConcern(string(c))
		if seen[label] {
			continue
		}
		seen[label] = true
		s.increment(ctx, profile.DimensionConcern, string(label))
	}
}

// tallyConcern keeps the concern key space bounded: free-text labels are
// counted as "otro".
func tallyConcern(raw string) profile.Concern {
	if c, ok := profile.ParseConcern(raw); ok {
		return c
	}
	return profile.ConcernOther
}

func (s *service) increment(ctx context.Context, dim profile.Dimension, label string) {
	if s.tally == nil {
		return
	}
	if err := s.tally.Increment(ctx, dim, label); err != nil {
		s.logger.WarnContext(ctx, "tally update failed", "dimension", dim, "label", label, "error", err)
	}
}

var _ Recommender = (*recommend.Engine)(nil)
