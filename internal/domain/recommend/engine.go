package recommend

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/yanqian/skinfit/internal/domain/catalog"
	"github.com/yanqian/skinfit/internal/domain/routine"
)

// Engine filters the catalog for a skin type, concern and category.
// It is safe for concurrent use: the catalog snapshot is never mutated.
type Engine struct {
	entries []catalog.Entry
	cfg     Config
	logger  *slog.Logger
	perm    func(n int) []int
}

// Option customizes an Engine.
type Option func(*Engine)

// WithPermutation replaces the random permutation used for sampling.
func WithPermutation(perm func(n int) []int) Option {
	return func(e *Engine) {
		e.perm = perm
	}
}

// NewEngine builds an engine over an immutable catalog.
func NewEngine(cat *catalog.Catalog, cfg Config, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		entries: cat.Entries(),
		cfg:     cfg,
		logger:  logger.With("component", "recommend.engine"),
		perm:    rand.Perm,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CatalogSize reports how many products the engine can draw from.
func (e *Engine) CatalogSize() int {
	return len(e.entries)
}

// Recommend returns up to q.Limit products. It never fails: problems are
// logged and surface as an empty list.
func (e *Engine) Recommend(ctx context.Context, q Query) (out []Product) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.ErrorContext(ctx, "recommendation failed", "panic", r, "skin_type", q.SkinType, "concern", q.Concern)
			out = []Product{}
		}
	}()

	if len(e.entries) == 0 {
		e.logger.WarnContext(ctx, "catalog is empty, no recommendations available")
		return []Product{}
	}
	if strings.TrimSpace(q.SkinType) == "" {
		e.logger.WarnContext(ctx, "skin type missing, no recommendations generated")
		return []Product{}
	}

	rows := e.sample(e.candidates(ctx, q), q.Limit)
	out = make([]Product, 0, len(rows))
	for _, i := range rows {
		out = append(out, e.toProduct(e.entries[i]))
	}
	e.logger.DebugContext(ctx, "recommendations generated", "skin_type", q.SkinType, "concern", q.Concern, "category", q.Category, "count", len(out))
	return out
}

// candidates applies the filter ladder and returns catalog row indexes.
func (e *Engine) candidates(ctx context.Context, q Query) []int {
	all := make([]int, len(e.entries))
	for i := range all {
		all[i] = i
	}

	inCategory := all
	if q.Category != "" && q.Category != catalog.CategoryOther {
		inCategory = e.filter(all, func(entry catalog.Entry) bool {
			return entry.Category == q.Category
		})
	}

	rows := e.matchSkinTags(inCategory, tagsForSkinType(q.SkinType))
	if len(rows) == 0 {
		e.logger.DebugContext(ctx, "no skin type match, ignoring skin type", "skin_type", q.SkinType)
		rows = inCategory
	}

	if keywords := keywordsForConcern(q.Concern); len(keywords) > 0 && len(rows) > 0 {
		narrowed := e.filter(rows, func(entry catalog.Entry) bool {
			return containsAny(strings.ToLower(entry.Title), keywords)
		})
		if len(narrowed) > 0 {
			rows = narrowed
		} else {
			e.logger.DebugContext(ctx, "concern filter matched nothing, keeping previous set", "concern", q.Concern)
		}
	}

	if len(rows) == 0 {
		rows = inCategory
	}
	if len(rows) == 0 {
		e.logger.DebugContext(ctx, "category has no products, using whole catalog", "category", q.Category)
		rows = all
	}
	return rows
}

// matchSkinTags unions the rows matching each tag, keeping first occurrence order.
func (e *Engine) matchSkinTags(rows []int, tags []string) []int {
	seen := make(map[int]struct{}, len(rows))
	out := make([]int, 0, len(rows))
	for _, tag := range tags {
		for _, i := range rows {
			if _, ok := seen[i]; ok {
				continue
			}
			if strings.Contains(strings.ToLower(e.entries[i].SkinTypes), tag) {
				seen[i] = struct{}{}
				out = append(out, i)
			}
		}
	}
	return out
}

func (e *Engine) filter(rows []int, keep func(catalog.Entry) bool) []int {
	out := make([]int, 0, len(rows))
	for _, i := range rows {
		if keep(e.entries[i]) {
			out = append(out, i)
		}
	}
	return out
}

func (e *Engine) sample(rows []int, limit int) []int {
	if limit <= 0 {
		limit = e.cfg.DefaultLimit
	}
	if len(rows) <= limit {
		return rows
	}
	perm := e.perm(len(rows))
	picked := make([]int, limit)
	for i := range picked {
		picked[i] = rows[perm[i]]
	}
	return picked
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// BindProducts recommends products for every routine step and tags each with
// the step it belongs to. When no step yields anything, a single
// uncategorized recommendation is returned instead.
func (e *Engine) BindProducts(ctx context.Context, r routine.Routine, skinType, concern string) []Product {
	out := make([]Product, 0, len(r.Steps)*e.cfg.StepLimit)
	for _, step := range r.Steps {
		products := e.Recommend(ctx, Query{
			SkinType: skinType,
			Concern:  concern,
			Category: step.Category,
			Limit:    e.cfg.StepLimit,
		})
		for _, p := range products {
			p.StepName = step.Name
			p.StepOrder = step.Order
			out = append(out, p)
		}
	}
	if len(out) > 0 {
		return out
	}
	return e.Recommend(ctx, Query{
		SkinType: skinType,
		Concern:  concern,
		Limit:    e.cfg.FallbackLimit,
	})
}
