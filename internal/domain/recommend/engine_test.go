package recommend

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/skinfit/internal/domain/catalog"
	"github.com/yanqian/skinfit/internal/domain/profile"
	"github.com/yanqian/skinfit/internal/domain/routine"
)

func TestRecommendEmptyCatalog(t *testing.T) {
	engine := NewEngine(catalog.Empty(), DefaultConfig(), newTestLogger())

	for _, st := range []string{"grasa", "seca", "unknown", ""} {
		require.Empty(t, engine.Recommend(context.Background(), Query{SkinType: st, Concern: "acne", Limit: 6}))
	}
}

func TestRecommendBlankSkinType(t *testing.T) {
	engine := newTestEngine()
	require.Empty(t, engine.Recommend(context.Background(), Query{SkinType: "   ", Limit: 6}))
}

func TestRecommendRespectsLimit(t *testing.T) {
	engine := NewEngine(testCatalog(), DefaultConfig(), newTestLogger())
	queries := []Query{
		{SkinType: "grasa", Limit: 2},
		{SkinType: "seca", Concern: "arrugas", Limit: 1},
		{SkinType: "mixta", Category: catalog.CategorySerum, Limit: 3},
		{SkinType: "martian", Limit: 4},
		{SkinType: "normal", Category: catalog.Category("toner"), Limit: 5},
	}
	for _, q := range queries {
		for i := 0; i < 20; i++ {
			got := engine.Recommend(context.Background(), q)
			require.NotEmpty(t, got)
			require.LessOrEqual(t, len(got), q.Limit)
		}
	}
}

func TestRecommendDefaultLimit(t *testing.T) {
	engine := NewEngine(testCatalog(), DefaultConfig(), newTestLogger())
	got := engine.Recommend(context.Background(), Query{SkinType: "martian", Category: catalog.Category("toner")})
	require.Len(t, got, DefaultConfig().DefaultLimit)
}

func TestRecommendUnionsSkinTags(t *testing.T) {
	engine := newTestEngine()
	got := engine.Recommend(context.Background(), Query{SkinType: "grasa", Limit: 100})
	require.ElementsMatch(t, []string{
		"Salicylic Acid Gel Face Wash",
		"Niacinamide Oil-Free Serum for Acne",
		"Oil-Free Gel Moisturizer",
		"Sunscreen SPF 50 Matte",
		"Clay Mask",
	}, names(got))
}

func TestRecommendCategoryFilter(t *testing.T) {
	engine := NewEngine(testCatalog(), DefaultConfig(), newTestLogger())
	for _, cat := range []catalog.Category{catalog.CategorySerum, catalog.CategoryCleanser, catalog.CategorySunscreen} {
		for i := 0; i < 10; i++ {
			got := engine.Recommend(context.Background(), Query{SkinType: "mixta", Category: cat, Limit: 2})
			require.NotEmpty(t, got)
			for _, p := range got {
				require.Equal(t, cat, p.Category)
			}
		}
	}
}

func TestRecommendOtherCategoryDisablesFilter(t *testing.T) {
	engine := newTestEngine()
	got := engine.Recommend(context.Background(), Query{SkinType: "grasa", Category: catalog.CategoryOther, Limit: 100})
	require.Len(t, got, 5)
}

func TestRecommendFallsBackToCategoryWhenSkinTypeMisses(t *testing.T) {
	engine := newTestEngine()
	got := engine.Recommend(context.Background(), Query{SkinType: "sensible", Category: catalog.CategoryCleanser, Limit: 100})
	require.ElementsMatch(t, []string{"Salicylic Acid Gel Face Wash", "Hydrating Cream Cleanser"}, names(got))
}

func TestRecommendUnknownSkinTypeUsesCatchAll(t *testing.T) {
	engine := newTestEngine()
	got := engine.Recommend(context.Background(), Query{SkinType: "martian", Limit: 100})
	require.ElementsMatch(t, []string{"Vitamin C Brightening Serum", "Gentle Exfoliating Scrub"}, names(got))
}

func TestRecommendConcernNarrowsTitles(t *testing.T) {
	engine := newTestEngine()
	got := engine.Recommend(context.Background(), Query{SkinType: "grasa", Concern: "Acne", Limit: 100})
	require.ElementsMatch(t, []string{
		"Salicylic Acid Gel Face Wash",
		"Niacinamide Oil-Free Serum for Acne",
		"Oil-Free Gel Moisturizer",
	}, names(got))
}

func TestRecommendConcernNeverEmptiesResults(t *testing.T) {
	engine := newTestEngine()
	got := engine.Recommend(context.Background(), Query{SkinType: "grasa", Concern: "arrugas", Limit: 100})
	require.Len(t, got, 5)

	unknownConcern := engine.Recommend(context.Background(), Query{SkinType: "grasa", Concern: "poros", Limit: 100})
	require.Len(t, unknownConcern, 5)
}

func TestRecommendUnknownCategoryUsesWholeCatalog(t *testing.T) {
	engine := newTestEngine()
	got := engine.Recommend(context.Background(), Query{SkinType: "seca", Category: catalog.Category("toner"), Limit: 100})
	require.Len(t, got, testCatalog().Len())
}

func TestRecommendSamplesWithInjectedPermutation(t *testing.T) {
	reverse := func(n int) []int {
		p := make([]int, n)
		for i := range p {
			p[i] = n - 1 - i
		}
		return p
	}
	engine := NewEngine(testCatalog(), DefaultConfig(), newTestLogger(), WithPermutation(reverse))

	got := engine.Recommend(context.Background(), Query{SkinType: "grasa", Limit: 2})
	require.Equal(t, []string{"Clay Mask", "Sunscreen SPF 50 Matte"}, names(got))
}

func TestRecommendRecoversFromFailure(t *testing.T) {
	engine := NewEngine(testCatalog(), DefaultConfig(), newTestLogger(), WithPermutation(func(int) []int {
		panic("rng exploded")
	}))

	var got []Product
	require.NotPanics(t, func() {
		got = engine.Recommend(context.Background(), Query{SkinType: "grasa", Limit: 1})
	})
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestBindProductsTagsSteps(t *testing.T) {
	engine := newTestEngine()
	r := routine.Generate(profile.Profile{
		SkinType:   profile.SkinOily,
		Conditions: []profile.Concern{profile.ConcernAcne},
		Frequency:  profile.FrequencyAdvanced,
	})

	got := engine.BindProducts(context.Background(), r, "grasa", "acne")
	require.NotEmpty(t, got)

	perStep := map[int]int{}
	for _, p := range got {
		require.NotEmpty(t, p.StepName)
		step := r.Steps[p.StepOrder-1]
		require.Equal(t, step.Name, p.StepName)
		require.Equal(t, step.Category, p.Category)
		perStep[p.StepOrder]++
	}
	for order, count := range perStep {
		require.LessOrEqual(t, count, DefaultConfig().StepLimit, "step %d", order)
	}
	require.Len(t, perStep, len(r.Steps))
}

func TestBindProductsFallsBackWhenNoStepMatches(t *testing.T) {
	engine := newTestEngine()

	got := engine.BindProducts(context.Background(), routine.Routine{}, "grasa", "")
	require.Len(t, got, 5)
	for _, p := range got {
		require.Empty(t, p.StepName)
		require.Zero(t, p.StepOrder)
	}
}

func TestBindProductsEmptyCatalog(t *testing.T) {
	engine := NewEngine(catalog.Empty(), DefaultConfig(), newTestLogger())
	r := routine.Generate(profile.Profile{SkinType: profile.SkinDry})
	require.Empty(t, engine.BindProducts(context.Background(), r, "seca", ""))
}

func TestPrimaryConcern(t *testing.T) {
	require.Equal(t, profile.ConcernSpots, PrimaryConcern([]profile.Concern{"poros", profile.ConcernSpots}))
	require.Equal(t, profile.Concern("poros"), PrimaryConcern([]profile.Concern{"poros"}))
	require.Equal(t, profile.Concern(""), PrimaryConcern(nil))
}

func newTestEngine() *Engine {
	identity := func(n int) []int {
		p := make([]int, n)
		for i := range p {
			p[i] = i
		}
		return p
	}
	return NewEngine(testCatalog(), DefaultConfig(), newTestLogger(), WithPermutation(identity))
}

func testCatalog() *catalog.Catalog {
	price := decimal.RequireFromString
	return catalog.New([]catalog.Entry{
		{Title: "Salicylic Acid Gel Face Wash", Brand: "Minimalist", SkinTypes: "oily, acne prone", Price: price("450"), Link: "https://www.amazon.in/dp/B07ABCDEF1/", Category: catalog.CategoryCleanser},
		{Title: "Hydrating Cream Cleanser", Brand: "CeraVe", SkinTypes: "dry, normal", Price: price("1200"), Link: catalog.NoLink, Category: catalog.CategoryCleanser},
		{Title: "Vitamin C Brightening Serum", Brand: "Minimalist", SkinTypes: "all", Price: price("599"), Link: "https://shop.example.com/serum", Category: catalog.CategorySerum},
		{Title: "Niacinamide Oil-Free Serum for Acne", Brand: "The Ordinary", SkinTypes: "oily", Price: decimal.Zero, Link: catalog.NoLink, Category: catalog.CategorySerum},
		{Title: "Retinol Anti-Aging Night Cream", Brand: "Olay", SkinTypes: "normal, dry", Price: price("899"), Link: catalog.NoLink, Category: catalog.CategoryMoisturizer},
		{Title: "Oil-Free Gel Moisturizer", Brand: "Neutrogena", SkinTypes: "oily", Price: price("650"), Link: catalog.NoLink, Category: catalog.CategoryMoisturizer},
		{Title: "Ceramide Barrier Cream", Brand: "CeraVe", SkinTypes: "very dry", Price: price("1450"), Link: catalog.NoLink, Category: catalog.CategoryMoisturizer},
		{Title: "Sunscreen SPF 50 Matte", Brand: "La Roche-Posay", SkinTypes: "oily, combination", Price: price("1999"), Link: catalog.NoLink, Category: catalog.CategorySunscreen},
		{Title: "Mineral Sunscreen SPF 30", Brand: "Avene", SkinTypes: "sensitive", Price: price("1750"), Link: catalog.NoLink, Category: catalog.CategorySunscreen},
		{Title: "Clay Mask", Brand: "Innisfree", SkinTypes: "oily", Price: price("950"), Link: catalog.NoLink, Category: catalog.CategoryMask},
		{Title: "Gentle Exfoliating Scrub", Brand: "St. Ives", SkinTypes: "all", Price: price("300"), Link: catalog.NoLink, Category: catalog.CategoryExfoliant},
	})
}

func names(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
