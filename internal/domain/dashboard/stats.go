package dashboard

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/yanqian/skinfit/internal/domain/catalog"
	"github.com/yanqian/skinfit/internal/domain/profile"
)

func catalogStats(entries []catalog.Entry, cfg Config) CatalogStats {
	brands := map[string]int64{}
	perCategory := map[catalog.Category]int64{}
	prices := make([]decimal.Decimal, 0, len(entries))
	for _, e := range entries {
		brands[e.Brand]++
		perCategory[e.Category]++
		if e.HasPrice() {
			prices = append(prices, e.Price)
		}
	}

	categories := make([]profile.Count, 0, len(catalog.Categories()))
	for _, c := range catalog.Categories() {
		categories = append(categories, profile.Count{Label: string(c), Count: perCategory[c]})
	}

	return CatalogStats{
		TotalProducts:  len(entries),
		UniqueBrands:   len(brands),
		PricedProducts: len(prices),
		PriceHistogram: histogram(prices, cfg.PriceBins),
		TopBrands:      topCounts(brands, cfg.TopBrands),
		Categories:     categories,
	}
}

// histogram splits [min, max] into equal-width bins. Identical prices
// collapse into a single bin.
func histogram(prices []decimal.Decimal, bins int) []PriceBin {
	if len(prices) == 0 || bins <= 0 {
		return []PriceBin{}
	}
	lo, hi := decimal.Min(prices[0], prices[1:]...), decimal.Max(prices[0], prices[1:]...)
	if lo.Equal(hi) {
		return []PriceBin{{From: lo, To: hi, Count: len(prices)}}
	}

	width := hi.Sub(lo).Div(decimal.NewFromInt(int64(bins)))
	out := make([]PriceBin, bins)
	for i := range out {
		out[i].From = lo.Add(width.Mul(decimal.NewFromInt(int64(i)))).Round(2)
		out[i].To = lo.Add(width.Mul(decimal.NewFromInt(int64(i + 1)))).Round(2)
	}
	out[bins-1].To = hi

	for _, p := range prices {
		idx := int(p.Sub(lo).Div(width).IntPart())
		idx = min(max(idx, 0), bins-1)
		out[idx].Count++
	}
	return out
}

// topCounts orders by count descending, then label, and keeps the first limit.
func topCounts(counts map[string]int64, limit int) []profile.Count {
	out := make([]profile.Count, 0, len(counts))
	for label, n := range counts {
		out = append(out, profile.Count{Label: label, Count: n})
	}
	slices.SortFunc(out, func(a, b profile.Count) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
