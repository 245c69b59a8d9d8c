package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yanqian/skinfit/internal/domain/profile"
)

// Config holds runtime knobs for the dashboard.
type Config struct {
	PriceBins  int
	TopBrands  int
	TopQueries int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{PriceBins: 15, TopBrands: 6, TopQueries: 5}
}

// PriceBin is one histogram bucket. To is inclusive only for the last bin.
type PriceBin struct {
	From  decimal.Decimal `json:"from"`
	To    decimal.Decimal `json:"to"`
	Count int             `json:"count"`
}

// CatalogStats summarises the loaded catalog. It never changes after startup.
type CatalogStats struct {
	TotalProducts  int             `json:"totalProducts"`
	UniqueBrands   int             `json:"uniqueBrands"`
	PricedProducts int             `json:"pricedProducts"`
	PriceHistogram []PriceBin      `json:"priceHistogram"`
	TopBrands      []profile.Count `json:"topBrands"`
	Categories     []profile.Count `json:"categories"`
}

// Snapshot is everything the dashboard renders.
type Snapshot struct {
	Catalog            CatalogStats    `json:"catalog"`
	ProfilesBySkinType []profile.Count `json:"profilesBySkinType"`
	TopSkinTypes       []profile.Count `json:"topSkinTypes"`
	TopConcerns        []profile.Count `json:"topConcerns"`
	GeneratedAt        time.Time       `json:"generatedAt"`
}
