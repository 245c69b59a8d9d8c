package recommend

import (
	"github.com/shopspring/decimal"

	"github.com/yanqian/skinfit/internal/domain/catalog"
)

// Config holds the engine knobs. Rates are multiplicative: source price ×
// RateSourceToIntermediate gives the intermediate currency, which ×
// RateIntermediateToDisplay gives the display currency.
type Config struct {
	DefaultLimit              int
	StepLimit                 int
	FallbackLimit             int
	MaxTitleLength            int
	RateSourceToIntermediate  decimal.Decimal
	RateIntermediateToDisplay decimal.Decimal
	ImageURLTemplate          string
	PlaceholderImageURL       string
	NoImageURL                string
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		DefaultLimit:              6,
		StepLimit:                 2,
		FallbackLimit:             6,
		MaxTitleLength:            80,
		RateSourceToIntermediate:  decimal.RequireFromString("0.012"),
		RateIntermediateToDisplay: decimal.RequireFromString("17.5"),
		ImageURLTemplate:          "https://images-na.ssl-images-amazon.com/images/P/{id}.01.LZZZZZZZ.jpg",
		PlaceholderImageURL:       "https://placehold.co/300x300?text=Producto",
		NoImageURL:                "https://placehold.co/300x300?text=Sin+imagen",
	}
}

// ConsultPrice replaces every price field when a product has no usable price.
const ConsultPrice = "Consultar precio"

// Query describes one recommendation request.
type Query struct {
	SkinType string
	Concern  string
	Category catalog.Category
	Limit    int
}

// Price is a product price in source, intermediate and display currencies.
type Price struct {
	Original     string `json:"original"`
	Intermediate string `json:"usd"`
	Display      string `json:"local"`
}

// Product is the display projection of a catalog entry.
type Product struct {
	Name      string           `json:"productName"`
	Brand     string           `json:"brand"`
	Link      string           `json:"link"`
	Price     Price            `json:"price"`
	Category  catalog.Category `json:"category"`
	ImageURL  string           `json:"imageUrl"`
	StepName  string           `json:"stepName,omitempty"`
	StepOrder int              `json:"stepOrder,omitempty"`
}
