package recommend

import (
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/yanqian/skinfit/internal/domain/catalog"
)

const ellipsis = "..."

var productIDPattern = regexp.MustCompile(`/([A-Z0-9]{10})(?:[/?]|$)`)

func (e *Engine) toProduct(entry catalog.Entry) Product {
	return Product{
		Name:     truncateTitle(entry.Title, e.cfg.MaxTitleLength),
		Brand:    entry.Brand,
		Link:     entry.Link,
		Price:    e.formatPrice(entry.Price),
		Category: entry.Category,
		ImageURL: e.imageURL(entry.Link),
	}
}

func truncateTitle(title string, limit int) string {
	runes := []rune(title)
	if limit <= len(ellipsis) || len(runes) <= limit {
		return title
	}
	return string(runes[:limit-len(ellipsis)]) + ellipsis
}

func (e *Engine) formatPrice(amount decimal.Decimal) Price {
	if !amount.IsPositive() {
		return Price{Original: ConsultPrice, Intermediate: ConsultPrice, Display: ConsultPrice}
	}
	intermediate := amount.Mul(e.cfg.RateSourceToIntermediate)
	display := intermediate.Mul(e.cfg.RateIntermediateToDisplay)
	return Price{
		Original:     "₹" + formatAmount(amount),
		Intermediate: "US$" + formatAmount(intermediate),
		Display:      "MX$" + formatAmount(display),
	}
}

// formatAmount renders two decimals with comma grouping, e.g. 1,234.50.
// It stays exact for amounts beyond the float64 and int64 range.
func formatAmount(d decimal.Decimal) string {
	rounded := d.Round(2)
	_, cents, _ := strings.Cut(rounded.StringFixed(2), ".")
	return humanize.BigComma(rounded.BigInt()) + "." + cents
}

func (e *Engine) imageURL(link string) string {
	link = strings.TrimSpace(link)
	if link == "" || link == catalog.NoLink {
		return e.cfg.NoImageURL
	}
	match := productIDPattern.FindStringSubmatch(link)
	if match == nil {
		return e.cfg.PlaceholderImageURL
	}
	return strings.ReplaceAll(e.cfg.ImageURLTemplate, "{id}", match[1])
}
