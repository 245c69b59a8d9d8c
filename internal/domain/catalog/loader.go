package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// maxPriceExponent bounds scientific notation so "1e999999" cannot blow up formatting.
const maxPriceExponent = 18

// ErrEmptySource is returned when the table has no header or no data rows.
var ErrEmptySource = errors.New("catalog source is empty")

type column int

const (
	colTitle column = iota
	colBrand
	colSkinTypes
	colPrice
	colLink
)

var columnAliases = map[string]column{
	"title":          colTitle,
	"product_name":   colTitle,
	"name":           colTitle,
	"brand":          colBrand,
	"skin_type":      colSkinTypes,
	"skin_types":     colSkinTypes,
	"skin_type_tags": colSkinTypes,
	"skintype":       colSkinTypes,
	"price":          colPrice,
	"link":           colLink,
	"url":            colLink,
}

// Load reads and normalizes the catalog. It never fails: an unavailable,
// empty or malformed source is logged and yields an empty catalog.
func Load(ctx context.Context, src Source, logger *slog.Logger) *Catalog {
	if src == nil {
		logger.Warn("no catalog source configured, recommendations disabled", "component", "catalog.loader")
		return Empty()
	}
	log := logger.With("component", "catalog.loader", "source", src.Describe())

	rc, err := src.Open(ctx)
	if err != nil {
		log.Error("catalog source unavailable, recommendations disabled", "error", err)
		return Empty()
	}
	defer rc.Close()

	cat, err := Parse(rc)
	if err != nil {
		log.Error("catalog could not be parsed, recommendations disabled", "error", err)
		return Empty()
	}
	log.Info("catalog loaded", "products", cat.Len())
	return cat
}

// Parse reads a CSV table with a header row. Recognised columns may appear in
// any order and any of them may be missing; missing values get defaults.
func Parse(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptySource
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := indexColumns(header)

	entries := make([]Entry, 0, 256)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		if isBlankRecord(record) {
			continue
		}
		entries = append(entries, normalizeRecord(record, index))
	}
	if len(entries) == 0 {
		return nil, ErrEmptySource
	}
	return &Catalog{entries: entries}, nil
}

func indexColumns(header []string) map[column]int {
	index := make(map[column]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
		col, ok := columnAliases[key]
		if !ok {
			continue
		}
		if _, seen := index[col]; !seen {
			index[col] = i
		}
	}
	return index
}

func normalizeRecord(record []string, index map[column]int) Entry {
	field := func(col column) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return cleanText(record[i])
	}

	entry := Entry{
		Title:     orDefault(field(colTitle), DefaultTitle),
		Brand:     orDefault(field(colBrand), DefaultBrand),
		SkinTypes: strings.ToLower(orDefault(field(colSkinTypes), DefaultSkinTypes)),
		Price:     parsePrice(field(colPrice)),
		Link:      orDefault(field(colLink), NoLink),
	}
	entry.Category = InferCategory(entry.Title)
	return entry
}

func cleanText(raw string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(raw, `"`, "")), " ")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// parsePrice accepts plain numbers ("599", "1e3") as-is, then falls back to
// keeping digits, signs and separators so "₹1,299.00", "1.299,00" and "Rs. 499"
// all parse. Anything unparseable or negative becomes zero.
func parsePrice(raw string) decimal.Decimal {
	if price, err := decimal.NewFromString(strings.TrimSpace(raw)); err == nil {
		return nonNegative(price)
	}
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '.' || r == ',' || r == '-' {
			return r
		}
		return -1
	}, raw)
	digits = normalizeSeparators(strings.TrimLeft(digits, ".,"))
	if digits == "" {
		return decimal.Zero
	}
	price, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero
	}
	return nonNegative(price)
}

// normalizeSeparators resolves thousands and decimal separators. The last
// separator is the decimal point, unless only commas appear and they group
// thousands.
func normalizeSeparators(digits string) string {
	lastComma := strings.LastIndex(digits, ",")
	if lastComma < 0 {
		return digits
	}
	lastDot := strings.LastIndex(digits, ".")
	commas := strings.Count(digits, ",")
	grouping := lastDot < 0 && (commas > 1 || len(digits)-lastComma-1 == 3)
	if lastDot > lastComma || grouping {
		return strings.ReplaceAll(digits, ",", "")
	}
	return strings.Replace(strings.ReplaceAll(digits, ".", ""), ",", ".", 1)
}

func nonNegative(price decimal.Decimal) decimal.Decimal {
	if price.IsNegative() || price.Exponent() > maxPriceExponent {
		return decimal.Zero
	}
	return price
}

func isBlankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
