package catalog

import (
	"context"
	"io"
	"slices"

	"github.com/shopspring/decimal"
)

// Category is the inferred product type used to align catalog rows with routine steps.
type Category string

const (
	CategoryCleanser    Category = "cleanser"
	CategoryExfoliant   Category = "exfoliant"
	CategorySerum       Category = "serum"
	CategoryMask        Category = "mask"
	CategorySunscreen   Category = "sunscreen"
	CategoryMoisturizer Category = "moisturizer"

	// CategoryOther is accepted on requests and means "do not filter by category".
	CategoryOther Category = "other"

	// DefaultCategory is assigned when no keyword matches a title.
	DefaultCategory = CategoryMoisturizer
)

// Categories lists every assignable category in display order.
func Categories() []Category {
	return []Category{
		CategoryCleanser,
		CategoryExfoliant,
		CategorySerum,
		CategoryMask,
		CategoryMoisturizer,
		CategorySunscreen,
	}
}

// Valid reports whether c is an assignable category.
func (c Category) Valid() bool {
	return slices.Contains(Categories(), c)
}

// Default values substituted for missing source fields.
const (
	DefaultTitle     = "Producto sin nombre"
	DefaultBrand     = "Marca desconocida"
	DefaultSkinTypes = "all"
	NoLink           = "#"
)

// Entry is one normalized catalog row.
type Entry struct {
	Title     string
	Brand     string
	SkinTypes string
	Price     decimal.Decimal
	Link      string
	Category  Category
}

// HasPrice reports whether the entry carries a usable price.
func (e Entry) HasPrice() bool {
	return e.Price.IsPositive()
}

// Catalog is the read-only product table loaded once at startup.
type Catalog struct {
	entries []Entry
}

// New wraps already-normalized entries.
func New(entries []Entry) *Catalog {
	return &Catalog{entries: slices.Clone(entries)}
}

// Empty is the degraded catalog used when the source could not be read.
func Empty() *Catalog {
	return &Catalog{}
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// IsEmpty reports whether no products are available.
func (c *Catalog) IsEmpty() bool {
	return c.Len() == 0
}

// Entries returns a copy of the rows in source order.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	return slices.Clone(c.entries)
}

// Source yields the raw catalog table.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	Describe() string
}
