package catalog

import "strings"

type categoryRule struct {
	category Category
	keywords []string
}

// Evaluated top to bottom; the first rule with a matching keyword wins, so
// "Sunscreen Gel Cream" is a sunscreen and not a moisturizer.
var categoryRules = []categoryRule{
	{CategorySunscreen, []string{"spf", "sunscreen", "sun screen", "sunblock", "sun cream", "sun protect", "protector solar"}},
	{CategoryCleanser, []string{"cleanser", "face wash", "facewash", "cleansing", "micellar", "limpiador", "wash"}},
	{CategoryExfoliant, []string{"exfoliat", "scrub", "peeling", "peel", "glycolic"}},
	{CategoryMask, []string{"mask", "masque", "mascarilla"}},
	{CategorySerum, []string{"serum", "sérum", "essence", "ampoule", "vitamin c", "niacinamide"}},
	{CategoryMoisturizer, []string{"moisturi", "cream", "lotion", "hidratante"}},
}

// InferCategory maps a product title to a category by keyword lookup.
func InferCategory(title string) Category {
	lowered := strings.ToLower(strings.TrimSpace(title))
	if lowered == "" {
		return DefaultCategory
	}
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) {
				return rule.category
			}
		}
	}
	return DefaultCategory
}
