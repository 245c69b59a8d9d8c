package recommend

import "github.com/yanqian/skinfit/internal/domain/profile"

const catchAllTag = "all"

// Catalog skin-type tags searched for each form skin type.
var skinTypeTags = map[profile.SkinType][]string{
	profile.SkinDry:         {"dry", "very dry"},
	profile.SkinCombination: {"combination", "normal", "all"},
	profile.SkinOily:        {"oily", "acne", "acne prone"},
	profile.SkinSensitive:   {"sensitive", "all"},
	profile.SkinNormal:      {"normal", "all"},
}

// Title keywords used to narrow results for a concern.
var concernKeywords = map[profile.Concern][]string{
	profile.ConcernAcne:     {"acne", "pimple", "oil-free", "salicylic", "tea tree", "breakout"},
	profile.ConcernSpots:    {"bright", "glow", "vitamin c", "pigmentation", "radiance", "lightening"},
	profile.ConcernWrinkles: {"anti-aging", "wrinkle", "firming", "retinol", "peptide", "anti age"},
	profile.ConcernRedness:  {"calm", "soothing", "centella", "cica", "redness", "sensitive"},
}

func tagsForSkinType(raw string) []string {
	st, ok := profile.ParseSkinType(raw)
	if !ok {
		return []string{catchAllTag}
	}
	return skinTypeTags[st]
}

func keywordsForConcern(raw string) []string {
	c, ok := profile.ParseConcern(raw)
	if !ok {
		return nil
	}
	return concernKeywords[c]
}

// PrimaryConcern picks the condition used to narrow product titles: the first
// one with a keyword list, else the first one listed.
func PrimaryConcern(conditions []profile.Concern) profile.Concern {
	for _, c := range conditions {
		if _, ok := concernKeywords[c]; ok {
			return c
		}
	}
	if len(conditions) > 0 {
		return conditions[0]
	}
	return ""
}
