package profile

import (
	"slices"
	"strings"
	"time"
)

// SkinType is the user's skin classification as offered on the form.
type SkinType string

const (
	SkinDry         SkinType = "seca"
	SkinCombination SkinType = "mixta"
	SkinOily        SkinType = "grasa"
	SkinSensitive   SkinType = "sensible"
	SkinNormal      SkinType = "normal"
)

var skinTypeAliases = map[string]SkinType{
	"seca":        SkinDry,
	"dry":         SkinDry,
	"mixta":       SkinCombination,
	"combination": SkinCombination,
	"grasa":       SkinOily,
	"oily":        SkinOily,
	"sensible":    SkinSensitive,
	"sensitive":   SkinSensitive,
	"normal":      SkinNormal,
}

// SkinTypes lists the accepted skin types in form order.
func SkinTypes() []SkinType {
	return []SkinType{SkinDry, SkinCombination, SkinOily, SkinSensitive, SkinNormal}
}

// ParseSkinType accepts form labels and their English equivalents.
func ParseSkinType(raw string) (SkinType, bool) {
	st, ok := skinTypeAliases[strings.ToLower(strings.TrimSpace(raw))]
	return st, ok
}

// Concern is a skin condition label. Known labels drive routine branches and
// keyword narrowing; other labels are kept as free text.
type Concern string

const (
	ConcernAcne     Concern = "acne"
	ConcernSpots    Concern = "manchas"
	ConcernWrinkles Concern = "arrugas"
	ConcernRedness  Concern = "rojeces"

	// ConcernOther buckets free-text labels when counting popularity.
	ConcernOther Concern = "otro"
)

var concernAliases = map[string]Concern{
	"acne":              ConcernAcne,
	"acné":              ConcernAcne,
	"manchas":           ConcernSpots,
	"spots":             ConcernSpots,
	"dark spots":        ConcernSpots,
	"hyperpigmentation": ConcernSpots,
	"arrugas":           ConcernWrinkles,
	"wrinkles":          ConcernWrinkles,
	"rojeces":           ConcernRedness,
	"rojez":             ConcernRedness,
	"redness":           ConcernRedness,
}

// ParseConcern maps form labels and their English equivalents to a known concern.
func ParseConcern(raw string) (Concern, bool) {
	c, ok := concernAliases[strings.ToLower(strings.TrimSpace(raw))]
	return c, ok
}

// NoConditions is how an empty condition list is stored.
const NoConditions = "Ninguna"

// ParseConditions splits a comma-joined condition string.
func ParseConditions(raw string) []Concern {
	return NormalizeConditions([]string{raw})
}

// NormalizeConditions flattens, trims and lower-cases condition labels,
// maps known aliases to their form label, and drops blanks, duplicates and
// the "Ninguna" marker.
func NormalizeConditions(items []string) []Concern {
	out := make([]Concern, 0, len(items))
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			label := strings.ToLower(strings.TrimSpace(part))
			if label == "" || label == strings.ToLower(NoConditions) {
				continue
			}
			c := Concern(label)
			if known, ok := ParseConcern(label); ok {
				c = known
			}
			if slices.Contains(out, c) {
				continue
			}
			out = append(out, c)
		}
	}
	return out
}

// JoinConditions is the inverse of ParseConditions.
func JoinConditions(conditions []Concern) string {
	if len(conditions) == 0 {
		return NoConditions
	}
	parts := make([]string, len(conditions))
	for i, c := range conditions {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}

// Frequency is how involved a routine the user wants.
type Frequency string

const (
	FrequencyBasic        Frequency = "basic"
	FrequencyIntermediate Frequency = "intermediate"
	FrequencyAdvanced     Frequency = "advanced"
)

var frequencyAliases = map[string]Frequency{
	"basic":        FrequencyBasic,
	"basica":       FrequencyBasic,
	"básica":       FrequencyBasic,
	"daily":        FrequencyBasic,
	"diaria":       FrequencyBasic,
	"minima":       FrequencyBasic,
	"mínima":       FrequencyBasic,
	"solo_noche":   FrequencyBasic,
	"intermediate": FrequencyIntermediate,
	"intermedia":   FrequencyIntermediate,
	"completa":     FrequencyIntermediate,
	"advanced":     FrequencyAdvanced,
	"avanzada":     FrequencyAdvanced,
	"experta":      FrequencyAdvanced,
}

// NormalizeFrequency maps current and legacy labels; unknown values become basic.
func NormalizeFrequency(raw string) Frequency {
	if f, ok := frequencyAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return f
	}
	return FrequencyBasic
}

// Extended reports whether the routine includes optional steps such as exfoliation.
func (f Frequency) Extended() bool {
	return f == FrequencyIntermediate || f == FrequencyAdvanced
}

// Profile is a submitted skin profile.
type Profile struct {
	ID         int64     `json:"id,omitempty"`
	Name       string    `json:"name"`
	Age        int       `json:"age"`
	SkinType   SkinType  `json:"skinType"`
	Conditions []Concern `json:"conditions"`
	Frequency  Frequency `json:"routineFrequency"`
	CreatedAt  time.Time `json:"createdAt,omitzero"`
}

// Has reports whether the profile lists the given condition.
func (p Profile) Has(c Concern) bool {
	return slices.Contains(p.Conditions, c)
}
