package models

import "strings"

const (
	// MaxIngredientLines is the number of ingredient slots of a catalog record
	MaxIngredientLines = 15
	// MaxExtraImages is the number of supplementary images a record may carry
	MaxExtraImages = 3
)

// Cocktail is a catalog record. Canonical fields are English; localized and
// enriched fields are optional and absent ones degrade to the canonical values.
type Cocktail struct {
	ID           string                   `json:"id"`
	Name         string                   `json:"name"`
	Instructions string                   `json:"instructions"`
	Category     string                   `json:"category"`
	Alcoholic    string                   `json:"alcoholic"`
	Glass        string                   `json:"glass"`
	Thumbnail    string                   `json:"thumbnail"`
	Ingredients  []IngredientLine         `json:"ingredients"`
	Localized    map[Locale]LocalizedText `json:"localized,omitempty"`
	ExtraImages  []string                 `json:"extraImages,omitempty"`
}

// IngredientLine is one ingredient slot of a cocktail record
type IngredientLine struct {
	Ingredient    string `json:"ingredient"`
	Measure       string `json:"measure,omitempty"`
	MetricMeasure string `json:"metricMeasure,omitempty"`
	// Names holds translated ingredient names per locale
	Names map[Locale]string `json:"names,omitempty"`
	// LegacyMeasures holds locale-specific measures predating MetricMeasure
	LegacyMeasures map[Locale]string `json:"legacyMeasures,omitempty"`
}

// LocalizedText holds the per-language enrichment of a record
type LocalizedText struct {
	Description  string `json:"description,omitempty"`
	History      string `json:"history,omitempty"`
	FunFact      string `json:"funFact,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// Text returns the localized text for a locale, or the zero value
func (c *Cocktail) Text(locale Locale) LocalizedText {
	if c.Localized == nil {
		return LocalizedText{}
	}
	return c.Localized[locale]
}

// IngredientNames returns the canonical names of all non-empty ingredient lines
func (c *Cocktail) IngredientNames() []string {
	names := make([]string, 0, len(c.Ingredients))
	for _, line := range c.Ingredients {
		if name := strings.TrimSpace(line.Ingredient); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// HasIngredient reports whether any line names the ingredient, ignoring case
func (c *Cocktail) HasIngredient(name string) bool {
	name = strings.TrimSpace(name)
	for _, line := range c.Ingredients {
		if strings.EqualFold(strings.TrimSpace(line.Ingredient), name) {
			return true
		}
	}
	return false
}

// Alcoholic flag values used by the catalog
const (
	AlcoholicYes      = "Alcoholic"
	AlcoholicNo       = "Non alcoholic"
	AlcoholicOptional = "Optional alcohol"
)
