package catalog

import (
	"strings"

	"drinkingman/internal/models"
)

// IngredientView is an ingredient line resolved for a locale and unit system
type IngredientView struct {
	Name    string `json:"name"`
	Measure string `json:"measure,omitempty"`
}

// View is a cocktail record resolved for display
type View struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Alcoholic    string           `json:"alcoholic"`
	Glass        string           `json:"glass"`
	Thumbnail    string           `json:"thumbnail"`
	Instructions string           `json:"instructions"`
	Ingredients  []IngredientView `json:"ingredients"`
	ExtraImages  []string         `json:"extraImages,omitempty"`
	Locale       models.Locale    `json:"locale"`
	Units        models.Units     `json:"units"`
}

// Details is the description object shown next to a cocktail. An enrichment
// result replaces it as a whole.
type Details struct {
	Description string `json:"description"`
	History     string `json:"history,omitempty"`
	FunFact     string `json:"funFact,omitempty"`
	WhyItFits   string `json:"whyItFits,omitempty"`
	Joke        string `json:"joke,omitempty"`
}

// Localize resolves a record for a locale and unit system
func Localize(c *models.Cocktail, locale models.Locale, units models.Units) View {
	v := View{
		ID:           c.ID,
		Name:         c.Name,
		Category:     c.Category,
		Alcoholic:    c.Alcoholic,
		Glass:        c.Glass,
		Thumbnail:    c.Thumbnail,
		Instructions: c.Instructions,
		Ingredients:  make([]IngredientView, 0, len(c.Ingredients)),
		ExtraImages:  c.ExtraImages,
		Locale:       locale,
		Units:        units,
	}
	if text := c.Text(locale).Instructions; text != "" {
		v.Instructions = text
	}
	for _, line := range c.Ingredients {
		v.Ingredients = append(v.Ingredients, IngredientView{
			Name:    IngredientName(line, locale),
			Measure: Measure(line, locale, units),
		})
	}
	return v
}

// IngredientName returns the translated name, or the canonical one
func IngredientName(line models.IngredientLine, locale models.Locale) string {
	if name := strings.TrimSpace(line.Names[locale]); name != "" {
		return name
	}
	return line.Ingredient
}

// Measure picks the measure for display. With metric units the metric
// column wins over the legacy locale column, and both over the canonical one.
func Measure(line models.IngredientLine, locale models.Locale, units models.Units) string {
	if units == models.UnitsMetric {
		if line.MetricMeasure != "" {
			return line.MetricMeasure
		}
		if legacy := line.LegacyMeasures[locale]; legacy != "" {
			return legacy
		}
	}
	return line.Measure
}

// StaticDetails returns the bundled description object for a locale, or nil
// when the record has no description in that locale
func StaticDetails(c *models.Cocktail, locale models.Locale) *Details {
	text := c.Text(locale)
	if text.Description == "" {
		return nil
	}
	return &Details{
		Description: text.Description,
		History:     text.History,
		FunFact:     text.FunFact,
	}
}

// NeedsEnrichment reports whether the record lacks description or history
// in the locale
func NeedsEnrichment(c *models.Cocktail, locale models.Locale) bool {
	text := c.Text(locale)
	return text.Description == "" || text.History == ""
}

// DetailsFromRecommendation converts an enrichment reply
func DetailsFromRecommendation(rec *models.Recommendation) *Details {
	if rec == nil {
		return nil
	}
	return &Details{
		Description: rec.Description,
		History:     rec.History,
		FunFact:     rec.FunFact,
		WhyItFits:   rec.WhyItFits,
		Joke:        rec.Joke,
	}
}
