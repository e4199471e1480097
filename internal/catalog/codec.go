package catalog

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"drinkingman/internal/models"
)

// flatRecord is a cocktail as stored by the lookup service and the bundled
// dataset: one key per field, with numbered ingredient and measure slots.
// It is converted to models.Cocktail right after decoding.
type flatRecord map[string]any

// localeSuffix maps a locale to the column suffix of the flat format
var localeSuffix = map[models.Locale]string{
	models.LocaleEnglish:    "EN",
	models.LocalePortuguese: "PT",
	models.LocaleSpanish:    "ES",
}

func (r flatRecord) str(key string) string {
	switch v := r[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func (r flatRecord) slot(prefix string, i int) string {
	return r.str(prefix + strconv.Itoa(i))
}

func (r flatRecord) toCocktail() models.Cocktail {
	c := models.Cocktail{
		ID:           r.str("idDrink"),
		Name:         r.str("strDrink"),
		Instructions: r.str("strInstructions"),
		Category:     r.str("strCategory"),
		Alcoholic:    r.str("strAlcoholic"),
		Glass:        r.str("strGlass"),
		Thumbnail:    r.str("strDrinkThumb"),
	}

	for i := 1; i <= models.MaxIngredientLines; i++ {
		ingredient := r.slot("strIngredient", i)
		if ingredient == "" {
			continue
		}
		line := models.IngredientLine{
			Ingredient:    ingredient,
			Measure:       r.slot("strMeasure", i),
			MetricMeasure: r.slot("strMeasureML", i),
		}
		for locale, suffix := range localeSuffix {
			if locale == models.LocaleEnglish {
				continue
			}
			if name := r.slot("strIngredient"+suffix, i); name != "" {
				if line.Names == nil {
					line.Names = make(map[models.Locale]string)
				}
				line.Names[locale] = name
			}
			if !locale.Info().LegacyMeasures {
				continue
			}
			if measure := r.slot("strMeasure"+suffix, i); measure != "" {
				if line.LegacyMeasures == nil {
					line.LegacyMeasures = make(map[models.Locale]string)
				}
				line.LegacyMeasures[locale] = measure
			}
		}
		c.Ingredients = append(c.Ingredients, line)
	}

	for locale, suffix := range localeSuffix {
		text := models.LocalizedText{
			Description:  r.str("description" + suffix),
			History:      r.str("strHistory" + suffix),
			FunFact:      r.str("strFunFact" + suffix),
			Instructions: r.str("strInstructions" + suffix),
		}
		if text == (models.LocalizedText{}) {
			continue
		}
		if c.Localized == nil {
			c.Localized = make(map[models.Locale]models.LocalizedText)
		}
		c.Localized[locale] = text
	}

	for i := 1; i <= models.MaxExtraImages; i++ {
		if img := r.slot("extraImage", i); img != "" {
			c.ExtraImages = append(c.ExtraImages, img)
		}
	}
	return c
}

// DecodeRecords decodes a JSON array of flat records. Records without an id
// are skipped.
func DecodeRecords(data []byte) ([]models.Cocktail, error) {
	var raw []flatRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode cocktail records: %w", err)
	}
	out := make([]models.Cocktail, 0, len(raw))
	for _, r := range raw {
		c := r.toCocktail()
		if c.ID == "" {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// decodeDrinks decodes a lookup-service envelope. The service answers with
// null or a plain string instead of an array when nothing matches.
func decodeDrinks(data []byte) ([]models.Cocktail, error) {
	var envelope struct {
		Drinks json.RawMessage `json:"drinks"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode lookup response: %w", err)
	}
	drinks := bytes.TrimSpace(envelope.Drinks)
	if len(drinks) == 0 || drinks[0] != '[' {
		return nil, nil
	}
	return DecodeRecords(drinks)
}
