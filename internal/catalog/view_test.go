package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drinkingman/internal/models"
)

func TestMeasurePrecedence(t *testing.T) {
	line := models.IngredientLine{
		Ingredient:     "Gin",
		Measure:        "2 oz",
		MetricMeasure:  "60 ml",
		LegacyMeasures: map[models.Locale]string{models.LocalePortuguese: "2 doses"},
	}

	assert.Equal(t, "60 ml", Measure(line, models.LocalePortuguese, models.UnitsMetric), "metric wins over legacy")
	assert.Equal(t, "2 oz", Measure(line, models.LocalePortuguese, models.UnitsStandard))
	assert.Equal(t, "60 ml", Measure(line, models.LocaleEnglish, models.UnitsMetric))

	line.MetricMeasure = ""
	assert.Equal(t, "2 doses", Measure(line, models.LocalePortuguese, models.UnitsMetric), "legacy when no metric")
	assert.Equal(t, "2 oz", Measure(line, models.LocaleSpanish, models.UnitsMetric), "canonical otherwise")
}

func TestIngredientName(t *testing.T) {
	line := models.IngredientLine{
		Ingredient: "Lime juice",
		Names:      map[models.Locale]string{models.LocalePortuguese: "Suco de limão"},
	}
	assert.Equal(t, "Suco de limão", IngredientName(line, models.LocalePortuguese))
	assert.Equal(t, "Lime juice", IngredientName(line, models.LocaleSpanish))
	assert.Equal(t, "Lime juice", IngredientName(line, models.LocaleEnglish))
}

func TestLocalize(t *testing.T) {
	ds, err := LoadDataset("testdata/cocktails.json")
	require.NoError(t, err)
	margarita, _ := ds.Get("11007")

	pt := Localize(margarita, models.LocalePortuguese, models.UnitsMetric)
	assert.Contains(t, pt.Instructions, "Esfregue")
	assert.Equal(t, IngredientView{Name: "Licor de laranja", Measure: "15 ml"}, pt.Ingredients[1])
	assert.Equal(t, IngredientView{Name: "Sal"}, pt.Ingredients[3])

	es := Localize(margarita, models.LocaleSpanish, models.UnitsStandard)
	assert.Contains(t, es.Instructions, "Rub the rim", "falls back to canonical instructions")
	assert.Equal(t, IngredientView{Name: "Jugo de lima", Measure: "1 oz"}, es.Ingredients[2])
	assert.Equal(t, models.UnitsStandard, es.Units)

	mojito, _ := ds.Get("11000")
	legacy := Localize(mojito, models.LocalePortuguese, models.UnitsMetric)
	assert.Equal(t, "60-90 ml", legacy.Ingredients[0].Measure)
	assert.Equal(t, "Light rum", legacy.Ingredients[0].Name)
}

func TestStaticDetailsAndEnrichmentNeed(t *testing.T) {
	ds, err := LoadDataset("testdata/cocktails.json")
	require.NoError(t, err)

	margarita, _ := ds.Get("11007")
	details := StaticDetails(margarita, models.LocaleEnglish)
	require.NotNil(t, details)
	assert.Equal(t, "Salt, sour and sun. The classic.", details.Description)
	assert.NotEmpty(t, details.History)
	assert.False(t, NeedsEnrichment(margarita, models.LocaleEnglish))
	assert.True(t, NeedsEnrichment(margarita, models.LocaleSpanish), "Spanish history is missing")

	mojito, _ := ds.Get("11000")
	assert.NotNil(t, StaticDetails(mojito, models.LocaleEnglish))
	assert.Nil(t, StaticDetails(mojito, models.LocalePortuguese))
	assert.True(t, NeedsEnrichment(mojito, models.LocaleEnglish))
}
