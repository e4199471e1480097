package catalog

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drinkingman/internal/models"
)

func TestBrowseDefaultsToAlcoholic(t *testing.T) {
	ds, err := LoadDataset("testdata/cocktails.json")
	require.NoError(t, err)
	svc := NewService(Config{Dataset: ds})

	page := svc.Browse(BrowseQuery{Locale: models.LocalePortuguese})
	assert.Equal(t, 3, page.Total)
	assert.Nil(t, page.Filter)
	assert.Equal(t, 1, page.TotalPages)

	names := make([]string, 0, len(page.Items))
	for _, item := range page.Items {
		names = append(names, item.Name)
	}
	assert.Equal(t, []string{"Margarita", "Mojito", "A1"}, names)

	margarita := page.Items[0]
	assert.Equal(t, "Sal, azedo e sol. O clássico.", margarita.Description)
	assert.Equal(t, []string{"Tequila", "Licor de laranja", "Suco de limão", "Sal"}, margarita.Ingredients)

	a1 := page.Items[2]
	assert.Contains(t, a1.Description, "Pour all ingredients", "instructions stand in for a missing description")
}

func TestBrowseFilters(t *testing.T) {
	ds, err := LoadDataset("testdata/cocktails.json")
	require.NoError(t, err)
	svc := NewService(Config{Dataset: ds})

	tests := []struct {
		name  string
		query BrowseQuery
		want  []string
		typ   string
	}{
		{"search", BrowseQuery{Search: "MARG"}, []string{"11007"}, FilterSearch},
		{"search wins over filters", BrowseQuery{Search: "a1", Category: "Ordinary Drink"}, []string{"17222"}, FilterSearch},
		{"category", BrowseQuery{Category: "Cocktail"}, []string{"11000", "12560", "17222"}, FilterCategory},
		{"alcoholic", BrowseQuery{Alcoholic: models.AlcoholicNo}, []string{"12560"}, FilterAlcoholic},
		{"ingredient", BrowseQuery{Ingredient: "grenadine"}, []string{"12560", "17222"}, FilterIngredient},
		{"no match", BrowseQuery{Search: "zzz"}, []string{}, FilterSearch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := svc.Browse(tt.query)
			ids := make([]string, 0, len(page.Items))
			for _, item := range page.Items {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, tt.want, ids)
			require.NotNil(t, page.Filter)
			assert.Equal(t, tt.typ, page.Filter.Type)
		})
	}
}

func TestBrowsePagination(t *testing.T) {
	records := make([]models.Cocktail, 0, 30)
	for i := 1; i <= 30; i++ {
		records = append(records, models.Cocktail{
			ID:        fmt.Sprint(i),
			Name:      fmt.Sprintf("Drink %02d", i),
			Alcoholic: models.AlcoholicYes,
		})
	}
	svc := NewService(Config{Dataset: NewDataset(records)})

	first := svc.Browse(BrowseQuery{})
	assert.Len(t, first.Items, DefaultPageSize)
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, "1", first.Items[0].ID)

	last := svc.Browse(BrowseQuery{Page: 3})
	assert.Len(t, last.Items, 6)
	assert.Equal(t, "25", last.Items[0].ID)

	beyond := svc.Browse(BrowseQuery{Page: 4})
	assert.Empty(t, beyond.Items)
	assert.NotNil(t, beyond.Items)

	assert.Equal(t, 1, svc.Browse(BrowseQuery{Page: -2}).Page)

	custom := NewService(Config{Dataset: NewDataset(records), PageSize: 10})
	assert.Equal(t, 3, custom.Browse(BrowseQuery{}).TotalPages)
}

func TestBrowseHugePageIsEmpty(t *testing.T) {
	svc := NewService(Config{Dataset: NewDataset([]models.Cocktail{
		{ID: "1", Name: "Drink", Alcoholic: models.AlcoholicYes},
	})})

	var page Page
	require.NotPanics(t, func() { page = svc.Browse(BrowseQuery{Page: math.MaxInt}) })
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, math.MaxInt, page.Page)
}
