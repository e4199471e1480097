package catalog

import (
	"strings"

	"drinkingman/internal/models"
)

// DefaultPageSize is the number of cocktails per browse page
const DefaultPageSize = 12

// Filter kinds
const (
	FilterSearch     = "search"
	FilterCategory   = "category"
	FilterAlcoholic  = "alcoholic"
	FilterIngredient = "ingredient"
)

// BrowseQuery selects a page of the bundled dataset. Search takes priority
// over the filters; with neither, alcoholic drinks are listed.
type BrowseQuery struct {
	Search     string
	Category   string
	Alcoholic  string
	Ingredient string
	Page       int
	Locale     models.Locale
}

// ActiveFilter echoes the filter applied to a page
type ActiveFilter struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Summary is a cocktail card of the browse listing
type Summary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Alcoholic   string   `json:"alcoholic"`
	Thumbnail   string   `json:"thumbnail"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
}

// Page is one browse page
type Page struct {
	Items      []Summary     `json:"items"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	Total      int           `json:"total"`
	TotalPages int           `json:"totalPages"`
	Filter     *ActiveFilter `json:"filter,omitempty"`
}

// Browse lists the bundled dataset
func (s *Service) Browse(q BrowseQuery) Page {
	filter, match := browseFilter(q)

	var matched []*models.Cocktail
	all := s.dataset.All()
	for i := range all {
		if match(&all[i]) {
			matched = append(matched, &all[i])
		}
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	result := Page{
		Items:      []Summary{},
		Page:       page,
		PageSize:   s.pageSize,
		Total:      len(matched),
		TotalPages: (len(matched) + s.pageSize - 1) / s.pageSize,
		Filter:     filter,
	}

	if page > result.TotalPages {
		return result
	}
	start := (page - 1) * s.pageSize
	end := min(start+s.pageSize, len(matched))
	for _, c := range matched[start:end] {
		result.Items = append(result.Items, summarize(c, q.Locale))
	}
	return result
}

func browseFilter(q BrowseQuery) (*ActiveFilter, func(*models.Cocktail) bool) {
	if search := strings.TrimSpace(q.Search); search != "" {
		needle := strings.ToLower(search)
		return &ActiveFilter{Type: FilterSearch, Value: search}, func(c *models.Cocktail) bool {
			return strings.Contains(strings.ToLower(c.Name), needle)
		}
	}
	if category := strings.TrimSpace(q.Category); category != "" {
		return &ActiveFilter{Type: FilterCategory, Value: category}, func(c *models.Cocktail) bool {
			return c.Category == category
		}
	}
	if alcoholic := strings.TrimSpace(q.Alcoholic); alcoholic != "" {
		return &ActiveFilter{Type: FilterAlcoholic, Value: alcoholic}, func(c *models.Cocktail) bool {
			return c.Alcoholic == alcoholic
		}
	}
	if ingredient := strings.TrimSpace(q.Ingredient); ingredient != "" {
		return &ActiveFilter{Type: FilterIngredient, Value: ingredient}, func(c *models.Cocktail) bool {
			return c.HasIngredient(ingredient)
		}
	}
	return nil, func(c *models.Cocktail) bool {
		return c.Alcoholic == models.AlcoholicYes
	}
}

func summarize(c *models.Cocktail, locale models.Locale) Summary {
	s := Summary{
		ID:          c.ID,
		Name:        c.Name,
		Category:    c.Category,
		Alcoholic:   c.Alcoholic,
		Thumbnail:   c.Thumbnail,
		Description: c.Text(locale).Description,
		Ingredients: make([]string, 0, len(c.Ingredients)),
	}
	if s.Description == "" {
		s.Description = c.Instructions
	}
	for _, line := range c.Ingredients {
		s.Ingredients = append(s.Ingredients, IngredientName(line, locale))
	}
	return s
}
