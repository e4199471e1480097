package models

import (
	"sort"
	"strings"
	"time"
)

// Category groups ingredients in the bar inventory
type Category string

const (
	CategorySpirit  Category = "Spirit"
	CategoryMixer   Category = "Mixer"
	CategoryFruit   Category = "Fruit"
	CategoryGarnish Category = "Garnish"
	CategorySyrup   Category = "Syrup"
	CategoryOther   Category = "Other"
)

// Categories lists every category in display order
var Categories = []Category{
	CategorySpirit,
	CategoryMixer,
	CategoryFruit,
	CategoryGarnish,
	CategorySyrup,
	CategoryOther,
}

// ParseCategory matches a category case-insensitively. Unknown values map to CategoryOther.
func ParseCategory(raw string) Category {
	for _, c := range Categories {
		if strings.EqualFold(strings.TrimSpace(raw), string(c)) {
			return c
		}
	}
	return CategoryOther
}

// Bar is a registered bar whose operator manages an ingredient inventory
type Bar struct {
	ID        string    `gorm:"primary_key;type:varchar(36)" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName sets the table name for Bar
func (Bar) TableName() string {
	return "bars"
}

// DefaultBarName is assigned to bars registered without a name
const DefaultBarName = "My Home Bar"

// Ingredient is one inventory entry of a bar, keyed by name
type Ingredient struct {
	ID        uint      `gorm:"primary_key" json:"-"`
	BarID     string    `gorm:"type:varchar(36);index;not null" json:"-"`
	Position  int       `json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	Category  Category  `gorm:"type:varchar(16)" json:"category"`
	Available bool      `json:"available"`
	UpdatedAt time.Time `json:"-"`
}

// TableName sets the table name for Ingredient
func (Ingredient) TableName() string {
	return "ingredients"
}

// CategoryGroup is the read-time projection of an inventory by category
type CategoryGroup struct {
	Category Category     `json:"category"`
	Items    []Ingredient `json:"items"`
}

// DefaultIngredients returns the inventory seeded into a new bar
func DefaultIngredients() []Ingredient {
	return []Ingredient{
		{Name: "Vodka", Category: CategorySpirit, Available: true},
		{Name: "Gin", Category: CategorySpirit, Available: true},
		{Name: "Rum", Category: CategorySpirit, Available: true},
		{Name: "Tequila", Category: CategorySpirit, Available: true},
		{Name: "Whiskey", Category: CategorySpirit, Available: true},
		{Name: "Lemon", Category: CategoryFruit, Available: true},
		{Name: "Lime", Category: CategoryFruit, Available: true},
		{Name: "Simple Syrup", Category: CategorySyrup, Available: true},
		{Name: "Soda Water", Category: CategoryMixer, Available: true},
		{Name: "Mint", Category: CategoryGarnish, Available: true},
		{Name: "Ice", Category: CategoryOther, Available: true},
	}
}

// GroupByCategory projects ingredients into category groups, keeping the
// input order inside each group. Empty categories are omitted.
func GroupByCategory(items []Ingredient) []CategoryGroup {
	buckets := make(map[Category][]Ingredient)
	for _, item := range items {
		buckets[item.Category] = append(buckets[item.Category], item)
	}

	groups := make([]CategoryGroup, 0, len(buckets))
	for _, c := range Categories {
		if entries, ok := buckets[c]; ok {
			groups = append(groups, CategoryGroup{Category: c, Items: entries})
			delete(buckets, c)
		}
	}
	// Categories stored before the enum was tightened
	rest := make([]string, 0, len(buckets))
	for c := range buckets {
		rest = append(rest, string(c))
	}
	sort.Strings(rest)
	for _, c := range rest {
		groups = append(groups, CategoryGroup{Category: Category(c), Items: buckets[Category(c)]})
	}
	return groups
}

// Blacklist returns the names of unavailable ingredients in inventory order
func Blacklist(items []Ingredient) []string {
	names := make([]string, 0)
	for _, item := range items {
		if !item.Available {
			names = append(names, item.Name)
		}
	}
	return names
}
