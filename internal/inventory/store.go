// Package inventory persists registered bars and their ingredient
// availability.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"

	"drinkingman/internal/logging"
	"drinkingman/internal/models"
	"drinkingman/internal/monitoring"
)

var (
	// ErrBarNotFound is returned for an unknown bar id
	ErrBarNotFound = errors.New("bar not found")
	// ErrIngredientNotFound is returned when toggling a name the bar does not stock
	ErrIngredientNotFound = errors.New("ingredient not found")
)

// Store keeps one inventory per bar
type Store struct {
	db      *gorm.DB
	monitor *monitoring.Monitor
}

// State is everything the bar page shows
type State struct {
	Bar       models.Bar             `json:"bar"`
	Groups    []models.CategoryGroup `json:"groups"`
	Blacklist []string               `json:"unavailable"`
}

// NewStore creates a store on an already migrated database
func NewStore(db *gorm.DB, monitor *monitoring.Monitor) *Store {
	return &Store{db: db, monitor: monitor}
}

// CreateBar registers a bar and seeds its default inventory
func (s *Store) CreateBar(ctx context.Context, name string) (*models.Bar, error) {
	bar := models.Bar{
		ID:   uuid.NewString(),
		Name: barName(name),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&bar).Error; err != nil {
			return fmt.Errorf("create bar: %w", err)
		}
		return seed(tx, bar.ID)
	})
	if err != nil {
		return nil, err
	}

	s.monitor.RecordInventoryOp("create_bar")
	logging.Ctx(ctx).Info().Str("bar_id", bar.ID).Str("bar_name", bar.Name).Msg("bar registered")
	return &bar, nil
}

// GetBar returns a bar by id
func (s *Store) GetBar(ctx context.Context, barID string) (*models.Bar, error) {
	var bar models.Bar
	if err := s.db.Where("id = ?", barID).First(&bar).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrBarNotFound
		}
		return nil, fmt.Errorf("load bar: %w", err)
	}
	return &bar, nil
}

// SetBarName renames a bar. An empty name restores the default.
func (s *Store) SetBarName(ctx context.Context, barID, name string) (*models.Bar, error) {
	bar, err := s.GetBar(ctx, barID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(bar).Update("name", barName(name)).Error; err != nil {
		return nil, fmt.Errorf("rename bar: %w", err)
	}
	s.monitor.RecordInventoryOp("rename")
	return bar, nil
}

// Init seeds the default inventory when the bar has none. Calling it again
// changes nothing.
func (s *Store) Init(ctx context.Context, barID string) error {
	if _, err := s.GetBar(ctx, barID); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int
		if err := tx.Model(&models.Ingredient{}).Where("bar_id = ?", barID).Count(&count).Error; err != nil {
			return fmt.Errorf("count ingredients: %w", err)
		}
		if count > 0 {
			return nil
		}
		return seed(tx, barID)
	})
}

// List returns the inventory in stored order
func (s *Store) List(ctx context.Context, barID string) ([]models.Ingredient, error) {
	if _, err := s.GetBar(ctx, barID); err != nil {
		return nil, err
	}
	var items []models.Ingredient
	if err := s.db.Where("bar_id = ?", barID).Order("position asc").Order("id asc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return items, nil
}

// Grouped returns the inventory grouped by category
func (s *Store) Grouped(ctx context.Context, barID string) ([]models.CategoryGroup, error) {
	items, err := s.List(ctx, barID)
	if err != nil {
		return nil, err
	}
	return models.GroupByCategory(items), nil
}

// Blacklist returns the names of unavailable ingredients
func (s *Store) Blacklist(ctx context.Context, barID string) ([]string, error) {
	items, err := s.List(ctx, barID)
	if err != nil {
		return nil, err
	}
	return models.Blacklist(items), nil
}

// State returns the bar with its grouped inventory and blacklist
func (s *Store) State(ctx context.Context, barID string) (*State, error) {
	bar, err := s.GetBar(ctx, barID)
	if err != nil {
		return nil, err
	}
	items, err := s.List(ctx, barID)
	if err != nil {
		return nil, err
	}
	return &State{
		Bar:       *bar,
		Groups:    models.GroupByCategory(items),
		Blacklist: models.Blacklist(items),
	}, nil
}

// Toggle flips the availability of the named ingredient
func (s *Store) Toggle(ctx context.Context, barID, name string) (*models.Ingredient, error) {
	if _, err := s.GetBar(ctx, barID); err != nil {
		return nil, err
	}

	var item models.Ingredient
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bar_id = ? AND name = ?", barID, strings.TrimSpace(name)).First(&item).Error; err != nil {
			if gorm.IsRecordNotFoundError(err) {
				return ErrIngredientNotFound
			}
			return fmt.Errorf("load ingredient: %w", err)
		}
		item.Available = !item.Available
		return tx.Model(&item).Update("available", item.Available).Error
	})
	if err != nil {
		return nil, err
	}

	s.monitor.RecordInventoryOp("toggle")
	logging.Ctx(ctx).Debug().Str("bar_id", barID).Str("ingredient", item.Name).Bool("available", item.Available).Msg("ingredient toggled")
	return &item, nil
}

// SetInventory replaces the whole inventory. Entries sharing a name collapse
// into one, the last one winning.
func (s *Store) SetInventory(ctx context.Context, barID string, items []models.Ingredient) ([]models.Ingredient, error) {
	if _, err := s.GetBar(ctx, barID); err != nil {
		return nil, err
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return replace(tx, barID, items)
	})
	if err != nil {
		return nil, err
	}
	s.monitor.RecordInventoryOp("replace")
	return s.List(ctx, barID)
}

// Reset restores the default inventory
func (s *Store) Reset(ctx context.Context, barID string) ([]models.Ingredient, error) {
	if _, err := s.GetBar(ctx, barID); err != nil {
		return nil, err
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return replace(tx, barID, models.DefaultIngredients())
	})
	if err != nil {
		return nil, err
	}
	s.monitor.RecordInventoryOp("reset")
	return s.List(ctx, barID)
}

func seed(tx *gorm.DB, barID string) error {
	return insert(tx, barID, models.DefaultIngredients())
}

func replace(tx *gorm.DB, barID string, items []models.Ingredient) error {
	if err := tx.Where("bar_id = ?", barID).Delete(&models.Ingredient{}).Error; err != nil {
		return fmt.Errorf("clear inventory: %w", err)
	}
	return insert(tx, barID, items)
}

func insert(tx *gorm.DB, barID string, items []models.Ingredient) error {
	for i, item := range dedupe(items) {
		row := models.Ingredient{
			BarID:     barID,
			Position:  i,
			Name:      item.Name,
			Category:  models.ParseCategory(string(item.Category)),
			Available: item.Available,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("insert ingredient %s: %w", item.Name, err)
		}
	}
	return nil
}

// dedupe keeps the first position of each name and the last values
func dedupe(items []models.Ingredient) []models.Ingredient {
	index := make(map[string]int, len(items))
	out := make([]models.Ingredient, 0, len(items))
	for _, item := range items {
		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" {
			continue
		}
		if i, ok := index[item.Name]; ok {
			out[i] = item
			continue
		}
		index[item.Name] = len(out)
		out = append(out, item)
	}
	return out
}

func barName(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return models.DefaultBarName
}
