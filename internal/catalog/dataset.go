package catalog

import (
	"fmt"
	"os"

	"drinkingman/internal/models"
)

// Dataset is the bundled, read-only cocktail collection
type Dataset struct {
	records []models.Cocktail
	byID    map[string]int
}

// NewDataset indexes records by id. The first record wins on duplicate ids.
func NewDataset(records []models.Cocktail) *Dataset {
	d := &Dataset{
		records: records,
		byID:    make(map[string]int, len(records)),
	}
	for i, c := range records {
		if _, exists := d.byID[c.ID]; !exists {
			d.byID[c.ID] = i
		}
	}
	return d
}

// LoadDataset reads a flat-record JSON file
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	records, err := DecodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}
	return NewDataset(records), nil
}

// Get returns the record with exactly this id
func (d *Dataset) Get(id string) (*models.Cocktail, bool) {
	if d == nil {
		return nil, false
	}
	i, ok := d.byID[id]
	if !ok {
		return nil, false
	}
	c := d.records[i]
	return &c, true
}

// All returns the records in file order
func (d *Dataset) All() []models.Cocktail {
	if d == nil {
		return nil
	}
	return d.records
}

// Len returns the number of records
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}
