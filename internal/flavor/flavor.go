// Package flavor maps the analog preference sliders to the descriptive
// flavor tags embedded in recommendation prompts.
package flavor

import "drinkingman/internal/models"

// Slider bounds
const (
	Min = 0
	Max = 100
)

// Thresholds shared by every axis. Values below strongLow or above strongHigh
// select the strong end labels, values below mildLow or above mildHigh the
// mild ones, anything else is balanced.
const (
	strongLow  = 30
	mildLow    = 45
	mildHigh   = 55
	strongHigh = 70
)

// Axis holds the labels of one slider
type Axis struct {
	Name       string
	StrongLow  []string
	MildLow    []string
	Balanced   []string
	MildHigh   []string
	StrongHigh []string
}

var (
	SweetBitter = Axis{
		Name:       "sweetBitter",
		StrongLow:  []string{"Very Sweet"},
		MildLow:    []string{"Sweet"},
		Balanced:   []string{"Balanced Sweet/Bitter"},
		MildHigh:   []string{"Bitter"},
		StrongHigh: []string{"Very Bitter"},
	}

	SmoothStrong = Axis{
		Name:       "smoothStrong",
		StrongLow:  []string{"Very Smooth", "Easy to Drink"},
		MildLow:    []string{"Smooth"},
		Balanced:   []string{"Standard Strength"},
		MildHigh:   []string{"Strong"},
		StrongHigh: []string{"Very Strong", "High Alcohol"},
	}

	RefreshingHeavy = Axis{
		Name:       "refreshingHeavy",
		StrongLow:  []string{"Very Refreshing", "Light Body"},
		MildLow:    []string{"Refreshing"},
		Balanced:   []string{"Medium Body"},
		MildHigh:   []string{"Full Body"},
		StrongHigh: []string{"Heavy Body", "Complex", "Creamy/Thick"},
	}
)

// Tags returns the labels for a slider value. Out of range values are clamped.
func (a Axis) Tags(value int) []string {
	var tags []string
	switch v := Clamp(value); {
	case v < strongLow:
		tags = a.StrongLow
	case v < mildLow:
		tags = a.MildLow
	case v > strongHigh:
		tags = a.StrongHigh
	case v > mildHigh:
		tags = a.MildHigh
	default:
		tags = a.Balanced
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

// Map converts the three sliders to an ordered tag sequence:
// sweet/bitter first, then smooth/strong, then refreshing/heavy.
func Map(s models.Sliders) []string {
	tags := make([]string, 0, 6)
	tags = append(tags, SweetBitter.Tags(s.SweetBitter)...)
	tags = append(tags, SmoothStrong.Tags(s.SmoothStrong)...)
	tags = append(tags, RefreshingHeavy.Tags(s.RefreshingHeavy)...)
	return tags
}

// Clamp limits a slider value to [Min, Max]
func Clamp(value int) int {
	if value < Min {
		return Min
	}
	if value > Max {
		return Max
	}
	return value
}
