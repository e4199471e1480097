package models

// Sliders are the three analog preference inputs, each in [0,100]
type Sliders struct {
	SweetBitter     int `json:"sweetBitter"`
	SmoothStrong    int `json:"smoothStrong"`
	RefreshingHeavy int `json:"refreshingHeavy"`
}

// DefaultSliders returns the centred position the form starts with
func DefaultSliders() Sliders {
	return Sliders{SweetBitter: 50, SmoothStrong: 50, RefreshingHeavy: 50}
}

// Preferences is the input of one recommendation request. FlavorTags are
// derived from Sliders and never entered directly.
type Preferences struct {
	BaseSpirit string   `json:"baseSpirit"`
	FlavorTags []string `json:"flavorTags"`
	Occasion   string   `json:"occasion"`
	Mood       string   `json:"mood"`
}

// Recommendation is the typed reply of the language model. Enrichment replies
// share the shape and leave Ingredients/Instructions empty.
type Recommendation struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	WhyItFits    string   `json:"whyItFits"`
	History      string   `json:"history,omitempty"`
	FunFact      string   `json:"funFact,omitempty"`
	VisualMatch  string   `json:"visualMatch,omitempty"`
	Joke         string   `json:"joke,omitempty"`
}
