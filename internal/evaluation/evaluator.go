package evaluation

import (
	"regexp"
	"sort"
	"strings"

	"drinkingman/internal/models"
)

// Check identifiers
const (
	CheckBlacklistedIngredient = "blacklisted_ingredient"
	CheckImperialUnits         = "imperial_units"
	CheckIncomplete            = "incomplete"
)

// Evaluator runs post-hoc compliance checks against generated
// recommendations. Checks only report; they never reject a suggestion.
type Evaluator struct {
	checks map[string]*Check
}

// Check is one named compliance rule
type Check struct {
	ID          string
	Name        string
	Description string
	run         func(Subject) []string
}

// Subject is what a check inspects: the suggestion plus the request
// context it was produced for
type Subject struct {
	Recommendation *models.Recommendation
	Blacklist      []string
	Locale         models.Locale
}

// Finding is a failed check
type Finding struct {
	Check  string `json:"check"`
	Detail string `json:"detail"`
}

// EvaluationResult aggregates the findings of every check
type EvaluationResult struct {
	Name     string    `json:"name"`
	Passed   bool      `json:"passed"`
	Findings []Finding `json:"findings,omitempty"`
}

// NewEvaluator creates an evaluator with the built-in checks
func NewEvaluator() *Evaluator {
	e := &Evaluator{
		checks: make(map[string]*Check),
	}
	e.loadChecks()
	return e
}

func (e *Evaluator) loadChecks() {
	e.checks[CheckBlacklistedIngredient] = &Check{
		ID:          CheckBlacklistedIngredient,
		Name:        "Out-of-stock ingredient",
		Description: "The suggestion lists an ingredient the bar marked unavailable.",
		run:         checkBlacklist,
	}

	e.checks[CheckImperialUnits] = &Check{
		ID:          CheckImperialUnits,
		Name:        "Imperial units",
		Description: "A metric locale received ounce measurements.",
		run:         checkUnits,
	}

	e.checks[CheckIncomplete] = &Check{
		ID:          CheckIncomplete,
		Name:        "Incomplete suggestion",
		Description: "Required narrative fields are empty.",
		run:         checkComplete,
	}
}

// HasCheck checks if a check exists
func (e *Evaluator) HasCheck(id string) bool {
	_, exists := e.checks[id]
	return exists
}

// GetChecks returns all checks ordered by ID
func (e *Evaluator) GetChecks() []*Check {
	checks := make([]*Check, 0, len(e.checks))
	for _, c := range e.checks {
		checks = append(checks, c)
	}
	sort.Slice(checks, func(i, j int) bool { return checks[i].ID < checks[j].ID })
	return checks
}

// Evaluate runs every check against subject. A nil recommendation passes.
func (e *Evaluator) Evaluate(subject Subject) *EvaluationResult {
	result := &EvaluationResult{Passed: true}
	if subject.Recommendation == nil {
		return result
	}
	result.Name = subject.Recommendation.Name

	for _, c := range e.GetChecks() {
		for _, detail := range c.run(subject) {
			result.Findings = append(result.Findings, Finding{Check: c.ID, Detail: detail})
		}
	}
	result.Passed = len(result.Findings) == 0
	return result
}

// mentions matches name as a whole word sequence, so "Ice" does not match
// "Spiced rum"
func mentions(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])` + regexp.QuoteMeta(name) + `(?:$|[^\p{L}\p{N}])`)
}

func checkBlacklist(s Subject) []string {
	var details []string
	for _, banned := range s.Blacklist {
		name := strings.TrimSpace(banned)
		if name == "" {
			continue
		}
		pattern := mentions(name)
		for _, line := range s.Recommendation.Ingredients {
			if pattern.MatchString(line) {
				details = append(details, banned+" in "+strings.TrimSpace(line))
				break
			}
		}
	}
	return details
}

var ouncePattern = regexp.MustCompile(`(?i)\b(oz|ounces?)\b`)

func checkUnits(s Subject) []string {
	if !s.Locale.Metric() {
		return nil
	}
	var details []string
	for _, line := range s.Recommendation.Ingredients {
		if ouncePattern.MatchString(line) {
			details = append(details, strings.TrimSpace(line))
		}
	}
	return details
}

func checkComplete(s Subject) []string {
	r := s.Recommendation
	var missing []string
	if strings.TrimSpace(r.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(r.Instructions) == "" {
		missing = append(missing, "instructions")
	}
	if strings.TrimSpace(r.WhyItFits) == "" {
		missing = append(missing, "whyItFits")
	}
	return missing
}
