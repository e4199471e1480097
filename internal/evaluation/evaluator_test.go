package evaluation

import (
	"testing"

	"drinkingman/internal/models"
)

func TestNewEvaluator(t *testing.T) {
	evaluator := NewEvaluator()

	if evaluator == nil {
		t.Fatal("NewEvaluator() returned nil")
	}

	if len(evaluator.checks) == 0 {
		t.Error("NewEvaluator() created an evaluator with no checks")
	}
}

func TestHasCheck(t *testing.T) {
	evaluator := NewEvaluator()

	for _, id := range []string{CheckBlacklistedIngredient, CheckImperialUnits, CheckIncomplete} {
		if !evaluator.HasCheck(id) {
			t.Errorf("HasCheck(%q) = false, want true", id)
		}
	}

	if evaluator.HasCheck("non_existent_check") {
		t.Error("HasCheck(\"non_existent_check\") = true, want false")
	}
}

func gimlet() *models.Recommendation {
	return &models.Recommendation{
		Name:         "Gimlet",
		Description:  "Sharp and bright.",
		Ingredients:  []string{"60 ml Gin", "20 ml Lime juice", "15 ml Simple Syrup"},
		Instructions: "Shake with ice and strain.",
		WhyItFits:    "Refreshing and strong.",
	}
}

func TestEvaluatePasses(t *testing.T) {
	result := NewEvaluator().Evaluate(Subject{
		Recommendation: gimlet(),
		Blacklist:      []string{"Tonic Water"},
		Locale:         models.LocalePortuguese,
	})

	if !result.Passed {
		t.Fatalf("Evaluate() findings = %v, want none", result.Findings)
	}
	if result.Name != "Gimlet" {
		t.Errorf("Evaluate() Name = %q, want Gimlet", result.Name)
	}
}

func TestEvaluateBlacklist(t *testing.T) {
	result := NewEvaluator().Evaluate(Subject{
		Recommendation: gimlet(),
		Blacklist:      []string{"gin", ""},
		Locale:         models.LocaleEnglish,
	})

	if result.Passed {
		t.Fatal("Evaluate() passed a suggestion using a blacklisted ingredient")
	}
	if len(result.Findings) != 1 || result.Findings[0].Check != CheckBlacklistedIngredient {
		t.Errorf("Evaluate() findings = %v", result.Findings)
	}
}

func TestEvaluateBlacklistMatchesWholeWords(t *testing.T) {
	rec := gimlet()
	rec.Ingredients = append(rec.Ingredients, "30 ml Spiced rum")

	result := NewEvaluator().Evaluate(Subject{
		Recommendation: rec,
		Blacklist:      []string{"Ice", "Rum"},
		Locale:         models.LocaleEnglish,
	})
	if len(result.Findings) != 1 || result.Findings[0].Detail != "Rum in 30 ml Spiced rum" {
		t.Errorf("Evaluate() findings = %v, want only Rum", result.Findings)
	}

	result = NewEvaluator().Evaluate(Subject{
		Recommendation: gimlet(),
		Blacklist:      []string{"lime"},
		Locale:         models.LocaleEnglish,
	})
	if len(result.Findings) != 1 {
		t.Errorf("Evaluate() findings = %v, want Lime", result.Findings)
	}
}

func TestEvaluateUnits(t *testing.T) {
	rec := gimlet()
	rec.Ingredients = []string{"2 oz Gin", "1 ounce Lime juice"}

	result := NewEvaluator().Evaluate(Subject{Recommendation: rec, Locale: models.LocaleSpanish})
	if len(result.Findings) != 2 {
		t.Fatalf("Evaluate() findings = %v, want 2 unit findings", result.Findings)
	}

	result = NewEvaluator().Evaluate(Subject{Recommendation: rec, Locale: models.LocaleEnglish})
	if !result.Passed {
		t.Errorf("Evaluate() flagged ounces for English: %v", result.Findings)
	}
}

func TestEvaluateIncomplete(t *testing.T) {
	rec := gimlet()
	rec.WhyItFits = " "

	result := NewEvaluator().Evaluate(Subject{Recommendation: rec})
	if len(result.Findings) != 1 || result.Findings[0].Detail != "whyItFits" {
		t.Errorf("Evaluate() findings = %v", result.Findings)
	}
}

func TestEvaluateNil(t *testing.T) {
	if result := NewEvaluator().Evaluate(Subject{}); !result.Passed {
		t.Error("Evaluate() with no recommendation should pass")
	}
}
