package agents

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drinkingman/internal/evaluation"
	"drinkingman/internal/flavor"
	"drinkingman/internal/logging"
	"drinkingman/internal/models"
	"drinkingman/internal/models/providers"
	"drinkingman/internal/monitoring"
)

type fakeProvider struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
	configs []providers.GenerationConfig
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Generate(ctx context.Context, prompt string, cfg providers.GenerationConfig) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompts = append(p.prompts, prompt)
	p.configs = append(p.configs, cfg)
	return p.reply, p.err
}

const gimletReply = `{
  "name": "Gimlet da Casa",
  "description": "Afiado e brilhante.",
  "ingredients": ["60 ml Gin", "20 ml Suco de limão", "15 ml Xarope simples"],
  "instructions": "Bata com gelo e coe.",
  "whyItFits": "Doce e encorpado.",
  "history": "Marinheiros britânicos.",
  "funFact": "Evitava escorbuto.",
  "visualMatch": "Gimlet cocktail"
}`

func gimletRequest() Request {
	return Request{
		Preferences: models.Preferences{
			BaseSpirit: "Gin",
			FlavorTags: flavor.Map(models.Sliders{SweetBitter: 10, SmoothStrong: 50, RefreshingHeavy: 80}),
			Occasion:   "Date night",
			Mood:       "Mysterious",
		},
		Locale:    models.LocalePortuguese,
		Blacklist: []string{"Tonic Water"},
	}
}

func TestRecommendationPromptScenario(t *testing.T) {
	req := gimletRequest()
	prompt := RecommendationPrompt(req.Preferences, req.Locale, req.Blacklist)

	assert.Contains(t, prompt, "OUT OF STOCK: Tonic Water")
	assert.Contains(t, prompt, "Language: Portuguese (Brazil)")
	assert.Contains(t, prompt, "Do NOT suggest a drink that requires these ingredients")
	assert.Contains(t, prompt, "Flavors: Very Sweet")
	assert.Contains(t, prompt, "Standard Strength")
	assert.Contains(t, prompt, "Heavy Body, Complex, Creamy/Thick")
	assert.Contains(t, prompt, "Base Spirit: Gin")
	assert.Contains(t, prompt, "MILLILITERS")
	assert.Contains(t, prompt, "Just raw JSON.")
}

func TestRecommendationPromptBlacklist(t *testing.T) {
	prefs := gimletRequest().Preferences

	t.Run("every name verbatim", func(t *testing.T) {
		blacklist := []string{"Tonic Water", "Angostura Bitters", "Lime"}
		prompt := RecommendationPrompt(prefs, models.LocaleEnglish, blacklist)
		for _, name := range blacklist {
			assert.Contains(t, prompt, name)
		}
		assert.Contains(t, prompt, "OUT OF STOCK: Tonic Water, Angostura Bitters, Lime.")
	})

	t.Run("empty blacklist has no exclusion", func(t *testing.T) {
		for _, blacklist := range [][]string{nil, {}, {" ", ""}} {
			prompt := RecommendationPrompt(prefs, models.LocaleEnglish, blacklist)
			assert.NotContains(t, prompt, "OUT OF STOCK")
			assert.NotContains(t, prompt, "Do NOT suggest")
		}
	})
}

func TestRecommendationPromptUnits(t *testing.T) {
	prefs := gimletRequest().Preferences

	english := RecommendationPrompt(prefs, models.LocaleEnglish, nil)
	assert.Contains(t, english, "Language: English")
	assert.NotContains(t, english, "MILLILITERS")

	spanish := RecommendationPrompt(prefs, models.ParseLocale("es-ES"), nil)
	assert.Contains(t, spanish, "Language: Spanish")
	assert.Contains(t, spanish, "MILLILITERS")

	fallback := RecommendationPrompt(prefs, models.ParseLocale("fr"), nil)
	assert.Contains(t, fallback, "Language: English")
}

func TestParseRecommendationFences(t *testing.T) {
	plain, err := ParseRecommendation(gimletReply)
	require.NoError(t, err)

	for _, wrapped := range []string{
		"```json\n" + gimletReply + "\n```",
		"```" + gimletReply + "```",
		"\n  ```json" + gimletReply + "```  \n",
	} {
		fenced, err := ParseRecommendation(wrapped)
		require.NoError(t, err)
		assert.Equal(t, plain, fenced)
	}
	assert.Equal(t, "Gimlet da Casa", plain.Name)
	assert.Len(t, plain.Ingredients, 3)
}

func TestParseRecommendationMalformed(t *testing.T) {
	for _, raw := range []string{
		"I recommend a Negroni!",
		"",
		"null",
		`{"name": "Negroni"}`,
		`{"name": "", "ingredients": ["Gin"]}`,
		`{"name": "Negroni", "ingredients": "Gin"}`,
		`["Negroni"]`,
	} {
		rec, err := ParseRecommendation(raw)
		assert.Nil(t, rec, raw)
		assert.ErrorIs(t, err, ErrMalformedReply, raw)
	}
}

func TestRecommend(t *testing.T) {
	provider := &fakeProvider{reply: "```json\n" + gimletReply + "\n```"}
	monitor := monitoring.NewMonitor()
	bartender := NewBartender(provider, Options{Monitor: monitor, Evaluator: evaluation.NewEvaluator()})

	rec := bartender.Recommend(context.Background(), gimletRequest())
	require.NotNil(t, rec)
	assert.Equal(t, "Gimlet da Casa", rec.Name)
	assert.Equal(t, "Gimlet cocktail", rec.VisualMatch)

	require.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], "OUT OF STOCK: Tonic Water")
	assert.Equal(t, DefaultGeneration, provider.configs[0])

	metrics := monitor.GetMetrics()
	assert.Equal(t, 1, metrics["generation_recommendation_success"])
}

func TestRecommendFailuresYieldNil(t *testing.T) {
	tests := []struct {
		name     string
		provider providers.Provider
		metric   string
	}{
		{"missing credential", nil, "generation_recommendation_missing_credential"},
		{"service error", &fakeProvider{err: errors.New("503 unavailable")}, "generation_recommendation_upstream_error"},
		{"malformed reply", &fakeProvider{reply: "Sorry, I only speak in riddles."}, "generation_recommendation_malformed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			monitor := monitoring.NewMonitor()
			bartender := NewBartender(tt.provider, Options{Monitor: monitor})

			assert.NotPanics(t, func() {
				assert.Nil(t, bartender.Recommend(context.Background(), gimletRequest()))
			})
			assert.Equal(t, 1, monitor.GetMetrics()[tt.metric])
		})
	}
}

func TestRecommendRecordsViolations(t *testing.T) {
	reply := strings.Replace(gimletReply, "60 ml Gin", "60 ml Tonic Water", 1)
	monitor := monitoring.NewMonitor()
	bartender := NewBartender(&fakeProvider{reply: reply}, Options{Monitor: monitor, Evaluator: evaluation.NewEvaluator()})

	rec := bartender.Recommend(context.Background(), gimletRequest())
	require.NotNil(t, rec)
	assert.Equal(t, 1, monitor.GetMetrics()["violation_blacklisted_ingredient"])
}

func TestEnrich(t *testing.T) {
	provider := &fakeProvider{reply: "```json\n" + `{
		"name": "",
		"description": "Sharp citrus over juniper.",
		"ingredients": [],
		"instructions": "",
		"whyItFits": "A classic.",
		"joke": "Why did the gin go to school? To get a little tonic-ation. - DrinkingMan",
		"funFact": "Named after a naval surgeon.",
		"history": "Royal Navy, 19th century.",
		"visualMatch": ""
	}` + "\n```"}
	bartender := NewBartender(provider, Options{})

	rec := bartender.Enrich(context.Background(), "Gimlet", []string{"Gin", "Lime juice"}, models.LocaleSpanish)
	require.NotNil(t, rec)
	assert.Equal(t, "Gimlet", rec.Name)
	assert.Equal(t, "Sharp citrus over juniper.", rec.Description)
	assert.Contains(t, rec.Joke, "DrinkingMan")

	require.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], `"Gimlet"`)
	assert.Contains(t, provider.prompts[0], "Ingredients: Gin, Lime juice")
	assert.Contains(t, provider.prompts[0], "values in Spanish")
}

func TestEnrichFailure(t *testing.T) {
	bartender := NewBartender(&fakeProvider{reply: `{"name": "Gimlet"}`}, Options{})
	assert.Nil(t, bartender.Enrich(context.Background(), "Gimlet", nil, models.LocaleEnglish))

	bartender = NewBartender(nil, Options{})
	assert.Nil(t, bartender.Enrich(context.Background(), "Gimlet", nil, models.LocaleEnglish))
}

func TestDescribe(t *testing.T) {
	provider := &fakeProvider{reply: "  The glass sweats like a liar.\n"}
	bartender := NewBartender(provider, Options{})

	text := bartender.Describe(context.Background(), "Negroni", []string{"Gin", "Campari", "Sweet Vermouth"})
	assert.Equal(t, "The glass sweats like a liar.", text)

	require.Len(t, provider.configs, 1)
	assert.Equal(t, 1.0, provider.configs[0].Temperature)
	assert.Equal(t, 2048, provider.configs[0].MaxTokens)
	assert.Contains(t, provider.prompts[0], "under 100 words")

	failing := NewBartender(&fakeProvider{err: errors.New("boom")}, Options{})
	assert.Empty(t, failing.Describe(context.Background(), "Negroni", nil))
}

func TestAvailable(t *testing.T) {
	assert.False(t, NewBartender(nil, Options{}).Available())
	assert.True(t, NewBartender(&fakeProvider{}, Options{}).Available())
	assert.Equal(t, RoleDrinkingMan, NewBartender(nil, Options{}).GetRole())
}

func TestFailureLogNamesAgent(t *testing.T) {
	var buf bytes.Buffer
	logging.Init(logging.Config{Level: "debug", Output: &buf})
	t.Cleanup(func() { logging.Init(logging.Config{}) })

	failing := NewBartender(&fakeProvider{err: errors.New("boom")}, Options{})
	assert.Empty(t, failing.Describe(context.Background(), "Negroni", nil))

	out := buf.String()
	assert.Contains(t, out, `"agent":"drinkingman"`)
	assert.Contains(t, out, `"kind":"description"`)
	assert.Contains(t, out, "generation failed")
}
