package agents

import (
	"context"
	"errors"
	"strings"
	"time"

	"drinkingman/internal/evaluation"
	"drinkingman/internal/logging"
	"drinkingman/internal/models"
	"drinkingman/internal/models/providers"
	"drinkingman/internal/monitoring"
)

// Options configures a Bartender
type Options struct {
	Generation             providers.GenerationConfig
	DescriptionTemperature float64
	Timeout                time.Duration
	Monitor                *monitoring.Monitor
	Evaluator              *evaluation.Evaluator
}

// DefaultGeneration holds the sampling parameters used for JSON replies
var DefaultGeneration = providers.GenerationConfig{
	Temperature: 0.9,
	TopK:        1,
	TopP:        1,
	MaxTokens:   2048,
}

// Request is one recommendation request
type Request struct {
	Preferences models.Preferences
	Locale      models.Locale
	Blacklist   []string
}

// Bartender is the DrinkingMan agent. Its exported methods never return
// errors: every failure is logged, counted and turned into an empty result.
type Bartender struct {
	*BaseAgent
	evaluator              *evaluation.Evaluator
	descriptionTemperature float64
}

// NewBartender creates the DrinkingMan agent on top of provider, which may
// be nil when no credential is configured
func NewBartender(provider providers.Provider, opts Options) *Bartender {
	gen := opts.Generation
	if gen == (providers.GenerationConfig{}) {
		gen = DefaultGeneration
	}
	descTemp := opts.DescriptionTemperature
	if descTemp == 0 {
		descTemp = 1.0
	}
	return &Bartender{
		BaseAgent:              NewBaseAgent(RoleDrinkingMan, provider, gen, opts.Timeout, opts.Monitor),
		evaluator:              opts.Evaluator,
		descriptionTemperature: descTemp,
	}
}

// Recommend asks for a personalised drink. It returns nil when no
// suggestion could be produced.
func (b *Bartender) Recommend(ctx context.Context, req Request) *models.Recommendation {
	log := logging.Ctx(ctx)
	log.Info().
		Str("locale", string(req.Locale)).
		Int("blacklist", len(req.Blacklist)).
		Msg("recommendation requested")

	rec, err := b.recommend(ctx, req)
	if err != nil {
		b.logFailure(ctx, monitoring.KindRecommendation, err)
		return nil
	}

	if b.evaluator != nil {
		result := b.evaluator.Evaluate(evaluation.Subject{
			Recommendation: rec,
			Blacklist:      req.Blacklist,
			Locale:         req.Locale,
		})
		for _, f := range result.Findings {
			b.monitor.RecordViolation(f.Check)
			log.Warn().Str("check", f.Check).Str("detail", f.Detail).Str("cocktail", rec.Name).Msg("recommendation failed compliance check")
		}
	}
	return rec
}

func (b *Bartender) recommend(ctx context.Context, req Request) (*models.Recommendation, error) {
	prompt := RecommendationPrompt(req.Preferences, req.Locale, req.Blacklist)
	text, elapsed, err := b.generate(ctx, monitoring.KindRecommendation, prompt, b.config)
	if err != nil {
		return nil, err
	}
	rec, err := ParseRecommendation(text)
	if err != nil {
		b.monitor.RecordGeneration(monitoring.KindRecommendation, monitoring.OutcomeMalformed, elapsed)
		return nil, err
	}
	b.monitor.RecordGeneration(monitoring.KindRecommendation, monitoring.OutcomeSuccess, elapsed)
	return rec, nil
}

// Enrich produces description, history, fun fact and joke for a known
// cocktail. It returns nil on failure.
func (b *Bartender) Enrich(ctx context.Context, name string, ingredients []string, locale models.Locale) *models.Recommendation {
	prompt := EnrichmentPrompt(name, ingredients, locale)
	text, elapsed, err := b.generate(ctx, monitoring.KindEnrichment, prompt, b.config)
	if err != nil {
		b.logFailure(ctx, monitoring.KindEnrichment, err)
		return nil
	}
	rec, err := ParseEnrichment(text)
	if err != nil {
		b.monitor.RecordGeneration(monitoring.KindEnrichment, monitoring.OutcomeMalformed, elapsed)
		b.logFailure(ctx, monitoring.KindEnrichment, err)
		return nil
	}
	b.monitor.RecordGeneration(monitoring.KindEnrichment, monitoring.OutcomeSuccess, elapsed)
	if rec.Name == "" {
		rec.Name = name
	}
	return rec
}

// Describe writes a short atmospheric passage about a cocktail. It returns
// "" on failure.
func (b *Bartender) Describe(ctx context.Context, name string, ingredients []string) string {
	cfg := b.config
	cfg.Temperature = b.descriptionTemperature

	text, elapsed, err := b.generate(ctx, monitoring.KindDescription, DescriptionPrompt(name, ingredients), cfg)
	if err != nil {
		b.logFailure(ctx, monitoring.KindDescription, err)
		return ""
	}
	b.monitor.RecordGeneration(monitoring.KindDescription, monitoring.OutcomeSuccess, elapsed)
	return strings.TrimSpace(text)
}

func (b *Bartender) logFailure(ctx context.Context, kind string, err error) {
	log := logging.Ctx(ctx).With().Str("agent", string(b.GetRole())).Str("kind", kind).Logger()
	if errors.Is(err, ErrMissingCredential) {
		log.Warn().Err(err).Msg("language model credential missing")
		return
	}
	log.Error().Err(err).Msg("generation failed")
}
