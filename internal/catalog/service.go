package catalog

import (
	"context"
	"errors"
	"math/rand"
	"strings"

	"drinkingman/internal/logging"
	"drinkingman/internal/models"
	"drinkingman/internal/monitoring"
)

// ErrNotFound is returned when neither the dataset nor the lookup service
// knows a cocktail
var ErrNotFound = errors.New("cocktail not found")

// Record sources
const (
	SourceBundled = "bundled"
	SourceLive    = "live"
)

// MaxVisualMatches caps the thumbnails returned for a recommendation
const MaxVisualMatches = 4

// Distillates lists the main spirits offered as quick filters
var Distillates = []string{"Vodka", "Gin", "Rum", "Tequila", "Whiskey", "Brandy"}

// Source is the third-party lookup service
type Source interface {
	SearchByName(ctx context.Context, name string) ([]models.Cocktail, error)
	FilterByCategory(ctx context.Context, category string) ([]models.Cocktail, error)
	FilterByIngredient(ctx context.Context, ingredient string) ([]models.Cocktail, error)
	FilterByAlcoholic(ctx context.Context, alcoholic string) ([]models.Cocktail, error)
	LookupByID(ctx context.Context, id string) (*models.Cocktail, error)
	Random(ctx context.Context) (*models.Cocktail, error)
}

// Enricher produces the creative fields of a cocktail. It returns nil when
// nothing could be generated.
type Enricher interface {
	Enrich(ctx context.Context, name string, ingredients []string, locale models.Locale) *models.Recommendation
}

// Config wires a Service
type Config struct {
	Dataset  *Dataset
	Source   Source
	Enricher Enricher
	Monitor  *monitoring.Monitor
	PageSize int
}

// Service resolves cocktails from the bundled dataset first and the lookup
// service second
type Service struct {
	dataset  *Dataset
	source   Source
	enricher Enricher
	monitor  *monitoring.Monitor
	pageSize int
}

// NewService creates a catalog service. Source and Enricher may be nil.
func NewService(cfg Config) *Service {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	dataset := cfg.Dataset
	if dataset == nil {
		dataset = NewDataset(nil)
	}
	cfg.Monitor.RecordMetric("catalog_dataset_records", dataset.Len())
	return &Service{
		dataset:  dataset,
		source:   cfg.Source,
		enricher: cfg.Enricher,
		monitor:  cfg.Monitor,
		pageSize: pageSize,
	}
}

// Result is a resolved cocktail
type Result struct {
	Cocktail *models.Cocktail `json:"-"`
	View     View             `json:"cocktail"`
	// Details is the static description object, nil when there is none
	Details           *Details `json:"details"`
	Source            string   `json:"source"`
	EnrichmentPending bool     `json:"enrichmentPending"`
}

// Lookup resolves id. The only error returned is ErrNotFound; lookup service
// failures are logged and reported as not found.
func (s *Service) Lookup(ctx context.Context, id string, locale models.Locale, units models.Units) (*Result, error) {
	log := logging.Ctx(ctx)
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}

	if c, ok := s.dataset.Get(id); ok {
		s.monitor.RecordLookup(SourceBundled, monitoring.OutcomeSuccess)
		return &Result{
			Cocktail:          c,
			View:              Localize(c, locale, units),
			Details:           StaticDetails(c, locale),
			Source:            SourceBundled,
			EnrichmentPending: s.enricher != nil && NeedsEnrichment(c, locale),
		}, nil
	}

	if s.source == nil {
		s.monitor.RecordLookup(SourceBundled, monitoring.OutcomeNotFound)
		return nil, ErrNotFound
	}

	c, err := s.source.LookupByID(ctx, id)
	if err != nil {
		s.monitor.RecordLookup(SourceLive, monitoring.OutcomeUpstreamError)
		log.Error().Err(err).Str("cocktail_id", id).Msg("live lookup failed")
		return nil, ErrNotFound
	}
	if c == nil {
		s.monitor.RecordLookup(SourceLive, monitoring.OutcomeNotFound)
		log.Warn().Str("cocktail_id", id).Msg("cocktail not found")
		return nil, ErrNotFound
	}

	s.monitor.RecordLookup(SourceLive, monitoring.OutcomeSuccess)
	return s.liveResult(c, locale, units), nil
}

func (s *Service) liveResult(c *models.Cocktail, locale models.Locale, units models.Units) *Result {
	return &Result{
		Cocktail:          c,
		View:              Localize(c, locale, units),
		Source:            SourceLive,
		EnrichmentPending: s.enricher != nil,
	}
}

// Enrich generates a description object for a resolved cocktail. The
// result replaces Result.Details entirely. It returns nil on failure.
func (s *Service) Enrich(ctx context.Context, res *Result, locale models.Locale) *Details {
	if s.enricher == nil || res == nil || res.Cocktail == nil {
		return nil
	}
	rec := s.enricher.Enrich(ctx, res.Cocktail.Name, res.Cocktail.IngredientNames(), locale)
	return DetailsFromRecommendation(rec)
}

// EnrichAsync runs Enrich in the background. The channel yields exactly one
// value, nil on failure, and is then closed.
func (s *Service) EnrichAsync(ctx context.Context, res *Result, locale models.Locale) <-chan *Details {
	out := make(chan *Details, 1)
	go func() {
		defer close(out)
		out <- s.Enrich(ctx, res, locale)
	}()
	return out
}

// Random returns a random cocktail from the lookup service, falling back to
// the dataset when the service is unavailable
func (s *Service) Random(ctx context.Context, locale models.Locale, units models.Units) (*Result, error) {
	if s.source != nil {
		c, err := s.source.Random(ctx)
		if err == nil && c != nil {
			s.monitor.RecordLookup(SourceLive, monitoring.OutcomeSuccess)
			return s.liveResult(c, locale, units), nil
		}
		if err != nil {
			s.monitor.RecordLookup(SourceLive, monitoring.OutcomeUpstreamError)
			logging.Ctx(ctx).Warn().Err(err).Msg("random lookup failed, using bundled dataset")
		}
	}

	all := s.dataset.All()
	if len(all) == 0 {
		return nil, ErrNotFound
	}
	return s.Lookup(ctx, all[rand.Intn(len(all))].ID, locale, units)
}

// LiveQuery selects one lookup-service operation. The first non-empty field
// in the order Name, Category, Ingredient, Alcoholic is used.
type LiveQuery struct {
	Name       string
	Category   string
	Ingredient string
	Alcoholic  string
}

// SearchLive queries the lookup service directly. Failures yield an empty list.
func (s *Service) SearchLive(ctx context.Context, q LiveQuery) []models.Cocktail {
	if s.source == nil {
		return []models.Cocktail{}
	}

	var (
		drinks []models.Cocktail
		err    error
	)
	switch {
	case strings.TrimSpace(q.Name) != "":
		drinks, err = s.source.SearchByName(ctx, q.Name)
	case strings.TrimSpace(q.Category) != "":
		drinks, err = s.source.FilterByCategory(ctx, q.Category)
	case strings.TrimSpace(q.Ingredient) != "":
		drinks, err = s.source.FilterByIngredient(ctx, q.Ingredient)
	case strings.TrimSpace(q.Alcoholic) != "":
		drinks, err = s.source.FilterByAlcoholic(ctx, q.Alcoholic)
	default:
		return []models.Cocktail{}
	}
	if err != nil {
		s.monitor.RecordLookup(SourceLive, monitoring.OutcomeUpstreamError)
		logging.Ctx(ctx).Error().Err(err).Msg("live search failed")
		return []models.Cocktail{}
	}
	s.monitor.RecordLookup(SourceLive, monitoring.OutcomeSuccess)
	if drinks == nil {
		drinks = []models.Cocktail{}
	}
	return drinks
}

// VisualMatches finds pictures of drinks resembling a recommendation. It
// searches by the visual match term (or the name), then by the name, then by
// the base spirit.
func (s *Service) VisualMatches(ctx context.Context, rec *models.Recommendation, baseSpirit string) []string {
	thumbs := []string{}
	if s.source == nil || rec == nil {
		return thumbs
	}

	spirit := strings.TrimSpace(baseSpirit)
	if spirit == "" || strings.EqualFold(spirit, "None") {
		spirit = "Vodka"
	}
	term := strings.TrimSpace(rec.VisualMatch)
	if term == "" {
		term = rec.Name
	}

	var drinks []models.Cocktail
	for _, q := range []string{term, rec.Name, spirit} {
		if strings.TrimSpace(q) == "" {
			continue
		}
		found, err := s.source.SearchByName(ctx, q)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("term", q).Msg("visual match search failed")
			continue
		}
		if len(found) > 0 {
			drinks = found
			break
		}
	}

	for _, d := range drinks {
		if d.Thumbnail == "" {
			continue
		}
		thumbs = append(thumbs, d.Thumbnail)
		if len(thumbs) == MaxVisualMatches {
			break
		}
	}
	return thumbs
}
