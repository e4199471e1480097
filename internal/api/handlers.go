package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"drinkingman/internal/agents"
	"drinkingman/internal/catalog"
	"drinkingman/internal/flavor"
	"drinkingman/internal/inventory"
	"drinkingman/internal/logging"
	"drinkingman/internal/models"
	"drinkingman/internal/share"
)

// RecommendationRequest is the body of POST /api/v1/recommendations
type RecommendationRequest struct {
	Locale      string          `json:"locale"`
	BaseSpirit  string          `json:"baseSpirit"`
	Sliders     *models.Sliders `json:"sliders"`
	Mood        string          `json:"mood"`
	Occasion    string          `json:"occasion"`
	Unavailable []string        `json:"unavailable"`
	// BarID pulls the blacklist of a registered bar
	BarID string `json:"barId,omitempty"`
}

// RecommendationResponse wraps a suggestion. Suggestion is null when none
// could be produced.
type RecommendationResponse struct {
	Suggestion  *models.Recommendation `json:"suggestion"`
	Images      []string               `json:"images"`
	BarName     string                 `json:"barName,omitempty"`
	FlavorTags  []string               `json:"flavorTags"`
	Unavailable []string               `json:"unavailable"`
}

func (s *Server) handleLocales(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"default": models.DefaultLocale,
		"locales": models.Locales(),
	})
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.monitor.GetMetrics())
}

func (s *Server) handleFlavors(c *gin.Context) {
	sliders := models.DefaultSliders()
	if err := c.ShouldBindJSON(&sliders); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sliders = clampSliders(sliders)
	c.JSON(http.StatusOK, gin.H{
		"sliders":    sliders,
		"flavorTags": flavor.Map(sliders),
	})
}

func (s *Server) handleRecommendation(c *gin.Context) {
	// omitted axes keep their centred position, as in /flavors
	defaults := models.DefaultSliders()
	req := RecommendationRequest{Sliders: &defaults}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	sliders := models.DefaultSliders()
	if req.Sliders != nil {
		sliders = clampSliders(*req.Sliders)
	}
	tags := flavor.Map(sliders)

	menu := share.Decode(c.Request.URL.Query())
	blacklist := share.Merge(req.Unavailable, menu.Unavailable)
	barName := menu.BarName

	if barID := strings.TrimSpace(req.BarID); barID != "" && s.store != nil {
		state, err := s.store.State(ctx, barID)
		if err != nil {
			respondError(c, err)
			return
		}
		blacklist = share.Merge(blacklist, state.Blacklist)
		if barName == "" {
			barName = state.Bar.Name
		}
	}

	resp := RecommendationResponse{
		Images:      []string{},
		BarName:     barName,
		FlavorTags:  tags,
		Unavailable: blacklist,
	}
	if s.bartender == nil {
		logging.Ctx(ctx).Warn().Msg("no bartender configured")
		c.JSON(http.StatusOK, resp)
		return
	}

	resp.Suggestion = s.bartender.Recommend(ctx, agents.Request{
		Preferences: models.Preferences{
			BaseSpirit: strings.TrimSpace(req.BaseSpirit),
			FlavorTags: tags,
			Occasion:   strings.TrimSpace(req.Occasion),
			Mood:       strings.TrimSpace(req.Mood),
		},
		Locale:    models.ParseLocale(req.Locale),
		Blacklist: blacklist,
	})
	if resp.Suggestion != nil && s.catalog != nil {
		resp.Images = s.catalog.VisualMatches(ctx, resp.Suggestion, req.BaseSpirit)
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleBrowse(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	c.JSON(http.StatusOK, s.catalog.Browse(catalog.BrowseQuery{
		Search:     c.Query("search"),
		Category:   c.Query("category"),
		Alcoholic:  c.Query("alcoholic"),
		Ingredient: c.Query("ingredient"),
		Page:       page,
		Locale:     models.ParseLocale(c.Query("locale")),
	}))
}

func (s *Server) handleDistillates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"distillates": catalog.Distillates})
}

func (s *Server) handleRandom(c *gin.Context) {
	locale, units := localeAndUnits(c)
	res, err := s.catalog.Random(c.Request.Context(), locale, units)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleLiveSearch(c *gin.Context) {
	drinks := s.catalog.SearchLive(c.Request.Context(), catalog.LiveQuery{
		Name:       c.Query("s"),
		Category:   c.Query("c"),
		Ingredient: c.Query("i"),
		Alcoholic:  c.Query("a"),
	})
	c.JSON(http.StatusOK, gin.H{"drinks": drinks, "count": len(drinks)})
}

func (s *Server) handleCocktail(c *gin.Context) {
	locale, units := localeAndUnits(c)
	res, err := s.catalog.Lookup(c.Request.Context(), c.Param("id"), locale, units)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// handleEnrichment runs enrichment synchronously. Details is null when the
// language model produced nothing; the static object is then kept.
func (s *Server) handleEnrichment(c *gin.Context) {
	ctx := c.Request.Context()
	locale, units := localeAndUnits(c)
	res, err := s.catalog.Lookup(ctx, c.Param("id"), locale, units)
	if err != nil {
		respondError(c, err)
		return
	}

	details := s.catalog.Enrich(ctx, res, locale)
	c.JSON(http.StatusOK, gin.H{
		"id":       res.View.ID,
		"details":  details,
		"replaced": details != nil,
	})
}

func (s *Server) handleDescription(c *gin.Context) {
	ctx := c.Request.Context()
	res, err := s.catalog.Lookup(ctx, c.Param("id"), models.DefaultLocale, models.UnitsStandard)
	if err != nil {
		respondError(c, err)
		return
	}

	description := ""
	if s.bartender != nil {
		description = s.bartender.Describe(ctx, res.Cocktail.Name, res.Cocktail.IngredientNames())
	}
	c.JSON(http.StatusOK, gin.H{
		"id":          res.View.ID,
		"name":        res.Cocktail.Name,
		"description": description,
	})
}

// RegisterRequest is the body of POST /api/v1/bars
type RegisterRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleRegisterBar(c *gin.Context) {
	var req RegisterRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	ctx := c.Request.Context()
	bar, err := s.store.CreateBar(ctx, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	token, expires, err := s.auth.Issue(bar.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"bar":       bar,
		"token":     token,
		"expiresAt": expires,
	})
}

func localeAndUnits(c *gin.Context) (models.Locale, models.Units) {
	return models.ParseLocale(c.Query("locale")), models.ParseUnits(c.Query("units"))
}

func clampSliders(s models.Sliders) models.Sliders {
	return models.Sliders{
		SweetBitter:     flavor.Clamp(s.SweetBitter),
		SmoothStrong:    flavor.Clamp(s.SmoothStrong),
		RefreshingHeavy: flavor.Clamp(s.RefreshingHeavy),
	}
}

// respondError maps package errors onto status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "cocktail not found"})
	case errors.Is(err, inventory.ErrBarNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "bar not found"})
	case errors.Is(err, inventory.ErrIngredientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, share.ErrInvalidOrigin):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logging.Ctx(c.Request.Context()).Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
