package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"drinkingman/internal/agents"
	"drinkingman/internal/catalog"
	"drinkingman/internal/inventory"
	"drinkingman/internal/models"
	"drinkingman/internal/monitoring"
)

// Bartender produces recommendations and descriptions. Both methods absorb
// failures and return empty values.
type Bartender interface {
	Recommend(ctx context.Context, req agents.Request) *models.Recommendation
	Describe(ctx context.Context, name string, ingredients []string) string
}

// Config wires the API
type Config struct {
	Bartender      Bartender
	Catalog        *catalog.Service
	Store          *inventory.Store
	Monitor        *monitoring.Monitor
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins []string
	PublicOrigin   string
}

// Server represents the HTTP API of the service
type Server struct {
	router       *gin.Engine
	bartender    Bartender
	catalog      *catalog.Service
	store        *inventory.Store
	monitor      *monitoring.Monitor
	auth         *Auth
	origins      []string
	publicOrigin string
}

// NewServer creates the API and registers its routes
func NewServer(cfg Config) *Server {
	router := gin.New()
	// ingredient names may contain "/", sent escaped as %2F
	router.UseRawPath = true
	router.UnescapePathValues = true
	router.Use(gin.Recovery())

	s := &Server{
		router:       router,
		bartender:    cfg.Bartender,
		catalog:      cfg.Catalog,
		store:        cfg.Store,
		monitor:      cfg.Monitor,
		auth:         NewAuth(cfg.JWTSecret, cfg.TokenTTL),
		origins:      cfg.AllowedOrigins,
		publicOrigin: cfg.PublicOrigin,
	}
	router.Use(requestLogger(s.monitor))

	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "DrinkingMan API is running"})
	})
	s.router.GET("/ws/cocktails/:id", s.handleCocktailStream)

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/locales", s.handleLocales)
		v1.POST("/flavors", s.handleFlavors)
		v1.POST("/recommendations", s.handleRecommendation)
		v1.GET("/stats", s.handleStats)

		// Catalog
		v1.GET("/cocktails", s.handleBrowse)
		v1.GET("/cocktails/distillates", s.handleDistillates)
		v1.GET("/cocktails/random", s.handleRandom)
		v1.GET("/cocktails/live", s.handleLiveSearch)
		v1.GET("/cocktails/:id", s.handleCocktail)
		v1.GET("/cocktails/:id/enrichment", s.handleEnrichment)
		v1.GET("/cocktails/:id/description", s.handleDescription)

		// Bar registration
		v1.POST("/bars", s.handleRegisterBar)

		bar := v1.Group("/bar", s.auth.Middleware())
		{
			bar.GET("", s.handleGetBar)
			bar.PUT("/name", s.handleSetBarName)
			bar.POST("/inventory/:name/toggle", s.handleToggle)
			bar.PUT("/inventory", s.handleSetInventory)
			bar.POST("/inventory/reset", s.handleReset)
			bar.GET("/link", s.handleShareLink)
			bar.GET("/link/qr.png", s.handleShareQR)
		}
	}
}

// Router returns the Gin router
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Handler returns the router wrapped with CORS handling
func (s *Server) Handler() http.Handler {
	origins := s.origins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         600,
	}).Handler(s.router)
}
