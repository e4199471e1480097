package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"drinkingman/internal/models"
	"drinkingman/internal/share"
)

const maxQRSize = 1024

// BarNameRequest is the body of PUT /api/v1/bar/name
type BarNameRequest struct {
	Name string `json:"name"`
}

// InventoryRequest is the body of PUT /api/v1/bar/inventory
type InventoryRequest struct {
	Items []models.Ingredient `json:"items" binding:"required"`
}

func (s *Server) handleGetBar(c *gin.Context) {
	state, err := s.store.State(c.Request.Context(), barIDFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) handleSetBarName(c *gin.Context) {
	var req BarNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	bar, err := s.store.SetBarName(c.Request.Context(), barIDFrom(c), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bar)
}

func (s *Server) handleToggle(c *gin.Context) {
	item, err := s.store.Toggle(c.Request.Context(), barIDFrom(c), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) handleSetInventory(c *gin.Context) {
	var req InventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := make([]models.Ingredient, 0, len(req.Items))
	for _, item := range req.Items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ingredient name is required"})
			return
		}
		items = append(items, models.Ingredient{
			Name:      name,
			Category:  models.ParseCategory(string(item.Category)),
			Available: item.Available,
		})
	}

	ctx := c.Request.Context()
	if _, err := s.store.SetInventory(ctx, barIDFrom(c), items); err != nil {
		respondError(c, err)
		return
	}
	s.respondState(c)
}

func (s *Server) handleReset(c *gin.Context) {
	if _, err := s.store.Reset(c.Request.Context(), barIDFrom(c)); err != nil {
		respondError(c, err)
		return
	}
	s.respondState(c)
}

func (s *Server) handleShareLink(c *gin.Context) {
	link, menu, err := s.shareLink(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"link": link, "menu": menu})
}

func (s *Server) handleShareQR(c *gin.Context) {
	link, _, err := s.shareLink(c)
	if err != nil {
		respondError(c, err)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(share.DefaultQRSize)))
	if size > maxQRSize {
		size = maxQRSize
	}
	png, err := share.QRCode(link, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// shareLink builds the menu link of the caller's bar on the requested
// origin, or the configured public one
func (s *Server) shareLink(c *gin.Context) (string, share.Menu, error) {
	state, err := s.store.State(c.Request.Context(), barIDFrom(c))
	if err != nil {
		return "", share.Menu{}, err
	}
	origin := c.DefaultQuery("origin", s.publicOrigin)
	menu := share.Menu{BarName: state.Bar.Name, Unavailable: state.Blacklist}
	link, err := share.Link(origin, menu)
	return link, menu, err
}

func (s *Server) respondState(c *gin.Context) {
	state, err := s.store.State(c.Request.Context(), barIDFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}
