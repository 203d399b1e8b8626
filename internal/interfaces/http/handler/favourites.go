package handler

import (
	"github.com/gin-gonic/gin"
	appreading "github.com/gita/backend/internal/application/reading"
	"github.com/gita/backend/internal/interfaces/http/dto"
	"github.com/gita/backend/internal/interfaces/http/middleware"
)

// ToggleFavouriteRequest identifies the verse being toggled
type ToggleFavouriteRequest struct {
	Chapter int `json:"chapter"`
	Verse   int `json:"verse"`
}

// ToggleFavouriteResponse reports the membership state after the toggle
type ToggleFavouriteResponse struct {
	dto.OKResponse
	Favourite bool `json:"favourite"`
}

// FavouritesResponse lists the user's favourites, most recent first
type FavouritesResponse struct {
	dto.OKResponse
	Favourites []appreading.FavouriteItem `json:"favourites"`
}

// FavouriteHandler handles the favourites list and its toggle
type FavouriteHandler struct {
	BaseHandler
	favouriteService *appreading.FavouriteService
	sessions         *middleware.SessionMiddleware
}

// NewFavouriteHandler creates a new favourite handler
func NewFavouriteHandler(favouriteService *appreading.FavouriteService, sessions *middleware.SessionMiddleware) *FavouriteHandler {
	return &FavouriteHandler{favouriteService: favouriteService, sessions: sessions}
}

// RegisterRoutes registers favourite routes, all behind authentication
func (h *FavouriteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/favourites", h.sessions.Require())
	group.GET("/me", h.List)
	group.POST("/toggle", h.Toggle)
}

// Toggle flips favourite membership for a verse
func (h *FavouriteHandler) Toggle(c *gin.Context) {
	var req ToggleFavouriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	if req.Chapter == 0 || req.Verse == 0 {
		h.BadRequest(c, "Missing chapter or verse")
		return
	}

	user := middleware.CurrentUser(c)
	result, err := h.favouriteService.Toggle(c.Request.Context(), user.ID, appreading.ToggleInput{
		Chapter: req.Chapter,
		Verse:   req.Verse,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, ToggleFavouriteResponse{
		OKResponse: dto.OKResponse{OK: true},
		Favourite:  result.Favourite,
	})
}

// List returns the user's favourites
func (h *FavouriteHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	items, err := h.favouriteService.List(c.Request.Context(), user.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if items == nil {
		items = []appreading.FavouriteItem{}
	}
	h.OK(c, FavouritesResponse{
		OKResponse: dto.OKResponse{OK: true},
		Favourites: items,
	})
}
