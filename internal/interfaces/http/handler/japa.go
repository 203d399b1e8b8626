package handler

import (
	"github.com/gin-gonic/gin"
	appreading "github.com/gita/backend/internal/application/reading"
	"github.com/gita/backend/internal/interfaces/http/dto"
	"github.com/gita/backend/internal/interfaces/http/middleware"
)

// UpdateJapaRequest carries the delta to add to the counter
type UpdateJapaRequest struct {
	Count int64 `json:"count"`
}

// UpdateJapaResponse reports the new total after the increment
type UpdateJapaResponse struct {
	dto.OKResponse
	Message   string `json:"message"`
	JapaCount int64  `json:"japaCount"`
}

// JapaCountResponse carries the current counter value
type JapaCountResponse struct {
	dto.OKResponse
	JapaCount int64 `json:"japaCount"`
}

// JapaHandler handles the chant counter
type JapaHandler struct {
	BaseHandler
	japaService *appreading.JapaService
	sessions    *middleware.SessionMiddleware
}

// NewJapaHandler creates a new japa handler
func NewJapaHandler(japaService *appreading.JapaService, sessions *middleware.SessionMiddleware) *JapaHandler {
	return &JapaHandler{japaService: japaService, sessions: sessions}
}

// RegisterRoutes registers japa routes, all behind authentication
func (h *JapaHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/japaCount", h.sessions.Require())
	group.PUT("/update-japa", h.Update)
	group.GET("/me", h.Get)
}

// Update atomically adds a positive count to the counter
func (h *JapaHandler) Update(c *gin.Context) {
	var req UpdateJapaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	total, err := h.japaService.Increment(c.Request.Context(), user.ID, req.Count)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, UpdateJapaResponse{
		OKResponse: dto.OKResponse{OK: true},
		Message:    "Japa count updated successfully!",
		JapaCount:  total,
	})
}

// Get returns the current counter value
func (h *JapaHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)
	total, err := h.japaService.Get(c.Request.Context(), user.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, JapaCountResponse{
		OKResponse: dto.OKResponse{OK: true},
		JapaCount:  total,
	})
}
