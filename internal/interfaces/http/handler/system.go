package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gita/backend/internal/interfaces/http/dto"
)

// Pinger reports whether the database connection is alive
type Pinger interface {
	Ping() error
}

// SystemHandler handles the banner and health probes
type SystemHandler struct {
	BaseHandler
	db Pinger
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{db: db}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.Banner)
	rg.GET("/health", h.Health)
}

// Banner returns a plain-text liveness banner
func (h *SystemHandler) Banner(c *gin.Context) {
	c.String(http.StatusOK, "Server is running")
}

// Health reports readiness, including a database ping
func (h *SystemHandler) Health(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse("Database unavailable"))
		return
	}
	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}
