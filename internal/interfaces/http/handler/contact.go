package handler

import (
	"github.com/gin-gonic/gin"
	appcontact "github.com/gita/backend/internal/application/contact"
)

// ContactRequest is the body of POST /contact
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactHandler handles contact form submissions
type ContactHandler struct {
	BaseHandler
	contactService *appcontact.Service
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *appcontact.Service) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// RegisterRoutes registers contact routes
func (h *ContactHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/contact", h.Submit)
}

// Submit relays a contact form submission by email
func (h *ContactHandler) Submit(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	err := h.contactService.Submit(c.Request.Context(), appcontact.Input{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Message(c, "Message sent successfully to both parties")
}
