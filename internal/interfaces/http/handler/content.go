package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	appcontent "github.com/gita/backend/internal/application/content"
	"github.com/gita/backend/internal/domain/shared"
)

// ContentHandler serves chapter and verse texts proxied from the
// upstream API. All routes are public.
type ContentHandler struct {
	BaseHandler
	contentService *appcontent.ContentService
}

// NewContentHandler creates a new content handler
func NewContentHandler(contentService *appcontent.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// RegisterRoutes registers content routes
func (h *ContentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/slok", h.VerseOfTheDay)
	rg.GET("/chapters", h.Chapters)
	rg.GET("/chapter/:ch", h.Chapter)
	rg.GET("/chapter/:ch/slok", h.Verses)
	rg.GET("/chapter/:ch/slok/:sl", h.Verse)
}

// VerseOfTheDay returns the verse picked for the current day
func (h *ContentHandler) VerseOfTheDay(c *gin.Context) {
	payload, err := h.contentService.VerseOfTheDay(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.raw(c, payload)
}

// Chapters returns the chapter list payload
func (h *ContentHandler) Chapters(c *gin.Context) {
	payload, err := h.contentService.Chapters(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.raw(c, payload)
}

// Chapter returns a single chapter payload
func (h *ContentHandler) Chapter(c *gin.Context) {
	chapter, ok := h.intParam(c, "ch", "Invalid chapter")
	if !ok {
		return
	}

	payload, err := h.contentService.Chapter(c.Request.Context(), chapter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.raw(c, payload)
}

// Verses returns all verses of a chapter
func (h *ContentHandler) Verses(c *gin.Context) {
	chapter, ok := h.intParam(c, "ch", "Invalid chapter")
	if !ok {
		return
	}

	payload, err := h.contentService.Verses(c.Request.Context(), chapter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.raw(c, payload)
}

// Verse returns a single verse payload
func (h *ContentHandler) Verse(c *gin.Context) {
	chapter, ok := h.intParam(c, "ch", "Invalid chapter")
	if !ok {
		return
	}
	verse, ok := h.intParam(c, "sl", "Invalid chapter or verse")
	if !ok {
		return
	}

	payload, err := h.contentService.Verse(c.Request.Context(), chapter, verse)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.raw(c, payload)
}

// raw writes an upstream JSON payload without reencoding it
func (h *ContentHandler) raw(c *gin.Context, payload string) {
	c.Data(200, "application/json; charset=utf-8", []byte(payload))
}

func (h *ContentHandler) intParam(c *gin.Context, name, message string) (int, bool) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil {
		h.HandleError(c, shared.NewDomainError("INVALID_INPUT", message))
		return 0, false
	}
	return value, true
}
