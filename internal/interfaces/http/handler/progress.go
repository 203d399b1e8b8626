package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	appreading "github.com/gita/backend/internal/application/reading"
	"github.com/gita/backend/internal/interfaces/http/dto"
	"github.com/gita/backend/internal/interfaces/http/middleware"
)

// SetVerseRequest is the body of POST /progress/me/verse
type SetVerseRequest struct {
	Chapter   int   `json:"chapter"`
	Verse     int   `json:"verse"`
	Completed *bool `json:"completed"`
}

// SetVerseResponse echoes the written verse state
type SetVerseResponse struct {
	dto.OKResponse
	Progress *appreading.VerseWrite `json:"progress"`
}

// SetChapterRequest is the body of POST /progress/me/chapter. An empty
// verseIds list means the whole chapter.
type SetChapterRequest struct {
	ChapterID int   `json:"chapterId"`
	VerseIDs  []int `json:"verseIds"`
	Completed *bool `json:"completed"`
}

// SetChapterResponse reports how many verses the bulk write touched
type SetChapterResponse struct {
	dto.OKResponse
	ChapterID int  `json:"chapterId"`
	Completed bool `json:"completed"`
	Affected  int  `json:"affected"`
}

// SummaryResponse is the per-chapter progress overview
type SummaryResponse struct {
	dto.OKResponse
	Chapters []appreading.ChapterSummary `json:"chapters"`
}

// ChapterDetailResponse lists the state of every verse in one chapter
type ChapterDetailResponse struct {
	dto.OKResponse
	Chapter int                     `json:"chapter"`
	Verses  []appreading.VerseState `json:"verses"`
}

// ProgressHandler handles per-verse reading progress
type ProgressHandler struct {
	BaseHandler
	progressService *appreading.ProgressService
	sessions        *middleware.SessionMiddleware
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService *appreading.ProgressService, sessions *middleware.SessionMiddleware) *ProgressHandler {
	return &ProgressHandler{progressService: progressService, sessions: sessions}
}

// RegisterRoutes registers progress routes, all behind authentication
func (h *ProgressHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/progress", h.sessions.Require())
	group.POST("/me/verse", h.SetVerse)
	group.POST("/me/chapter", h.SetChapter)
	group.GET("/me", h.Summary)
	group.GET("/me/chapter/:chapterId", h.ChapterDetail)
}

// SetVerse marks or unmarks a single verse
func (h *ProgressHandler) SetVerse(c *gin.Context) {
	var req SetVerseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	if req.Chapter == 0 || req.Verse == 0 || req.Completed == nil {
		h.BadRequest(c, "chapter, verse, and completed (boolean) are required")
		return
	}

	user := middleware.CurrentUser(c)
	written, err := h.progressService.SetVerse(c.Request.Context(), user.ID, appreading.SetVerseInput{
		Chapter:   req.Chapter,
		Verse:     req.Verse,
		Completed: *req.Completed,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, SetVerseResponse{
		OKResponse: dto.OKResponse{OK: true},
		Progress:   written,
	})
}

// SetChapter marks or unmarks a list of verses, defaulting to the whole
// chapter
func (h *ProgressHandler) SetChapter(c *gin.Context) {
	var req SetChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	if req.ChapterID == 0 || req.Completed == nil {
		h.BadRequest(c, "chapterId and completed (boolean) are required")
		return
	}

	user := middleware.CurrentUser(c)
	affected, err := h.progressService.SetChapter(c.Request.Context(), user.ID, appreading.SetChapterInput{
		Chapter:   req.ChapterID,
		VerseIDs:  req.VerseIDs,
		Completed: *req.Completed,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, SetChapterResponse{
		OKResponse: dto.OKResponse{OK: true},
		ChapterID:  req.ChapterID,
		Completed:  *req.Completed,
		Affected:   affected,
	})
}

// Summary returns one row per chapter with completion counts
func (h *ProgressHandler) Summary(c *gin.Context) {
	user := middleware.CurrentUser(c)
	chapters, err := h.progressService.Summary(c.Request.Context(), user.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, SummaryResponse{
		OKResponse: dto.OKResponse{OK: true},
		Chapters:   chapters,
	})
}

// ChapterDetail returns the state of every verse in one chapter
func (h *ProgressHandler) ChapterDetail(c *gin.Context) {
	chapter, err := strconv.Atoi(c.Param("chapterId"))
	if err != nil {
		h.BadRequest(c, "No verses found for given chapter")
		return
	}

	user := middleware.CurrentUser(c)
	verses, err := h.progressService.ChapterDetail(c.Request.Context(), user.ID, chapter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, ChapterDetailResponse{
		OKResponse: dto.OKResponse{OK: true},
		Chapter:    chapter,
		Verses:     verses,
	})
}
