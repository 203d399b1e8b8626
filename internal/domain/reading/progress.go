package reading

import (
	"context"
	"time"

	"github.com/gita/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// VerseProgress is the per-(user, chapter, verse) completion flag. The
// composite key is unique, so every write is an idempotent upsert.
type VerseProgress struct {
	shared.BaseEntity
	UserID      uuid.UUID
	Chapter     int
	Verse       int
	Completed   bool
	CompletedAt *time.Time
}

// NewVerseProgress creates a progress record in the given state.
func NewVerseProgress(userID uuid.UUID, chapter, verse int, completed bool) *VerseProgress {
	p := &VerseProgress{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Chapter:    chapter,
		Verse:      verse,
	}
	p.SetCompleted(completed)
	return p
}

// SetCompleted sets the completion flag and stamps or clears CompletedAt.
func (p *VerseProgress) SetCompleted(completed bool) {
	p.Completed = completed
	if completed {
		now := time.Now()
		p.CompletedAt = &now
	} else {
		p.CompletedAt = nil
	}
}

// ChapterCompletion is the per-chapter aggregate of completed verses.
type ChapterCompletion struct {
	Chapter        int
	CompletedCount int
}

// ProgressRepository defines persistence operations for verse progress
type ProgressRepository interface {
	// Upsert writes the record keyed by (user, chapter, verse); replaying
	// the same triple converges to one record in the last written state.
	Upsert(ctx context.Context, progress *VerseProgress) error
	// UpsertBatch upserts all records in one batched write.
	UpsertBatch(ctx context.Context, records []*VerseProgress) error
	FindByUserAndChapter(ctx context.Context, userID uuid.UUID, chapter int) ([]VerseProgress, error)
	// CountCompletedByChapter groups completed records by chapter.
	CountCompletedByChapter(ctx context.Context, userID uuid.UUID) ([]ChapterCompletion, error)
}
