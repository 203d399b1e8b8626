package reading

import (
	"context"
	"math"

	"github.com/gita/backend/internal/domain/reading"
	"github.com/gita/backend/internal/domain/shared"
	"github.com/gita/backend/internal/infrastructure/catalog"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProgressService handles reading-progress writes and aggregates
type ProgressService struct {
	progressRepo reading.ProgressRepository
	logger       *zap.Logger
}

// NewProgressService creates a new progress service
func NewProgressService(progressRepo reading.ProgressRepository, logger *zap.Logger) *ProgressService {
	return &ProgressService{progressRepo: progressRepo, logger: logger}
}

// SetVerse upserts the completion state of a single verse. Replaying the
// same request converges to one row in the last written state.
func (s *ProgressService) SetVerse(ctx context.Context, userID uuid.UUID, input SetVerseInput) (*VerseWrite, error) {
	if !catalog.HasVerse(input.Chapter, input.Verse) {
		return nil, shared.NewDomainError("INVALID_INPUT", "chapter, verse, and completed (boolean) are required")
	}

	progress := reading.NewVerseProgress(userID, input.Chapter, input.Verse, input.Completed)
	if err := s.progressRepo.Upsert(ctx, progress); err != nil {
		s.logger.Error("Failed to upsert verse progress", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Server error")
	}
	return &VerseWrite{
		Chapter:     progress.Chapter,
		Verse:       progress.Verse,
		Completed:   progress.Completed,
		CompletedAt: progress.CompletedAt,
	}, nil
}

// SetChapter bulk-upserts the completion state of a verse list, defaulting
// to the whole chapter. Returns the number of verses written.
func (s *ProgressService) SetChapter(ctx context.Context, userID uuid.UUID, input SetChapterInput) (int, error) {
	verses := input.VerseIDs
	if len(verses) == 0 {
		catalogVerses, err := catalog.VerseNumbers(input.Chapter)
		if err != nil {
			return 0, shared.NewDomainError("INVALID_INPUT", "No verses found for given chapter")
		}
		verses = catalogVerses
	} else {
		// Explicit lists are filtered down to verses the chapter has.
		valid := verses[:0]
		for _, v := range verses {
			if catalog.HasVerse(input.Chapter, v) {
				valid = append(valid, v)
			}
		}
		verses = valid
	}
	if len(verses) == 0 {
		return 0, shared.NewDomainError("INVALID_INPUT", "No verses found for given chapter")
	}

	records := make([]*reading.VerseProgress, len(verses))
	for i, v := range verses {
		records[i] = reading.NewVerseProgress(userID, input.Chapter, v, input.Completed)
	}

	if err := s.progressRepo.UpsertBatch(ctx, records); err != nil {
		s.logger.Error("Failed to upsert chapter progress", zap.Error(err))
		return 0, shared.NewDomainError("INTERNAL_ERROR", "Server error")
	}
	return len(records), nil
}

// Summary returns one row per catalog chapter with the user's completed
// count and a rounded percentage. Chapters without any progress rows are
// still listed at zero.
func (s *ProgressService) Summary(ctx context.Context, userID uuid.UUID) ([]ChapterSummary, error) {
	completions, err := s.progressRepo.CountCompletedByChapter(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to aggregate progress", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Server error")
	}

	completedByChapter := make(map[int]int, len(completions))
	for _, c := range completions {
		completedByChapter[c.Chapter] = c.CompletedCount
	}

	chapters := catalog.Chapters()
	summaries := make([]ChapterSummary, len(chapters))
	for i, ch := range chapters {
		total, _ := catalog.VerseCount(ch)
		completed := completedByChapter[ch]
		percent := 0
		if total > 0 {
			percent = int(math.Round(100 * float64(completed) / float64(total)))
		}
		summaries[i] = ChapterSummary{
			Chapter:        ch,
			TotalVerses:    total,
			CompletedCount: completed,
			Percent:        percent,
		}
	}
	return summaries, nil
}

// ChapterDetail returns the state of every catalog verse in a chapter,
// merging stored rows over an all-incomplete baseline
func (s *ProgressService) ChapterDetail(ctx context.Context, userID uuid.UUID, chapter int) ([]VerseState, error) {
	verses, err := catalog.VerseNumbers(chapter)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "No verses found for given chapter")
	}

	rows, err := s.progressRepo.FindByUserAndChapter(ctx, userID, chapter)
	if err != nil {
		s.logger.Error("Failed to load chapter progress", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Server error")
	}

	byVerse := make(map[int]reading.VerseProgress, len(rows))
	for _, row := range rows {
		byVerse[row.Verse] = row
	}

	states := make([]VerseState, len(verses))
	for i, v := range verses {
		states[i] = VerseState{Verse: v}
		if row, ok := byVerse[v]; ok {
			states[i].Completed = row.Completed
			states[i].CompletedAt = row.CompletedAt
		}
	}
	return states, nil
}
