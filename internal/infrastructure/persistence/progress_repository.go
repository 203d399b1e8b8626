package persistence

import (
	"context"
	"time"

	"github.com/gita/backend/internal/domain/reading"
	"github.com/gita/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProgressRepository implements ProgressRepository using GORM
type GormProgressRepository struct {
	db *gorm.DB
}

// NewGormProgressRepository creates a new GormProgressRepository
func NewGormProgressRepository(db *gorm.DB) *GormProgressRepository {
	return &GormProgressRepository{db: db}
}

// progressConflict is the upsert target: one row per (user, chapter, verse).
var progressConflict = clause.OnConflict{
	Columns: []clause.Column{
		{Name: "user_id"},
		{Name: "chapter"},
		{Name: "verse"},
	},
	DoUpdates: clause.AssignmentColumns([]string{"completed", "completed_at", "updated_at"}),
}

// Upsert inserts or updates a single verse progress row
func (r *GormProgressRepository) Upsert(ctx context.Context, progress *reading.VerseProgress) error {
	var model models.ProgressModel
	model.FromDomain(progress)
	model.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Clauses(progressConflict).
		Create(&model).Error
}

// UpsertBatch inserts or updates many verse progress rows in one statement
func (r *GormProgressRepository) UpsertBatch(ctx context.Context, items []*reading.VerseProgress) error {
	if len(items) == 0 {
		return nil
	}
	progressModels := make([]models.ProgressModel, len(items))
	now := time.Now()
	for i, p := range items {
		progressModels[i].FromDomain(p)
		progressModels[i].UpdatedAt = now
	}
	return r.db.WithContext(ctx).
		Clauses(progressConflict).
		Create(&progressModels).Error
}

// FindByUserAndChapter returns the user's progress rows for one chapter,
// ordered by verse
func (r *GormProgressRepository) FindByUserAndChapter(ctx context.Context, userID uuid.UUID, chapter int) ([]reading.VerseProgress, error) {
	var progressModels []models.ProgressModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND chapter = ?", userID, chapter).
		Order("verse ASC").
		Find(&progressModels).Error; err != nil {
		return nil, err
	}

	items := make([]reading.VerseProgress, len(progressModels))
	for i, model := range progressModels {
		items[i] = *model.ToDomain()
	}
	return items, nil
}

// CountCompletedByChapter returns per-chapter completed verse counts for
// a user, ordered by chapter. Chapters with no completed verses are absent.
func (r *GormProgressRepository) CountCompletedByChapter(ctx context.Context, userID uuid.UUID) ([]reading.ChapterCompletion, error) {
	var completions []reading.ChapterCompletion
	if err := r.db.WithContext(ctx).
		Model(&models.ProgressModel{}).
		Select("chapter, COUNT(*) AS completed_count").
		Where("user_id = ? AND completed = ?", userID, true).
		Group("chapter").
		Order("chapter ASC").
		Scan(&completions).Error; err != nil {
		return nil, err
	}
	return completions, nil
}

// Ensure GormProgressRepository implements ProgressRepository
var _ reading.ProgressRepository = (*GormProgressRepository)(nil)
