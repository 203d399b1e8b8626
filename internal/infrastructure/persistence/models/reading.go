package models

import (
	"time"

	"github.com/gita/backend/internal/domain/reading"
	"github.com/google/uuid"
)

// ProgressModel is the persistence model for per-verse reading progress.
// One row per (user, chapter, verse); upserts key on that triple.
type ProgressModel struct {
	BaseModel
	UserID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_verse,priority:1"`
	Chapter     int        `gorm:"not null;uniqueIndex:idx_progress_user_verse,priority:2"`
	Verse       int        `gorm:"not null;uniqueIndex:idx_progress_user_verse,priority:3"`
	Completed   bool       `gorm:"not null"`
	CompletedAt *time.Time `gorm:""`
}

// TableName specifies the table name for ProgressModel
func (ProgressModel) TableName() string {
	return "verse_progress"
}

// ToDomain converts ProgressModel to domain VerseProgress
func (m *ProgressModel) ToDomain() *reading.VerseProgress {
	return &reading.VerseProgress{
		BaseEntity:  m.BaseModel.ToDomain(),
		UserID:      m.UserID,
		Chapter:     m.Chapter,
		Verse:       m.Verse,
		Completed:   m.Completed,
		CompletedAt: m.CompletedAt,
	}
}

// FromDomain populates ProgressModel from domain VerseProgress
func (m *ProgressModel) FromDomain(p *reading.VerseProgress) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.UserID = p.UserID
	m.Chapter = p.Chapter
	m.Verse = p.Verse
	m.Completed = p.Completed
	m.CompletedAt = p.CompletedAt
}

// FavouriteModel is the persistence model for favourite verses. The
// unique index carries the toggle's idempotency under concurrency.
type FavouriteModel struct {
	BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favourites_user_verse,priority:1"`
	Chapter int       `gorm:"not null;uniqueIndex:idx_favourites_user_verse,priority:2"`
	Verse   int       `gorm:"not null;uniqueIndex:idx_favourites_user_verse,priority:3"`
}

// TableName specifies the table name for FavouriteModel
func (FavouriteModel) TableName() string {
	return "favourites"
}

// ToDomain converts FavouriteModel to domain Favourite
func (m *FavouriteModel) ToDomain() *reading.Favourite {
	return &reading.Favourite{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Chapter:    m.Chapter,
		Verse:      m.Verse,
	}
}

// FromDomain populates FavouriteModel from domain Favourite
func (m *FavouriteModel) FromDomain(f *reading.Favourite) {
	m.FromDomainBaseEntity(f.BaseEntity)
	m.UserID = f.UserID
	m.Chapter = f.Chapter
	m.Verse = f.Verse
}
