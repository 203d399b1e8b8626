package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/gita/backend/internal/domain/identity"
	"github.com/gita/backend/internal/domain/shared"
	"github.com/gita/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOTPRepository implements OTPRepository using GORM
type GormOTPRepository struct {
	db *gorm.DB
}

// NewGormOTPRepository creates a new GormOTPRepository
func NewGormOTPRepository(db *gorm.DB) *GormOTPRepository {
	return &GormOTPRepository{db: db}
}

// Create inserts a new OTP record
func (r *GormOTPRepository) Create(ctx context.Context, otp *identity.OTPRecord) error {
	var model models.OTPModel
	model.FromDomain(otp)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByID finds an OTP record by its ID
func (r *GormOTPRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.OTPRecord, error) {
	var model models.OTPModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindLatestByTarget returns the most recently created record for a
// delivery target
func (r *GormOTPRepository) FindLatestByTarget(ctx context.Context, target string) (*identity.OTPRecord, error) {
	var model models.OTPModel
	if err := r.db.WithContext(ctx).
		Where("delivery_target = ?", target).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Update saves the mutable fields of an OTP record
func (r *GormOTPRepository) Update(ctx context.Context, otp *identity.OTPRecord) error {
	result := r.db.WithContext(ctx).
		Model(&models.OTPModel{}).
		Where("id = ?", otp.ID).
		Updates(map[string]interface{}{
			"attempts_left": otp.AttemptsLeft,
			"used":          otp.Used,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteExpired garbage-collects records past their expiry and returns
// the number deleted
func (r *GormOTPRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&models.OTPModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Ensure GormOTPRepository implements OTPRepository
var _ identity.OTPRepository = (*GormOTPRepository)(nil)
