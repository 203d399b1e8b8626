package models

import (
	"time"

	"github.com/gita/backend/internal/domain/identity"
)

// UserModel is the persistence model for users
type UserModel struct {
	BaseModel
	Email       string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone       string `gorm:"type:varchar(32)"`
	DisplayName string `gorm:"type:varchar(255)"`
	AvatarURL   string `gorm:"type:text"`
	JapaCount   int64  `gorm:"not null"`
}

// TableName specifies the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts UserModel to domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:  m.BaseModel.ToDomain(),
		Email:       m.Email,
		Phone:       m.Phone,
		DisplayName: m.DisplayName,
		AvatarURL:   m.AvatarURL,
		JapaCount:   m.JapaCount,
	}
}

// FromDomain populates UserModel from domain User
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Email = u.Email
	m.Phone = u.Phone
	m.DisplayName = u.DisplayName
	m.AvatarURL = u.AvatarURL
	m.JapaCount = u.JapaCount
}

// OTPModel is the persistence model for one-time-code issuances
type OTPModel struct {
	BaseModel
	DeliveryTarget string    `gorm:"type:varchar(255);not null;index"`
	OTPHash        string    `gorm:"type:varchar(255);not null"`
	AttemptsLeft   int       `gorm:"not null"`
	ExpiresAt      time.Time `gorm:"not null;index"`
	Used           bool      `gorm:"not null"`
}

// TableName specifies the table name for OTPModel
func (OTPModel) TableName() string {
	return "otps"
}

// ToDomain converts OTPModel to domain OTPRecord
func (m *OTPModel) ToDomain() *identity.OTPRecord {
	return &identity.OTPRecord{
		BaseEntity:     m.BaseModel.ToDomain(),
		DeliveryTarget: m.DeliveryTarget,
		OTPHash:        m.OTPHash,
		AttemptsLeft:   m.AttemptsLeft,
		ExpiresAt:      m.ExpiresAt,
		Used:           m.Used,
	}
}

// FromDomain populates OTPModel from domain OTPRecord
func (m *OTPModel) FromDomain(o *identity.OTPRecord) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.DeliveryTarget = o.DeliveryTarget
	m.OTPHash = o.OTPHash
	m.AttemptsLeft = o.AttemptsLeft
	m.ExpiresAt = o.ExpiresAt
	m.Used = o.Used
}
