package store

import (
	"time"

	"jobboard/pkg/domain"
)

// activeIndex enforces one pending or verified verification per user.
const activeIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_verifications_active_user
	ON verifications (user_id) WHERE status IN ('pending', 'verified')`

// VerificationModel is the verifications table.
type VerificationModel struct {
	ID              string     `gorm:"primaryKey"`
	UserID          string     `gorm:"index;not null"`
	FirstName       string     `gorm:"not null"`
	LastName        string     `gorm:"not null"`
	MiddleName      string     `gorm:"not null;default:''"`
	Series          string     `gorm:"not null"`
	Number          string     `gorm:"not null"`
	IssuedBy        string     `gorm:"not null"`
	IssuedDate      string     `gorm:"not null"`
	Citizenship     string     `gorm:"not null"`
	Status          string     `gorm:"index;not null"`
	Reason          string     `gorm:"type:text"`
	PassportValid   bool       `gorm:"not null;default:false"`
	MatchesRegistry bool       `gorm:"not null;default:false"`
	VerifiedAt      *time.Time `gorm:"column:verified_at"`
	CreatedAt       time.Time  `gorm:"not null"`
	UpdatedAt       time.Time  `gorm:"not null"`
}

func (VerificationModel) TableName() string { return "verifications" }

func verificationToModel(v domain.Verification) VerificationModel {
	return VerificationModel{
		ID:              v.ID,
		UserID:          v.UserID,
		FirstName:       v.FirstName,
		LastName:        v.LastName,
		MiddleName:      v.MiddleName,
		Series:          v.Passport.Series,
		Number:          v.Passport.Number,
		IssuedBy:        v.Passport.IssuedBy,
		IssuedDate:      v.Passport.IssuedDate,
		Citizenship:     v.Citizenship,
		Status:          string(v.Status),
		Reason:          v.Reason,
		PassportValid:   v.PassportValid,
		MatchesRegistry: v.MatchesRegistry,
		VerifiedAt:      v.VerifiedAt,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func verificationFromModel(m VerificationModel) domain.Verification {
	var verifiedAt *time.Time
	if m.VerifiedAt != nil {
		t := m.VerifiedAt.UTC()
		verifiedAt = &t
	}
	return domain.Verification{
		ID:         m.ID,
		UserID:     m.UserID,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		MiddleName: m.MiddleName,
		Passport: domain.Passport{
			Series:     m.Series,
			Number:     m.Number,
			IssuedBy:   m.IssuedBy,
			IssuedDate: m.IssuedDate,
		},
		Citizenship:     m.Citizenship,
		Status:          domain.VerificationStatus(m.Status),
		Reason:          m.Reason,
		PassportValid:   m.PassportValid,
		MatchesRegistry: m.MatchesRegistry,
		VerifiedAt:      verifiedAt,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}
