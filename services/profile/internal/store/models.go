package store

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"

	"jobboard/pkg/domain"
)

// ProfileModel is the profiles table, one row per user.
type ProfileModel struct {
	UserID             string    `gorm:"primaryKey"`
	Email              string    `gorm:"not null;default:''"`
	PhoneNumber        string    `gorm:"not null;default:''"`
	PassportSeries     string    `gorm:"not null;default:''"`
	PassportNumber     string    `gorm:"not null;default:''"`
	PassportIssuedBy   string    `gorm:"not null;default:''"`
	PassportIssuedDate string    `gorm:"not null;default:''"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

func (ProfileModel) TableName() string { return "profiles" }

// ResumeModel is the resumes table.
type ResumeModel struct {
	ID          string                                  `gorm:"primaryKey"`
	UserID      string                                  `gorm:"index;not null"`
	Title       string                                  `gorm:"not null"`
	Position    string                                  `gorm:"not null"`
	Skills      pq.StringArray                          `gorm:"type:text[]"`
	Experience  datatypes.JSONType[[]domain.Experience] `gorm:"type:jsonb"`
	Education   datatypes.JSONType[[]domain.Education]  `gorm:"type:jsonb"`
	Description string                                  `gorm:"type:text"`
	CreatedAt   time.Time                               `gorm:"not null"`
	UpdatedAt   time.Time                               `gorm:"not null"`
}

func (ResumeModel) TableName() string { return "resumes" }

func profileToModel(p domain.Profile) ProfileModel {
	return ProfileModel{
		UserID:             p.UserID,
		Email:              p.Email,
		PhoneNumber:        p.PhoneNumber,
		PassportSeries:     p.Passport.Series,
		PassportNumber:     p.Passport.Number,
		PassportIssuedBy:   p.Passport.IssuedBy,
		PassportIssuedDate: p.Passport.IssuedDate,
		CreatedAt:          p.UpdatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func profileFromModel(m ProfileModel) domain.Profile {
	return domain.Profile{
		UserID:      m.UserID,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
		Passport: domain.Passport{
			Series:     m.PassportSeries,
			Number:     m.PassportNumber,
			IssuedBy:   m.PassportIssuedBy,
			IssuedDate: m.PassportIssuedDate,
		},
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

func resumeToModel(r domain.Resume) ResumeModel {
	return ResumeModel{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Position:    r.Position,
		Skills:      pq.StringArray(r.Skills),
		Experience:  datatypes.NewJSONType(r.Experience),
		Education:   datatypes.NewJSONType(r.Education),
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func resumeFromModel(m ResumeModel) domain.Resume {
	return domain.Resume{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Position:    m.Position,
		Skills:      []string(m.Skills),
		Experience:  m.Experience.Data(),
		Education:   m.Education.Data(),
		Description: m.Description,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}
