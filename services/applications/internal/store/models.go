package store

import (
	"time"

	"jobboard/pkg/domain"
)

// ApplicationModel is the applications table.
type ApplicationModel struct {
	ID          string    `gorm:"primaryKey"`
	JobID       string    `gorm:"index;not null"`
	ResumeID    string    `gorm:"not null"`
	CandidateID string    `gorm:"index;not null"`
	CoverLetter string    `gorm:"type:text"`
	Status      string    `gorm:"index;not null"`
	Comment     string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (ApplicationModel) TableName() string { return "applications" }

func applicationToModel(a domain.Application) ApplicationModel {
	return ApplicationModel{
		ID:          a.ID,
		JobID:       a.JobID,
		ResumeID:    a.ResumeID,
		CandidateID: a.CandidateID,
		CoverLetter: a.CoverLetter,
		Status:      string(a.Status),
		Comment:     a.Comment,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func applicationFromModel(m ApplicationModel) domain.Application {
	return domain.Application{
		ID:          m.ID,
		JobID:       m.JobID,
		ResumeID:    m.ResumeID,
		CandidateID: m.CandidateID,
		CoverLetter: m.CoverLetter,
		Status:      domain.ApplicationStatus(m.Status),
		Comment:     m.Comment,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}
