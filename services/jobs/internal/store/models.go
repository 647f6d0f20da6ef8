package store

import (
	"time"

	"github.com/lib/pq"

	"jobboard/pkg/domain"
)

// JobModel is the jobs table.
type JobModel struct {
	ID             string         `gorm:"primaryKey"`
	EmployerID     string         `gorm:"not null;index"`
	Title          string         `gorm:"not null"`
	Description    string         `gorm:"type:text"`
	Requirements   pq.StringArray `gorm:"type:text[]"`
	Salary         float64        `gorm:"type:numeric"`
	Currency       string         `gorm:"size:8"`
	Location       string         `gorm:"index"`
	EmploymentType string         `gorm:"index"`
	CompanyName    string         `gorm:"not null;default:'Unknown Company'"`
	SalaryFrom     float64        `gorm:"type:numeric"`
	SalaryTo       float64        `gorm:"type:numeric"`
	PostedAt       time.Time      `gorm:"not null;index"`
	UpdatedAt      time.Time      `gorm:"not null"`
}

func (JobModel) TableName() string { return "jobs" }

func jobToModel(j domain.Job) JobModel {
	return JobModel{
		ID:             j.ID,
		EmployerID:     j.EmployerID,
		Title:          j.Title,
		Description:    j.Description,
		Requirements:   pq.StringArray(j.Requirements),
		Salary:         j.Salary,
		Currency:       j.Currency,
		Location:       j.Location,
		EmploymentType: j.EmploymentType,
		CompanyName:    j.CompanyName,
		SalaryFrom:     j.SalaryFrom,
		SalaryTo:       j.SalaryTo,
		PostedAt:       j.PostedAt,
		UpdatedAt:      j.UpdatedAt,
	}
}

func jobFromModel(m JobModel) domain.Job {
	reqs := []string(m.Requirements)
	if reqs == nil {
		reqs = []string{}
	}
	return domain.Job{
		ID:             m.ID,
		EmployerID:     m.EmployerID,
		Title:          m.Title,
		Description:    m.Description,
		Requirements:   reqs,
		Salary:         m.Salary,
		Currency:       m.Currency,
		Location:       m.Location,
		EmploymentType: m.EmploymentType,
		CompanyName:    m.CompanyName,
		SalaryFrom:     m.SalaryFrom,
		SalaryTo:       m.SalaryTo,
		PostedAt:       m.PostedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}
