package store

import (
	"time"

	"jobboard/pkg/domain"
)

// ReviewModel is the reviews table; (job_id, author_id) is unique.
type ReviewModel struct {
	ID          string    `gorm:"primaryKey"`
	JobID       string    `gorm:"not null;uniqueIndex:idx_reviews_job_author,priority:1"`
	AuthorID    string    `gorm:"not null;uniqueIndex:idx_reviews_job_author,priority:2"`
	Rating      int       `gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Comment     string    `gorm:"type:text"`
	IsAnonymous bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (ReviewModel) TableName() string { return "reviews" }

func reviewToModel(r domain.Review) ReviewModel {
	return ReviewModel{
		ID:          r.ID,
		JobID:       r.JobID,
		AuthorID:    r.AuthorID,
		Rating:      r.Rating,
		Comment:     r.Comment,
		IsAnonymous: r.IsAnonymous,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func reviewFromModel(m ReviewModel) domain.Review {
	return domain.Review{
		ID:          m.ID,
		JobID:       m.JobID,
		AuthorID:    m.AuthorID,
		Rating:      m.Rating,
		Comment:     m.Comment,
		IsAnonymous: m.IsAnonymous,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}
