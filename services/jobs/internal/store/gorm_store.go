package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"jobboard/pkg/domain"
	pgstore "jobboard/pkg/store"
)

// GormStore implements Store on Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the database and migrates the jobs table.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := pgstore.Open(dsn, pgstore.Schema{Models: []any{&JobModel{}}})
	if err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) CreateJob(ctx context.Context, job domain.Job) error {
	model := jobToModel(job)
	return pgstore.TranslateDuplicate(s.db.WithContext(ctx).Create(&model).Error)
}

func (s *GormStore) GetJob(ctx context.Context, id string) (domain.Job, bool, error) {
	return s.first(ctx, s.db.WithContext(ctx).Where("id = ?", id))
}

func (s *GormStore) GetEmployerJob(ctx context.Context, id, employerID string) (domain.Job, bool, error) {
	return s.first(ctx, s.db.WithContext(ctx).Where("id = ? AND employer_id = ?", id, employerID))
}

func (s *GormStore) first(_ context.Context, q *gorm.DB) (domain.Job, bool, error) {
	var model JobModel
	if err := q.First(&model).Error; err != nil {
		if pgstore.IsNotFound(err) {
			return domain.Job{}, false, nil
		}
		return domain.Job{}, false, fmt.Errorf("query job: %w", err)
	}
	return jobFromModel(model), true, nil
}

func (s *GormStore) UpdateJob(ctx context.Context, job domain.Job) (bool, error) {
	model := jobToModel(job)
	res := s.db.WithContext(ctx).Model(&JobModel{}).
		Where("id = ? AND employer_id = ?", job.ID, job.EmployerID).
		Updates(map[string]any{
			"title":           model.Title,
			"description":     model.Description,
			"requirements":    model.Requirements,
			"salary":          model.Salary,
			"currency":        model.Currency,
			"location":        model.Location,
			"employment_type": model.EmploymentType,
			"company_name":    model.CompanyName,
			"salary_from":     model.SalaryFrom,
			"salary_to":       model.SalaryTo,
			"updated_at":      model.UpdatedAt,
		})
	if res.Error != nil {
		return false, fmt.Errorf("update job: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) DeleteJob(ctx context.Context, id, employerID string) (bool, error) {
	res := s.db.WithContext(ctx).Where("id = ? AND employer_id = ?", id, employerID).Delete(&JobModel{})
	if res.Error != nil {
		return false, fmt.Errorf("delete job: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) SearchJobs(ctx context.Context, f domain.JobFilter) ([]domain.Job, int64, error) {
	q := s.db.WithContext(ctx).Model(&JobModel{})
	if f.Query != "" {
		pattern := likePattern(f.Query)
		q = q.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if f.Location != "" {
		q = q.Where("location ILIKE ?", likePattern(f.Location))
	}
	if f.EmploymentType != "" {
		q = q.Where("employment_type = ?", f.EmploymentType)
	}
	if f.SalaryFrom != nil {
		q = q.Where("salary >= ?", *f.SalaryFrom)
	}
	if f.SalaryTo != nil {
		q = q.Where("salary <= ?", *f.SalaryTo)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}
	var models []JobModel
	if err := q.Order("posted_at DESC").Order("id").Offset(f.Offset()).Limit(f.Limit).Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("search jobs: %w", err)
	}
	jobs := make([]domain.Job, 0, len(models))
	for _, m := range models {
		jobs = append(jobs, jobFromModel(m))
	}
	return jobs, total, nil
}

// likePattern wraps term for a substring ILIKE, escaping wildcards.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}
