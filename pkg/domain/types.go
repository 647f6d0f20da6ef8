package domain

import (
	"math"
	"time"
)

type UserRole string

const (
	RoleCandidate UserRole = "candidate"
	RoleEmployer  UserRole = "employer"
)

// Valid reports whether r is a role users may register with.
func (r UserRole) Valid() bool {
	return r == RoleCandidate || r == RoleEmployer
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

const DefaultCompanyName = "Unknown Company"

type Job struct {
	ID             string    `json:"id"`
	EmployerID     string    `json:"employer_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Requirements   []string  `json:"requirements"`
	Salary         float64   `json:"salary"`
	Currency       string    `json:"currency"`
	Location       string    `json:"location"`
	EmploymentType string    `json:"employment_type"`
	CompanyName    string    `json:"company_name"`
	SalaryFrom     float64   `json:"salary_from"`
	SalaryTo       float64   `json:"salary_to"`
	PostedAt       time.Time `json:"posted_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// JobFilter narrows a job search. Zero values mean "no constraint".
type JobFilter struct {
	Query          string
	Location       string
	EmploymentType string
	SalaryFrom     *float64
	SalaryTo       *float64
	Page           int
	Limit          int
}

// Offset returns the row offset of the requested page, saturating at
// math.MaxInt instead of overflowing.
func (f JobFilter) Offset() int {
	if f.Page < 1 || f.Limit < 1 {
		return 0
	}
	if f.Page-1 > math.MaxInt/f.Limit {
		return math.MaxInt
	}
	return (f.Page - 1) * f.Limit
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

type Application struct {
	ID          string            `json:"id"`
	JobID       string            `json:"job_id"`
	ResumeID    string            `json:"resume_id"`
	CandidateID string            `json:"candidate_id"`
	CoverLetter string            `json:"cover_letter"`
	Status      ApplicationStatus `json:"status"`
	Comment     string            `json:"comment"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type Passport struct {
	Series     string `json:"series"`
	Number     string `json:"number"`
	IssuedBy   string `json:"issued_by"`
	IssuedDate string `json:"issued_date"`
}

type Profile struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Passport    Passport  `json:"passport"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        int    `json:"year"`
}

// ResumeIDPrefix marks resume ids exposed over the API.
const ResumeIDPrefix = "r-"

type Resume struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	Title       string       `json:"title"`
	Position    string       `json:"position"`
	Skills      []string     `json:"skills"`
	Experience  []Experience `json:"experience"`
	Education   []Education  `json:"education"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// ResumePatch carries the fields of a partial resume update; nil means unchanged.
type ResumePatch struct {
	Title       *string
	Position    *string
	Skills      *[]string
	Experience  *[]Experience
	Education   *[]Education
	Description *string
}

type Review struct {
	ID          string    `json:"id"`
	JobID       string    `json:"job_id"`
	AuthorID    string    `json:"author_id"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	IsAnonymous bool      `json:"is_anonymous"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Device struct {
	ID          string    `json:"id"`
	DeviceID    string    `json:"device_id"`
	UserID      string    `json:"user_id"`
	PushEnabled bool      `json:"push_enabled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type DeliveryStatus string

const (
	DeliveryQueued DeliveryStatus = "queued"
	DeliverySent   DeliveryStatus = "sent"
	DeliveryFailed DeliveryStatus = "failed"
)

type Notification struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Type      string         `json:"type"`
	Data      map[string]any `json:"data,omitempty"`
	Status    DeliveryStatus `json:"status"`
	SentAt    *time.Time     `json:"sent_at"`
	CreatedAt time.Time      `json:"created_at"`
}

type Subscription struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Subscribed bool      `json:"subscribed"`
	Categories []string  `json:"categories"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type EmailMessage struct {
	ID         string         `json:"id"`
	To         string         `json:"to"`
	Subject    string         `json:"subject"`
	Body       string         `json:"body"`
	TemplateID string         `json:"template_id"`
	Variables  map[string]any `json:"variables,omitempty"`
	Status     DeliveryStatus `json:"status"`
	SentAt     *time.Time     `json:"sent_at"`
	CreatedAt  time.Time      `json:"created_at"`
}

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// Active reports whether the status blocks a new request from the same user.
func (s VerificationStatus) Active() bool {
	return s == VerificationPending || s == VerificationVerified
}

type Verification struct {
	ID              string             `json:"id"`
	UserID          string             `json:"user_id"`
	FirstName       string             `json:"first_name"`
	LastName        string             `json:"last_name"`
	MiddleName      string             `json:"middle_name,omitempty"`
	Passport        Passport           `json:"passport"`
	Citizenship     string             `json:"citizenship"`
	Status          VerificationStatus `json:"status"`
	Reason          string             `json:"reason,omitempty"`
	PassportValid   bool               `json:"passport_valid"`
	MatchesRegistry bool               `json:"matches_registry"`
	VerifiedAt      *time.Time         `json:"verified_at"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}
