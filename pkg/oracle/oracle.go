// Package oracle answers cross-service existence questions ("does this job
// exist?") without the caller owning the data.
package oracle

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ExistenceOracle reports whether entities owned by other services exist.
type ExistenceOracle interface {
	JobExists(ctx context.Context, jobID string) (bool, error)
	ResumeExists(ctx context.Context, resumeID, userID string) (bool, error)
}

// AlwaysExists answers yes to everything.
type AlwaysExists struct{}

func (AlwaysExists) JobExists(context.Context, string) (bool, error) { return true, nil }

func (AlwaysExists) ResumeExists(context.Context, string, string) (bool, error) { return true, nil }

// HTTPOracle resolves jobs against the jobs service's public GET /api/jobs/{id}
// and defers resume checks to Resumes.
type HTTPOracle struct {
	baseURL    string
	httpClient *http.Client
	resumes    ExistenceOracle
}

// NewHTTPOracle builds an oracle against jobsURL. Resume lookups fall back
// to AlwaysExists since resumes are private to their owner.
func NewHTTPOracle(jobsURL string) *HTTPOracle {
	return &HTTPOracle{
		baseURL:    strings.TrimRight(strings.TrimSpace(jobsURL), "/"),
		httpClient: &http.Client{Timeout: 5 * time.Second},
		resumes:    AlwaysExists{},
	}
}

// JobExists returns false on 404 and an error on any other non-200 answer.
func (o *HTTPOracle) JobExists(ctx context.Context, jobID string) (bool, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return false, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/api/jobs/"+url.PathEscape(jobID), nil)
	if err != nil {
		return false, err
	}
	resp, err := o.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("query jobs service: %w", err)
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("query jobs service: unexpected status %s", resp.Status)
	}
}

func (o *HTTPOracle) ResumeExists(ctx context.Context, resumeID, userID string) (bool, error) {
	return o.resumes.ResumeExists(ctx, resumeID, userID)
}
