// Package identity talks to the external passport registry.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobboard/pkg/domain"
)

// Result is the registry's answer for one verification. Status stays
// pending until the registry has decided.
type Result struct {
	Status          domain.VerificationStatus `json:"status"`
	Reason          string                    `json:"reason,omitempty"`
	PassportValid   bool                      `json:"passport_valid"`
	MatchesRegistry bool                      `json:"matches_registry"`
}

// Verifier submits passport data for checking and reports the outcome.
type Verifier interface {
	Submit(ctx context.Context, v domain.Verification) error
	Check(ctx context.Context, v domain.Verification) (Result, error)
}

// Simulated accepts every submission and verifies it on the first check.
type Simulated struct{}

func (Simulated) Submit(context.Context, domain.Verification) error { return nil }

func (Simulated) Check(context.Context, domain.Verification) (Result, error) {
	return Result{Status: domain.VerificationVerified, PassportValid: true, MatchesRegistry: true}, nil
}

// HTTPVerifier is a JSON client for a registry exposing
// POST /verifications and GET /verifications/{id}.
type HTTPVerifier struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPVerifier builds a client for the registry at baseURL.
func NewHTTPVerifier(baseURL, apiKey string) (*HTTPVerifier, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("identity service url required")
	}
	return &HTTPVerifier{
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type submitRequest struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	MiddleName  string `json:"middle_name,omitempty"`
	Series      string `json:"series"`
	Number      string `json:"number"`
	IssuedBy    string `json:"issued_by"`
	IssuedDate  string `json:"issued_date"`
	Citizenship string `json:"citizenship"`
}

func (c *HTTPVerifier) Submit(ctx context.Context, v domain.Verification) error {
	body, err := json.Marshal(submitRequest{
		ID:          v.ID,
		FirstName:   v.FirstName,
		LastName:    v.LastName,
		MiddleName:  v.MiddleName,
		Series:      v.Passport.Series,
		Number:      v.Passport.Number,
		IssuedBy:    v.Passport.IssuedBy,
		IssuedDate:  v.Passport.IssuedDate,
		Citizenship: v.Citizenship,
	})
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/verifications", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("submit verification: unexpected status %s", resp.Status)
	}
	return nil
}

func (c *HTTPVerifier) Check(ctx context.Context, v domain.Verification) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/verifications/"+url.PathEscape(v.ID), nil)
	if err != nil {
		return Result{}, err
	}
	resp, err := c.do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("check verification: unexpected status %s", resp.Status)
	}
	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return Result{}, fmt.Errorf("decode verification result: %w", err)
	}
	switch res.Status {
	case domain.VerificationPending, domain.VerificationVerified, domain.VerificationRejected:
	default:
		return Result{}, fmt.Errorf("check verification: unknown status %q", res.Status)
	}
	return res, nil
}

func (c *HTTPVerifier) do(req *http.Request) (*http.Response, error) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call identity service: %w", err)
	}
	return resp, nil
}
