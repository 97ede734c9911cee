package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/viratco/klord/internal/contract"
	"github.com/viratco/klord/schema"
)

// maxResponseBytes bounds how much of a backend response is read.
const maxResponseBytes = 64 << 20

// HTTPSource fetches records from the booking REST backend.
type HTTPSource struct {
	baseURL    string
	path       string
	token      string
	httpClient *http.Client
	now        func() time.Time
}

var _ contract.RecordSource = &HTTPSource{} // Compile-time check

// NewHTTPSource creates a source for GET {baseURL}{path} with an optional bearer token.
func NewHTTPSource(baseURL, path, token string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		baseURL:    strings.TrimRight(baseURL, "/"),
		path:       path,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

// Describe implements the RecordSource interface.
func (s *HTTPSource) Describe() string {
	return s.baseURL + s.path
}

// FetchRecords implements the RecordSource interface.
func (s *HTTPSource) FetchRecords(ctx context.Context) ([]schema.Record, error) {
	if exp, ok := TokenExpiry(s.token); ok && exp.Before(s.now()) {
		contract.LogWarn("API token", fmt.Errorf("token expired at %s", exp.Format(contract.DateTimeFormat)))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+s.path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("backend returned %s: %s", resp.Status, snippet(body))
	}

	records, err := DecodeRecords(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", s.Describe(), err)
	}
	return records, nil
}

// TokenExpiry returns the exp claim of a JWT without verifying its signature.
// Opaque tokens and tokens without exp report false.
func TokenExpiry(token string) (time.Time, bool) {
	if strings.Count(token, ".") != 2 {
		return time.Time{}, false
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// snippet returns the start of a response body for error messages.
func snippet(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
