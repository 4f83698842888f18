// Package fetch implements the remote passage client used as the resolver's
// fallback content source.
package fetch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/FocuswithJustin/AcaciaBible/core/errors"
	"github.com/FocuswithJustin/AcaciaBible/core/resolve"
	"github.com/FocuswithJustin/AcaciaBible/internal/logging"
)

// DefaultTimeout bounds a single passage request.
const DefaultTimeout = 10 * time.Second

// Config holds remote source configuration.
type Config struct {
	BaseURL string        // Passage endpoint, e.g. https://api.example.org/v3/passage/text
	Token   string        // API token; empty means no credential
	Timeout time.Duration // Per-request timeout (0 = DefaultTimeout)
}

// Client fetches passage text over HTTP. It implements resolve.Fetcher.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a Client. The credential check happens per-call so a client
// built without a token still constructs cleanly.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
	}
}

// passageResponse is the remote service's answer shape.
type passageResponse struct {
	Canonical string   `json:"canonical"`
	Passages  []string `json:"passages"`
}

// Fetch retrieves the passage text for a canonical reference. A missing
// token fails before any network traffic.
func (c *Client) Fetch(ctx context.Context, reference string) (*resolve.FetchResult, error) {
	if c.token == "" {
		return nil, &errors.MissingCredentialError{Reference: reference}
	}

	endpoint := c.baseURL + "?q=" + url.QueryEscape(reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "building request for %s", reference)
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		logging.FetchAttempt(reference, 0, err)
		return nil, &errors.APIError{Message: "passage request failed", Err: err}
	}
	defer resp.Body.Close()

	// Bound the body read; passage responses are small.
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		logging.FetchAttempt(reference, resp.StatusCode, err)
		return nil, &errors.APIError{StatusCode: resp.StatusCode, Message: "reading passage response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := errors.NewAPI(resp.StatusCode, http.StatusText(resp.StatusCode))
		logging.FetchAttempt(reference, resp.StatusCode, apiErr)
		return nil, apiErr
	}

	var parsed passageResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		logging.FetchAttempt(reference, resp.StatusCode, err)
		return nil, &errors.APIError{StatusCode: resp.StatusCode, Message: "decoding passage response", Err: err}
	}

	logging.FetchAttempt(reference, resp.StatusCode, nil, "passages", len(parsed.Passages))
	return &resolve.FetchResult{
		Canonical: parsed.Canonical,
		Passages:  parsed.Passages,
	}, nil
}
