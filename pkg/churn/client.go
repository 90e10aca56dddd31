// Package churn provides a client for the external churn-model server. The
// model is opaque and pre-trained; this package only speaks its scoring
// interface.
package churn

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/cris-labs/cris/internal/model"
)

// Prediction is the model's verdict for one feature row.
type Prediction struct {
	Label       model.Status `json:"label"`
	Probability float64      `json:"probability"`
}

// Predictor scores a single feature row. Implementations may be slow; callers
// bound them with the context.
type Predictor interface {
	Predict(ctx context.Context, features model.FeatureRow) (*Prediction, error)
}

// Option configures the HTTP client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.hc = hc }
}

// WithRateLimit caps requests per second to the model server.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *httpClient) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

type httpClient struct {
	baseURL string
	hc      *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Predictor talking to the model server at baseURL.
func NewClient(baseURL string, opts ...Option) Predictor {
	c := &httpClient{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type predictResponse struct {
	Label       string  `json:"prediction_label"`
	Probability float64 `json:"prediction_score"`
}

// Predict implements Predictor. No retries here: the caller decides whether a
// scoring failure is worth repeating.
func (c *httpClient) Predict(ctx context.Context, features model.FeatureRow) (*Prediction, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "churn: rate limit wait")
		}
	}

	body, err := json.Marshal(features)
	if err != nil {
		return nil, eris.Wrap(err, "churn: marshal features")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "churn: build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "churn: call model server")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, eris.Errorf("churn: model server returned %d: %s", resp.StatusCode, string(raw))
	}

	var pr predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, eris.Wrap(err, "churn: decode response")
	}

	return parsePrediction(pr.Label, pr.Probability)
}

func parsePrediction(label string, probability float64) (*Prediction, error) {
	l := model.Status(label)
	if l != model.StatusStayed && l != model.StatusChurned {
		return nil, eris.Errorf("churn: unexpected label %q", label)
	}
	if probability < 0 || probability > 1 {
		return nil, fmt.Errorf("churn: probability %v outside [0,1]", probability)
	}
	return &Prediction{Label: l, Probability: probability}, nil
}
