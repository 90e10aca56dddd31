package churn

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cris-labs/cris/internal/model"
)

func features() model.FeatureRow {
	lat, lon := 12.0, -8.0
	return model.FeatureRow{
		Gender:        model.GenderMale,
		Age:           30,
		Married:       model.No,
		Latitude:      &lat,
		Longitude:     &lon,
		MonthlyCharge: 24.0,
		TotalCharges:  288.0,
	}
}

func TestPredict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var row map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&row))
		assert.Equal(t, float64(30), row["Age"])
		assert.NotContains(t, row, "Customer ID")

		json.NewEncoder(w).Encode(map[string]any{
			"prediction_label": "Stayed",
			"prediction_score": 0.82,
		})
	}))
	defer srv.Close()

	p, err := NewClient(srv.URL).Predict(context.Background(), features())
	require.NoError(t, err)
	assert.Equal(t, model.StatusStayed, p.Label)
	assert.InDelta(t, 0.82, p.Probability, 1e-9)
}

func TestPredictServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Predict(context.Background(), features())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestPredictRejectsBadLabel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"prediction_label": "Joined",
			"prediction_score": 0.5,
		})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Predict(context.Background(), features())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected label")
}

func TestPredictRejectsOutOfRangeProbability(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"prediction_label": "Churned",
			"prediction_score": 1.7,
		})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Predict(context.Background(), features())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside [0,1]")
}

func TestPredictHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(srv.URL).Predict(ctx, features())
	require.Error(t, err)
}

func TestRateLimitOption(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(map[string]any{
			"prediction_label": "Stayed",
			"prediction_score": 0.5,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithRateLimit(100, 1))
	for i := 0; i < 3; i++ {
		_, err := c.Predict(context.Background(), features())
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
}
