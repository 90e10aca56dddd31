// Package api exposes the dashboard HTTP interface: roster queries, map
// specs, and new-customer intake.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/cris-labs/cris/internal/filter"
	"github.com/cris-labs/cris/internal/intake"
	"github.com/cris-labs/cris/internal/mapspec"
	"github.com/cris-labs/cris/internal/model"
	"github.com/cris-labs/cris/internal/roster"
	"github.com/cris-labs/cris/internal/scorecache"
)

// Server wires the core components behind HTTP handlers.
type Server struct {
	store   roster.Store
	intake  *intake.Service
	scorer  *scorecache.Scorer // optional; nil disables on-demand overlay scoring
	avatars map[string]string
}

// NewServer creates the API server. avatars is the process-lifetime avatar
// assignment keyed by customer ID.
func NewServer(store roster.Store, svc *intake.Service, scorer *scorecache.Scorer, avatars map[string]string) *Server {
	return &Server{store: store, intake: svc, scorer: scorer, avatars: avatars}
}

// Router builds the chi router with CORS for the web view.
func (s *Server) Router(corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/api/customers", s.handleListCustomers)
	r.Get("/api/customers/{id}", s.handleGetCustomer)
	r.Post("/api/customers", s.handleAddCustomer)
	r.Get("/api/map", s.handleMap)
	r.Get("/api/map.html", s.handleMapHTML)

	return r
}

// requestLogger logs each request with latency via the global zap logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		zap.L().Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("latency", time.Since(start)),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusFilter parses repeated status query params. No params means the
// default dashboard view: current and new customers, churned hidden.
func statusFilter(r *http.Request) (filter.StatusSet, error) {
	params := r.URL.Query()["status"]
	if len(params) == 0 {
		return filter.NewStatusSet(model.StatusStayed, model.StatusJoined), nil
	}
	set := filter.NewStatusSet()
	for _, p := range params {
		st := model.Status(p)
		if !st.Valid() {
			return nil, model.Invalid("status", "unknown value %q", p)
		}
		set[st] = true
	}
	return set, nil
}

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	statuses, err := statusFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}
	records := filter.ByStatus(s.store.All(), statuses)
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, err := filter.FindByID(s.store.All(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) buildMap(r *http.Request) (mapspec.MapSpec, error) {
	statuses, err := statusFilter(r)
	if err != nil {
		return mapspec.MapSpec{}, err
	}

	q := r.URL.Query()
	opts := mapspec.Options{
		ShowProbability: q.Get("probability") == "true",
		Cluster:         q.Get("cluster") == "true",
		Avatars:         s.avatars,
	}

	records := s.store.All()

	// A successful ID search recenters the map on that customer.
	if focus := q.Get("focus"); focus != "" {
		coord, err := parseCoordinate(focus)
		if err != nil {
			return mapspec.MapSpec{}, err
		}
		opts.Focus = coord
	} else if id := q.Get("customer_id"); id != "" {
		c, err := filter.FindByID(records, id)
		if err != nil {
			return mapspec.MapSpec{}, err
		}
		if c.HasLocation() {
			opts.Focus = &mapspec.Coordinate{Lat: *c.Latitude, Lon: *c.Longitude}
		}
	}

	filtered := filter.ByStatus(records, statuses)

	if opts.ShowProbability && s.scorer != nil {
		scored, err := s.scorer.ScoreAll(r.Context(), filtered)
		if err != nil {
			return mapspec.MapSpec{}, eris.Wrap(err, "api: score overlay")
		}
		filtered = scored
	}

	return mapspec.Build(filtered, opts), nil
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	spec, err := s.buildMap(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, spec)
}

func (s *Server) handleMapHTML(w http.ResponseWriter, r *http.Request) {
	spec, err := s.buildMap(r)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := mapspec.WriteHTML(w, "CRIS", spec); err != nil {
		zap.L().Error("map html render failed", zap.Error(err))
	}
}

// addCustomerRequest is the intake submission: the form fields plus the point
// chosen on the map.
type addCustomerRequest struct {
	intake.FieldSet
	Location *mapspec.Coordinate `json:"location"`
}

type addCustomerResponse struct {
	Customer              model.Customer `json:"customer"`
	PredictedLabel        model.Status   `json:"predicted_label"`
	PredictionProbability float64        `json:"prediction_probability"`
}

func (s *Server) handleAddCustomer(w http.ResponseWriter, r *http.Request) {
	var req addCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, model.Invalid("body", "invalid request body"))
		return
	}

	c, err := s.intake.Register(r.Context(), req.FieldSet, req.Location)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, addCustomerResponse{
		Customer:              *c,
		PredictedLabel:        c.PredictedLabel,
		PredictionProbability: *c.PredictionProbability,
	})
}

func parseCoordinate(s string) (*mapspec.Coordinate, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return nil, model.Invalid("focus", "expected lat,lon")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, model.Invalid("focus", "bad latitude %q", parts[0])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, model.Invalid("focus", "bad longitude %q", parts[1])
	}
	return &mapspec.Coordinate{Lat: lat, Lon: lon}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("response encode failed", zap.Error(err))
	}
}

// writeError maps the core error taxonomy onto HTTP statuses: validation is
// the client's problem, a search miss is a plain 404, storage is ours, and
// anything else came from the model server.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	switch {
	case model.IsValidation(err):
		status = http.StatusUnprocessableEntity
	case eris.Is(err, filter.ErrNotFound):
		status = http.StatusNotFound
	case roster.IsStorage(err):
		status = http.StatusInternalServerError
	}
	if status >= 500 {
		zap.L().Error("request failed", zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
