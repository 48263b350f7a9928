// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the extractor and comparison client over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/pdiddy/numdict/internal/compare"
	"github.com/pdiddy/numdict/internal/document"
	"github.com/pdiddy/numdict/internal/logging"
	"github.com/pdiddy/numdict/internal/metrics"
	"github.com/pdiddy/numdict/pkg/types"
)

const defaultMaxBodyBytes = 1 << 20

// RouterConfig carries the router's dependencies. Compare may be nil, in
// which case /api/v1/compare answers 503.
type RouterConfig struct {
	Annotator    *document.Annotator
	Compare      *compare.Client
	Metrics      *metrics.Metrics
	Logger       logging.Logger
	MaxBodyBytes int64
	Version      string
}

// ScanRequest is the body of POST /api/v1/scan and /api/v1/compare.
type ScanRequest struct {
	Text   string `json:"text"`
	Format string `json:"format,omitempty"`
	Unique bool   `json:"unique,omitempty"`
}

// ScanResponse is returned by POST /api/v1/scan.
type ScanResponse struct {
	Segments []types.Segment    `json:"segments"`
	Matches  []types.Annotation `json:"matches"`
}

// CompareResponse is returned by POST /api/v1/compare.
type CompareResponse struct {
	Segments []types.Segment            `json:"segments"`
	Matches  []types.ComparedAnnotation `json:"matches"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handler struct {
	cfg RouterConfig
	log logging.Logger
}

// NewRouter builds the route tree: health and metrics endpoints plus the
// v1 API.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Annotator == nil {
		cfg.Annotator = &document.Annotator{Metrics: cfg.Metrics}
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	h := &handler{cfg: cfg, log: cfg.Logger.Named("http")}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(h.logRequests)

	r.Get("/healthz", h.health)
	r.Handle("/metrics", cfg.Metrics.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Post("/scan", h.scan)
		api.Post("/compare", h.compare)
	})
	return r
}

// logRequests logs each request and counts it by route pattern.
func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		h.cfg.Metrics.ObserveRequest(route, status)
		h.log.Info("request",
			logging.String("method", r.Method),
			logging.String("route", route),
			logging.Int("status", status),
			logging.Int("bytes", ww.BytesWritten()),
			logging.Duration("elapsed", time.Since(start)),
			logging.String("request_id", chimw.GetReqID(r.Context())),
		)
	})
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": h.cfg.Version})
}

func (h *handler) scan(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	segs, anns, ok := h.annotate(w, r, req)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ScanResponse{Segments: segs, Matches: orEmpty(anns)})
}

func (h *handler) compare(w http.ResponseWriter, r *http.Request) {
	if h.cfg.Compare == nil {
		writeError(w, http.StatusServiceUnavailable, "comparison lookups are not configured")
		return
	}
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	segs, anns, ok := h.annotate(w, r, req)
	if !ok {
		return
	}
	compared, err := h.cfg.Compare.CompareAll(r.Context(), anns, 0)
	if err != nil {
		writeError(w, http.StatusGatewayTimeout, err.Error())
		return
	}
	if compared == nil {
		compared = []types.ComparedAnnotation{}
	}
	writeJSON(w, http.StatusOK, CompareResponse{Segments: segs, Matches: compared})
}

func (h *handler) decode(w http.ResponseWriter, r *http.Request) (ScanRequest, bool) {
	var req ScanRequest
	body := http.MaxBytesReader(w, r.Body, h.cfg.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return req, false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return req, false
	}
	return req, true
}

func (h *handler) annotate(w http.ResponseWriter, r *http.Request, req ScanRequest) ([]types.Segment, []types.Annotation, bool) {
	format, err := document.ParseFormat(req.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, nil, false
	}
	segs, anns, err := h.cfg.Annotator.AnnotateDocument(r.Context(), format, []byte(req.Text))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, nil, false
	}
	if req.Unique {
		anns = document.Unique(anns)
	}
	if segs == nil {
		segs = []types.Segment{}
	}
	return segs, anns, true
}

func orEmpty(anns []types.Annotation) []types.Annotation {
	if anns == nil {
		return []types.Annotation{}
	}
	return anns
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
