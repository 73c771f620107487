package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/SachinASIET26/Neethi-sub000/internal/config"
	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
	"github.com/SachinASIET26/Neethi-sub000/internal/core/ports"
	"github.com/SachinASIET26/Neethi-sub000/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	cfg      config.Config
	metrics  *metrics.HTTPServerMetrics
	service  ports.LegalQueryService
	sections ports.SectionReader
}

func NewRouter(
	cfg config.Config,
	serverMetrics *metrics.HTTPServerMetrics,
	service ports.LegalQueryService,
	sections ports.SectionReader,
) *Router {
	return &Router{
		cfg:      cfg,
		metrics:  serverMetrics,
		service:  service,
		sections: sections,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/legal/query", rt.legalQuery)
	mux.HandleFunc("/v1/sections/", rt.getSection)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	handler := requestValidationMiddleware(mux)
	if rt.cfg.APIRateLimitRPS > 0 {
		burst := rt.cfg.APIRateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		limiter := rate.NewLimiter(rate.Limit(rt.cfg.APIRateLimitRPS), burst)
		handler = rateLimitMiddleware(handler, limiter)
	}
	if rt.cfg.APIMaxInFlight > 0 {
		wait := time.Duration(rt.cfg.APIBackpressureWaitMS) * time.Millisecond
		if wait <= 0 {
			wait = 100 * time.Millisecond
		}
		handler = backpressureMiddleware(handler, rt.cfg.APIMaxInFlight, wait)
	}
	handler = accessLogMiddleware(handler)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) legalQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req domain.RetrievalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query is required"})
		return
	}

	bundle, err := rt.service.RetrieveAndVerify(r.Context(), req)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	rt.recordResponse(bundle)
	writeJSON(w, http.StatusOK, bundle)
}

func (rt *Router) getSection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/v1/sections/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "path must be /v1/sections/{act_code}/{section_number}"})
		return
	}

	section, err := rt.sections.GetSection(r.Context(), parts[0], parts[1])
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, section)
}

func (rt *Router) recordResponse(bundle *domain.ResponseBundle) {
	if rt.metrics == nil {
		return
	}
	rt.metrics.RecordResponse(serviceName, string(bundle.Status), string(bundle.QueryType), len(bundle.Citations))
	for _, reason := range bundle.Degraded {
		rt.metrics.RecordDegraded(serviceName, reason)
	}
	for stage, ms := range bundle.StageMS {
		rt.metrics.RecordStageDuration(serviceName, stage, time.Duration(ms)*time.Millisecond)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
