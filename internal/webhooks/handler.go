package webhooks

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Adilkhan6644/webhook-service/internal/leads"
	"github.com/Adilkhan6644/webhook-service/internal/observability/metrics"
	"github.com/Adilkhan6644/webhook-service/pkg/logging"
)

// Handler handles HTTP requests for the webhook ingestion endpoints.
type Handler struct {
	repo    leads.Repository
	norm    *Normalizer
	logger  *logging.Logger
	metrics *metrics.WebhookMetrics
}

// NewHandler creates a new webhook handler. metrics may be nil.
func NewHandler(repo leads.Repository, logger *logging.Logger, m *metrics.WebhookMetrics) *Handler {
	return &Handler{
		repo:    repo,
		norm:    NewNormalizer(),
		logger:  logger,
		metrics: m,
	}
}

type ingestResponse struct {
	OK            bool   `json:"ok"`
	ID            int64  `json:"id"`
	CorrelationID string `json:"correlation_id"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Ingest handles POST /v1/webhooks/{tenant}/{provider}.
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	route := RouteContext{
		Tenant:   chi.URLParam(r, "tenant"),
		Provider: chi.URLParam(r, "provider"),
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error("failed to read webhook body", "error", err, "tenant", route.Tenant, "provider", route.Provider)
		h.metrics.ObserveIngest(route.Provider, "unknown", "rejected")
		respondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	var body Object
	if err := json.Unmarshal(raw, &body); err != nil {
		h.logger.Error("invalid webhook body", "error", err, "tenant", route.Tenant, "provider", route.Provider)
		h.metrics.ObserveIngest(route.Provider, "unknown", "rejected")
		respondError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}

	format := Classify(body)
	lead := h.norm.Normalize(body, raw, route)

	stored, err := h.repo.Insert(r.Context(), lead)
	if err != nil {
		h.logger.Error("failed to persist lead",
			"error", err,
			"event_id", lead.EventID,
			"tenant", lead.TenantID,
			"provider", lead.Provider,
		)
		h.metrics.ObserveIngest(route.Provider, format.String(), "rejected")
		respondError(w, http.StatusBadRequest, "Error processing webhook: "+err.Error())
		return
	}

	h.metrics.ObserveIngest(route.Provider, format.String(), "accepted")
	h.metrics.ObserveLatency(format.String(), time.Since(start).Seconds())
	h.logger.Info("lead ingested",
		"id", stored.ID,
		"event_id", stored.EventID,
		"tenant", stored.TenantID,
		"provider", stored.Provider,
		"format", format.String(),
	)

	respondJSON(w, http.StatusAccepted, ingestResponse{
		OK:            true,
		ID:            stored.ID,
		CorrelationID: uuid.NewString(),
	})
}

// Alive handles GET /v1/webhooks/{tenant}/{provider}.
func (h *Handler) Alive(w http.ResponseWriter, r *http.Request) {
	tenant := chi.URLParam(r, "tenant")
	provider := chi.URLParam(r, "provider")
	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Webhook is alive for tenant=%s, provider=%s", tenant, provider),
	})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, errorResponse{Detail: detail})
}
