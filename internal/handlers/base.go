// Package handlers implements the HTTP endpoints: webhook ingestion, the
// message listing and stats queries, and the health probes.
package handlers

import (
	"encoding/json"
	"net/http"

	"sms-ingest/internal/config"
	"sms-ingest/internal/metrics"
	"sms-ingest/internal/payload"
	"sms-ingest/internal/signature"
	"sms-ingest/internal/storage"
)

type Handlers struct {
	storage   storage.Storage
	verifier  *signature.Verifier
	validator *payload.Validator
	config    *config.Config
	metrics   *metrics.Metrics
}

func New(store storage.Storage, verifier *signature.Verifier, validator *payload.Validator, cfg *config.Config, m *metrics.Metrics) *Handlers {
	return &Handlers{
		storage:   store,
		verifier:  verifier,
		validator: validator,
		config:    cfg,
		metrics:   m,
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// detailResponse is the error body shape shared by all endpoints.
type detailResponse struct {
	Detail string `json:"detail"`
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, detailResponse{Detail: detail})
}
