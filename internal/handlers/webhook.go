package handlers

import (
	"io"
	"net/http"

	"sms-ingest/internal/common/errors"
	"sms-ingest/internal/common/logging"
	"sms-ingest/internal/metrics"
	"sms-ingest/internal/middleware"
	"sms-ingest/internal/storage"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw request body.
const SignatureHeader = "X-Signature"

// Webhook ingests one message delivery. Replayed deliveries of an already
// stored message_id are acknowledged with the same 200 as the first one, so
// at-least-once senders can retry blindly.
func (h *Handlers) Webhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	// The signature covers the raw bytes, so it is checked before any
	// parsing. The 401 detail is deliberately fixed: distinguishing a
	// missing header from a mismatch would hand an attacker an oracle.
	if err := h.verifier.Verify(body, r.Header.Get(SignatureHeader)); err != nil {
		h.metrics.CountWebhookOutcome(metrics.OutcomeInvalidSignature)
		middleware.RecordFields(ctx, logging.Field{Key: "result", Value: metrics.OutcomeInvalidSignature})
		writeDetail(w, http.StatusUnauthorized, "invalid signature")
		return
	}

	msg, err := h.validator.Parse(body)
	if err != nil {
		h.metrics.CountWebhookOutcome(metrics.OutcomeValidationError)
		middleware.RecordFields(ctx, logging.Field{Key: "result", Value: metrics.OutcomeValidationError})
		writeDetail(w, http.StatusUnprocessableEntity, errorDetail(err))
		return
	}

	created, err := h.storage.InsertMessage(&storage.Message{
		MessageID: msg.MessageID,
		Sender:    msg.Sender,
		To:        msg.To,
		Timestamp: msg.Timestamp,
		Text:      msg.Text,
	})
	if err != nil {
		h.metrics.CountWebhookOutcome(metrics.OutcomeStorageError)
		middleware.RecordFields(ctx, logging.Field{Key: "result", Value: metrics.OutcomeStorageError})
		logging.Error("failed to store message", err, logging.Field{Key: "message_id", Value: msg.MessageID})
		writeDetail(w, http.StatusInternalServerError, "internal error")
		return
	}

	result := metrics.OutcomeCreated
	if !created {
		result = metrics.OutcomeDuplicate
	}
	h.metrics.CountWebhookOutcome(result)
	middleware.RecordFields(ctx,
		logging.Field{Key: "result", Value: result},
		logging.Field{Key: "message_id", Value: msg.MessageID},
	)

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// errorDetail returns the human-readable message of an AppError, falling
// back to the raw error string.
func errorDetail(err error) string {
	if appErr, ok := err.(*errors.AppError); ok {
		return appErr.Message
	}
	return err.Error()
}
