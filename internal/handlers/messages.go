package handlers

import (
	"net/http"
	"strconv"

	"sms-ingest/internal/storage"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// messageListResponse is the envelope for GET /messages.
type messageListResponse struct {
	Data   []*storage.Message `json:"data"`
	Total  int                `json:"total"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}

// ListMessages returns stored messages ordered by timestamp, with optional
// sender, since and substring filters. limit is clamped to [1, 100] and
// offset to >= 0; out-of-range values fall back rather than erroring.
func (h *Handlers) ListMessages(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := parseBoundedInt(query.Get("limit"), defaultListLimit, 1, maxListLimit)
	offset := parseBoundedInt(query.Get("offset"), 0, 0, int(^uint(0)>>1))

	filters := storage.MessageFilters{
		Sender:       query.Get("from"),
		Since:        query.Get("since"),
		TextContains: query.Get("q"),
	}

	messages, total, err := h.storage.ListMessages(filters, limit, offset)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "internal error")
		return
	}

	if messages == nil {
		messages = []*storage.Message{}
	}

	writeJSON(w, http.StatusOK, messageListResponse{
		Data:   messages,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func parseBoundedInt(raw string, fallback, min, max int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < min || value > max {
		return fallback
	}
	return value
}
