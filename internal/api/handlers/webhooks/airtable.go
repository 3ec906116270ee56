package webhooks

import (
	"encoding/json"
	"log"
	"net/http"

	"Formbase/internal/core/responses"
)

// AirtableHandler receives change notifications pushed by the platform and
// hands them to the reconciler. The contract with the sender is narrow:
// 400 only for payloads it cannot parse, 200 for everything else, so the
// platform never retries events we have chosen to ignore.
type AirtableHandler struct {
	service responses.Service
}

// NewAirtableHandler creates a new webhook handler
func NewAirtableHandler(service responses.Service) *AirtableHandler {
	return &AirtableHandler{service: service}
}

// notificationPayload is the wire shape of a change notification
type notificationPayload struct {
	Event  string `json:"event"`
	Base   string `json:"base"`
	Table  string `json:"table"`
	Record struct {
		ID string `json:"id"`
	} `json:"record"`
}

// HandleNotification applies one platform change notification
// POST /api/webhooks/airtable
// Body: { "event": "...", "base": "...", "table": "...", "record": { "id": "..." } }
func (h *AirtableHandler) HandleNotification(w http.ResponseWriter, r *http.Request) {
	var payload notificationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "InvalidRequest",
			"message": "Invalid notification payload",
		})
		return
	}

	if payload.Event == "" || payload.Base == "" || payload.Table == "" || payload.Record.ID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "InvalidRequest",
			"message": "Notification is missing required fields",
		})
		return
	}

	err := h.service.ApplyEvent(r.Context(), responses.Notification{
		Event:    payload.Event,
		Base:     payload.Base,
		Table:    payload.Table,
		RecordID: payload.Record.ID,
	})
	if err != nil {
		// Internal failure: let the platform retry
		log.Printf("Webhook reconciliation failed for record %s: %v", payload.Record.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "InternalServerError",
			"message": "Failed to process notification",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleVerify answers the platform's endpoint liveness probe
// GET /api/webhooks/airtable
func (h *AirtableHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode webhook response: %v", err)
	}
}
