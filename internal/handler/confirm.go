package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"convite/internal/rsvp"
	"convite/internal/websocket"
)

// ConfirmationHandler exposes the single-guest and family confirmation
// endpoints. Confirmation responses use "message" for display text and,
// on rejection, "reason" so clients can branch without inspecting the
// message wording.
type ConfirmationHandler struct {
	svc    *rsvp.Service
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewConfirmationHandler(svc *rsvp.Service, hub *websocket.Hub, logger *slog.Logger) *ConfirmationHandler {
	return &ConfirmationHandler{svc: svc, hub: hub, logger: logger}
}

func (h *ConfirmationHandler) ConfirmGuest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GuestName string `json:"guest_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "JSON inválido"})
		return
	}

	result, err := h.svc.ConfirmGuest(r.PathValue("code"), req.GuestName)
	if err != nil {
		h.writeServiceError(w, err, "confirm guest")
		return
	}
	if !result.OK {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"reason":  result.Reason,
			"message": result.Message,
		})
		return
	}

	h.hub.Broadcast(websocket.Confirmed(result.EventID, strings.TrimSpace(req.GuestName), 1))
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": result.Message})
}

func (h *ConfirmationHandler) ConfirmFamily(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GuestNames []string `json:"guest_names"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "JSON inválido"})
		return
	}

	result, err := h.svc.ConfirmFamily(r.PathValue("code"), req.GuestNames)
	if err != nil {
		h.writeServiceError(w, err, "confirm family")
		return
	}

	// Rejected family requests may still have inserted earlier names; any
	// insert is worth announcing to listening organizer pages.
	if result.ConfirmedCount > 0 {
		h.hub.Broadcast(websocket.Confirmed(result.EventID, "", result.ConfirmedCount))
	}

	if !result.OK {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success":         false,
			"reason":          result.Reason,
			"message":         result.Message,
			"confirmed_count": result.ConfirmedCount,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"message":         result.Message,
		"confirmed_count": result.ConfirmedCount,
	})
}

func (h *ConfirmationHandler) writeServiceError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, rsvp.ErrEventNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Evento não encontrado"})
		return
	}
	h.logger.Error(op, "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "Erro interno do servidor"})
}
