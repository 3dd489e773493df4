package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"convite/internal/auth"
	"convite/internal/model"
	"convite/internal/store"
	"convite/internal/websocket"
)

// MasterAdminHandler exposes the cross-event admin surface: shared-secret
// login plus list/update/delete over any event.
type MasterAdminHandler struct {
	master *auth.Master
	events *store.EventStore
	hub    *websocket.Hub
	loc    *time.Location
	logger *slog.Logger
}

func NewMasterAdminHandler(master *auth.Master, es *store.EventStore, hub *websocket.Hub, loc *time.Location, logger *slog.Logger) *MasterAdminHandler {
	return &MasterAdminHandler{master: master, events: es, hub: hub, loc: loc, logger: logger}
}

func (h *MasterAdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "JSON inválido"})
		return
	}

	if !h.master.Verify(req.Password) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "Senha incorreta"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *MasterAdminHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.ListWithStats()
	if err != nil {
		h.logger.Error("list events with stats", "error", err)
		writeInternalError(w)
		return
	}
	if events == nil {
		events = []model.EventStats{}
	}
	for i := range events {
		events[i].Event = localized(events[i].Event, h.loc)
		if events[i].LastConfirmation != nil {
			t := events[i].LastConfirmation.In(h.loc)
			events[i].LastConfirmation = &t
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"events":       events,
		"total_events": len(events),
	})
}

func (h *MasterAdminHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "ID inválido"})
		return
	}

	// Payload problems answer 400 even when the id is unknown.
	req, dateTime, ok := parseEventRequest(w, r)
	if !ok {
		return
	}

	existing, err := h.events.GetByID(id)
	if err != nil {
		h.logger.Error("get event", "error", err)
		writeInternalError(w)
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "Evento não encontrado"})
		return
	}

	event, err := h.events.Update(id, req.Title, dateTime, req.Location, req.FullAddress, req.Phone, req.MapsLink, req.Message)
	if err != nil {
		h.logger.Error("update event", "error", err)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "event": localized(*event, h.loc)})
}

func (h *MasterAdminHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "ID inválido"})
		return
	}

	existing, err := h.events.GetByID(id)
	if err != nil {
		h.logger.Error("get event", "error", err)
		writeInternalError(w)
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "Evento não encontrado"})
		return
	}

	if err := h.events.Delete(id); err != nil {
		h.logger.Error("delete event", "error", err)
		writeInternalError(w)
		return
	}

	h.hub.Broadcast(websocket.EventDeleted(id))
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
