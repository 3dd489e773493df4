package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"convite/internal/model"
	"convite/internal/store"
	"convite/internal/websocket"
)

type EventHandler struct {
	events        *store.EventStore
	confirmations *store.ConfirmationStore
	hub           *websocket.Hub
	loc           *time.Location
	logger        *slog.Logger
}

func NewEventHandler(es *store.EventStore, cs *store.ConfirmationStore, hub *websocket.Hub, loc *time.Location, logger *slog.Logger) *EventHandler {
	return &EventHandler{events: es, confirmations: cs, hub: hub, loc: loc, logger: logger}
}

type eventRequest struct {
	Title       string  `json:"title"`
	DateTime    string  `json:"date_time"`
	Location    string  `json:"location"`
	FullAddress *string `json:"full_address"`
	Phone       *string `json:"phone"`
	MapsLink    *string `json:"maps_link"`
	Message     *string `json:"message"`
}

// parseEventRequest decodes and validates the create/update payload,
// writing the error response itself when validation fails.
func parseEventRequest(w http.ResponseWriter, r *http.Request) (*eventRequest, time.Time, bool) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "JSON inválido"})
		return nil, time.Time{}, false
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Location = strings.TrimSpace(req.Location)
	req.DateTime = strings.TrimSpace(req.DateTime)
	if req.Title == "" || req.DateTime == "" || req.Location == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Título, data/hora e local são obrigatórios"})
		return nil, time.Time{}, false
	}

	dateTime, err := parseFlexibleTime(req.DateTime)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Data/hora em formato inválido"})
		return nil, time.Time{}, false
	}

	return &req, dateTime, true
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, dateTime, ok := parseEventRequest(w, r)
	if !ok {
		return
	}

	event, err := h.events.Create(req.Title, dateTime, req.Location, req.FullAddress, req.Phone, req.MapsLink, req.Message)
	if err != nil {
		h.logger.Error("create event", "error", err)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "event": localized(*event, h.loc)})
}

// GetByCode is the public invitation view: event details plus the current
// confirmation list.
func (h *EventHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	h.eventView(w, r, false)
}

// AdminView is the organizer view behind the same link code, adding the
// confirmation total.
func (h *EventHandler) AdminView(w http.ResponseWriter, r *http.Request) {
	h.eventView(w, r, true)
}

func (h *EventHandler) eventView(w http.ResponseWriter, r *http.Request, withTotal bool) {
	code := r.PathValue("code")

	event, err := h.events.GetByCode(code)
	if err != nil {
		h.logger.Error("get event by code", "error", err)
		writeInternalError(w)
		return
	}
	if event == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "Evento não encontrado"})
		return
	}

	confirmations, err := h.confirmations.ListByEvent(event.ID)
	if err != nil {
		h.logger.Error("list confirmations", "error", err)
		writeInternalError(w)
		return
	}
	if confirmations == nil {
		confirmations = []model.Confirmation{}
	}
	for i := range confirmations {
		confirmations[i].ConfirmedAt = confirmations[i].ConfirmedAt.In(h.loc)
	}

	resp := map[string]any{
		"success":       true,
		"event":         localized(*event, h.loc),
		"confirmations": confirmations,
	}
	if withTotal {
		resp["total_confirmations"] = len(confirmations)
	}
	writeJSON(w, http.StatusOK, resp)
}

// ClearConfirmations wipes the event's confirmation list without touching
// the event. Safe to repeat: a second call deletes zero rows.
func (h *EventHandler) ClearConfirmations(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("eventId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "ID inválido"})
		return
	}

	event, err := h.events.GetByID(id)
	if err != nil {
		h.logger.Error("get event", "error", err)
		writeInternalError(w)
		return
	}
	if event == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "Evento não encontrado"})
		return
	}

	if _, err := h.confirmations.DeleteByEvent(id); err != nil {
		h.logger.Error("clear confirmations", "error", err)
		writeInternalError(w)
		return
	}

	h.hub.Broadcast(websocket.Cleared(id))
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// localized returns a copy of the event with timestamps shifted into the
// configured display offset.
func localized(e model.Event, loc *time.Location) model.Event {
	e.DateTime = e.DateTime.In(loc)
	e.CreatedAt = e.CreatedAt.In(loc)
	return e
}

func parseFlexibleTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04", s)
}

func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeInternalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "Erro interno do servidor"})
}
