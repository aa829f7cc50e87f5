// Package handler exposes the messaging façade to the site's UI over HTTP
// and WebSocket. Authentication is the site session middleware's concern;
// the already-authenticated viewer arrives in headers.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Chatch9856/caringhandsnky-sub000/internal/common"
	"github.com/Chatch9856/caringhandsnky-sub000/internal/messaging"
	"github.com/Chatch9856/caringhandsnky-sub000/internal/push"
)

const (
	headerViewerID   = "X-Viewer-ID"
	headerViewerRole = "X-Viewer-Role"
)

type Handler struct {
	svc      messaging.Service
	feed     push.Feed
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

func NewHandler(svc messaging.Service, feed push.Feed, log zerolog.Logger) *Handler {
	return &Handler{
		svc:  svc,
		feed: feed,
		log:  log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Routes mounts the messaging endpoints.
func (h *Handler) Routes(r *mux.Router) {
	api := r.PathPrefix("/api/messaging").Subrouter()
	api.HandleFunc("/conversations", h.ListConversations).Methods(http.MethodGet)
	api.HandleFunc("/counterparts", h.Counterparts).Methods(http.MethodGet)
	api.HandleFunc("/threads/{role}/{id}", h.OpenThread).Methods(http.MethodGet)
	api.HandleFunc("/threads/{role}/{id}/messages", h.Send).Methods(http.MethodPost)
	api.HandleFunc("/threads/{role}/{id}/read", h.MarkRead).Methods(http.MethodPost)
	api.HandleFunc("/ws", h.Live).Methods(http.MethodGet)
}

// SendRequest is the send-message request body.
type SendRequest struct {
	Content string `json:"content"`
}

// ConversationsResponse carries the derived conversation list. Degraded is
// set when the directory could not be resolved and partner names may be
// placeholders.
type ConversationsResponse struct {
	Conversations []messaging.Conversation `json:"conversations"`
	Degraded      bool                     `json:"degraded,omitempty"`
}

func (h *Handler) ListConversations(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}

	convs, err := h.svc.ListConversations(r.Context(), viewer)
	if err != nil && !errors.Is(err, common.ErrDirectoryUnavailable) {
		h.error(w, err)
		return
	}
	h.json(w, http.StatusOK, ConversationsResponse{
		Conversations: convs,
		Degraded:      err != nil,
	})
}

func (h *Handler) Counterparts(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}

	roster, err := h.svc.Counterparts(r.Context(), viewer)
	if err != nil {
		h.error(w, err)
		return
	}
	h.json(w, http.StatusOK, map[string][]common.RosterEntry{"counterparts": roster})
}

func (h *Handler) OpenThread(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}
	partner, ok := h.partner(w, r)
	if !ok {
		return
	}

	thread, err := h.svc.OpenThread(r.Context(), viewer, partner, nil)
	if err != nil {
		h.error(w, err)
		return
	}
	h.json(w, http.StatusOK, thread)
}

func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}
	partner, ok := h.partner(w, r)
	if !ok {
		return
	}

	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorMsg(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	msg, err := h.svc.Send(r.Context(), viewer, partner, req.Content, nil)
	if err != nil {
		h.error(w, err)
		return
	}
	h.json(w, http.StatusCreated, msg)
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}
	partner, ok := h.partner(w, r)
	if !ok {
		return
	}

	if err := h.svc.MarkRead(r.Context(), viewer, partner, nil); err != nil {
		h.error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) viewer(w http.ResponseWriter, r *http.Request) (common.ParticipantRef, bool) {
	id := r.Header.Get(headerViewerID)
	role, err := common.ParseRole(r.Header.Get(headerViewerRole))
	if id == "" || err != nil {
		h.errorMsg(w, http.StatusUnauthorized, "viewer identity required")
		return common.ParticipantRef{}, false
	}
	return common.ParticipantRef{ID: id, Role: role}, true
}

func (h *Handler) partner(w http.ResponseWriter, r *http.Request) (common.ParticipantRef, bool) {
	vars := mux.Vars(r)
	role, err := common.ParseRole(vars["role"])
	if err != nil || vars["id"] == "" {
		h.errorMsg(w, http.StatusBadRequest, "invalid counterpart")
		return common.ParticipantRef{}, false
	}
	return common.ParticipantRef{ID: vars["id"], Role: role}, true
}

func (h *Handler) json(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("failed to encode response")
	}
}

func (h *Handler) error(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrSendRejected):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, common.ErrDirectoryUnavailable), errors.Is(err, common.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	}
	h.errorMsg(w, status, err.Error())
}

func (h *Handler) errorMsg(w http.ResponseWriter, status int, msg string) {
	h.json(w, status, map[string]string{"error": msg})
}
