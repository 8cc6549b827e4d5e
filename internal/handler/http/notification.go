package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/yahya12213/SiteManagement-sub010/internal/handler/http/middleware"
	"github.com/yahya12213/SiteManagement-sub010/internal/handler/http/response"
	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/sse"
	notificationsvc "github.com/yahya12213/SiteManagement-sub010/internal/service/notification"
)

type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	MarkAsRead(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notifService *notificationsvc.Service
	hub          *sse.Hub
}

func NewNotificationHandler(notifService *notificationsvc.Service, hub *sse.Hub) NotificationHandler {
	return &notificationHandlerImpl{
		notifService: notifService,
		hub:          hub,
	}
}

// List returns notifications for the authenticated profile.
func (h *notificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.ProfileID(r)
	if profileID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	unreadOnly := r.URL.Query().Get("unread_only") == "true"

	items, err := h.notifService.List(r.Context(), profileID, unreadOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, items)
}

// MarkAsRead marks one notification as read.
func (h *notificationHandlerImpl) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.ProfileID(r)
	if profileID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.notifService.MarkRead(r.Context(), id, profileID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notification marked as read", nil)
}

// Stream pushes the profile's notification events over SSE.
func (h *notificationHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.ProfileID(r)
	if profileID == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(profileID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
