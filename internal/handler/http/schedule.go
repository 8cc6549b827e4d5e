package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/yahya12213/SiteManagement-sub010/internal/handler/http/response"
	schedulesvc "github.com/yahya12213/SiteManagement-sub010/internal/service/schedule"
)

type ScheduleHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ResolveDay(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	resolver *schedulesvc.Resolver
}

func NewScheduleHandler(resolver *schedulesvc.Resolver) ScheduleHandler {
	return &scheduleHandlerImpl{resolver: resolver}
}

// List implements ScheduleHandler.
func (h *scheduleHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.resolver.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, schedules)
}

// Get implements ScheduleHandler.
func (h *scheduleHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ws, err := h.resolver.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, ws)
}

// ResolveDay returns the schedule window for an employee on a date.
func (h *scheduleHandlerImpl) ResolveDay(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		response.BadRequest(w, "Query parameter 'date' must be a valid date (YYYY-MM-DD)", nil)
		return
	}

	resolved, err := h.resolver.ResolveDay(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resolved)
}
