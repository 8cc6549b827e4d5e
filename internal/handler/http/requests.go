package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/approval"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/attendance"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/leave"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/overtime"
	"github.com/yahya12213/SiteManagement-sub010/internal/handler/http/middleware"
	"github.com/yahya12213/SiteManagement-sub010/internal/handler/http/response"
	approvalsvc "github.com/yahya12213/SiteManagement-sub010/internal/service/approval"
	leavesvc "github.com/yahya12213/SiteManagement-sub010/internal/service/leave"
	overtimesvc "github.com/yahya12213/SiteManagement-sub010/internal/service/overtime"
)

type RequestHandler interface {
	CreateLeave(w http.ResponseWriter, r *http.Request)
	CreateOvertime(w http.ResponseWriter, r *http.Request)
	CreateCorrection(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Chain(w http.ResponseWriter, r *http.Request)
	ListLeaveTypes(w http.ResponseWriter, r *http.Request)
	GetLeaveBalance(w http.ResponseWriter, r *http.Request)
}

type requestHandlerImpl struct {
	approvalService   *approvalsvc.Service
	leaveService      *leavesvc.Service
	overtimeService   *overtimesvc.Service
	attendanceService attendance.AttendanceService
}

func NewRequestHandler(
	approvalService *approvalsvc.Service,
	leaveService *leavesvc.Service,
	overtimeService *overtimesvc.Service,
	attendanceService attendance.AttendanceService,
) RequestHandler {
	return &requestHandlerImpl{
		approvalService:   approvalService,
		leaveService:      leaveService,
		overtimeService:   overtimeService,
		attendanceService: attendanceService,
	}
}

// CreateLeave implements RequestHandler.
func (h *requestHandlerImpl) CreateLeave(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.leaveService.CreateRequest(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request created", result)
}

// CreateOvertime implements RequestHandler.
func (h *requestHandlerImpl) CreateOvertime(w http.ResponseWriter, r *http.Request) {
	var req overtime.CreateOvertimeRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.overtimeService.CreateRequest(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime request created", result)
}

// CreateCorrection implements RequestHandler.
func (h *requestHandlerImpl) CreateCorrection(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateCorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CreateCorrection(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Correction request created", result)
}

func requestKindFromURL(r *http.Request) (approval.RequestKind, bool) {
	kind := approval.RequestKind(chi.URLParam(r, "kind"))
	return kind, kind.Valid()
}

type decisionRequest struct {
	Comment *string `json:"comment,omitempty"`
	Reason  *string `json:"reason,omitempty"`
}

// Approve implements RequestHandler.
func (h *requestHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	kind, ok := requestKindFromURL(r)
	if !ok {
		response.BadRequest(w, "Unknown request kind", nil)
		return
	}
	requestID := chi.URLParam(r, "id")

	var body decisionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	decision, err := h.approvalService.Approve(r.Context(), kind, requestID, middleware.ProfileID(r), body.Comment)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request approved", decision)
}

// Reject implements RequestHandler.
func (h *requestHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	kind, ok := requestKindFromURL(r)
	if !ok {
		response.BadRequest(w, "Unknown request kind", nil)
		return
	}
	requestID := chi.URLParam(r, "id")

	var body decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	comment := ""
	if body.Comment != nil {
		comment = *body.Comment
	}

	decision, err := h.approvalService.Reject(r.Context(), kind, requestID, middleware.ProfileID(r), comment)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request rejected", decision)
}

// Cancel implements RequestHandler.
func (h *requestHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	kind, ok := requestKindFromURL(r)
	if !ok {
		response.BadRequest(w, "Unknown request kind", nil)
		return
	}
	requestID := chi.URLParam(r, "id")

	var body decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	reason := ""
	if body.Reason != nil {
		reason = *body.Reason
	}

	decision, err := h.approvalService.Cancel(r.Context(), kind, requestID, middleware.ProfileID(r), reason)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request cancelled", decision)
}

// History implements RequestHandler.
func (h *requestHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	kind, ok := requestKindFromURL(r)
	if !ok {
		response.BadRequest(w, "Unknown request kind", nil)
		return
	}
	requestID := chi.URLParam(r, "id")

	records, err := h.approvalService.ListByRequest(r.Context(), kind, requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// Chain implements RequestHandler.
func (h *requestHandlerImpl) Chain(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	chain, err := h.approvalService.GetChain(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, chain)
}

// ListLeaveTypes implements RequestHandler.
func (h *requestHandlerImpl) ListLeaveTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.leaveService.ListTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, types)
}

// GetLeaveBalance implements RequestHandler.
func (h *requestHandlerImpl) GetLeaveBalance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	leaveTypeID := r.URL.Query().Get("leave_type_id")
	if leaveTypeID == "" {
		response.BadRequest(w, "Query parameter 'leave_type_id' is required", nil)
		return
	}

	balance, err := h.leaveService.GetBalance(r.Context(), employeeID, leaveTypeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}
