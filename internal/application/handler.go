package application

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/worklink/worklink-backend/internal"
	"github.com/worklink/worklink-backend/internal/job"
	"github.com/worklink/worklink-backend/internal/transport"
	"github.com/worklink/worklink-backend/pkg/logger"
)

type ServiceAPI interface {
	Apply(userID string, dto CreateApplicationDTO) (*Application, error)
	MyApplications(userID string, filter ListFilter) ([]*Detail, error)
	JobApplications(employerID, jobID string, filter ListFilter) ([]*Detail, error)
	UpdateStatus(employerID, applicationID string, dto UpdateStatusDTO) (*Application, error)
	Withdraw(userID, applicationID string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	p, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateApplicationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.Apply(p.ID, dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) MyApplications(w http.ResponseWriter, r *http.Request) {
	p, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	skip, limit := h.Pagination(r)
	apps, err := h.Service.MyApplications(p.ID, ListFilter{
		Status: r.URL.Query().Get("status"),
		Skip:   skip,
		Limit:  limit,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"applications": apps,
		"skip":         skip,
		"limit":        limit,
	})
}

func (h *Handler) JobApplications(w http.ResponseWriter, r *http.Request) {
	p, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	skip, limit := h.Pagination(r)
	apps, err := h.Service.JobApplications(p.ID, chi.URLParam(r, "jobID"), ListFilter{
		Status: r.URL.Query().Get("status"),
		Skip:   skip,
		Limit:  limit,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"applications": apps,
		"skip":         skip,
		"limit":        limit,
	})
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.UpdateStatus(p.ID, chi.URLParam(r, "applicationID"), dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	p, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.Service.Withdraw(p.ID, chi.URLParam(r, "applicationID")); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch err {
	case ErrNotFound:
		status, body := internal.NewNotFoundError("application not found", internal.ErrCodeApplicationNotFound).ToHTTPResponse()
		h.WriteJSON(w, status, body)
	case ErrDuplicate:
		status, body := internal.NewConflictError("already applied to this job", internal.ErrCodeDuplicateApplication).ToHTTPResponse()
		h.WriteJSON(w, status, body)
	case ErrDeadlinePassed:
		status, body := internal.NewConflictError("application deadline has passed", internal.ErrCodeDeadlinePassed).ToHTTPResponse()
		h.WriteJSON(w, status, body)
	case ErrCannotWithdraw:
		status, body := internal.NewConflictError("application can no longer be withdrawn", internal.ErrCodeCannotWithdraw).ToHTTPResponse()
		h.WriteJSON(w, status, body)
	case ErrNotApplicant:
		status, body := internal.NewForbiddenError("application belongs to another user", internal.ErrCodeNotApplicant).ToHTTPResponse()
		h.WriteJSON(w, status, body)
	case job.ErrJobNotFound:
		status, body := internal.NewNotFoundError("job not found", internal.ErrCodeJobNotFound).ToHTTPResponse()
		h.WriteJSON(w, status, body)
	case job.ErrNotJobOwner:
		status, body := internal.NewForbiddenError("job belongs to another employer", internal.ErrCodeNotJobOwner).ToHTTPResponse()
		h.WriteJSON(w, status, body)
	default:
		h.HandleServiceError(w, err)
	}
}
