package admin

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/worklink/worklink-backend/internal"
	"github.com/worklink/worklink-backend/internal/application"
	"github.com/worklink/worklink-backend/internal/job"
	"github.com/worklink/worklink-backend/internal/principal"
	"github.com/worklink/worklink-backend/internal/transport"
	"github.com/worklink/worklink-backend/pkg/logger"
)

type ServiceAPI interface {
	Stats() (*Stats, error)
	ListUsers(skip, limit int) ([]*principal.User, error)
	ListEmployers(skip, limit int) ([]*principal.Employer, error)
	ListJobs(status string, skip, limit int) ([]*job.Job, error)
	ListApplications(status string, skip, limit int) ([]*application.Application, error)
	DeleteUser(userID string) error
	DeleteEmployer(employerID string) error
	DeleteJob(jobID string) error
	UpdateJobStatus(jobID, status string) error
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

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats()
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	skip, limit := h.Pagination(r)
	users, err := h.Service.ListUsers(skip, limit)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"users": users,
		"skip":  skip,
		"limit": limit,
	})
}

func (h *Handler) ListEmployers(w http.ResponseWriter, r *http.Request) {
	skip, limit := h.Pagination(r)
	employers, err := h.Service.ListEmployers(skip, limit)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"employers": employers,
		"skip":      skip,
		"limit":     limit,
	})
}

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	skip, limit := h.Pagination(r)
	jobs, err := h.Service.ListJobs(r.URL.Query().Get("status"), skip, limit)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobs,
		"skip":  skip,
		"limit": limit,
	})
}

func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	skip, limit := h.Pagination(r)
	apps, err := h.Service.ListApplications(r.URL.Query().Get("status"), skip, limit)
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

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteUser(chi.URLParam(r, "userID")); err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

func (h *Handler) DeleteEmployer(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteEmployer(chi.URLParam(r, "employerID")); err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "employer deleted"})
}

func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteJob(chi.URLParam(r, "jobID")); err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "job deleted"})
}

type updateJobStatusDTO struct {
	Status string `json:"status"`
}

func (h *Handler) UpdateJobStatus(w http.ResponseWriter, r *http.Request) {
	var dto updateJobStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	jobID := chi.URLParam(r, "jobID")
	if err := h.Service.UpdateJobStatus(jobID, dto.Status); err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "job status updated",
		"job_id":  jobID,
		"status":  dto.Status,
	})
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch err {
	case principal.ErrNotFound:
		status, body := internal.NewNotFoundError("principal not found", internal.ErrCodePrincipalNotFound).ToHTTPResponse()
		h.WriteJSON(w, status, body)
	case job.ErrJobNotFound:
		status, body := internal.NewNotFoundError("job not found", internal.ErrCodeJobNotFound).ToHTTPResponse()
		h.WriteJSON(w, status, body)
	default:
		h.HandleServiceError(w, err)
	}
}
