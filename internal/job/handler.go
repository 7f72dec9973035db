package job

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/worklink/worklink-backend/internal"
	"github.com/worklink/worklink-backend/internal/transport"
	"github.com/worklink/worklink-backend/pkg/logger"
)

type ServiceAPI interface {
	Create(employerID string, dto CreateJobDTO) (*Job, error)
	List(filter ListFilter) ([]*Job, error)
	Search(filter SearchFilter) ([]*Job, error)
	GetDetail(id string) (*Detail, error)
	MyJobs(employerID, status string, skip, limit int) ([]*Job, error)
	Update(jobID, employerID string, dto UpdateJobDTO) (*Job, error)
	Close(jobID, employerID string) error
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

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	p, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateJobDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	j, err := h.Service.Create(p.ID, dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, j)
}

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	skip, limit := h.Pagination(r)

	filter := ListFilter{
		Category: r.URL.Query().Get("category"),
		District: r.URL.Query().Get("district"),
		Status:   r.URL.Query().Get("status"),
		Skip:     skip,
		Limit:    limit,
	}
	if ms := r.URL.Query().Get("min_salary"); ms != "" {
		if v, err := strconv.ParseInt(ms, 10, 64); err == nil && v > 0 {
			filter.MinSalary = v
		}
	}

	jobs, err := h.Service.List(filter)
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

func (h *Handler) SearchJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if len(q) < 2 {
		h.HandleServiceError(w, internal.NewValidationFieldError("q", "q must be at least 2 characters", internal.ErrCodeValidationFailed))
		return
	}

	skip, limit := h.Pagination(r)
	jobs, err := h.Service.Search(SearchFilter{
		Query:    q,
		Category: r.URL.Query().Get("category"),
		District: r.URL.Query().Get("district"),
		Skip:     skip,
		Limit:    limit,
	})
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

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	detail, err := h.Service.GetDetail(jobID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, detail)
}

func (h *Handler) MyJobs(w http.ResponseWriter, r *http.Request) {
	p, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	skip, limit := h.Pagination(r)
	jobs, err := h.Service.MyJobs(p.ID, r.URL.Query().Get("status"), skip, limit)
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

func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	p, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateJobDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	j, err := h.Service.Update(chi.URLParam(r, "jobID"), p.ID, dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, j)
}

func (h *Handler) CloseJob(w http.ResponseWriter, r *http.Request) {
	p, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.Service.Close(chi.URLParam(r, "jobID"), p.ID); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, Categories)
}

func (h *Handler) ListDistricts(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, Districts)
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch err {
	case ErrJobNotFound:
		status, body := internal.NewNotFoundError("job not found", internal.ErrCodeJobNotFound).ToHTTPResponse()
		h.WriteJSON(w, status, body)
	case ErrNotJobOwner:
		status, body := internal.NewForbiddenError("job belongs to another employer", internal.ErrCodeNotJobOwner).ToHTTPResponse()
		h.WriteJSON(w, status, body)
	default:
		h.HandleServiceError(w, err)
	}
}
