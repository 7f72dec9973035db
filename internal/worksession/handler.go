package worksession

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
	Create(userID string, dto CreateSessionDTO) (*View, error)
	ApproveStart(employerID, sessionID string, dto ApproveDTO) (*View, error)
	RequestStart(userID, sessionID string, dto NotesDTO) (*View, error)
	RequestEnd(userID, sessionID string, dto NotesDTO) (*View, error)
	ApproveEnd(employerID, sessionID string, dto ApproveDTO) (*View, error)
	MySessions(userID string, filter ListFilter) ([]*View, error)
	EmployerSessions(employerID string, filter ListFilter) ([]*View, error)
	MySummary(userID string) (*Summary, error)
	EmployerSummary(employerID string) (*Summary, error)
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

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	p, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateSessionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.Service.Create(p.ID, dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, view)
}

func (h *Handler) ApproveStart(w http.ResponseWriter, r *http.Request) {
	p, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto ApproveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.Service.ApproveStart(p.ID, chi.URLParam(r, "sessionID"), dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) RequestStart(w http.ResponseWriter, r *http.Request) {
	p, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto NotesDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.Service.RequestStart(p.ID, chi.URLParam(r, "sessionID"), dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) RequestEnd(w http.ResponseWriter, r *http.Request) {
	p, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto NotesDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.Service.RequestEnd(p.ID, chi.URLParam(r, "sessionID"), dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) ApproveEnd(w http.ResponseWriter, r *http.Request) {
	p, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto ApproveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.Service.ApproveEnd(p.ID, chi.URLParam(r, "sessionID"), dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) MySessions(w http.ResponseWriter, r *http.Request) {
	p, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	skip, limit := h.Pagination(r)
	sessions, err := h.Service.MySessions(p.ID, ListFilter{
		Status: r.URL.Query().Get("status"),
		Skip:   skip,
		Limit:  limit,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": sessions,
		"skip":     skip,
		"limit":    limit,
	})
}

func (h *Handler) EmployerSessions(w http.ResponseWriter, r *http.Request) {
	p, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	skip, limit := h.Pagination(r)
	sessions, err := h.Service.EmployerSessions(p.ID, ListFilter{
		Status: r.URL.Query().Get("status"),
		Skip:   skip,
		Limit:  limit,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": sessions,
		"skip":     skip,
		"limit":    limit,
	})
}

func (h *Handler) MySummary(w http.ResponseWriter, r *http.Request) {
	p, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	summary, err := h.Service.MySummary(p.ID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) EmployerSummary(w http.ResponseWriter, r *http.Request) {
	p, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	summary, err := h.Service.EmployerSummary(p.ID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch err {
	case ErrNotFound:
		status, body := internal.NewNotFoundError("work session not found", internal.ErrCodeSessionNotFound).ToHTTPResponse()
		h.WriteJSON(w, status, body)
	case job.ErrJobNotFound:
		status, body := internal.NewNotFoundError("job not found", internal.ErrCodeJobNotFound).ToHTTPResponse()
		h.WriteJSON(w, status, body)
	case ErrNotSessionUser, ErrNotSessionOwner, ErrNotAccepted:
		status, body := internal.NewForbiddenError(err.Error(), internal.ErrCodeNotSessionParty).ToHTTPResponse()
		h.WriteJSON(w, status, body)
	case ErrOpenSession, ErrStartNotApproved, ErrAlreadyStarted, ErrNotStarted, ErrAlreadyEnded, ErrNotEnded:
		status, body := internal.NewConflictError(err.Error(), internal.ErrCodeSessionConflict).ToHTTPResponse()
		h.WriteJSON(w, status, body)
	case ErrStaleVersion:
		status, body := internal.NewConflictError("work session was modified concurrently, retry", internal.ErrCodeConcurrentUpdate).ToHTTPResponse()
		h.WriteJSON(w, status, body)
	default:
		h.HandleServiceError(w, err)
	}
}
