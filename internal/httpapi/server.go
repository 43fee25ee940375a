// Package httpapi serves calendars and assignments as JSON.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/alexanderramin/allot/internal/app"
	"github.com/alexanderramin/allot/internal/domain"
	"github.com/alexanderramin/allot/internal/repository"
	"github.com/alexanderramin/allot/internal/service"
	"github.com/alexanderramin/allot/internal/validation"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
)

// Services are the use cases the API exposes.
type Services struct {
	Projects    service.ProjectService
	Resources   service.ResourceService
	Assignments service.AssignmentService
	Calendar    service.CalendarService
}

// Server is the allot HTTP server.
type Server struct {
	*http.Server
	router chi.Router
	svc    Services
	// now supplies the default month when a calendar request has none.
	now func() time.Time
}

// NewServer builds the router. Request logging uses the logger carried by
// ctx.
func NewServer(ctx context.Context, addr string, svc Services) *Server {
	router := chi.NewRouter()
	s := &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router: router,
		svc:    svc,
		now:    time.Now,
	}

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	router.Get("/health", handleHealth)

	router.Route("/api", func(r chi.Router) {
		r.Get("/resources", s.handleListResources)
		r.Route("/projects/{project}", func(r chi.Router) {
			r.Get("/assignments", s.handleListAssignments)
			r.Post("/assignments", s.handleAddAssignment)
			r.Get("/calendar", s.handleCalendar)
		})
	})

	return s
}

// ServeHTTP lets tests drive the router without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "allot",
	})
}

func (s *Server) handleListResources(w http.ResponseWriter, r *http.Request) {
	resources, err := s.svc.Resources.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]resourceDTO, 0, len(resources))
	for _, res := range resources {
		out = append(out, toResourceDTO(res))
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	project, err := s.svc.Projects.Resolve(r.Context(), chi.URLParam(r, "project"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	assignments, err := s.svc.Assignments.ListByProject(r.Context(), project.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]assignmentDTO, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, toAssignmentDTO(a))
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleAddAssignment(w http.ResponseWriter, r *http.Request) {
	var in service.AssignmentInput
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		writeJSON(w, r, http.StatusBadRequest, errorBody{Code: "BAD_REQUEST", Message: "decoding body: " + err.Error()})
		return
	}
	in.ProjectID = chi.URLParam(r, "project")

	a, err := s.svc.Assignments.Add(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toAssignmentDTO(a))
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	month := domain.MonthOf(s.now())
	if raw := r.URL.Query().Get("month"); raw != "" {
		m, err := domain.ParseMonth(raw)
		if err != nil {
			writeJSON(w, r, http.StatusBadRequest, errorBody{Code: string(app.CalendarErrInvalidRequest), Message: err.Error()})
			return
		}
		month = m
	}

	req := app.NewCalendarRequest(chi.URLParam(r, "project"), month)
	if filter := r.URL.Query().Get("resource"); filter != "" {
		req.ResourceFilter = filter
	}

	resp, err := s.svc.Calendar.Calendar(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toCalendarDTO(resp.Project, resp.Calendar, resp.Roster))
}

// writeError maps service errors onto status codes. Unknown entities are
// 404 even when they arrive wrapped in a calendar error.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if fields := validation.FieldErrors(err); fields != nil {
		writeJSON(w, r, http.StatusBadRequest, errorBody{Code: "VALIDATION_FAILED", Message: "invalid input", Fields: fields})
		return
	}

	var calErr *app.CalendarError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, r, http.StatusNotFound, errorBody{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, service.ErrProjectArchived):
		writeJSON(w, r, http.StatusConflict, errorBody{Code: "PROJECT_ARCHIVED", Message: err.Error()})
	case errors.As(err, &calErr) && calErr.Code == app.CalendarErrInvalidRequest:
		writeJSON(w, r, http.StatusBadRequest, errorBody{Code: string(calErr.Code), Message: calErr.Message})
	case errors.As(err, &calErr) && calErr.Code == app.CalendarErrFetchFailed:
		ctxlog.From(r.Context()).Error("calendar fetch failed", "error", err)
		writeJSON(w, r, http.StatusBadGateway, errorBody{Code: string(calErr.Code), Message: calErr.Message})
	default:
		ctxlog.From(r.Context()).Error("request failed", "error", err)
		writeJSON(w, r, http.StatusInternalServerError, errorBody{Code: "INTERNAL", Message: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(r.Context()).Error("encoding response", "error", err)
	}
}
