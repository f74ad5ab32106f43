package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	service "github.com/okian/aiready/internal/app"
	"github.com/okian/aiready/pkg/logger"
)

// HandleListRepositories handles GET /repositories.
// Query parameters: q, level, language, sort, page, pageSize.
func (s *Server) HandleListRepositories(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	writeJSON(w, http.StatusOK, service.Filter(s.deps.All(), q))
}

// HandleGetRepository handles GET /repositories/{slug}.
func (s *Server) HandleGetRepository(w http.ResponseWriter, r *http.Request) {
	repo, err := s.deps.BySlug(chi.URLParam(r, "slug"))
	if errors.Is(err, service.ErrRepositoryNotFound) {
		writeError(w, http.StatusNotFound, "not_found", err)
		return
	}
	if err != nil {
		s.logger.Error(r.Context(), "repository lookup failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal", err)
		return
	}
	writeJSON(w, http.StatusOK, repo)
}

// HandleSlugs handles GET /slugs.
func (s *Server) HandleSlugs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"slugs": s.deps.Slugs()})
}

// HandleLanguages handles GET /languages.
func (s *Server) HandleLanguages(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"languages": service.Languages(s.deps.All())})
}

type lastUpdatedResponse struct {
	OrgName     string    `json:"orgName"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// HandleLastUpdated handles GET /last-updated.
func (s *Server) HandleLastUpdated(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, lastUpdatedResponse{
		OrgName:     s.deps.OrgName(),
		LastUpdated: s.deps.LastUpdated(),
	})
}

// HandleStats handles GET /stats.
func (s *Server) HandleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.OrgStats())
}

func parseQuery(r *http.Request) (service.Query, error) {
	v := r.URL.Query()
	q := service.Query{
		Search:   v.Get("q"),
		Level:    service.ParseLevel(v.Get("level")),
		Language: v.Get("language"),
		SortBy:   v.Get("sort"),
	}

	var err error
	if q.Page, err = intParam(v.Get("page")); err != nil {
		return q, fmt.Errorf("%w: page: %w", ErrBadRequest, err)
	}
	if q.PageSize, err = intParam(v.Get("pageSize")); err != nil {
		return q, fmt.Errorf("%w: pageSize: %w", ErrBadRequest, err)
	}
	if err := q.Validate(); err != nil {
		return q, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return q, nil
}

func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
