package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mstefano/lightbox/internal/logger"
	"github.com/mstefano/lightbox/pkg/catalog"
	"github.com/mstefano/lightbox/pkg/navigation"
)

// errorResponse is the JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}

// positionResponse reports the navigation state after a change.
type positionResponse struct {
	Index     int    `json:"index"`
	Direction string `json:"direction"`
	State     string `json:"state"`
	Source    string `json:"source,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Warn("failed to encode response", "error", err)
		}
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	col, err := s.session.Catalog().Load(r.Context())
	if err != nil {
		respondError(w, statusForCatalogError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, col)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Refresh(r.Context()); err != nil {
		respondError(w, statusForCatalogError(err), err.Error())
		return
	}
	s.writePosition(w)
}

func (s *Server) handlePosition(w http.ResponseWriter, r *http.Request) {
	s.writePosition(w)
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var dir navigation.Direction
	switch req.Direction {
	case "forward":
		dir = navigation.DirectionForward
	case "backward":
		dir = navigation.DirectionBackward
	default:
		respondError(w, http.StatusBadRequest, "direction must be forward or backward")
		return
	}

	if _, err := s.session.Step(dir); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writePosition(w)
}

func (s *Server) handleJump(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Target float64 `json:"target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := s.session.Jump(req.Target); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writePosition(w)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := s.session.Select(req.Index); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writePosition(w)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ref := r.URL.Query().Get("ref")
	if ref == "" {
		respondError(w, http.StatusBadRequest, "missing ref parameter")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"ref":   ref,
		"ready": s.session.Prefetch().IsReady(ref),
	})
}

func (s *Server) writePosition(w http.ResponseWriter) {
	nav := s.session.Navigation()
	idx, dir := nav.Position()
	respondJSON(w, http.StatusOK, positionResponse{
		Index:     idx,
		Direction: dir.String(),
		State:     nav.State().String(),
		Source:    string(nav.ActiveSource()),
	})
}

// statusForCatalogError maps typed catalog errors onto HTTP statuses.
func statusForCatalogError(err error) int {
	var netErr *catalog.NetworkError
	var valErr *catalog.ValidationError
	switch {
	case errors.As(err, &netErr):
		return http.StatusBadGateway
	case errors.As(err, &valErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
