package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/galaxyops/hub-console/internal/api/errors"
	"github.com/galaxyops/hub-console/internal/hub"
)

// ListDistributions proxies the hub distribution list.
func (s *Server) ListDistributions(w http.ResponseWriter, r *http.Request) {
	page, err := s.hub.ListDistributions(r.Context(), listParams(r))
	if err != nil {
		apierrors.WriteError(w, apierrors.FromHub(err))
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// GetRepositoryDistribution resolves the distribution serving a repository,
// which carries the base path clients install from.
func (s *Server) GetRepositoryDistribution(w http.ResponseWriter, r *http.Request) {
	repo, err := s.hub.GetRepository(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, apierrors.FromHub(err))
		return
	}

	dist, err := s.hub.DistributionForRepository(r.Context(), repo.Name)
	if err != nil {
		if errors.Is(err, hub.ErrNoDistribution) {
			apierrors.WriteError(w, apierrors.NewNotFoundError("No distribution serves this repository."))
			return
		}
		apierrors.WriteError(w, apierrors.FromHub(err))
		return
	}
	WriteJSON(w, http.StatusOK, dist)
}
