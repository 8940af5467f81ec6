package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/galaxyops/hub-console/internal/action"
	"github.com/galaxyops/hub-console/internal/actions"
	apierrors "github.com/galaxyops/hub-console/internal/api/errors"
	"github.com/galaxyops/hub-console/internal/hub"
)

// ListRepositories proxies the hub repository list.
func (s *Server) ListRepositories(w http.ResponseWriter, r *http.Request) {
	page, err := s.hub.ListRepositories(r.Context(), listParams(r))
	if err != nil {
		apierrors.WriteError(w, apierrors.FromHub(err))
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// GetRepository returns one repository with its remote resolved, so the
// detail view can evaluate sync preconditions.
func (s *Server) GetRepository(w http.ResponseWriter, r *http.Request) {
	repo, err := s.repositoryWithRemote(r, chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, apierrors.FromHub(err))
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"repository": repo,
		"remote":     repo.RemoteDetail,
	})
}

// ListRepositoryVersions returns the version history of a repository.
func (s *Server) ListRepositoryVersions(w http.ResponseWriter, r *http.Request) {
	page, err := s.hub.ListRepositoryVersions(r.Context(), chi.URLParam(r, "id"), listParams(r))
	if err != nil {
		apierrors.WriteError(w, apierrors.FromHub(err))
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// DeleteRepository runs the repository delete action.
func (s *Server) DeleteRepository(w http.ResponseWriter, r *http.Request) {
	repo, err := s.hub.GetRepository(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, apierrors.FromHub(err))
		return
	}
	dispatch(s, w, r, actions.RepositoryDelete, *repo, repo.Name, nil)
}

// SyncRepository runs the repository sync action with optional mirror and
// optimize overrides.
func (s *Server) SyncRepository(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mirror   *bool `json:"mirror"`
		Optimize *bool `json:"optimize"`
	}
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			apierrors.WriteError(w, apierrors.NewValidationError("invalid request body"))
			return
		}
	}

	repo, err := s.repositoryWithRemote(r, chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, apierrors.FromHub(err))
		return
	}

	dispatch(s, w, r, actions.RepositorySync, *repo, repo.Name, func(actx *action.Context) {
		opts := hub.SyncOptions{Mirror: true, Optimize: true}
		if req.Mirror != nil {
			opts.Mirror = *req.Mirror
		}
		if req.Optimize != nil {
			opts.Optimize = *req.Optimize
		}
		actions.SeedSyncOptions(actx, opts)
	})
}

// RevertRepository runs the version revert action against the version named
// in the request.
func (s *Server) RevertRepository(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VersionHref string `json:"version_href"`
		Number      int    `json:"number"`
	}
	if err := decodeJSON(r, &req); err != nil || req.VersionHref == "" {
		apierrors.WriteError(w, apierrors.NewValidationError("version_href is required"))
		return
	}

	repo, err := s.hub.GetRepository(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, apierrors.FromHub(err))
		return
	}

	dispatch(s, w, r, actions.RepositoryVersionRevert, *repo, repo.Name, func(actx *action.Context) {
		actions.SeedRevertTarget(actx, req.VersionHref, req.Number)
	})
}

// AddCollectionVersions runs the add-collection action with the versions the
// operator picked in the selection dialog.
func (s *Server) AddCollectionVersions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Selected []hub.CollectionVersionSearch `json:"selected"`
	}
	if err := decodeJSON(r, &req); err != nil || len(req.Selected) == 0 {
		apierrors.WriteError(w, apierrors.NewValidationError("selected collection versions are required"))
		return
	}

	repo, err := s.hub.GetRepository(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, apierrors.FromHub(err))
		return
	}

	dispatch(s, w, r, actions.CollectionVersionAdd, *repo, repo.Name, func(actx *action.Context) {
		actions.SeedAddSelection(actx, req.Selected)
	})
}

// repositoryWithRemote loads a repository and resolves its remote detail when
// one is attached.
func (s *Server) repositoryWithRemote(r *http.Request, id string) (*hub.Repository, error) {
	repo, err := s.hub.GetRepository(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if repo.Remote != "" {
		remote, err := s.hub.GetRemoteByHref(r.Context(), repo.Remote)
		if err != nil {
			s.logger.Warn("failed to resolve repository remote", "repository", repo.Name, "error", err)
		} else {
			repo.RemoteDetail = remote
		}
	}
	return repo, nil
}
