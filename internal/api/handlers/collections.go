package handlers

import (
	"net/http"

	"github.com/galaxyops/hub-console/internal/action"
	"github.com/galaxyops/hub-console/internal/actions"
	apierrors "github.com/galaxyops/hub-console/internal/api/errors"
	"github.com/galaxyops/hub-console/internal/hub"
)

// SearchCollections proxies the cross-repository collection version search.
func (s *Server) SearchCollections(w http.ResponseWriter, r *http.Request) {
	page, err := s.hub.SearchCollectionVersions(r.Context(), listParams(r))
	if err != nil {
		apierrors.WriteError(w, apierrors.FromHub(err))
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// collectionRequest is the common body of collection action endpoints: the
// search row the operator acted on, plus per-action extras.
type collectionRequest struct {
	Version hub.CollectionVersionSearch `json:"version"`

	// Destinations are repository names for approve, full repositories for
	// copy.
	Destinations     []string         `json:"destinations,omitempty"`
	DestinationRepos []hub.Repository `json:"destination_repositories,omitempty"`
	// SigningService overrides the default signing service.
	SigningService string `json:"signing_service,omitempty"`
	// Repository carries the owning repository for version removal.
	Repository *hub.Repository `json:"repository,omitempty"`
}

func (s *Server) collectionRequest(w http.ResponseWriter, r *http.Request) (*collectionRequest, bool) {
	var req collectionRequest
	if err := decodeJSON(r, &req); err != nil {
		apierrors.WriteError(w, apierrors.NewValidationError("invalid request body"))
		return nil, false
	}
	cv := req.Version.CollectionVersion
	if cv.Namespace == "" || cv.Name == "" {
		apierrors.WriteError(w, apierrors.NewValidationError("version.collection_version is required"))
		return nil, false
	}
	return &req, true
}

// DeleteCollection runs the whole-collection delete action.
func (s *Server) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	req, ok := s.collectionRequest(w, r)
	if !ok {
		return
	}
	dispatch(s, w, r, actions.CollectionDelete, req.Version, req.Version.Spec(), nil)
}

// RemoveCollectionVersion runs the single-version remove action.
func (s *Server) RemoveCollectionVersion(w http.ResponseWriter, r *http.Request) {
	req, ok := s.collectionRequest(w, r)
	if !ok {
		return
	}
	if req.Repository == nil {
		apierrors.WriteError(w, apierrors.NewValidationError("repository is required"))
		return
	}
	dispatch(s, w, r, actions.CollectionVersionRemove, req.Version, req.Version.Spec(), func(actx *action.Context) {
		actions.SeedRemoveRepository(actx, req.Repository)
	})
}

// DeprecateCollection toggles the deprecation flag of a collection.
func (s *Server) DeprecateCollection(w http.ResponseWriter, r *http.Request) {
	req, ok := s.collectionRequest(w, r)
	if !ok {
		return
	}
	dispatch(s, w, r, actions.CollectionDeprecate, req.Version, req.Version.Spec(), nil)
}

// SignCollection runs the sign action for all versions of a collection.
func (s *Server) SignCollection(w http.ResponseWriter, r *http.Request) {
	req, ok := s.collectionRequest(w, r)
	if !ok {
		return
	}
	var seed func(*action.Context)
	if req.SigningService != "" {
		seed = func(actx *action.Context) {
			actions.SeedSigningService(actx, req.SigningService)
		}
	}
	dispatch(s, w, r, actions.CollectionSign, req.Version, req.Version.Spec(), seed)
}

// CopyCollectionVersion runs the copy action into the picked destination
// repositories.
func (s *Server) CopyCollectionVersion(w http.ResponseWriter, r *http.Request) {
	req, ok := s.collectionRequest(w, r)
	if !ok {
		return
	}
	if len(req.DestinationRepos) == 0 {
		apierrors.WriteError(w, apierrors.NewValidationError("destination_repositories are required"))
		return
	}
	dispatch(s, w, r, actions.CollectionVersionCopy, req.Version, req.Version.Spec(), func(actx *action.Context) {
		actions.SeedCopyDestinations(actx, req.DestinationRepos)
	})
}

// ApproveCollection runs the certification approve action. With multiple
// approved repositories the request names the destinations.
func (s *Server) ApproveCollection(w http.ResponseWriter, r *http.Request) {
	req, ok := s.collectionRequest(w, r)
	if !ok {
		return
	}
	var seed func(*action.Context)
	if len(req.Destinations) > 0 {
		seed = func(actx *action.Context) {
			actions.SeedApproveDestinations(actx, req.Destinations)
		}
	} else {
		// Without a destination pick the action can only approve into a
		// single approved repository. Reject the request up front rather
		// than confirming a selection dialog with nothing selected.
		approved, err := s.hub.ListPipelineRepositories(r.Context(), hub.PipelineApproved)
		if err != nil {
			apierrors.WriteError(w, apierrors.FromHub(err))
			return
		}
		if len(approved) > 1 {
			apierrors.WriteError(w, apierrors.NewValidationError(
				"destinations are required when more than one approved repository exists"))
			return
		}
	}
	dispatch(s, w, r, actions.CollectionApprove, req.Version, req.Version.Spec(), seed)
}

// RejectCollection moves a collection version into the rejected repository.
func (s *Server) RejectCollection(w http.ResponseWriter, r *http.Request) {
	req, ok := s.collectionRequest(w, r)
	if !ok {
		return
	}
	dispatch(s, w, r, actions.CollectionReject, req.Version, req.Version.Spec(), nil)
}
