// Package handlers provides HTTP handlers for the console API.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/galaxyops/hub-console/internal/alerts"
	"github.com/galaxyops/hub-console/internal/api/middleware"
	"github.com/galaxyops/hub-console/internal/auth"
	"github.com/galaxyops/hub-console/internal/hub"
	"github.com/galaxyops/hub-console/internal/secrets"
	"github.com/galaxyops/hub-console/internal/store"
	"github.com/galaxyops/hub-console/internal/tasks"
)

// Server bundles the console API handlers and their dependencies.
type Server struct {
	hub *hub.Client
	// poller drives action dispatch, where the operator is watching a
	// modal; passivePoller drives background surfaces such as the task
	// detail stream, at a slower cadence.
	poller        *tasks.Poller
	passivePoller *tasks.Poller
	authService   *auth.Service
	store         store.Store
	cipher        *secrets.Cipher
	alerts        *alerts.List
	logger        *slog.Logger
}

// NewServer creates the handler set.
func NewServer(hubClient *hub.Client, poller, passivePoller *tasks.Poller, authService *auth.Service, st store.Store, cipher *secrets.Cipher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if passivePoller == nil {
		passivePoller = poller
	}
	return &Server{
		hub:           hubClient,
		poller:        poller,
		passivePoller: passivePoller,
		authService:   authService,
		store:         st,
		cipher:        cipher,
		alerts:        alerts.NewList(),
		logger:        logger,
	}
}

// Routes mounts the API under /api on a new chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(s.logger))
	r.Use(middleware.RequestLogger(s.logger))

	authMW := middleware.NewAuthMiddleware(s.authService, s.logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMW.Authenticate)

			r.Post("/auth/logout", s.Logout)
			r.Get("/auth/me", s.Me)

			r.Get("/alerts", s.ListAlerts)
			r.Delete("/alerts/{id}", s.DismissAlert)

			r.Route("/repositories", func(r chi.Router) {
				r.Get("/", s.ListRepositories)
				r.Get("/{id}", s.GetRepository)
				r.Get("/{id}/versions", s.ListRepositoryVersions)
				r.Get("/{id}/distribution", s.GetRepositoryDistribution)
				r.Delete("/{id}", s.DeleteRepository)
				r.Post("/{id}/sync", s.SyncRepository)
				r.Post("/{id}/revert", s.RevertRepository)
				r.Post("/{id}/collections/add", s.AddCollectionVersions)
			})

			r.Get("/distributions", s.ListDistributions)

			r.Route("/remotes", func(r chi.Router) {
				r.Get("/", s.ListRemotes)
				r.Delete("/{id}", s.DeleteRemote)
			})

			r.Route("/collections", func(r chi.Router) {
				r.Get("/", s.SearchCollections)
				r.Post("/delete", s.DeleteCollection)
				r.Post("/remove", s.RemoveCollectionVersion)
				r.Post("/deprecate", s.DeprecateCollection)
				r.Post("/sign", s.SignCollection)
				r.Post("/copy", s.CopyCollectionVersion)
				r.Post("/approve", s.ApproveCollection)
				r.Post("/reject", s.RejectCollection)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", s.ListTasks)
				r.Post("/cleanup", s.CleanupOrphans)
				r.Get("/{id}", s.GetTask)
				r.Get("/{id}/stream", s.StreamTask)
				r.Post("/{id}/stop", s.StopTask)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", s.ListHubUsers)
				r.Delete("/{id}", s.DeleteHubUser)
			})
			r.Route("/groups", func(r chi.Router) {
				r.Get("/", s.ListHubGroups)
				r.Delete("/{id}", s.DeleteHubGroup)
			})
			r.Route("/namespaces", func(r chi.Router) {
				r.Get("/", s.ListNamespaces)
				r.Delete("/{name}", s.DeleteNamespace)
			})
			r.Route("/execution-environments", func(r chi.Router) {
				r.Get("/", s.ListExecutionEnvironments)
				r.Delete("/{name}", s.DeleteExecutionEnvironment)
				r.Post("/{name}/sync", s.SyncExecutionEnvironment)
			})

			r.Route("/operators", func(r chi.Router) {
				r.Use(middleware.RequirePermission("galaxy.view_user", s.logger))
				r.Get("/", s.ListOperators)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission("galaxy.change_group", s.logger))
					r.Post("/", s.CreateOperator)
					r.Put("/{username}/groups", s.SetOperatorGroups)
					r.Delete("/{username}", s.DeleteOperator)
					r.Post("/grants", s.AddGrant)
					r.Delete("/grants", s.RemoveGrant)
				})
			})

			r.Route("/credentials", func(r chi.Router) {
				r.Use(middleware.RequirePermission("galaxy.change_group", s.logger))
				r.Put("/{name}", s.PutCredential)
				r.Get("/{name}", s.GetCredential)
				r.Delete("/{name}", s.DeleteCredential)
			})

			r.Get("/audit", s.ListAudit)
		})
	})

	return r
}

// Alerts exposes the console-wide alert feed, mostly for tests.
func (s *Server) Alerts() *alerts.List { return s.alerts }

func permissionChecker(r *http.Request) func(string) bool {
	sess := middleware.GetSession(r.Context())
	return func(name string) bool { return sess.HasPermission(name) }
}
