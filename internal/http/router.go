package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"linkloom/internal/catalog"
	"linkloom/internal/handlers"
	"linkloom/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Store         *catalog.Store
	Drafts        service.DraftService
	Resolver      service.Resolver
	Notifications handlers.NotificationSource
	DB            handlers.Pinger
	AIProvider    string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)

	// Add CORS middleware
	r.Use(CORS)

	items := handlers.NewItemsHandler(deps.Store)
	folders := handlers.NewFoldersHandler(deps.Store)
	platforms := handlers.NewPlatformsHandler(deps.Store)
	views := handlers.NewViewHandler(deps.Store)
	drafts := handlers.NewDraftsHandler(deps.Drafts)
	links := handlers.NewLinksHandler(deps.Resolver)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.DB, deps.Store, deps.AIProvider))
		r.Method(http.MethodGet, "/notifications", handlers.NewNotificationsHandler(deps.Notifications))

		r.Route("/items", func(r chi.Router) {
			r.Get("/", items.List)
			r.Post("/", items.Create)
			r.Get("/{id}", items.Get)
			r.Patch("/{id}", items.Update)
			r.Delete("/{id}", items.Delete)
			r.Post("/{id}/favorite", items.Favorite)
			r.Post("/{id}/move", items.Move)
		})

		r.Route("/folders", func(r chi.Router) {
			r.Get("/", folders.List)
			r.Post("/", folders.Create)
			r.Put("/{name}", folders.Rename)
			r.Delete("/{name}", folders.Delete)
		})

		r.Route("/platforms", func(r chi.Router) {
			r.Get("/", platforms.List)
			r.Post("/", platforms.Create)
			r.Put("/", platforms.Reorder)
			r.Delete("/{name}", platforms.Delete)
		})

		r.Route("/view", func(r chi.Router) {
			r.Get("/", views.Get)
			r.Patch("/", views.Update)
			r.Put("/tab", views.SetTab)
			r.Post("/swipe", views.Swipe)
		})

		r.Route("/drafts", func(r chi.Router) {
			r.Post("/", drafts.Create)
			r.Get("/{id}", drafts.Get)
			r.Put("/{id}", drafts.Update)
			r.Delete("/{id}", drafts.Discard)
			r.Post("/{id}/analyze", drafts.Analyze)
			r.Post("/{id}/save", drafts.Save)
		})

		r.Post("/resolve", links.Resolve)
		r.Get("/classify", links.Classify)
		r.Post("/share", links.Share)
	})

	return r
}
