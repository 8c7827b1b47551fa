package api

import (
	"fmt"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/ghuser/stocktracker/pkg/app"
	"github.com/ghuser/stocktracker/pkg/config"
	"github.com/ghuser/stocktracker/pkg/errhttp"
	"github.com/ghuser/stocktracker/services/inventory/application/graphql"
	"github.com/ghuser/stocktracker/services/inventory/application/handlers"
	appsvcs "github.com/ghuser/stocktracker/services/inventory/application/services"
)

// InventoryRoutes registers the inventory REST and GraphQL endpoints on r.
// Mount it under /api.
func InventoryRoutes(r chi.Router, a *app.Application) error {
	svcs, err := appsvcs.New(a)
	if err != nil {
		return fmt.Errorf("inventory services: %w", err)
	}
	return Mount(r, svcs, a.Config.Environment == config.EnvProduction, a.SessionStore)
}

// Mount registers the routes for already-wired services. store may be nil.
func Mount(r chi.Router, svcs *appsvcs.Services, production bool, store sessions.Store) error {
	errs := errhttp.New(production)
	items := handlers.NewItemHandlers(svcs, errs)
	history := handlers.NewHistoryHandlers(svcs, errs)
	notes := handlers.NewNotificationHandlers(svcs, errs, store)

	gql, err := graphql.NewHandler(svcs.Inventory, production)
	if err != nil {
		return fmt.Errorf("graphql schema: %w", err)
	}

	r.Group(func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Get("/", items.List)
			r.Post("/", items.Create)
			r.Get("/low-stock", items.LowStock)
			r.Get("/export.csv", items.ExportCSV)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", items.Get)
				r.Patch("/", items.Patch)
				r.Delete("/", items.Delete)
				r.Post("/adjust", items.Adjust)
			})
		})
		r.Get("/stock-history", history.List)
		r.Get("/analytics", history.Analytics)
		r.Route("/notifications/low-stock", func(r chi.Router) {
			r.Get("/", notes.LowStock)
			r.Post("/dismiss", notes.Dismiss)
		})
		r.Method("POST", "/graphql", gql)
	})
	return nil
}
