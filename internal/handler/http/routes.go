package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)
		r.Post("/auth/service-token", h.serviceToken)
		r.Post("/auth/logout", h.logout)
		r.Get("/health", h.health)
	})

	// routes behind the identity resolver
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", h.me)
			r.Put("/me/password", h.changePassword)
			r.Get("/filter-options", h.filterOptions)
			r.Get("/by-username/{username}", h.personByUsername)
			r.Get("/", h.listPersons)
			r.Post("/", h.createPerson)
			r.Get("/{id}", h.personByID)
			r.Put("/{id}", h.updatePerson)
			r.Delete("/{id}", h.deletePerson)
		})

		r.Route("/connections", func(r chi.Router) {
			r.Get("/all", h.listConnections)
			r.Post("/", h.createConnection)
			r.Get("/{id}", h.connectionByID)
			r.Put("/{id}", h.updateConnection)
			r.Delete("/{id}", h.deleteConnection)
		})

		r.Route("/referrals", func(r chi.Router) {
			r.Get("/me", h.myReferrals)
			r.Post("/", h.createReferral)
			r.Get("/{id}", h.referralByID)
			r.Put("/{id}", h.updateReferral)
			r.Delete("/{id}", h.deleteReferral)
		})
	})

	return router
}
