// Package api wires the HTTP surface: global middleware, the route gate and the handlers.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Banking-Admin-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Banking-Admin-Backend/internal/api/middleware"
	"github.com/ndewijer/Banking-Admin-Backend/internal/config"
	"github.com/ndewijer/Banking-Admin-Backend/internal/service"
	"github.com/ndewijer/Banking-Admin-Backend/internal/session"
)

// Services bundles the services the handlers delegate to.
type Services struct {
	System       *service.SystemService
	Auth         *service.AuthService
	Users        *service.UserService
	Transactions *service.TransactionService
	Drafts       *service.DraftService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, sessions *session.Manager, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// Every route below is gated; public paths are let through by the gate itself.
	r.Use(custommiddleware.Gate(sessions, log))

	systemHandler := handlers.NewSystemHandler(svc.System)
	authHandler := handlers.NewAuthHandler(svc.Auth, sessions)
	userHandler := handlers.NewUserHandler(svc.Users)
	transactionHandler := handlers.NewTransactionHandler(svc.Transactions)
	draftHandler := handlers.NewDraftHandler(svc.Drafts)

	r.Get("/login", authHandler.LoginPage)
	r.Get("/forgot-password", authHandler.ForgotPassword)

	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/add", userHandler.CreateUser)

		r.Route("/manage", func(r chi.Router) {
			r.Get("/", userHandler.ListUsers)
			r.Get("/{id}", userHandler.GetUser)
			r.Patch("/{id}", userHandler.UpdateUser)
		})

		r.Get("/{id}", userHandler.UserDetail)
	})

	r.Route("/transactions", func(r chi.Router) {
		r.Get("/taxonomy", handlers.Taxonomy)

		r.Route("/add", func(r chi.Router) {
			r.Post("/preview", draftHandler.Preview)

			r.Route("/drafts", func(r chi.Router) {
				r.Post("/", draftHandler.CreateDraft)
				r.Get("/", draftHandler.ListDrafts)

				r.Route("/{id}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateDraftIDMiddleware)
					r.Get("/", draftHandler.GetDraft)
					r.Patch("/", draftHandler.UpdateDraft)
					r.Delete("/", draftHandler.DiscardDraft)
					r.Post("/submit", draftHandler.SubmitDraft)
				})
			})
		})

		r.Get("/{id}", transactionHandler.GetTransaction)
		r.Patch("/{id}", transactionHandler.UpdateTransaction)
		r.Delete("/{id}", transactionHandler.DeleteTransaction)
	})

	return r
}
