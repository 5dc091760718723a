package api

import (
	"net/http"
	"time"

	"driveloop_admin/internal/api/handler"
	"driveloop_admin/internal/api/middleware"
	"driveloop_admin/internal/app/service"
	"driveloop_admin/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	sessionService *service.SessionService,
	listingService *service.ListingService,
	userService *service.UserService,
	dashboardService *service.DashboardService,
	bootstrapService *service.BootstrapService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// JWT Auth Middleware Setup
	// It will search for a token in "Authorization: Bearer T".
	r.Use(jwtauth.Verifier(security.TokenAuth)) // Verifies token, puts claims in context

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(sessionService)
		bootstrapHandler := handler.NewBootstrapHandler(bootstrapService)

		// Public: sign-in and first-admin bootstrap
		v1.Group(func(public chi.Router) {
			authHandler.RegisterPublicRoutes(public)
			bootstrapHandler.RegisterRoutes(public)
		})

		// Everything else requires an authenticated admin
		v1.Group(func(protected chi.Router) {
			protected.Use(middleware.Authenticator)
			protected.Use(middleware.AdminOnly)

			authHandler.RegisterProtectedRoutes(protected)

			listingHandler := handler.NewListingHandler(listingService)
			protected.Route("/listings", listingHandler.RegisterRoutes)

			userHandler := handler.NewUserHandler(userService)
			protected.Route("/users", userHandler.RegisterRoutes)

			dashboardHandler := handler.NewDashboardHandler(dashboardService)
			protected.Route("/dashboard", dashboardHandler.RegisterRoutes)
		})
	})

	return r
}
