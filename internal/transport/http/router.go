package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/imnatewest/ai-fridge-app/internal/application/device"
	"github.com/imnatewest/ai-fridge-app/internal/application/inventory"
	"github.com/imnatewest/ai-fridge-app/internal/application/location"
	"github.com/imnatewest/ai-fridge-app/internal/application/photo"
	"github.com/imnatewest/ai-fridge-app/internal/application/product"
	"github.com/imnatewest/ai-fridge-app/internal/application/recipe"
	"github.com/imnatewest/ai-fridge-app/internal/application/reminder"
	"github.com/imnatewest/ai-fridge-app/internal/application/session"
	"github.com/imnatewest/ai-fridge-app/internal/application/user"
	"github.com/imnatewest/ai-fridge-app/internal/config"
	"github.com/imnatewest/ai-fridge-app/internal/domain"
	"github.com/imnatewest/ai-fridge-app/internal/transport/http/handler"
	appmiddleware "github.com/imnatewest/ai-fridge-app/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	sessionDeps := session.ServiceDeps{
		SessionRepo:   deps.SessionRepo,
		UserRepo:      deps.UserRepo,
		DeviceRepo:    deps.DeviceRepo,
		JWTProvider:   deps.JWTProvider,
		RefreshExpiry: cfg.RefreshTokenExpiry,
	}
	if deps.GoogleVerifier != nil {
		sessionDeps.GoogleVerifier = deps.GoogleVerifier
	}
	sessionSvc := session.NewService(sessionDeps)
	userSvc := user.NewService(deps.UserRepo, deps.SessionRepo)
	deviceSvc := device.NewService(deps.DeviceRepo, deps.PushSender)
	reminderSvc := reminder.NewService(deps.ItemRepo, deps.ReminderRepo, deps.UserRepo, deps.Mailer)
	inventorySvc := inventory.NewService(deps.ItemRepo, deps.ProductClient, reminderSvc)
	productSvc := product.NewService(deps.ProductClient)
	photoSvc := photo.NewService(deps.ItemRepo, deps.S3Store)
	locationSvc := location.NewService(deps.LocationRepo)
	var recipeSvc recipe.Service
	switch {
	case deps.OpenAI != nil && deps.Pexels != nil:
		recipeSvc = recipe.NewService(deps.ItemRepo, deps.OpenAI, deps.Pexels)
	case deps.OpenAI != nil:
		recipeSvc = recipe.NewService(deps.ItemRepo, deps.OpenAI, nil)
	default:
		recipeSvc = recipe.NewService(deps.ItemRepo, nil, nil)
	}

	healthH := handler.NewHealthHandler()
	sessionH := handler.NewSessionHandler(sessionSvc)
	userH := handler.NewUserHandler(userSvc)
	deviceH := handler.NewDeviceHandler(deviceSvc)
	itemH := handler.NewItemHandler(inventorySvc)
	productH := handler.NewProductHandler(productSvc)
	recipeH := handler.NewRecipeHandler(recipeSvc)
	photoH := handler.NewPhotoHandler(photoSvc)
	locationH := handler.NewLocationHandler(locationSvc)
	reminderH := handler.NewReminderHandler(reminderSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)
		r.Get("/test", healthH.Test)
		r.Post("/test", healthH.Test)
		r.With(sensitiveRL.Limit).Post("/sessions/login", sessionH.Login)
		r.With(sensitiveRL.Limit).Post("/sessions/google", sessionH.LoginWithGoogle)
		r.Post("/sessions/refresh", sessionH.Refresh)
		r.With(sensitiveRL.Limit).Post("/users", userH.Register)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/sessions", sessionH.GetCurrent)
			r.Post("/sessions/logout", sessionH.Logout)

			r.Get("/users/{id}", userH.Get)
			r.Put("/users/{id}", userH.Update)
			r.Post("/users/change-password", userH.ChangePassword)

			r.Get("/devices", deviceH.List)
			r.Post("/devices/push", deviceH.RegisterPush)
			r.Get("/devices/{id}", deviceH.Get)
			r.Delete("/devices/{id}", deviceH.Delete)

			r.Get("/items", itemH.List)
			r.Post("/items", itemH.Create)
			r.Get("/items/expiring", itemH.ExpiringSummary)
			r.Get("/items/{id}", itemH.Get)
			r.Put("/items/{id}", itemH.Update)
			r.Delete("/items/{id}", itemH.Delete)
			r.Post("/items/{id}/photo", photoH.Upload)
			r.Get("/items/{id}/photo", photoH.URL)
			r.Delete("/items/{id}/photo", photoH.Delete)

			r.With(sensitiveRL.Limit).Get("/products/{barcode}", productH.Lookup)
			r.Get("/recipes/suggestions", recipeH.Suggest)

			r.Get("/reminders", reminderH.ListPending)
			r.Post("/reminders/reconcile", reminderH.Reconcile)
			r.Post("/reminders/digest", reminderH.SendDigest)

			r.Get("/locations", locationH.List)
			r.Get("/locations/{id}", locationH.Get)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Get("/users", userH.List)
				r.Delete("/users/{id}", userH.Delete)

				r.Post("/locations", locationH.Create)
				r.Put("/locations/{id}", locationH.Update)
				r.Delete("/locations/{id}", locationH.Delete)
			})
		})
	})

	return r
}
