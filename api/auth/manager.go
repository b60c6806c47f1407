package auth

import (
	"kalini_server/api/middleware"
	"kalini_server/services"
	"kalini_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AuthRoutesManager struct {
	logger       *gecho.Logger
	authService  *services.AuthService
	cacheService *services.CacheService
	emailService *services.EmailService
	cfg          *structs.Config
	mw           *middleware.Middleware
}

func NewAuthRoutesManager(
	logger *gecho.Logger,
	authService *services.AuthService,
	emailService *services.EmailService,
	cacheService *services.CacheService,
	cfg *structs.Config,
	mw *middleware.Middleware,
) *AuthRoutesManager {
	return &AuthRoutesManager{
		logger:       logger,
		authService:  authService,
		emailService: emailService,
		cacheService: cacheService,
		cfg:          cfg,
		mw:           mw,
	}
}

func (ar *AuthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		// CSRF token endpoint, called before any mutating auth route
		r.Get("/csrf", ar.HandleCSRF)

		r.Group(func(r chi.Router) {
			r.Use(ar.mw.CSRFMiddleware())
			r.Post("/register", ar.HandleRegister)
			r.Post("/login", ar.HandleLogin)
			r.Post("/logout", ar.HandleLogout)
			r.Post("/refresh", ar.HandleRefresh)
		})

		r.Get("/me", ar.HandleMe)
		r.Get("/verify-email", ar.HandleVerifyEmail)
	})
}
