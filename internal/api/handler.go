// Package api provides the HTTP handlers for the Cartmates REST API.
package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/kritanta/cartmates/internal/auth"
	"github.com/kritanta/cartmates/internal/middleware"
	"github.com/kritanta/cartmates/internal/service"
)

// Handler holds the service dependencies for all routes.
type Handler struct {
	auth       *service.AuthService
	groups     *service.GroupService
	invites    *service.InviteService
	items      *service.ItemService
	activities *service.ActivityService
	jwt        *auth.JWTManager
}

// NewHandler creates a Handler with all required service dependencies.
func NewHandler(
	authSvc *service.AuthService,
	groups *service.GroupService,
	invites *service.InviteService,
	items *service.ItemService,
	activities *service.ActivityService,
	jwt *auth.JWTManager,
) *Handler {
	return &Handler{
		auth:       authSvc,
		groups:     groups,
		invites:    invites,
		items:      items,
		activities: activities,
		jwt:        jwt,
	}
}

// Routes builds the API router. Bearer auth is required everywhere except
// registration, login, the password reset flow, and the invite preview
// (which is optional-auth so logged-out visitors get a preview).
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.handleRegister)
		r.Post("/login", h.handleLogin)
		r.Post("/forgot-password", h.handleForgotPassword)
		r.Get("/verify-reset-token/{token}", h.handleVerifyResetToken)
		r.Post("/reset-password", h.handleResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(h.jwt))
			r.Get("/profile", h.handleGetProfile)
			r.Put("/profile", h.handleUpdateProfile)
			r.Put("/change-password", h.handleChangePassword)
			r.Delete("/account", h.handleDeleteAccount)
		})
	})

	r.Route("/groups", func(r chi.Router) {
		r.With(middleware.OptionalAuth(h.jwt)).Get("/invite/{token}", h.handleInvite)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(h.jwt))
			r.Get("/", h.handleListGroups)
			r.Post("/", h.handleCreateGroup)
			r.Get("/{id}", h.handleGetGroup)
			r.Put("/{id}/name", h.handleRenameGroup)
			r.Post("/{id}/join", h.handleJoinGroup)
			r.Post("/{id}/leave", h.handleLeaveGroup)
			r.Delete("/{id}/members/{userID}", h.handleRemoveMember)
			r.Delete("/{id}", h.handleDeleteGroup)

			r.Get("/{groupID}/items", h.handleListItems)
			r.Post("/{groupID}/items", h.handleAddItem)
			r.Get("/{groupID}/items/{id}", h.handleGetItem)
			r.Put("/{groupID}/items/{id}", h.handleUpdateItem)
			r.Delete("/{groupID}/items/{id}", h.handleDeleteItem)

			r.Get("/{groupID}/activities", h.handleListActivities)
			r.Get("/{groupID}/activities/recent", h.handleRecentActivities)
		})
	})

	return r
}
