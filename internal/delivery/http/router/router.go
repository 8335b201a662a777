// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"aiproxy/internal/delivery/http/middleware"
	"aiproxy/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	AIHandler      *handler.AIHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	aiHandler      *handler.AIHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		aiHandler:      params.AIHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.RegisterUser)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.GET("/me", r.userHandler.Me, r.authMiddleware.Authenticate)
	}

	// AI routes that require authentication
	aiGroup := api.Group("/ai")
	aiGroup.Use(r.authMiddleware.Authenticate)
	{
		aiGroup.POST("/prompt", r.aiHandler.SendPrompt)
	}
}
