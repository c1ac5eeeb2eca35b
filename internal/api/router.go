package api

import (
	"github.com/gin-gonic/gin"

	"github.com/auditgrid/auditgrid/internal/api/handlers"
	"github.com/auditgrid/auditgrid/internal/api/middleware"
	"github.com/auditgrid/auditgrid/internal/core/auth"
)

type Router struct {
	engine            *gin.Engine
	authMiddleware    *middleware.AuthMiddleware
	authHandler       *handlers.AuthHandler
	assessmentHandler *handlers.AssessmentHandler
	attributeHandler  *handlers.AttributeHandler
	personHandler     *handlers.PersonHandler
	matrixHandler     *handlers.MatrixHandler
}

func NewRouter(
	authService *auth.Service,
	authHandler *handlers.AuthHandler,
	assessmentHandler *handlers.AssessmentHandler,
	attributeHandler *handlers.AttributeHandler,
	personHandler *handlers.PersonHandler,
	matrixHandler *handlers.MatrixHandler,
) *Router {
	return &Router{
		authMiddleware:    middleware.NewAuthMiddleware(authService),
		authHandler:       authHandler,
		assessmentHandler: assessmentHandler,
		attributeHandler:  attributeHandler,
		personHandler:     personHandler,
		matrixHandler:     matrixHandler,
	}
}

func (r *Router) Setup(mode string) *gin.Engine {
	gin.SetMode(mode)
	r.engine = gin.New()
	r.engine.Use(gin.Recovery())
	r.engine.Use(middleware.AuditMiddleware())

	r.setupRoutes()
	return r.engine
}

func (r *Router) setupRoutes() {
	api := r.engine.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Auth routes (public)
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", r.authHandler.Register)
		authRoutes.POST("/login", r.authHandler.Login)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(r.authMiddleware.Authenticate())
	{
		protected.GET("/auth/me", r.authHandler.Me)

		// People referenced by Map:Person attributes
		people := protected.Group("/people")
		{
			people.POST("", r.personHandler.Create)
			people.GET("/:id", r.personHandler.Get)
		}

		// Assessments and their completion artifacts
		assessments := protected.Group("/assessments")
		{
			assessments.POST("", r.assessmentHandler.Create)
			assessments.GET("", r.assessmentHandler.List)
			assessments.GET("/:id", r.assessmentHandler.Get)
			assessments.PUT("/:id/status", r.assessmentHandler.UpdateStatus)
			assessments.POST("/:id/evidences", r.assessmentHandler.AddEvidence)
			assessments.POST("/:id/comments", r.assessmentHandler.AddComment)

			// Local custom attributes
			assessments.POST("/:id/attribute_definitions", r.attributeHandler.CreateDefinition)
			assessments.PUT("/:id/attribute_values/:definitionId", r.attributeHandler.SetValue)
		}

		// Bulk matrix search
		protected.POST("/bulk_operations/cavs/search", r.matrixHandler.Search)
	}
}
