package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/msaleh/formgate/internal/api/handlers"
	"github.com/msaleh/formgate/internal/api/middleware"
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handlers) {
	r.POST("/register", h.User.Register)
	r.POST("/login", h.User.Login)

	// Applicants submit against the active schema without credentials and
	// may read it to render the form.
	r.GET("/schemas/active", h.Schema.GetActive)
	r.POST("/submissions", h.Submission.Submit)

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware())
	{
		schemas := auth.Group("/schemas")
		{
			schemas.GET("", h.Schema.List)
			schemas.GET("/:id", h.Schema.Get)
			schemas.GET("/:id/rejection-reasons", h.Catalog.CatalogFor)
			schemas.POST("", middleware.AdminOnly(), h.Schema.Create)
			schemas.PUT("/:id/activate", middleware.AdminOnly(), h.Schema.Activate)
			schemas.PUT("/:id/fields/:field_id", middleware.AdminOnly(), h.Schema.UpdateField)
			schemas.DELETE("/:id/fields/:field_id", middleware.AdminOnly(), h.Schema.RemoveField)
		}

		submissions := auth.Group("/submissions")
		{
			submissions.GET("", h.Submission.List)
			submissions.GET("/:id", h.Submission.Get)
			submissions.PUT("/:id/status", middleware.AdminOnly(), h.Submission.UpdateStatus)
			submissions.DELETE("/:id", middleware.AdminOnly(), h.Submission.Delete)
		}

		analytics := auth.Group("/analytics")
		{
			analytics.GET("/rejections", h.Analytics.ListRejected)
			analytics.GET("/rejections/breakdown", h.Analytics.ReasonBreakdown)
			analytics.POST("/rejections/export", middleware.AdminOnly(), h.Analytics.ExportBreakdown)
		}
	}
}
