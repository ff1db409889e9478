package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (app *application) routes() http.Handler {
	if app.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// simple logger middleware that uses zap
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		app.Logger.Sugar().Infow("http", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "duration", time.Since(start))
	})

	// CORS Middleware
	origins := app.Config.GetCORSOrigins()
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		for _, trusted := range origins {
			if trusted == origin {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
				c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
				c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")
				break
			}
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	v1 := r.Group("/api/v1")
	v1.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protected := v1.Group("/")
	protected.Use(app.AuthMiddleware())
	{
		// catalog routes
		protected.GET("/companies", app.Handler.ListCompanies)
		protected.GET("/placement-drives", app.Handler.ListPlacementDrives)
		protected.GET("/cities", app.Handler.ListCities)
		protected.GET("/programs", app.Handler.ListPrograms)

		// drive-creation wizard routes
		protected.POST("/wizard", app.Handler.StartWizard)
		protected.GET("/wizard/:session_id", app.Handler.GetWizard)
		protected.POST("/wizard/:session_id/basics", app.Handler.SubmitBasics)
		protected.POST("/wizard/:session_id/jobs", app.Handler.AddJob)
		protected.PATCH("/wizard/:session_id/jobs/:job_id", app.Handler.PatchJob)
		protected.DELETE("/wizard/:session_id/jobs/:job_id", app.Handler.RemoveJob)
		protected.POST("/wizard/:session_id/jobs/:job_id/programs/:program_id", app.Handler.ToggleJobProgram)
		protected.POST("/wizard/:session_id/jobs/:job_id/attachment", app.Handler.UploadAttachment)
		protected.POST("/wizard/:session_id/submit", app.Handler.SubmitWizard)
		protected.POST("/wizard/:session_id/cancel", app.Handler.CancelWizard)

		// job addition to an existing drive
		protected.POST("/drives/:drive_id/wizard", app.Handler.StartJobAddition)
	}

	return r
}
