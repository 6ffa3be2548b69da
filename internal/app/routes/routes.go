package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lintangpradipa/catatankita/internal/app/controllers"
	"github.com/lintangpradipa/catatankita/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	noteController *controllers.NoteController,
	vaultController *controllers.VaultController,
	preferenceController *controllers.PreferenceController,
	maintenanceController *controllers.MaintenanceController,
	authMiddleware *middleware.AuthMiddleware,
	maintenanceSecret string,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API version group
	v1 := router.Group("/api/v1")

	// --- Maintenance entry point (shared secret, no user auth) ---
	maintenance := v1.Group("/maintenance")
	maintenance.Use(middleware.MaintenanceAuth(maintenanceSecret))
	{
		maintenance.POST("/sweep", maintenanceController.RunSweeps)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Schedule sessions with note status
		sessions := authenticated.Group("/sessions")
		{
			sessions.GET("/today", noteController.GetTodaySessions)
		}

		// Day-to-day note list and editing
		notes := authenticated.Group("/notes")
		{
			notes.GET("", noteController.ListNotes)
			notes.POST("", noteController.SaveNote)
			notes.GET("/:id", noteController.GetNote)
			notes.GET("/:id/revisions", noteController.GetRevisions)
			notes.GET("/:id/audit", noteController.GetAuditTrail)
			notes.POST("/:id/revisions/:versionNo/restore", noteController.RestoreRevision)
		}

		// Archive and trash view
		vault := authenticated.Group("/vault")
		{
			vault.GET("", vaultController.GetVault)
			vault.GET("/insight", vaultController.GetInsight)
			vault.GET("/semesters", vaultController.GetSemesterBuckets)
			vault.POST("/actions", vaultController.ApplyAction)
		}

		// Academic calendar preference
		preferences := authenticated.Group("/preferences")
		{
			preferences.GET("/semester", preferenceController.GetSemesterPreference)
			preferences.PUT("/semester", preferenceController.UpdateSemesterPreference)
		}
	}
}
