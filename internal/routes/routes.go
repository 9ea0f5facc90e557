package routes

import (
	"github.com/gin-gonic/gin"

	"booking-agent-server/internal/availability"
	"booking-agent-server/internal/handlers"
	"booking-agent-server/internal/store"
	"booking-agent-server/internal/workflow"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, engine *workflow.Engine, st store.Store, avail *availability.Service) {
	// Initialize handlers
	conversationHandler := handlers.NewConversationHandler(engine)
	professionalHandler := handlers.NewProfessionalHandler(st, avail)

	api := router.Group("/api/v1")
	{
		// Conversation threads: the workflow engine's external surface
		conversationRoutes := api.Group("/conversations")
		{
			conversationRoutes.POST("", conversationHandler.StartConversation)
			conversationRoutes.POST("/:id/resume", conversationHandler.ResumeConversation)
			conversationRoutes.GET("/:id", conversationHandler.GetConversation)
		}

		// Direct read access for UIs that bypass the conversation
		professionalRoutes := api.Group("/professionals")
		{
			professionalRoutes.GET("", professionalHandler.GetProfessionals)
			professionalRoutes.GET("/:name/slots", professionalHandler.GetProfessionalSlots)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
