package router

import (
	"github.com/gin-gonic/gin"

	"neuranote.app/assistant/internal/http/handler"
)

func health(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"message": message})
	}
}

// SetupAssistantRoutes wires the assistant surface.
func SetupAssistantRoutes(router *gin.Engine, assistant *handler.AssistantHandler) {
	router.GET("/", health("NeuraNote assistant API is running."))
	router.POST("/identify-blockers", assistant.IdentifyBlockers)
	router.POST("/study-topic", assistant.StudyTopic)

	api := router.Group("/api")
	{
		api.POST("/generate", assistant.Generate)
	}
}

// SetupPlannerRoutes wires the legacy planner surface.
func SetupPlannerRoutes(router *gin.Engine, planner *handler.PlannerHandler) {
	router.GET("/", health("NeuraNote API is running."))
	router.POST("/focus-assistant", planner.FocusAssistant)
	router.POST("/learning-path", planner.LearningPath)
	router.POST("/timetable", planner.Timetable)
}
