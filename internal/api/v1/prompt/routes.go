package prompt

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	prompts := router.Group("/prompts")
	{
		prompts.GET("", ListPrompts)
		prompts.POST("", CreatePrompt)
		prompts.POST("/execute", ExecutePrompt)
		prompts.POST("/import-yaml", ImportPrompt)
		prompts.POST("/reconcile", ReconcileVariables)
		prompts.POST("/variables/rename", RenameVariable)
		prompts.POST("/variables/remove", RemoveVariable)
		prompts.POST("/suggest", SuggestCategorization)
		prompts.GET("/:id", GetPrompt)
		prompts.PUT("/:id", UpdatePrompt)
		prompts.DELETE("/:id", DeletePrompt)
		prompts.GET("/:id/executions", ListExecutions)
		prompts.GET("/:id/export-yaml", ExportPrompt)
	}
}
