package tag

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	tags := router.Group("/tags")
	{
		tags.GET("", ListTags)
		tags.POST("", CreateTag)
		tags.GET("/:id", GetTag)
		tags.PUT("/:id", UpdateTag)
		tags.DELETE("/:id", DeleteTag)
	}
}
