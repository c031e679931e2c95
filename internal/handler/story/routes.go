package story

import "github.com/gin-gonic/gin"

// RegisterRoutes 注册故事相关路由
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	stories := api.Group("/stories")
	{
		stories.GET("", h.ListStories)
		stories.POST("", h.CreateStory)
		stories.POST("/continue", h.ContinueStory)
		stories.GET("/:id", h.GetStory)
		stories.GET("/:id/chapters", h.GetStoryChapters)
		stories.GET("/:id/characters", h.ListCharacters)
	}

	chapters := api.Group("/chapters")
	{
		chapters.GET("/:id", h.GetChapter)
		chapters.GET("/:id/path", h.GetChapterPath)
	}

	characters := api.Group("/characters")
	{
		characters.GET("/:id", h.GetCharacter)
		characters.POST("", h.CreateCharacter)
	}
}
