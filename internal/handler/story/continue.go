package story

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taleweaver/internal/service/story"
)

// ContinueStoryRequest 续写请求，selectedOptionId 与 customPrompt 至少提供一个
type ContinueStoryRequest struct {
	StoryID          int64  `json:"storyId" binding:"required,min=1"`
	ChapterID        int64  `json:"chapterId" binding:"required,min=1"`
	SelectedOptionID *int64 `json:"selectedOptionId" binding:"omitempty,min=1"`
	CustomPrompt     string `json:"customPrompt"`
}

// ContinueStory 续写故事
// @Summary      续写故事
// @Description  按选项或自定义指令生成下一章；同一选项再次请求时返回已有章节（200）
// @Tags         故事
// @Accept       json
// @Produce      json
// @Param        request  body      ContinueStoryRequest  true  "续写指令"
// @Success      201      {object}  story.ChapterWithOptions  "新生成的章节"
// @Success      200      {object}  story.ChapterWithOptions  "复用已有章节"
// @Failure      400      {object}  ErrorResponse  "请求参数错误"
// @Failure      404      {object}  ErrorResponse  "故事、章节或选项不存在"
// @Failure      500      {object}  ErrorResponse  "生成或存储失败"
// @Router       /api/stories/continue [post]
func (h *Handler) ContinueStory(c *gin.Context) {
	var req ContinueStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	res, err := h.storyService.ContinueStory(c.Request.Context(), &story.ContinueInput{
		StoryID:          req.StoryID,
		ChapterID:        req.ChapterID,
		SelectedOptionID: req.SelectedOptionID,
		CustomPrompt:     req.CustomPrompt,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	status := http.StatusCreated
	if res.Reused {
		status = http.StatusOK
	}
	c.JSON(status, res.Chapter)
}
