package story

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetChapter 获取章节
// @Summary      获取章节
// @Tags         章节
// @Produce      json
// @Param        id   path      int  true  "章节ID"
// @Success      200  {object}  story.ChapterWithOptions
// @Failure      404  {object}  ErrorResponse  "章节不存在"
// @Router       /api/chapters/{id} [get]
func (h *Handler) GetChapter(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	chapter, err := h.storyService.GetChapter(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, chapter)
}

// GetChapterPath 获取根到章节的路径
// @Summary      获取章节路径
// @Tags         章节
// @Produce      json
// @Param        id   path      int  true  "章节ID"
// @Success      200  {array}   story.Chapter
// @Failure      404  {object}  ErrorResponse  "章节不存在"
// @Router       /api/chapters/{id}/path [get]
func (h *Handler) GetChapterPath(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	path, err := h.storyService.GetChapterPath(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, path)
}

// GetStoryChapters 获取故事的全部章节
// @Summary      获取故事章节树
// @Tags         章节
// @Produce      json
// @Param        id   path      int  true  "故事ID"
// @Success      200  {array}   story.Chapter
// @Failure      404  {object}  ErrorResponse  "故事不存在"
// @Router       /api/stories/{id}/chapters [get]
func (h *Handler) GetStoryChapters(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	chapters, err := h.storyService.GetAllChapters(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, chapters)
}
