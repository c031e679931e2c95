package story

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taleweaver/internal/service/story"
)

// CreateCharacterRequest 添加角色请求
type CreateCharacterRequest struct {
	StoryID     int64  `json:"storyId" binding:"required,min=1"`
	Name        string `json:"name" binding:"required"`
	Age         string `json:"age"`
	Personality string `json:"personality"`
	Background  string `json:"background"`
}

// ListCharacters 获取故事角色
// @Summary      获取故事角色
// @Tags         角色
// @Produce      json
// @Param        id   path      int  true  "故事ID"
// @Success      200  {array}   story.Character
// @Failure      404  {object}  ErrorResponse  "故事不存在"
// @Router       /api/stories/{id}/characters [get]
func (h *Handler) ListCharacters(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	characters, err := h.storyService.ListCharacters(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, characters)
}

// GetCharacter 获取角色
// @Summary      获取角色
// @Tags         角色
// @Produce      json
// @Param        id   path      int  true  "角色ID"
// @Success      200  {object}  story.Character
// @Failure      404  {object}  ErrorResponse  "角色不存在"
// @Router       /api/characters/{id} [get]
func (h *Handler) GetCharacter(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	character, err := h.storyService.GetCharacter(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, character)
}

// CreateCharacter 添加角色
// @Summary      添加角色
// @Tags         角色
// @Accept       json
// @Produce      json
// @Param        request  body      CreateCharacterRequest  true  "角色"
// @Success      201      {object}  story.Character
// @Failure      400      {object}  ErrorResponse  "请求参数错误"
// @Failure      404      {object}  ErrorResponse  "故事不存在"
// @Router       /api/characters [post]
func (h *Handler) CreateCharacter(c *gin.Context) {
	var req CreateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	character, err := h.storyService.CreateCharacter(c.Request.Context(), &story.CreateCharacterInput{
		StoryID: req.StoryID,
		CharacterInput: story.CharacterInput{
			Name:        req.Name,
			Age:         req.Age,
			Personality: req.Personality,
			Background:  req.Background,
		},
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, character)
}
