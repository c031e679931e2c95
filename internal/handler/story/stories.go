package story

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taleweaver/internal/service/story"
)

// CharacterRequest 角色请求体
type CharacterRequest struct {
	Name        string `json:"name" binding:"required"`
	Age         string `json:"age"`
	Personality string `json:"personality"`
	Background  string `json:"background"`
}

// CreateStoryRequest 创建故事请求，所有字段可选
type CreateStoryRequest struct {
	Title          string             `json:"title"`
	Genre          string             `json:"genre"`
	NarrativeStyle string             `json:"narrativeStyle"`
	Setting        string             `json:"setting"`
	TargetAudience string             `json:"targetAudience"`
	MainCharacter  string             `json:"mainCharacter"`
	ChapterLength  string             `json:"chapterLength" binding:"omitempty,oneof=100-200 200-300 300-400"`
	Temperature    *int               `json:"temperature" binding:"omitempty,min=1,max=9"`
	Characters     []CharacterRequest `json:"characters" binding:"omitempty,dive"`
}

func (r *CreateStoryRequest) toInput() *story.CreateStoryInput {
	in := &story.CreateStoryInput{
		Title:          r.Title,
		Genre:          r.Genre,
		NarrativeStyle: r.NarrativeStyle,
		Setting:        r.Setting,
		TargetAudience: r.TargetAudience,
		MainCharacter:  r.MainCharacter,
		ChapterLength:  r.ChapterLength,
		Temperature:    r.Temperature,
	}
	for _, c := range r.Characters {
		in.Characters = append(in.Characters, story.CharacterInput{
			Name:        c.Name,
			Age:         c.Age,
			Personality: c.Personality,
			Background:  c.Background,
		})
	}
	return in
}

// ListStories 列出所有故事
// @Summary      列出故事
// @Description  按创建时间倒序返回所有故事
// @Tags         故事
// @Produce      json
// @Success      200  {array}   story.Story
// @Failure      500  {object}  ErrorResponse  "服务器内部错误"
// @Router       /api/stories [get]
func (h *Handler) ListStories(c *gin.Context) {
	stories, err := h.storyService.ListStories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stories)
}

// GetStory 获取故事及根章节
// @Summary      获取故事
// @Description  返回故事属性，以及根章节和它的续写选项（若存在）
// @Tags         故事
// @Produce      json
// @Param        id   path      int  true  "故事ID"
// @Success      200  {object}  story.StoryDetail
// @Failure      400  {object}  ErrorResponse  "请求参数错误"
// @Failure      404  {object}  ErrorResponse  "故事不存在"
// @Router       /api/stories/{id} [get]
func (h *Handler) GetStory(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	detail, err := h.storyService.GetStory(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// CreateStory 创建故事
// @Summary      创建故事
// @Description  补全缺失属性，保存角色并生成第一章
// @Tags         故事
// @Accept       json
// @Produce      json
// @Param        request  body      CreateStoryRequest  true  "故事属性"
// @Success      201      {object}  story.StoryDetail
// @Failure      400      {object}  ErrorResponse  "请求参数错误"
// @Failure      500      {object}  ErrorResponse  "生成或存储失败"
// @Router       /api/stories [post]
func (h *Handler) CreateStory(c *gin.Context) {
	var req CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	detail, err := h.storyService.CreateStory(c.Request.Context(), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}
