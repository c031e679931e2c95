package story

import (
	"taleweaver/internal/model/story"
)

// CharacterInput 用户提供的角色
type CharacterInput struct {
	Name        string `json:"name"`
	Age         string `json:"age,omitempty"`
	Personality string `json:"personality,omitempty"`
	Background  string `json:"background,omitempty"`
}

// CreateStoryInput 创建故事的输入，所有属性均可缺省
type CreateStoryInput struct {
	Title          string           `json:"title,omitempty"`
	Genre          string           `json:"genre,omitempty"`
	NarrativeStyle string           `json:"narrativeStyle,omitempty"`
	Setting        string           `json:"setting,omitempty"`
	TargetAudience string           `json:"targetAudience,omitempty"`
	MainCharacter  string           `json:"mainCharacter,omitempty"`
	ChapterLength  string           `json:"chapterLength,omitempty"`
	Temperature    *int             `json:"temperature,omitempty"`
	Characters     []CharacterInput `json:"characters,omitempty"`
}

// CreateCharacterInput 为已有故事添加角色
type CreateCharacterInput struct {
	StoryID int64 `json:"storyId"`
	CharacterInput
}

// ContinueInput 续写指令：选项优先于自定义 prompt
type ContinueInput struct {
	StoryID          int64  `json:"storyId"`
	ChapterID        int64  `json:"chapterId"`
	SelectedOptionID *int64 `json:"selectedOptionId,omitempty"`
	CustomPrompt     string `json:"customPrompt,omitempty"`
}

// ChapterWithOptions 章节及其续写选项
type ChapterWithOptions struct {
	*story.Chapter
	ContinuationOptions []*story.ContinuationOption `json:"continuationOptions"`
}

// StoryDetail 故事及其根章节（根章节可能缺失）
type StoryDetail struct {
	*story.Story
	RootChapter *ChapterWithOptions `json:"rootChapter,omitempty"`
}

// ContinueResult 续写结果，Reused 表示命中了已有分支
type ContinueResult struct {
	Chapter *ChapterWithOptions
	Reused  bool
}
