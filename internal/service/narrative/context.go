package narrative

import (
	"taleweaver/internal/model/story"
)

// StoryDetails 生成章节所需的故事属性
// 说明：空字符串表示未提供；Temperature 为 nil 时使用中间值
type StoryDetails struct {
	Title          string              `json:"title,omitempty"`
	Genre          string              `json:"genre,omitempty"`
	NarrativeStyle string              `json:"narrativeStyle,omitempty"`
	Setting        string              `json:"setting,omitempty"`
	TargetAudience string              `json:"targetAudience,omitempty"`
	MainCharacter  string              `json:"mainCharacter,omitempty"`
	ChapterLength  story.ChapterLength `json:"chapterLength"`
	Temperature    *int                `json:"temperature,omitempty"`
}

// CharacterSheet 角色卡，Age/Personality/Background 各自可缺省
type CharacterSheet struct {
	Name        string `json:"name"`
	Age         string `json:"age,omitempty"`
	Personality string `json:"personality,omitempty"`
	Background  string `json:"background,omitempty"`
}

// Context 交给生成网关的叙事上下文
type Context struct {
	Story      StoryDetails
	Depth      int
	Arc        ArcPhase
	Characters []CharacterSheet

	// FirstChapter 为 true 时以下前文字段均为空
	FirstChapter    bool
	PreviousTitle   string
	PreviousContent string
	PreviousSummary string
}

// DetailsFromStory 从故事实体提取生成属性并补齐默认值
func DetailsFromStory(s *story.Story) StoryDetails {
	length := s.ChapterLength
	if !length.Valid() {
		length = story.DefaultChapterLength
	}
	temp := s.Temperature
	if temp == 0 {
		temp = story.DefaultTemperature
	}
	return StoryDetails{
		Title:          s.Title,
		Genre:          s.Genre,
		NarrativeStyle: s.NarrativeStyle,
		Setting:        s.Setting,
		TargetAudience: s.TargetAudience,
		MainCharacter:  s.MainCharacter,
		ChapterLength:  length,
		Temperature:    &temp,
	}
}

// SheetsFromCharacters 将角色实体转换为角色卡，跳过无名角色
func SheetsFromCharacters(characters []*story.Character) []CharacterSheet {
	out := make([]CharacterSheet, 0, len(characters))
	for _, c := range characters {
		if c == nil || c.Name == "" {
			continue
		}
		out = append(out, CharacterSheet{
			Name:        c.Name,
			Age:         c.Age,
			Personality: c.Personality,
			Background:  c.Background,
		})
	}
	return out
}

// BuildContext 组装叙事上下文
// chapter 为 nil 时进入首章模式，深度为 1
func BuildContext(s *story.Story, chapter *story.Chapter, characters []*story.Character) *Context {
	ctx := &Context{
		Story:      DetailsFromStory(s),
		Characters: SheetsFromCharacters(characters),
	}

	if chapter == nil {
		ctx.FirstChapter = true
		ctx.Depth = 1
	} else {
		ctx.Depth = ChapterDepth(chapter.Path)
		ctx.PreviousTitle = chapter.Title
		ctx.PreviousContent = chapter.Content
		ctx.PreviousSummary = chapter.Summary
	}
	ctx.Arc = StoryArcPhase(ctx.Depth)
	return ctx
}
