package chain

import (
	"taleweaver/internal/service/narrative"
)

// OptionDraft 模型返回的续写选项
type OptionDraft struct {
	Title   string `json:"title"`
	Preview string `json:"preview"`
	Prompt  string `json:"prompt"`
}

// ChapterGeneration 模型返回的章节
type ChapterGeneration struct {
	Title               string        `json:"title"`
	Content             string        `json:"content"`
	Summary             string        `json:"summary"`
	IsEnding            bool          `json:"isEnding"`
	ContinuationOptions []OptionDraft `json:"continuationOptions"`
}

// StoryDetailsWithCharacters 故事属性与初始角色
type StoryDetailsWithCharacters struct {
	narrative.StoryDetails
	Characters []narrative.CharacterSheet `json:"characters,omitempty"`
}

// Complete 六个属性均已填写且至少有一个角色
func (d *StoryDetailsWithCharacters) Complete() bool {
	return d.Title != "" &&
		d.Genre != "" &&
		d.NarrativeStyle != "" &&
		d.Setting != "" &&
		d.TargetAudience != "" &&
		d.MainCharacter != "" &&
		len(d.Characters) > 0
}

// MaxContinuationOptions 每个非结局章节的选项数
const MaxContinuationOptions = 3
