package chain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	appmodel "taleweaver/internal/model"
	"taleweaver/internal/service/narrative"
)

// DetailsChain 故事属性补全链
type DetailsChain struct {
	chatModel model.BaseChatModel
	opts      Options
}

// NewDetailsChain 创建故事属性补全链
func NewDetailsChain(chatModel model.BaseChatModel, opts Options) *DetailsChain {
	return &DetailsChain{chatModel: chatModel, opts: opts.withDefaults()}
}

// Run 请求模型补全缺失字段，返回与 partial 合并后的结果
func (c *DetailsChain) Run(ctx context.Context, partial StoryDetailsWithCharacters) (*StoryDetailsWithCharacters, *appmodel.TokenUsage, error) {
	messages := []*schema.Message{
		schema.SystemMessage(detailsSystemPrompt(c.opts.Language)),
		schema.UserMessage(buildDetailsPrompt(c.opts.Language, partial)),
	}
	temperature := NormalizeTemperature(partial.Temperature, c.opts.TemperatureMin, c.opts.TemperatureMax)

	resp, err := c.chatModel.Generate(ctx, messages, model.WithTemperature(float32(temperature)))
	if err != nil {
		return nil, nil, fmt.Errorf("chat model: %w", err)
	}
	if resp == nil || resp.Content == "" {
		return nil, usageOf(resp), errors.New("empty model response")
	}

	generated, err := ParseDetails(resp.Content)
	if err != nil {
		return nil, usageOf(resp), err
	}
	merged := MergeDetails(partial, *generated)
	return &merged, usageOf(resp), nil
}

// MergeDetails 合并用户提供与模型生成的属性
// 用户提供的值优先；生成角色仅在名字不重复时追加
func MergeDetails(partial, generated StoryDetailsWithCharacters) StoryDetailsWithCharacters {
	out := partial
	out.Title = firstNonEmpty(partial.Title, generated.Title)
	out.Genre = firstNonEmpty(partial.Genre, generated.Genre)
	out.NarrativeStyle = firstNonEmpty(partial.NarrativeStyle, generated.NarrativeStyle)
	out.Setting = firstNonEmpty(partial.Setting, generated.Setting)
	out.TargetAudience = firstNonEmpty(partial.TargetAudience, generated.TargetAudience)
	out.MainCharacter = firstNonEmpty(partial.MainCharacter, generated.MainCharacter)

	out.Characters = make([]narrative.CharacterSheet, 0, len(partial.Characters)+len(generated.Characters))
	seen := make(map[string]struct{})
	for _, c := range partial.Characters {
		out.Characters = append(out.Characters, c)
		seen[strings.ToLower(strings.TrimSpace(c.Name))] = struct{}{}
	}
	for _, c := range generated.Characters {
		key := strings.ToLower(strings.TrimSpace(c.Name))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out.Characters = append(out.Characters, c)
	}
	return out
}

func sheet(name, age, personality, background string) narrative.CharacterSheet {
	return narrative.CharacterSheet{
		Name:        name,
		Age:         strings.TrimSpace(age),
		Personality: strings.TrimSpace(personality),
		Background:  strings.TrimSpace(background),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
