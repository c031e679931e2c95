package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	appmodel "taleweaver/internal/model"
	"taleweaver/internal/service/narrative"
)

// Options 生成链的公共参数
type Options struct {
	Language       string
	TemperatureMin float64
	TemperatureMax float64
}

func (o Options) withDefaults() Options {
	if o.Language == "" {
		o.Language = DefaultLanguage
	}
	if o.TemperatureMin == 0 && o.TemperatureMax == 0 {
		o.TemperatureMin, o.TemperatureMax = DefaultTemperatureMin, DefaultTemperatureMax
	}
	return o
}

// ChapterChain 章节生成链
// 工作流: 叙事上下文 -> Prompt -> ChatModel(JSON) -> 解析校验
type ChapterChain struct {
	chatModel model.BaseChatModel
	opts      Options
}

// NewChapterChain 创建章节生成链
func NewChapterChain(chatModel model.BaseChatModel, opts Options) *ChapterChain {
	return &ChapterChain{chatModel: chatModel, opts: opts.withDefaults()}
}

// Run 生成一个章节
// gctx 为 nil 时按首章处理
func (c *ChapterChain) Run(ctx context.Context, details narrative.StoryDetails, gctx *narrative.Context, directive string) (*ChapterGeneration, *appmodel.TokenUsage, error) {
	if gctx == nil {
		gctx = &narrative.Context{
			Story:        details,
			Depth:        1,
			Arc:          narrative.StoryArcPhase(1),
			FirstChapter: true,
		}
	}
	if !details.ChapterLength.Valid() {
		details.ChapterLength = gctx.Story.ChapterLength
	}

	messages := []*schema.Message{
		schema.SystemMessage(chapterSystemPrompt(c.opts.Language)),
		schema.UserMessage(buildChapterPrompt(c.opts.Language, details, gctx, directive)),
	}
	temperature := NormalizeTemperature(details.Temperature, c.opts.TemperatureMin, c.opts.TemperatureMax)

	resp, err := c.chatModel.Generate(ctx, messages, model.WithTemperature(float32(temperature)))
	if err != nil {
		return nil, nil, fmt.Errorf("chat model: %w", err)
	}
	if resp == nil || resp.Content == "" {
		return nil, usageOf(resp), errors.New("empty model response")
	}

	gen, err := ParseChapter(resp.Content)
	if err != nil {
		return nil, usageOf(resp), err
	}
	return gen, usageOf(resp), nil
}

// usageOf 提取 token 使用量
func usageOf(resp *schema.Message) *appmodel.TokenUsage {
	if resp == nil || resp.ResponseMeta == nil || resp.ResponseMeta.Usage == nil {
		return nil
	}
	u := resp.ResponseMeta.Usage
	return &appmodel.TokenUsage{
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      u.TotalTokens,
	}
}
