package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/rs/zerolog/log"

	"taleweaver/internal/ai/chain"
	"taleweaver/internal/ai/component"
	"taleweaver/internal/config"
	appmodel "taleweaver/internal/model"
	"taleweaver/internal/service/narrative"
)

// Client AI 能力层客户端（章节生成网关）
// 职责: 章节生成与故事属性补全，统一错误语义
type Client struct {
	chapterChain *chain.ChapterChain
	detailsChain *chain.DetailsChain
}

// NewClient 按配置创建 ChatModel 并初始化生成链
func NewClient(ctx context.Context, aiCfg *config.AIConfig, storyCfg *config.StoryConfig) (*Client, error) {
	if aiCfg.APIKey == "" {
		log.Warn().Str("provider", aiCfg.Provider).Msg("AI API key not configured, generation calls will fail")
	}

	chatModel, err := component.NewChatModel(ctx, aiCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	return NewClientWithModel(chatModel, chain.Options{
		Language:       storyCfg.Language,
		TemperatureMin: aiCfg.Options.TemperatureMin,
		TemperatureMax: aiCfg.Options.TemperatureMax,
	}), nil
}

// NewClientWithModel 使用已有的 ChatModel 创建客户端
func NewClientWithModel(chatModel model.BaseChatModel, opts chain.Options) *Client {
	return &Client{
		chapterChain: chain.NewChapterChain(chatModel, opts),
		detailsChain: chain.NewDetailsChain(chatModel, opts),
	}
}

// GenerateChapter 生成一个章节
// 任何失败都包装为 model.ErrGenerationFailed
func (c *Client) GenerateChapter(ctx context.Context, details narrative.StoryDetails, gctx *narrative.Context, directive string) (*chain.ChapterGeneration, error) {
	start := time.Now()
	gen, usage, err := c.chapterChain.Run(ctx, details, gctx, directive)
	generationDuration.WithLabelValues(kindChapter).Observe(time.Since(start).Seconds())
	observeUsage(kindChapter, usage)

	if err != nil {
		generationRequestsTotal.WithLabelValues(kindChapter, statusError).Inc()
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("chapter generation failed")
		return nil, fmt.Errorf("%w: %w", appmodel.ErrGenerationFailed, err)
	}

	generationRequestsTotal.WithLabelValues(kindChapter, statusSuccess).Inc()
	log.Debug().
		Str("title", gen.Title).
		Bool("is_ending", gen.IsEnding).
		Int("options", len(gen.ContinuationOptions)).
		Dur("elapsed", time.Since(start)).
		Msg("chapter generated")
	return gen, nil
}

// GenerateRandomStoryDetails 补全缺失的故事属性和角色
// 属性齐全且已有角色时不调用模型；失败时原样返回 partial
func (c *Client) GenerateRandomStoryDetails(ctx context.Context, partial chain.StoryDetailsWithCharacters) chain.StoryDetailsWithCharacters {
	if partial.Complete() {
		return partial
	}

	start := time.Now()
	merged, usage, err := c.detailsChain.Run(ctx, partial)
	generationDuration.WithLabelValues(kindDetails).Observe(time.Since(start).Seconds())
	observeUsage(kindDetails, usage)

	if err != nil {
		generationRequestsTotal.WithLabelValues(kindDetails, statusError).Inc()
		log.Warn().Err(err).Msg("story detail generation failed, keeping supplied details")
		return partial
	}

	generationRequestsTotal.WithLabelValues(kindDetails, statusSuccess).Inc()
	return *merged
}

// Close 关闭客户端
func (c *Client) Close() error {
	return nil
}
