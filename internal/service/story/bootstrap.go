package story

import (
	"context"
	"fmt"
	"strings"

	"taleweaver/internal/ai/chain"
	"taleweaver/internal/model/story"
	"taleweaver/internal/pkg/ctxutil"
	"taleweaver/internal/service/narrative"
)

// CreateStory 创建故事并生成根章节
// 故事与角色写入后若生成失败，已写入的数据保留，GetStory 可返回无根章节的故事
func (s *storyService) CreateStory(ctx context.Context, in *CreateStoryInput) (*StoryDetail, error) {
	if err := validateCreateStory(in); err != nil {
		return nil, err
	}

	length := story.ChapterLength(in.ChapterLength)
	if length == "" {
		length = story.DefaultChapterLength
	}
	temperature := story.DefaultTemperature
	if in.Temperature != nil {
		temperature = *in.Temperature
	}

	// 1. 补全缺失属性（失败时保留用户输入）
	partial := chain.StoryDetailsWithCharacters{
		StoryDetails: narrative.StoryDetails{
			Title:          strings.TrimSpace(in.Title),
			Genre:          strings.TrimSpace(in.Genre),
			NarrativeStyle: strings.TrimSpace(in.NarrativeStyle),
			Setting:        strings.TrimSpace(in.Setting),
			TargetAudience: strings.TrimSpace(in.TargetAudience),
			MainCharacter:  strings.TrimSpace(in.MainCharacter),
			ChapterLength:  length,
			Temperature:    &temperature,
		},
	}
	for _, c := range in.Characters {
		partial.Characters = append(partial.Characters, narrative.CharacterSheet{
			Name:        strings.TrimSpace(c.Name),
			Age:         c.Age,
			Personality: c.Personality,
			Background:  c.Background,
		})
	}
	filled := s.generator.GenerateRandomStoryDetails(ctx, partial)

	// 2. 保存故事
	st := &story.Story{
		Title:          filled.Title,
		Genre:          filled.Genre,
		NarrativeStyle: filled.NarrativeStyle,
		Setting:        filled.Setting,
		TargetAudience: filled.TargetAudience,
		MainCharacter:  filled.MainCharacter,
		ChapterLength:  length,
		Temperature:    temperature,
	}
	if err := s.store.CreateStory(ctx, st); err != nil {
		return nil, fmt.Errorf("failed to save story: %w", err)
	}
	logger := ctxutil.Logger(ctx).With().Int64("story_id", st.ID).Logger()

	// 3. 保存角色
	characters := make([]*story.Character, 0, len(filled.Characters))
	for _, c := range filled.Characters {
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		ch := &story.Character{
			StoryID:     st.ID,
			Name:        strings.TrimSpace(c.Name),
			Age:         c.Age,
			Personality: c.Personality,
			Background:  c.Background,
		}
		if err := s.store.CreateCharacter(ctx, ch); err != nil {
			return nil, fmt.Errorf("failed to save character: %w", err)
		}
		characters = append(characters, ch)
	}

	// 4. 生成根章节
	gctx := narrative.BuildContext(st, nil, characters)
	gen, err := s.generator.GenerateChapter(ctx, narrative.DetailsFromStory(st), gctx, "")
	if err != nil {
		logger.Error().Err(err).Msg("root chapter generation failed")
		return nil, err
	}

	// 5. 保存根章节和选项
	root := &story.Chapter{
		StoryID:  st.ID,
		Title:    gen.Title,
		Content:  gen.Content,
		Summary:  gen.Summary,
		Prompt:   story.InitialChapterPrompt,
		IsRoot:   true,
		IsEnding: gen.IsEnding,
	}
	if err := s.store.CreateChapter(ctx, root); err != nil {
		return nil, fmt.Errorf("failed to save root chapter: %w", err)
	}
	opts, err := s.persistOptions(ctx, root, gen.ContinuationOptions)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("chapter_id", root.ID).
		Int("characters", len(characters)).
		Msg("story created")

	return &StoryDetail{
		Story:       st,
		RootChapter: &ChapterWithOptions{Chapter: root, ContinuationOptions: opts},
	}, nil
}
