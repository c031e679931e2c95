package story

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"taleweaver/internal/model"
	"taleweaver/internal/model/story"
	"taleweaver/internal/pkg/ctxutil"
	"taleweaver/internal/service/narrative"
)

// ContinueStory 从指定章节续写
// 选项驱动的续写按章节加锁，并优先复用已由该选项生成的子章节；自定义 prompt 每次都生成新分支
func (s *storyService) ContinueStory(ctx context.Context, in *ContinueInput) (*ContinueResult, error) {
	if err := validateContinue(in); err != nil {
		return nil, err
	}

	logger := ctxutil.Logger(ctx).With().Int64("story_id", in.StoryID).Int64("chapter_id", in.ChapterID).Logger()

	// 1. 并发加载故事、当前章节和角色
	var (
		st         *story.Story
		current    *story.Chapter
		characters []*story.Character
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		st, err = s.store.GetStory(gctx, in.StoryID)
		return err
	})
	g.Go(func() error {
		var err error
		current, err = s.store.GetChapter(gctx, in.ChapterID)
		return err
	})
	g.Go(func() error {
		var err error
		characters, err = s.store.ListCharacters(gctx, in.StoryID)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load continuation context: %w", err)
	}
	if current.StoryID != st.ID {
		return nil, model.ErrNotFound
	}
	if current.IsEnding {
		return nil, model.NewValidationError("chapterId", "chapter ends the story and cannot be continued")
	}

	// 2. 解析续写指令
	directive := strings.TrimSpace(in.CustomPrompt)
	if in.SelectedOptionID != nil {
		opt, err := s.store.GetContinuationOption(ctx, *in.SelectedOptionID)
		if err != nil {
			return nil, err
		}
		if opt.ChapterID != current.ID {
			return nil, model.ErrNotFound
		}
		directive = opt.Prompt
		logger = logger.With().Int64("option_id", opt.ID).Logger()

		// 3. 同一章节的选项续写串行执行，避免并发请求生成重复分支
		release, err := s.locker.Acquire(ctx, fmt.Sprintf("chapter:%d", current.ID))
		if err != nil {
			return nil, fmt.Errorf("failed to lock chapter: %w", err)
		}
		defer release()

		existing, err := s.store.GetNextChapterByOption(ctx, current.ID, opt.ID)
		switch {
		case err == nil:
			chapter, err := s.withOptions(ctx, existing)
			if err != nil {
				return nil, err
			}
			logger.Info().Int64("next_chapter_id", existing.ID).Msg("reusing existing branch")
			return &ContinueResult{Chapter: chapter, Reused: true}, nil
		case !errors.Is(err, model.ErrNotFound):
			return nil, fmt.Errorf("failed to look up existing branch: %w", err)
		}
	}

	// 4. 生成
	bundle := narrative.BuildContext(st, current, characters)
	gen, err := s.generator.GenerateChapter(ctx, narrative.DetailsFromStory(st), bundle, directive)
	if err != nil {
		logger.Error().Err(err).Msg("chapter generation failed")
		return nil, err
	}

	// 5. 保存
	parentID := current.ID
	next := &story.Chapter{
		StoryID:  st.ID,
		ParentID: &parentID,
		Title:    gen.Title,
		Content:  gen.Content,
		Summary:  gen.Summary,
		Prompt:   directive,
		IsEnding: gen.IsEnding,
	}
	if err := s.store.CreateChapter(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save chapter: %w", err)
	}
	opts, err := s.persistOptions(ctx, next, gen.ContinuationOptions)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("next_chapter_id", next.ID).
		Bool("is_ending", next.IsEnding).
		Msg("story continued")

	return &ContinueResult{
		Chapter: &ChapterWithOptions{Chapter: next, ContinuationOptions: opts},
	}, nil
}
