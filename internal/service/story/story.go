package story

import (
	"context"
	"fmt"

	"taleweaver/internal/ai/chain"
	"taleweaver/internal/model/story"
	"taleweaver/internal/pkg/lock"
	storyrepo "taleweaver/internal/repository/story"
	"taleweaver/internal/service/narrative"
)

// Generator 章节生成网关
type Generator interface {
	// GenerateChapter 生成章节，失败时返回包装了 model.ErrGenerationFailed 的错误
	GenerateChapter(ctx context.Context, details narrative.StoryDetails, gctx *narrative.Context, directive string) (*chain.ChapterGeneration, error)

	// GenerateRandomStoryDetails 补全缺失属性，失败时原样返回输入
	GenerateRandomStoryDetails(ctx context.Context, partial chain.StoryDetailsWithCharacters) chain.StoryDetailsWithCharacters
}

// StoryService 故事服务接口
type StoryService interface {
	// CreateStory 创建故事：补全属性、保存角色、生成根章节
	CreateStory(ctx context.Context, in *CreateStoryInput) (*StoryDetail, error)

	// ContinueStory 从指定章节续写，选项驱动的续写会复用已有分支
	ContinueStory(ctx context.Context, in *ContinueInput) (*ContinueResult, error)

	// ListStories 列出所有故事（新的在前）
	ListStories(ctx context.Context) ([]*story.Story, error)

	// GetStory 获取故事及其根章节
	GetStory(ctx context.Context, storyID int64) (*StoryDetail, error)

	// GetChapter 获取章节及其续写选项
	GetChapter(ctx context.Context, chapterID int64) (*ChapterWithOptions, error)

	// GetChapterPath 获取从根到该章节的路径
	GetChapterPath(ctx context.Context, chapterID int64) ([]*story.Chapter, error)

	// GetAllChapters 获取故事的全部章节（按路径排序）
	GetAllChapters(ctx context.Context, storyID int64) ([]*story.Chapter, error)

	// ListCharacters 获取故事的角色
	ListCharacters(ctx context.Context, storyID int64) ([]*story.Character, error)

	// GetCharacter 获取角色
	GetCharacter(ctx context.Context, characterID int64) (*story.Character, error)

	// CreateCharacter 为故事添加角色
	CreateCharacter(ctx context.Context, in *CreateCharacterInput) (*story.Character, error)
}

// storyService 故事服务实现
type storyService struct {
	store     storyrepo.Store
	generator Generator
	locker    lock.Locker
}

// NewStoryService 创建故事服务
func NewStoryService(store storyrepo.Store, generator Generator, locker lock.Locker) StoryService {
	if locker == nil {
		locker = lock.NewMemoryLocker()
	}
	return &storyService{
		store:     store,
		generator: generator,
		locker:    locker,
	}
}

// persistOptions 保存章节的续写选项，结局章节不保存
func (s *storyService) persistOptions(ctx context.Context, chapter *story.Chapter, drafts []chain.OptionDraft) ([]*story.ContinuationOption, error) {
	out := make([]*story.ContinuationOption, 0, len(drafts))
	if chapter.IsEnding {
		return out, nil
	}
	for _, d := range drafts {
		o := &story.ContinuationOption{
			ChapterID: chapter.ID,
			Title:     d.Title,
			Preview:   d.Preview,
			Prompt:    d.Prompt,
		}
		if err := s.store.CreateContinuationOption(ctx, o); err != nil {
			return nil, fmt.Errorf("failed to save continuation option: %w", err)
		}
		out = append(out, o)
	}
	return out, nil
}

// withOptions 加载章节的续写选项
func (s *storyService) withOptions(ctx context.Context, chapter *story.Chapter) (*ChapterWithOptions, error) {
	opts, err := s.store.ListContinuationOptions(ctx, chapter.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load continuation options: %w", err)
	}
	return &ChapterWithOptions{Chapter: chapter, ContinuationOptions: opts}, nil
}
