package story

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taleweaver/internal/model"
	"taleweaver/internal/model/story"
)

// ListStories 列出所有故事
func (s *storyService) ListStories(ctx context.Context) ([]*story.Story, error) {
	stories, err := s.store.ListStories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	return stories, nil
}

// GetStory 获取故事，根章节缺失时只返回故事
func (s *storyService) GetStory(ctx context.Context, storyID int64) (*StoryDetail, error) {
	st, err := s.store.GetStory(ctx, storyID)
	if err != nil {
		return nil, err
	}

	root, err := s.store.GetRootChapter(ctx, storyID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return &StoryDetail{Story: st}, nil
		}
		return nil, fmt.Errorf("failed to load root chapter: %w", err)
	}
	chapter, err := s.withOptions(ctx, root)
	if err != nil {
		return nil, err
	}
	return &StoryDetail{Story: st, RootChapter: chapter}, nil
}

// GetChapter 获取章节及其选项
func (s *storyService) GetChapter(ctx context.Context, chapterID int64) (*ChapterWithOptions, error) {
	chapter, err := s.store.GetChapter(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	return s.withOptions(ctx, chapter)
}

// GetChapterPath 获取从根到该章节的路径，章节不存在时返回 ErrNotFound
func (s *storyService) GetChapterPath(ctx context.Context, chapterID int64) ([]*story.Chapter, error) {
	path, err := s.store.GetChapterPath(ctx, chapterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chapter path: %w", err)
	}
	if len(path) == 0 {
		return nil, model.ErrNotFound
	}
	return path, nil
}

// GetAllChapters 获取故事的全部章节
func (s *storyService) GetAllChapters(ctx context.Context, storyID int64) ([]*story.Chapter, error) {
	if _, err := s.store.GetStory(ctx, storyID); err != nil {
		return nil, err
	}
	chapters, err := s.store.GetAllChapters(ctx, storyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}
	return chapters, nil
}

// ListCharacters 获取故事的角色
func (s *storyService) ListCharacters(ctx context.Context, storyID int64) ([]*story.Character, error) {
	if _, err := s.store.GetStory(ctx, storyID); err != nil {
		return nil, err
	}
	characters, err := s.store.ListCharacters(ctx, storyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	return characters, nil
}

// GetCharacter 获取角色
func (s *storyService) GetCharacter(ctx context.Context, characterID int64) (*story.Character, error) {
	return s.store.GetCharacter(ctx, characterID)
}

// CreateCharacter 为故事添加角色
func (s *storyService) CreateCharacter(ctx context.Context, in *CreateCharacterInput) (*story.Character, error) {
	if err := validateCharacter(in); err != nil {
		return nil, err
	}
	if _, err := s.store.GetStory(ctx, in.StoryID); err != nil {
		return nil, err
	}

	c := &story.Character{
		StoryID:     in.StoryID,
		Name:        strings.TrimSpace(in.Name),
		Age:         in.Age,
		Personality: in.Personality,
		Background:  in.Background,
	}
	if err := s.store.CreateCharacter(ctx, c); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save character: %w", err)
	}
	return c, nil
}
