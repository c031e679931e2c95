package story

import (
	"context"
	"errors"

	"taleweaver/internal/model/story"
)

var (
	// ErrRootExists 故事已存在根章节
	ErrRootExists = errors.New("story already has a root chapter")
	// ErrInvalidParent 根标记与父章节不一致（根章节不能有父，非根章节必须有父）
	ErrInvalidParent = errors.New("chapter root flag and parent do not agree")
)

// Store 故事树存储接口
// 说明：单条查询未命中时返回 model.ErrNotFound；列表查询未命中返回空切片
type Store interface {
	// Story
	CreateStory(ctx context.Context, s *story.Story) error
	ListStories(ctx context.Context) ([]*story.Story, error)
	GetStory(ctx context.Context, id int64) (*story.Story, error)

	// Chapter
	CreateChapter(ctx context.Context, c *story.Chapter) error
	GetChapter(ctx context.Context, id int64) (*story.Chapter, error)
	GetChapterPath(ctx context.Context, chapterID int64) ([]*story.Chapter, error)
	GetRootChapter(ctx context.Context, storyID int64) (*story.Chapter, error)
	GetAllChapters(ctx context.Context, storyID int64) ([]*story.Chapter, error)
	GetNextChapterByOption(ctx context.Context, parentChapterID, optionID int64) (*story.Chapter, error)

	// Character
	CreateCharacter(ctx context.Context, c *story.Character) error
	GetCharacter(ctx context.Context, id int64) (*story.Character, error)
	ListCharacters(ctx context.Context, storyID int64) ([]*story.Character, error)

	// ContinuationOption
	CreateContinuationOption(ctx context.Context, o *story.ContinuationOption) error
	GetContinuationOption(ctx context.Context, id int64) (*story.ContinuationOption, error)
	ListContinuationOptions(ctx context.Context, chapterID int64) ([]*story.ContinuationOption, error)

	Close(ctx context.Context) error
}
