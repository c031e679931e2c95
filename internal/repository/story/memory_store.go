package story

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"taleweaver/internal/model"
	"taleweaver/internal/model/story"
)

// MemoryStore 内存存储实现，计数器归属于实例
type MemoryStore struct {
	mu sync.RWMutex

	stories    map[int64]*story.Story
	chapters   map[int64]*story.Chapter
	characters map[int64]*story.Character
	options    map[int64]*story.ContinuationOption

	storySeq     atomic.Int64
	chapterSeq   atomic.Int64
	characterSeq atomic.Int64
	optionSeq    atomic.Int64
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		stories:    make(map[int64]*story.Story),
		chapters:   make(map[int64]*story.Chapter),
		characters: make(map[int64]*story.Character),
		options:    make(map[int64]*story.ContinuationOption),
	}
}

var _ Store = (*MemoryStore)(nil)

// CreateStory 创建故事
func (m *MemoryStore) CreateStory(_ context.Context, s *story.Story) error {
	s.ApplyDefaults()
	s.ID = m.storySeq.Add(1)
	s.CreatedAt = time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.stories[s.ID] = &cp
	return nil
}

// ListStories 按 ID 倒序列出所有故事
func (m *MemoryStore) ListStories(_ context.Context) ([]*story.Story, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*story.Story, 0, len(m.stories))
	for _, s := range m.stories {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// GetStory 查询故事
func (m *MemoryStore) GetStory(_ context.Context, id int64) (*story.Story, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.stories[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

// CreateChapter 创建章节并计算路径
func (m *MemoryStore) CreateChapter(_ context.Context, c *story.Chapter) error {
	if c.IsRoot == (c.ParentID != nil) {
		return ErrInvalidParent
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.stories[c.StoryID]; !ok {
		return model.ErrNotFound
	}

	var parent *story.Chapter
	if c.ParentID != nil {
		p, ok := m.chapters[*c.ParentID]
		if !ok || p.StoryID != c.StoryID {
			return model.ErrNotFound
		}
		parent = p
	} else {
		for _, existing := range m.chapters {
			if existing.StoryID == c.StoryID && existing.IsRoot {
				return ErrRootExists
			}
		}
	}

	c.ID = m.chapterSeq.Add(1)
	c.Path = BuildPath(parent, c.ID)
	c.CreatedAt = time.Now()

	m.chapters[c.ID] = cloneChapter(c)
	return nil
}

// GetChapter 查询章节
func (m *MemoryStore) GetChapter(_ context.Context, id int64) (*story.Chapter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.chapters[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return cloneChapter(c), nil
}

// GetChapterPath 返回从根到该章节的完整路径
func (m *MemoryStore) GetChapterPath(_ context.Context, chapterID int64) ([]*story.Chapter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	start, ok := m.chapters[chapterID]
	if !ok {
		return []*story.Chapter{}, nil
	}
	path := walkPath(start, func(id int64) (*story.Chapter, bool) {
		c, ok := m.chapters[id]
		return c, ok
	})
	for i, c := range path {
		path[i] = cloneChapter(c)
	}
	return path, nil
}

// GetRootChapter 查询故事的根章节
func (m *MemoryStore) GetRootChapter(_ context.Context, storyID int64) (*story.Chapter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.chapters {
		if c.StoryID == storyID && c.IsRoot {
			return cloneChapter(c), nil
		}
	}
	return nil, model.ErrNotFound
}

// GetAllChapters 按路径顺序列出故事的所有章节
func (m *MemoryStore) GetAllChapters(_ context.Context, storyID int64) ([]*story.Chapter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*story.Chapter, 0)
	for _, c := range m.chapters {
		if c.StoryID == storyID {
			out = append(out, cloneChapter(c))
		}
	}
	SortChaptersByPath(out)
	return out, nil
}

// GetNextChapterByOption 查找父章节下由该选项生成的子章节
func (m *MemoryStore) GetNextChapterByOption(_ context.Context, parentChapterID, optionID int64) (*story.Chapter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	opt, ok := m.options[optionID]
	if !ok || opt.ChapterID != parentChapterID {
		return nil, model.ErrNotFound
	}

	var found *story.Chapter
	for _, c := range m.chapters {
		if c.ParentID == nil || *c.ParentID != parentChapterID || c.Prompt != opt.Prompt {
			continue
		}
		if found == nil || c.ID < found.ID {
			found = c
		}
	}
	if found == nil {
		return nil, model.ErrNotFound
	}
	return cloneChapter(found), nil
}

// CreateCharacter 创建角色
func (m *MemoryStore) CreateCharacter(_ context.Context, c *story.Character) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.stories[c.StoryID]; !ok {
		return model.ErrNotFound
	}
	c.ID = m.characterSeq.Add(1)
	c.CreatedAt = time.Now()
	cp := *c
	m.characters[c.ID] = &cp
	return nil
}

// GetCharacter 查询角色
func (m *MemoryStore) GetCharacter(_ context.Context, id int64) (*story.Character, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.characters[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

// ListCharacters 按创建顺序列出故事的角色
func (m *MemoryStore) ListCharacters(_ context.Context, storyID int64) ([]*story.Character, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*story.Character, 0)
	for _, c := range m.characters {
		if c.StoryID == storyID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CreateContinuationOption 创建续写选项
func (m *MemoryStore) CreateContinuationOption(_ context.Context, o *story.ContinuationOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.chapters[o.ChapterID]; !ok {
		return model.ErrNotFound
	}
	o.ID = m.optionSeq.Add(1)
	cp := *o
	m.options[o.ID] = &cp
	return nil
}

// GetContinuationOption 查询续写选项
func (m *MemoryStore) GetContinuationOption(_ context.Context, id int64) (*story.ContinuationOption, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.options[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

// ListContinuationOptions 按创建顺序列出章节的续写选项
func (m *MemoryStore) ListContinuationOptions(_ context.Context, chapterID int64) ([]*story.ContinuationOption, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*story.ContinuationOption, 0)
	for _, o := range m.options {
		if o.ChapterID == chapterID {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Close 内存存储无需释放资源
func (m *MemoryStore) Close(context.Context) error { return nil }

func cloneChapter(c *story.Chapter) *story.Chapter {
	cp := *c
	if c.ParentID != nil {
		pid := *c.ParentID
		cp.ParentID = &pid
	}
	return &cp
}
