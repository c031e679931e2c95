package story

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"taleweaver/internal/model"
	"taleweaver/internal/model/story"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

const (
	storyColumns     = `id, title, genre, narrative_style, setting, target_audience, main_character, chapter_length, temperature, created_at`
	chapterColumns   = `id, story_id, parent_id, title, content, summary, prompt, is_root, is_ending, path, created_at`
	characterColumns = `id, story_id, name, age, personality, background, created_at`
	optionColumns    = `id, chapter_id, title, preview, prompt`

	createStoryQuery = `
		INSERT INTO stories (title, genre, narrative_style, setting, target_audience, main_character, chapter_length, temperature)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	listStoriesQuery = `SELECT ` + storyColumns + ` FROM stories ORDER BY id DESC`
	getStoryQuery    = `SELECT ` + storyColumns + ` FROM stories WHERE id = $1`

	getParentForUpdateQuery = `SELECT story_id, path FROM chapters WHERE id = $1 FOR SHARE`

	createChapterQuery = `
		INSERT INTO chapters (story_id, parent_id, title, content, summary, prompt, is_root, is_ending)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	setChapterPathQuery = `UPDATE chapters SET path = $1 WHERE id = $2`

	getChapterQuery     = `SELECT ` + chapterColumns + ` FROM chapters WHERE id = $1`
	getRootChapterQuery = `SELECT ` + chapterColumns + ` FROM chapters WHERE story_id = $1 AND is_root LIMIT 1`

	// 沿 parent_id 回溯，visited 数组防止环导致的无限递归
	getChapterPathQuery = `
		WITH RECURSIVE chain AS (
			SELECT c.*, 0 AS depth, ARRAY[c.id] AS visited
			FROM chapters c WHERE c.id = $1
			UNION ALL
			SELECT p.*, chain.depth + 1, chain.visited || p.id
			FROM chapters p
			JOIN chain ON p.id = chain.parent_id
			WHERE NOT p.id = ANY(chain.visited)
		)
		SELECT ` + chapterColumns + ` FROM chain ORDER BY depth DESC`

	getAllChaptersQuery = `
		SELECT ` + chapterColumns + ` FROM chapters
		WHERE story_id = $1
		ORDER BY string_to_array(path, '-')::bigint[], id`

	getNextChapterByOptionQuery = `
		SELECT c.id, c.story_id, c.parent_id, c.title, c.content, c.summary, c.prompt, c.is_root, c.is_ending, c.path, c.created_at
		FROM continuation_options o
		JOIN chapters c ON c.parent_id = o.chapter_id AND c.prompt = o.prompt
		WHERE o.id = $1 AND o.chapter_id = $2
		ORDER BY c.id
		LIMIT 1`

	createCharacterQuery = `
		INSERT INTO characters (story_id, name, age, personality, background)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	getCharacterQuery   = `SELECT ` + characterColumns + ` FROM characters WHERE id = $1`
	listCharactersQuery = `SELECT ` + characterColumns + ` FROM characters WHERE story_id = $1 ORDER BY id`

	createOptionQuery = `
		INSERT INTO continuation_options (chapter_id, title, preview, prompt)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	getOptionQuery   = `SELECT ` + optionColumns + ` FROM continuation_options WHERE id = $1`
	listOptionsQuery = `SELECT ` + optionColumns + ` FROM continuation_options WHERE chapter_id = $1 ORDER BY id`
)

// PostgresStore PostgreSQL 存储实现
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore 创建 PostgreSQL 存储
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

var _ Store = (*PostgresStore)(nil)

// mapPgError 将驱动错误映射为领域错误
func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return model.ErrNotFound
	}
	return err
}

// CreateStory 创建故事
func (r *PostgresStore) CreateStory(ctx context.Context, s *story.Story) error {
	s.ApplyDefaults()
	err := r.pool.QueryRow(ctx, createStoryQuery,
		s.Title, s.Genre, s.NarrativeStyle, s.Setting, s.TargetAudience, s.MainCharacter,
		string(s.ChapterLength), s.Temperature,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert story: %w", err)
	}
	return nil
}

// ListStories 按 ID 倒序列出所有故事
func (r *PostgresStore) ListStories(ctx context.Context) ([]*story.Story, error) {
	out := make([]*story.Story, 0)
	if err := pgxscan.Select(ctx, r.pool, &out, listStoriesQuery); err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	return out, nil
}

// GetStory 查询故事
func (r *PostgresStore) GetStory(ctx context.Context, id int64) (*story.Story, error) {
	var s story.Story
	if err := pgxscan.Get(ctx, r.pool, &s, getStoryQuery, id); err != nil {
		return nil, mapPgError(err)
	}
	return &s, nil
}

// CreateChapter 在一个事务内插入章节并回填路径
func (r *PostgresStore) CreateChapter(ctx context.Context, c *story.Chapter) error {
	if c.IsRoot == (c.ParentID != nil) {
		return ErrInvalidParent
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var parent *story.Chapter
	if c.ParentID != nil {
		p := story.Chapter{ID: *c.ParentID}
		if err := tx.QueryRow(ctx, getParentForUpdateQuery, *c.ParentID).Scan(&p.StoryID, &p.Path); err != nil {
			return mapPgError(err)
		}
		if p.StoryID != c.StoryID {
			return model.ErrNotFound
		}
		parent = &p
	}

	err = tx.QueryRow(ctx, createChapterQuery,
		c.StoryID, c.ParentID, c.Title, c.Content, c.Summary, c.Prompt, c.IsRoot, c.IsEnding,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrRootExists
		}
		return mapPgError(err)
	}

	c.Path = BuildPath(parent, c.ID)
	if _, err := tx.Exec(ctx, setChapterPathQuery, c.Path, c.ID); err != nil {
		return fmt.Errorf("set chapter path: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit chapter: %w", err)
	}
	return nil
}

// GetChapter 查询章节
func (r *PostgresStore) GetChapter(ctx context.Context, id int64) (*story.Chapter, error) {
	var c story.Chapter
	if err := pgxscan.Get(ctx, r.pool, &c, getChapterQuery, id); err != nil {
		return nil, mapPgError(err)
	}
	return &c, nil
}

// GetChapterPath 返回从根到该章节的完整路径
func (r *PostgresStore) GetChapterPath(ctx context.Context, chapterID int64) ([]*story.Chapter, error) {
	out := make([]*story.Chapter, 0)
	if err := pgxscan.Select(ctx, r.pool, &out, getChapterPathQuery, chapterID); err != nil {
		return nil, fmt.Errorf("chapter path: %w", err)
	}
	return out, nil
}

// GetRootChapter 查询故事的根章节
func (r *PostgresStore) GetRootChapter(ctx context.Context, storyID int64) (*story.Chapter, error) {
	var c story.Chapter
	if err := pgxscan.Get(ctx, r.pool, &c, getRootChapterQuery, storyID); err != nil {
		return nil, mapPgError(err)
	}
	return &c, nil
}

// GetAllChapters 按路径数字顺序列出故事的所有章节
func (r *PostgresStore) GetAllChapters(ctx context.Context, storyID int64) ([]*story.Chapter, error) {
	out := make([]*story.Chapter, 0)
	if err := pgxscan.Select(ctx, r.pool, &out, getAllChaptersQuery, storyID); err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	return out, nil
}

// GetNextChapterByOption 查找父章节下由该选项生成的子章节
func (r *PostgresStore) GetNextChapterByOption(ctx context.Context, parentChapterID, optionID int64) (*story.Chapter, error) {
	var c story.Chapter
	if err := pgxscan.Get(ctx, r.pool, &c, getNextChapterByOptionQuery, optionID, parentChapterID); err != nil {
		return nil, mapPgError(err)
	}
	return &c, nil
}

// CreateCharacter 创建角色
func (r *PostgresStore) CreateCharacter(ctx context.Context, c *story.Character) error {
	err := r.pool.QueryRow(ctx, createCharacterQuery,
		c.StoryID, c.Name, c.Age, c.Personality, c.Background,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

// GetCharacter 查询角色
func (r *PostgresStore) GetCharacter(ctx context.Context, id int64) (*story.Character, error) {
	var c story.Character
	if err := pgxscan.Get(ctx, r.pool, &c, getCharacterQuery, id); err != nil {
		return nil, mapPgError(err)
	}
	return &c, nil
}

// ListCharacters 按创建顺序列出故事的角色
func (r *PostgresStore) ListCharacters(ctx context.Context, storyID int64) ([]*story.Character, error) {
	out := make([]*story.Character, 0)
	if err := pgxscan.Select(ctx, r.pool, &out, listCharactersQuery, storyID); err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	return out, nil
}

// CreateContinuationOption 创建续写选项
func (r *PostgresStore) CreateContinuationOption(ctx context.Context, o *story.ContinuationOption) error {
	err := r.pool.QueryRow(ctx, createOptionQuery, o.ChapterID, o.Title, o.Preview, o.Prompt).Scan(&o.ID)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

// GetContinuationOption 查询续写选项
func (r *PostgresStore) GetContinuationOption(ctx context.Context, id int64) (*story.ContinuationOption, error) {
	var o story.ContinuationOption
	if err := pgxscan.Get(ctx, r.pool, &o, getOptionQuery, id); err != nil {
		return nil, mapPgError(err)
	}
	return &o, nil
}

// ListContinuationOptions 按创建顺序列出章节的续写选项
func (r *PostgresStore) ListContinuationOptions(ctx context.Context, chapterID int64) ([]*story.ContinuationOption, error) {
	out := make([]*story.ContinuationOption, 0)
	if err := pgxscan.Select(ctx, r.pool, &out, listOptionsQuery, chapterID); err != nil {
		return nil, fmt.Errorf("list continuation options: %w", err)
	}
	return out, nil
}

// Close 关闭连接池
func (r *PostgresStore) Close(context.Context) error {
	r.pool.Close()
	return nil
}
