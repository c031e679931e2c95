package story

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"taleweaver/internal/model"
	"taleweaver/internal/model/story"
	"taleweaver/internal/pkg/mongodb"
)

const countersCollection = "counters"

// MongoStore MongoDB 存储实现
// 说明：自增ID由 counters 集合分配，每个集合一个计数文档
type MongoStore struct {
	client     *mongodb.Client
	counters   *mongo.Collection
	stories    *mongo.Collection
	chapters   *mongo.Collection
	characters *mongo.Collection
	options    *mongo.Collection
}

// NewMongoStore 创建 MongoDB 存储
func NewMongoStore(client *mongodb.Client) *MongoStore {
	db := client.Database()
	var (
		s  story.Story
		c  story.Chapter
		ch story.Character
		o  story.ContinuationOption
	)
	return &MongoStore{
		client:     client,
		counters:   db.Collection(countersCollection),
		stories:    db.Collection(s.Collection()),
		chapters:   db.Collection(c.Collection()),
		characters: db.Collection(ch.Collection()),
		options:    db.Collection(o.Collection()),
	}
}

var _ Store = (*MongoStore)(nil)

// nextID 从 counters 集合原子地分配下一个ID
func (r *MongoStore) nextID(ctx context.Context, name string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("reserve %s id: %w", name, err)
	}
	return counter.Seq, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) (*T, error) {
	var out T
	if err := coll.FindOne(ctx, filter).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts ...*options.FindOptions) ([]*T, error) {
	cur, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateStory 创建故事
func (r *MongoStore) CreateStory(ctx context.Context, s *story.Story) error {
	id, err := r.nextID(ctx, s.Collection())
	if err != nil {
		return err
	}
	s.ApplyDefaults()
	s.ID = id
	s.CreatedAt = time.Now()
	_, err = r.stories.InsertOne(ctx, s)
	return err
}

// ListStories 按 ID 倒序列出所有故事
func (r *MongoStore) ListStories(ctx context.Context) ([]*story.Story, error) {
	return findAll[story.Story](ctx, r.stories, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: -1}}))
}

// GetStory 查询故事
func (r *MongoStore) GetStory(ctx context.Context, id int64) (*story.Story, error) {
	return findOne[story.Story](ctx, r.stories, bson.M{"id": id})
}

// CreateChapter 创建章节并计算路径
func (r *MongoStore) CreateChapter(ctx context.Context, c *story.Chapter) error {
	if c.IsRoot == (c.ParentID != nil) {
		return ErrInvalidParent
	}
	if _, err := r.GetStory(ctx, c.StoryID); err != nil {
		return err
	}

	var parent *story.Chapter
	if c.ParentID != nil {
		p, err := r.GetChapter(ctx, *c.ParentID)
		if err != nil {
			return err
		}
		if p.StoryID != c.StoryID {
			return model.ErrNotFound
		}
		parent = p
	}

	id, err := r.nextID(ctx, c.Collection())
	if err != nil {
		return err
	}
	c.ID = id
	c.Path = BuildPath(parent, id)
	c.CreatedAt = time.Now()

	if _, err := r.chapters.InsertOne(ctx, c); err != nil {
		if c.IsRoot && mongo.IsDuplicateKeyError(err) {
			return ErrRootExists
		}
		return err
	}
	return nil
}

// GetChapter 查询章节
func (r *MongoStore) GetChapter(ctx context.Context, id int64) (*story.Chapter, error) {
	return findOne[story.Chapter](ctx, r.chapters, bson.M{"id": id})
}

// GetChapterPath 返回从根到该章节的完整路径
// 说明：先按 path 字段批量取出祖先，再沿 parent_id 回溯校验
func (r *MongoStore) GetChapterPath(ctx context.Context, chapterID int64) ([]*story.Chapter, error) {
	start, err := r.GetChapter(ctx, chapterID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return []*story.Chapter{}, nil
		}
		return nil, err
	}

	ids := make([]int64, 0)
	for _, seg := range strings.Split(start.Path, pathSeparator) {
		if id, err := strconv.ParseInt(seg, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	ancestors, err := findAll[story.Chapter](ctx, r.chapters, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*story.Chapter, len(ancestors))
	for _, c := range ancestors {
		byID[c.ID] = c
	}

	return walkPath(start, func(id int64) (*story.Chapter, bool) {
		if c, ok := byID[id]; ok {
			return c, true
		}
		// path 与 parent_id 不一致时回退到逐条查询
		c, err := r.GetChapter(ctx, id)
		return c, err == nil
	}), nil
}

// GetRootChapter 查询故事的根章节
func (r *MongoStore) GetRootChapter(ctx context.Context, storyID int64) (*story.Chapter, error) {
	return findOne[story.Chapter](ctx, r.chapters, bson.M{"story_id": storyID, "is_root": true})
}

// GetAllChapters 按路径数字顺序列出故事的所有章节
func (r *MongoStore) GetAllChapters(ctx context.Context, storyID int64) ([]*story.Chapter, error) {
	chapters, err := findAll[story.Chapter](ctx, r.chapters, bson.M{"story_id": storyID})
	if err != nil {
		return nil, err
	}
	SortChaptersByPath(chapters)
	return chapters, nil
}

// GetNextChapterByOption 查找父章节下由该选项生成的子章节
func (r *MongoStore) GetNextChapterByOption(ctx context.Context, parentChapterID, optionID int64) (*story.Chapter, error) {
	opt, err := findOne[story.ContinuationOption](ctx, r.options, bson.M{"id": optionID, "chapter_id": parentChapterID})
	if err != nil {
		return nil, err
	}

	var out story.Chapter
	err = r.chapters.FindOne(ctx,
		bson.M{"parent_id": parentChapterID, "prompt": opt.Prompt},
		options.FindOne().SetSort(bson.D{{Key: "id", Value: 1}}),
	).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// CreateCharacter 创建角色
func (r *MongoStore) CreateCharacter(ctx context.Context, c *story.Character) error {
	if _, err := r.GetStory(ctx, c.StoryID); err != nil {
		return err
	}
	id, err := r.nextID(ctx, c.Collection())
	if err != nil {
		return err
	}
	c.ID = id
	c.CreatedAt = time.Now()
	_, err = r.characters.InsertOne(ctx, c)
	return err
}

// GetCharacter 查询角色
func (r *MongoStore) GetCharacter(ctx context.Context, id int64) (*story.Character, error) {
	return findOne[story.Character](ctx, r.characters, bson.M{"id": id})
}

// ListCharacters 按创建顺序列出故事的角色
func (r *MongoStore) ListCharacters(ctx context.Context, storyID int64) ([]*story.Character, error) {
	return findAll[story.Character](ctx, r.characters, bson.M{"story_id": storyID}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
}

// CreateContinuationOption 创建续写选项
func (r *MongoStore) CreateContinuationOption(ctx context.Context, o *story.ContinuationOption) error {
	if _, err := r.GetChapter(ctx, o.ChapterID); err != nil {
		return err
	}
	id, err := r.nextID(ctx, o.Collection())
	if err != nil {
		return err
	}
	o.ID = id
	_, err = r.options.InsertOne(ctx, o)
	return err
}

// GetContinuationOption 查询续写选项
func (r *MongoStore) GetContinuationOption(ctx context.Context, id int64) (*story.ContinuationOption, error) {
	return findOne[story.ContinuationOption](ctx, r.options, bson.M{"id": id})
}

// ListContinuationOptions 按创建顺序列出章节的续写选项
func (r *MongoStore) ListContinuationOptions(ctx context.Context, chapterID int64) ([]*story.ContinuationOption, error) {
	return findAll[story.ContinuationOption](ctx, r.options, bson.M{"chapter_id": chapterID}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
}

// Close 断开 MongoDB 连接
func (r *MongoStore) Close(ctx context.Context) error {
	return r.client.Close(ctx)
}
