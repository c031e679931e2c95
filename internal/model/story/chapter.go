package story

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InitialChapterPrompt 根章节的 prompt 字段固定值
const InitialChapterPrompt = "initial chapter"

// Chapter 章节实体（故事树中的一个节点）
// 说明：path 为根到自身的 ID 链（如 "5-12-13"），创建时计算，之后不可变
type Chapter struct {
	ID int64 `bson:"id" json:"id" db:"id"`

	StoryID  int64  `bson:"story_id" json:"storyId" db:"story_id"`
	ParentID *int64 `bson:"parent_id" json:"parentId" db:"parent_id"` // 根章节为 nil

	Title   string `bson:"title" json:"title" db:"title"`
	Content string `bson:"content" json:"content" db:"content"`
	Summary string `bson:"summary,omitempty" json:"summary,omitempty" db:"summary"` // 截至本章的完整剧情摘要
	Prompt  string `bson:"prompt,omitempty" json:"prompt,omitempty" db:"prompt"`    // 生成本章的指令

	IsRoot   bool   `bson:"is_root" json:"isRoot" db:"is_root"`
	IsEnding bool   `bson:"is_ending" json:"isEnding" db:"is_ending"`
	Path     string `bson:"path" json:"path" db:"path"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt" db:"created_at"`
}

// Collection 返回集合名称
func (c *Chapter) Collection() string { return "chapters" }

// EnsureIndexes 创建和维护索引
func (c *Chapter) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(c.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("uniq_id").SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "story_id", Value: 1}},
			// 每个故事只能有一个根章节
			Options: options.Index().
				SetName("uniq_story_root").
				SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: "is_root", Value: true}}),
		},
		{
			Keys:    bson.D{{Key: "parent_id", Value: 1}, {Key: "prompt", Value: 1}},
			Options: options.Index().SetName("idx_parent_prompt"),
		},
		{
			Keys:    bson.D{{Key: "story_id", Value: 1}, {Key: "path", Value: 1}},
			Options: options.Index().SetName("idx_story_path"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
