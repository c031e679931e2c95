package story

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ContinuationOption 续写选项
// 说明：选项集合在章节创建时一次性写入，之后不再修改；结局章节没有选项
type ContinuationOption struct {
	ID        int64  `bson:"id" json:"id" db:"id"`
	ChapterID int64  `bson:"chapter_id" json:"chapterId" db:"chapter_id"`
	Title     string `bson:"title" json:"title" db:"title"`
	Preview   string `bson:"preview" json:"preview" db:"preview"` // 简短预告
	Prompt    string `bson:"prompt" json:"prompt" db:"prompt"`    // 选中后驱动下一章生成的指令
}

// Collection 返回集合名称
func (o *ContinuationOption) Collection() string { return "continuation_options" }

// EnsureIndexes 创建和维护索引
func (o *ContinuationOption) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(o.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("uniq_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "chapter_id", Value: 1}, {Key: "id", Value: 1}},
			Options: options.Index().SetName("idx_chapter_id"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
