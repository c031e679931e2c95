package story

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Character 角色实体（故事级别）
type Character struct {
	ID      int64  `bson:"id" json:"id" db:"id"`
	StoryID int64  `bson:"story_id" json:"storyId" db:"story_id"`
	Name    string `bson:"name" json:"name" db:"name"`

	Age         string `bson:"age,omitempty" json:"age,omitempty" db:"age"` // 自由文本，不一定是数字
	Personality string `bson:"personality,omitempty" json:"personality,omitempty" db:"personality"`
	Background  string `bson:"background,omitempty" json:"background,omitempty" db:"background"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt" db:"created_at"`
}

// Collection 返回集合名称
func (c *Character) Collection() string { return "characters" }

// EnsureIndexes 创建和维护索引
func (c *Character) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(c.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("uniq_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "story_id", Value: 1}, {Key: "id", Value: 1}},
			Options: options.Index().SetName("idx_story_id"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
