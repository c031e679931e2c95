package story

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Story 故事实体
// 说明：创建后属性不可变；章节树与角色通过 story_id 关联
type Story struct {
	ID int64 `bson:"id" json:"id" db:"id"`

	Title          string `bson:"title,omitempty" json:"title,omitempty" db:"title"`
	Genre          string `bson:"genre,omitempty" json:"genre,omitempty" db:"genre"`
	NarrativeStyle string `bson:"narrative_style,omitempty" json:"narrativeStyle,omitempty" db:"narrative_style"`
	Setting        string `bson:"setting,omitempty" json:"setting,omitempty" db:"setting"`
	TargetAudience string `bson:"target_audience,omitempty" json:"targetAudience,omitempty" db:"target_audience"`
	MainCharacter  string `bson:"main_character,omitempty" json:"mainCharacter,omitempty" db:"main_character"`

	ChapterLength ChapterLength `bson:"chapter_length" json:"chapterLength" db:"chapter_length"` // 100-200 / 200-300 / 300-400
	Temperature   int           `bson:"temperature" json:"temperature" db:"temperature"`          // 1-9

	CreatedAt time.Time `bson:"created_at" json:"createdAt" db:"created_at"`
}

// ApplyDefaults 填充 chapterLength / temperature 的默认值
func (s *Story) ApplyDefaults() {
	if s.ChapterLength == "" {
		s.ChapterLength = DefaultChapterLength
	}
	if s.Temperature == 0 {
		s.Temperature = DefaultTemperature
	}
}

// Collection 返回集合名称
func (s *Story) Collection() string { return "stories" }

// EnsureIndexes 创建和维护索引
func (s *Story) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(s.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("uniq_id").SetUnique(true),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
