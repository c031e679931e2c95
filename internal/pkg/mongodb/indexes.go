package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"taleweaver/internal/model/story"
)

// EnsureIndexes 创建所有故事模型的索引，在应用启动时调用
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	models := []Model{
		&story.Story{},
		&story.Chapter{},
		&story.Character{},
		&story.ContinuationOption{},
	}
	return EnsureAllIndexes(ctx, db, models...)
}
