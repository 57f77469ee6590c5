package persistence

import (
	"context"
	"time"

	"social-hub/infrastructure/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// RawFetchRepository archives raw upstream payloads into MongoDB so a failed
// normalization can be replayed. Archiving is best-effort: a nil client or a
// write failure never affects the sync itself.
type RawFetchRepository struct {
	mongoDb *mongo.Client
}

func NewRawFetchRepository(mongoDb *mongo.Client) *RawFetchRepository {
	return &RawFetchRepository{mongoDb: mongoDb}
}

// Archive stores one fetch result. kind is the fetch path that produced it
// (top_level, replies, own_replies).
func (r *RawFetchRepository) Archive(ctx context.Context, userID int64, platform, kind string, payload interface{}) {
	if r == nil || r.mongoDb == nil {
		return
	}
	doc := bson.M{
		"user_id":    userID,
		"platform":   platform,
		"kind":       kind,
		"payload":    payload,
		"fetched_at": time.Now().UTC(),
	}
	collection := r.mongoDb.Database("social_hub").Collection("raw_fetches")
	if _, err := collection.InsertOne(ctx, doc); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed archiving raw fetch payload")
	}
}
