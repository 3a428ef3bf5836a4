package sessionstore

import (
	"context"
	"smartrx-service/internal/app/contracts"
	"smartrx-service/internal/app/models"
	"smartrx-service/internal/pkg/constvars"
	"smartrx-service/internal/pkg/exceptions"
	"smartrx-service/internal/pkg/utils"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoBrowserSession struct {
	Collection *mongo.Collection
	Expiry     time.Duration
}

func NewMongoBrowserSession(db *mongo.Client, dbName string, expiry time.Duration) *MongoBrowserSession {
	return &MongoBrowserSession{
		Collection: db.Database(dbName).Collection(constvars.SessionMongoCollection),
		Expiry:     expiry,
	}
}

// EnsureIndexes creates the TTL index that lets mongo drop expired sessions.
func (s *MongoBrowserSession) EnsureIndexes(ctx context.Context) error {
	_, err := s.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return exceptions.ErrMongoDBUpsertDocument(err)
	}
	return nil
}

func (s *MongoBrowserSession) Get(ctx context.Context, key string) (string, bool, error) {
	sessionID, ok := utils.GetSessionIDFromContext(ctx)
	if !ok {
		return "", false, exceptions.ErrSessionMissing(nil)
	}

	var session models.BrowserSession
	err := s.Collection.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", false, nil
		}
		return "", false, exceptions.ErrMongoDBFindDocument(err)
	}

	if !session.ExpiresAt.IsZero() && time.Now().After(session.ExpiresAt) {
		return "", false, nil
	}

	value, found := session.Values[key]
	return value, found, nil
}

func (s *MongoBrowserSession) Set(ctx context.Context, key, value string) error {
	sessionID, ok := utils.GetSessionIDFromContext(ctx)
	if !ok {
		return exceptions.ErrSessionMissing(nil)
	}

	now := time.Now()
	filter := bson.M{"_id": sessionID}
	update := bson.M{"$set": bson.M{
		"values." + key: value,
		"updated_at":    now,
		"expires_at":    now.Add(s.Expiry),
	}}

	_, err := s.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return exceptions.ErrMongoDBUpsertDocument(err)
	}
	return nil
}

func (s *MongoBrowserSession) Clear(ctx context.Context) error {
	sessionID, ok := utils.GetSessionIDFromContext(ctx)
	if !ok {
		return exceptions.ErrSessionMissing(nil)
	}

	_, err := s.Collection.DeleteOne(ctx, bson.M{"_id": sessionID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}

var _ contracts.BrowserSession = (*MongoBrowserSession)(nil)
