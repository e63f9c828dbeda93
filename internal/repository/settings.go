package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cafe/internal/models"
)

// SettingsRepository reads and writes the singleton settings/general document.
type SettingsRepository struct {
	coll *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{coll: db.Collection(SettingsColl)}
}

// Load returns nil, nil when the document has never been written.
func (r *SettingsRepository) Load(ctx context.Context) (*models.Settings, error) {
	var s models.Settings
	err := r.coll.FindOne(ctx, bson.M{"_id": models.SettingsID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return &s, nil
}

// AddRecipient adds chatID to the recipient list, creating the document
// when needed. Adding an id twice is a no-op.
func (r *SettingsRepository) AddRecipient(ctx context.Context, chatID string) error {
	_, err := r.coll.UpdateOne(
		ctx,
		bson.M{"_id": models.SettingsID},
		bson.M{"$addToSet": bson.M{"telegramChatIds": chatID}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("add recipient: %w", err)
	}
	return nil
}

// Update merges set into the document, creating it when needed, and returns
// the stored result.
func (r *SettingsRepository) Update(ctx context.Context, set bson.M) (*models.Settings, error) {
	var s models.Settings
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": models.SettingsID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&s)
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	return &s, nil
}
