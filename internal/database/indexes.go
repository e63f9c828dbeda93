package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"cafe/internal/repository"
)

type collectionIndexes struct {
	collection string
	models     []mongo.IndexModel
}

func indexPlan() []collectionIndexes {
	return []collectionIndexes{
		{repository.Orders, []mongo.IndexModel{{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("status_createdAt"),
		}}},
		{repository.Comments, []mongo.IndexModel{{
			Keys:    bson.D{{Key: "approved", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("approved_createdAt"),
		}}},
		{repository.Items, []mongo.IndexModel{{
			Keys:    bson.D{{Key: "categoryId", Value: 1}},
			Options: options.Index().SetName("categoryId_index"),
		}}},
		{repository.JobApplications, []mongo.IndexModel{{
			Keys:    bson.D{{Key: "jobId", Value: 1}},
			Options: options.Index().SetName("jobId_index"),
		}}},
		{repository.Admins, []mongo.IndexModel{{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_unique").SetUnique(true),
		}}},
		{repository.AdminLogs, []mongo.IndexModel{{
			Keys:    bson.D{{Key: "timestamp", Value: 1}},
			Options: options.Index().SetName("timestamp_index"),
		}}},
	}
}

// EnsureIndexes creates every index the queries rely on. A failure on one
// collection is logged and the rest are still attempted; the first error is
// returned.
func EnsureIndexes(db *mongo.Database, log *zap.Logger) error {
	var firstErr error
	for _, plan := range indexPlan() {
		if err := ensure(db, plan, log); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func ensure(db *mongo.Database, plan collectionIndexes, log *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	names, err := db.Collection(plan.collection).Indexes().CreateMany(ctx, plan.models)
	if err != nil {
		log.Warn("index creation failed", zap.String("collection", plan.collection), zap.Error(err))
		return err
	}
	log.Info("indexes ensured", zap.String("collection", plan.collection), zap.Strings("indexes", names))
	return nil
}
