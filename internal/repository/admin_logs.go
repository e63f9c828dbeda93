package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"cafe/internal/models"
)

// AdminLogRepository is the audit trail written by admin actions and the
// notification callable.
type AdminLogRepository struct {
	docs *Documents[models.AdminLog]
	now  func() time.Time
}

func NewAdminLogRepository(db *mongo.Database) *AdminLogRepository {
	return &AdminLogRepository{docs: NewDocuments[models.AdminLog](db, AdminLogs), now: time.Now}
}

func (r *AdminLogRepository) Record(ctx context.Context, adminEmail, action, details string) error {
	entry := models.AdminLog{
		AdminEmail: adminEmail,
		Action:     action,
		Details:    details,
		Timestamp:  r.now().UTC(),
	}
	_, err := r.docs.Create(ctx, &entry)
	return err
}

// DeleteOlderThan removes entries stamped before cutoff.
func (r *AdminLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.docs.DeleteMany(ctx, bson.M{"timestamp": bson.M{"$lt": cutoff}})
}
