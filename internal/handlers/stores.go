package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cafe/internal/models"
	"cafe/internal/notify"
)

// The interfaces below are satisfied by repository.Documents and the other
// repository types; handlers only see the methods they call.

type finder[T any] interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]T, error)
}

type creator[T any] interface {
	Create(ctx context.Context, doc *T) (primitive.ObjectID, error)
}

type getter[T any] interface {
	Get(ctx context.Context, id primitive.ObjectID) (*T, error)
}

type updater[T any] interface {
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*T, error)
}

type deleter interface {
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// documentStore is the full CRUD surface used by the admin handlers.
type documentStore[T any] interface {
	finder[T]
	creator[T]
	getter[T]
	updater[T]
	deleter
}

type SettingsLoader interface {
	Load(ctx context.Context) (*models.Settings, error)
}

type SettingsStore interface {
	SettingsLoader
	Update(ctx context.Context, set bson.M) (*models.Settings, error)
}

type RecipientRegistrar interface {
	AddRecipient(ctx context.Context, chatID string) error
}

type Notifier interface {
	Dispatch(ctx context.Context, rec notify.Record, id string) []notify.Result
}

// AuditLog records admin visible events in admin_logs.
type AuditLog interface {
	Record(ctx context.Context, adminEmail, action, details string) error
}
