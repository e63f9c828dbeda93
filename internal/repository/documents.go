package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no document matches an id or filter.
var ErrNotFound = errors.New("document not found")

// Collection names.
const (
	Orders          = "orders"
	Items           = "items"
	Categories      = "categories"
	Offers          = "offers"
	Comments        = "comments"
	ContactMessages = "messages"
	Jobs            = "jobs"
	JobApplications = "jobApplications"
	SettingsColl    = "settings"
	Admins          = "admins"
	AdminLogs       = "admin_logs"
)

// Documents is a typed view over one collection whose documents use
// ObjectID primary keys.
type Documents[T any] struct {
	coll *mongo.Collection
}

func NewDocuments[T any](db *mongo.Database, name string) *Documents[T] {
	return &Documents[T]{coll: db.Collection(name)}
}

// Create inserts doc and returns the generated id.
func (d *Documents[T]) Create(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	res, err := d.coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert into %s: %w", d.coll.Name(), err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert into %s: unexpected id type %T", d.coll.Name(), res.InsertedID)
	}
	return id, nil
}

func (d *Documents[T]) Get(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return d.FindOne(ctx, bson.M{"_id": id})
}

func (d *Documents[T]) FindOne(ctx context.Context, filter interface{}) (*T, error) {
	var doc T
	err := d.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", d.coll.Name(), err)
	}
	return &doc, nil
}

// Find never returns a nil slice so handlers always render a JSON array.
func (d *Documents[T]) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := d.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", d.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	docs := make([]T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", d.coll.Name(), err)
	}
	return docs, nil
}

func (d *Documents[T]) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	return d.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// Update applies set and returns the document as it is after the update.
func (d *Documents[T]) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*T, error) {
	var doc T
	err := d.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", d.coll.Name(), err)
	}
	return &doc, nil
}

func (d *Documents[T]) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := d.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete from %s: %w", d.coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Documents[T]) DeleteMany(ctx context.Context, filter interface{}) (int64, error) {
	res, err := d.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", d.coll.Name(), err)
	}
	return res.DeletedCount, nil
}

func (d *Documents[T]) Count(ctx context.Context, filter interface{}) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	n, err := d.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", d.coll.Name(), err)
	}
	return n, nil
}
