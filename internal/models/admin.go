package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Admin struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// AdminLog is an audit entry; entries older than the retention window are purged daily.
type AdminLog struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AdminEmail string             `bson:"adminEmail,omitempty" json:"adminEmail,omitempty"`
	Action     string             `bson:"action" json:"action"`
	Details    string             `bson:"details,omitempty" json:"details,omitempty"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
}
