package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a customer review. It stays hidden until an admin approves it
// or replies to it.
type Comment struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ItemID     *primitive.ObjectID `bson:"itemId,omitempty" json:"itemId,omitempty"`
	UserName   string              `bson:"userName" json:"userName"`
	UserEmail  string              `bson:"userEmail,omitempty" json:"userEmail,omitempty"`
	Rating     int                 `bson:"rating" json:"rating"`
	Text       string              `bson:"text" json:"text"`
	Approved   bool                `bson:"approved" json:"approved"`
	AdminReply string              `bson:"adminReply,omitempty" json:"adminReply,omitempty"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time           `bson:"updatedAt" json:"updatedAt"`
}
