package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Offer dates are calendar days in YYYY-MM-DD form.
type Offer struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description" json:"description"`
	ImageURL        string             `bson:"imageUrl" json:"imageUrl"`
	OriginalPrice   float64            `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	OfferPrice      float64            `bson:"offerPrice,omitempty" json:"offerPrice,omitempty"`
	DiscountPercent float64            `bson:"discountPercent,omitempty" json:"discountPercent,omitempty"`
	StartDate       string             `bson:"startDate" json:"startDate"`
	EndDate         string             `bson:"endDate" json:"endDate"`
	Active          bool               `bson:"active" json:"active"`
	Featured        bool               `bson:"featured,omitempty" json:"featured,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RunningOn reports whether the offer is active and day (YYYY-MM-DD) falls
// inside its inclusive date window. Empty bounds are open.
func (o Offer) RunningOn(day string) bool {
	if !o.Active {
		return false
	}
	if o.StartDate != "" && day < o.StartDate {
		return false
	}
	if o.EndDate != "" && day > o.EndDate {
		return false
	}
	return true
}
