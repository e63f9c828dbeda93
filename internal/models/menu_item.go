package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuItem struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	NameEn          string             `bson:"nameEn,omitempty" json:"nameEn,omitempty"`
	Description     string             `bson:"description" json:"description"`
	DescriptionEn   string             `bson:"descriptionEn,omitempty" json:"descriptionEn,omitempty"`
	Price           float64            `bson:"price" json:"price"`
	DiscountPercent float64            `bson:"discountPercent,omitempty" json:"discountPercent,omitempty"`
	CategoryID      primitive.ObjectID `bson:"categoryId" json:"categoryId"`
	ImageURL        string             `bson:"imageUrl" json:"imageUrl"`
	Available       bool               `bson:"available" json:"available"`
	IsNew           bool               `bson:"isNew,omitempty" json:"isNew,omitempty"`
	IsOnOffer       bool               `bson:"isOnOffer,omitempty" json:"isOnOffer,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EffectivePrice applies DiscountPercent when it is a real discount
// (strictly between 0 and 100), otherwise the list price stands.
func (m MenuItem) EffectivePrice() float64 {
	if m.DiscountPercent <= 0 || m.DiscountPercent >= 100 {
		return m.Price
	}
	return RoundMoney(m.Price * (1 - m.DiscountPercent/100))
}
