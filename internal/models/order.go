package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine-in"
	OrderTypePickup   OrderType = "pickup"
	OrderTypeDelivery OrderType = "delivery"
)

// IsExternal reports whether the order leaves the café (pickup or delivery).
func (t OrderType) IsExternal() bool {
	return t == OrderTypePickup || t == OrderTypeDelivery
}

func (t OrderType) Valid() bool {
	return t == OrderTypeDineIn || t.IsExternal()
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is a menu item snapshot taken when the order was placed.
type OrderItem struct {
	ItemID   primitive.ObjectID `bson:"itemId" json:"itemId"`
	Name     string             `bson:"name" json:"name"`
	Price    float64            `bson:"price" json:"price"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// LineTotal is the unit price multiplied by the quantity.
func (i OrderItem) LineTotal() float64 {
	return RoundMoney(i.Price * float64(i.Quantity))
}

// OrderCustomer captures the contact details typed into the cart form.
type OrderCustomer struct {
	Name    string `bson:"name,omitempty" json:"name,omitempty"`
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
	Notes   string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Order defines the persisted order document.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Items       []OrderItem        `bson:"items" json:"items"`
	Subtotal    float64            `bson:"subtotal" json:"subtotal"`
	DeliveryFee float64            `bson:"deliveryFee" json:"deliveryFee"`
	Total       float64            `bson:"total" json:"total"`
	Type        OrderType          `bson:"type" json:"type"`
	TableNumber string             `bson:"tableNumber,omitempty" json:"tableNumber,omitempty"`
	Customer    OrderCustomer      `bson:"customer" json:"customer"`
	Status      OrderStatus        `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
