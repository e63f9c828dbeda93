package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cafe/internal/models"
	"cafe/internal/ordering"
)

const (
	codeInvalidItem     = "INVALID_ITEM"
	codeItemUnavailable = "ITEM_UNAVAILABLE"
)

type MenuLookup interface {
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.MenuItem, error)
}

type OrderSubmitter interface {
	Submit(ctx context.Context, req ordering.SubmitRequest) (*models.Order, error)
}

type createOrderItemRequest struct {
	ItemID   string `json:"itemId" binding:"required"`
	Quantity int    `json:"quantity" binding:"max=99"`
}

type createOrderCustomerRequest struct {
	Name    string `json:"name" binding:"max=100"`
	Phone   string `json:"phone" binding:"max=30"`
	Address string `json:"address" binding:"max=300"`
	Notes   string `json:"notes" binding:"max=500"`
}

type createOrderRequest struct {
	Items       []createOrderItemRequest   `json:"items" binding:"dive"`
	Type        models.OrderType           `json:"type"`
	Customer    createOrderCustomerRequest `json:"customer"`
	TableNumber string                     `json:"tableNumber" binding:"max=20"`
}

/*
POST /orders
- Prices come from the menu, never from the client
- Business rules live in ordering.Validate; their codes are returned as-is
*/
func CreateOrder(menu MenuLookup, orders OrderSubmitter) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		lines, ok := resolveCart(ctx, c, menu, req.Items)
		if !ok {
			return
		}

		order, err := orders.Submit(ctx, ordering.SubmitRequest{
			Items: lines,
			Type:  req.Type,
			Customer: models.OrderCustomer{
				Name:    req.Customer.Name,
				Phone:   req.Customer.Phone,
				Address: req.Customer.Address,
				Notes:   req.Customer.Notes,
			},
			TableNumber: req.TableNumber,
		})
		if err != nil {
			var verr *ordering.ValidationError
			switch {
			case errors.As(err, &verr):
				respondWithCode(c, http.StatusBadRequest, route, verr.Code, verr.Message)
			case errors.Is(err, ordering.ErrSettingsUnavailable):
				respondWithError(c, http.StatusServiceUnavailable, route, "order settings unavailable, try again")
			default:
				respondWithError(c, http.StatusInternalServerError, route, "could not save order")
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"orderId": order.ID.Hex(),
			"total":   order.Total,
		})
	}
}

// resolveCart loads the menu items behind the requested ids. Unknown and
// unavailable items reject the whole cart. Empty carts pass through so the
// submission rules report them.
func resolveCart(ctx context.Context, c *gin.Context, menu MenuLookup, items []createOrderItemRequest) ([]ordering.CartLine, bool) {
	const route = "POST /orders"
	if len(items) == 0 {
		return nil, true
	}

	ids := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		id, err := primitive.ObjectIDFromHex(item.ItemID)
		if err != nil {
			respondWithCode(c, http.StatusBadRequest, route, codeInvalidItem, "invalid itemId "+item.ItemID)
			return nil, false
		}
		ids = append(ids, id)
	}

	found, err := menu.FindByIDs(ctx, ids)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, route, "db error")
		return nil, false
	}
	byID := make(map[primitive.ObjectID]models.MenuItem, len(found))
	for _, item := range found {
		byID[item.ID] = item
	}

	lines := make([]ordering.CartLine, 0, len(items))
	for i, id := range ids {
		item, ok := byID[id]
		if !ok || !item.Available {
			respondWithCode(c, http.StatusBadRequest, route, codeItemUnavailable, "item "+id.Hex()+" is not available")
			return nil, false
		}
		lines = append(lines, ordering.CartLine{Item: item, Quantity: items[i].Quantity})
	}
	return lines, true
}
