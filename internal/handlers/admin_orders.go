package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"cafe/internal/models"
	"cafe/internal/notify"
)

func orderFilter(c *gin.Context, route string) (bson.M, bool) {
	filter := bson.M{}
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		if !models.OrderStatus(v).Valid() {
			respondWithError(c, http.StatusBadRequest, route, "invalid status")
			return nil, false
		}
		filter["status"] = v
	}
	if v := strings.TrimSpace(c.Query("type")); v != "" {
		if !models.OrderType(v).Valid() {
			respondWithError(c, http.StatusBadRequest, route, "invalid type")
			return nil, false
		}
		filter["type"] = v
	}
	return filter, true
}

/*
GET /admin/api/orders
- ?status=, ?type=, ?page=, ?limit=
*/
func GetOrders(store finder[models.Order]) gin.HandlerFunc {
	return listDocuments(store, "GET /admin/api/orders", orderFilter)
}

func GetOrder(store getter[models.Order]) gin.HandlerFunc {
	return getDocument(store, "GET /admin/api/orders/:id", "order")
}

type orderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required,oneof=pending confirmed preparing ready delivered cancelled"`
}

/*
PUT /admin/api/orders/:id/status
- Any status may follow any other
- Staff chats get a status update message
*/
func UpdateOrderStatus(store updater[models.Order], notifier Notifier, auditLog AuditLog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/orders/:id/status"
		defer handlePanic(c, route)

		id, ok := pathID(c, route)
		if !ok {
			return
		}

		var req orderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		order, err := store.Update(ctx, id, bson.M{
			"status":    req.Status,
			"updatedAt": time.Now().UTC(),
		})
		if err != nil {
			respondStoreError(c, route, "order", err)
			return
		}

		audit(ctx, auditLog, c, "order_status_updated", id.Hex()+" -> "+string(req.Status))
		notifier.Dispatch(ctx, notify.StatusUpdateRecord{Order: *order, NewStatus: req.Status}, id.Hex())
		c.JSON(http.StatusOK, order)
	}
}

func DeleteOrder(store deleter, auditLog AuditLog) gin.HandlerFunc {
	return deleteDocument(store, "DELETE /admin/api/orders/:id", "order", auditLog)
}
