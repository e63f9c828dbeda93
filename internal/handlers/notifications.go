package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"cafe/internal/middleware"
	"cafe/internal/models"
	"cafe/internal/notify"
	"cafe/internal/repository"
)

// Audit actions written by the notification callable.
const (
	actionNotificationSent   = "telegram_notification_sent"
	actionNotificationFailed = "telegram_notification_failed"
)

// Callable error statuses, named after the RPC codes clients switch on.
const (
	statusInvalidArgument    = "invalid-argument"
	statusNotFound           = "not-found"
	statusFailedPrecondition = "failed-precondition"
	statusInternal           = "internal"
)

type RecipientResolver interface {
	Resolve(ctx context.Context) []string
}

type DirectSender interface {
	SendTo(ctx context.Context, rec notify.Record, id string, ids []string) []notify.Result
}

// BotStatus reports whether outgoing pushes can be attempted at all.
type BotStatus interface {
	Configured() bool
}

type sendOrderRequest struct {
	OrderID string `json:"orderId"`
}

// NotificationDeps groups what the callable needs.
type NotificationDeps struct {
	Orders     getter[models.Order]
	Recipients RecipientResolver
	Sender     DirectSender
	Bot        BotStatus
	Audit      AuditLog
}

/*
POST /api/notifications/order
- Re-sends an order to every configured chat on demand
- Outcome is written to admin_logs
*/
func SendOrderToTelegram(deps NotificationDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/notifications/order"
		defer handlePanic(c, route)

		var req sendOrderRequest
		_ = c.ShouldBindJSON(&req)
		raw := strings.TrimSpace(req.OrderID)
		if raw == "" {
			respondWithCode(c, http.StatusBadRequest, route, statusInvalidArgument, "Order ID is required")
			return
		}
		orderID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			respondWithCode(c, http.StatusBadRequest, route, statusInvalidArgument, "Order ID is malformed")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		order, err := deps.Orders.Get(ctx, orderID)
		if errors.Is(err, repository.ErrNotFound) {
			respondWithCode(c, http.StatusNotFound, route, statusNotFound, "Order not found")
			return
		}
		if err != nil {
			audit(ctx, deps.Audit, c, actionNotificationFailed, err.Error())
			respondWithCode(c, http.StatusInternalServerError, route, statusInternal, "Failed to send notification")
			return
		}

		recipients := deps.Recipients.Resolve(ctx)
		if len(recipients) == 0 {
			zap.L().Warn("no telegram chat ids configured", zap.String("order_id", raw))
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "No Telegram recipients configured"})
			return
		}
		if !deps.Bot.Configured() {
			respondWithCode(c, http.StatusPreconditionFailed, route, statusFailedPrecondition, "Telegram bot token not configured")
			return
		}

		results := deps.Sender.SendTo(ctx, notify.OrderRecord{Order: *order}, raw, recipients)
		failed := notify.Failed(results)
		if failed == len(results) {
			audit(ctx, deps.Audit, c, actionNotificationFailed, firstError(results))
			respondWithCode(c, http.StatusInternalServerError, route, statusInternal, "Failed to send notification")
			return
		}

		details := fmt.Sprintf("Order %s sent to %d recipients", raw, len(results)-failed)
		if failed > 0 {
			details += fmt.Sprintf(" (%d failed)", failed)
		}
		audit(ctx, deps.Audit, c, actionNotificationSent, details)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Notification sent successfully"})
	}
}

func firstError(results []notify.Result) string {
	for _, res := range results {
		if res.Err != nil {
			return res.Err.Error()
		}
	}
	return "unknown error"
}

// audit writes to admin_logs; a failed write is only logged.
func audit(ctx context.Context, log AuditLog, c *gin.Context, action, details string) {
	if log == nil {
		return
	}
	if err := log.Record(context.WithoutCancel(ctx), middleware.AdminEmail(c), action, details); err != nil {
		zap.L().Warn("admin log write failed", zap.String("action", action), zap.Error(err))
	}
}
