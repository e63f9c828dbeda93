package handlers

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cafe/internal/telegram"
)

const webhookSecretHeader = "X-Telegram-Bot-Api-Secret-Token"

type Welcomer interface {
	Welcome(ctx context.Context, chatID, name string) error
}

/*
POST /telegram/webhook
- "/start" subscribes the chat to staff notifications and greets it
- Every other update is acknowledged and ignored
*/
func TelegramWebhook(recipients RecipientRegistrar, welcomer Welcomer, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /telegram/webhook"
		defer handlePanic(c, route)

		if secret != "" {
			got := c.GetHeader(webhookSecretHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				respondWithError(c, http.StatusUnauthorized, route, "invalid webhook secret")
				return
			}
		}

		var update telegram.Update
		if err := c.ShouldBindJSON(&update); err != nil {
			zap.L().Warn("ignoring unreadable telegram update", zap.Error(err))
			c.Status(http.StatusOK)
			return
		}
		if !update.IsStart() {
			c.Status(http.StatusOK)
			return
		}

		chatID := update.ChatID()
		ctx, cancel := requestContext(c)
		defer cancel()

		if err := recipients.AddRecipient(ctx, chatID); err != nil {
			zap.L().Error("could not register telegram recipient", zap.String("chat_id", chatID), zap.Error(err))
			respondWithError(c, http.StatusInternalServerError, route, "could not register chat")
			return
		}
		zap.L().Info("telegram recipient registered", zap.String("chat_id", chatID))

		if err := welcomer.Welcome(context.WithoutCancel(ctx), chatID, update.SenderName()); err != nil {
			zap.L().Warn("welcome message failed", zap.String("chat_id", chatID), zap.Error(err))
		}
		c.Status(http.StatusOK)
	}
}
