package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"cafe/internal/logging"
	"cafe/internal/repository"
)

const requestTimeout = 5 * time.Second

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		zap.L().Error("panic recovered",
			zap.String("route", route),
			zap.String("request_id", logging.RequestID(c)),
			zap.Any("panic", r),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	logError(c, status, route, message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondWithCode adds a machine readable code next to the message.
func respondWithCode(c *gin.Context, status int, route, code, message string) {
	logError(c, status, route, message)
	c.AbortWithStatusJSON(status, gin.H{"error": message, "code": code})
}

func logError(c *gin.Context, status int, route, message string) {
	fields := []zap.Field{
		zap.String("route", route),
		zap.Int("status", status),
		zap.String("request_id", logging.RequestID(c)),
		zap.String("error", message),
	}
	if status >= http.StatusInternalServerError {
		zap.L().Error("returning error", fields...)
		return
	}
	zap.L().Info("returning error", fields...)
}

// respondStoreError maps repository errors to 404 or 500.
func respondStoreError(c *gin.Context, route, what string, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		respondWithError(c, http.StatusNotFound, route, what+" not found")
		return
	}
	zap.L().Error("store error", zap.String("route", route), zap.Error(err))
	respondWithError(c, http.StatusInternalServerError, route, "db error")
}

func respondValidationError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := lowerCamel(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			case "min", "max", "gte", "lte":
				details = append(details, fmt.Sprintf("%s must be %s %s", field, boundWord(fieldError.Tag()), fieldError.Param()))
			case "oneof":
				details = append(details, fmt.Sprintf("%s must be one of: %s", field, fieldError.Param()))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":   "validation failed",
			"code":    "VALIDATION_FAILED",
			"details": details,
		})
		return
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid body", "details": err.Error()})
}

func boundWord(tag string) string {
	switch tag {
	case "min", "gte":
		return "at least"
	default:
		return "at most"
	}
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// pathID parses the :id route parameter, answering 400 when it is malformed.
func pathID(c *gin.Context, route string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondWithError(c, http.StatusBadRequest, route, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
