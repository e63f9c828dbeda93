package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"cafe/internal/middleware"
	"cafe/internal/models"
)

type AdminFinder interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Admin, error)
}

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func AdminLogin(admins AdminFinder, jwtSecret string, accessTTL time.Duration, auditLog AuditLog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/login"
		defer handlePanic(c, route)

		var req AdminLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := requestContext(c)
		defer cancel()

		admin, err := admins.FindOne(ctx, bson.M{"email": email})
		if err != nil {
			respondWithError(c, http.StatusUnauthorized, route, "invalid credentials")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
			respondWithError(c, http.StatusUnauthorized, route, "invalid credentials")
			return
		}

		signed, err := middleware.IssueAdminToken(jwtSecret, admin.ID.Hex(), admin.Email, accessTTL)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "token generation failed")
			return
		}

		c.Set(middleware.AdminEmailKey, admin.Email)
		audit(ctx, auditLog, c, "admin_login", "")
		c.JSON(http.StatusOK, gin.H{
			"token":     signed,
			"expiresIn": int64(accessTTL.Seconds()),
		})
	}
}
