package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"cafe/internal/models"
	"cafe/internal/repository"
)

// AdminStore is the slice of the admins collection the seeder needs.
type AdminStore interface {
	Count(ctx context.Context, filter interface{}) (int64, error)
	Create(ctx context.Context, admin *models.Admin) (primitive.ObjectID, error)
}

// SeedAdmin creates the first admin account from the configured credentials
// when the admins collection is empty. It does nothing when either
// credential is missing or an admin already exists.
func SeedAdmin(ctx context.Context, admins AdminStore, email, password string, log *zap.Logger) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		log.Info("admin seed skipped: ADMIN_EMAIL or ADMIN_PASSWORD not set")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := admins.Count(ctx, bson.M{})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.Admin{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := admins.Create(ctx, &admin); err != nil {
		return err
	}
	log.Info("seeded admin account", zap.String("email", email))
	return nil
}

var _ AdminStore = (*repository.Documents[models.Admin])(nil)
