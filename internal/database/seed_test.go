package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"cafe/internal/models"
)

type memoryAdmins struct {
	existing int64
	countErr error
	created  []models.Admin
}

func (m *memoryAdmins) Count(context.Context, interface{}) (int64, error) {
	return m.existing, m.countErr
}

func (m *memoryAdmins) Create(_ context.Context, admin *models.Admin) (primitive.ObjectID, error) {
	m.created = append(m.created, *admin)
	return primitive.NewObjectID(), nil
}

func TestSeedAdminCreatesFirstAccount(t *testing.T) {
	admins := &memoryAdmins{}

	err := SeedAdmin(context.Background(), admins, "  Owner@Cafe.ly ", "s3cret", zap.NewNop())
	require.NoError(t, err)
	require.Len(t, admins.created, 1)

	admin := admins.created[0]
	assert.Equal(t, "owner@cafe.ly", admin.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("s3cret")))
}

func TestSeedAdminSkips(t *testing.T) {
	tests := []struct {
		name     string
		admins   *memoryAdmins
		email    string
		password string
		wantErr  bool
	}{
		{"missing credentials", &memoryAdmins{}, "", "", false},
		{"admin exists", &memoryAdmins{existing: 1}, "owner@cafe.ly", "pw", false},
		{"count fails", &memoryAdmins{countErr: errors.New("offline")}, "owner@cafe.ly", "pw", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SeedAdmin(context.Background(), tt.admins, tt.email, tt.password, zap.NewNop())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Empty(t, tt.admins.created)
		})
	}
}

func TestIndexPlanCoversQueriedCollections(t *testing.T) {
	seen := map[string]bool{}
	for _, plan := range indexPlan() {
		seen[plan.collection] = true
		assert.NotEmpty(t, plan.models, plan.collection)
	}
	for _, coll := range []string{"orders", "comments", "items", "jobApplications", "admins", "admin_logs"} {
		assert.True(t, seen[coll], coll)
	}
}
