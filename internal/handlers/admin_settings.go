package handlers

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"cafe/internal/models"
)

type SettingsUpdateRequest struct {
	ShopName       *string             `json:"shopName" binding:"omitempty,max=100"`
	ShopNameEn     *string             `json:"shopNameEn" binding:"omitempty,max=100"`
	LogoURL        *string             `json:"logoUrl"`
	Phone          *string             `json:"phone" binding:"omitempty,max=30"`
	Email          *string             `json:"email" binding:"omitempty,email"`
	Address        *string             `json:"address" binding:"omitempty,max=300"`
	WorkingHours   *string             `json:"workingHours" binding:"omitempty,max=200"`
	DeliveryFee    *float64            `json:"deliveryFee" binding:"omitempty,gte=0"`
	MinOrderAmount *float64            `json:"minOrderAmount" binding:"omitempty,gte=0"`
	SocialMedia    *models.SocialMedia `json:"socialMedia"`
	RecipientIDs   *[]string           `json:"telegramChatIds"`
}

// GetSettings is the admin view, recipient list included.
func GetSettings(store SettingsLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/settings"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		s, err := store.Load(ctx)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if s == nil {
			s = &models.Settings{RecipientIDs: []string{}}
		}
		c.JSON(http.StatusOK, s)
	}
}

/*
PUT /admin/api/settings
- Partial update; the document is created on first save
- telegramChatIds replaces the whole list (blank and duplicate ids dropped)
*/
func UpdateSettings(store SettingsStore, auditLog AuditLog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/settings"
		defer handlePanic(c, route)

		var req SettingsUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		set := bson.M{}
		setString(set, "shopName", req.ShopName)
		setString(set, "shopNameEn", req.ShopNameEn)
		setString(set, "logoUrl", req.LogoURL)
		setString(set, "phone", req.Phone)
		setString(set, "email", req.Email)
		setString(set, "address", req.Address)
		setString(set, "workingHours", req.WorkingHours)
		if req.DeliveryFee != nil {
			set["deliveryFee"] = models.RoundMoney(*req.DeliveryFee)
		}
		if req.MinOrderAmount != nil {
			set["minOrderAmount"] = models.RoundMoney(*req.MinOrderAmount)
		}
		if req.SocialMedia != nil {
			set["socialMedia"] = *req.SocialMedia
		}
		if req.RecipientIDs != nil {
			set["telegramChatIds"] = uniqueIDs(*req.RecipientIDs)
		}
		if len(set) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		updated, err := store.Update(ctx, set)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		audit(ctx, auditLog, c, "settings_updated", strings.Join(sortedKeys(set), ","))
		c.JSON(http.StatusOK, updated)
	}
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func sortedKeys(m bson.M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
