package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"cafe/internal/models"
	"cafe/internal/notify"
	"cafe/internal/repository"
)

type adminDirectory map[string]models.Admin

func (d adminDirectory) FindOne(_ context.Context, filter interface{}) (*models.Admin, error) {
	email, _ := filter.(bson.M)["email"].(string)
	admin, ok := d[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &admin, nil
}

func TestAdminLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	admins := adminDirectory{"boss@cafe.ly": {ID: primitive.NewObjectID(), Email: "boss@cafe.ly", PasswordHash: string(hash)}}
	auditLog := &memoryAudit{}
	h := AdminLogin(admins, "secret", time.Hour, auditLog)

	w := perform(http.MethodPost, "/admin/login", "/admin/login", `{"email": "Boss@Cafe.ly", "password": "correct horse"}`, h)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, 3600.0, body["expiresIn"])

	token, err := jwt.Parse(body["token"].(string), func(*jwt.Token) (interface{}, error) { return []byte("secret"), nil })
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "boss@cafe.ly", claims["email"])

	require.Len(t, auditLog.entries, 1)
	assert.Equal(t, auditEntry{"boss@cafe.ly", "admin_login", ""}, auditLog.entries[0])

	for _, body := range []string{
		`{"email": "boss@cafe.ly", "password": "wrong"}`,
		`{"email": "nobody@cafe.ly", "password": "correct horse"}`,
	} {
		w := perform(http.MethodPost, "/admin/login", "/admin/login", body, h)
		assert.Equal(t, http.StatusUnauthorized, w.Code, body)
	}
}

func TestUpdateOrderStatusNotifiesStaff(t *testing.T) {
	order := models.Order{ID: primitive.NewObjectID(), Status: models.OrderStatusReady, Type: models.OrderTypePickup}
	store := &fakeStore[models.Order]{updated: &order}
	notifier := &recordingNotifier{}
	auditLog := &memoryAudit{}
	h := UpdateOrderStatus(store, notifier, auditLog)
	path := "/admin/api/orders/" + order.ID.Hex() + "/status"

	w := perform(http.MethodPut, "/admin/api/orders/:id/status", path, `{"status": "ready"}`, h)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, store.sets, 1)
	assert.Equal(t, models.OrderStatusReady, store.sets[0]["status"])
	require.Len(t, notifier.records, 1)
	rec, ok := notifier.records[0].(notify.StatusUpdateRecord)
	require.True(t, ok)
	assert.Equal(t, models.OrderStatusReady, rec.NewStatus)
	assert.Equal(t, order.ID.Hex(), notifier.ids[0])
	require.Len(t, auditLog.entries, 1)
	assert.Equal(t, "order_status_updated", auditLog.entries[0].action)
}

func TestUpdateOrderStatusRejections(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"unknown status", "/admin/api/orders/" + id + "/status", `{"status": "lost"}`, http.StatusBadRequest},
		{"bad id", "/admin/api/orders/zzz/status", `{"status": "ready"}`, http.StatusBadRequest},
		{"missing order", "/admin/api/orders/" + id + "/status", `{"status": "ready"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &recordingNotifier{}
			w := perform(http.MethodPut, "/admin/api/orders/:id/status", tt.path, tt.body,
				UpdateOrderStatus(&fakeStore[models.Order]{}, notifier, &memoryAudit{}))
			assert.Equal(t, tt.status, w.Code)
			assert.Empty(t, notifier.records)
		})
	}
}

func TestGetOrdersPaginationAndFilters(t *testing.T) {
	store := &fakeStore[models.Order]{found: []models.Order{{ID: primitive.NewObjectID()}}}
	h := GetOrders(store)

	w := perform(http.MethodGet, "/admin/api/orders", "/admin/api/orders?page=2&limit=500&status=ready", "", h)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, 2.0, body["page"])
	assert.Equal(t, float64(maxPageSize), body["limit"])
	assert.Len(t, body["data"], 1)
	require.Len(t, store.filters, 1)
	assert.Equal(t, bson.M{"status": "ready"}, store.filters[0])

	for _, query := range []string{"?page=0", "?limit=x", "?status=lost", "?type=drone"} {
		w := perform(http.MethodGet, "/admin/api/orders", "/admin/api/orders"+query, "", h)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}
}

func TestUpdateSettingsDedupesRecipients(t *testing.T) {
	settings := &memorySettings{}
	auditLog := &memoryAudit{}

	w := perform(http.MethodPut, "/admin/api/settings", "/admin/api/settings",
		`{"telegramChatIds": ["1", " 2 ", "1", ""], "deliveryFee": 5}`,
		UpdateSettings(settings, auditLog))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, settings.sets, 1)
	assert.Equal(t, []string{"1", "2"}, settings.sets[0]["telegramChatIds"])
	assert.Equal(t, 5.0, settings.sets[0]["deliveryFee"])
	require.Len(t, auditLog.entries, 1)
	assert.Equal(t, "deliveryFee,telegramChatIds", auditLog.entries[0].details)

	w = perform(http.MethodPut, "/admin/api/settings", "/admin/api/settings", `{}`, UpdateSettings(settings, auditLog))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReplyToCommentApprovesIt(t *testing.T) {
	comment := models.Comment{ID: primitive.NewObjectID(), Approved: true, AdminReply: "thanks"}
	store := &fakeStore[models.Comment]{updated: &comment}
	path := "/admin/api/comments/" + comment.ID.Hex() + "/reply"

	w := perform(http.MethodPut, "/admin/api/comments/:id/reply", path, `{"reply": " thanks "}`, ReplyToComment(store))
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.sets, 1)
	assert.Equal(t, "thanks", store.sets[0]["adminReply"])
	assert.Equal(t, true, store.sets[0]["approved"])

	w = perform(http.MethodPut, "/admin/api/comments/:id/reply", path, `{"reply": "   "}`, ReplyToComment(store))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteCategoryIsSoft(t *testing.T) {
	category := models.Category{ID: primitive.NewObjectID()}
	store := &fakeStore[models.Category]{updated: &category}

	w := perform(http.MethodDelete, "/admin/api/categories/:id", "/admin/api/categories/"+category.ID.Hex(), "", DeleteCategory(store))
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Len(t, store.sets, 1)
	assert.Equal(t, false, store.sets[0]["active"])
}

func TestCreateCategoryRejectsDuplicates(t *testing.T) {
	store := &fakeStore[models.Category]{found: []models.Category{{Name: "Coffee"}}}
	w := perform(http.MethodPost, "/admin/api/categories", "/admin/api/categories", `{"name": "Coffee"}`, CreateCategory(store))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, store.created)
}

func TestGetOffersKeepsRunningOnly(t *testing.T) {
	store := &fakeStore[models.Offer]{found: []models.Offer{
		{Title: "always", Active: true, StartDate: "2000-01-01", EndDate: "2999-12-31"},
		{Title: "open ended", Active: true},
		{Title: "later", Active: true, StartDate: "2999-01-01"},
		{Title: "over", Active: true, EndDate: "2000-01-02"},
		{Title: "switched off", Active: false},
	}}

	w := perform(http.MethodGet, "/offers", "/offers", "", GetOffers(store, time.UTC))
	require.Equal(t, http.StatusOK, w.Code)

	var titles []string
	for _, o := range decodeList(t, w.Body.Bytes()) {
		titles = append(titles, o["title"].(string))
	}
	assert.Equal(t, []string{"always", "open ended"}, titles)
}

func TestGetCommentsHidesEmails(t *testing.T) {
	store := &fakeStore[models.Comment]{found: []models.Comment{{UserName: "a", UserEmail: "a@x.ly", Approved: true}}}

	w := perform(http.MethodGet, "/comments", "/comments?limit=5", "", GetComments(store))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "a@x.ly")
	assert.Equal(t, bson.M{"approved": true}, store.filters[0])

	w = perform(http.MethodGet, "/comments", "/comments?limit=-1", "", GetComments(store))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
