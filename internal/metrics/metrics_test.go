package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilRegistryIsNoop(t *testing.T) {
	var r *Registry
	r.OrderCreated()
	r.OrderRejected("EMPTY_CART")
	r.PushSent("order", 0.1)
	r.PushFailed("order", 0.1)
	r.DispatchSkipped("order")
}

func TestCountersAndHandler(t *testing.T) {
	r := NewRegistry()
	r.OrderCreated()
	r.PushSent("order", 0.2)
	r.PushFailed("order", 0.3)
	r.PushFailed("order", 0.3)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.OrdersCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.NotificationsFail.WithLabelValues("order")))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "cafe_notifications_sent_total"))
}
