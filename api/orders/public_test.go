package orders

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kalini_server/api/middleware"
	"kalini_server/structs/tables"
)

func TestGuestOrderRoutesRegistered(t *testing.T) {
	logger := gecho.NewDefaultLogger()
	orm := NewOrderRoutesManager(logger, nil, middleware.NewMiddleware(nil, nil, nil, nil))

	r := chi.NewRouter()
	orm.RegisterRoutes(r)

	routes := map[string]bool{}
	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes[method+" "+route] = true
		return nil
	})
	require.NoError(t, err)

	assert.True(t, routes["GET /orders/{orderNumber}"], "order lookup by number should be public")
	assert.True(t, routes["GET /orders/track/{orderNumber}"], "order tracking by number should be public")
	assert.True(t, routes["GET /orders/me"])
}

func TestTrackingViewHidesCustomerDetails(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	order := &tables.Order{
		OrderNumber:   "KAL-20260829-TEST1",
		Name:          "Ananya Iyer",
		Email:         "ananya@example.com",
		Phone:         "+919800000000",
		Status:        tables.OrderStatusShipped,
		PaymentStatus: tables.PaymentStatusPaid,
		TotalCents:    499900,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	view := newTrackingView(order)
	assert.Equal(t, order.OrderNumber, view.OrderNumber)
	assert.Equal(t, order.Status, view.Status)
	assert.Equal(t, order.PaymentStatus, view.PaymentStatus)
	assert.Equal(t, order.TotalCents, view.TotalCents)

	raw, err := json.Marshal(view)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "email")
	assert.NotContains(t, fields, "phone")
	assert.NotContains(t, fields, "name")
	assert.NotContains(t, fields, "address_id")
}
