package subscriptions

import (
	"net/http"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionRoutesRegistered(t *testing.T) {
	logger := gecho.NewDefaultLogger()
	srm := NewSubscriptionRoutesManager(logger, nil)

	r := chi.NewRouter()
	srm.RegisterRoutes(r)

	routes := map[string]bool{}
	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes[method+" "+route] = true
		return nil
	})
	require.NoError(t, err)

	assert.True(t, routes["POST /subscriptions/subscribe"])
	assert.True(t, routes["POST /subscriptions/unsubscribe"])
}
