package subscriptions

import (
	"kalini_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type SubscriptionRoutesManager struct {
	logger              *gecho.Logger
	subscriptionService *services.SubscriptionService
}

func NewSubscriptionRoutesManager(
	logger *gecho.Logger,
	subscriptionService *services.SubscriptionService,
) *SubscriptionRoutesManager {
	return &SubscriptionRoutesManager{
		logger:              logger,
		subscriptionService: subscriptionService,
	}
}

func (srm *SubscriptionRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/subscriptions", func(r chi.Router) {
		r.Post("/subscribe", srm.Subscribe)
		r.Post("/unsubscribe", srm.Unsubscribe)
	})
}
