package orders

import (
	"kalini_server/api/middleware"
	"kalini_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type OrderRoutesManager struct {
	logger       *gecho.Logger
	orderService *services.OrderService
	mw           *middleware.Middleware
}

func NewOrderRoutesManager(
	logger *gecho.Logger,
	orderService *services.OrderService,
	mw *middleware.Middleware,
) *OrderRoutesManager {
	return &OrderRoutesManager{
		logger:       logger,
		orderService: orderService,
		mw:           mw,
	}
}

func (orm *OrderRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		// Guest checkout is allowed, claims are attached when present
		r.Group(func(r chi.Router) {
			r.Use(orm.mw.OptionalAuthMiddleware)
			r.Post("/", orm.CreateOrder)
		})

		r.Group(func(r chi.Router) {
			r.Use(orm.mw.UserAuthMiddleware)
			r.Get("/me", orm.GetMyOrders)
			r.Get("/me/{id}", orm.GetMyOrderById)
		})

		// Guest lookup by order number, the number is the capability
		r.Get("/track/{orderNumber}", orm.TrackOrder)
		r.Get("/{orderNumber}", orm.LookupOrder)
	})
}
