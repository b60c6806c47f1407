package admin

import (
	"kalini_server/api/middleware"
	"kalini_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AdminRoutesManager struct {
	logger         *gecho.Logger
	productService *services.ProductService
	orderService   *services.OrderService
	mw             *middleware.Middleware
}

func NewAdminRoutesManager(
	logger *gecho.Logger,
	productService *services.ProductService,
	orderService *services.OrderService,
	mw *middleware.Middleware,
) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger:         logger,
		productService: productService,
		orderService:   orderService,
		mw:             mw,
	}
}

func (ar *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(ar.mw.AdminAuthMiddleware)

		r.Get("/products", ar.ListProducts)
		r.Get("/orders", ar.ListOrders)

		// Mutations sit behind CSRF
		r.Group(func(r chi.Router) {
			r.Use(ar.mw.CSRFMiddleware())
			r.Post("/products", ar.CreateProduct)
			r.Patch("/products/{id}", ar.UpdateProduct)
			r.Patch("/products/variants/{id}/stock", ar.UpdateVariantStock)
			r.Delete("/products/{id}", ar.DeleteProduct)

			r.Patch("/orders/{id}/status", ar.UpdateOrderStatus)
		})
	})
}
