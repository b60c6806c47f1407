package orders

import (
	"net/http"

	"kalini_server/api/middleware"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// GetMyOrders returns all orders for the authenticated user
func (orm *OrderRoutesManager) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w,
			gecho.WithMessage("error.auth.invalidOrMissingAccessToken"),
			gecho.Send(),
		)
		return
	}

	orders, err := orm.orderService.GetOrdersByUserId(r.Context(), claims.Sub)
	if err != nil {
		orm.logger.Error("Failed to fetch orders for user", gecho.Field("user_id", claims.Sub), gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.order.fetchingOrders"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"orders": orders,
			"count":  len(orders),
		}),
		gecho.Send(),
	)
}

// GetMyOrderById returns a single order with its lines and shipping address,
// scoped to the authenticated user
func (orm *OrderRoutesManager) GetMyOrderById(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w,
			gecho.WithMessage("error.auth.invalidOrMissingAccessToken"),
			gecho.Send(),
		)
		return
	}

	orderIdStr := chi.URLParam(r, "id")
	orderId, err := uuid.Parse(orderIdStr)
	if err != nil {
		orm.logger.Warn("Invalid order ID format", gecho.Field("order_id", orderIdStr))
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidOrderId"),
			gecho.Send(),
		)
		return
	}

	order, orderLines, err := orm.orderService.GetOrderById(r.Context(), orderId, &claims.Sub)
	if err != nil {
		orm.logger.Warn("Failed to get order", gecho.Field("error", err), gecho.Field("order_id", orderId), gecho.Field("user_id", claims.Sub))
		gecho.NotFound(w,
			gecho.WithMessage("error.order.notFound"),
			gecho.Send(),
		)
		return
	}

	address, err := orm.orderService.GetAddressById(r.Context(), order.AddressId)
	if err != nil {
		orm.logger.Error("Failed to get address", gecho.Field("error", err), gecho.Field("address_id", order.AddressId))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.order.fetchingAddress"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"order":       order,
			"order_lines": orderLines,
			"address":     address,
			"total":       order.TotalCents,
		}),
		gecho.Send(),
	)
}
