package orders

import (
	"net/http"
	"time"

	"kalini_server/lib"
	"kalini_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// trackingView is the reduced order shape served to unauthenticated
// tracking requests. Contact and address details stay private.
type trackingView struct {
	OrderNumber   string               `json:"order_number"`
	Status        tables.OrderStatus   `json:"status"`
	PaymentStatus tables.PaymentStatus `json:"payment_status"`
	TotalCents    uint64               `json:"total_cents"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

func newTrackingView(order *tables.Order) trackingView {
	return trackingView{
		OrderNumber:   order.OrderNumber,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		TotalCents:    order.TotalCents,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

// LookupOrder returns a full order by its number. The number is handed out
// only at checkout, so holding it is treated as proof of ownership.
func (orm *OrderRoutesManager) LookupOrder(w http.ResponseWriter, r *http.Request) {
	orderNumber := chi.URLParam(r, "orderNumber")
	if orderNumber == "" {
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.orderNumberRequired"),
			gecho.Send(),
		)
		return
	}

	order, orderLines, err := orm.orderService.GetOrderByNumber(r.Context(), orderNumber)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w,
				gecho.WithMessage("error.order.notFound"),
				gecho.Send(),
			)
			return
		}

		orm.logger.Error("Failed to look up order", gecho.Field("error", err), gecho.Field("order_number", orderNumber))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.order.fetchingOrders"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"order":       order,
			"order_lines": orderLines,
			"total":       order.TotalCents,
		}),
		gecho.Send(),
	)
}

// TrackOrder returns the status of an order by its number without
// exposing the customer's details.
func (orm *OrderRoutesManager) TrackOrder(w http.ResponseWriter, r *http.Request) {
	orderNumber := chi.URLParam(r, "orderNumber")
	if orderNumber == "" {
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.orderNumberRequired"),
			gecho.Send(),
		)
		return
	}

	order, _, err := orm.orderService.GetOrderByNumber(r.Context(), orderNumber)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w,
				gecho.WithMessage("error.order.notFound"),
				gecho.Send(),
			)
			return
		}

		orm.logger.Error("Failed to track order", gecho.Field("error", err), gecho.Field("order_number", orderNumber))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.order.fetchingOrders"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(newTrackingView(order)),
		gecho.Send(),
	)
}
