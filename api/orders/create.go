package orders

import (
	"errors"
	"net/http"

	"kalini_server/api/middleware"
	"kalini_server/lib"
	"kalini_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

func (orm *OrderRoutesManager) CreateOrder(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.OrderRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidRequestBody"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	// Default country to IN if not provided
	if body.Country == "" {
		body.Country = "IN"
	}

	// Link the order to the account when the request is authenticated
	var userId *uuid.UUID
	if claims, ok := middleware.GetClaimsFromContext(r.Context()); ok {
		userId = &claims.Sub
	}

	order, err := orm.orderService.CreateOrderFromRequest(r.Context(), body, userId)
	if err != nil {
		if errors.Is(err, lib.ErrInsufficientStock) ||
			errors.Is(err, lib.ErrVariantNotFound) ||
			lib.IsNotFound(err) {
			gecho.BadRequest(w,
				gecho.WithMessage("error.order.productUnavailable"),
				gecho.WithData(map[string]string{"error": lib.GetUserMessage(err)}),
				gecho.Send(),
			)
			return
		}

		orm.logger.Error("Failed to create order", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.order.creationFailed"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.order.created"),
		gecho.WithData(map[string]any{
			"order_number": order.OrderNumber,
			"order_id":     order.Id,
			"status":       order.Status,
			"total_cents":  order.TotalCents,
		}),
		gecho.Send(),
	)
}
