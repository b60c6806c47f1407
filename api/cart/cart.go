package cart

import (
	"errors"
	"net/http"

	"kalini_server/handling"
	"kalini_server/lib"
	"kalini_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (crm *CartRoutesManager) GetCart(w http.ResponseWriter, r *http.Request) {
	sid, err := crm.sessionID(w, r)
	if err != nil {
		handling.HandleError(err, "Failed to establish session", crm.logger, w)
		return
	}

	cart, err := crm.cartService.GetCart(sid)
	if err != nil {
		crm.logger.Error("Failed to fetch cart", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.cart.failedToFetch"), gecho.Send())
		return
	}

	respondCart(w, cart)
}

func (crm *CartRoutesManager) AddItem(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.AddToCartRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.cart.invalidRequestBody"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	productId, err := uuid.Parse(body.ProductId)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.cart.invalidProductId"), gecho.Send())
		return
	}
	variantId, err := uuid.Parse(body.VariantId)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.cart.invalidVariantId"), gecho.Send())
		return
	}

	sid, err := crm.sessionID(w, r)
	if err != nil {
		handling.HandleError(err, "Failed to establish session", crm.logger, w)
		return
	}

	cart, err := crm.cartService.AddToCart(r.Context(), sid, productId, variantId, body.Quantity)
	if err != nil {
		if errors.Is(err, lib.ErrInsufficientStock) || lib.IsNotFound(err) {
			gecho.BadRequest(w,
				gecho.WithMessage("error.cart.itemUnavailable"),
				gecho.WithData(map[string]string{"error": lib.GetUserMessage(err)}),
				gecho.Send(),
			)
			return
		}

		crm.logger.Error("Failed to add cart item", gecho.Field("error", err), gecho.Field("product_id", productId))
		gecho.InternalServerError(w, gecho.WithMessage("error.cart.failedToAdd"), gecho.Send())
		return
	}

	respondCart(w, cart)
}

func (crm *CartRoutesManager) UpdateItem(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.UpdateCartItemRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.cart.invalidRequestBody"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	sid, err := crm.sessionID(w, r)
	if err != nil {
		handling.HandleError(err, "Failed to establish session", crm.logger, w)
		return
	}

	lineId := chi.URLParam(r, "id")
	cart, err := crm.cartService.UpdateQuantity(sid, lineId, body.Quantity)
	if err != nil {
		if errors.Is(err, structs.ErrExceedsStock) {
			gecho.BadRequest(w,
				gecho.WithMessage("error.cart.exceedsStock"),
				gecho.Send(),
			)
			return
		}

		crm.logger.Error("Failed to update cart item", gecho.Field("error", err), gecho.Field("line_id", lineId))
		gecho.InternalServerError(w, gecho.WithMessage("error.cart.failedToUpdate"), gecho.Send())
		return
	}

	respondCart(w, cart)
}

func (crm *CartRoutesManager) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sid, err := crm.sessionID(w, r)
	if err != nil {
		handling.HandleError(err, "Failed to establish session", crm.logger, w)
		return
	}

	cart, err := crm.cartService.RemoveFromCart(sid, chi.URLParam(r, "id"))
	if err != nil {
		crm.logger.Error("Failed to remove cart item", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.cart.failedToRemove"), gecho.Send())
		return
	}

	respondCart(w, cart)
}

func (crm *CartRoutesManager) ClearCart(w http.ResponseWriter, r *http.Request) {
	sid, err := crm.sessionID(w, r)
	if err != nil {
		handling.HandleError(err, "Failed to establish session", crm.logger, w)
		return
	}

	if err := crm.cartService.ClearCart(sid); err != nil {
		crm.logger.Error("Failed to clear cart", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.cart.failedToClear"), gecho.Send())
		return
	}

	respondCart(w, structs.Cart{})
}

func respondCart(w http.ResponseWriter, cart structs.Cart) {
	gecho.Success(w,
		gecho.WithData(map[string]any{
			"items": cart,
			"count": len(cart),
			"total": cart.Total(),
		}),
		gecho.Send(),
	)
}
