package cart

import (
	"net/http"

	"kalini_server/handling"
	"kalini_server/lib"
	"kalini_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (crm *CartRoutesManager) GetWishlist(w http.ResponseWriter, r *http.Request) {
	sid, err := crm.sessionID(w, r)
	if err != nil {
		handling.HandleError(err, "Failed to establish session", crm.logger, w)
		return
	}

	wishlist, err := crm.cartService.GetWishlist(sid)
	if err != nil {
		crm.logger.Error("Failed to fetch wishlist", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.wishlist.failedToFetch"), gecho.Send())
		return
	}

	respondWishlist(w, wishlist)
}

// ToggleWishlist adds the product when absent and removes it when present.
func (crm *CartRoutesManager) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.ToggleWishlistRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.wishlist.invalidRequestBody"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	productId, err := uuid.Parse(body.ProductId)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.wishlist.invalidProductId"), gecho.Send())
		return
	}

	sid, err := crm.sessionID(w, r)
	if err != nil {
		handling.HandleError(err, "Failed to establish session", crm.logger, w)
		return
	}

	wishlist, added, err := crm.cartService.ToggleWishlist(r.Context(), sid, productId)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("error.products.notFound"), gecho.Send())
			return
		}

		crm.logger.Error("Failed to toggle wishlist item", gecho.Field("error", err), gecho.Field("product_id", productId))
		gecho.InternalServerError(w, gecho.WithMessage("error.wishlist.failedToToggle"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"items": wishlist,
			"count": len(wishlist),
			"added": added,
		}),
		gecho.Send(),
	)
}

func (crm *CartRoutesManager) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	productId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.wishlist.invalidProductId"), gecho.Send())
		return
	}

	sid, err := crm.sessionID(w, r)
	if err != nil {
		handling.HandleError(err, "Failed to establish session", crm.logger, w)
		return
	}

	wishlist, err := crm.cartService.RemoveFromWishlist(sid, productId)
	if err != nil {
		crm.logger.Error("Failed to remove wishlist item", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.wishlist.failedToRemove"), gecho.Send())
		return
	}

	respondWishlist(w, wishlist)
}

func respondWishlist(w http.ResponseWriter, wishlist structs.Wishlist) {
	gecho.Success(w,
		gecho.WithData(map[string]any{
			"items": wishlist,
			"count": len(wishlist),
		}),
		gecho.Send(),
	)
}
