package cart

import (
	"net/http"
	"time"

	"kalini_server/api/middleware"
	"kalini_server/lib"
	"kalini_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// Session cookie lifetime matches the Redis TTL of the stored lists.
const sessionLifetime = 30 * 24 * time.Hour

type CartRoutesManager struct {
	logger      *gecho.Logger
	cartService *services.CartService
	mw          *middleware.Middleware
}

func NewCartRoutesManager(
	logger *gecho.Logger,
	cartService *services.CartService,
	mw *middleware.Middleware,
) *CartRoutesManager {
	return &CartRoutesManager{
		logger:      logger,
		cartService: cartService,
		mw:          mw,
	}
}

func (crm *CartRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", crm.GetCart)
		r.Delete("/", crm.ClearCart)
		r.Post("/items", crm.AddItem)
		r.Patch("/items/{id}", crm.UpdateItem)
		r.Delete("/items/{id}", crm.RemoveItem)
	})

	r.Route("/wishlist", func(r chi.Router) {
		r.Get("/", crm.GetWishlist)
		r.Post("/toggle", crm.ToggleWishlist)
		r.Delete("/{id}", crm.RemoveFromWishlist)
	})
}

// sessionID returns the caller's session identifier, minting a new
// session cookie when none is present yet.
func (crm *CartRoutesManager) sessionID(w http.ResponseWriter, r *http.Request) (string, error) {
	if sid, err := lib.GetCookieValue(lib.SessionCookieName, r); err == nil && sid != "" {
		return sid, nil
	}

	sid, err := lib.GenerateRandomToken()
	if err != nil {
		return "", err
	}

	lib.SetCookie(lib.SessionCookieName, sid, time.Now().Add(sessionLifetime), w)
	return sid, nil
}
