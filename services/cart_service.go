package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"

	"kalini_server/catalog"
	"kalini_server/lib"
	"kalini_server/structs"
	"kalini_server/structs/tables"
)

// CartService manages the session cart and wishlist. Both live in Redis as
// whole JSON lists: every mutation reads the full list, applies the change,
// and writes the full list back, mirroring how the lists behave client-side.
type CartService struct {
	logger         *gecho.Logger
	cacheService   *CacheService
	productService *ProductService
}

func NewCartService(logger *gecho.Logger, cacheService *CacheService, productService *ProductService) *CartService {
	return &CartService{
		logger:         logger,
		cacheService:   cacheService,
		productService: productService,
	}
}

// GetCart returns the session's cart, empty when none exists
func (cs *CartService) GetCart(sessionID string) (structs.Cart, error) {
	return cs.cacheService.GetSessionCart(sessionID)
}

// AddToCart validates the variant against the live catalog and merges a line
// into the cart. Price, image, and stock clamp are snapshotted from the
// catalog at add time.
func (cs *CartService) AddToCart(ctx context.Context, sessionID string, productId, variantId uuid.UUID, quantity int) (structs.Cart, error) {
	product, err := cs.productService.GetProductByID(ctx, productId)
	if err != nil {
		return nil, err
	}

	var variant *tables.ProductVariant
	for i := range product.Variants {
		if product.Variants[i].ID == variantId {
			variant = &product.Variants[i]
			break
		}
	}
	if variant == nil {
		return nil, lib.ErrVariantNotFound
	}
	if variant.Stock == 0 {
		return nil, lib.ErrInsufficientStock
	}

	sel := catalog.Selection{Size: variant.Size, Colour: variant.Colour}
	gallery := catalog.Gallery(product, variant, sel)

	item := structs.CartItem{
		Id:          structs.LineId(productId.String(), variant.Size, variant.Colour),
		ProductId:   productId.String(),
		VariantId:   variantId.String(),
		Name:        product.Name,
		Price:       variant.Price,
		Image:       gallery[0],
		Quantity:    quantity,
		Size:        variant.Size,
		Colour:      variant.Colour,
		ProductCode: product.ProductCode,
		Material:    product.Material,
		Category:    product.Category,
		MaxStock:    int(variant.Stock),
	}

	cart, err := cs.cacheService.GetSessionCart(sessionID)
	if err != nil {
		return nil, err
	}

	cart, err = cart.Add(item)
	if err != nil {
		if errors.Is(err, structs.ErrExceedsStock) {
			return nil, fmt.Errorf("%w: %w", lib.ErrInsufficientStock, err)
		}
		return nil, err
	}

	if err := cs.cacheService.SetSessionCart(sessionID, cart); err != nil {
		return nil, err
	}

	cs.logger.Debug("Cart line added",
		gecho.Field("line_id", item.Id),
		gecho.Field("quantity", quantity),
	)
	return cart, nil
}

// UpdateQuantity sets the quantity of one cart line; below one removes it
func (cs *CartService) UpdateQuantity(sessionID, lineId string, quantity int) (structs.Cart, error) {
	cart, err := cs.cacheService.GetSessionCart(sessionID)
	if err != nil {
		return nil, err
	}

	cart, err = cart.UpdateQuantity(lineId, quantity)
	if err != nil {
		if errors.Is(err, structs.ErrExceedsStock) {
			return nil, fmt.Errorf("%w: %w", lib.ErrInsufficientStock, err)
		}
		return nil, err
	}

	if err := cs.cacheService.SetSessionCart(sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveFromCart drops one cart line
func (cs *CartService) RemoveFromCart(sessionID, lineId string) (structs.Cart, error) {
	cart, err := cs.cacheService.GetSessionCart(sessionID)
	if err != nil {
		return nil, err
	}

	cart = cart.Remove(lineId)

	if err := cs.cacheService.SetSessionCart(sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ClearCart drops the whole cart, used after a successful checkout
func (cs *CartService) ClearCart(sessionID string) error {
	return cs.cacheService.DeleteSessionCart(sessionID)
}

// GetWishlist returns the session's wishlist, empty when none exists
func (cs *CartService) GetWishlist(sessionID string) (structs.Wishlist, error) {
	return cs.cacheService.GetSessionWishlist(sessionID)
}

// ToggleWishlist adds the product when absent and removes it when present,
// returning the new list and whether the product is now in it
func (cs *CartService) ToggleWishlist(ctx context.Context, sessionID string, productId uuid.UUID) (structs.Wishlist, bool, error) {
	product, err := cs.productService.GetProductByID(ctx, productId)
	if err != nil {
		return nil, false, err
	}

	gallery := catalog.Gallery(product, nil, catalog.Selection{})

	item := structs.WishlistItem{
		Id:          productId.String(),
		ProductId:   productId.String(),
		Name:        product.Name,
		Price:       catalog.MinPrice(product.Variants),
		Image:       gallery[0],
		ProductCode: product.ProductCode,
	}

	list, err := cs.cacheService.GetSessionWishlist(sessionID)
	if err != nil {
		return nil, false, err
	}

	list, present := list.Toggle(item)

	if err := cs.cacheService.SetSessionWishlist(sessionID, list); err != nil {
		return nil, false, err
	}
	return list, present, nil
}

// RemoveFromWishlist drops one wishlist entry by product id
func (cs *CartService) RemoveFromWishlist(sessionID string, productId uuid.UUID) (structs.Wishlist, error) {
	list, err := cs.cacheService.GetSessionWishlist(sessionID)
	if err != nil {
		return nil, err
	}

	list = list.Remove(productId.String())

	if err := cs.cacheService.SetSessionWishlist(sessionID, list); err != nil {
		return nil, err
	}
	return list, nil
}
