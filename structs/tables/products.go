package tables

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	tableName   struct{}  `bun:"table:products,alias:p"`
	ID          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	ProductCode string    `bun:"product_code,notnull,unique" json:"product_code"` // catalog identifier, e.g. KUR-7F3A
	Slug        string    `bun:"slug,notnull,unique" json:"slug"`
	Name        string    `bun:"name,notnull" json:"name"`
	Material    string    `bun:"material" json:"material,omitempty"` // e.g. "Cotton", "Silk Blend"
	Category    string    `bun:"category,notnull" json:"category"`   // e.g. "kurta-sets", "sale"
	Description string    `bun:"description,notnull" json:"description"`
	IsActive    bool      `bun:"is_active,notnull" json:"is_active"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:now()" json:"updated_at"`

	Variants []ProductVariant `bun:"rel:has-many,join:id=product_id" json:"variants,omitempty"`
	Images   []ProductImage   `bun:"rel:has-many,join:id=product_id" json:"images,omitempty"` // slice is nil if no images
}

// ProductVariant is one purchasable SKU of a product: a (size, colour) pair
// with its own stock and price. Size and colour are free-text catalog labels
// matched by normalized equality, never byte equality.
type ProductVariant struct {
	tableName struct{}  `bun:"table:product_variants,alias:pv"`
	ID        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ProductID uuid.UUID `bun:"product_id,type:uuid,notnull" json:"product_id"`
	Size      string    `bun:"size,notnull" json:"size"`
	Colour    string    `bun:"colour,notnull" json:"colour"`
	Stock     uint16    `bun:"stock" json:"stock"`         // uint16 for higher inventory
	Price     uint64    `bun:"price,notnull" json:"price"` // stored in cents
	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:now()" json:"updated_at"`

	Images []ProductImage `bun:"rel:has-many,join:id=variant_id" json:"images,omitempty"`
}

// ProductImage represents an image for a product. An image may be scoped to a
// single variant (VariantID set), to a colour across variants (Colour set), or
// belong to the product's default gallery (neither set).
type ProductImage struct {
	tableName struct{}   `bun:"table:product_images,alias:pi"`
	ID        uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ProductID uuid.UUID  `bun:"product_id,type:uuid,notnull" json:"product_id"`
	VariantID *uuid.UUID `bun:"variant_id,type:uuid" json:"variant_id,omitempty"`
	Colour    string     `bun:"colour" json:"colour,omitempty"`
	URL       string     `bun:"url,notnull" json:"url"`
	AltText   string     `bun:"alt_text" json:"alt_text,omitempty"` // optional, empty string if none
	Position  int        `bun:"position" json:"position"`
	IsPrimary bool       `bun:"is_primary,notnull" json:"is_primary"`
}
