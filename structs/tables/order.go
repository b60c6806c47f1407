package tables

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	// Table name and identifiers
	tableName   struct{}  `bun:"table:orders,alias:o"`
	Id          uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id" validate:"omitempty,uuid4"`
	OrderNumber string    `bun:"order_number,notnull,unique" json:"order_number" validate:"omitempty,min=5,max=50"`

	// Owner, nil for guest checkouts
	UserId *uuid.UUID `bun:"user_id,type:uuid" json:"user_id,omitempty"`

	// Customer data (encrypted at rest)
	Name  string `bun:"name,notnull" json:"name" validate:"required,min=2,max=100"`
	Email string `bun:"email,notnull" json:"email" validate:"required,email"`
	Phone string `bun:"phone,notnull" json:"phone" validate:"required,min=10,max=20"`
	Note  string `bun:"note" json:"note,omitempty" validate:"omitempty,max=500"` // customer note

	// Address data (reference to Address table)
	AddressId uuid.UUID `bun:"address_id,notnull,type:uuid" json:"address_id" validate:"required,uuid4"`

	// Payment data
	PaymentLink   string        `bun:"payment_link" json:"payment_link,omitempty" validate:"omitempty,url"` // attached later by the payments collaborator
	PaymentStatus PaymentStatus `bun:"payment_status,notnull,default:'unpaid'" json:"payment_status" validate:"required,oneof=unpaid paid"`

	// Order data
	TotalCents uint64      `bun:"total_cents,notnull" json:"total_cents"`
	Status     OrderStatus `bun:"status,notnull,default:'pending'" json:"status" validate:"required,oneof=pending paid processing shipped delivered cancelled refunded"`
	CreatedAt  time.Time   `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time   `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
	DeletedAt  *time.Time  `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
}

type OrderLine struct {
	tableName struct{}  `bun:"table:order_lines,alias:ol"`
	Id        uuid.UUID `bun:"id,pk,notnull" json:"id" validate:"omitempty,uuid4"`
	OrderId   uuid.UUID `bun:"order_id,notnull,type:uuid" json:"order_id" validate:"required,uuid4"`
	ProductId uuid.UUID `bun:"product_id,notnull,type:uuid" json:"product_id" validate:"required,uuid4"`
	VariantId uuid.UUID `bun:"variant_id,notnull,type:uuid" json:"variant_id" validate:"required,uuid4"`
	Quantity  int       `bun:"quantity,notnull" json:"quantity" validate:"required,min=1"`

	// Snapshot of the variant at time of order
	UnitPrice uint64 `bun:"unit_price,notnull" json:"unit_price" validate:"required,gte=0"` // price when ordered
	LineTotal uint64 `bun:"line_total,notnull" json:"line_total" validate:"required,gte=0"` // quantity * unit_price
	Size      string `bun:"size,notnull" json:"size"`
	Colour    string `bun:"colour,notnull" json:"colour"`

	// Keep reference to product for name/code changes
	ProductName string `bun:"product_name,notnull" json:"product_name" validate:"required,min=2,max=200"` // name when ordered
	ProductCode string `bun:"product_code,notnull" json:"product_code" validate:"required,min=3,max=50"`  // code when ordered
}

type Address struct {
	tableName struct{}   `bun:"table:addresses,alias:a"`
	Id        uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserId    *uuid.UUID `bun:"user_id,type:uuid" json:"user_id,omitempty"` // nullable for guest orders
	Address1  string     `bun:"address1,notnull" json:"address1"`
	Address2  string     `bun:"address2" json:"address2,omitempty"`
	City      string     `bun:"city,notnull" json:"city"`
	State     string     `bun:"state,notnull" json:"state"`
	Pincode   string     `bun:"pincode,notnull" json:"pincode"`
	Country   string     `bun:"country,notnull" json:"country"` // "IN"
	CreatedAt time.Time  `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,notnull,default:now()" json:"updated_at"`
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)
