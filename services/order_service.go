package services

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"

	"kalini_server/database"
	"kalini_server/lib"
	"kalini_server/structs"
	"kalini_server/structs/tables"
)

type OrderService struct {
	logger         *gecho.Logger
	cfg            *structs.Config
	db             *database.DB
	productService *ProductService
	emailService   *EmailService
}

func NewOrderService(
	logger *gecho.Logger,
	cfg *structs.Config,
	db *database.DB,
	productService *ProductService,
	emailService *EmailService,
) *OrderService {
	return &OrderService{
		logger:         logger,
		cfg:            cfg,
		db:             db,
		productService: productService,
		emailService:   emailService,
	}
}

// CreateOrderFromRequest creates a complete order with address and order
// lines in one transaction. Stock is checked and decremented inside the same
// transaction, so two checkouts racing for the last piece cannot both win.
// Prices come from the variant rows, never from the request.
func (os *OrderService) CreateOrderFromRequest(ctx context.Context, req *structs.OrderRequest, userId *uuid.UUID) (order *tables.Order, err error) {
	os.logger.Info("Creating order", gecho.Field("items", len(req.Items)))

	tx, err := os.db.BeginTx(ctx, nil)
	if err != nil {
		os.logger.Error("Failed to begin transaction", gecho.Field("error", err))
		return nil, lib.MapPgError(err)
	}

	defer func() {
		if p := recover(); p != nil {
			os.logger.Error(fmt.Sprintf("Panic recovered in order creation: %v", p),
				gecho.Field("stack_trace", string(debug.Stack())))
			tx.Rollback()
			err = fmt.Errorf("panic recovered: %v", p)
		} else if err != nil {
			tx.Rollback()
		}
	}()

	lines, total, buildErr := os.buildOrderLines(ctx, tx, req)
	if buildErr != nil {
		err = buildErr
		return nil, err
	}

	// Encrypt contact details before anything touches a table
	encryptedName, err := lib.Encrypt(req.Name, os.cfg.Encryption.Key)
	if err != nil {
		os.logger.Error("Failed to encrypt name", gecho.Field("error", err))
		return nil, err
	}
	encryptedEmail, err := lib.Encrypt(req.Email, os.cfg.Encryption.Key)
	if err != nil {
		os.logger.Error("Failed to encrypt email", gecho.Field("error", err))
		return nil, err
	}
	encryptedPhone, err := lib.Encrypt(req.Phone, os.cfg.Encryption.Key)
	if err != nil {
		os.logger.Error("Failed to encrypt phone", gecho.Field("error", err))
		return nil, err
	}
	encryptedNote, err := lib.Encrypt(lib.SanitizeString(req.CustomerNote), os.cfg.Encryption.Key)
	if err != nil {
		os.logger.Error("Failed to encrypt note", gecho.Field("error", err))
		return nil, err
	}

	country := req.Country
	if country == "" {
		country = "IN"
	}

	address := &tables.Address{
		UserId:   userId,
		Address1: lib.SanitizeString(req.Address1),
		Address2: lib.SanitizeString(req.Address2),
		City:     lib.SanitizeString(req.City),
		State:    lib.SanitizeString(req.State),
		Pincode:  req.Pincode,
		Country:  country,
	}
	address, err = database.QueryTx[tables.Address](tx).Insert(ctx, address)
	if err != nil {
		err = lib.MapPgError(err)
		return nil, err
	}

	order = &tables.Order{
		OrderNumber:   lib.GenerateOrderNumber(),
		UserId:        userId,
		Name:          encryptedName,
		Email:         encryptedEmail,
		Phone:         encryptedPhone,
		Note:          encryptedNote,
		AddressId:     address.Id,
		PaymentStatus: tables.PaymentStatusUnpaid,
		TotalCents:    total,
		Status:        tables.OrderStatusPending,
	}
	order, err = database.QueryTx[tables.Order](tx).Insert(ctx, order)
	if err != nil {
		err = lib.MapPgError(err)
		return nil, err
	}

	for i := range lines {
		lines[i].OrderId = order.Id
	}
	if _, err = database.QueryTx[tables.OrderLine](tx).InsertMany(ctx, lines); err != nil {
		err = lib.MapPgError(err)
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		os.logger.Error("Failed to commit order transaction", gecho.Field("error", err))
		return nil, lib.MapPgError(err)
	}

	os.logger.Info("Order created",
		gecho.Field("order_number", order.OrderNumber),
		gecho.Field("lines", len(lines)),
		gecho.Field("total_cents", total),
	)

	// Confirmation email after commit; a failed email never fails the order
	go os.emailService.SendOrderConfirmation(req.Email, req.Name, order, lines)

	// Listings still show the old stock until the cache drops
	os.productService.invalidateCache()

	return order, nil
}

// buildOrderLines validates every requested variant and decrements its stock
// within the transaction, returning priced line snapshots and the total.
func (os *OrderService) buildOrderLines(ctx context.Context, tx database.Tx, req *structs.OrderRequest) ([]tables.OrderLine, uint64, error) {
	lines := make([]tables.OrderLine, 0, len(req.Items))
	var total uint64

	for _, item := range req.Items {
		variantId, err := uuid.Parse(item.VariantId)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid variant ID: %s", item.VariantId)
		}
		productId, err := uuid.Parse(item.ProductId)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid product ID: %s", item.ProductId)
		}

		variant, err := database.QueryTx[tables.ProductVariant](tx).
			Where("id", variantId).
			First(ctx)
		if err != nil {
			return nil, 0, lib.MapPgError(err)
		}
		if variant == nil || variant.ProductID != productId {
			return nil, 0, lib.ErrVariantNotFound
		}

		product, err := database.QueryTx[tables.Product](tx).
			Where("id", productId).
			First(ctx)
		if err != nil {
			return nil, 0, lib.MapPgError(err)
		}
		if product == nil || !product.IsActive {
			return nil, 0, fmt.Errorf("product is no longer available: %w", lib.ErrNotFound)
		}

		// Guarded in-place decrement; zero rows affected means another
		// checkout took the stock between our read and this update
		res, err := tx.NewUpdate().
			Model((*tables.ProductVariant)(nil)).
			Set("stock = stock - ?", item.Quantity).
			Where("id = ?", variantId).
			Where("stock >= ?", item.Quantity).
			Exec(ctx)
		if err != nil {
			return nil, 0, lib.MapPgError(err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, 0, err
		}
		if affected == 0 {
			os.logger.Warn("Insufficient stock for order item",
				gecho.Field("variant_id", variantId),
				gecho.Field("requested", item.Quantity),
			)
			return nil, 0, fmt.Errorf("%s (%s/%s): %w", product.Name, variant.Size, variant.Colour, lib.ErrInsufficientStock)
		}

		lineTotal := variant.Price * uint64(item.Quantity)
		total += lineTotal

		lines = append(lines, tables.OrderLine{
			ProductId:   productId,
			VariantId:   variantId,
			Quantity:    item.Quantity,
			UnitPrice:   variant.Price,
			LineTotal:   lineTotal,
			Size:        variant.Size,
			Colour:      variant.Colour,
			ProductName: product.Name,
			ProductCode: product.ProductCode,
		})
	}

	return lines, total, nil
}

// GetOrdersByUserId lists a customer's orders, newest first, excluding
// soft-deleted rows. Contact fields are decrypted for the owner.
func (os *OrderService) GetOrdersByUserId(ctx context.Context, userId uuid.UUID) ([]tables.Order, error) {
	query := database.Query[tables.Order](os.db).
		Where("user_id", userId).
		OrderBy("created_at", database.DESC).
		Timeout(5 * time.Second)

	orders, err := database.ExcludeSoftDeleted(query).All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	for i := range orders {
		if err := os.decryptOrder(&orders[i]); err != nil {
			os.logger.Error("Failed to decrypt order", gecho.Field("order_id", orders[i].Id), gecho.Field("error", err))
			return nil, err
		}
	}

	return orders, nil
}

// GetOrderById fetches one order with its lines, scoped to the owner when
// ownerId is set so customers cannot read each other's orders.
func (os *OrderService) GetOrderById(ctx context.Context, orderId uuid.UUID, ownerId *uuid.UUID) (*tables.Order, []tables.OrderLine, error) {
	query := database.Query[tables.Order](os.db).
		Where("id", orderId).
		Timeout(5 * time.Second)
	if ownerId != nil {
		query = query.Where("user_id", *ownerId)
	}

	order, err := database.ExcludeSoftDeleted(query).First(ctx)
	if err != nil {
		return nil, nil, lib.MapPgError(err)
	}
	if order == nil {
		return nil, nil, lib.ErrNotFound
	}

	if err := os.decryptOrder(order); err != nil {
		return nil, nil, err
	}

	lines, err := os.GetOrderLinesByOrderId(ctx, order.Id)
	if err != nil {
		return nil, nil, err
	}

	return order, lines, nil
}

// GetOrderByNumber fetches one order with its lines by the KL- order number
// customers receive at checkout. The order number is the lookup capability,
// so guest orders stay reachable without an account.
func (os *OrderService) GetOrderByNumber(ctx context.Context, orderNumber string) (*tables.Order, []tables.OrderLine, error) {
	query := database.Query[tables.Order](os.db).
		Where("order_number", strings.ToUpper(strings.TrimSpace(orderNumber))).
		Timeout(5 * time.Second)

	order, err := database.ExcludeSoftDeleted(query).First(ctx)
	if err != nil {
		return nil, nil, lib.MapPgError(err)
	}
	if order == nil {
		return nil, nil, lib.ErrNotFound
	}

	if err := os.decryptOrder(order); err != nil {
		return nil, nil, err
	}

	lines, err := os.GetOrderLinesByOrderId(ctx, order.Id)
	if err != nil {
		return nil, nil, err
	}

	return order, lines, nil
}

// GetOrderLinesByOrderId returns the line snapshots of one order
func (os *OrderService) GetOrderLinesByOrderId(ctx context.Context, orderId uuid.UUID) ([]tables.OrderLine, error) {
	lines, err := database.Query[tables.OrderLine](os.db).
		Where("order_id", orderId).
		Timeout(5 * time.Second).
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return lines, nil
}

// GetAddressById fetches the shipping address attached to an order
func (os *OrderService) GetAddressById(ctx context.Context, addressId uuid.UUID) (*tables.Address, error) {
	address, err := database.FindByID[tables.Address](os.db, ctx, addressId)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if address == nil {
		return nil, lib.ErrNotFound
	}
	return address, nil
}

// ListOrders pages through all orders for the admin surface
func (os *OrderService) ListOrders(ctx context.Context, page, pageSize int) (*database.PaginationResult[tables.Order], error) {
	query := database.Query[tables.Order](os.db).
		OrderBy("created_at", database.DESC).
		Timeout(10 * time.Second)

	result, err := database.Paginate(database.ExcludeSoftDeleted(query), ctx, page, pageSize)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	for i := range result.Data {
		if err := os.decryptOrder(&result.Data[i]); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// UpdateOrderStatus moves an order through its lifecycle
func (os *OrderService) UpdateOrderStatus(ctx context.Context, orderId uuid.UUID, status tables.OrderStatus) error {
	values := map[string]any{
		"status":     status,
		"updated_at": time.Now(),
	}
	if status == tables.OrderStatusPaid {
		values["payment_status"] = tables.PaymentStatusPaid
	}

	affected, err := database.Query[tables.Order](os.db).
		Where("id", orderId).
		Update(ctx, values)
	if err != nil {
		return lib.MapPgError(err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}

	os.logger.Info("Order status updated", gecho.Field("order_id", orderId), gecho.Field("status", status))
	return nil
}

func (os *OrderService) decryptOrder(order *tables.Order) error {
	var err error
	if order.Name, err = lib.Decrypt(order.Name, os.cfg.Encryption.Key); err != nil {
		return err
	}
	if order.Email, err = lib.Decrypt(order.Email, os.cfg.Encryption.Key); err != nil {
		return err
	}
	if order.Phone, err = lib.Decrypt(order.Phone, os.cfg.Encryption.Key); err != nil {
		return err
	}
	if order.Note, err = lib.Decrypt(order.Note, os.cfg.Encryption.Key); err != nil {
		return err
	}
	return nil
}
