package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"

	"kalini_server/database"
	"kalini_server/lib"
	"kalini_server/structs/tables"
)

type ProductService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewProductService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *ProductService {
	return &ProductService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

// ProductListOptions contains filtering and pagination options for product queries
type ProductListOptions struct {
	// Pagination
	Page     int `json:"page"`
	PageSize int `json:"page_size"`

	// Filters
	IsActive   *bool    `json:"is_active,omitempty"`
	Category   string   `json:"category,omitempty"`
	Material   string   `json:"material,omitempty"`
	MinPrice   *uint64  `json:"min_price,omitempty"` // cents, against the variant minimum
	MaxPrice   *uint64  `json:"max_price,omitempty"`
	SearchTerm string   `json:"search_term,omitempty"` // matches name, description, product code
	Codes      []string `json:"codes,omitempty"`       // filter by product codes

	// Sorting
	SortBy        string `json:"sort_by"`        // created_at, name
	SortDirection string `json:"sort_direction"` // ASC or DESC

	// Relations
	IncludeVariants bool `json:"include_variants"`
	IncludeImages   bool `json:"include_images"`

	// Performance
	Timeout time.Duration `json:"-"`
}

// ProductListResult wraps the product list response with metadata
type ProductListResult struct {
	Products   []tables.Product    `json:"products"`
	Pagination database.Pagination `json:"pagination"`
	Filters    ProductListOptions  `json:"filters"`
	QueryTime  time.Duration       `json:"query_time"`
}

// cacheKey builds a stable cache key from the options that shape the result
func (opts *ProductListOptions) cacheKey() string {
	active := "any"
	if opts.IsActive != nil {
		active = fmt.Sprintf("%v", *opts.IsActive)
	}
	return fmt.Sprintf("p%d:s%d:a%s:c%s:m%s:q%s:o%s-%s:v%v:i%v",
		opts.Page, opts.PageSize, active,
		strings.ToLower(opts.Category), strings.ToLower(opts.Material),
		strings.ToLower(opts.SearchTerm),
		opts.SortBy, opts.SortDirection,
		opts.IncludeVariants, opts.IncludeImages,
	)
}

// GetAllProducts retrieves products with filtering, pagination, and caching
func (ps *ProductService) GetAllProducts(ctx context.Context, opts *ProductListOptions) (*ProductListResult, error) {
	startTime := time.Now()

	if opts == nil {
		opts = &ProductListOptions{}
	}
	ps.applyDefaultOptions(opts)

	if err := ps.validateOptions(opts); err != nil {
		ps.logger.Error("Invalid product list options", gecho.Field("error", err))
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	queryCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		queryCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	query := database.Query[tables.Product](ps.db)
	query = ps.applyFilters(query, opts)
	query = ps.applySorting(query, opts)

	if opts.IncludeVariants {
		query = query.Relation("Variants")
	}
	if opts.IncludeImages {
		query = query.Relation("Images")
	}

	result, err := database.Paginate(query, queryCtx, opts.Page, opts.PageSize)
	if err != nil {
		ps.logger.Error("Failed to fetch products",
			gecho.Field("error", err),
			gecho.Field("page", opts.Page),
			gecho.Field("duration", time.Since(startTime)))
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	ps.logger.Debug("Products fetched successfully",
		gecho.Field("count", len(result.Data)),
		gecho.Field("total", result.Pagination.Total),
		gecho.Field("duration", time.Since(startTime)),
	)

	return &ProductListResult{
		Products:   result.Data,
		Pagination: result.Pagination,
		Filters:    *opts,
		QueryTime:  time.Since(startTime),
	}, nil
}

// GetActiveProducts lists storefront-visible products with caching
func (ps *ProductService) GetActiveProducts(ctx context.Context, opts *ProductListOptions) (*ProductListResult, error) {
	if opts == nil {
		opts = &ProductListOptions{}
	}
	active := true
	opts.IsActive = &active

	ps.applyDefaultOptions(opts)
	key := opts.cacheKey()

	cached, err := ps.cacheService.GetProductList(key)
	if err != nil {
		ps.logger.Warn("Failed to read product list cache", gecho.Field("error", err))
	} else if cached != nil {
		return &ProductListResult{
			Products: cached,
			Pagination: database.Pagination{
				Page:     opts.Page,
				PageSize: opts.PageSize,
				Total:    len(cached),
			},
			Filters: *opts,
		}, nil
	}

	result, err := ps.GetAllProducts(ctx, opts)
	if err != nil {
		return nil, err
	}

	// Cache asynchronously; a failed write only costs the next reader a query
	go func() {
		if err := ps.cacheService.SetProductList(key, result.Products); err != nil {
			ps.logger.Warn("Failed to cache product list", gecho.Field("error", err))
		}
	}()

	return result, nil
}

// GetProductBySlug resolves a storefront URL to a product with variants and
// images preloaded. Lookup falls through slug, then id, then product code,
// so stale links and code-based links keep working.
func (ps *ProductService) GetProductBySlug(ctx context.Context, slug string) (*tables.Product, error) {
	startTime := time.Now()

	cached, err := ps.cacheService.GetProductBySlug(slug)
	if err != nil {
		ps.logger.Warn("Failed to read product cache", gecho.Field("error", err), gecho.Field("slug", slug))
	} else if cached != nil {
		return cached, nil
	}

	product, err := ps.lookupBySlugChain(ctx, slug)
	if err != nil {
		ps.logger.Error("Failed to fetch product",
			gecho.Field("slug", slug),
			gecho.Field("error", err),
			gecho.Field("duration", time.Since(startTime)),
		)
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	if product == nil {
		return nil, lib.ErrNotFound
	}

	go func() {
		if err := ps.cacheService.SetProductBySlug(slug, product); err != nil {
			ps.logger.Warn("Failed to cache product", gecho.Field("error", err), gecho.Field("slug", slug))
		}
	}()

	ps.logger.Debug("Product fetched",
		gecho.Field("slug", slug),
		gecho.Field("duration", time.Since(startTime)),
	)
	return product, nil
}

// GetProductByID fetches a product with variants and images preloaded
func (ps *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*tables.Product, error) {
	product, err := ps.detailQuery().Where("id", id).First(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	if product == nil {
		return nil, lib.ErrNotFound
	}
	return product, nil
}

func (ps *ProductService) lookupBySlugChain(ctx context.Context, slug string) (*tables.Product, error) {
	product, err := ps.detailQuery().Where("slug", slug).First(ctx)
	if err != nil || product != nil {
		return product, err
	}

	if id, parseErr := uuid.Parse(slug); parseErr == nil {
		product, err = ps.detailQuery().Where("id", id).First(ctx)
		if err != nil || product != nil {
			return product, err
		}
	}

	return ps.detailQuery().WhereRaw("LOWER(product_code) = ?", strings.ToLower(slug)).First(ctx)
}

func (ps *ProductService) detailQuery() *database.QueryBuilder[tables.Product] {
	return database.Query[tables.Product](ps.db).
		Relation("Variants").
		Relation("Images").
		Timeout(5 * time.Second)
}

// GetVariantsByIds fetches variants by id, keyed for order validation
func (ps *ProductService) GetVariantsByIds(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]tables.ProductVariant, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]tables.ProductVariant{}, nil
	}

	variants, err := database.Query[tables.ProductVariant](ps.db).
		WhereIn("id", ids).
		Timeout(5 * time.Second).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch variants: %w", err)
	}

	byID := make(map[uuid.UUID]tables.ProductVariant, len(variants))
	for _, v := range variants {
		byID[v.ID] = v
	}
	return byID, nil
}

// CreateProduct inserts a product with its variants and images in one
// transaction. The slug and product code are generated here, not accepted
// from the caller.
func (ps *ProductService) CreateProduct(ctx context.Context, product *tables.Product) (*tables.Product, error) {
	code, err := lib.GenerateProductCode(product.Name, 4)
	if err != nil {
		return nil, fmt.Errorf("failed to generate product code: %w", err)
	}
	product.ProductCode = code
	product.Slug = lib.MakeProductSlug(product.Name, code)

	created, err := database.TransactionWithResult(ctx, func(tx database.Tx) (*tables.Product, error) {
		inserted, err := database.QueryTx[tables.Product](tx).Insert(ctx, product)
		if err != nil {
			return nil, lib.MapPgError(err)
		}

		for i := range inserted.Variants {
			inserted.Variants[i].ProductID = inserted.ID
		}
		if _, err := database.QueryTx[tables.ProductVariant](tx).InsertMany(ctx, inserted.Variants); err != nil {
			return nil, lib.MapPgError(err)
		}

		for i := range inserted.Images {
			inserted.Images[i].ProductID = inserted.ID
		}
		if _, err := database.QueryTx[tables.ProductImage](tx).InsertMany(ctx, inserted.Images); err != nil {
			return nil, lib.MapPgError(err)
		}

		return inserted, nil
	})
	if err != nil {
		ps.logger.Error("Failed to create product", gecho.Field("error", err), gecho.Field("name", product.Name))
		return nil, err
	}

	ps.invalidateCache()
	ps.logger.Info("Product created", gecho.Field("id", created.ID), gecho.Field("code", created.ProductCode))
	return created, nil
}

// UpdateProduct applies a partial update to a product
func (ps *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, values map[string]any) (*tables.Product, error) {
	values["updated_at"] = time.Now()

	affected, err := database.Query[tables.Product](ps.db).
		Where("id", id).
		Update(ctx, values)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if affected == 0 {
		return nil, lib.ErrNotFound
	}

	ps.invalidateCache()
	return database.FindByID[tables.Product](ps.db, ctx, id)
}

// UpdateVariantStock sets the stock level of one variant
func (ps *ProductService) UpdateVariantStock(ctx context.Context, variantID uuid.UUID, stock uint16) error {
	affected, err := database.Query[tables.ProductVariant](ps.db).
		Where("id", variantID).
		Update(ctx, map[string]any{"stock": stock})
	if err != nil {
		return lib.MapPgError(err)
	}
	if affected == 0 {
		return lib.ErrVariantNotFound
	}

	ps.invalidateCache()
	return nil
}

// DeleteProduct deactivates a product; rows are kept for order history
func (ps *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	affected, err := database.Query[tables.Product](ps.db).
		Where("id", id).
		Update(ctx, map[string]any{"is_active": false, "updated_at": time.Now()})
	if err != nil {
		return lib.MapPgError(err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}

	ps.invalidateCache()
	ps.logger.Info("Product deactivated", gecho.Field("id", id))
	return nil
}

func (ps *ProductService) invalidateCache() {
	go func() {
		if err := ps.cacheService.InvalidateProducts(); err != nil {
			ps.logger.Warn("Failed to invalidate product cache", gecho.Field("error", err))
		}
	}()
}

func (ps *ProductService) applyDefaultOptions(opts *ProductListOptions) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PageSize < 1 {
		opts.PageSize = 20
	}
	if opts.PageSize > 100 {
		opts.PageSize = 100
	}
	if opts.SortBy == "" {
		opts.SortBy = "created_at"
	}
	if opts.SortDirection == "" {
		opts.SortDirection = "DESC"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
}

func (ps *ProductService) validateOptions(opts *ProductListOptions) error {
	switch opts.SortBy {
	case "created_at", "updated_at", "name":
	default:
		return fmt.Errorf("unsupported sort field: %s", opts.SortBy)
	}
	switch strings.ToUpper(opts.SortDirection) {
	case "ASC", "DESC":
	default:
		return fmt.Errorf("unsupported sort direction: %s", opts.SortDirection)
	}
	if opts.MinPrice != nil && opts.MaxPrice != nil && *opts.MinPrice > *opts.MaxPrice {
		return fmt.Errorf("min_price exceeds max_price")
	}
	return nil
}

func (ps *ProductService) applyFilters(query *database.QueryBuilder[tables.Product], opts *ProductListOptions) *database.QueryBuilder[tables.Product] {
	if opts.IsActive != nil {
		query = query.Where("is_active", *opts.IsActive)
	}
	if opts.Category != "" {
		query = query.WhereRaw("LOWER(category) = ?", strings.ToLower(opts.Category))
	}
	if opts.Material != "" {
		query = query.WhereRaw("LOWER(material) = ?", strings.ToLower(opts.Material))
	}
	if opts.SearchTerm != "" {
		pattern := "%" + strings.ToLower(opts.SearchTerm) + "%"
		query = query.WhereRaw(
			"(LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(product_code) LIKE ?)",
			pattern, pattern, pattern,
		)
	}
	if len(opts.Codes) > 0 {
		query = query.WhereIn("product_code", opts.Codes)
	}
	if opts.MinPrice != nil {
		query = query.WhereRaw(
			"id IN (SELECT product_id FROM product_variants GROUP BY product_id HAVING MIN(price) >= ?)",
			*opts.MinPrice,
		)
	}
	if opts.MaxPrice != nil {
		query = query.WhereRaw(
			"id IN (SELECT product_id FROM product_variants GROUP BY product_id HAVING MIN(price) <= ?)",
			*opts.MaxPrice,
		)
	}
	return query
}

func (ps *ProductService) applySorting(query *database.QueryBuilder[tables.Product], opts *ProductListOptions) *database.QueryBuilder[tables.Product] {
	direction := database.ASC
	if strings.ToUpper(opts.SortDirection) == "DESC" {
		direction = database.DESC
	}
	return query.OrderBy(opts.SortBy, direction)
}
