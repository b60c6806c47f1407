package products

import (
	"net/http"

	"kalini_server/catalog"
	"kalini_server/handling"
	"kalini_server/lib"
	"kalini_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// productSummary decorates a product with fields derived from its variants.
type productSummary struct {
	tables.Product
	Sizes      []string `json:"sizes"`
	Colours    []string `json:"colors"`
	MinPrice   uint64   `json:"min_price"`
	MaxPrice   uint64   `json:"max_price"`
	TotalStock int      `json:"total_stock"`
}

func summarize(product tables.Product) productSummary {
	return productSummary{
		Product:    product,
		Sizes:      catalog.Sizes(product.Variants),
		Colours:    catalog.Colours(product.Variants),
		MinPrice:   catalog.MinPrice(product.Variants),
		MaxPrice:   catalog.MaxPrice(product.Variants),
		TotalStock: catalog.TotalStock(product.Variants),
	}
}

// FetchProducts handles GET /products with filtering, pagination, and sorting
func (prm *ProductRoutesManager) FetchProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	opts, err := handling.ParseProductListOptions(r)
	if err != nil {
		prm.logger.Warn("Invalid query parameters", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("error.invalidQueryParameters"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	prm.logger.Debug("Fetching products",
		gecho.Field("page", opts.Page),
		gecho.Field("page_size", opts.PageSize),
		gecho.Field("category", opts.Category),
	)

	result, err := prm.productService.GetActiveProducts(ctx, opts)
	if err != nil {
		prm.logger.Error("Failed to fetch products", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.products.failedToFetch"),
			gecho.Send(),
		)
		return
	}

	summaries := make([]productSummary, 0, len(result.Products))
	for _, product := range result.Products {
		summaries = append(summaries, summarize(product))
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products":   summaries,
			"pagination": result.Pagination,
			"filters":    result.Filters,
			"meta": map[string]any{
				"query_time_ms": result.QueryTime.Milliseconds(),
				"count":         len(summaries),
			},
		}),
		gecho.Send(),
	)
}

// FetchProductBySlug handles GET /products/{slug}. The lookup falls back
// from slug to id to product code.
func (prm *ProductRoutesManager) FetchProductBySlug(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	slug := chi.URLParam(r, "slug")
	if slug == "" {
		gecho.BadRequest(w,
			gecho.WithMessage("error.products.slugRequired"),
			gecho.Send(),
		)
		return
	}

	product, err := prm.productService.GetProductBySlug(ctx, slug)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w,
				gecho.WithMessage("error.products.notFound"),
				gecho.Send(),
			)
			return
		}

		prm.logger.Error("Failed to fetch product", gecho.Field("slug", slug), gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.products.failedToFetchOne"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"product": summarize(*product),
		}),
		gecho.Send(),
	)
}
