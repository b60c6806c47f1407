package products

import (
	"net/http"

	"kalini_server/catalog"
	"kalini_server/lib"
	"kalini_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// optionView is a single size or colour choice with its availability flag.
type optionView struct {
	Value    string `json:"value"`
	Disabled bool   `json:"disabled"`
}

// FetchSelection handles GET /products/{slug}/selection. It evaluates a
// size/colour selection against the product's variants and returns the
// active variant, price, stock, gallery and per-option availability.
//
// Query parameters:
//
//	size, color          the current selection, either may be empty
//	pick_color, pick_size  apply a pick to the current selection first;
//	                       the other axis is kept when the resulting pair
//	                       has stock, otherwise re-derived
//	show_all             when "true", do not truncate the option lists
func (prm *ProductRoutesManager) FetchSelection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	slug := chi.URLParam(r, "slug")
	product, err := prm.productService.GetProductBySlug(ctx, slug)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w,
				gecho.WithMessage("error.products.notFound"),
				gecho.Send(),
			)
			return
		}

		prm.logger.Error("Failed to fetch product for selection", gecho.Field("slug", slug), gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.products.failedToFetchOne"),
			gecho.Send(),
		)
		return
	}

	query := r.URL.Query()
	variants := product.Variants

	sel := catalog.Selection{
		Size:   query.Get("size"),
		Colour: query.Get("color"),
	}

	// A pick adjusts the selection before anything is derived from it.
	if colour := query.Get("pick_color"); colour != "" {
		sel = catalog.PickColour(variants, sel, colour)
	} else if size := query.Get("pick_size"); size != "" {
		sel = catalog.PickSize(variants, sel, size)
	}

	active := catalog.ResolveVariant(variants, sel)
	state := catalog.StateOf(variants, sel)
	showAll := query.Get("show_all") == "true"

	sizes := catalog.Sizes(variants)
	colours := catalog.Colours(variants)

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"selection":    sel,
			"state":        state,
			"can_purchase": state.CanPurchase(),
			"variant":      active,
			"price":        catalog.Price(variants, active),
			"stock":        catalog.Stock(variants, active),
			"gallery":      catalog.Gallery(product, active, sel),
			"sizes":        sizeViews(variants, sizes, sel, showAll),
			"colors":       colourViews(variants, colours, sel, showAll),
			"truncated": map[string]bool{
				"sizes":  !showAll && len(sizes) > catalog.MaxVisibleOptions,
				"colors": !showAll && len(colours) > catalog.MaxVisibleOptions,
			},
		}),
		gecho.Send(),
	)
}

func sizeViews(variants []tables.ProductVariant, sizes []string, sel catalog.Selection, showAll bool) []optionView {
	views := make([]optionView, 0, len(sizes))
	for _, size := range catalog.VisibleOptions(sizes, showAll) {
		views = append(views, optionView{
			Value:    size,
			Disabled: catalog.SizeDisabled(variants, size, sel),
		})
	}
	return views
}

func colourViews(variants []tables.ProductVariant, colours []string, sel catalog.Selection, showAll bool) []optionView {
	views := make([]optionView, 0, len(colours))
	for _, colour := range catalog.VisibleOptions(colours, showAll) {
		views = append(views, optionView{
			Value:    colour,
			Disabled: catalog.ColourDisabled(variants, colour, sel),
		})
	}
	return views
}
