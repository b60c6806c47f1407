package admin

import (
	"net/http"

	"kalini_server/handling"
	"kalini_server/lib"
	"kalini_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CreateVariantRequest struct {
	Size   string `json:"size" validate:"required,min=1,max=20"`
	Colour string `json:"colour" validate:"required,min=1,max=50"`
	Stock  uint16 `json:"stock"`
	Price  uint64 `json:"price" validate:"required,min=1"`
}

type CreateImageRequest struct {
	URL       string `json:"url" validate:"required,url"`
	AltText   string `json:"alt_text,omitempty" validate:"omitempty,max=200"`
	Colour    string `json:"colour,omitempty" validate:"omitempty,max=50"`
	Position  int    `json:"position"`
	IsPrimary bool   `json:"is_primary"`
}

type CreateProductRequest struct {
	Name        string                 `json:"name" validate:"required,min=2,max=200"`
	Category    string                 `json:"category" validate:"required,min=2,max=100"`
	Material    string                 `json:"material,omitempty" validate:"omitempty,max=100"`
	Description string                 `json:"description" validate:"required,min=2"`
	IsActive    bool                   `json:"is_active"`
	Variants    []CreateVariantRequest `json:"variants" validate:"required,min=1,dive"`
	Images      []CreateImageRequest   `json:"images,omitempty" validate:"omitempty,dive"`
}

type UpdateProductRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Category    *string `json:"category,omitempty" validate:"omitempty,min=2,max=100"`
	Material    *string `json:"material,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=2"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type UpdateStockRequest struct {
	Stock uint16 `json:"stock"`
}

func (ar *AdminRoutesManager) ListProducts(w http.ResponseWriter, r *http.Request) {
	opts, err := handling.ParseProductListOptions(r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.invalidQueryParameters"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	result, err := ar.productService.GetAllProducts(r.Context(), opts)
	if err != nil {
		ar.logger.Error("Failed to list products", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.products.failedToFetch"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products":   result.Products,
			"pagination": result.Pagination,
		}),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) CreateProduct(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[CreateProductRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.products.checkProductInformation"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	product := &tables.Product{
		ID:          uuid.New(),
		Name:        lib.SanitizeString(body.Name),
		Category:    body.Category,
		Material:    body.Material,
		Description: lib.SanitizeString(body.Description),
		IsActive:    body.IsActive,
	}
	for _, v := range body.Variants {
		product.Variants = append(product.Variants, tables.ProductVariant{
			Size:   v.Size,
			Colour: v.Colour,
			Stock:  v.Stock,
			Price:  v.Price,
		})
	}
	for _, img := range body.Images {
		product.Images = append(product.Images, tables.ProductImage{
			URL:       img.URL,
			AltText:   img.AltText,
			Colour:    img.Colour,
			Position:  img.Position,
			IsPrimary: img.IsPrimary,
		})
	}

	created, err := ar.productService.CreateProduct(r.Context(), product)
	if err != nil {
		if lib.IsUniqueViolation(err) {
			gecho.Conflict(w,
				gecho.WithMessage("error.products.alreadyExists"),
				gecho.Send(),
			)
			return
		}

		ar.logger.Error("Failed to create product", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.products.failedToCreate"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.products.created"),
		gecho.WithData(map[string]any{
			"product": created,
		}),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidProductId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[UpdateProductRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.products.checkProductInformation"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	values := map[string]any{}
	if body.Name != nil {
		values["name"] = lib.SanitizeString(*body.Name)
	}
	if body.Category != nil {
		values["category"] = *body.Category
	}
	if body.Material != nil {
		values["material"] = *body.Material
	}
	if body.Description != nil {
		values["description"] = lib.SanitizeString(*body.Description)
	}
	if body.IsActive != nil {
		values["is_active"] = *body.IsActive
	}
	if len(values) == 0 {
		gecho.BadRequest(w, gecho.WithMessage("error.products.nothingToUpdate"), gecho.Send())
		return
	}

	updated, err := ar.productService.UpdateProduct(r.Context(), id, values)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("error.products.notFound"), gecho.Send())
			return
		}

		ar.logger.Error("Failed to update product", gecho.Field("error", err), gecho.Field("product_id", id))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.products.failedToUpdate"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.products.updated"),
		gecho.WithData(map[string]any{
			"product": updated,
		}),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) UpdateVariantStock(w http.ResponseWriter, r *http.Request) {
	variantId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidVariantId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[UpdateStockRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.products.checkProductInformation"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	if err := ar.productService.UpdateVariantStock(r.Context(), variantId, body.Stock); err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("error.products.variantNotFound"), gecho.Send())
			return
		}

		ar.logger.Error("Failed to update variant stock", gecho.Field("error", err), gecho.Field("variant_id", variantId))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.products.failedToUpdate"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.products.stockUpdated"),
		gecho.Send(),
	)
}

// DeleteProduct deactivates the product. Rows stay in place so order
// history keeps resolving.
func (ar *AdminRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidProductId"), gecho.Send())
		return
	}

	if err := ar.productService.DeleteProduct(r.Context(), id); err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("error.products.notFound"), gecho.Send())
			return
		}

		ar.logger.Error("Failed to delete product", gecho.Field("error", err), gecho.Field("product_id", id))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.products.failedToDelete"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.products.deleted"),
		gecho.Send(),
	)
}
