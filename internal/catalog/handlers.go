package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/naeemhossain01/flexfume-backend/internal/common"
	dbgen "github.com/naeemhossain01/flexfume-backend/internal/db/gen"
)

// Handler exposes public catalog reads and admin catalog management.
type Handler struct {
	Q        dbgen.Querier
	Svc      *Service
	Validate *validator.Validate
}

type productPayload struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	CategoryID  string          `json:"categoryId" validate:"omitempty,uuid"`
}

type categoryPayload struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type discountPayload struct {
	ProductID  string `json:"productId" validate:"required,uuid"`
	Percentage int32  `json:"percentage" validate:"gte=0,lte=100"`
}

// GetProduct returns one product with discount pricing.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := common.ToUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	product, err := h.Svc.Product(r.Context(), id)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, product)
}

// ListProducts returns the whole catalog.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Svc.Products(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, products)
}

// ListProductsByCategory returns products in one category.
func (h *Handler) ListProductsByCategory(w http.ResponseWriter, r *http.Request) {
	id, err := common.ToUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	products, err := h.Svc.ProductsByCategory(r.Context(), id)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, products)
}

// SearchProducts matches products by name.
func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Svc.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, products)
}

// CreateProduct adds a product to the catalog.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	params, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}
	product, err := h.Q.CreateProduct(r.Context(), dbgen.CreateProductParams{
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
		ImageUrl:    params.ImageUrl,
		CategoryID:  params.CategoryID,
	})
	if err != nil {
		common.WriteError(w, common.Internal(err))
		return
	}
	h.Svc.InvalidateProduct(r.Context(), product.ID)
	common.JSON(w, http.StatusCreated, productFromModel(product, 0))
}

// UpdateProduct mutates a catalog product.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := common.ToUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	params, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}
	product, err := h.Q.UpdateProduct(r.Context(), dbgen.UpdateProductParams{
		ID:          id,
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
		ImageUrl:    params.ImageUrl,
		CategoryID:  params.CategoryID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.WriteError(w, common.NotFound("product not found"))
			return
		}
		common.WriteError(w, common.Internal(err))
		return
	}
	h.Svc.InvalidateProduct(r.Context(), product.ID)
	common.JSON(w, http.StatusOK, productFromModel(product, 0))
}

// DeleteProduct removes a product.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := common.ToUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	deleted, err := h.Q.DeleteProduct(r.Context(), id)
	if err != nil {
		common.WriteError(w, common.Internal(err))
		return
	}
	if deleted == 0 {
		common.WriteError(w, common.NotFound("product not found"))
		return
	}
	h.Svc.InvalidateProduct(r.Context(), id)
	common.JSON(w, http.StatusOK, "product deleted")
}

// ListCategories returns all categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Q.ListCategories(r.Context())
	if err != nil {
		common.WriteError(w, common.Internal(err))
		return
	}
	out := make([]Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, categoryFromModel(row))
	}
	common.JSON(w, http.StatusOK, out)
}

// GetCategory returns one category.
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := common.ToUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	row, err := h.Q.GetCategoryByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.WriteError(w, common.NotFound("category not found"))
			return
		}
		common.WriteError(w, common.Internal(err))
		return
	}
	common.JSON(w, http.StatusOK, categoryFromModel(row))
}

// CreateCategory adds a category.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var payload categoryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Validate.Struct(payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	row, err := h.Q.CreateCategory(r.Context(), dbgen.CreateCategoryParams{
		Name:        strings.TrimSpace(payload.Name),
		Description: textOrNull(payload.Description),
	})
	if err != nil {
		common.WriteError(w, common.Internal(err))
		return
	}
	common.JSON(w, http.StatusCreated, categoryFromModel(row))
}

// UpdateCategory mutates a category.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := common.ToUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	var payload categoryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Validate.Struct(payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	row, err := h.Q.UpdateCategory(r.Context(), dbgen.UpdateCategoryParams{
		ID:          id,
		Name:        strings.TrimSpace(payload.Name),
		Description: textOrNull(payload.Description),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.WriteError(w, common.NotFound("category not found"))
			return
		}
		common.WriteError(w, common.Internal(err))
		return
	}
	common.JSON(w, http.StatusOK, categoryFromModel(row))
}

// DeleteCategory removes a category.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := common.ToUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	deleted, err := h.Q.DeleteCategory(r.Context(), id)
	if err != nil {
		common.WriteError(w, common.Internal(err))
		return
	}
	if deleted == 0 {
		common.WriteError(w, common.NotFound("category not found"))
		return
	}
	common.JSON(w, http.StatusOK, "category deleted")
}

// UpsertDiscount sets the discount percentage on a product.
func (h *Handler) UpsertDiscount(w http.ResponseWriter, r *http.Request) {
	var payload discountPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Validate.Struct(payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	productID, err := common.ToUUID(payload.ProductID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	if _, err := h.Q.GetProductByID(r.Context(), productID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.WriteError(w, common.NotFound("product not found"))
			return
		}
		common.WriteError(w, common.Internal(err))
		return
	}
	row, err := h.Q.UpsertDiscount(r.Context(), dbgen.UpsertDiscountParams{ProductID: productID, Percentage: payload.Percentage})
	if err != nil {
		common.WriteError(w, common.Internal(err))
		return
	}
	h.Svc.InvalidateProduct(r.Context(), productID)
	common.JSON(w, http.StatusOK, map[string]any{
		"id":         common.UUIDString(row.ID),
		"productId":  common.UUIDString(row.ProductID),
		"percentage": row.Percentage,
	})
}

// DeleteDiscount removes a product discount.
func (h *Handler) DeleteDiscount(w http.ResponseWriter, r *http.Request) {
	id, err := common.ToUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid discount id")
		return
	}
	deleted, err := h.Q.DeleteDiscount(r.Context(), id)
	if err != nil {
		common.WriteError(w, common.Internal(err))
		return
	}
	if deleted == 0 {
		common.WriteError(w, common.NotFound("discount not found"))
		return
	}
	common.JSON(w, http.StatusOK, "discount deleted")
}

func (h *Handler) decodeProduct(w http.ResponseWriter, r *http.Request) (dbgen.CreateProductParams, bool) {
	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid payload")
		return dbgen.CreateProductParams{}, false
	}
	if err := h.Validate.Struct(payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, err.Error())
		return dbgen.CreateProductParams{}, false
	}
	if payload.Price.IsNegative() {
		common.JSONError(w, http.StatusBadRequest, "price must not be negative")
		return dbgen.CreateProductParams{}, false
	}
	params := dbgen.CreateProductParams{
		Name:        strings.TrimSpace(payload.Name),
		Description: textOrNull(payload.Description),
		Price:       payload.Price,
		ImageUrl:    textOrNull(payload.ImageURL),
	}
	if payload.CategoryID != "" {
		id, err := common.ToUUID(payload.CategoryID)
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, "invalid category id")
			return dbgen.CreateProductParams{}, false
		}
		params.CategoryID = id
	}
	return params, true
}

func textOrNull(v string) pgtype.Text {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: trimmed, Valid: true}
}
