package v1

import (
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"catalog-search-backend/internal/domain"
	"catalog-search-backend/internal/usecase"
	"catalog-search-backend/pkg/utils"
)

type AdminCatalogHandler struct {
	catalogUC *usecase.CatalogUsecase
}

func NewAdminCatalogHandler(uc *usecase.CatalogUsecase) *AdminCatalogHandler {
	return &AdminCatalogHandler{catalogUC: uc}
}

type productReq struct {
	SKU         string  `json:"sku"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Category    string  `json:"category"`
	Color       string  `json:"color"`
	PriceCents  int64   `json:"price_cents"`
	Currency    string  `json:"currency"`
	StockQty    int     `json:"stock_qty"`
}

func (req *productReq) validate() error {
	if req.SKU == "" {
		return domain.NewValidationError("sku", "is required")
	}
	if req.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	if req.Category == "" {
		return domain.NewValidationError("category", "is required")
	}
	if req.Color == "" {
		return domain.NewValidationError("color", "is required")
	}
	if req.PriceCents < 0 {
		return domain.NewValidationError("price_cents", "must be non-negative")
	}
	if req.StockQty < 0 {
		return domain.NewValidationError("stock_qty", "must be non-negative")
	}
	return nil
}

func (req *productReq) toProduct() domain.Product {
	return domain.Product{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Color:       req.Color,
		PriceCents:  req.PriceCents,
		Currency:    req.Currency,
		StockQty:    req.StockQty,
	}
}

func (h *AdminCatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := req.validate(); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	product := req.toProduct()
	if err := h.catalogUC.CreateProduct(r.Context(), &product); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, product)
}

func (h *AdminCatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := req.validate(); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	product := req.toProduct()
	product.ID = id

	if err := h.catalogUC.UpdateProduct(r.Context(), &product); err != nil {
		if domain.IsValidationError(err) {
			utils.WriteError(w, http.StatusNotFound, "Product not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}

	utils.WriteJSON(w, http.StatusOK, product)
}

func (h *AdminCatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	if err := h.catalogUC.DeleteProduct(r.Context(), id); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminCatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, err := h.catalogUC.GetProduct(r.Context(), id)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}
	if product == nil {
		utils.WriteError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, product)
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
