package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/iudanet/apistarter/internal/models"
	"github.com/iudanet/apistarter/internal/server/storage"
	"github.com/iudanet/apistarter/pkg/api"
)

// Пагинация каталога
const (
	DefaultLimit  = 10
	MaxLimit      = 100
	DefaultOffset = 0
)

// ProductsHandler обрабатывает запросы каталога товаров
type ProductsHandler struct {
	logger   *slog.Logger
	products storage.ProductStorage
}

// NewProductsHandler создает новый handler для каталога
func NewProductsHandler(logger *slog.Logger, products storage.ProductStorage) *ProductsHandler {
	return &ProductsHandler{
		logger:   logger,
		products: products,
	}
}

// List обрабатывает GET /api/products?limit&offset
// Постраничный список с общим количеством для пагинации
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := queryInt(r, "limit", DefaultLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset := queryInt(r, "offset", DefaultOffset)
	if offset < 0 {
		offset = 0
	}

	totalCount, err := h.products.CountProducts(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to count products", slog.Any("error", err))
		WriteError(w, h.logger, "Database error.", nil, http.StatusInternalServerError)
		return
	}

	products, err := h.products.ListProducts(ctx, limit, offset)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list products", slog.Any("error", err))
		WriteError(w, h.logger, "Database error.", nil, http.StatusInternalServerError)
		return
	}
	if products == nil {
		// Пустая страница сериализуется как [], не null
		products = []*models.Product{}
	}

	WriteSuccess(w, h.logger, "Products retrieved successfully.", api.ProductList{
		Products:   products,
		TotalCount: totalCount,
	}, http.StatusOK)
}

// Get обрабатывает GET /api/product/{id}
func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		WriteError(w, h.logger, "Invalid product id.", nil, http.StatusBadRequest)
		return
	}

	product, err := h.products.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			WriteError(w, h.logger, "Product not found.", nil, http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get product", slog.Any("error", err))
		WriteError(w, h.logger, "Database error.", nil, http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, h.logger, "Product retrieved successfully.", product, http.StatusOK)
}

// queryInt читает целочисленный query параметр с дефолтом
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
