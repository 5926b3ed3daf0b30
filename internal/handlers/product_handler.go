package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/service"
	"github.com/go-chi/chi/v5"
)

// ProductHandler serves the stub products resource
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the collection routes on r
func (h *ProductHandler) Register(r chi.Router) {
	r.Get("/", h.ListProducts)
	r.Post("/", h.CreateProduct)
	r.Delete("/{productId}", h.DeleteProduct)
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, products, h.logger)
}

// CreateProduct handles POST /api/products
// - 201: created, body is the stored product
// - 400: body missing or without a name
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input models.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Warn("failed to decode product", "error", err)
		WriteError(w, http.StatusBadRequest, "No data provided", h.logger)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), input)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidProduct) {
			WriteError(w, http.StatusBadRequest, "Missing name", h.logger)
			return
		}
		h.logger.Error("failed to create product", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	h.logger.Info("product created", "productId", product.ID, "name", product.Name)
	WriteJSON(w, http.StatusCreated, product, h.logger)
}

// DeleteProduct handles DELETE /api/products/{productId}
// - 200: deleted
// - 400: Invalid ID supplied
// - 404: Product not found
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	// Ids handed out by the stub are integers
	if _, err := strconv.ParseInt(productID, 10, 64); err != nil {
		h.logger.Warn("invalid product ID format", "productId", productID, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	err := h.service.DeleteProduct(r.Context(), models.ProductID(productID))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			h.logger.Info("product not found", "productId", productID)
			WriteError(w, http.StatusNotFound, "Product not found", h.logger)
			return
		}

		h.logger.Error("failed to delete product", "productId", productID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	h.logger.Info("product deleted", "productId", productID)
	WriteJSON(w, http.StatusOK, map[string]bool{"success": true}, h.logger)
}
