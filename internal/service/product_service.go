package service

import (
	"context"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/repository"
)

// ProductStore is the storage the stub products resource runs on
type ProductStore interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	Add(ctx context.Context, input models.ProductInput) (models.Product, error)
	Delete(ctx context.Context, id models.ProductID) error
}

// ProductService handles business logic for products
type ProductService struct {
	repo ProductStore
}

// NewProductService creates a new product service
func NewProductService(repo ProductStore) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// ListProducts returns all products in storage order
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// CreateProduct stores a new product; the name is the only required field
func (s *ProductService) CreateProduct(ctx context.Context, input models.ProductInput) (models.Product, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return models.Product{}, repository.ErrInvalidProduct
	}
	return s.repo.Add(ctx, input)
}

// DeleteProduct removes a product by ID
func (s *ProductService) DeleteProduct(ctx context.Context, id models.ProductID) error {
	return s.repo.Delete(ctx, id)
}
