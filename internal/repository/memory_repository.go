package repository

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/models"
)

var ErrInvalidProduct = errors.New("invalid product")

// InMemoryProductRepository implements ProductRepository with in-memory storage.
// It backs the stub /api/products resource.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
	nextID   int64
}

// NewInMemoryProductRepository creates an empty in-memory product repository
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{nextID: 1}
}

// NewSeededProductRepository creates an in-memory repository with demo data
func NewSeededProductRepository() *InMemoryProductRepository {
	r := NewInMemoryProductRepository()
	seed := []struct {
		name     string
		quantity int
		price    float64
	}{
		{"Filtro de aceite", 24, 8.5},
		{"Pastillas de freno", 12, 32.99},
		{"Bujía", 80, 4.25},
		{"Correa de distribución", 6, 54},
	}
	for _, s := range seed {
		q, p := s.quantity, s.price
		_, _ = r.Add(context.Background(), models.ProductInput{Name: s.name, Quantity: &q, Price: &p})
	}
	return r
}

// GetAll returns all products in creation order
func (r *InMemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, len(r.products))
	copy(products, r.products)
	return products, nil
}

// Create stores a new product, discarding the assigned row
func (r *InMemoryProductRepository) Create(ctx context.Context, input models.ProductInput) error {
	_, err := r.Add(ctx, input)
	return err
}

// Add stores a new product and returns it with its assigned id.
// Missing numbers default to zero the way the products API treats them.
func (r *InMemoryProductRepository) Add(ctx context.Context, input models.ProductInput) (models.Product, error) {
	if input.Name == "" {
		return models.Product{}, ErrInvalidProduct
	}

	product := models.Product{Name: input.Name}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
	if input.Price != nil {
		product.Price = *input.Price
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = models.ProductID(strconv.FormatInt(r.nextID, 10))
	r.nextID++
	r.products = append(r.products, product)
	return product, nil
}

// Delete removes a product by its ID
func (r *InMemoryProductRepository) Delete(ctx context.Context, id models.ProductID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}
