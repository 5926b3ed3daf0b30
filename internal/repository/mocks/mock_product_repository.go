package mocks

import (
	"context"

	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, input models.ProductInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id models.ProductID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
