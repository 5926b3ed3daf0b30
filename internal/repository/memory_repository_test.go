package repository

import (
	"context"
	"testing"

	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/models"
)

func TestInMemoryProductRepository_AddAssignsSequentialIDs(t *testing.T) {
	repo := NewInMemoryProductRepository()
	ctx := context.Background()

	q, p := 5, 2.5
	first, err := repo.Add(ctx, models.ProductInput{Name: "Widget", Quantity: &q, Price: &p})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	second, err := repo.Add(ctx, models.ProductInput{Name: "Bolt"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if first.ID != "1" || second.ID != "2" {
		t.Errorf("ids = %s, %s, want 1, 2", first.ID, second.ID)
	}
	if second.Quantity != 0 || second.Price != 0 {
		t.Errorf("missing numbers should default to zero, got %d / %v", second.Quantity, second.Price)
	}

	products, _ := repo.GetAll(ctx)
	if len(products) != 2 || products[0].Name != "Widget" {
		t.Errorf("unexpected products %+v", products)
	}
}

func TestInMemoryProductRepository_RejectsEmptyName(t *testing.T) {
	repo := NewInMemoryProductRepository()

	if err := repo.Create(context.Background(), models.ProductInput{}); err != ErrInvalidProduct {
		t.Errorf("Create() error = %v, want %v", err, ErrInvalidProduct)
	}
}

func TestInMemoryProductRepository_Delete(t *testing.T) {
	repo := NewSeededProductRepository()
	ctx := context.Background()

	before, _ := repo.GetAll(ctx)
	if len(before) == 0 {
		t.Fatal("expected seed data")
	}

	if err := repo.Delete(ctx, before[0].ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete(ctx, before[0].ID); err != ErrProductNotFound {
		t.Errorf("second Delete() error = %v, want %v", err, ErrProductNotFound)
	}

	after, _ := repo.GetAll(ctx)
	if len(after) != len(before)-1 {
		t.Errorf("len = %d, want %d", len(after), len(before)-1)
	}
	for _, p := range after {
		if p.ID == before[0].ID {
			t.Errorf("deleted id %s still listed", p.ID)
		}
	}
}

func TestInMemoryProductRepository_GetAllReturnsCopy(t *testing.T) {
	repo := NewSeededProductRepository()
	ctx := context.Background()

	products, _ := repo.GetAll(ctx)
	products[0].Name = "mutated"

	again, _ := repo.GetAll(ctx)
	if again[0].Name == "mutated" {
		t.Error("GetAll must not expose internal storage")
	}
}
