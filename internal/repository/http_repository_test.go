package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ ProductRepository = (*HTTPProductRepository)(nil)
	_ ProductRepository = (*InMemoryProductRepository)(nil)
)

func TestHTTPProductRepository_GetAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":2,"name":"B","quantity":1,"price":1},{"id":1,"name":"A","quantity":5,"price":2.5}]`)
	}))
	defer srv.Close()

	repo := NewHTTPProductRepository(srv.URL+"/", time.Second)
	products, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	// Server order is preserved.
	assert.Equal(t, models.ProductID("2"), products[0].ID)
	assert.Equal(t, models.ProductID("1"), products[1].ID)
}

func TestHTTPProductRepository_GetAll_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `<html>`)
			},
			wantErr: ErrTransport,
		},
		{
			name: "null body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `null`)
			},
			wantErr: ErrTransport,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr: ErrRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewHTTPProductRepository(srv.URL, time.Second).GetAll(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHTTPProductRepository_GetAll_EmptyArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	products, err := NewHTTPProductRepository(srv.URL, time.Second).GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestHTTPProductRepository_Create(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":11,"name":"Bolt"}`)
	}))
	defer srv.Close()

	repo := NewHTTPProductRepository(srv.URL, time.Second)
	err := repo.Create(context.Background(), models.ProductInput{
		Name:     "Bolt",
		Quantity: models.ParseQuantity("10"),
		Price:    models.ParsePrice("0.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Bolt", "quantity": float64(10), "price": 0.5}, got)
}

func TestHTTPProductRepository_Create_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"Missing name"}`)
	}))
	defer srv.Close()

	err := NewHTTPProductRepository(srv.URL, time.Second).Create(context.Background(), models.ProductInput{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRejected)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Equal(t, "Missing name", statusErr.Message)
	assert.Contains(t, statusErr.Error(), "returned status 400 - Missing name")
}

func TestHTTPProductRepository_Delete(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		path = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	repo := NewHTTPProductRepository(srv.URL, time.Second)
	require.NoError(t, repo.Delete(context.Background(), "7"))
	assert.Equal(t, "/api/products/7", path)

	require.NoError(t, repo.Delete(context.Background(), "a/b"))
	assert.Equal(t, "/api/products/a%2Fb", path)
}

func TestHTTPProductRepository_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	repo := NewHTTPProductRepository(url, time.Second)

	_, err := repo.GetAll(context.Background())
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, repo.Create(context.Background(), models.ProductInput{Name: "x"}), ErrTransport)
	assert.ErrorIs(t, repo.Delete(context.Background(), "1"), ErrTransport)
}

func TestHTTPProductRepository_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPProductRepository(srv.URL, 0).GetAll(ctx)
	assert.ErrorIs(t, err, ErrTransport)
}
