package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")

	// ErrTransport marks failures where no usable answer came back:
	// the request could not be sent or the response could not be parsed.
	ErrTransport = errors.New("transport failure")

	// ErrRejected marks requests the backend answered with a non-2xx status.
	ErrRejected = errors.New("request rejected")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, input models.ProductInput) error
	Delete(ctx context.Context, id models.ProductID) error
}

// StatusError is returned when the backend answers with a non-success status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s returned status %d", e.Method, e.URL, e.StatusCode)
	if e.Message != "" {
		msg = fmt.Sprintf("%s - %s", msg, e.Message)
	}
	return msg
}

// Is lets errors.Is(err, ErrRejected) match any StatusError.
func (e *StatusError) Is(target error) bool {
	return target == ErrRejected
}
