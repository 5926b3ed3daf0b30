// Package inventory implements the product inventory client: it fetches the
// product collection, renders it into a list container, submits new products
// from a form and deletes products on confirmation.
package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/repository"
)

// ConfirmDeleteMessage is the question put to the user before a deletion.
const ConfirmDeleteMessage = "¿Estás seguro de eliminar este producto?"

// FormValues are the raw field values of the product form.
type FormValues struct {
	Name     string
	Quantity string
	Price    string
}

// Form is the product entry form.
type Form interface {
	Values() FormValues
	Reset()
}

// ListContainer holds the rendered product list. Replace discards whatever
// it holds and installs cards in the given order.
type ListContainer interface {
	Replace(cards []Card)
}

// Confirmer asks the user a yes/no question and blocks for the answer.
type Confirmer interface {
	Confirm(ctx context.Context, message string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, message string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, message string) bool {
	return f(ctx, message)
}

// Card is the rendering of one product. OnDelete is bound to the product's id.
type Card struct {
	ID       models.ProductID
	Name     string
	Quantity string
	Price    string
	OnDelete func(ctx context.Context) error
}

// Deps are the collaborators a Client is built from.
type Deps struct {
	Repo    repository.ProductRepository
	Form    Form
	List    ListContainer
	Confirm Confirmer
	Logger  *slog.Logger
}

// Client drives the fetch/render/mutate cycle against the products resource.
// Its methods may be called from concurrent goroutines.
type Client struct {
	repo    repository.ProductRepository
	form    Form
	list    ListContainer
	confirm Confirmer
	log     *slog.Logger

	fetchSeq atomic.Uint64

	renderMu sync.Mutex
	rendered uint64
}

// New creates a client. A nil Logger falls back to slog.Default and a nil
// Confirmer declines every deletion.
func New(deps Deps) *Client {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	confirm := deps.Confirm
	if confirm == nil {
		confirm = ConfirmFunc(func(context.Context, string) bool { return false })
	}

	return &Client{
		repo:    deps.Repo,
		form:    deps.Form,
		list:    deps.List,
		confirm: confirm,
		log:     log,
	}
}

// Load performs the initial fetch when the page becomes ready.
func (c *Client) Load(ctx context.Context) error {
	return c.FetchAndRender(ctx)
}

// FetchAndRender requests the whole collection and replaces the rendered list.
// On failure the previous list stays in place.
//
// A fetch that completes after a later-started fetch has already rendered is
// dropped, so the list never goes back to an older snapshot.
func (c *Client) FetchAndRender(ctx context.Context) error {
	seq := c.fetchSeq.Add(1)

	products, err := c.repo.GetAll(ctx)
	if err != nil {
		c.log.Error("Error fetching products", "error", err)
		return fmt.Errorf("fetch products: %w", err)
	}

	c.renderMu.Lock()
	defer c.renderMu.Unlock()

	if seq < c.rendered {
		c.log.Debug("discarding stale product list", "fetch_seq", seq, "rendered_seq", c.rendered)
		return nil
	}
	c.rendered = seq
	c.list.Replace(c.cards(products))
	return nil
}

// Submit creates a product from the current form values. The form is cleared
// and the list refreshed only when the backend accepts the product.
func (c *Client) Submit(ctx context.Context) error {
	return c.SubmitValues(ctx, c.form.Values())
}

// SubmitValues creates a product from values captured by the caller, so
// concurrent submissions never read each other's input.
func (c *Client) SubmitValues(ctx context.Context, values FormValues) error {
	input := models.ProductInput{
		Name:     values.Name,
		Quantity: models.ParseQuantity(values.Quantity),
		Price:    models.ParsePrice(values.Price),
	}

	if err := c.repo.Create(ctx, input); err != nil {
		c.log.Error("Error adding product", "name", input.Name, "error", err)
		return fmt.Errorf("add product: %w", err)
	}

	c.form.Reset()
	return c.FetchAndRender(ctx)
}

// Delete removes the product with the given id after the user confirms.
// A declined confirmation sends nothing.
func (c *Client) Delete(ctx context.Context, id models.ProductID) error {
	if !c.confirm.Confirm(ctx, ConfirmDeleteMessage) {
		c.log.Debug("product deletion declined", "id", id)
		return nil
	}

	if err := c.repo.Delete(ctx, id); err != nil {
		c.log.Error("Error deleting product", "id", id, "error", err)
		return fmt.Errorf("delete product %s: %w", id, err)
	}

	return c.FetchAndRender(ctx)
}

func (c *Client) cards(products []models.Product) []Card {
	cards := make([]Card, 0, len(products))
	for _, p := range products {
		id := p.ID
		cards = append(cards, Card{
			ID:       id,
			Name:     p.Name,
			Quantity: fmt.Sprintf("Cantidad: %d", p.Quantity),
			Price:    "Precio: $" + models.FormatPrice(p.Price),
			OnDelete: func(ctx context.Context) error {
				return c.Delete(ctx, id)
			},
		})
	}
	return cards
}
