package web

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/inventory"
	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/view"
)

// PageTitle is the document title of the inventory page.
const PageTitle = "Inventario"

// partialHeader marks requests that only want the list fragment.
const partialHeader = "HX-Request"

// Handler serves the inventory page and routes its events to the visitor's client.
type Handler struct {
	sessions *Sessions
	logger   *slog.Logger
}

// NewHandler creates a new page handler
func NewHandler(sessions *Sessions, logger *slog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		logger:   logger,
	}
}

// Register mounts the page routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.Index)
	r.Post("/products", h.CreateProduct)
	r.Get("/products/{productId}/delete", h.ConfirmDelete)
	r.Post("/products/{productId}/delete", h.DeleteProduct)
	r.Post("/refresh", h.Refresh)
}

// Index handles GET /
// Renders the full page, or only the list content for partial requests.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Ensure(w, r)

	if strings.EqualFold(r.Header.Get(partialHeader), "true") {
		templ.Handler(view.ProductList(sess.Page.Cards())).ServeHTTP(w, r)
		return
	}

	templ.Handler(view.Page(view.PageData{
		Title: PageTitle,
		Form:  sess.Page.Values(),
		Cards: sess.Page.Cards(),
	})).ServeHTTP(w, r)
}

// CreateProduct handles POST /products
// The entered values stay on the page unless the backend accepts the product.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("failed to parse product form", "error", err)
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	sess := h.sessions.Ensure(w, r)

	// Failures are logged by the client and never shown.
	_ = sess.Submit(r.Context(), inventory.FormValues{
		Name:     r.PostForm.Get("name"),
		Quantity: r.PostForm.Get("quantity"),
		Price:    r.PostForm.Get("price"),
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ConfirmDelete handles GET /products/{productId}/delete
func (h *Handler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	card, ok := h.renderedCard(w, r)
	if !ok {
		return
	}

	templ.Handler(view.ConfirmPage(view.ConfirmData{
		Title:   PageTitle,
		Message: inventory.ConfirmDeleteMessage,
		Card:    card,
	})).ServeHTTP(w, r)
}

// DeleteProduct handles POST /products/{productId}/delete
// The visitor's answer travels in the confirm field and is handed to the
// card's bound delete handler through the request context.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("failed to parse delete form", "error", err)
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	card, ok := h.renderedCard(w, r)
	if !ok {
		return
	}

	ctx := WithConfirmation(r.Context(), r.PostForm.Get("confirm") == "yes")
	_ = card.OnDelete(ctx)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Refresh handles POST /refresh
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Ensure(w, r)
	_ = sess.Client.FetchAndRender(r.Context())

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// renderedCard resolves the card addressed by the URL on the visitor's page.
// Only products currently on screen can be deleted.
func (h *Handler) renderedCard(w http.ResponseWriter, r *http.Request) (inventory.Card, bool) {
	sess, ok := h.sessions.Get(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return inventory.Card{}, false
	}

	raw := chi.URLParam(r, "productId")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}
	productID := models.ProductID(raw)
	card, ok := sess.Page.Card(productID)
	if !ok || card.OnDelete == nil {
		h.logger.Info("product not on page", "productId", productID, "session", sess.ID)
		http.NotFound(w, r)
		return inventory.Card{}, false
	}
	return card, true
}
