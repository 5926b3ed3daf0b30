package view

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/inventory"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var b bytes.Buffer
	if err := c.Render(context.Background(), &b); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return b.String()
}

func noop(context.Context) error { return nil }

func TestProductCard(t *testing.T) {
	got := render(t, ProductCard(inventory.Card{
		ID:       "1",
		Name:     "Widget",
		Quantity: "Cantidad: 5",
		Price:    "Precio: $2.50",
		OnDelete: noop,
	}))

	for _, want := range []string{
		`<h3>Widget</h3>`,
		`<p>Cantidad: 5</p>`,
		`<p>Precio: $2.50</p>`,
		`<a class="btn-delete" href="/products/1/delete">Eliminar</a>`,
		`data-id="1"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in %q", want, got)
		}
	}
}

func TestProductCard_EscapesContent(t *testing.T) {
	got := render(t, ProductCard(inventory.Card{
		ID:       "a/b",
		Name:     `<script>alert("x")</script>`,
		OnDelete: noop,
	}))

	if strings.Contains(got, "<script>") {
		t.Fatalf("name must be escaped, got %q", got)
	}
	if !strings.Contains(got, `href="/products/a%2Fb/delete"`) {
		t.Errorf("expected escaped delete path, got %q", got)
	}
}

func TestProductCard_WithoutHandlerHasNoControl(t *testing.T) {
	got := render(t, ProductCard(inventory.Card{ID: "1", Name: "Widget"}))
	if strings.Contains(got, "Eliminar") {
		t.Errorf("unexpected delete control in %q", got)
	}
}

func TestProductList_SameInputSameOutput(t *testing.T) {
	cards := []inventory.Card{
		{ID: "2", Name: "B", Quantity: "Cantidad: 1", Price: "Precio: $1.00", OnDelete: noop},
		{ID: "1", Name: "A", Quantity: "Cantidad: 2", Price: "Precio: $2.00", OnDelete: noop},
	}

	first := render(t, ProductList(cards))
	second := render(t, ProductList(cards))
	if first != second {
		t.Errorf("rendering is not stable:\n%s\n%s", first, second)
	}
	if strings.Index(first, "<h3>B</h3>") > strings.Index(first, "<h3>A</h3>") {
		t.Errorf("cards must keep their given order, got %q", first)
	}
	if render(t, ProductList(nil)) != "" {
		t.Error("empty list should render nothing")
	}
}

func TestPage(t *testing.T) {
	got := render(t, Page(PageData{
		Title: "Inventario",
		Form:  inventory.FormValues{Name: `Bolt "M6"`, Quantity: "10", Price: "0.5"},
		Cards: []inventory.Card{{ID: "1", Name: "Widget", OnDelete: noop}},
	}))

	for _, want := range []string{
		`<title>Inventario</title>`,
		`<form id="productForm" method="post" action="/products">`,
		`name="name" type="text" required value="Bolt &#34;M6&#34;"`,
		`name="quantity" type="number" min="0" step="1"`,
		`value="10"`,
		`name="price" type="number" min="0" step="0.01"`,
		`value="0.5"`,
		`<div id="productList" class="product-list">`,
		`<h3>Widget</h3>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in page", want)
		}
	}
}

func TestConfirmPage(t *testing.T) {
	got := render(t, ConfirmPage(ConfirmData{
		Title:   "Eliminar",
		Message: inventory.ConfirmDeleteMessage,
		Card:    inventory.Card{ID: "7", Name: "Gear", OnDelete: noop},
	}))

	for _, want := range []string{
		`¿Estás seguro de eliminar este producto?`,
		`<form method="post" action="/products/7/delete">`,
		`name="confirm" value="yes"`,
		`name="confirm" value="no"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in %q", want, got)
		}
	}
	if strings.Contains(got, `class="btn-delete" href=`) {
		t.Error("confirmation card should not carry its own delete link")
	}
}

func TestProductCard_DeletePathStaysRelative(t *testing.T) {
	got := render(t, ProductCard(inventory.Card{ID: "javascript:alert(1)", OnDelete: noop}))
	if !strings.Contains(got, `href="/products/javascript:alert%281%29/delete"`) {
		t.Errorf("unexpected delete path in %q", got)
	}
}

func TestPage_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var b bytes.Buffer
	err := Page(PageData{Title: "Inventario"}).Render(ctx, &b)
	if err == nil {
		t.Fatal("expected an error for a canceled context")
	}
	if b.Len() != 0 {
		t.Errorf("nothing should be written, got %q", b.String())
	}
}
