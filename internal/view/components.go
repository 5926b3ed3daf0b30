// Package view renders the inventory page as templ components.
package view

import (
	"net/url"

	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/inventory"
	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/models"
)

//go:generate templ generate

// ListID is the element id of the product list container.
const ListID = "productList"

// PageData is everything the full inventory page shows.
type PageData struct {
	Title string
	Form  inventory.FormValues
	Cards []inventory.Card
}

// ConfirmData backs the deletion prompt.
type ConfirmData struct {
	Title   string
	Message string
	Card    inventory.Card
}

// DeletePath is where a card's delete control points.
func DeletePath(id models.ProductID) string {
	return "/products/" + url.PathEscape(id.String()) + "/delete"
}

// withoutControl strips the delete handler so the card renders read-only.
func withoutControl(card inventory.Card) inventory.Card {
	card.OnDelete = nil
	return card
}
