package web

import (
	"sync"

	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/inventory"
	"github.com/Lixing-Zhang/kart-challenge/inventory-client/internal/models"
)

// PageState is the server-side copy of one visitor's page: the product form
// and the product list container.
type PageState struct {
	mu    sync.RWMutex
	form  inventory.FormValues
	cards []inventory.Card
}

// Values returns the form fields as last entered.
func (p *PageState) Values() inventory.FormValues {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.form
}

// Reset clears the form fields.
func (p *PageState) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form = inventory.FormValues{}
}

// SetValues records what the visitor typed into the form.
func (p *PageState) SetValues(v inventory.FormValues) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form = v
}

// Replace discards the rendered list and installs cards.
func (p *PageState) Replace(cards []inventory.Card) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cards = cards
}

// Cards returns the currently rendered cards.
func (p *PageState) Cards() []inventory.Card {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]inventory.Card, len(p.cards))
	copy(out, p.cards)
	return out
}

// Card looks up a rendered card by product id.
func (p *PageState) Card(id models.ProductID) (inventory.Card, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, c := range p.cards {
		if c.ID == id {
			return c, true
		}
	}
	return inventory.Card{}, false
}
