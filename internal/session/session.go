// Package session keeps per-browser state (identity, cart, flash messages)
// on the server, keyed by an opaque id carried in a signed cookie.
package session

import (
	"github.com/shopspring/decimal"

	"github.com/01moynul/ecofind-golang/internal/models"
)

// Flash categories understood by the templates.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
	FlashWarning = "warning"
	FlashInfo    = "info"
)

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Session is the typed state of one browser session.
type Session struct {
	ID       string
	Identity *models.Identity
	Cart     []models.CartLine
	Flashes  []Flash
}

// LoggedIn reports whether the session carries a valid identity.
func (s *Session) LoggedIn() bool {
	return s != nil && s.Identity != nil && s.Identity.UserID > 0
}

// Login records identity. The cart is dropped so nothing carries over
// from whoever used the browser before.
func (s *Session) Login(identity *models.Identity) {
	s.Identity = identity
	s.Cart = nil
}

// Logout forgets identity and cart. Safe to call when not logged in.
func (s *Session) Logout() {
	s.Identity = nil
	s.Cart = nil
}

// AddToCart appends a line; repeated products become repeated lines.
func (s *Session) AddToCart(line models.CartLine) {
	s.Cart = append(s.Cart, line)
}

// ClearCart empties the cart.
func (s *Session) ClearCart() {
	s.Cart = nil
}

// CartTotal sums the snapshot prices in the cart.
func (s *Session) CartTotal() decimal.Decimal {
	return models.CartTotal(s.Cart)
}

// AddFlash queues a notice for the next render.
func (s *Session) AddFlash(category, message string) {
	s.Flashes = append(s.Flashes, Flash{Category: category, Message: message})
}

// TakeFlashes returns and clears the queued notices.
func (s *Session) TakeFlashes() []Flash {
	flashes := s.Flashes
	s.Flashes = nil
	if flashes == nil {
		return []Flash{}
	}
	return flashes
}

// Empty reports whether the session holds nothing worth storing.
func (s *Session) Empty() bool {
	return s.Identity == nil && len(s.Cart) == 0 && len(s.Flashes) == 0
}

func (s *Session) clone() *Session {
	c := &Session{ID: s.ID}
	if s.Identity != nil {
		id := *s.Identity
		c.Identity = &id
	}
	if s.Cart != nil {
		c.Cart = append([]models.CartLine(nil), s.Cart...)
	}
	if s.Flashes != nil {
		c.Flashes = append([]Flash(nil), s.Flashes...)
	}
	return c
}
