// Package navigation is the storefront's view controller: which screen is
// showing, the selected product and the search query.
package navigation

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rl1809/storefront/internal/core/domain"
)

var ErrUnknownView = errors.New("unknown view")

type View string

const (
	ViewHome          View = "home"
	ViewProductDetail View = "product-detail"
	ViewCart          View = "cart"
	ViewCheckout      View = "checkout"
	ViewOrderSuccess  View = "order-success"
	ViewOrders        View = "orders"
	ViewLogin         View = "login"
	ViewProfile       View = "profile"
)

var views = []View{
	ViewHome, ViewProductDetail, ViewCart, ViewCheckout,
	ViewOrderSuccess, ViewOrders, ViewLogin, ViewProfile,
}

func ParseView(s string) (View, error) {
	for _, v := range views {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
}

// RequiresSession reports whether v redirects to login without a user.
func (v View) RequiresSession() bool {
	switch v {
	case ViewCart, ViewCheckout, ViewOrders, ViewProfile:
		return true
	}
	return false
}

// ShowsHeader mirrors the layout: login and order-success are full screen.
func (v View) ShowsHeader() bool {
	return v != ViewLogin && v != ViewOrderSuccess
}

type Session interface {
	CurrentUser() (domain.User, bool)
}

type Cart interface {
	IsEmpty() bool
}

// State is a point-in-time copy of the navigator.
type State struct {
	View     View            `json:"view"`
	Selected *domain.Product `json:"selectedProduct,omitempty"`
	Query    string          `json:"searchQuery"`
}

type Navigator struct {
	mu       sync.Mutex
	view     View
	selected *domain.Product
	query    string
	session  Session
	cart     Cart
}

func NewNavigator(session Session, cart Cart) *Navigator {
	return &Navigator{view: ViewHome, session: session, cart: cart}
}

// Navigate switches to v after applying the guards and returns the view that
// was actually entered:
//   - session-only views without a user go to login
//   - checkout with an empty cart goes to cart
//   - product-detail without a selected product goes home
//
// Entering home clears the selected product.
func (n *Navigator) Navigate(v View) View {
	n.mu.Lock()
	defer n.mu.Unlock()

	v = n.resolve(v)
	n.view = v
	if v == ViewHome {
		n.selected = nil
	}
	return v
}

// SelectProduct opens the detail view for p.
func (n *Navigator) SelectProduct(p domain.Product) View {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.selected = &p
	n.view = ViewProductDetail
	return n.view
}

// Search sets the query consumed by the home view.
func (n *Navigator) Search(query string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.query = query
}

func (n *Navigator) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	st := State{View: n.view, Query: n.query}
	if n.selected != nil {
		p := *n.selected
		st.Selected = &p
	}
	return st
}

func (n *Navigator) resolve(v View) View {
	if v.RequiresSession() {
		if _, ok := n.session.CurrentUser(); !ok {
			return ViewLogin
		}
	}
	switch v {
	case ViewCheckout:
		if n.cart.IsEmpty() {
			return ViewCart
		}
	case ViewProductDetail:
		if n.selected == nil {
			return ViewHome
		}
	}
	return v
}
