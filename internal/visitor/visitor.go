// Package visitor holds the per-visitor session state that every workflow reads
// and mutates. A State is created on first contact, handed to handlers by
// pointer for the duration of a request, and wiped on logout.
package visitor

import "parlour/internal/router"

// State is one visitor's session.
type State struct {
	AdminLoggedIn bool
	UserLoggedIn  bool
	// Identity is the identifier of the logged-in user.
	Identity string
	// PendingIdentity pre-fills the registration form after a login attempt
	// with an unknown identifier.
	PendingIdentity string
	Page            router.Page
	Cart            []string
	Wishlist        []string

	cleared bool
}

// New returns the state of a first-ever visit.
func New() *State {
	return &State{Page: router.Initial}
}

// CurrentPage returns the page the visitor is on.
func (s *State) CurrentPage() router.Page { return s.Page }

// SetPage moves the visitor to p.
func (s *State) SetPage(p router.Page) { s.Page = p }

// AddToCart appends name; adding the same product twice yields two entries.
func (s *State) AddToCart(name string) {
	s.Cart = append(s.Cart, name)
}

// AddToWishlist appends name to the wishlist.
func (s *State) AddToWishlist(name string) {
	s.Wishlist = append(s.Wishlist, name)
}

// ClearBasket empties the cart and wishlist.
func (s *State) ClearBasket() {
	s.Cart = nil
	s.Wishlist = nil
}

// LogInUser records identifier as the logged-in user.
func (s *State) LogInUser(identifier string) {
	s.UserLoggedIn = true
	s.Identity = identifier
	s.PendingIdentity = ""
}

// Clear resets every field to a first visit and marks the session for
// destruction by whoever persists it.
func (s *State) Clear() {
	*s = State{Page: router.Initial, cleared: true}
}

// Cleared reports whether Clear was called since the state was loaded.
func (s *State) Cleared() bool { return s.cleared }
