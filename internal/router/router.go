// Package router maps the page held in a visitor's session to one of the
// storefront pages and performs the transitions between them.
package router

import (
	"errors"
	"fmt"
)

// Page identifies a storefront page.
type Page string

const (
	Home           Page = "home"
	Terms          Page = "terms"
	AdminLogin     Page = "admin_login"
	AdminDashboard Page = "admin_dashboard"
	UserLogin      Page = "user_login"
	Register       Page = "register"
	Dashboard      Page = "dashboard"
	Profile        Page = "profile"
)

// Initial is the page every new session starts on.
const Initial = Home

// ErrUnknownPage is returned for page identifiers outside the known set.
var ErrUnknownPage = errors.New("unknown page")

var pages = map[Page]struct{}{
	Home: {}, Terms: {}, AdminLogin: {}, AdminDashboard: {},
	UserLogin: {}, Register: {}, Dashboard: {}, Profile: {},
}

// Pages lists every page in navigation order.
func Pages() []Page {
	return []Page{Home, Terms, AdminLogin, AdminDashboard, UserLogin, Register, Dashboard, Profile}
}

// Parse converts s into a Page.
func Parse(s string) (Page, error) {
	p := Page(s)
	if _, ok := pages[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPage, s)
	}
	return p, nil
}

// Holder is anything that carries the current page, typically a visitor session.
type Holder interface {
	CurrentPage() Page
	SetPage(Page)
}

// Navigate moves h to page. Transitions are never guarded: a visitor may open
// the dashboard without logging in and simply gets no user data there.
func Navigate(h Holder, page Page) error {
	if _, ok := pages[page]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPage, page)
	}
	h.SetPage(page)
	return nil
}
