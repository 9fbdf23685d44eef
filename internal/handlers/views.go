package handlers

import (
	"fmt"

	"parlour/internal/router"
	"parlour/internal/services"
	"parlour/internal/visitor"

	"github.com/gofiber/fiber/v2"
)

// ShopInfo is the static content shown on the home and terms pages.
type ShopInfo struct {
	Name        string
	Helpline    string
	BannerImage string
	TermsText   string
}

var (
	homeOptions  = []string{"User", "Admin", "Terms and Conditions"}
	contactModes = []string{"Mobile Number", "Email"}
)

// Views builds the view model of every page from the visitor's state.
type Views struct {
	auth    *services.AuthService
	catalog *services.CatalogService
	admin   *services.AdminService
	shop    ShopInfo
}

// NewViews creates a new Views.
func NewViews(auth *services.AuthService, catalog *services.CatalogService, admin *services.AdminService, shop ShopInfo) *Views {
	return &Views{auth: auth, catalog: catalog, admin: admin, shop: shop}
}

// Render returns the view of state's current page. Data is only loaded for
// pages whose login flag is set; other visitors get the bare page.
func (v *Views) Render(state *visitor.State) (fiber.Map, error) {
	switch state.Page {
	case router.Terms:
		return fiber.Map{
			"header": "Terms and Conditions",
			"text":   v.shop.TermsText,
		}, nil

	case router.AdminLogin:
		return fiber.Map{
			"header": "Admin Login",
			"modes":  contactModes,
		}, nil

	case router.AdminDashboard:
		view := fiber.Map{"header": "Admin Dashboard"}
		if !state.AdminLoggedIn {
			view["message"] = "Admin login is required"
			return view, nil
		}
		analytics, err := v.admin.Analytics()
		if err != nil {
			return nil, err
		}
		view["analytics"] = analytics
		return view, nil

	case router.UserLogin:
		return fiber.Map{
			"header": "User Registration/Login",
			"modes":  contactModes,
		}, nil

	case router.Register:
		return fiber.Map{
			"header":     "Your Details",
			"identifier": state.PendingIdentity,
			"age_range":  []int{1, 120},
		}, nil

	case router.Dashboard:
		view := fiber.Map{"header": "Products"}
		if !state.UserLoggedIn {
			view["message"] = "User login is required"
			return view, nil
		}
		products, err := v.catalog.ListProducts()
		if err != nil {
			return nil, err
		}
		view["products"] = products
		view["rating_range"] = []int{1, 5}
		view["cart"] = nonNil(state.Cart)
		view["wishlist"] = nonNil(state.Wishlist)
		return view, nil

	case router.Profile:
		view := fiber.Map{"header": "Your Profile"}
		if !state.UserLoggedIn {
			view["message"] = "User login is required"
			return view, nil
		}
		user, err := v.auth.Profile(state)
		if err != nil {
			return nil, err
		}
		view["user"] = user
		return view, nil

	default:
		return fiber.Map{
			"title":    fmt.Sprintf("Welcome to %s", v.shop.Name),
			"image":    v.shop.BannerImage,
			"caption":  v.shop.Name,
			"helpline": v.shop.Helpline,
			"options":  homeOptions,
		}, nil
	}
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
