package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"parlour/internal/config"
	"parlour/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func testConfig(driver string) config.Config {
	return config.Config{
		AppPort:           ":0",
		DBDriver:          driver,
		DatabaseDSN:       "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		RabbitMQExchange:  "parlour.events",
		RabbitMQQueue:     "parlour_events",
		SessionCookie:     "parlour_session",
		SessionExpiration: time.Hour,
		LogLevel:          "error",
		LogFormat:         "text",
		ShopName:          "Royal Ice Cream",
		Helpline:          "+91-9204441036",
		BannerImage:       "/static/banner.jpg",
		TermsText:         "Be nice to the scoops.",
	}
}

// setupApp sets up a Fiber app for testing with in-memory SQLite.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := testConfig("sqlite")
	store, cleanup, err := server.OpenStore(cfg)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return server.New(cfg, store, nil)
}

// visitor is a browser-like client that keeps the session cookie between requests.
type visitor struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]*http.Cookie
}

func newVisitor(t *testing.T, app *fiber.App) *visitor {
	return &visitor{t: t, app: app, cookies: map[string]*http.Cookie{}}
}

func (v *visitor) do(method, path string, body interface{}) (int, map[string]interface{}) {
	v.t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(v.t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range v.cookies {
		req.AddCookie(c)
	}

	resp, err := v.app.Test(req, -1)
	require.NoError(v.t, err)
	defer resp.Body.Close()

	for _, c := range resp.Cookies() {
		expired := c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(time.Now()))
		if c.Value == "" || expired {
			delete(v.cookies, c.Name)
			continue
		}
		v.cookies[c.Name] = c
	}

	raw, err := io.ReadAll(resp.Body)
	require.NoError(v.t, err)
	var decoded map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(v.t, json.Unmarshal(raw, &decoded))
	} else if len(raw) > 0 {
		decoded = map[string]interface{}{"items": decodeList(v.t, raw)}
	}
	return resp.StatusCode, decoded
}

func decodeList(t *testing.T, raw []byte) []interface{} {
	var list []interface{}
	require.NoError(t, json.Unmarshal(raw, &list))
	return list
}

func view(body map[string]interface{}) map[string]interface{} {
	v, _ := body["view"].(map[string]interface{})
	return v
}

func TestHealthCheck(t *testing.T) {
	app := setupApp(t)
	status, body := newVisitor(t, app).do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, false, body["events"])
}

func TestWildcardOriginDropsCredentials(t *testing.T) {
	cfg := testConfig("memory")
	cfg.AllowOrigins = "*"

	var app *fiber.App
	require.NotPanics(t, func() { app = server.New(cfg, server.NewMemoryStore(), nil) })
	status, _ := newVisitor(t, app).do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestFirstVisitShowsHome(t *testing.T) {
	app := setupApp(t)
	status, body := newVisitor(t, app).do(http.MethodGet, "/api/v1/view", nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "home", body["page"])
	assert.Equal(t, "Welcome to Royal Ice Cream", view(body)["title"])
	assert.Equal(t, "+91-9204441036", view(body)["helpline"])
	assert.Len(t, view(body)["options"], 3)
}

func TestNavigate(t *testing.T) {
	app := setupApp(t)
	v := newVisitor(t, app)

	status, body := v.do(http.MethodPost, "/api/v1/navigate", map[string]string{"page": "terms"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "terms", body["page"])
	assert.Equal(t, "Be nice to the scoops.", view(body)["text"])

	// The page survives between requests.
	_, body = v.do(http.MethodGet, "/api/v1/view", nil)
	assert.Equal(t, "terms", body["page"])

	status, body = v.do(http.MethodPost, "/api/v1/navigate", map[string]string{"page": "checkout"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Unknown page", body["message"])

	status, _ = v.do(http.MethodPost, "/api/v1/navigate", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, status)

	// Nothing guards the dashboard; it just has no data without a login.
	status, body = v.do(http.MethodPost, "/api/v1/navigate", map[string]string{"page": "dashboard"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "dashboard", body["page"])
	assert.Equal(t, "User login is required", view(body)["message"])
	assert.NotContains(t, view(body), "products")
}

func TestAdminEndpointsWithoutLogin(t *testing.T) {
	app := setupApp(t)
	v := newVisitor(t, app)

	status, _ := v.do(http.MethodGet, "/api/v1/admin/analytics", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = v.do(http.MethodPost, "/api/v1/admin/products", map[string]interface{}{"name": "X", "price": 10, "quantity": 1})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func adminLogin(t *testing.T, v *visitor) {
	t.Helper()
	status, body := v.do(http.MethodPost, "/api/v1/auth/admin/login", map[string]string{"contact": "owner@example.com", "password": "anything"})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "admin_dashboard", body["page"])
}

func addProduct(t *testing.T, v *visitor, name string, price float64, qty int) {
	t.Helper()
	status, _ := v.do(http.MethodPost, "/api/v1/admin/products", map[string]interface{}{"name": name, "price": price, "quantity": qty})
	require.Equal(t, http.StatusCreated, status)
}

func TestAdminDashboard(t *testing.T) {
	app := setupApp(t)
	admin := newVisitor(t, app)

	status, body := admin.do(http.MethodPost, "/api/v1/auth/admin/login", map[string]string{"contact": "", "password": ""})
	require.Equal(t, http.StatusOK, status)
	analytics := view(body)["analytics"].(map[string]interface{})
	assert.Equal(t, "No products found.", analytics["message"])

	status, body = admin.do(http.MethodPost, "/api/v1/admin/products", map[string]interface{}{"name": "Vanilla", "price": 50, "quantity": 10})
	require.Equal(t, http.StatusCreated, status)
	product := body["product"].(map[string]interface{})
	assert.Equal(t, 10.0, product["total_qty"])
	assert.Equal(t, 10.0, product["remaining_qty"])
	assert.Equal(t, 0.0, product["daily_sale"])
	assert.Equal(t, 0.0, product["likes"])

	addProduct(t, admin, "Rocky Road", 70, 5)

	status, body = admin.do(http.MethodPost, "/api/v1/admin/products", map[string]interface{}{"name": "Free", "price": 0, "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["errors"], "Price")

	status, body = admin.do(http.MethodGet, "/api/v1/admin/analytics", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["has_products"])
	assert.Equal(t, "Vanilla", body["most_sold"].(map[string]interface{})["name"])
	rows := body["products"].([]interface{})
	require.Len(t, rows, 2)
	assert.Equal(t, true, rows[1].(map[string]interface{})["suggest_discount"])

	status, body = admin.do(http.MethodPost, "/api/v1/admin/users", map[string]interface{}{
		"username": "kiran", "first_name": "Kiran", "last_name": "Das", "age": 41, "location": "Kolkata", "password": "kulfi",
	})
	require.Equal(t, http.StatusCreated, status)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "admin", user["created_by"])
	assert.NotContains(t, user, "password")

	status, body = admin.do(http.MethodGet, "/api/v1/admin/users", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["items"], 1)

	status, _ = admin.do(http.MethodDelete, "/api/v1/admin/products/"+url.PathEscape("Rocky Road"), nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = admin.do(http.MethodDelete, "/api/v1/admin/products/"+url.PathEscape("Rocky Road"), nil)
	assert.Equal(t, http.StatusNotFound, status)

	_, body = admin.do(http.MethodGet, "/api/v1/products", nil)
	require.Len(t, body["items"], 1)
	assert.Equal(t, "Vanilla", body["items"].([]interface{})[0].(map[string]interface{})["name"])
}

func TestUserRegistrationLoginAndOrder(t *testing.T) {
	app := setupApp(t)
	admin := newVisitor(t, app)
	adminLogin(t, admin)
	addProduct(t, admin, "A", 50, 10)
	addProduct(t, admin, "B", 70, 10)

	v := newVisitor(t, app)

	// Unknown identifier goes to the pre-filled registration form.
	status, body := v.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"identifier": "asha@example.com", "password": "mango"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["registration_required"])
	assert.Equal(t, "register", body["page"])
	assert.Equal(t, "asha@example.com", view(body)["identifier"])

	status, body = v.do(http.MethodPost, "/api/v1/auth/register", map[string]interface{}{"first_name": "Asha", "age": 0, "password": "mango"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["errors"], "Age")

	status, body = v.do(http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
		"first_name": "Asha", "last_name": "Rao", "age": 29, "location": "Pune", "password": "mango",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "dashboard", body["page"])
	assert.Len(t, view(body)["products"], 2)

	status, body = v.do(http.MethodGet, "/api/v1/profile", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "asha@example.com", body["identifier"])
	assert.Equal(t, "self", body["created_by"])

	// A fresh visitor logs in with the stored hash.
	other := newVisitor(t, app)
	status, body = other.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"identifier": "asha@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Authentication failed", body["message"])
	status, _ = other.do(http.MethodGet, "/api/v1/shop/basket", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = other.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"identifier": "asha@example.com", "password": "mango"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "dashboard", body["page"])

	for _, name := range []string{"A", "B"} {
		status, _ = other.do(http.MethodPost, "/api/v1/shop/cart", map[string]string{"product": name})
		require.Equal(t, http.StatusOK, status)
	}
	status, _ = other.do(http.MethodPost, "/api/v1/shop/wishlist", map[string]string{"product": "A"})
	require.Equal(t, http.StatusOK, status)
	status, _ = other.do(http.MethodPost, "/api/v1/shop/cart", map[string]string{"product": "Ghost"})
	assert.Equal(t, http.StatusNotFound, status)

	_, body = other.do(http.MethodGet, "/api/v1/shop/basket", nil)
	assert.Equal(t, []interface{}{"A", "B"}, body["cart"])
	assert.Equal(t, []interface{}{"A"}, body["wishlist"])

	status, body = other.do(http.MethodPost, "/api/v1/shop/orders", nil)
	require.Equal(t, http.StatusCreated, status)
	invoice := body["invoice"].(map[string]interface{})
	assert.Equal(t, 120.0, invoice["total"])
	assert.Equal(t, []interface{}{"A", "B"}, invoice["cart"])
	assert.Equal(t, "Pending", invoice["payment"])
	assert.Equal(t, []interface{}{}, view(body)["cart"])
	assert.Equal(t, []interface{}{}, view(body)["wishlist"])

	status, body = other.do(http.MethodGet, "/api/v1/shop/orders/"+invoice["invoice_id"].(string), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 120.0, body["total"])

	_, body = admin.do(http.MethodGet, "/api/v1/admin/orders", nil)
	orders := body["items"].([]interface{})
	require.Len(t, orders, 1)
	order := orders[0].(map[string]interface{})
	assert.Equal(t, []interface{}{"A", "B"}, order["cart"])
	assert.Equal(t, "asha@example.com", order["user"])
	assert.Equal(t, 120.0, order["total"])
}

func TestFeedbackIncrementsLikes(t *testing.T) {
	app := setupApp(t)
	admin := newVisitor(t, app)
	adminLogin(t, admin)
	addProduct(t, admin, "P", 40, 10)

	users := []*visitor{newVisitor(t, app), newVisitor(t, app)}
	for i, u := range users {
		_, _ = u.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"identifier": []string{"u1", "u2"}[i], "password": "pw"})
		status, _ := u.do(http.MethodPost, "/api/v1/auth/register", map[string]interface{}{"age": 30, "password": "pw"})
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := users[0].do(http.MethodPost, "/api/v1/shop/feedback", map[string]interface{}{"product": "P", "rating": 6})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["errors"], "Rating")

	for _, u := range users {
		status, _ = u.do(http.MethodPost, "/api/v1/shop/feedback", map[string]interface{}{"product": "P", "rating": 5, "text": "lovely"})
		require.Equal(t, http.StatusCreated, status)
	}

	_, body = admin.do(http.MethodGet, "/api/v1/products", nil)
	p := body["items"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, 2.0, p["likes"])
	assert.Equal(t, true, p["discount_suggested"])

	_, body = admin.do(http.MethodGet, "/api/v1/admin/feedback", nil)
	feedback := body["items"].([]interface{})
	require.Len(t, feedback, 2)
	var authors []interface{}
	for _, f := range feedback {
		authors = append(authors, f.(map[string]interface{})["user"])
	}
	assert.ElementsMatch(t, []interface{}{"u1", "u2"}, authors)
}

func TestLogoutClearsSession(t *testing.T) {
	app := setupApp(t)
	admin := newVisitor(t, app)
	adminLogin(t, admin)
	addProduct(t, admin, "A", 50, 10)

	v := newVisitor(t, app)
	_, _ = v.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"identifier": "9876543210", "password": "pw"})
	status, _ := v.do(http.MethodPost, "/api/v1/auth/register", map[string]interface{}{"age": 22, "password": "pw"})
	require.Equal(t, http.StatusCreated, status)
	_, _ = v.do(http.MethodPost, "/api/v1/shop/cart", map[string]string{"product": "A"})
	_, _ = v.do(http.MethodPost, "/api/v1/auth/admin/login", map[string]string{})
	_, _ = v.do(http.MethodPost, "/api/v1/navigate", map[string]string{"page": "profile"})

	status, body := v.do(http.MethodPost, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "home", body["page"])

	_, afterLogout := v.do(http.MethodGet, "/api/v1/view", nil)
	_, firstVisit := newVisitor(t, app).do(http.MethodGet, "/api/v1/view", nil)
	assert.Equal(t, firstVisit, afterLogout)

	status, _ = v.do(http.MethodGet, "/api/v1/shop/basket", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = v.do(http.MethodGet, "/api/v1/admin/analytics", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestPasswordLimitCountsBytes(t *testing.T) {
	app := setupApp(t)
	v := newVisitor(t, app)
	v.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"identifier": "eloise", "password": "x"})

	// 40 runes but 80 bytes, past what bcrypt can hash.
	tooLong := strings.Repeat("é", 40)
	status, body := v.do(http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
		"first_name": "Eloise", "age": 30, "password": tooLong,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["errors"], "Password")

	status, body = v.do(http.MethodGet, "/api/v1/view", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "register", body["page"])

	// 36 runes, exactly 72 bytes.
	atLimit := strings.Repeat("é", 36)
	status, body = v.do(http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
		"first_name": "Eloise", "age": 30, "password": atLimit,
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "dashboard", body["page"])

	other := newVisitor(t, app)
	status, _ = other.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"identifier": "eloise", "password": atLimit})
	assert.Equal(t, http.StatusOK, status)

	admin := newVisitor(t, app)
	adminLogin(t, admin)
	status, body = admin.do(http.MethodPost, "/api/v1/admin/users", map[string]interface{}{
		"username": "zoe", "age": 20, "password": tooLong,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["errors"], "Password")
}

func TestAdminLoginWithoutBody(t *testing.T) {
	app := setupApp(t)
	v := newVisitor(t, app)

	status, body := v.do(http.MethodPost, "/api/v1/auth/admin/login", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "admin_dashboard", body["page"])

	status, _ = v.do(http.MethodGet, "/api/v1/admin/analytics", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestSendOTP(t *testing.T) {
	app := setupApp(t)
	v := newVisitor(t, app)

	status, body := v.do(http.MethodPost, "/api/v1/auth/otp", map[string]string{"contact": "a@b.c", "mode": "Email"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OTP sent to a@b.c (Email). (Simulation)", body["message"])

	status, _ = v.do(http.MethodPost, "/api/v1/auth/otp", map[string]string{"contact": "a@b.c", "mode": "Pigeon"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestMemoryStoreServesTheSameAPI(t *testing.T) {
	cfg := testConfig("memory")
	store, cleanup, err := server.OpenStore(cfg)
	require.NoError(t, err)
	defer cleanup()
	app := server.New(cfg, store, nil)

	admin := newVisitor(t, app)
	adminLogin(t, admin)
	addProduct(t, admin, "Kulfi", 30, 3)

	_, body := admin.do(http.MethodGet, "/api/v1/products", nil)
	assert.Len(t, body["items"], 1)
}
