package handlers

import (
	"errors"
	"log/slog"

	"parlour/internal/middleware"
	"parlour/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for admin and customer login, registration and logout.
type AuthHandler struct {
	authService *services.AuthService
	views       *Views
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, views *Views) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		views:       views,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/otp", h.HandleSendOTP)
	authRoutes.Post("/admin/login", h.HandleAdminLogin)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/logout", h.HandleLogout)

	router.Get("/profile", middleware.UserRequired(), h.HandleProfile)
}

// OTPRequest names where a simulated one-time password goes.
type OTPRequest struct {
	Contact string `json:"contact"`
	Mode    string `json:"mode" validate:"oneof='Mobile Number' Email"`
}

// HandleSendOTP simulates sending a one-time password.
func (h *AuthHandler) HandleSendOTP(c *fiber.Ctx) error {
	var req OTPRequest
	if ok, err := bindAndValidate(c, h.validate, &req); !ok {
		return err
	}
	return c.JSON(fiber.Map{
		"message": h.authService.SendOTP(req.Contact, req.Mode),
	})
}

// AdminLoginRequest represents the admin login form.
type AdminLoginRequest struct {
	Contact  string `json:"contact"`
	Password string `json:"password"`
}

// HandleAdminLogin grants admin access and opens the admin dashboard.
func (h *AuthHandler) HandleAdminLogin(c *fiber.Ctx) error {
	var req AdminLoginRequest
	// Admin login cannot fail, so an unreadable body is treated as empty.
	if err := c.BodyParser(&req); err != nil {
		slog.Debug("ignoring admin login body", "error", err)
	}
	h.authService.AdminLogin(middleware.Visitor(c), req.Contact, req.Password)
	return refresh(c, h.views, fiber.StatusOK, fiber.Map{
		"message": "Admin login successful",
	})
}

// LoginRequest represents the request body for login. Blank values are
// accepted and looked up like any other identifier.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// HandleLogin logs a customer in, or sends an unknown identifier to registration.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if ok, err := bindAndValidate(c, h.validate, &req); !ok {
		return err
	}

	state := middleware.Visitor(c)
	res, err := h.authService.LoginUser(state, req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication failed",
				"error":   err.Error(),
			})
		}
		return failure(c, "Could not log in", err)
	}

	if res.NeedsRegistration {
		return refresh(c, h.views, fiber.StatusOK, fiber.Map{
			"message":               "No account found, please register",
			"registration_required": true,
		})
	}
	return refresh(c, h.views, fiber.StatusOK, fiber.Map{
		"message": "Logged in successfully!",
	})
}

// HandleRegister registers a new customer and logs them in.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req services.RegistrationRequest
	if ok, err := bindAndValidate(c, h.validate, &req); !ok {
		return err
	}

	user, err := h.authService.Register(middleware.Visitor(c), req)
	if err != nil {
		return failure(c, "Could not register user", err)
	}
	return refresh(c, h.views, fiber.StatusCreated, fiber.Map{
		"message": "Registered!",
		"user":    user,
	})
}

// HandleLogout wipes the visitor's session.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	state := middleware.Visitor(c)
	slog.Info("visitor logged out", "identity", state.Identity, "admin", state.AdminLoggedIn)
	h.authService.Logout(state)
	return refresh(c, h.views, fiber.StatusOK, fiber.Map{
		"message": "Logged out",
	})
}

// HandleProfile returns the logged-in customer's record.
func (h *AuthHandler) HandleProfile(c *fiber.Ctx) error {
	user, err := h.authService.Profile(middleware.Visitor(c))
	if err != nil {
		return failure(c, "Could not load profile", err)
	}
	return c.JSON(user)
}
