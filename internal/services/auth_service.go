package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"parlour/internal/models"
	"parlour/internal/repositories"
	"parlour/internal/router"
	"parlour/internal/visitor"
)

// AuthService runs the admin and customer login/registration workflows.
type AuthService struct {
	userRepo  repositories.UserRepository
	publisher EventPublisher
}

// NewAuthService creates a new AuthService. publisher may be nil.
func NewAuthService(userRepo repositories.UserRepository, publisher EventPublisher) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// AdminLogin opens the admin dashboard for state. The contact and password are
// not checked against anything: any submission is granted admin access.
func (s *AuthService) AdminLogin(state *visitor.State, contact, password string) {
	state.AdminLoggedIn = true
	state.SetPage(router.AdminDashboard)
	slog.Warn("admin access granted without credential check", "contact", contact)
}

// SendOTP simulates sending a one-time password to contact over mode
// ("Mobile Number" or "Email"). No code is generated; the request is only
// published as an event for an external delivery provider.
func (s *AuthService) SendOTP(contact, mode string) string {
	publishEvent(s.publisher, EventOTPRequested, map[string]interface{}{
		"contact":      contact,
		"mode":         mode,
		"requested_at": time.Now().Format(time.RFC3339),
	})
	return fmt.Sprintf("OTP sent to %s (%s). (Simulation)", contact, mode)
}

// LoginResult is the outcome of a successful LoginUser call.
type LoginResult struct {
	// NeedsRegistration is set when no user has the identifier; the visitor has
	// been routed to the registration form.
	NeedsRegistration bool
	User              *models.User
}

// LoginUser looks identifier up and verifies password against the stored hash.
// On a mismatch it returns ErrInvalidCredentials and leaves state untouched.
func (s *AuthService) LoginUser(state *visitor.State, identifier, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			state.PendingIdentity = identifier
			state.SetPage(router.Register)
			return &LoginResult{NeedsRegistration: true}, nil
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !VerifyPassword(user.Password, password) {
		slog.Info("login rejected", "identifier", identifier)
		return nil, ErrInvalidCredentials
	}

	state.LogInUser(user.Identifier)
	state.SetPage(router.Dashboard)
	return &LoginResult{User: user}, nil
}

// RegistrationRequest carries the fields of the self-registration form.
type RegistrationRequest struct {
	// Identifier defaults to the one entered on the login form.
	Identifier string `json:"identifier" validate:"max=255"`
	FirstName  string `json:"first_name" validate:"max=100"`
	LastName   string `json:"last_name" validate:"max=100"`
	Age        int    `json:"age" validate:"min=1,max=120"`
	Location   string `json:"location" validate:"max=255"`
	Password   string `json:"password" validate:"password_bytes"`
}

// Register stores a new self-registered user with a hashed password, logs the
// user in and routes state to the dashboard.
func (s *AuthService) Register(state *visitor.State, req RegistrationRequest) (*models.User, error) {
	identifier := req.Identifier
	if identifier == "" {
		identifier = state.PendingIdentity
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Identifier: identifier,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Age:        req.Age,
		Location:   req.Location,
		Password:   hashed,
		CreatedBy:  models.CreatedBySelf,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	state.LogInUser(identifier)
	state.SetPage(router.Dashboard)
	slog.Info("user registered", "identifier", identifier)
	return user, nil
}

// Profile returns the record of the logged-in user.
func (s *AuthService) Profile(state *visitor.State) (*models.User, error) {
	if !state.UserLoggedIn {
		return nil, ErrNotLoggedIn
	}
	return s.userRepo.GetByIdentifier(state.Identity)
}

// Logout wipes the whole session.
func (s *AuthService) Logout(state *visitor.State) {
	state.Clear()
}
