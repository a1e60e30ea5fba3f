package auth

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vincehvac/servicepro-crm/internal/domain/auth"
	"github.com/vincehvac/servicepro-crm/internal/domain/customer"
	xerrors "github.com/vincehvac/servicepro-crm/internal/pkg/errors"
	"github.com/vincehvac/servicepro-crm/internal/pkg/jwt"
	"github.com/vincehvac/servicepro-crm/internal/pkg/session"
)

// Form-level validation failures, reported before any repository call is
// made. The messages match the registration forms.
var (
	ErrPasswordTooShort  = errors.New("Password must be at least 6 characters")
	ErrPasswordMismatch  = errors.New("Passwords do not match")
	ErrInvalidCredential = errors.New("invalid credentials")
)

// UserRepository is the account storage surface the service needs.
type UserRepository interface {
	Create(ctx context.Context, u *auth.User) error
	FindByEmail(ctx context.Context, email string) (*auth.User, error)
	FindByID(ctx context.Context, id string) (*auth.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// CustomerCreator creates the customer record that accompanies a portal
// registration.
type CustomerCreator interface {
	Create(ctx context.Context, req *customer.CreateRequest) (*customer.Customer, error)
}

type Service struct {
	users     UserRepository
	customers CustomerCreator
	tokens    *jwt.Manager
	sessions  *session.Manager
	logger    *zap.Logger
}

func NewService(
	users UserRepository,
	customers CustomerCreator,
	tokens *jwt.Manager,
	sessions *session.Manager,
	logger *zap.Logger,
) *Service {
	return &Service{
		users:     users,
		customers: customers,
		tokens:    tokens,
		sessions:  sessions,
		logger:    logger,
	}
}

// validatePassword runs the local form checks. It is called before any
// repository access so a bad password never reaches the backend.
func validatePassword(password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	if len(password) < 6 {
		return ErrPasswordTooShort
	}
	return nil
}

// Register creates an internal team account and signs it in.
func (s *Service) Register(ctx context.Context, req *auth.RegisterRequest) (*auth.LoginResponse, error) {
	if err := validatePassword(req.Password, req.ConfirmPassword); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = auth.RoleTechnician
	}
	if !auth.ValidStaffRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", xerrors.ErrInvalidInput, role)
	}

	user, err := s.createUser(ctx, req.Name, req.Email, role, req.Password)
	if err != nil {
		return nil, err
	}

	return s.startSession(ctx, user)
}

// PortalRegister creates a customer account and the matching customer
// record, then signs the account in. A failure creating the customer
// record is logged but does not undo the registration, matching the
// portal's original behavior.
func (s *Service) PortalRegister(ctx context.Context, req *auth.PortalRegisterRequest) (*auth.LoginResponse, error) {
	if err := validatePassword(req.Password, req.ConfirmPassword); err != nil {
		return nil, err
	}

	user, err := s.createUser(ctx, req.Name, req.Email, auth.RoleCustomer, req.Password)
	if err != nil {
		return nil, err
	}

	if _, err := s.customers.Create(ctx, &customer.CreateRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}); err != nil {
		s.logger.Error("failed to create customer record for portal account",
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
	}

	return s.startSession(ctx, user)
}

func (s *Service) createUser(ctx context.Context, name, email, role, password string) (*auth.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: email already registered", xerrors.ErrDuplicateEntry)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &auth.User{
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("role", user.Role),
	)
	return user, nil
}

// Login authenticates an email/password pair and issues a session token.
func (s *Service) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredential
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredential
	}

	return s.startSession(ctx, user)
}

func (s *Service) startSession(ctx context.Context, user *auth.User) (*auth.LoginResponse, error) {
	token, claims, err := s.tokens.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	sess, err := s.sessions.Create(ctx, claims.ID, user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &auth.LoginResponse{
		Token:     token,
		ExpiresAt: sess.ExpiresAt,
		User:      user,
	}, nil
}

// Logout revokes the session behind a token, making the token useless
// before it expires.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Revoke(ctx, sessionID)
}

// CurrentUser returns the account behind a validated session.
func (s *Service) CurrentUser(ctx context.Context, userID string) (*auth.User, error) {
	return s.users.FindByID(ctx, userID)
}

// ValidateToken verifies a bearer token and checks its session is still
// live. Used by the auth middleware.
func (s *Service) ValidateToken(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	if _, err := s.sessions.Validate(ctx, claims.ID); err != nil {
		return nil, err
	}
	return claims, nil
}
