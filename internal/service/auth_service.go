package service

import (
	"context"
	"errors"
	"strings"

	"attendance-be/internal/entities"
	"attendance-be/internal/errutil"
	"attendance-be/internal/models"
	"attendance-be/internal/repository"
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks attendance-be/internal/service AuthService,AttendanceService,LocationService,PasswordHasher,TokenIssuer

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	GenerateToken(userID, username string, role entities.Role) (string, error)
}

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Register creates a new user account and logs it in.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	user := &entities.User{
		UserName:    strings.TrimSpace(req.UserName),
		Email:       strings.TrimSpace(req.Email),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Role:        entities.RoleUser,
	}
	if user.UserName == "" || user.Email == "" || user.PhoneNumber == "" || req.Password == "" {
		return nil, errutil.InvalidArgument("All fields are required")
	}

	// Email and phone number are each unique. The unique indexes catch races
	// between these lookups and the insert.
	if err := s.ensureAbsent(ctx, s.userRepo.FindByEmail, user.Email); err != nil {
		return nil, err
	}
	if err := s.ensureAbsent(ctx, s.userRepo.FindByPhoneNumber, user.PhoneNumber); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(req.Password)
	if errors.Is(err, ErrPasswordTooLong) {
		return nil, errutil.InvalidArgument("Password is too long")
	}
	if err != nil {
		return nil, errutil.Internal(err, "hash password")
	}
	user.PasswordHash = hashed

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errutil.Conflict("User already exists")
		}
		return nil, errutil.Internal(err, "create user")
	}

	return s.respond(user, "user registered successfully")
}

// Login authenticates a user by email or phone number.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	id := req.LookupIdentifier()
	if id.Value == "" || req.Password == "" {
		return nil, errutil.InvalidArgument("Identifier and password are required")
	}

	var (
		user *entities.User
		err  error
	)
	switch id.Kind {
	case models.IdentifierEmail:
		user, err = s.userRepo.FindByEmail(ctx, id.Value)
	default:
		user, err = s.userRepo.FindByPhoneNumber(ctx, id.Value)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errutil.NotFound("User does not exist")
	}
	if err != nil {
		return nil, errutil.Internal(err, "find user")
	}

	ok, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return nil, errutil.Internal(err, "verify password")
	}
	if !ok {
		return nil, errutil.Unauthorized("Invalid password")
	}

	return s.respond(user, "login successfully")
}

func (s *authService) ensureAbsent(ctx context.Context, find func(context.Context, string) (*entities.User, error), value string) error {
	_, err := find(ctx, value)
	switch {
	case err == nil:
		return errutil.Conflict("User already exists")
	case errors.Is(err, repository.ErrNotFound):
		return nil
	default:
		return errutil.Internal(err, "check existing user")
	}
}

func (s *authService) respond(user *entities.User, message string) (*models.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, errutil.Internal(err, "generate token")
	}

	return &models.AuthResponse{
		Message:    message,
		PublicUser: models.NewPublicUser(user),
		Token:      token,
	}, nil
}
