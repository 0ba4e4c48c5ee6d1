package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"attendance-be/internal/entities"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_user_repository.go -package=mocks attendance-be/internal/repository UserRepository

// UserRepository defines the interface for user database operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByPhoneNumber(ctx context.Context, phoneNumber string) (*entities.User, error)
	FindByID(ctx context.Context, id string) (*entities.User, error)
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, user_name, email, phone_number, password_hash, role, created_at, updated_at`

// Create inserts a new user. A missing ID or role is filled in before the insert.
func (r *userRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = entities.RoleUser
	}

	query := `
		INSERT INTO users (id, user_name, email, phone_number, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		user.ID,
		user.UserName,
		user.Email,
		user.PhoneNumber,
		user.PasswordHash,
		user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// FindByEmail finds a user by email
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// FindByPhoneNumber finds a user by phone number
func (r *userRepository) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*entities.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE phone_number = $1`, phoneNumber)
}

// FindByID finds a user by ID (UUID)
func (r *userRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	if !isUUID(id) {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *userRepository) findOne(ctx context.Context, query string, arg string) (*entities.User, error) {
	var user entities.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.UserName,
		&user.Email,
		&user.PhoneNumber,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}
