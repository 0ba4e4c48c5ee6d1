package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"attendance-be/internal/entities"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_entry_repository.go -package=mocks attendance-be/internal/repository EntryRepository

// EntryFilter narrows listing queries. A zero filter matches every entry.
type EntryFilter struct {
	UserID string
}

// EntryRepository defines the interface for attendance entry database operations
type EntryRepository interface {
	Create(ctx context.Context, entry *entities.Entry) error
	CloseEntry(ctx context.Context, id, userID string, checkOut entities.CheckOut) (*entities.Entry, error)
	List(ctx context.Context, filter EntryFilter, offset, limit int) ([]*entities.Entry, error)
	Count(ctx context.Context, filter EntryFilter) (int, error)
}

type entryRepository struct {
	db *sql.DB
}

// NewEntryRepository creates a new entry repository
func NewEntryRepository(db *sql.DB) EntryRepository {
	return &entryRepository{db: db}
}

const entryColumns = `e.id, e.user_id, e.check_in_time, e.check_in_location, e.check_out_time,
	e.checkout_location, e.total_hours, e.created_at, e.updated_at`

// Create inserts a new open entry.
func (r *entryRepository) Create(ctx context.Context, entry *entities.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	query := `
		INSERT INTO entries (id, user_id, check_in_time, check_in_location)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.CheckInTime,
		entry.CheckInLocation,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}

	return nil
}

// CloseEntry writes the check-out fields in one statement that matches both the
// entry id and its owner. ErrNotFound means no entry with that id belongs to userID.
func (r *entryRepository) CloseEntry(ctx context.Context, id, userID string, checkOut entities.CheckOut) (*entities.Entry, error) {
	if !isUUID(id) || !isUUID(userID) {
		return nil, ErrNotFound
	}

	query := `
		UPDATE entries e
		SET check_out_time = $3,
			checkout_location = $4,
			total_hours = $5,
			updated_at = NOW()
		WHERE e.id = $1 AND e.user_id = $2
		RETURNING ` + entryColumns

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query,
		id,
		userID,
		checkOut.CheckOutTime,
		checkOut.CheckoutLocation,
		checkOut.TotalHours,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to close entry: %w", err)
	}

	return entry, nil
}

// List returns one page of entries in insertion order, each joined with its owner.
func (r *entryRepository) List(ctx context.Context, filter EntryFilter, offset, limit int) ([]*entities.Entry, error) {
	where, args := filter.where()
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
		SELECT %s,
			u.id, u.user_name, u.email, u.phone_number, u.role, u.created_at, u.updated_at
		FROM entries e
		JOIN users u ON u.id = e.user_id
		%s
		ORDER BY e.created_at ASC, e.id ASC
		LIMIT $%d OFFSET $%d
	`, entryColumns, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	entries := make([]*entities.Entry, 0, limit)
	for rows.Next() {
		var entry entities.Entry
		var owner entities.EntryOwner
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.CheckInTime,
			&entry.CheckInLocation,
			&entry.CheckOutTime,
			&entry.CheckoutLocation,
			&entry.TotalHours,
			&entry.CreatedAt,
			&entry.UpdatedAt,
			&owner.ID,
			&owner.UserName,
			&owner.Email,
			&owner.PhoneNumber,
			&owner.Role,
			&owner.CreatedAt,
			&owner.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entry.User = &owner
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}

// Count returns the number of entries matching filter.
func (r *entryRepository) Count(ctx context.Context, filter EntryFilter) (int, error) {
	where, args := filter.where()

	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries e `+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}

	return total, nil
}

func (f EntryFilter) where() (string, []any) {
	if f.UserID == "" {
		return "", nil
	}
	return "WHERE e.user_id = $1", []any{f.UserID}
}

func scanEntry(row *sql.Row) (*entities.Entry, error) {
	var entry entities.Entry
	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.CheckInTime,
		&entry.CheckInLocation,
		&entry.CheckOutTime,
		&entry.CheckoutLocation,
		&entry.TotalHours,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
