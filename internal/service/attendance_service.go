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

// AttendanceService defines the check-in/check-out business logic
type AttendanceService interface {
	CheckIn(ctx context.Context, caller models.Caller, req *models.CheckInRequest) (*entities.Entry, error)
	CheckOut(ctx context.Context, caller models.Caller, checkInID string, req *models.CheckOutRequest) (*entities.Entry, error)
	ListEntries(ctx context.Context, caller models.Caller, page, limit int) (*models.EntryListResponse, error)
}

type attendanceService struct {
	repo         repository.EntryRepository
	maxPageLimit int
}

// NewAttendanceService creates a new attendance service. Page sizes above
// maxPageLimit are clamped to it.
func NewAttendanceService(repo repository.EntryRepository, maxPageLimit int) AttendanceService {
	if maxPageLimit <= 0 {
		maxPageLimit = 100
	}
	return &attendanceService{
		repo:         repo,
		maxPageLimit: maxPageLimit,
	}
}

// CheckIn opens a new entry owned by the caller. A user may hold several open
// entries at once.
func (s *attendanceService) CheckIn(ctx context.Context, caller models.Caller, req *models.CheckInRequest) (*entities.Entry, error) {
	entry := &entities.Entry{
		UserID:          caller.UserID,
		CheckInTime:     strings.TrimSpace(req.CheckInTime),
		CheckInLocation: strings.TrimSpace(req.CheckInLocation),
	}
	if entry.UserID == "" || entry.CheckInTime == "" || entry.CheckInLocation == "" {
		return nil, errutil.InvalidArgument("All fields are required")
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, errutil.Internal(err, "create entry")
	}

	return entry, nil
}

// CheckOut closes the caller's entry. Closing an already closed entry overwrites
// the previous check-out fields.
func (s *attendanceService) CheckOut(ctx context.Context, caller models.Caller, checkInID string, req *models.CheckOutRequest) (*entities.Entry, error) {
	checkInID = strings.TrimSpace(checkInID)
	checkOut := entities.CheckOut{
		CheckOutTime:     strings.TrimSpace(req.CheckOutTime),
		CheckoutLocation: strings.TrimSpace(req.CheckoutLocation),
		TotalHours:       req.TotalHours,
	}
	if caller.UserID == "" || checkInID == "" || checkOut.CheckOutTime == "" || checkOut.CheckoutLocation == "" {
		return nil, errutil.InvalidArgument("checkInId, checkOutTime and checkoutLocation are required")
	}

	entry, err := s.repo.CloseEntry(ctx, checkInID, caller.UserID, checkOut)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errutil.NotFound("No check-in found")
	}
	if err != nil {
		return nil, errutil.Internal(err, "close entry")
	}

	return entry, nil
}

// ListEntries returns one page of entries. Admins see every user's entries;
// everyone else sees only their own, and the totals follow the same scope.
func (s *attendanceService) ListEntries(ctx context.Context, caller models.Caller, page, limit int) (*models.EntryListResponse, error) {
	if caller.UserID == "" {
		return nil, errutil.Unauthenticated("Caller identity is required")
	}

	if page < 1 {
		page = models.DefaultPage
	}
	if limit < 1 {
		limit = models.DefaultLimit
	}
	if limit > s.maxPageLimit {
		limit = s.maxPageLimit
	}

	var filter repository.EntryFilter
	if !caller.IsAdmin() {
		filter.UserID = caller.UserID
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, errutil.Internal(err, "count entries")
	}

	pagination := models.NewPagination(total, page, limit)

	// Pages past the end are empty; skip the query.
	entries := []*entities.Entry{}
	if page <= pagination.TotalPages {
		entries, err = s.repo.List(ctx, filter, models.Offset(page, limit), limit)
		if err != nil {
			return nil, errutil.Internal(err, "list entries")
		}
	}

	return &models.EntryListResponse{
		Data:       entries,
		Pagination: pagination,
	}, nil
}
