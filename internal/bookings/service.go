package bookings

import (
	"context"
	"database/sql"
	"time"

	"shareit-backend/internal/platform/httpx"
)

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type store interface {
	ItemInfo(ctx context.Context, itemID int64) (*ItemInfo, error)
	UserExists(ctx context.Context, userID int64) (bool, error)
	Insert(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	TransitionStatus(ctx context.Context, id int64, next Status) error
	List(ctx context.Context, userID int64, state State, asOwner bool, now time.Time, limit, offset int) ([]Booking, int64, error)
}

type Service struct {
	store store
	clock Clock
}

func NewService(conn *sql.DB) *Service {
	return &Service{store: NewStore(conn), clock: realClock{}}
}

// Create persists a new WAITING booking after the invariant checks.
// Overlapping bookings on the same item are not rejected here; approval
// by the owner is the only gate.
func (s *Service) Create(ctx context.Context, req CreateBookingRequest, bookerID int64) (*BookingResponse, error) {
	item, err := s.store.ItemInfo(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	ok, err := s.store.UserExists(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httpx.ErrNotFound("user not found")
	}

	if !item.Available {
		return nil, httpx.ErrInvalid("item is unavailable")
	}
	if err := s.timeRangeValidation(req.Start, req.End); err != nil {
		return nil, err
	}
	// owners can't book their own items; reported as not-found so the
	// caller learns nothing about ownership
	if item.OwnerID == bookerID {
		return nil, httpx.ErrNoAccess("item not found")
	}

	b := &Booking{
		ItemID:   item.ID,
		BookerID: bookerID,
		Start:    *req.Start,
		End:      *req.End,
		Status:   StatusWaiting,
	}
	if err := s.store.Insert(ctx, b); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, b.ID, bookerID)
}

func (s *Service) timeRangeValidation(start, end *time.Time) error {
	if start == nil || end == nil {
		return httpx.ErrInvalid("incorrect booking time")
	}
	now := s.clock.Now()
	if !start.Before(*end) || start.Before(now) || end.Before(now) {
		return httpx.ErrInvalid("incorrect booking time")
	}
	return nil
}

// Approve moves a WAITING booking to APPROVED or REJECTED. Only the item
// owner may do this; anyone else gets the masked not-found. A booking
// that is already APPROVED can't be touched again; a REJECTED one can
// still be re-rejected or approved.
func (s *Service) Approve(ctx context.Context, bookingID int64, approved bool, actorID int64) (*BookingResponse, error) {
	b, err := s.store.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != actorID {
		return nil, httpx.ErrNoAccess("insufficient rights to execute the operation")
	}
	if b.Status == StatusApproved {
		return nil, httpx.ErrInvalid("booking was approved")
	}

	next := StatusRejected
	if approved {
		next = StatusApproved
	}
	if err := s.store.TransitionStatus(ctx, bookingID, next); err != nil {
		return nil, err
	}

	b.Status = next
	resp := toResponse(b)
	return &resp, nil
}

// GetByID is visible to the booker and the item owner only.
func (s *Service) GetByID(ctx context.Context, bookingID, viewerID int64) (*BookingResponse, error) {
	b, err := s.store.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.BookerID != viewerID && b.OwnerID != viewerID {
		return nil, httpx.ErrNoAccess("insufficient rights to execute the operation")
	}
	resp := toResponse(b)
	return &resp, nil
}

// List returns bookings by booker (asOwner=false) or by item owner,
// filtered by state and ordered by start time descending. from is a page
// index; when it points past the data the last non-empty page is
// returned instead, with a single corrective re-query.
func (s *Service) List(ctx context.Context, userID int64, state State, from, size int, asOwner bool) ([]BookingResponse, error) {
	ok, err := s.store.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httpx.ErrNotFound("user not found")
	}

	now := s.clock.Now()
	rows, total, err := s.store.List(ctx, userID, state, asOwner, now, size, from*size)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 && total > 0 {
		last := lastPage(total, size)
		rows, _, err = s.store.List(ctx, userID, state, asOwner, now, size, last*size)
		if err != nil {
			return nil, err
		}
	}

	out := make([]BookingResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toResponse(&rows[i]))
	}
	return out, nil
}

func lastPage(total int64, size int) int {
	pages := (int(total) + size - 1) / size
	return pages - 1
}
