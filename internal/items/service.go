package items

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"shareit-backend/internal/platform/httpx"
)

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type store interface {
	UserExists(ctx context.Context, userID int64) (bool, error)
	UserName(ctx context.Context, userID int64) (string, error)
	RequestExists(ctx context.Context, requestID int64) (bool, error)
	Insert(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id int64) (*Item, error)
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]Item, int64, error)
	Search(ctx context.Context, text string, limit, offset int) ([]Item, int64, error)
	Update(ctx context.Context, it *Item) error
	InsertComment(ctx context.Context, cm *Comment) error
	CommentsForItem(ctx context.Context, itemID int64) ([]Comment, error)
	LastBooking(ctx context.Context, itemID int64, now time.Time) (*BookingRef, error)
	NextBooking(ctx context.Context, itemID int64, now time.Time) (*BookingRef, error)
	HasFinishedBooking(ctx context.Context, itemID, userID int64, now time.Time) (bool, error)
}

type Service struct {
	store store
	clock Clock
}

func NewService(conn *sql.DB) *Service {
	return &Service{store: NewStore(conn), clock: realClock{}}
}

func (s *Service) Create(ctx context.Context, req CreateItemRequest, ownerID int64) (*ItemShortResponse, error) {
	ok, err := s.store.UserExists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httpx.ErrNotFound("user not found")
	}

	it := &Item{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Available:   *req.Available,
	}
	if it.Name == "" {
		return nil, httpx.ErrInvalid("name is required")
	}
	if req.RequestID != nil {
		ok, err := s.store.RequestExists(ctx, *req.RequestID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, httpx.ErrNotFound("request not found")
		}
		it.RequestID = sql.NullInt64{Int64: *req.RequestID, Valid: true}
	}

	if err := s.store.Insert(ctx, it); err != nil {
		return nil, err
	}
	resp := toShortResponse(it)
	return &resp, nil
}

// GetByID returns the item with its comments. The last/next booking
// fields are filled only when the viewer is the owner.
func (s *Service) GetByID(ctx context.Context, id, viewerID int64) (*ItemResponse, error) {
	it, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.buildItemResponse(ctx, it, viewerID)
}

// GetAllByOwner lists the owner's items ordered by id, with the same
// page-overshoot fallback as booking listings.
func (s *Service) GetAllByOwner(ctx context.Context, ownerID int64, from, size int) ([]ItemResponse, error) {
	items, total, err := s.store.ListByOwner(ctx, ownerID, size, from*size)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 && total > 0 {
		items, _, err = s.store.ListByOwner(ctx, ownerID, size, lastPage(total, size)*size)
		if err != nil {
			return nil, err
		}
	}

	out := make([]ItemResponse, 0, len(items))
	for i := range items {
		resp, err := s.buildItemResponse(ctx, &items[i], ownerID)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// Search finds available items matching text in name or description.
// Blank text yields an empty result without querying.
func (s *Service) Search(ctx context.Context, text string, from, size int) ([]ItemShortResponse, error) {
	out := []ItemShortResponse{}
	if strings.TrimSpace(text) == "" {
		return out, nil
	}

	items, total, err := s.store.Search(ctx, text, size, from*size)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 && total > 0 {
		items, _, err = s.store.Search(ctx, text, size, lastPage(total, size)*size)
		if err != nil {
			return nil, err
		}
	}

	for i := range items {
		out = append(out, toShortResponse(&items[i]))
	}
	return out, nil
}

// Update applies the non-nil fields of req. Unlike booking permission
// failures this one is a plain 403 for non-owners.
func (s *Service) Update(ctx context.Context, id int64, req UpdateItemRequest, userID int64) (*ItemShortResponse, error) {
	it, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != userID {
		return nil, httpx.ErrPermission("insufficient rights to execute the operation")
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, httpx.ErrInvalid("name must not be blank")
		}
		it.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		it.Description = *req.Description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.store.Update(ctx, it); err != nil {
		return nil, err
	}
	resp := toShortResponse(it)
	return &resp, nil
}

// AddComment records a post-rental comment. The author must have an
// approved booking of the item that already ended.
func (s *Service) AddComment(ctx context.Context, itemID, authorID int64, req CreateCommentRequest) (*CommentResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, httpx.ErrInvalid("text is required")
	}

	if _, err := s.store.GetByID(ctx, itemID); err != nil {
		return nil, err
	}
	authorName, err := s.store.UserName(ctx, authorID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	ok, err := s.store.HasFinishedBooking(ctx, itemID, authorID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httpx.ErrInvalid("you haven't booked this item")
	}

	cm := &Comment{
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: authorName,
		Text:       req.Text,
		Created:    now,
	}
	if err := s.store.InsertComment(ctx, cm); err != nil {
		return nil, err
	}
	resp := toCommentResponse(cm)
	return &resp, nil
}

func (s *Service) buildItemResponse(ctx context.Context, it *Item, viewerID int64) (*ItemResponse, error) {
	comments, err := s.store.CommentsForItem(ctx, it.ID)
	if err != nil {
		return nil, err
	}

	resp := &ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		Comments:    make([]CommentResponse, 0, len(comments)),
	}
	if it.RequestID.Valid {
		v := it.RequestID.Int64
		resp.RequestID = &v
	}
	for i := range comments {
		resp.Comments = append(resp.Comments, toCommentResponse(&comments[i]))
	}

	if it.OwnerID == viewerID {
		now := s.clock.Now()
		last, err := s.store.LastBooking(ctx, it.ID, now)
		if err != nil {
			return nil, err
		}
		next, err := s.store.NextBooking(ctx, it.ID, now)
		if err != nil {
			return nil, err
		}
		resp.LastBooking = toBookingRefDTO(last)
		resp.NextBooking = toBookingRefDTO(next)
	}

	return resp, nil
}

func lastPage(total int64, size int) int {
	pages := (int(total) + size - 1) / size
	return pages - 1
}
