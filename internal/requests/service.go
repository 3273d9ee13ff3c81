package requests

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
	Insert(ctx context.Context, r *ItemRequest) error
	GetByID(ctx context.Context, id int64) (*ItemRequest, error)
	ListByRequester(ctx context.Context, userID int64) ([]ItemRequest, error)
	ListOthers(ctx context.Context, userID int64, limit, offset int) ([]ItemRequest, int64, error)
	ItemsForRequest(ctx context.Context, requestID int64) ([]AnswerItem, error)
}

type Service struct {
	store store
	clock Clock
}

func NewService(conn *sql.DB) *Service {
	return &Service{store: NewStore(conn), clock: realClock{}}
}

func (s *Service) Create(ctx context.Context, req CreateRequestRequest, userID int64) (*RequestResponse, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, httpx.ErrInvalid("description is required")
	}

	r := &ItemRequest{
		Description: req.Description,
		RequesterID: userID,
		Created:     s.clock.Now(),
	}
	if err := s.store.Insert(ctx, r); err != nil {
		return nil, err
	}
	resp := toResponse(r)
	return &resp, nil
}

// GetAllByRequester lists the caller's own requests, newest first, each
// with the items answering it.
func (s *Service) GetAllByRequester(ctx context.Context, userID int64) ([]RequestWithItemsResponse, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	list, err := s.store.ListByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, list)
}

// GetAll pages through other users' requests with the last-page
// fallback on overshoot.
func (s *Service) GetAll(ctx context.Context, userID int64, from, size int) ([]RequestWithItemsResponse, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	list, total, err := s.store.ListOthers(ctx, userID, size, from*size)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 && total > 0 {
		list, _, err = s.store.ListOthers(ctx, userID, size, lastPage(total, size)*size)
		if err != nil {
			return nil, err
		}
	}
	return s.withItems(ctx, list)
}

func (s *Service) GetByID(ctx context.Context, id, userID int64) (*RequestWithItemsResponse, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	r, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.store.ItemsForRequest(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	resp := toWithItemsResponse(r, items)
	return &resp, nil
}

func (s *Service) requireUser(ctx context.Context, userID int64) error {
	ok, err := s.store.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return httpx.ErrNotFound("user not found")
	}
	return nil
}

func (s *Service) withItems(ctx context.Context, list []ItemRequest) ([]RequestWithItemsResponse, error) {
	out := make([]RequestWithItemsResponse, 0, len(list))
	for i := range list {
		items, err := s.store.ItemsForRequest(ctx, list[i].ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toWithItemsResponse(&list[i], items))
	}
	return out, nil
}

func lastPage(total int64, size int) int {
	pages := (int(total) + size - 1) / size
	return pages - 1
}
