package requests

import (
	"context"
	"database/sql"

	"shareit-backend/internal/platform/httpx"
)

type Store struct {
	db *sql.DB
}

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

func (s *Store) UserExists(ctx context.Context, userID int64) (bool, error) {
	const q = `SELECT 1 FROM users WHERE id = ?`
	var one int
	if err := s.db.QueryRowContext(ctx, q, userID).Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Store) Insert(ctx context.Context, r *ItemRequest) error {
	const q = `INSERT INTO item_requests (description, requester_id, created) VALUES (?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q, r.Description, r.RequesterID, r.Created)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	r.ID = id
	return nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (*ItemRequest, error) {
	const q = `SELECT id, description, requester_id, created FROM item_requests WHERE id = ?`
	var r ItemRequest
	if err := s.db.QueryRowContext(ctx, q, id).Scan(&r.ID, &r.Description, &r.RequesterID, &r.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, httpx.ErrNotFound("request not found")
		}
		return nil, err
	}
	return &r, nil
}

func (s *Store) ListByRequester(ctx context.Context, userID int64) ([]ItemRequest, error) {
	const q = `SELECT id, description, requester_id, created FROM item_requests
		WHERE requester_id = ? ORDER BY created DESC`
	return s.queryRequests(ctx, q, userID)
}

// ListOthers pages through requests made by everyone except userID,
// newest first.
func (s *Store) ListOthers(ctx context.Context, userID int64, limit, offset int) ([]ItemRequest, int64, error) {
	const q = `SELECT id, description, requester_id, created FROM item_requests
		WHERE requester_id <> ? ORDER BY created DESC LIMIT ? OFFSET ?`
	out, err := s.queryRequests(ctx, q, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM item_requests WHERE requester_id <> ?`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *Store) queryRequests(ctx context.Context, q string, args ...any) ([]ItemRequest, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ItemRequest
	for rows.Next() {
		var r ItemRequest
		if err := rows.Scan(&r.ID, &r.Description, &r.RequesterID, &r.Created); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) ItemsForRequest(ctx context.Context, requestID int64) ([]AnswerItem, error) {
	const q = `SELECT id, name, description, available, request_id FROM items WHERE request_id = ?`
	rows, err := s.db.QueryContext(ctx, q, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AnswerItem
	for rows.Next() {
		var it AnswerItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.RequestID); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
