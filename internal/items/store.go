package items

import (
	"context"
	"database/sql"
	"time"

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

func (s *Store) UserName(ctx context.Context, userID int64) (string, error) {
	const q = `SELECT name FROM users WHERE id = ?`
	var name string
	if err := s.db.QueryRowContext(ctx, q, userID).Scan(&name); err != nil {
		if err == sql.ErrNoRows {
			return "", httpx.ErrNotFound("user not found")
		}
		return "", err
	}
	return name, nil
}

func (s *Store) RequestExists(ctx context.Context, requestID int64) (bool, error) {
	const q = `SELECT 1 FROM item_requests WHERE id = ?`
	var one int
	if err := s.db.QueryRowContext(ctx, q, requestID).Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Store) Insert(ctx context.Context, it *Item) error {
	const q = `INSERT INTO items (owner_id, name, description, available, request_id) VALUES (?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q, it.OwnerID, it.Name, it.Description, it.Available, it.RequestID)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	it.ID = id
	return nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (*Item, error) {
	const q = `SELECT id, owner_id, name, description, available, request_id FROM items WHERE id = ?`
	var it Item
	err := s.db.QueryRowContext(ctx, q, id).Scan(&it.ID, &it.OwnerID, &it.Name, &it.Description, &it.Available, &it.RequestID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, httpx.ErrNotFound("item not found")
		}
		return nil, err
	}
	return &it, nil
}

func (s *Store) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]Item, int64, error) {
	const q = `SELECT id, owner_id, name, description, available, request_id
		FROM items WHERE owner_id = ? ORDER BY id ASC LIMIT ? OFFSET ?`
	items, err := s.queryItems(ctx, q, ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items WHERE owner_id = ?`, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Search matches available items by name or description, case
// insensitively under the usual MySQL collation.
func (s *Store) Search(ctx context.Context, text string, limit, offset int) ([]Item, int64, error) {
	const q = `SELECT id, owner_id, name, description, available, request_id
		FROM items
		WHERE available = TRUE AND (name LIKE CONCAT('%', ?, '%') OR description LIKE CONCAT('%', ?, '%'))
		ORDER BY id ASC LIMIT ? OFFSET ?`
	items, err := s.queryItems(ctx, q, text, text, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	const cq = `SELECT COUNT(*) FROM items
		WHERE available = TRUE AND (name LIKE CONCAT('%', ?, '%') OR description LIKE CONCAT('%', ?, '%'))`
	var total int64
	if err := s.db.QueryRowContext(ctx, cq, text, text).Scan(&total); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Store) queryItems(ctx context.Context, q string, args ...any) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OwnerID, &it.Name, &it.Description, &it.Available, &it.RequestID); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s *Store) Update(ctx context.Context, it *Item) error {
	const q = `UPDATE items SET name = ?, description = ?, available = ? WHERE id = ?`
	_, err := s.db.ExecContext(ctx, q, it.Name, it.Description, it.Available, it.ID)
	return err
}

func (s *Store) InsertComment(ctx context.Context, cm *Comment) error {
	const q = `INSERT INTO comments (text, item_id, author_id, created) VALUES (?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q, cm.Text, cm.ItemID, cm.AuthorID, cm.Created)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	cm.ID = id
	return nil
}

func (s *Store) CommentsForItem(ctx context.Context, itemID int64) ([]Comment, error) {
	const q = `SELECT c.id, c.item_id, c.author_id, u.name, c.text, c.created
		FROM comments c JOIN users u ON u.id = c.author_id
		WHERE c.item_id = ? ORDER BY c.created ASC`
	rows, err := s.db.QueryContext(ctx, q, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Comment
	for rows.Next() {
		var cm Comment
		if err := rows.Scan(&cm.ID, &cm.ItemID, &cm.AuthorID, &cm.AuthorName, &cm.Text, &cm.Created); err != nil {
			return nil, err
		}
		out = append(out, cm)
	}
	return out, rows.Err()
}

// LastBooking is the most recent approved booking of the item that
// started before now, latest end first.
func (s *Store) LastBooking(ctx context.Context, itemID int64, now time.Time) (*BookingRef, error) {
	const q = `SELECT id, booker_id, start_time, end_time FROM bookings
		WHERE item_id = ? AND status = 'APPROVED' AND start_time < ?
		ORDER BY end_time DESC LIMIT 1`
	return s.queryBookingRef(ctx, q, itemID, now)
}

// NextBooking is the earliest approved booking starting after now.
func (s *Store) NextBooking(ctx context.Context, itemID int64, now time.Time) (*BookingRef, error) {
	const q = `SELECT id, booker_id, start_time, end_time FROM bookings
		WHERE item_id = ? AND status = 'APPROVED' AND start_time > ?
		ORDER BY start_time ASC LIMIT 1`
	return s.queryBookingRef(ctx, q, itemID, now)
}

func (s *Store) queryBookingRef(ctx context.Context, q string, itemID int64, now time.Time) (*BookingRef, error) {
	var ref BookingRef
	if err := s.db.QueryRowContext(ctx, q, itemID, now).Scan(&ref.ID, &ref.BookerID, &ref.Start, &ref.End); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &ref, nil
}

// HasFinishedBooking reports whether the user has an approved booking of
// the item that already ended. This gates commenting.
func (s *Store) HasFinishedBooking(ctx context.Context, itemID, userID int64, now time.Time) (bool, error) {
	const q = `SELECT 1 FROM bookings
		WHERE item_id = ? AND booker_id = ? AND status = 'APPROVED' AND end_time < ?
		LIMIT 1`
	var one int
	if err := s.db.QueryRowContext(ctx, q, itemID, userID, now).Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
