package bookings

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"shareit-backend/internal/platform/db"
	"shareit-backend/internal/platform/httpx"
)

type Store struct {
	db *sql.DB
}

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

const bookingColumns = `
	b.id, b.item_id, i.name, i.owner_id, b.booker_id, u.name, b.start_time, b.end_time, b.status
	FROM bookings b
	JOIN items i ON i.id = b.item_id
	JOIN users u ON u.id = b.booker_id`

func scanBooking(row interface{ Scan(...any) error }, b *Booking) error {
	return row.Scan(&b.ID, &b.ItemID, &b.ItemName, &b.OwnerID, &b.BookerID, &b.BookerName,
		&b.Start, &b.End, &b.Status)
}

func (s *Store) ItemInfo(ctx context.Context, itemID int64) (*ItemInfo, error) {
	const q = `SELECT id, owner_id, name, available FROM items WHERE id = ?`
	var it ItemInfo
	if err := s.db.QueryRowContext(ctx, q, itemID).Scan(&it.ID, &it.OwnerID, &it.Name, &it.Available); err != nil {
		if err == sql.ErrNoRows {
			return nil, httpx.ErrNotFound("item not found")
		}
		return nil, err
	}
	return &it, nil
}

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

func (s *Store) Insert(ctx context.Context, b *Booking) error {
	const q = `INSERT INTO bookings (item_id, booker_id, start_time, end_time, status) VALUES (?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q, b.ItemID, b.BookerID, b.Start, b.End, b.Status)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	b.ID = id
	return nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (*Booking, error) {
	q := `SELECT` + bookingColumns + ` WHERE b.id = ?`
	var b Booking
	if err := scanBooking(s.db.QueryRowContext(ctx, q, id), &b); err != nil {
		if err == sql.ErrNoRows {
			return nil, httpx.ErrNotFound("booking not found")
		}
		return nil, err
	}
	return &b, nil
}

// TransitionStatus re-reads the current status under a row lock before
// writing, so two concurrent approvals can't both pass the
// already-approved check.
func (s *Store) TransitionStatus(ctx context.Context, id int64, next Status) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		const sel = `SELECT status FROM bookings WHERE id = ? FOR UPDATE`
		var current Status
		if err := tx.QueryRowContext(ctx, sel, id).Scan(&current); err != nil {
			if err == sql.ErrNoRows {
				return httpx.ErrNotFound("booking not found")
			}
			return err
		}
		if current == StatusApproved {
			return httpx.ErrInvalid("booking was approved")
		}
		const upd = `UPDATE bookings SET status = ? WHERE id = ?`
		_, err := tx.ExecContext(ctx, upd, next, id)
		return err
	})
}

// List returns one page of bookings for a booker or an owner plus the
// total row count for the same filter, ordered by start time descending.
func (s *Store) List(ctx context.Context, userID int64, state State, asOwner bool, now time.Time, limit, offset int) ([]Booking, int64, error) {
	where, args := buildListFilter(userID, state, asOwner, now)

	sb := strings.Builder{}
	sb.WriteString(`SELECT`)
	sb.WriteString(bookingColumns)
	sb.WriteString(where)
	sb.WriteString(` ORDER BY b.start_time DESC LIMIT ? OFFSET ?`)

	rows, err := s.db.QueryContext(ctx, sb.String(), append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		var b Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	cb := strings.Builder{}
	cb.WriteString(`SELECT COUNT(*) FROM bookings b JOIN items i ON i.id = b.item_id JOIN users u ON u.id = b.booker_id`)
	cb.WriteString(where)
	var total int64
	if err := s.db.QueryRowContext(ctx, cb.String(), args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

func buildListFilter(userID int64, state State, asOwner bool, now time.Time) (string, []any) {
	sb := strings.Builder{}
	args := []any{}

	if asOwner {
		sb.WriteString(` WHERE i.owner_id = ?`)
	} else {
		sb.WriteString(` WHERE b.booker_id = ?`)
	}
	args = append(args, userID)

	switch state {
	case StateCurrent:
		sb.WriteString(` AND b.start_time < ? AND b.end_time > ?`)
		args = append(args, now, now)
	case StatePast:
		sb.WriteString(` AND b.end_time < ?`)
		args = append(args, now)
	case StateFuture:
		sb.WriteString(` AND b.start_time > ?`)
		args = append(args, now)
	case StateWaiting:
		sb.WriteString(` AND b.status = ?`)
		args = append(args, StatusWaiting)
	case StateRejected:
		sb.WriteString(` AND b.status = ?`)
		args = append(args, StatusRejected)
	}

	return sb.String(), args
}
