package items

import (
	"database/sql"
	"time"
)

// Item is an items table row. RequestID links the item to the request it
// was listed in answer to, if any.
type Item struct {
	ID          int64
	OwnerID     int64
	Name        string
	Description string
	Available   bool
	RequestID   sql.NullInt64
}

// Comment is a comments table row joined with the author's name.
type Comment struct {
	ID         int64
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Text       string
	Created    time.Time
}

// BookingRef is the slim view of a booking shown on an item: the most
// recent approved booking already started, and the next approved one.
type BookingRef struct {
	ID       int64
	BookerID int64
	Start    time.Time
	End      time.Time
}
