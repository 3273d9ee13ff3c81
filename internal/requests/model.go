package requests

import "time"

// ItemRequest is an item_requests table row. Created is server-assigned
// at creation time and never changes.
type ItemRequest struct {
	ID          int64
	Description string
	RequesterID int64
	Created     time.Time
}

// AnswerItem is an item listed in answer to a request.
type AnswerItem struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	RequestID   int64
}
