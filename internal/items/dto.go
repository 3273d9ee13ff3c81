package items

import "time"

type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId"`
}

// UpdateItemRequest is a partial update: only non-nil fields overwrite.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type ItemShortResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

type ItemResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Available   bool              `json:"available"`
	RequestID   *int64            `json:"requestId,omitempty"`
	LastBooking *BookingRefDTO    `json:"lastBooking"`
	NextBooking *BookingRefDTO    `json:"nextBooking"`
	Comments    []CommentResponse `json:"comments"`
}

type BookingRefDTO struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

func toShortResponse(it *Item) ItemShortResponse {
	resp := ItemShortResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
	}
	if it.RequestID.Valid {
		v := it.RequestID.Int64
		resp.RequestID = &v
	}
	return resp
}

func toBookingRefDTO(ref *BookingRef) *BookingRefDTO {
	if ref == nil {
		return nil
	}
	return &BookingRefDTO{ID: ref.ID, BookerID: ref.BookerID, Start: ref.Start, End: ref.End}
}

func toCommentResponse(cm *Comment) CommentResponse {
	return CommentResponse{ID: cm.ID, Text: cm.Text, AuthorName: cm.AuthorName, Created: cm.Created}
}
