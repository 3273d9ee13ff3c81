package bookings

import "time"

type CreateBookingRequest struct {
	ItemID int64      `json:"itemId" binding:"required"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

type BookingResponse struct {
	ID     int64         `json:"id"`
	Start  time.Time     `json:"start"`
	End    time.Time     `json:"end"`
	Status Status        `json:"status"`
	Booker BookerShort   `json:"booker"`
	Item   BookedItemRef `json:"item"`
}

type BookerShort struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookedItemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toResponse(b *Booking) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status,
		Booker: BookerShort{ID: b.BookerID, Name: b.BookerName},
		Item:   BookedItemRef{ID: b.ItemID, Name: b.ItemName},
	}
}
