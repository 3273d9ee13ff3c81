package requests

import "time"

type CreateRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

type RequestResponse struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
}

// RequestWithItemsResponse is a request plus the items already listed in
// answer to it.
type RequestWithItemsResponse struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Created     time.Time       `json:"created"`
	Items       []AnswerItemDTO `json:"items"`
}

type AnswerItemDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   int64  `json:"requestId"`
}

func toResponse(r *ItemRequest) RequestResponse {
	return RequestResponse{ID: r.ID, Description: r.Description, Created: r.Created}
}

func toWithItemsResponse(r *ItemRequest, items []AnswerItem) RequestWithItemsResponse {
	resp := RequestWithItemsResponse{
		ID:          r.ID,
		Description: r.Description,
		Created:     r.Created,
		Items:       make([]AnswerItemDTO, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, AnswerItemDTO{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Available:   it.Available,
			RequestID:   it.RequestID,
		})
	}
	return resp
}
