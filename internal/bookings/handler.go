package bookings

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shareit-backend/internal/platform/httpx"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/bookings", h.Create)
	r.PATCH("/bookings/:bookingId", h.Approve)
	r.GET("/bookings/:bookingId", h.GetByID)
	r.GET("/bookings", h.ListByBooker)
	r.GET("/bookings/owner", h.ListByOwner)
}

func (h *Handler) Create(c *gin.Context) {
	userID, err := httpx.SharerID(c)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, httpx.ErrInvalid("invalid json or missing required fields"))
		return
	}

	res, err := h.svc.Create(c.Request.Context(), req, userID)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) Approve(c *gin.Context) {
	userID, err := httpx.SharerID(c)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	bookingID, err := pathID(c, "bookingId")
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		httpx.WriteError(c, httpx.ErrInvalid("approved must be true or false"))
		return
	}

	res, err := h.svc.Approve(c.Request.Context(), bookingID, approved, userID)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetByID(c *gin.Context) {
	userID, err := httpx.SharerID(c)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	bookingID, err := pathID(c, "bookingId")
	if err != nil {
		httpx.WriteError(c, err)
		return
	}

	res, err := h.svc.GetByID(c.Request.Context(), bookingID, userID)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListByBooker(c *gin.Context) { h.list(c, false) }
func (h *Handler) ListByOwner(c *gin.Context)  { h.list(c, true) }

func (h *Handler) list(c *gin.Context, asOwner bool) {
	userID, err := httpx.SharerID(c)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	state, err := ParseState(c.Query("state"))
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	from, size, err := httpx.ParsePage(c, 0, 20)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}

	res, err := h.svc.List(c.Request.Context(), userID, state, from, size, asOwner)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, httpx.ErrInvalid(name + " must be a positive integer")
	}
	return id, nil
}
