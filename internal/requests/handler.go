package requests

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shareit-backend/internal/platform/httpx"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/requests", h.Create)
	r.GET("/requests", h.GetAllByRequester)
	r.GET("/requests/all", h.GetAll)
	r.GET("/requests/:requestId", h.GetByID)
}

func (h *Handler) Create(c *gin.Context) {
	userID, err := httpx.SharerID(c)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	var req CreateRequestRequest
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

func (h *Handler) GetAllByRequester(c *gin.Context) {
	userID, err := httpx.SharerID(c)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}

	res, err := h.svc.GetAllByRequester(c.Request.Context(), userID)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetAll(c *gin.Context) {
	userID, err := httpx.SharerID(c)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	from, size, err := httpx.ParsePage(c, 0, 20)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}

	res, err := h.svc.GetAll(c.Request.Context(), userID, from, size)
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
	requestID, err := strconv.ParseInt(c.Param("requestId"), 10, 64)
	if err != nil || requestID <= 0 {
		httpx.WriteError(c, httpx.ErrInvalid("requestId must be a positive integer"))
		return
	}

	res, err := h.svc.GetByID(c.Request.Context(), requestID, userID)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
