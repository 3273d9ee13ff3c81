package items

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shareit-backend/internal/platform/httpx"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/items", h.Create)
	r.GET("/items/:itemId", h.GetByID)
	r.GET("/items", h.GetAllByOwner)
	r.GET("/items/search", h.Search)
	r.PATCH("/items/:itemId", h.Update)
	r.POST("/items/:itemId/comment", h.AddComment)
}

func (h *Handler) Create(c *gin.Context) {
	userID, err := httpx.SharerID(c)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	var req CreateItemRequest
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

func (h *Handler) GetByID(c *gin.Context) {
	userID, err := httpx.SharerID(c)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	itemID, err := pathID(c)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}

	res, err := h.svc.GetByID(c.Request.Context(), itemID, userID)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetAllByOwner(c *gin.Context) {
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

	res, err := h.svc.GetAllByOwner(c.Request.Context(), userID, from, size)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Search(c *gin.Context) {
	from, size, err := httpx.ParsePage(c, 0, 20)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}

	res, err := h.svc.Search(c.Request.Context(), c.Query("text"), from, size)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Update(c *gin.Context) {
	userID, err := httpx.SharerID(c)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	itemID, err := pathID(c)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, httpx.ErrInvalid("invalid json"))
		return
	}

	res, err := h.svc.Update(c.Request.Context(), itemID, req, userID)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) AddComment(c *gin.Context) {
	userID, err := httpx.SharerID(c)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	itemID, err := pathID(c)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, httpx.ErrInvalid("invalid json or missing required fields"))
		return
	}

	res, err := h.svc.AddComment(c.Request.Context(), itemID, userID, req)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, httpx.ErrInvalid("itemId must be a positive integer")
	}
	return id, nil
}
