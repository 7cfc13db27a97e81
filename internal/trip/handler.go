package trip

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"smartcart/internal/maps"
	"smartcart/internal/plan"
	"smartcart/internal/store"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// POST /trips
func (h *Handler) Optimize(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := h.service.Optimize(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		switch {
		case errors.Is(err, plan.ErrNoItems),
			errors.Is(err, ErrMissingOrigin),
			errors.Is(err, store.ErrInvalidLocation),
			errors.Is(err, maps.ErrZeroResults):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to optimize trip"})
		}
		return
	}

	c.JSON(http.StatusOK, res)
}

// GET /trips/me
func (h *Handler) ListMine(c *gin.Context) {
	results, err := h.service.ListMine(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list trips"})
		return
	}
	if results == nil {
		results = []*Result{}
	}

	c.JSON(http.StatusOK, gin.H{"trips": results})
}

// GET /trips/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trip id"})
		return
	}

	res, err := h.service.Get(c.Request.Context(), c.GetString("userID"), id)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "trip not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load trip"})
		return
	}

	c.JSON(http.StatusOK, res)
}
