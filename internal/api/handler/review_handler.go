package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/service"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) List(c *gin.Context) {
	id, ok := titleID(c)
	if !ok {
		return
	}

	page, err := h.reviewService.List(c.Request.Context(), id, dto.PageParamsFromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ReviewHandler) Get(c *gin.Context) {
	tID, ok := titleID(c)
	if !ok {
		return
	}
	rID, ok := reviewID(c)
	if !ok {
		return
	}

	review, err := h.reviewService.Get(c.Request.Context(), tID, rID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	id, ok := titleID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	tID, ok := titleID(c)
	if !ok {
		return
	}
	rID, ok := reviewID(c)
	if !ok {
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), middleware.ActorFrom(c), tID, rID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	tID, ok := titleID(c)
	if !ok {
		return
	}
	rID, ok := reviewID(c)
	if !ok {
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), middleware.ActorFrom(c), tID, rID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func reviewID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
		return 0, false
	}
	return id, true
}
