package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/service"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) List(c *gin.Context) {
	tID, rID, ok := reviewPath(c)
	if !ok {
		return
	}

	page, err := h.commentService.List(c.Request.Context(), tID, rID, dto.PageParamsFromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *CommentHandler) Get(c *gin.Context) {
	tID, rID, ok := reviewPath(c)
	if !ok {
		return
	}
	cID, ok := commentID(c)
	if !ok {
		return
	}

	comment, err := h.commentService.Get(c.Request.Context(), tID, rID, cID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Create(c *gin.Context) {
	tID, rID, ok := reviewPath(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), middleware.ActorFrom(c), tID, rID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) Update(c *gin.Context) {
	tID, rID, ok := reviewPath(c)
	if !ok {
		return
	}
	cID, ok := commentID(c)
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), middleware.ActorFrom(c), tID, rID, cID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	tID, rID, ok := reviewPath(c)
	if !ok {
		return
	}
	cID, ok := commentID(c)
	if !ok {
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), middleware.ActorFrom(c), tID, rID, cID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func reviewPath(c *gin.Context) (titleID, reviewID int64, ok bool) {
	titleID, err := strconv.ParseInt(c.Param("title_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "title not found"})
		return 0, 0, false
	}
	reviewID, err = strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
		return 0, 0, false
	}
	return titleID, reviewID, true
}

func commentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("comment_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		return 0, false
	}
	return id, true
}
