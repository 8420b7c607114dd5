package handler

import (
	reviewapp "github.com/foodhub/backend/internal/application/review"
	"github.com/gin-gonic/gin"
)

// ReviewHandler handles review submission
type ReviewHandler struct {
	BaseHandler
	reviews *reviewapp.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviews *reviewapp.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// Submit godoc
// @Summary      Submit a review
// @Description  Attach a rated review to one of the caller's orders and flag the order reviewed
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        request body reviewapp.SubmitReviewRequest true "Request body"
// @Success      200 {object} dto.Response{data=reviewapp.ReviewResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /reviews [post]
func (h *ReviewHandler) Submit(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}
	var req reviewapp.SubmitReviewRequest
	if !h.BindJSON(c, &req) {
		return
	}

	r, err := h.reviews.SubmitReview(c.Request.Context(), authorOf(p), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "Review created successfully", r)
}
