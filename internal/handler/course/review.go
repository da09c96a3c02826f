package course

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ApproveContent approves an episode's generated content.
// @Summary      Approve content
// @Tags         review
// @Produce      json
// @Param        id  path      string  true  "episode id"
// @Success      200 {object}  map[string]interface{}
// @Failure      409 {object}  ErrorResponse
// @Router       /api/v1/episodes/{id}/content/approve [post]
func (h *Handler) ApproveContent(c *gin.Context) {
	if err := h.courseService.ApproveContent(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusConflict, ErrorResponse{
			Code:    40904,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "content approved",
	})
}

// ApproveEpisode gives final approval to an episode.
// @Summary      Approve episode
// @Tags         review
// @Produce      json
// @Param        id  path      string  true  "episode id"
// @Success      200 {object}  map[string]interface{}
// @Failure      409 {object}  ErrorResponse
// @Router       /api/v1/episodes/{id}/approve [post]
func (h *Handler) ApproveEpisode(c *gin.Context) {
	if err := h.courseService.ApproveEpisode(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusConflict, ErrorResponse{
			Code:    40905,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "episode approved",
	})
}

// RequestRevisionRequest carries the reviewer's feedback.
type RequestRevisionRequest struct {
	Feedback string `json:"feedback" binding:"required"`
}

// RequestRevision sends an episode back to content generation.
// @Summary      Request revision
// @Description  Send one episode back to content generation with reviewer feedback. Sibling episodes are untouched.
// @Tags         review
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true  "episode id"
// @Param        request  body      RequestRevisionRequest  true  "revision feedback"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse
// @Router       /api/v1/episodes/{id}/revision [post]
func (h *Handler) RequestRevision(c *gin.Context) {
	var req RequestRevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40003,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	if err := h.courseService.RequestRevision(c.Request.Context(), c.Param("id"), req.Feedback); err != nil {
		c.JSON(http.StatusConflict, ErrorResponse{
			Code:    40906,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "revision requested",
	})
}

// GetErrorReport returns the error report of an episode in needs_review.
// @Summary      Get error report
// @Tags         review
// @Produce      json
// @Param        id  path      string  true  "episode id"
// @Success      200 {object}  map[string]interface{}
// @Failure      404 {object}  ErrorResponse
// @Router       /api/v1/episodes/{id}/error-report [get]
func (h *Handler) GetErrorReport(c *gin.Context) {
	report, err := h.courseService.GetErrorReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    40405,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": report,
	})
}
