package course

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coursesvc "revcast/internal/service/course"
)

// CreateChapterRequest is the chapter registration payload.
type CreateChapterRequest struct {
	Title       string `json:"title" binding:"required"`
	Subject     string `json:"subject" binding:"required"`
	GradeBand   string `json:"grade_band" binding:"required"`
	Curriculum  string `json:"curriculum"`
	Language    string `json:"language"`
	ChapterText string `json:"chapter_text" binding:"required"`
}

// CreateChapter registers a textbook chapter for episode production.
// @Summary      Create chapter
// @Description  Register chapter text as the input of the revision episode pipeline. Unsupported subjects are rejected.
// @Tags         chapters
// @Accept       json
// @Produce      json
// @Param        request  body      CreateChapterRequest  true  "chapter payload"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /api/v1/chapters [post]
func (h *Handler) CreateChapter(c *gin.Context) {
	var req CreateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	ch, err := h.courseService.CreateChapter(c.Request.Context(), &coursesvc.CreateChapterRequest{
		Title:       req.Title,
		Subject:     req.Subject,
		GradeBand:   req.GradeBand,
		Curriculum:  req.Curriculum,
		Language:    req.Language,
		ChapterText: req.ChapterText,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40002,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "chapter created",
		"data":    toChapterInfo(ch),
	})
}
