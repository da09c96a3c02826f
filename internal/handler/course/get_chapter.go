package course

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetChapter returns one chapter.
// @Summary      Get chapter
// @Tags         chapters
// @Produce      json
// @Param        id  path      string  true  "chapter id"
// @Success      200 {object}  map[string]interface{}
// @Failure      404 {object}  ErrorResponse
// @Router       /api/v1/chapters/{id} [get]
func (h *Handler) GetChapter(c *gin.Context) {
	ch, err := h.courseService.GetChapter(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    40401,
			Message: "chapter not found",
			Detail:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": toChapterInfo(ch),
	})
}

// ListChapters lists chapters, newest first.
// @Summary      List chapters
// @Tags         chapters
// @Produce      json
// @Param        subject  query     string  false  "filter by subject"
// @Param        limit    query     int     false  "max results"
// @Success      200      {object}  map[string]interface{}
// @Failure      500      {object}  ErrorResponse
// @Router       /api/v1/chapters [get]
func (h *Handler) ListChapters(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)

	chapters, err := h.courseService.ListChapters(c.Request.Context(), c.Query("subject"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": gin.H{
			"chapters": toChapterInfoList(chapters),
			"total":    len(chapters),
		},
	})
}
