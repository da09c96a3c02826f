package course

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GenerateChapterContent generates content for every pending episode
// of the chapter's approved plan.
// @Summary      Generate chapter content
// @Description  Generate scripts and question sets for all pending episodes. Episodes that exhaust their repair budget land in needs_review without failing the rest.
// @Tags         content
// @Produce      json
// @Param        id  path      string  true  "chapter id"
// @Success      200 {object}  map[string]interface{}
// @Failure      409 {object}  ErrorResponse
// @Router       /api/v1/chapters/{id}/content [post]
func (h *Handler) GenerateChapterContent(c *gin.Context) {
	if err := h.courseService.GenerateContentForChapter(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusConflict, ErrorResponse{
			Code:    40902,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "chapter content generated",
	})
}

// GenerateEpisodeContent generates content for one episode.
// @Summary      Generate episode content
// @Tags         content
// @Produce      json
// @Param        id  path      string  true  "episode id"
// @Success      200 {object}  map[string]interface{}
// @Failure      409 {object}  ErrorResponse
// @Router       /api/v1/episodes/{id}/content [post]
func (h *Handler) GenerateEpisodeContent(c *gin.Context) {
	if err := h.courseService.GenerateContentForEpisode(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusConflict, ErrorResponse{
			Code:    40903,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "episode content generated",
	})
}
