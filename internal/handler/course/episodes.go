package course

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetEpisode returns one episode with its workflow state.
// @Summary      Get episode
// @Tags         episodes
// @Produce      json
// @Param        id  path      string  true  "episode id"
// @Success      200 {object}  map[string]interface{}
// @Failure      404 {object}  ErrorResponse
// @Router       /api/v1/episodes/{id} [get]
func (h *Handler) GetEpisode(c *gin.Context) {
	episode, err := h.courseService.GetEpisode(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    40404,
			Message: "episode not found",
			Detail:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": toEpisodeInfo(episode),
	})
}

// ListEpisodes returns a chapter's episodes in order.
// @Summary      List episodes
// @Tags         episodes
// @Produce      json
// @Param        id  path      string  true  "chapter id"
// @Success      200 {object}  map[string]interface{}
// @Failure      500 {object}  ErrorResponse
// @Router       /api/v1/chapters/{id}/episodes [get]
func (h *Handler) ListEpisodes(c *gin.Context) {
	episodes, err := h.courseService.ListEpisodes(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50004,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": gin.H{
			"episodes": toEpisodeInfoList(episodes),
			"total":    len(episodes),
		},
	})
}
