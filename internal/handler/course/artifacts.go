package course

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetScript returns the latest script version for an episode.
// @Summary      Get script
// @Tags         artifacts
// @Produce      json
// @Param        id  path      string  true  "episode id"
// @Success      200 {object}  map[string]interface{}
// @Failure      404 {object}  ErrorResponse
// @Router       /api/v1/episodes/{id}/script [get]
func (h *Handler) GetScript(c *gin.Context) {
	script, err := h.courseService.GetScript(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    40406,
			Message: "no script for episode",
			Detail:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": script,
	})
}

// GetMCQSet returns the latest question set version for an episode.
// @Summary      Get question set
// @Tags         artifacts
// @Produce      json
// @Param        id  path      string  true  "episode id"
// @Success      200 {object}  map[string]interface{}
// @Failure      404 {object}  ErrorResponse
// @Router       /api/v1/episodes/{id}/mcqs [get]
func (h *Handler) GetMCQSet(c *gin.Context) {
	set, err := h.courseService.GetMCQSet(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    40407,
			Message: "no question set for episode",
			Detail:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": set,
	})
}

// GenerateAudio synthesizes and validates the episode audio.
// @Summary      Generate audio
// @Description  Synthesize the approved script into one audio file, validate duration and segment gaps, and store the artifact.
// @Tags         artifacts
// @Produce      json
// @Param        id  path      string  true  "episode id"
// @Success      200 {object}  map[string]interface{}
// @Failure      409 {object}  ErrorResponse
// @Router       /api/v1/episodes/{id}/audio [post]
func (h *Handler) GenerateAudio(c *gin.Context) {
	audio, err := h.courseService.GenerateAudioForEpisode(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusConflict, ErrorResponse{
			Code:    40907,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "audio generated",
		"data":    audio,
	})
}

// GetAudio returns the latest audio version for an episode.
// @Summary      Get audio
// @Tags         artifacts
// @Produce      json
// @Param        id  path      string  true  "episode id"
// @Success      200 {object}  map[string]interface{}
// @Failure      404 {object}  ErrorResponse
// @Router       /api/v1/episodes/{id}/audio [get]
func (h *Handler) GetAudio(c *gin.Context) {
	audio, err := h.courseService.GetAudio(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    40408,
			Message: "no audio for episode",
			Detail:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": audio,
	})
}
