package course

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExtractConcepts runs concept extraction for a chapter.
// @Summary      Extract concepts
// @Description  Extract teachable concepts from the chapter text. Unchanged text is served from cache.
// @Tags         concepts
// @Produce      json
// @Param        id  path      string  true  "chapter id"
// @Success      200 {object}  map[string]interface{}
// @Failure      500 {object}  ErrorResponse
// @Router       /api/v1/chapters/{id}/concepts [post]
func (h *Handler) ExtractConcepts(c *gin.Context) {
	set, err := h.courseService.ExtractConcepts(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50002,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "concepts extracted",
		"data":    set,
	})
}

// GetConcepts returns the latest concept set for a chapter.
// @Summary      Get concepts
// @Tags         concepts
// @Produce      json
// @Param        id  path      string  true  "chapter id"
// @Success      200 {object}  map[string]interface{}
// @Failure      404 {object}  ErrorResponse
// @Router       /api/v1/chapters/{id}/concepts [get]
func (h *Handler) GetConcepts(c *gin.Context) {
	set, err := h.courseService.GetConcepts(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    40402,
			Message: "no concept set for chapter",
			Detail:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": set,
	})
}
