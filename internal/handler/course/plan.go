package course

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"revcast/internal/pkg/coursetools"
)

// PlanEpisodes creates a draft episode plan for a chapter.
// @Summary      Plan episodes
// @Description  Partition the extracted concepts into a draft episode plan. Malformed concept data or a cyclic prerequisite graph fails the whole chapter.
// @Tags         plans
// @Produce      json
// @Param        id  path      string  true  "chapter id"
// @Success      201 {object}  map[string]interface{}
// @Failure      422 {object}  ErrorResponse
// @Failure      500 {object}  ErrorResponse
// @Router       /api/v1/chapters/{id}/plan [post]
func (h *Handler) PlanEpisodes(c *gin.Context) {
	plan, err := h.courseService.PlanEpisodes(c.Request.Context(), c.Param("id"))
	if err != nil {
		var planErr *coursetools.PlanningError
		if errors.As(err, &planErr) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Code:    42201,
				Message: planErr.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50003,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "episode plan created",
		"data":    toPlanInfo(plan),
	})
}

// GetPlan returns the latest plan for a chapter.
// @Summary      Get plan
// @Tags         plans
// @Produce      json
// @Param        id  path      string  true  "chapter id"
// @Success      200 {object}  map[string]interface{}
// @Failure      404 {object}  ErrorResponse
// @Router       /api/v1/chapters/{id}/plan [get]
func (h *Handler) GetPlan(c *gin.Context) {
	plan, err := h.courseService.GetPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    40403,
			Message: "no plan for chapter",
			Detail:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": toPlanInfo(plan),
	})
}

// ApprovePlan approves a draft plan.
// @Summary      Approve plan
// @Description  Approve a draft plan, releasing its episodes for content generation.
// @Tags         plans
// @Produce      json
// @Param        id  path      string  true  "plan id"
// @Success      200 {object}  map[string]interface{}
// @Failure      409 {object}  ErrorResponse
// @Router       /api/v1/plans/{id}/approve [post]
func (h *Handler) ApprovePlan(c *gin.Context) {
	if err := h.courseService.ApprovePlan(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusConflict, ErrorResponse{
			Code:    40901,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "plan approved",
	})
}
