package controller

import (
	"elearn_backend/internal/service"
	"elearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	Service *service.ContentService
}

func NewContentController(svc *service.ContentService) *ContentController {
	return &ContentController{Service: svc}
}

// ListCourses godoc
// @Summary List active courses with the full module/lesson tree
// @Description Lessons carry the caller's completion flags; served
// @Description from a short-lived per-user cache.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /courses [get]
func (c *ContentController) ListCourses(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	tree, err := c.Service.GetCourseTree(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, tree)
}
