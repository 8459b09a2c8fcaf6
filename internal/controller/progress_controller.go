package controller

import (
	"elearn_backend/internal/service"
	"elearn_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Service *service.ProgressService
}

func NewProgressController(svc *service.ProgressService) *ProgressController {
	return &ProgressController{Service: svc}
}

type MarkLessonCompleteRequest struct {
	LessonID uint `json:"lessonId" binding:"required"`
}

// MarkLessonComplete godoc
// @Summary Mark a lesson complete for the caller
// @Description Idempotent upsert; the first completion time is kept on
// @Description repeat calls.
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body MarkLessonCompleteRequest true "lesson id"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /progress/mark_lesson_complete [post]
func (c *ProgressController) MarkLessonComplete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req MarkLessonCompleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.Service.MarkLessonComplete(user.UserID, req.LessonID)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) || errors.Is(err, util.ErrLessonNotAvailable) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{
		"lessonId":    progress.LessonID,
		"completed":   progress.Completed,
		"completedAt": progress.CompletedAt,
	})
}
