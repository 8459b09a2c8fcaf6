package controller

import (
	"elearn_backend/internal/service"
	"elearn_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	Service *service.ExamService
}

func NewExamController(svc *service.ExamService) *ExamController {
	return &ExamController{Service: svc}
}

// ListActive godoc
// @Summary List exams belonging to active courses
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /exams/active_list [get]
func (c *ExamController) ListActive(ctx *gin.Context) {
	rows, err := c.Service.ListActive()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, rows)
}

// Start godoc
// @Summary Fetch an exam for taking
// @Description Returns the passing score and questions without the
// @Description answer key.
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param id path int true "exam id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /exams/{id}/start [get]
func (c *ExamController) Start(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	examID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid exam id")
		return
	}

	view, err := c.Service.StartExam(user.UserID, uint(examID))
	if err != nil {
		c.writeExamError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

type SubmitExamRequest struct {
	Answers map[uint]string `json:"answers" binding:"required"`
}

// Submit godoc
// @Summary Submit answers for an exam
// @Description Answers must cover every question exactly once. The
// @Description graded result overwrites any prior attempt.
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "exam id"
// @Param body body SubmitExamRequest true "question id to option letter"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /exams/{id}/submit [post]
func (c *ExamController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	examID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid exam id")
		return
	}

	var req SubmitExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.SubmitExam(user.UserID, uint(examID), req.Answers)
	if err != nil {
		c.writeExamError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"score":   result.Score,
		"passed":  result.Passed,
		"message": "Exam submitted successfully!",
	})
}

func (c *ExamController) writeExamError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrExamNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrExamNotAvailable):
		util.Forbidden(ctx, err.Error())
	case errors.Is(err, util.ErrAnswersIncomplete),
		errors.Is(err, util.ErrInvalidAnswerOption),
		errors.Is(err, util.ErrExamHasNoQuestions):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
