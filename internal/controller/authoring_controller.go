package controller

import (
	"elearn_backend/internal/service"
	"elearn_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// AuthoringController exposes the admin content-authoring surface.
// Routes are role-gated to admins in the router.
type AuthoringController struct {
	Service *service.AuthoringService
}

func NewAuthoringController(svc *service.AuthoringService) *AuthoringController {
	return &AuthoringController{Service: svc}
}

func pathID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func (c *AuthoringController) writeAuthoringError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrModuleNotFound),
		errors.Is(err, util.ErrLessonNotFound),
		errors.Is(err, util.ErrExamNotFound),
		errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrInvalidQuestion):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// CreateCourse godoc
// @Summary Create a course
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CourseReq true "course payload"
// @Success 201 {object} util.Response
// @Router /admin/courses [post]
func (c *AuthoringController) CreateCourse(ctx *gin.Context) {
	var req service.CourseReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.Service.CreateCourse(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary Update a course (including activation state)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "course id"
// @Param body body service.CourseReq true "course payload"
// @Success 200 {object} util.Response
// @Router /admin/courses/{id} [put]
func (c *AuthoringController) UpdateCourse(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req service.CourseReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.Service.UpdateCourse(id, req)
	if err != nil {
		c.writeAuthoringError(ctx, err)
		return
	}

	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary Delete a course and everything underneath it
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "course id"
// @Success 200 {object} util.Response
// @Router /admin/courses/{id} [delete]
func (c *AuthoringController) DeleteCourse(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := c.Service.DeleteCourse(id); err != nil {
		c.writeAuthoringError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": id})
}

// CreateModule godoc
// @Summary Create a module in a course
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ModuleReq true "module payload"
// @Success 201 {object} util.Response
// @Router /admin/modules [post]
func (c *AuthoringController) CreateModule(ctx *gin.Context) {
	var req service.ModuleReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	mod, err := c.Service.CreateModule(req)
	if err != nil {
		c.writeAuthoringError(ctx, err)
		return
	}

	util.Created(ctx, mod)
}

// UpdateModule godoc
// @Summary Update a module
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "module id"
// @Param body body service.ModuleReq true "module payload"
// @Success 200 {object} util.Response
// @Router /admin/modules/{id} [put]
func (c *AuthoringController) UpdateModule(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req service.ModuleReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	mod, err := c.Service.UpdateModule(id, req)
	if err != nil {
		c.writeAuthoringError(ctx, err)
		return
	}

	util.Success(ctx, mod)
}

// DeleteModule godoc
// @Summary Delete a module and its lessons/exam
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "module id"
// @Success 200 {object} util.Response
// @Router /admin/modules/{id} [delete]
func (c *AuthoringController) DeleteModule(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := c.Service.DeleteModule(id); err != nil {
		c.writeAuthoringError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": id})
}

// CreateLesson godoc
// @Summary Create a lesson in a module
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.LessonReq true "lesson payload"
// @Success 201 {object} util.Response
// @Router /admin/lessons [post]
func (c *AuthoringController) CreateLesson(ctx *gin.Context) {
	var req service.LessonReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.Service.CreateLesson(req)
	if err != nil {
		c.writeAuthoringError(ctx, err)
		return
	}

	util.Created(ctx, lesson)
}

// UpdateLesson godoc
// @Summary Update a lesson
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "lesson id"
// @Param body body service.LessonReq true "lesson payload"
// @Success 200 {object} util.Response
// @Router /admin/lessons/{id} [put]
func (c *AuthoringController) UpdateLesson(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req service.LessonReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.Service.UpdateLesson(id, req)
	if err != nil {
		c.writeAuthoringError(ctx, err)
		return
	}

	util.Success(ctx, lesson)
}

// DeleteLesson godoc
// @Summary Delete a lesson
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "lesson id"
// @Success 200 {object} util.Response
// @Router /admin/lessons/{id} [delete]
func (c *AuthoringController) DeleteLesson(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := c.Service.DeleteLesson(id); err != nil {
		c.writeAuthoringError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": id})
}

// CreateExam godoc
// @Summary Attach an exam to a module (one per module)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ExamReq true "exam payload"
// @Success 201 {object} util.Response
// @Router /admin/exams [post]
func (c *AuthoringController) CreateExam(ctx *gin.Context) {
	var req service.ExamReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam, err := c.Service.CreateExam(req)
	if err != nil {
		if errors.Is(err, util.ErrModuleNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Created(ctx, exam)
}

// UpdateExam godoc
// @Summary Update an exam's passing score
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "exam id"
// @Param body body service.ExamReq true "exam payload"
// @Success 200 {object} util.Response
// @Router /admin/exams/{id} [put]
func (c *AuthoringController) UpdateExam(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req service.ExamReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam, err := c.Service.UpdateExam(id, req)
	if err != nil {
		c.writeAuthoringError(ctx, err)
		return
	}

	util.Success(ctx, exam)
}

// DeleteExam godoc
// @Summary Delete an exam, its questions and results
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "exam id"
// @Success 200 {object} util.Response
// @Router /admin/exams/{id} [delete]
func (c *AuthoringController) DeleteExam(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := c.Service.DeleteExam(id); err != nil {
		c.writeAuthoringError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": id})
}

// CreateQuestion godoc
// @Summary Add a multiple-choice question to an exam
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.QuestionReq true "question payload"
// @Success 201 {object} util.Response
// @Router /admin/questions [post]
func (c *AuthoringController) CreateQuestion(ctx *gin.Context) {
	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.CreateQuestion(req)
	if err != nil {
		c.writeAuthoringError(ctx, err)
		return
	}

	util.Created(ctx, q)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "question id"
// @Param body body service.QuestionReq true "question payload"
// @Success 200 {object} util.Response
// @Router /admin/questions/{id} [put]
func (c *AuthoringController) UpdateQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.UpdateQuestion(id, req)
	if err != nil {
		c.writeAuthoringError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Router /admin/questions/{id} [delete]
func (c *AuthoringController) DeleteQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := c.Service.DeleteQuestion(id); err != nil {
		c.writeAuthoringError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": id})
}
