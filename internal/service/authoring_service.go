package service

import (
	"elearn_backend/internal/model"
	"elearn_backend/internal/repository"
	"elearn_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

// AuthoringService backs the admin content-authoring endpoints.
// Content entities are long-lived and rarely mutated at runtime.
type AuthoringService struct {
	CourseRepo *repository.CourseRepository
	ExamRepo   *repository.ExamRepository
}

func NewAuthoringService(courseRepo *repository.CourseRepository, examRepo *repository.ExamRepository) *AuthoringService {
	return &AuthoringService{
		CourseRepo: courseRepo,
		ExamRepo:   examRepo,
	}
}

type CourseReq struct {
	Title       *string `json:"title"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

func (s *AuthoringService) CreateCourse(req CourseReq) (*model.Course, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, errors.New("title is required")
	}
	if req.Slug == nil || *req.Slug == "" {
		return nil, errors.New("slug is required")
	}

	course := &model.Course{
		Title: *req.Title,
		Slug:  *req.Slug,
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := s.CourseRepo.CreateCourse(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *AuthoringService) UpdateCourse(id uint, req CourseReq) (*model.Course, error) {
	course, err := s.CourseRepo.FindCourseByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Slug != nil {
		course.Slug = *req.Slug
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := s.CourseRepo.UpdateCourse(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *AuthoringService) DeleteCourse(id uint) error {
	if _, err := s.CourseRepo.FindCourseByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	return s.CourseRepo.DeleteCourse(id)
}

type ModuleReq struct {
	CourseID uint   `json:"courseId" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Order    int    `json:"order"`
}

func (s *AuthoringService) CreateModule(req ModuleReq) (*model.Module, error) {
	if _, err := s.CourseRepo.FindCourseByID(req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	mod := &model.Module{
		CourseID: req.CourseID,
		Title:    req.Title,
		Order:    req.Order,
	}
	if err := s.CourseRepo.CreateModule(mod); err != nil {
		return nil, err
	}
	return mod, nil
}

func (s *AuthoringService) UpdateModule(id uint, req ModuleReq) (*model.Module, error) {
	mod, err := s.CourseRepo.FindModuleByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	mod.Title = req.Title
	mod.Order = req.Order

	if err := s.CourseRepo.UpdateModule(mod); err != nil {
		return nil, err
	}
	return mod, nil
}

func (s *AuthoringService) DeleteModule(id uint) error {
	if _, err := s.CourseRepo.FindModuleByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrModuleNotFound
		}
		return err
	}
	return s.CourseRepo.DeleteModule(id)
}

type LessonReq struct {
	ModuleID uint   `json:"moduleId" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	Order    int    `json:"order"`
}

func (s *AuthoringService) CreateLesson(req LessonReq) (*model.Lesson, error) {
	if _, err := s.CourseRepo.FindModuleByID(req.ModuleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	lesson := &model.Lesson{
		ModuleID: req.ModuleID,
		Title:    req.Title,
		Content:  req.Content,
		Order:    req.Order,
	}
	if err := s.CourseRepo.CreateLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *AuthoringService) UpdateLesson(id uint, req LessonReq) (*model.Lesson, error) {
	lesson, err := s.CourseRepo.FindLessonByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	lesson.Title = req.Title
	lesson.Content = req.Content
	lesson.Order = req.Order

	if err := s.CourseRepo.UpdateLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *AuthoringService) DeleteLesson(id uint) error {
	if _, err := s.CourseRepo.FindLessonByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrLessonNotFound
		}
		return err
	}
	return s.CourseRepo.DeleteLesson(id)
}

type ExamReq struct {
	ModuleID     uint     `json:"moduleId" binding:"required"`
	PassingScore *float64 `json:"passingScore"`
}

func (s *AuthoringService) CreateExam(req ExamReq) (*model.Exam, error) {
	if _, err := s.CourseRepo.FindModuleByID(req.ModuleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	// One exam per module.
	if _, err := s.ExamRepo.FindByModuleID(req.ModuleID); err == nil {
		return nil, errors.New("module already has an exam")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	exam := &model.Exam{
		ModuleID:     req.ModuleID,
		PassingScore: model.DefaultPassingScore,
	}
	if req.PassingScore != nil {
		exam.PassingScore = *req.PassingScore
	}

	if err := s.ExamRepo.CreateExam(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *AuthoringService) UpdateExam(id uint, req ExamReq) (*model.Exam, error) {
	exam, err := s.ExamRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	if req.PassingScore != nil {
		exam.PassingScore = *req.PassingScore
	}

	if err := s.ExamRepo.UpdateExam(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *AuthoringService) DeleteExam(id uint) error {
	if _, err := s.ExamRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrExamNotFound
		}
		return err
	}
	return s.ExamRepo.DeleteExam(id)
}

type QuestionReq struct {
	ExamID        uint   `json:"examId" binding:"required"`
	Text          string `json:"text" binding:"required"`
	OptionA       string `json:"optionA" binding:"required"`
	OptionB       string `json:"optionB" binding:"required"`
	OptionC       string `json:"optionC" binding:"required"`
	OptionD       string `json:"optionD" binding:"required"`
	CorrectOption string `json:"correctOption" binding:"required"`
}

func (s *AuthoringService) CreateQuestion(req QuestionReq) (*model.Question, error) {
	if !model.ValidOption(req.CorrectOption) {
		return nil, util.ErrInvalidQuestion
	}

	if _, err := s.ExamRepo.FindByID(req.ExamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	q := &model.Question{
		ExamID:        req.ExamID,
		Text:          req.Text,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectOption: req.CorrectOption,
	}
	if err := s.ExamRepo.CreateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *AuthoringService) UpdateQuestion(id uint, req QuestionReq) (*model.Question, error) {
	if !model.ValidOption(req.CorrectOption) {
		return nil, util.ErrInvalidQuestion
	}

	q, err := s.ExamRepo.FindQuestionByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	q.Text = req.Text
	q.OptionA = req.OptionA
	q.OptionB = req.OptionB
	q.OptionC = req.OptionC
	q.OptionD = req.OptionD
	q.CorrectOption = req.CorrectOption

	if err := s.ExamRepo.UpdateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *AuthoringService) DeleteQuestion(id uint) error {
	if _, err := s.ExamRepo.FindQuestionByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		return err
	}
	return s.ExamRepo.DeleteQuestion(id)
}
