package service

import (
	"elearn_backend/internal/model"
	"elearn_backend/internal/repository"
	"elearn_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	CourseRepo   *repository.CourseRepository
}

func NewProgressService(progressRepo *repository.ProgressRepository, courseRepo *repository.CourseRepository) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		CourseRepo:   courseRepo,
	}
}

// MarkLessonComplete upserts the (user, lesson) completion record.
// The lesson must exist and its course must be active. Calling twice
// yields the same stored state; the first completion time is sticky.
func (s *ProgressService) MarkLessonComplete(userID, lessonID uint) (*model.LessonProgress, error) {
	_, err := s.CourseRepo.FindLessonByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	active, err := s.CourseRepo.IsLessonCourseActive(lessonID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, util.ErrLessonNotAvailable
	}

	return s.ProgressRepo.UpsertCompletion(userID, lessonID)
}
