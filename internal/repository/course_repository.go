package repository

import (
	"elearn_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

// ListActiveWithTree loads the full course→module→lesson/exam tree for
// every active course, ordered by id; modules and lessons come back in
// their authored order.
func (r *CourseRepository) ListActiveWithTree() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("is_active = ?", true).
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("modules.`order` asc")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.`order` asc")
		}).
		Preload("Modules.Exam").
		Order("id asc").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindCourseByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindModuleByID(id uint) (*model.Module, error) {
	var mod model.Module
	err := r.DB.First(&mod, id).Error
	if err != nil {
		return nil, err
	}
	return &mod, nil
}

func (r *CourseRepository) FindLessonByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// IsLessonCourseActive resolves the lesson's owning course and reports
// its activation state.
func (r *CourseRepository) IsLessonCourseActive(lessonID uint) (bool, error) {
	var count int64
	err := r.DB.Table("lessons").
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Joins("JOIN courses ON courses.id = modules.course_id").
		Where("lessons.id = ? AND courses.is_active = ? AND lessons.deleted_at IS NULL", lessonID, true).
		Count(&count).Error
	return count > 0, err
}

func (r *CourseRepository) CreateCourse(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) UpdateCourse(course *model.Course) error {
	return r.DB.Save(course).Error
}

// DeleteCourse removes the course and every dependent row underneath
// it in one transaction.
func (r *CourseRepository) DeleteCourse(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var moduleIDs []uint
		if err := tx.Model(&model.Module{}).Where("course_id = ?", id).Pluck("id", &moduleIDs).Error; err != nil {
			return err
		}
		if len(moduleIDs) > 0 {
			if err := deleteModuleChildren(tx, moduleIDs); err != nil {
				return err
			}
			if err := tx.Where("course_id = ?", id).Delete(&model.Module{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Course{}, id).Error
	})
}

func (r *CourseRepository) CreateModule(mod *model.Module) error {
	return r.DB.Create(mod).Error
}

func (r *CourseRepository) UpdateModule(mod *model.Module) error {
	return r.DB.Save(mod).Error
}

func (r *CourseRepository) DeleteModule(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteModuleChildren(tx, []uint{id}); err != nil {
			return err
		}
		return tx.Delete(&model.Module{}, id).Error
	})
}

func (r *CourseRepository) CreateLesson(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *CourseRepository) UpdateLesson(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *CourseRepository) DeleteLesson(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lesson_id = ?", id).Delete(&model.LessonProgress{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Lesson{}, id).Error
	})
}

func deleteModuleChildren(tx *gorm.DB, moduleIDs []uint) error {
	var lessonIDs []uint
	if err := tx.Model(&model.Lesson{}).Where("module_id IN ?", moduleIDs).Pluck("id", &lessonIDs).Error; err != nil {
		return err
	}
	if len(lessonIDs) > 0 {
		if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&model.LessonProgress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("module_id IN ?", moduleIDs).Delete(&model.Lesson{}).Error; err != nil {
			return err
		}
	}

	var examIDs []uint
	if err := tx.Model(&model.Exam{}).Where("module_id IN ?", moduleIDs).Pluck("id", &examIDs).Error; err != nil {
		return err
	}
	if len(examIDs) > 0 {
		if err := tx.Where("exam_id IN ?", examIDs).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("exam_id IN ?", examIDs).Delete(&model.ExamResult{}).Error; err != nil {
			return err
		}
		if err := tx.Where("module_id IN ?", moduleIDs).Delete(&model.Exam{}).Error; err != nil {
			return err
		}
	}
	return nil
}
