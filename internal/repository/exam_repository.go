package repository

import (
	"elearn_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) FindByIDWithQuestions(id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.id asc")
	}).First(&exam, id).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *ExamRepository) FindByID(id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.First(&exam, id).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *ExamRepository) FindByModuleID(moduleID uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.Where("module_id = ?", moduleID).First(&exam).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

// IsCourseActive resolves the exam's owning course and reports its
// activation state.
func (r *ExamRepository) IsCourseActive(examID uint) (bool, error) {
	var count int64
	err := r.DB.Table("exams").
		Joins("JOIN modules ON modules.id = exams.module_id").
		Joins("JOIN courses ON courses.id = modules.course_id").
		Where("exams.id = ? AND courses.is_active = ? AND exams.deleted_at IS NULL", examID, true).
		Count(&count).Error
	return count > 0, err
}

type ActiveExamRow struct {
	ID          uint   `json:"id"`
	CourseTitle string `json:"courseTitle"`
	ModuleTitle string `json:"moduleTitle"`
}

// ListActive returns exams whose course is active, ordered by course
// title.
func (r *ExamRepository) ListActive() ([]ActiveExamRow, error) {
	var rows []ActiveExamRow
	err := r.DB.Table("exams").
		Select("exams.id, courses.title as course_title, modules.title as module_title").
		Joins("JOIN modules ON modules.id = exams.module_id").
		Joins("JOIN courses ON courses.id = modules.course_id").
		Where("courses.is_active = ? AND exams.deleted_at IS NULL", true).
		Order("courses.title asc").
		Scan(&rows).Error
	return rows, err
}

// SaveResult upserts the (user, exam) result: the prior row, if any,
// is overwritten in place. The conflict clause keeps last-write-wins
// intact when two submissions arrive at once.
func (r *ExamRepository) SaveResult(userID, examID uint, score float64, passed bool) (*model.ExamResult, error) {
	result := &model.ExamResult{
		UserID:      userID,
		ExamID:      examID,
		Score:       score,
		Passed:      passed,
		SubmittedAt: time.Now(),
	}
	err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "exam_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "passed", "submitted_at", "updated_at"}),
	}).Create(result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *ExamRepository) FindResult(userID, examID uint) (*model.ExamResult, error) {
	var result model.ExamResult
	err := r.DB.Where("user_id = ? AND exam_id = ?", userID, examID).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ExamRepository) CreateExam(exam *model.Exam) error {
	return r.DB.Create(exam).Error
}

func (r *ExamRepository) UpdateExam(exam *model.Exam) error {
	return r.DB.Save(exam).Error
}

func (r *ExamRepository) DeleteExam(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exam_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("exam_id = ?", id).Delete(&model.ExamResult{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Exam{}, id).Error
	})
}

func (r *ExamRepository) CreateQuestion(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *ExamRepository) FindQuestionByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *ExamRepository) UpdateQuestion(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *ExamRepository) DeleteQuestion(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}
