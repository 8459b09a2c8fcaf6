package model

import (
	"time"
)

// LessonProgress is the single current (user, lesson) completion
// record. CompletedAt is set on the first transition to completed and
// never refreshed or cleared afterwards.
type LessonProgress struct {
	BaseModel
	UserID      uint       `gorm:"uniqueIndex:idx_user_lesson;not null" json:"userId"`
	LessonID    uint       `gorm:"uniqueIndex:idx_user_lesson;not null" json:"lessonId"`
	Completed   bool       `gorm:"default:false;index:idx_user_completed" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}

// ExamResult is the single current (user, exam) outcome. A new
// submission overwrites it in place; no attempt history is kept.
type ExamResult struct {
	BaseModel
	UserID      uint      `gorm:"uniqueIndex:idx_user_exam;not null" json:"userId"`
	ExamID      uint      `gorm:"uniqueIndex:idx_user_exam;not null" json:"examId"`
	Score       float64   `gorm:"not null" json:"score"`
	Passed      bool      `gorm:"not null;index" json:"passed"`
	SubmittedAt time.Time `gorm:"index" json:"submittedAt"`
}

func (ExamResult) TableName() string {
	return "exam_results"
}
