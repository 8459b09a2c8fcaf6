package service

import (
	"elearn_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A second pool connection would see a different in-memory
	// database; pin everything to one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Module{},
		&model.Lesson{},
		&model.Exam{},
		&model.Question{},
		&model.LessonProgress{},
		&model.ExamResult{},
	))

	return db
}

type fixture struct {
	Course *model.Course
	Module *model.Module
	Lesson *model.Lesson
	Exam   *model.Exam
}

// seedCourse builds course -> module -> lesson, optionally active.
func seedCourse(t *testing.T, db *gorm.DB, title, slug string, active bool) *fixture {
	t.Helper()

	course := &model.Course{Title: title, Slug: slug, IsActive: active}
	require.NoError(t, db.Create(course).Error)

	mod := &model.Module{CourseID: course.ID, Title: title + " module", Order: 1}
	require.NoError(t, db.Create(mod).Error)

	lesson := &model.Lesson{ModuleID: mod.ID, Title: title + " lesson", Order: 1}
	require.NoError(t, db.Create(lesson).Error)

	return &fixture{Course: course, Module: mod, Lesson: lesson}
}

// seedExam attaches an exam with four questions whose correct options
// are A, B, C, D in id order.
func seedExam(t *testing.T, db *gorm.DB, f *fixture, passingScore float64) []model.Question {
	t.Helper()

	exam := &model.Exam{ModuleID: f.Module.ID, PassingScore: passingScore}
	require.NoError(t, db.Create(exam).Error)
	f.Exam = exam

	questions := make([]model.Question, 0, 4)
	for _, correct := range []string{"A", "B", "C", "D"} {
		q := model.Question{
			ExamID:        exam.ID,
			Text:          "pick " + correct,
			OptionA:       "option a",
			OptionB:       "option b",
			OptionC:       "option c",
			OptionD:       "option d",
			CorrectOption: correct,
		}
		require.NoError(t, db.Create(&q).Error)
		questions = append(questions, q)
	}

	return questions
}
