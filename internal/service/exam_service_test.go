package service

import (
	"elearn_backend/internal/model"
	"elearn_backend/internal/repository"
	"elearn_backend/internal/util"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExamService(t *testing.T) (*ExamService, *fixture, []model.Question) {
	t.Helper()

	db := newTestDB(t)
	f := seedCourse(t, db, "Go Basics", "go-basics", true)
	questions := seedExam(t, db, f, model.DefaultPassingScore)

	return NewExamService(repository.NewExamRepository(db)), f, questions
}

func correctAnswers(questions []model.Question) map[uint]string {
	answers := make(map[uint]string, len(questions))
	for _, q := range questions {
		answers[q.ID] = q.CorrectOption
	}
	return answers
}

func TestStartExamStripsAnswerKey(t *testing.T) {
	svc, f, questions := newExamService(t)

	view, err := svc.StartExam(1, f.Exam.ID)
	require.NoError(t, err)

	assert.Equal(t, f.Exam.ID, view.ID)
	assert.Equal(t, model.DefaultPassingScore, view.PassingScore)
	require.Len(t, view.Questions, 4)

	// Questions come back in id order.
	for i, q := range view.Questions {
		assert.Equal(t, questions[i].ID, q.ID)
	}

	// The wire shape must not leak the correct option.
	data, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "correctOption")
}

func TestStartExamNotFound(t *testing.T) {
	svc, _, _ := newExamService(t)

	_, err := svc.StartExam(1, 9999)
	assert.ErrorIs(t, err, util.ErrExamNotFound)
}

func TestStartExamInactiveCourse(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, "Archived", "archived", false)
	seedExam(t, db, f, model.DefaultPassingScore)
	svc := NewExamService(repository.NewExamRepository(db))

	_, err := svc.StartExam(1, f.Exam.ID)
	assert.ErrorIs(t, err, util.ErrExamNotAvailable)
}

func TestSubmitExamPerfectScore(t *testing.T) {
	svc, f, questions := newExamService(t)

	result, err := svc.SubmitExam(1, f.Exam.ID, correctAnswers(questions))
	require.NoError(t, err)

	assert.Equal(t, 100.0, result.Score)
	assert.True(t, result.Passed)
}

func TestSubmitExamThreeOfFourPasses(t *testing.T) {
	svc, f, questions := newExamService(t)

	answers := correctAnswers(questions)
	answers[questions[3].ID] = "A" // wrong, correct is D

	result, err := svc.SubmitExam(1, f.Exam.ID, answers)
	require.NoError(t, err)

	assert.Equal(t, 75.0, result.Score)
	assert.True(t, result.Passed)
}

func TestSubmitExamTwoOfFourFails(t *testing.T) {
	svc, f, questions := newExamService(t)

	answers := correctAnswers(questions)
	answers[questions[2].ID] = "A"
	answers[questions[3].ID] = "A"

	result, err := svc.SubmitExam(1, f.Exam.ID, answers)
	require.NoError(t, err)

	assert.Equal(t, 50.0, result.Score)
	assert.False(t, result.Passed)
}

func TestSubmitExamPassBoundaryIsInclusive(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, "Boundary", "boundary", true)
	questions := seedExam(t, db, f, 75.0)
	svc := NewExamService(repository.NewExamRepository(db))

	answers := correctAnswers(questions)
	answers[questions[0].ID] = "B" // exactly 3/4 = 75.0

	result, err := svc.SubmitExam(1, f.Exam.ID, answers)
	require.NoError(t, err)

	assert.Equal(t, 75.0, result.Score)
	assert.True(t, result.Passed)
}

func TestSubmitExamRejectsMissingAnswers(t *testing.T) {
	svc, f, questions := newExamService(t)

	answers := correctAnswers(questions)
	delete(answers, questions[0].ID)

	_, err := svc.SubmitExam(1, f.Exam.ID, answers)
	assert.ErrorIs(t, err, util.ErrAnswersIncomplete)
}

func TestSubmitExamRejectsExtraAnswers(t *testing.T) {
	svc, f, questions := newExamService(t)

	answers := correctAnswers(questions)
	answers[9999] = "A"

	_, err := svc.SubmitExam(1, f.Exam.ID, answers)
	assert.ErrorIs(t, err, util.ErrAnswersIncomplete)
}

func TestSubmitExamRejectsMismatchedQuestionIDs(t *testing.T) {
	svc, f, questions := newExamService(t)

	// Same cardinality, but one key does not belong to the exam.
	answers := correctAnswers(questions)
	delete(answers, questions[0].ID)
	answers[9999] = "A"

	_, err := svc.SubmitExam(1, f.Exam.ID, answers)
	assert.ErrorIs(t, err, util.ErrAnswersIncomplete)
}

func TestSubmitExamRejectsInvalidOption(t *testing.T) {
	svc, f, questions := newExamService(t)

	answers := correctAnswers(questions)
	answers[questions[0].ID] = "E"

	_, err := svc.SubmitExam(1, f.Exam.ID, answers)
	assert.ErrorIs(t, err, util.ErrInvalidAnswerOption)
}

func TestSubmitExamRejectsEmptyExam(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, "Empty", "empty", true)
	exam := &model.Exam{ModuleID: f.Module.ID, PassingScore: model.DefaultPassingScore}
	require.NoError(t, db.Create(exam).Error)
	svc := NewExamService(repository.NewExamRepository(db))

	_, err := svc.SubmitExam(1, exam.ID, map[uint]string{})
	assert.ErrorIs(t, err, util.ErrExamHasNoQuestions)
}

func TestSubmitExamInactiveCourse(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, "Archived", "archived", false)
	questions := seedExam(t, db, f, model.DefaultPassingScore)
	svc := NewExamService(repository.NewExamRepository(db))

	_, err := svc.SubmitExam(1, f.Exam.ID, correctAnswers(questions))
	assert.ErrorIs(t, err, util.ErrExamNotAvailable)
}

func TestSubmitExamOverwritesPreviousResult(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, "Retake", "retake", true)
	questions := seedExam(t, db, f, model.DefaultPassingScore)
	svc := NewExamService(repository.NewExamRepository(db))

	answers := correctAnswers(questions)
	answers[questions[0].ID] = "B"
	answers[questions[1].ID] = "A"
	answers[questions[2].ID] = "A"
	answers[questions[3].ID] = "A" // 0/4

	first, err := svc.SubmitExam(1, f.Exam.ID, answers)
	require.NoError(t, err)
	assert.Equal(t, 0.0, first.Score)
	assert.False(t, first.Passed)

	second, err := svc.SubmitExam(1, f.Exam.ID, correctAnswers(questions))
	require.NoError(t, err)
	assert.Equal(t, 100.0, second.Score)
	assert.True(t, second.Passed)

	var count int64
	require.NoError(t, db.Model(&model.ExamResult{}).
		Where("user_id = ? AND exam_id = ?", 1, f.Exam.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var stored model.ExamResult
	require.NoError(t, db.Where("user_id = ? AND exam_id = ?", 1, f.Exam.ID).First(&stored).Error)
	assert.Equal(t, 100.0, stored.Score)
	assert.True(t, stored.Passed)
}

func TestSubmitExamResultsAreIsolatedPerUser(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, "Shared", "shared", true)
	questions := seedExam(t, db, f, model.DefaultPassingScore)
	svc := NewExamService(repository.NewExamRepository(db))

	_, err := svc.SubmitExam(1, f.Exam.ID, correctAnswers(questions))
	require.NoError(t, err)

	answers := correctAnswers(questions)
	answers[questions[0].ID] = "B"
	answers[questions[1].ID] = "A"
	answers[questions[2].ID] = "A"
	answers[questions[3].ID] = "A"
	_, err = svc.SubmitExam(2, f.Exam.ID, answers)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.ExamResult{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

// Two submissions racing on the first attempt must both land as an
// upsert rather than one dying on the unique index.
func TestSubmitExamConcurrentFirstSubmissions(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, "Contended", "contended", true)
	questions := seedExam(t, db, f, model.DefaultPassingScore)
	svc := NewExamService(repository.NewExamRepository(db))

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = svc.SubmitExam(1, f.Exam.ID, correctAnswers(questions))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&model.ExamResult{}).
		Where("user_id = ? AND exam_id = ?", 1, f.Exam.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestListActiveOrdersByCourseTitle(t *testing.T) {
	db := newTestDB(t)

	zebra := seedCourse(t, db, "Zebra", "zebra", true)
	seedExam(t, db, zebra, model.DefaultPassingScore)
	alpha := seedCourse(t, db, "Alpha", "alpha", true)
	seedExam(t, db, alpha, model.DefaultPassingScore)
	hidden := seedCourse(t, db, "Hidden", "hidden", false)
	seedExam(t, db, hidden, model.DefaultPassingScore)

	svc := NewExamService(repository.NewExamRepository(db))

	rows, err := svc.ListActive()
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Alpha", rows[0].CourseTitle)
	assert.Equal(t, "Zebra", rows[1].CourseTitle)
}
