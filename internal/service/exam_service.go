package service

import (
	"elearn_backend/internal/model"
	"elearn_backend/internal/repository"
	"elearn_backend/internal/util"
	"elearn_backend/pkg/logger"
	"elearn_backend/pkg/monitoring"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ExamService is the exam engine. The server holds no in-progress
// state between start and submit; the client carries the answers.
type ExamService struct {
	ExamRepo *repository.ExamRepository
}

func NewExamService(examRepo *repository.ExamRepository) *ExamService {
	return &ExamService{ExamRepo: examRepo}
}

// QuestionView is the learner-facing question shape. It never carries
// the correct option.
type QuestionView struct {
	ID      uint   `json:"id"`
	Text    string `json:"text"`
	OptionA string `json:"optionA"`
	OptionB string `json:"optionB"`
	OptionC string `json:"optionC"`
	OptionD string `json:"optionD"`
}

type ExamView struct {
	ID           uint           `json:"id"`
	PassingScore float64        `json:"passingScore"`
	Questions    []QuestionView `json:"questions"`
}

type SubmitResult struct {
	Score  float64 `json:"score"`
	Passed bool    `json:"passed"`
}

// loadForTaking applies the access gate: the exam must exist (else
// ErrExamNotFound) and its owning course must be active (else
// ErrExamNotAvailable).
func (s *ExamService) loadForTaking(examID uint) (*model.Exam, error) {
	exam, err := s.ExamRepo.FindByIDWithQuestions(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	active, err := s.ExamRepo.IsCourseActive(examID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, util.ErrExamNotAvailable
	}

	return exam, nil
}

func (s *ExamService) ListActive() ([]repository.ActiveExamRow, error) {
	return s.ExamRepo.ListActive()
}

// StartExam returns the exam's passing score and question list for
// taking, with the answer key stripped.
func (s *ExamService) StartExam(userID, examID uint) (*ExamView, error) {
	exam, err := s.loadForTaking(examID)
	if err != nil {
		return nil, err
	}

	questions := make([]QuestionView, len(exam.Questions))
	for i, q := range exam.Questions {
		questions[i] = QuestionView{
			ID:      q.ID,
			Text:    q.Text,
			OptionA: q.OptionA,
			OptionB: q.OptionB,
			OptionC: q.OptionC,
			OptionD: q.OptionD,
		}
	}

	return &ExamView{
		ID:           exam.ID,
		PassingScore: exam.PassingScore,
		Questions:    questions,
	}, nil
}

// SubmitExam validates the answer set against the exam's questions,
// scores it, and upserts the single (user, exam) result. Resubmission
// overwrites the prior result; no attempt history is kept.
func (s *ExamService) SubmitExam(userID, examID uint, answers map[uint]string) (*SubmitResult, error) {
	exam, err := s.loadForTaking(examID)
	if err != nil {
		return nil, err
	}

	if len(exam.Questions) == 0 {
		return nil, util.ErrExamHasNoQuestions
	}

	// The answer key set must equal the question id set exactly: no
	// missing, no extra.
	if len(answers) != len(exam.Questions) {
		return nil, util.ErrAnswersIncomplete
	}
	for _, q := range exam.Questions {
		if _, ok := answers[q.ID]; !ok {
			return nil, util.ErrAnswersIncomplete
		}
	}
	for _, ans := range answers {
		if !model.ValidOption(ans) {
			return nil, util.ErrInvalidAnswerOption
		}
	}

	correct := 0
	for _, q := range exam.Questions {
		if answers[q.ID] == q.CorrectOption {
			correct++
		}
	}

	score := float64(correct) / float64(len(exam.Questions)) * 100
	passed := score >= exam.PassingScore

	result, err := s.ExamRepo.SaveResult(userID, examID, score, passed)
	if err != nil {
		return nil, err
	}

	label := "failed"
	if passed {
		label = "passed"
	}
	monitoring.ExamSubmissions.WithLabelValues(label).Inc()

	logger.Log.Info("exam graded",
		zap.Uint("userId", userID),
		zap.Uint("examId", examID),
		zap.Float64("score", result.Score),
		zap.Bool("passed", result.Passed),
	)

	return &SubmitResult{Score: result.Score, Passed: result.Passed}, nil
}
