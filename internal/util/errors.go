package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")

	ErrCourseNotFound   = errors.New("course not found")
	ErrModuleNotFound   = errors.New("module not found")
	ErrLessonNotFound   = errors.New("lesson not found")
	ErrExamNotFound     = errors.New("exam not found")
	ErrQuestionNotFound = errors.New("question not found")

	// Entity exists but its course is inactive. Kept distinct from the
	// not-found errors so callers can tell "doesn't exist" from "not
	// currently available".
	ErrExamNotAvailable   = errors.New("exam not available")
	ErrLessonNotAvailable = errors.New("cannot complete lessons in inactive courses")

	ErrAnswersIncomplete   = errors.New("answers must be provided for all questions")
	ErrInvalidAnswerOption = errors.New("invalid answer option")
	ErrExamHasNoQuestions  = errors.New("exam has no questions")
	ErrInvalidQuestion     = errors.New("correct option must be one of A, B, C, D")
)
