package service

import (
	"elearn_backend/internal/model"
	"elearn_backend/internal/repository"
	"elearn_backend/internal/util"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProgressService(db *gorm.DB) *ProgressService {
	return NewProgressService(
		repository.NewProgressRepository(db),
		repository.NewCourseRepository(db),
	)
}

func TestMarkLessonCompleteCreatesRecord(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, "Go Basics", "go-basics", true)
	svc := newProgressService(db)

	progress, err := svc.MarkLessonComplete(1, f.Lesson.ID)
	require.NoError(t, err)

	assert.True(t, progress.Completed)
	require.NotNil(t, progress.CompletedAt)
	assert.Equal(t, f.Lesson.ID, progress.LessonID)
	assert.Equal(t, uint(1), progress.UserID)
}

func TestMarkLessonCompleteIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, "Go Basics", "go-basics", true)
	svc := newProgressService(db)

	first, err := svc.MarkLessonComplete(1, f.Lesson.ID)
	require.NoError(t, err)
	require.NotNil(t, first.CompletedAt)

	second, err := svc.MarkLessonComplete(1, f.Lesson.ID)
	require.NoError(t, err)
	require.NotNil(t, second.CompletedAt)

	// First completion time survives the repeat call.
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.CompletedAt.Equal(*second.CompletedAt))

	var count int64
	require.NoError(t, db.Model(&model.LessonProgress{}).
		Where("user_id = ? AND lesson_id = ?", 1, f.Lesson.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMarkLessonCompleteUnknownLesson(t *testing.T) {
	db := newTestDB(t)
	seedCourse(t, db, "Go Basics", "go-basics", true)
	svc := newProgressService(db)

	_, err := svc.MarkLessonComplete(1, 9999)
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}

func TestMarkLessonCompleteInactiveCourse(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, "Archived", "archived", false)
	svc := newProgressService(db)

	_, err := svc.MarkLessonComplete(1, f.Lesson.ID)
	assert.ErrorIs(t, err, util.ErrLessonNotAvailable)

	var count int64
	require.NoError(t, db.Model(&model.LessonProgress{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

// Concurrent first completions must converge on one row without a
// unique-index failure.
func TestMarkLessonCompleteConcurrentFirstCalls(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, "Contended", "contended", true)
	svc := newProgressService(db)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = svc.MarkLessonComplete(1, f.Lesson.ID)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&model.LessonProgress{}).
		Where("user_id = ? AND lesson_id = ?", 1, f.Lesson.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMarkLessonCompleteIsolatedPerUser(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, "Go Basics", "go-basics", true)
	svc := newProgressService(db)

	_, err := svc.MarkLessonComplete(1, f.Lesson.ID)
	require.NoError(t, err)

	_, err = svc.MarkLessonComplete(2, f.Lesson.ID)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.LessonProgress{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
