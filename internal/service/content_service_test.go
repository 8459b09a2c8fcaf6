package service

import (
	"context"
	"elearn_backend/internal/config"
	"elearn_backend/internal/model"
	"elearn_backend/internal/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newContentService builds the service without a redis client, so
// every call assembles the tree from the database.
func newContentService(db *gorm.DB) *ContentService {
	return NewContentService(
		repository.NewCourseRepository(db),
		repository.NewProgressRepository(db),
		&config.Config{},
		nil,
	)
}

func TestGetCourseTreeHidesInactiveCourses(t *testing.T) {
	db := newTestDB(t)
	seedCourse(t, db, "Visible", "visible", true)
	seedCourse(t, db, "Hidden", "hidden", false)
	svc := newContentService(db)

	tree, err := svc.GetCourseTree(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, tree, 1)
	assert.Equal(t, "Visible", tree[0].Title)
	assert.Equal(t, "visible", tree[0].Slug)
}

func TestGetCourseTreeOrdersModulesAndLessons(t *testing.T) {
	db := newTestDB(t)

	course := &model.Course{Title: "Ordered", Slug: "ordered", IsActive: true}
	require.NoError(t, db.Create(course).Error)

	// Inserted out of authored order on purpose.
	second := &model.Module{CourseID: course.ID, Title: "Second", Order: 2}
	require.NoError(t, db.Create(second).Error)
	first := &model.Module{CourseID: course.ID, Title: "First", Order: 1}
	require.NoError(t, db.Create(first).Error)

	lateLesson := &model.Lesson{ModuleID: first.ID, Title: "Late", Order: 2}
	require.NoError(t, db.Create(lateLesson).Error)
	earlyLesson := &model.Lesson{ModuleID: first.ID, Title: "Early", Order: 1}
	require.NoError(t, db.Create(earlyLesson).Error)

	svc := newContentService(db)

	tree, err := svc.GetCourseTree(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, tree, 1)
	require.Len(t, tree[0].Modules, 2)
	assert.Equal(t, "First", tree[0].Modules[0].Title)
	assert.Equal(t, "Second", tree[0].Modules[1].Title)

	require.Len(t, tree[0].Modules[0].Lessons, 2)
	assert.Equal(t, "Early", tree[0].Modules[0].Lessons[0].Title)
	assert.Equal(t, "Late", tree[0].Modules[0].Lessons[1].Title)
}

func TestGetCourseTreeStampsCompletionFlags(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, "Go Basics", "go-basics", true)

	other := &model.Lesson{ModuleID: f.Module.ID, Title: "Untouched", Order: 2}
	require.NoError(t, db.Create(other).Error)

	progressRepo := repository.NewProgressRepository(db)
	_, err := progressRepo.UpsertCompletion(1, f.Lesson.ID)
	require.NoError(t, err)

	svc := newContentService(db)

	tree, err := svc.GetCourseTree(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, tree, 1)
	require.Len(t, tree[0].Modules, 1)
	lessons := tree[0].Modules[0].Lessons
	require.Len(t, lessons, 2)
	assert.True(t, lessons[0].Completed)
	assert.False(t, lessons[1].Completed)
}

func TestGetCourseTreeCompletionIsPerUser(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, "Go Basics", "go-basics", true)

	progressRepo := repository.NewProgressRepository(db)
	_, err := progressRepo.UpsertCompletion(1, f.Lesson.ID)
	require.NoError(t, err)

	svc := newContentService(db)

	tree, err := svc.GetCourseTree(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, tree, 1)
	assert.False(t, tree[0].Modules[0].Lessons[0].Completed)
}

func TestGetCourseTreeReportsExamPresence(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, "Go Basics", "go-basics", true)
	seedExam(t, db, f, model.DefaultPassingScore)

	bare := &model.Module{CourseID: f.Course.ID, Title: "No exam", Order: 2}
	require.NoError(t, db.Create(bare).Error)

	svc := newContentService(db)

	tree, err := svc.GetCourseTree(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, tree, 1)
	require.Len(t, tree[0].Modules, 2)

	withExam := tree[0].Modules[0]
	assert.True(t, withExam.HasExam)
	require.NotNil(t, withExam.ExamID)
	assert.Equal(t, f.Exam.ID, *withExam.ExamID)

	without := tree[0].Modules[1]
	assert.False(t, without.HasExam)
	assert.Nil(t, without.ExamID)
}

func TestCacheTTLDefaultsAndReload(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService(db)

	assert.Equal(t, 15*time.Minute, svc.cacheTTL())

	svc.Cfg.SetCourseTreeTTL(5 * time.Minute)
	assert.Equal(t, 5*time.Minute, svc.cacheTTL())
}

// A config reload must not race with handlers reading the TTL; run
// with -race to verify.
func TestCacheTTLReloadDuringReads(t *testing.T) {
	db := newTestDB(t)
	seedCourse(t, db, "Go Basics", "go-basics", true)
	svc := newContentService(db)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 1; i <= 200; i++ {
			svc.Cfg.SetCourseTreeTTL(time.Duration(i) * time.Minute)
		}
	}()

	for i := 0; i < 200; i++ {
		_, err := svc.GetCourseTree(context.Background(), 1)
		require.NoError(t, err)
		assert.Positive(t, svc.cacheTTL())
	}
	<-done
}

func TestGetCourseTreeEmptyCatalog(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService(db)

	tree, err := svc.GetCourseTree(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, tree)
}
