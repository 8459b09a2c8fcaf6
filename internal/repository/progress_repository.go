package repository

import (
	"elearn_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// UpsertCompletion marks the (user, lesson) pair completed. The
// conflict clause leaves completed_at untouched on repeat calls, so
// the first completion time is sticky and the operation is idempotent
// even for two concurrent first completions.
func (r *ProgressRepository) UpsertCompletion(userID, lessonID uint) (*model.LessonProgress, error) {
	now := time.Now()
	progress := &model.LessonProgress{
		UserID:      userID,
		LessonID:    lessonID,
		Completed:   true,
		CompletedAt: &now,
	}
	err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed", "updated_at"}),
	}).Create(progress).Error
	if err != nil {
		return nil, err
	}

	// Re-read so the caller sees the stored first-completion time, not
	// the insert candidate's.
	return r.FindByUserAndLesson(userID, lessonID)
}

func (r *ProgressRepository) FindByUserAndLesson(userID, lessonID uint) (*model.LessonProgress, error) {
	var progress model.LessonProgress
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// CompletedLessonIDs returns the set of lesson ids the user has
// completed, for stamping the course tree in one query.
func (r *ProgressRepository) CompletedLessonIDs(userID uint) (map[uint]bool, error) {
	var ids []uint
	err := r.DB.Model(&model.LessonProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Pluck("lesson_id", &ids).Error
	if err != nil {
		return nil, err
	}

	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
