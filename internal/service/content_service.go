package service

import (
	"context"
	"elearn_backend/internal/config"
	"elearn_backend/internal/repository"
	"elearn_backend/pkg/logger"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const courseTreeKeyPrefix = "courses:tree:user:"

// ContentService assembles the learner-facing content tree and backs
// the admin authoring operations.
type ContentService struct {
	CourseRepo   *repository.CourseRepository
	ProgressRepo *repository.ProgressRepository
	Cfg          *config.Config
	Redis        *redis.Client
}

func NewContentService(courseRepo *repository.CourseRepository, progressRepo *repository.ProgressRepository, cfg *config.Config, rdb *redis.Client) *ContentService {
	return &ContentService{
		CourseRepo:   courseRepo,
		ProgressRepo: progressRepo,
		Cfg:          cfg,
		Redis:        rdb,
	}
}

type LessonView struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Order     int    `json:"order"`
	Completed bool   `json:"completed"`
}

type ModuleView struct {
	ID      uint         `json:"id"`
	Title   string       `json:"title"`
	Order   int          `json:"order"`
	Lessons []LessonView `json:"lessons"`
	HasExam bool         `json:"hasExam"`
	ExamID  *uint        `json:"examId,omitempty"`
}

type CourseView struct {
	ID          uint         `json:"id"`
	Title       string       `json:"title"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	Modules     []ModuleView `json:"modules"`
}

// GetCourseTree returns every active course with its modules, lessons
// (stamped with the user's completion flags) and exam presence. The
// result is cached per user with a bounded TTL and may be served stale
// within it; there is no active invalidation.
func (s *ContentService) GetCourseTree(ctx context.Context, userID uint) ([]CourseView, error) {
	key := fmt.Sprintf("%s%d", courseTreeKeyPrefix, userID)

	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, key).Result()
		if err == nil {
			var cached []CourseView
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("course tree cache read failed", zap.Error(err))
		}
	}

	tree, err := s.assembleCourseTree(userID)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(tree); err == nil {
			if err := s.Redis.Set(ctx, key, data, s.cacheTTL()).Err(); err != nil {
				logger.Log.Warn("course tree cache write failed", zap.Error(err))
			}
		}
	}

	return tree, nil
}

// cacheTTL reads the live TTL; the config watcher may swap it at any
// time, so the read must not touch the raw config struct.
func (s *ContentService) cacheTTL() time.Duration {
	ttl := s.Cfg.CourseTreeTTL()
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return ttl
}

func (s *ContentService) assembleCourseTree(userID uint) ([]CourseView, error) {
	courses, err := s.CourseRepo.ListActiveWithTree()
	if err != nil {
		return nil, err
	}

	completed, err := s.ProgressRepo.CompletedLessonIDs(userID)
	if err != nil {
		return nil, err
	}

	views := make([]CourseView, len(courses))
	for i, course := range courses {
		modules := make([]ModuleView, len(course.Modules))
		for j, mod := range course.Modules {
			lessons := make([]LessonView, len(mod.Lessons))
			for k, lesson := range mod.Lessons {
				lessons[k] = LessonView{
					ID:        lesson.ID,
					Title:     lesson.Title,
					Content:   lesson.Content,
					Order:     lesson.Order,
					Completed: completed[lesson.ID],
				}
			}

			mv := ModuleView{
				ID:      mod.ID,
				Title:   mod.Title,
				Order:   mod.Order,
				Lessons: lessons,
				HasExam: mod.HasExam(),
			}
			if mod.Exam != nil {
				examID := mod.Exam.ID
				mv.ExamID = &examID
			}
			modules[j] = mv
		}

		views[i] = CourseView{
			ID:          course.ID,
			Title:       course.Title,
			Slug:        course.Slug,
			Description: course.Description,
			Modules:     modules,
		}
	}

	return views, nil
}
