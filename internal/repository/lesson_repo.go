package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/James3014/skidiy-learn-sub001/internal/model"
)

// LessonFilters 课程列表过滤条件
type LessonFilters struct {
	ResortID     string
	InstructorID string
}

// LessonRepository 课程数据访问接口
type LessonRepository interface {
	Create(ctx context.Context, lesson *model.Lesson) error
	GetByID(ctx context.Context, id string) (*model.Lesson, error)
	List(ctx context.Context, filters *LessonFilters) ([]model.Lesson, error)
	Update(ctx context.Context, lesson *model.Lesson) error
}

// lessonRepo LessonRepository 的 GORM 实现
type lessonRepo struct {
	db *gorm.DB
}

// NewLessonRepo 创建 LessonRepository 实例
func NewLessonRepo(db *gorm.DB) LessonRepository {
	return &lessonRepo{db: db}
}

func (r *lessonRepo) Create(ctx context.Context, lesson *model.Lesson) error {
	return r.db.WithContext(ctx).Create(lesson).Error
}

func (r *lessonRepo) GetByID(ctx context.Context, id string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.db.WithContext(ctx).
		Preload("Resort").
		Where("lesson_id = ?", id).
		First(&lesson).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepo) List(ctx context.Context, filters *LessonFilters) ([]model.Lesson, error) {
	q := r.db.WithContext(ctx).Preload("Resort")
	if filters != nil {
		if filters.ResortID != "" {
			q = q.Where("resort_id = ?", filters.ResortID)
		}
		if filters.InstructorID != "" {
			q = q.Where("instructor_id = ?", filters.InstructorID)
		}
	}

	var lessons []model.Lesson
	err := q.Order("scheduled_at DESC").Find(&lessons).Error
	return lessons, err
}

func (r *lessonRepo) Update(ctx context.Context, lesson *model.Lesson) error {
	return r.db.WithContext(ctx).Save(lesson).Error
}
