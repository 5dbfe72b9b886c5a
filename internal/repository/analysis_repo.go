package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/James3014/skidiy-learn-sub001/internal/model"
)

// AnalysisRepository 课程分析数据访问接口
type AnalysisRepository interface {
	Create(ctx context.Context, analysis *model.LessonAnalysis) error
	GetByID(ctx context.Context, id string) (*model.LessonAnalysis, error)
	GetBySeatID(ctx context.Context, seatID string) (*model.LessonAnalysis, error)
	Update(ctx context.Context, analysis *model.LessonAnalysis) error
}

// analysisRepo AnalysisRepository 的 GORM 实现
type analysisRepo struct {
	db *gorm.DB
}

// NewAnalysisRepo 创建 AnalysisRepository 实例
func NewAnalysisRepo(db *gorm.DB) AnalysisRepository {
	return &analysisRepo{db: db}
}

func (r *analysisRepo) Create(ctx context.Context, analysis *model.LessonAnalysis) error {
	return r.db.WithContext(ctx).Create(analysis).Error
}

func (r *analysisRepo) GetByID(ctx context.Context, id string) (*model.LessonAnalysis, error) {
	var analysis model.LessonAnalysis
	err := r.db.WithContext(ctx).
		Where("analysis_id = ?", id).
		First(&analysis).Error
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (r *analysisRepo) GetBySeatID(ctx context.Context, seatID string) (*model.LessonAnalysis, error) {
	var analysis model.LessonAnalysis
	err := r.db.WithContext(ctx).
		Where("seat_id = ?", seatID).
		First(&analysis).Error
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (r *analysisRepo) Update(ctx context.Context, analysis *model.LessonAnalysis) error {
	return r.db.WithContext(ctx).Save(analysis).Error
}
