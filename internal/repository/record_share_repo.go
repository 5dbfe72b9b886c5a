package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/James3014/skidiy-learn-sub001/internal/model"
)

// RecordShareRepository 记录分享数据访问接口
type RecordShareRepository interface {
	Create(ctx context.Context, share *model.RecordShare) error
	Exists(ctx context.Context, analysisID, sharedWith string) (bool, error)
	ListSharedWith(ctx context.Context, instructorID string) ([]model.RecordShare, error)
}

// recordShareRepo RecordShareRepository 的 GORM 实现
type recordShareRepo struct {
	db *gorm.DB
}

// NewRecordShareRepo 创建 RecordShareRepository 实例
func NewRecordShareRepo(db *gorm.DB) RecordShareRepository {
	return &recordShareRepo{db: db}
}

func (r *recordShareRepo) Create(ctx context.Context, share *model.RecordShare) error {
	return r.db.WithContext(ctx).Create(share).Error
}

func (r *recordShareRepo) Exists(ctx context.Context, analysisID, sharedWith string) (bool, error) {
	var share model.RecordShare
	err := r.db.WithContext(ctx).
		Select("share_id").
		Where("analysis_id = ? AND shared_with = ?", analysisID, sharedWith).
		First(&share).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *recordShareRepo) ListSharedWith(ctx context.Context, instructorID string) ([]model.RecordShare, error) {
	var shares []model.RecordShare
	err := r.db.WithContext(ctx).
		Where("shared_with = ?", instructorID).
		Order("created_at DESC").
		Find(&shares).Error
	return shares, err
}
