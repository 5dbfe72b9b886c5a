package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/James3014/skidiy-learn-sub001/internal/model"
)

// StudentMappingRepository 学员映射数据访问接口
type StudentMappingRepository interface {
	Create(ctx context.Context, mapping *model.StudentMapping) error
	GetByID(ctx context.Context, id string) (*model.StudentMapping, error)
}

// studentMappingRepo StudentMappingRepository 的 GORM 实现
type studentMappingRepo struct {
	db *gorm.DB
}

// NewStudentMappingRepo 创建 StudentMappingRepository 实例
func NewStudentMappingRepo(db *gorm.DB) StudentMappingRepository {
	return &studentMappingRepo{db: db}
}

func (r *studentMappingRepo) Create(ctx context.Context, mapping *model.StudentMapping) error {
	return r.db.WithContext(ctx).Create(mapping).Error
}

func (r *studentMappingRepo) GetByID(ctx context.Context, id string) (*model.StudentMapping, error) {
	var mapping model.StudentMapping
	err := r.db.WithContext(ctx).
		Where("mapping_id = ?", id).
		First(&mapping).Error
	if err != nil {
		return nil, err
	}
	return &mapping, nil
}
