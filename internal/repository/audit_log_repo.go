package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/James3014/skidiy-learn-sub001/internal/model"
)

// AuditLogRepository 审计日志数据访问接口（仅追加）
type AuditLogRepository interface {
	Create(ctx context.Context, entry *model.AuditLog) error
}

// auditLogRepo AuditLogRepository 的 GORM 实现
type auditLogRepo struct {
	db *gorm.DB
}

// NewAuditLogRepo 创建 AuditLogRepository 实例
func NewAuditLogRepo(db *gorm.DB) AuditLogRepository {
	return &auditLogRepo{db: db}
}

func (r *auditLogRepo) Create(ctx context.Context, entry *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
