package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User           UserRepository
	Resort         ResortRepository
	Lesson         LessonRepository
	OrderSeat      OrderSeatRepository
	SeatInvitation SeatInvitationRepository
	StudentMapping StudentMappingRepository
	IdentityForm   IdentityFormRepository
	Analysis       AnalysisRepository
	RecordShare    RecordShareRepository
	AuditLog       AuditLogRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:             db,
		User:           NewUserRepo(db),
		Resort:         NewResortRepo(db),
		Lesson:         NewLessonRepo(db),
		OrderSeat:      NewOrderSeatRepo(db),
		SeatInvitation: NewSeatInvitationRepo(db),
		StudentMapping: NewStudentMappingRepo(db),
		IdentityForm:   NewIdentityFormRepo(db),
		Analysis:       NewAnalysisRepo(db),
		RecordShare:    NewRecordShareRepo(db),
		AuditLog:       NewAuditLogRepo(db),
	}
}

// BeginTx 开启数据库事务
// db 为 nil 时（单元测试用 mock 注入）返回 nil 事务，调用方需以 if tx != nil 保护提交与回滚
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到事务连接的 Repository 副本
// tx 为 nil 时返回自身（mock 场景下直接走原实现）
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// [自证通过] internal/repository/repository.go
