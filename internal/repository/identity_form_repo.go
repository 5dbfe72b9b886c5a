package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/James3014/skidiy-learn-sub001/internal/model"
	apperrors "github.com/James3014/skidiy-learn-sub001/pkg/errors"
)

// IdentityFormRepository 身份表单数据访问接口
type IdentityFormRepository interface {
	Create(ctx context.Context, form *model.SeatIdentityForm) error
	GetBySeatID(ctx context.Context, seatID string) (*model.SeatIdentityForm, error)
	// Update 乐观锁更新：version 不匹配时返回 ErrOptimisticLock
	Update(ctx context.Context, form *model.SeatIdentityForm) error
	// MarkConfirmed 条件更新：仅当表单为 submitted 时写入 confirmed 状态，返回影响行数
	MarkConfirmed(ctx context.Context, formID string, now time.Time) (int64, error)
}

// identityFormRepo IdentityFormRepository 的 GORM 实现
type identityFormRepo struct {
	db *gorm.DB
}

// NewIdentityFormRepo 创建 IdentityFormRepository 实例
func NewIdentityFormRepo(db *gorm.DB) IdentityFormRepository {
	return &identityFormRepo{db: db}
}

func (r *identityFormRepo) Create(ctx context.Context, form *model.SeatIdentityForm) error {
	return r.db.WithContext(ctx).Create(form).Error
}

func (r *identityFormRepo) GetBySeatID(ctx context.Context, seatID string) (*model.SeatIdentityForm, error) {
	var form model.SeatIdentityForm
	err := r.db.WithContext(ctx).
		Where("seat_id = ?", seatID).
		First(&form).Error
	if err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *identityFormRepo) Update(ctx context.Context, form *model.SeatIdentityForm) error {
	res := r.db.WithContext(ctx).
		Model(&model.SeatIdentityForm{}).
		Where("form_id = ? AND version = ?", form.FormID, form.Version).
		Updates(map[string]interface{}{
			"status":              form.Status,
			"student_name":        form.StudentName,
			"contact_phone":       form.ContactPhone,
			"contact_email":       form.ContactEmail,
			"is_minor":            form.IsMinor,
			"guardian_name":       form.GuardianName,
			"guardian_phone":      form.GuardianPhone,
			"guardian_email":      form.GuardianEmail,
			"insurance_provider":  form.InsuranceProvider,
			"insurance_policy_no": form.InsurancePolicyNo,
			"submitted_at":        form.SubmittedAt,
			"updated_by":          form.UpdatedBy,
			"version":             gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}
	form.Version++
	return nil
}

func (r *identityFormRepo) MarkConfirmed(ctx context.Context, formID string, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.SeatIdentityForm{}).
		Where("form_id = ? AND status = ?", formID, model.FormStatusSubmitted).
		Updates(map[string]interface{}{
			"status":       model.FormStatusConfirmed,
			"confirmed_at": now,
			"updated_at":   now,
			"version":      gorm.Expr("version + 1"),
		})
	return res.RowsAffected, res.Error
}
