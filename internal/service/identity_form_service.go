package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/James3014/skidiy-learn-sub001/internal/dto"
	"github.com/James3014/skidiy-learn-sub001/internal/model"
	"github.com/James3014/skidiy-learn-sub001/internal/repository"
)

// IdentityFormService 身份表单业务接口
type IdentityFormService interface {
	// GetForm 查询座位身份表单；座位存在但尚无表单时返回 (nil, nil)
	GetForm(ctx context.Context, seatID string) (*dto.IdentityFormResponse, error)
	// SubmitForm 部分更新并提交表单；confirmed 后的表单拒绝任何修改
	SubmitForm(ctx context.Context, seatID string, req *dto.UpdateIdentityFormRequest, callerID string) (*dto.IdentityFormResponse, error)
}

type identityFormService struct {
	repo   *repository.Repository
	audit  AuditService
	logger *zap.Logger
	now    func() time.Time
}

// NewIdentityFormService 创建 IdentityFormService 实例
func NewIdentityFormService(repo *repository.Repository, audit AuditService, logger *zap.Logger) IdentityFormService {
	return &identityFormService{
		repo:   repo,
		audit:  audit,
		logger: logger,
		now:    time.Now,
	}
}

func (s *identityFormService) GetForm(ctx context.Context, seatID string) (*dto.IdentityFormResponse, error) {
	if _, err := s.repo.OrderSeat.GetByID(ctx, seatID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeatNotFound
		}
		s.logger.Error("查询座位失败", zap.String("seat_id", seatID), zap.Error(err))
		return nil, err
	}

	form, err := s.repo.IdentityForm.GetBySeatID(ctx, seatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // 座位尚未领取，无表单
		}
		s.logger.Error("查询身份表单失败", zap.String("seat_id", seatID), zap.Error(err))
		return nil, err
	}

	resp := toFormResponse(form)
	return &resp, nil
}

func (s *identityFormService) SubmitForm(ctx context.Context, seatID string, req *dto.UpdateIdentityFormRequest, callerID string) (*dto.IdentityFormResponse, error) {
	seat, err := s.repo.OrderSeat.GetByID(ctx, seatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeatNotFound
		}
		s.logger.Error("查询座位失败", zap.String("seat_id", seatID), zap.Error(err))
		return nil, err
	}
	if seat.Status == model.SeatStatusOpen {
		return nil, ErrSeatNotClaimed
	}

	form, err := s.repo.IdentityForm.GetBySeatID(ctx, seatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeatNotClaimed
		}
		s.logger.Error("查询身份表单失败", zap.String("seat_id", seatID), zap.Error(err))
		return nil, err
	}

	// 确认后表单完全只读
	if form.Status == model.FormStatusConfirmed {
		return nil, ErrFormLocked
	}

	applyFormUpdate(form, req)

	// 合并后整体校验：部分更新不允许把表单改成非法状态
	// （例如把 is_minor 置 true 却不补监护人联系方式）
	merged := dto.IdentityPayload{
		StudentName:       form.StudentName,
		ContactPhone:      form.ContactPhone,
		ContactEmail:      form.ContactEmail,
		IsMinor:           form.IsMinor,
		GuardianName:      form.GuardianName,
		GuardianPhone:     form.GuardianPhone,
		GuardianEmail:     form.GuardianEmail,
		InsuranceProvider: form.InsuranceProvider,
		InsurancePolicyNo: form.InsurancePolicyNo,
	}
	if fieldErrs := dto.ValidateIdentityPayload(&merged); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	now := s.now()
	form.Status = model.FormStatusSubmitted
	form.SubmittedAt = &now
	form.UpdatedBy = &callerID

	if err := s.repo.IdentityForm.Update(ctx, form); err != nil {
		s.logger.Error("更新身份表单失败", zap.String("seat_id", seatID), zap.Error(err))
		return nil, err
	}

	s.audit.Log(callerID, "form.submit", "seat_identity_form", form.FormID, map[string]interface{}{
		"seat_id": seatID,
	})

	resp := toFormResponse(form)
	return &resp, nil
}

// ── 内部辅助方法 ──

func applyFormUpdate(form *model.SeatIdentityForm, req *dto.UpdateIdentityFormRequest) {
	if req.StudentName != nil {
		form.StudentName = *req.StudentName
	}
	if req.ContactPhone != nil {
		form.ContactPhone = *req.ContactPhone
	}
	if req.ContactEmail != nil {
		form.ContactEmail = *req.ContactEmail
	}
	if req.IsMinor != nil {
		form.IsMinor = *req.IsMinor
	}
	if req.GuardianName != nil {
		form.GuardianName = *req.GuardianName
	}
	if req.GuardianPhone != nil {
		form.GuardianPhone = *req.GuardianPhone
	}
	if req.GuardianEmail != nil {
		form.GuardianEmail = *req.GuardianEmail
	}
	if req.InsuranceProvider != nil {
		form.InsuranceProvider = *req.InsuranceProvider
	}
	if req.InsurancePolicyNo != nil {
		form.InsurancePolicyNo = *req.InsurancePolicyNo
	}
}

func toFormResponse(form *model.SeatIdentityForm) dto.IdentityFormResponse {
	resp := dto.IdentityFormResponse{
		ID:                form.FormID,
		SeatID:            form.SeatID,
		Status:            form.Status,
		StudentName:       form.StudentName,
		ContactPhone:      form.ContactPhone,
		ContactEmail:      form.ContactEmail,
		IsMinor:           form.IsMinor,
		GuardianName:      form.GuardianName,
		GuardianPhone:     form.GuardianPhone,
		GuardianEmail:     form.GuardianEmail,
		InsuranceProvider: form.InsuranceProvider,
		InsurancePolicyNo: form.InsurancePolicyNo,
	}
	if form.SubmittedAt != nil {
		formatted := form.SubmittedAt.Format("2006-01-02T15:04:05Z")
		resp.SubmittedAt = &formatted
	}
	if form.ConfirmedAt != nil {
		formatted := form.ConfirmedAt.Format("2006-01-02T15:04:05Z")
		resp.ConfirmedAt = &formatted
	}
	return resp
}
