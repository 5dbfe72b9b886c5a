package dto

// ── 身份表单模块 DTO ──

// IdentityPayload 学员身份信息
// 校验规则见 ValidateIdentityPayload：未成年人必须提供监护人联系方式
type IdentityPayload struct {
	StudentName       string `json:"student_name"        validate:"required,min=1,max=100"`
	ContactPhone      string `json:"contact_phone"       validate:"omitempty,max=30"`
	ContactEmail      string `json:"contact_email"       validate:"omitempty,email"`
	IsMinor           bool   `json:"is_minor"`
	GuardianName      string `json:"guardian_name"       validate:"omitempty,max=100"`
	GuardianPhone     string `json:"guardian_phone"      validate:"omitempty,max=30"`
	GuardianEmail     string `json:"guardian_email"      validate:"omitempty,email"`
	InsuranceProvider string `json:"insurance_provider"  validate:"omitempty,max=100"`
	InsurancePolicyNo string `json:"insurance_policy_no" validate:"omitempty,max=100"`
}

// UpdateIdentityFormRequest 部分更新身份表单请求
type UpdateIdentityFormRequest struct {
	StudentName       *string `json:"student_name"        binding:"omitempty,min=1,max=100"`
	ContactPhone      *string `json:"contact_phone"       binding:"omitempty,max=30"`
	ContactEmail      *string `json:"contact_email"       binding:"omitempty,email"`
	IsMinor           *bool   `json:"is_minor"`
	GuardianName      *string `json:"guardian_name"       binding:"omitempty,max=100"`
	GuardianPhone     *string `json:"guardian_phone"      binding:"omitempty,max=30"`
	GuardianEmail     *string `json:"guardian_email"      binding:"omitempty,email"`
	InsuranceProvider *string `json:"insurance_provider"  binding:"omitempty,max=100"`
	InsurancePolicyNo *string `json:"insurance_policy_no" binding:"omitempty,max=100"`
}

// IdentityFormResponse 身份表单响应
type IdentityFormResponse struct {
	ID                string  `json:"id"`
	SeatID            string  `json:"seat_id"`
	Status            string  `json:"status"`
	StudentName       string  `json:"student_name"`
	ContactPhone      string  `json:"contact_phone,omitempty"`
	ContactEmail      string  `json:"contact_email,omitempty"`
	IsMinor           bool    `json:"is_minor"`
	GuardianName      string  `json:"guardian_name,omitempty"`
	GuardianPhone     string  `json:"guardian_phone,omitempty"`
	GuardianEmail     string  `json:"guardian_email,omitempty"`
	InsuranceProvider string  `json:"insurance_provider,omitempty"`
	InsurancePolicyNo string  `json:"insurance_policy_no,omitempty"`
	SubmittedAt       *string `json:"submitted_at,omitempty"`
	ConfirmedAt       *string `json:"confirmed_at,omitempty"`
}
