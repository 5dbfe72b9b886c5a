package dto

import "testing"

func TestValidateIdentityPayloadAdult(t *testing.T) {
	p := &IdentityPayload{
		StudentName:  "王小明",
		ContactPhone: "13800138000",
		ContactEmail: "xiaoming@example.com",
	}
	if errs := ValidateIdentityPayload(p); len(errs) != 0 {
		t.Errorf("成年学员合法信息不应报错: %+v", errs)
	}
}

func TestValidateIdentityPayloadMinorRequiresGuardian(t *testing.T) {
	p := &IdentityPayload{
		StudentName: "王小明",
		IsMinor:     true,
	}
	errs := ValidateIdentityPayload(p)
	if len(errs) != 2 {
		t.Fatalf("缺监护人姓名与联系方式应返回 2 个错误, 实际 %d: %+v", len(errs), errs)
	}

	// 仅补姓名仍缺联系方式
	p.GuardianName = "王大明"
	errs = ValidateIdentityPayload(p)
	if len(errs) != 1 || errs[0].Field != "GuardianPhone" {
		t.Errorf("仅有监护人姓名时应提示缺联系方式: %+v", errs)
	}

	// 邮箱或电话任一即可
	p.GuardianEmail = "guardian@example.com"
	if errs := ValidateIdentityPayload(p); len(errs) != 0 {
		t.Errorf("监护人姓名 + 邮箱应通过校验: %+v", errs)
	}
}

func TestValidateIdentityPayloadFieldRules(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*IdentityPayload)
		wantErr bool
	}{
		{"学员姓名必填", func(p *IdentityPayload) { p.StudentName = "" }, true},
		{"联系邮箱格式", func(p *IdentityPayload) { p.ContactEmail = "not-an-email" }, true},
		{"监护人邮箱格式", func(p *IdentityPayload) { p.GuardianEmail = "bad" }, true},
		{"保险信息可选", func(p *IdentityPayload) { p.InsuranceProvider = "" }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &IdentityPayload{
				StudentName:       "王小明",
				ContactEmail:      "xiaoming@example.com",
				InsuranceProvider: "平安保险",
				InsurancePolicyNo: "P-2026-0001",
			}
			tc.mutate(p)
			errs := ValidateIdentityPayload(p)
			if tc.wantErr && len(errs) == 0 {
				t.Error("期望校验失败, 实际通过")
			}
			if !tc.wantErr && len(errs) != 0 {
				t.Errorf("期望校验通过, 实际 %+v", errs)
			}
		})
	}
}
