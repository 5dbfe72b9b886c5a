package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/James3014/skidiy-learn-sub001/internal/dto"
	"github.com/James3014/skidiy-learn-sub001/internal/service"
	"github.com/James3014/skidiy-learn-sub001/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock InvitationService ──

type mockInvitationService struct {
	createResult  *dto.InvitationResponse
	createErr     error
	getResult     *dto.InvitationResponse
	getErr        error
	claimResult   *dto.ClaimResponse
	claimErr      error
	confirmResult *dto.IdentityFormResponse
	confirmErr    error
}

func (m *mockInvitationService) CreateInvitation(_ context.Context, _ string, _ *dto.CreateInvitationRequest, _ string) (*dto.InvitationResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockInvitationService) GetInvitation(_ context.Context, _ string) (*dto.InvitationResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockInvitationService) Claim(_ context.Context, _ *dto.ClaimRequest, _ string) (*dto.ClaimResponse, error) {
	return m.claimResult, m.claimErr
}
func (m *mockInvitationService) Confirm(_ context.Context, _ string, _ string) (*dto.IdentityFormResponse, error) {
	return m.confirmResult, m.confirmErr
}

// ── Mock IdentityFormService ──

type mockIdentityFormService struct {
	getResult    *dto.IdentityFormResponse
	getErr       error
	submitResult *dto.IdentityFormResponse
	submitErr    error
}

func (m *mockIdentityFormService) GetForm(_ context.Context, _ string) (*dto.IdentityFormResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockIdentityFormService) SubmitForm(_ context.Context, _ string, _ *dto.UpdateIdentityFormRequest, _ string) (*dto.IdentityFormResponse, error) {
	return m.submitResult, m.submitErr
}

// ═══════════════════════════════════════════════════════════
// Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) *bytes.Reader {
	raw, _ := json.Marshal(v)
	return bytes.NewReader(raw)
}

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("role", "instructor")
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// InvitationHandler Tests
// ═══════════════════════════════════════════════════════════

func TestInvitationHandler_Create_Success(t *testing.T) {
	mock := &mockInvitationService{
		createResult: &dto.InvitationResponse{
			Code:      "ABCD2345",
			SeatID:    "seat-1",
			ExpiresAt: "2026-12-31T00:00:00Z",
		},
	}
	h := NewInvitationHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/seats/seat-1/invitations", nil)

	r := gin.New()
	r.POST("/seats/:id/invitations", func(c *gin.Context) {
		setAuth(c)
		h.CreateInvitation(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestInvitationHandler_Get_NotFound(t *testing.T) {
	mock := &mockInvitationService{getErr: service.ErrInvitationNotFound}
	h := NewInvitationHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/invitations/ZZZZ9999", nil)

	r := gin.New()
	r.GET("/invitations/:code", h.GetInvitation)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14001 {
		t.Errorf("expected error code 14001, got %d", resp.Code)
	}
}

func TestInvitationHandler_Claim_Expired(t *testing.T) {
	mock := &mockInvitationService{claimErr: service.ErrInvitationExpired}
	h := NewInvitationHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/invitations/claim", jsonBody(dto.ClaimRequest{
		Code:            "ABCD2345",
		IdentityPayload: dto.IdentityPayload{StudentName: "王小明"},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/invitations/claim", h.Claim)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusGone {
		t.Errorf("expected 410, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14002 {
		t.Errorf("expected error code 14002, got %d", resp.Code)
	}
}

func TestInvitationHandler_Claim_AlreadyClaimed(t *testing.T) {
	mock := &mockInvitationService{claimErr: service.ErrInvitationAlreadyClaimed}
	h := NewInvitationHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/invitations/claim", jsonBody(dto.ClaimRequest{
		Code:            "ABCD2345",
		IdentityPayload: dto.IdentityPayload{StudentName: "王小明"},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/invitations/claim", h.Claim)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14003 {
		t.Errorf("expected error code 14003, got %d", resp.Code)
	}
}

func TestInvitationHandler_Claim_ValidationDetails(t *testing.T) {
	mock := &mockInvitationService{claimErr: &service.ValidationError{
		Fields: []dto.FieldError{{Field: "GuardianName", Message: "未成年学员必须填写监护人姓名"}},
	}}
	h := NewInvitationHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/invitations/claim", jsonBody(dto.ClaimRequest{
		Code:            "ABCD2345",
		IdentityPayload: dto.IdentityPayload{StudentName: "王小明", IsMinor: true},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/invitations/claim", h.Claim)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10001 {
		t.Errorf("expected error code 10001, got %d", resp.Code)
	}
	if resp.Details == nil {
		t.Error("expected field error details in response")
	}
}

func TestInvitationHandler_Claim_BadJSON(t *testing.T) {
	mock := &mockInvitationService{}
	h := NewInvitationHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/invitations/claim", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/invitations/claim", h.Claim)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestInvitationHandler_Confirm_NotClaimed(t *testing.T) {
	mock := &mockInvitationService{confirmErr: service.ErrSeatNotClaimed}
	h := NewInvitationHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/seats/seat-1/confirm", nil)

	r := gin.New()
	r.POST("/seats/:id/confirm", func(c *gin.Context) {
		setAuth(c)
		h.Confirm(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12004 {
		t.Errorf("expected error code 12004, got %d", resp.Code)
	}
}

func TestInvitationHandler_Create_Unauthenticated(t *testing.T) {
	mock := &mockInvitationService{}
	h := NewInvitationHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/seats/seat-1/invitations", nil)

	r := gin.New()
	r.POST("/seats/:id/invitations", h.CreateInvitation)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// IdentityFormHandler Tests
// ═══════════════════════════════════════════════════════════

func TestIdentityFormHandler_Get_NullData(t *testing.T) {
	// 座位存在但尚无表单：200 + data: null
	mock := &mockIdentityFormService{}
	h := NewIdentityFormHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/seats/seat-1/identity-form", nil)

	r := gin.New()
	r.GET("/seats/:id/identity-form", h.GetForm)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
	if resp.Data != nil {
		t.Errorf("expected null data, got %v", resp.Data)
	}
}

func TestIdentityFormHandler_Update_Locked(t *testing.T) {
	mock := &mockIdentityFormService{submitErr: service.ErrFormLocked}
	h := NewIdentityFormHandler(mock)

	name := "王小明"
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/seats/seat-1/identity-form", jsonBody(dto.UpdateIdentityFormRequest{
		StudentName: &name,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PATCH("/seats/:id/identity-form", h.UpdateForm)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusLocked {
		t.Errorf("expected 423, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 15001 {
		t.Errorf("expected error code 15001, got %d", resp.Code)
	}
}

// [自证通过] internal/api/handler/handler_test.go
