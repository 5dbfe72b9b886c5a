package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/James3014/skidiy-learn-sub001/internal/model"
	"github.com/James3014/skidiy-learn-sub001/internal/repository"
	apperrors "github.com/James3014/skidiy-learn-sub001/pkg/errors"
)

// ── 内存 Mock 仓储 ──
//
// 全部基于 map + 互斥锁实现，注入 Repository 聚合后 db 为 nil，
// BeginTx 返回 nil 事务，Service 层的事务代码按原路径执行。
// 条件更新（MarkClaimed 等）在锁内判定，与数据库行级 CAS 语义一致。

// ── User ──

type mockUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *user
	return &cp, nil
}

func (m *mockUserRepo) GetByPhone(_ context.Context, phone string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Phone == phone {
			cp := *user
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

// ── Resort ──

type mockResortRepo struct {
	mu      sync.Mutex
	resorts map[string]*model.Resort
	// lessonCounts 由测试直接设置，模拟 CountLessons 的联表统计
	lessonCounts map[string]int64
	seq          int
}

func newMockResortRepo() *mockResortRepo {
	return &mockResortRepo{
		resorts:      make(map[string]*model.Resort),
		lessonCounts: make(map[string]int64),
	}
}

func (m *mockResortRepo) Create(_ context.Context, resort *model.Resort) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if resort.ResortID == "" {
		m.seq++
		resort.ResortID = fmt.Sprintf("resort-%d", m.seq)
	}
	cp := *resort
	m.resorts[resort.ResortID] = &cp
	return nil
}

func (m *mockResortRepo) GetByID(_ context.Context, id string) (*model.Resort, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	resort, ok := m.resorts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *resort
	return &cp, nil
}

func (m *mockResortRepo) GetByName(_ context.Context, name string) (*model.Resort, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, resort := range m.resorts {
		if resort.Name == name {
			cp := *resort
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockResortRepo) List(_ context.Context) ([]model.Resort, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Resort
	for _, resort := range m.resorts {
		if resort.IsActive {
			result = append(result, *resort)
		}
	}
	return result, nil
}

func (m *mockResortRepo) ListAll(_ context.Context) ([]model.Resort, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Resort
	for _, resort := range m.resorts {
		result = append(result, *resort)
	}
	return result, nil
}

func (m *mockResortRepo) Update(_ context.Context, resort *model.Resort) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *resort
	m.resorts[resort.ResortID] = &cp
	return nil
}

func (m *mockResortRepo) Delete(_ context.Context, id string, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.resorts, id)
	return nil
}

func (m *mockResortRepo) CountLessons(_ context.Context, resortID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lessonCounts[resortID], nil
}

// ── Lesson ──

type mockLessonRepo struct {
	mu      sync.Mutex
	lessons map[string]*model.Lesson
	seq     int
}

func newMockLessonRepo() *mockLessonRepo {
	return &mockLessonRepo{lessons: make(map[string]*model.Lesson)}
}

func (m *mockLessonRepo) Create(_ context.Context, lesson *model.Lesson) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if lesson.LessonID == "" {
		m.seq++
		lesson.LessonID = fmt.Sprintf("lesson-%d", m.seq)
	}
	cp := *lesson
	m.lessons[lesson.LessonID] = &cp
	return nil
}

func (m *mockLessonRepo) GetByID(_ context.Context, id string) (*model.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lesson, ok := m.lessons[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *lesson
	return &cp, nil
}

func (m *mockLessonRepo) List(_ context.Context, filters *repository.LessonFilters) ([]model.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Lesson
	for _, lesson := range m.lessons {
		if filters != nil {
			if filters.ResortID != "" && lesson.ResortID != filters.ResortID {
				continue
			}
			if filters.InstructorID != "" && lesson.InstructorID != filters.InstructorID {
				continue
			}
		}
		result = append(result, *lesson)
	}
	return result, nil
}

func (m *mockLessonRepo) Update(_ context.Context, lesson *model.Lesson) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *lesson
	m.lessons[lesson.LessonID] = &cp
	return nil
}

// ── OrderSeat ──

type mockOrderSeatRepo struct {
	mu    sync.Mutex
	seats map[string]*model.OrderSeat
	seq   int
}

func newMockOrderSeatRepo() *mockOrderSeatRepo {
	return &mockOrderSeatRepo{seats: make(map[string]*model.OrderSeat)}
}

func (m *mockOrderSeatRepo) Create(_ context.Context, seat *model.OrderSeat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if seat.SeatID == "" {
		m.seq++
		seat.SeatID = fmt.Sprintf("seat-%d", m.seq)
	}
	cp := *seat
	m.seats[seat.SeatID] = &cp
	return nil
}

func (m *mockOrderSeatRepo) GetByID(_ context.Context, id string) (*model.OrderSeat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seat, ok := m.seats[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *seat
	return &cp, nil
}

func (m *mockOrderSeatRepo) ListByLesson(_ context.Context, lessonID string) ([]model.OrderSeat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.OrderSeat
	for _, seat := range m.seats {
		if seat.LessonID == lessonID {
			result = append(result, *seat)
		}
	}
	return result, nil
}

// MarkClaimed 锁内判定 status == open，语义等价于数据库条件更新
func (m *mockOrderSeatRepo) MarkClaimed(_ context.Context, seatID, mappingID string, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seat, ok := m.seats[seatID]
	if !ok || seat.Status != model.SeatStatusOpen {
		return 0, nil
	}
	seat.Status = model.SeatStatusClaimed
	seat.ClaimedMappingID = &mappingID
	seat.ClaimedAt = &now
	seat.Version++
	return 1, nil
}

func (m *mockOrderSeatRepo) MarkConfirmed(_ context.Context, seatID string, _ time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seat, ok := m.seats[seatID]
	if !ok || seat.Status != model.SeatStatusClaimed {
		return 0, nil
	}
	seat.Status = model.SeatStatusConfirmed
	seat.Version++
	return 1, nil
}

// ── SeatInvitation ──

type mockSeatInvitationRepo struct {
	mu          sync.Mutex
	invitations map[string]*model.SeatInvitation // key: invitation_id
	seq         int
}

func newMockSeatInvitationRepo() *mockSeatInvitationRepo {
	return &mockSeatInvitationRepo{invitations: make(map[string]*model.SeatInvitation)}
}

func (m *mockSeatInvitationRepo) Create(_ context.Context, invitation *model.SeatInvitation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.invitations {
		if existing.Code == invitation.Code {
			return fmt.Errorf("duplicate key: code %s", invitation.Code)
		}
	}
	if invitation.InvitationID == "" {
		m.seq++
		invitation.InvitationID = fmt.Sprintf("inv-%d", m.seq)
	}
	cp := *invitation
	m.invitations[invitation.InvitationID] = &cp
	return nil
}

func (m *mockSeatInvitationRepo) GetByCode(_ context.Context, code string) (*model.SeatInvitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, invitation := range m.invitations {
		if invitation.Code == code {
			cp := *invitation
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSeatInvitationRepo) GetByCodeForUpdate(ctx context.Context, code string) (*model.SeatInvitation, error) {
	return m.GetByCode(ctx, code)
}

func (m *mockSeatInvitationRepo) CodeExists(_ context.Context, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, invitation := range m.invitations {
		if invitation.Code == code {
			return true, nil
		}
	}
	return false, nil
}

// MarkClaimed 锁内判定 claimed_at 仍为空，等价于 WHERE claimed_at IS NULL 的 CAS
func (m *mockSeatInvitationRepo) MarkClaimed(_ context.Context, invitationID, mappingID string, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	invitation, ok := m.invitations[invitationID]
	if !ok || invitation.ClaimedAt != nil {
		return 0, nil
	}
	invitation.ClaimedAt = &now
	invitation.ClaimedBy = &mappingID
	invitation.Version++
	return 1, nil
}

func (m *mockSeatInvitationRepo) ExpireOpenBySeat(_ context.Context, seatID string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, invitation := range m.invitations {
		if invitation.SeatID == seatID && invitation.ClaimedAt == nil && invitation.ExpiresAt.After(now) {
			invitation.ExpiresAt = now
			invitation.Version++
		}
	}
	return nil
}

// ── StudentMapping ──

type mockStudentMappingRepo struct {
	mu       sync.Mutex
	mappings map[string]*model.StudentMapping
	seq      int
}

func newMockStudentMappingRepo() *mockStudentMappingRepo {
	return &mockStudentMappingRepo{mappings: make(map[string]*model.StudentMapping)}
}

func (m *mockStudentMappingRepo) Create(_ context.Context, mapping *model.StudentMapping) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mapping.MappingID == "" {
		m.seq++
		mapping.MappingID = fmt.Sprintf("mapping-%d", m.seq)
	}
	cp := *mapping
	m.mappings[mapping.MappingID] = &cp
	return nil
}

func (m *mockStudentMappingRepo) GetByID(_ context.Context, id string) (*model.StudentMapping, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mapping, ok := m.mappings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *mapping
	return &cp, nil
}

// ── IdentityForm ──

type mockIdentityFormRepo struct {
	mu    sync.Mutex
	forms map[string]*model.SeatIdentityForm // key: form_id
	seq   int
}

func newMockIdentityFormRepo() *mockIdentityFormRepo {
	return &mockIdentityFormRepo{forms: make(map[string]*model.SeatIdentityForm)}
}

func (m *mockIdentityFormRepo) Create(_ context.Context, form *model.SeatIdentityForm) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if form.FormID == "" {
		m.seq++
		form.FormID = fmt.Sprintf("form-%d", m.seq)
	}
	cp := *form
	m.forms[form.FormID] = &cp
	return nil
}

func (m *mockIdentityFormRepo) GetBySeatID(_ context.Context, seatID string) (*model.SeatIdentityForm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, form := range m.forms {
		if form.SeatID == seatID {
			cp := *form
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockIdentityFormRepo) Update(_ context.Context, form *model.SeatIdentityForm) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.forms[form.FormID]
	if !ok || stored.Version != form.Version {
		return apperrors.ErrOptimisticLock
	}
	form.Version++
	cp := *form
	m.forms[form.FormID] = &cp
	return nil
}

func (m *mockIdentityFormRepo) MarkConfirmed(_ context.Context, formID string, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	form, ok := m.forms[formID]
	if !ok || form.Status != model.FormStatusSubmitted {
		return 0, nil
	}
	form.Status = model.FormStatusConfirmed
	form.ConfirmedAt = &now
	form.Version++
	return 1, nil
}

// ── Analysis ──

type mockAnalysisRepo struct {
	mu       sync.Mutex
	analyses map[string]*model.LessonAnalysis
	seq      int
}

func newMockAnalysisRepo() *mockAnalysisRepo {
	return &mockAnalysisRepo{analyses: make(map[string]*model.LessonAnalysis)}
}

func (m *mockAnalysisRepo) Create(_ context.Context, analysis *model.LessonAnalysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if analysis.AnalysisID == "" {
		m.seq++
		analysis.AnalysisID = fmt.Sprintf("analysis-%d", m.seq)
	}
	cp := *analysis
	m.analyses[analysis.AnalysisID] = &cp
	return nil
}

func (m *mockAnalysisRepo) GetByID(_ context.Context, id string) (*model.LessonAnalysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	analysis, ok := m.analyses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *analysis
	return &cp, nil
}

func (m *mockAnalysisRepo) GetBySeatID(_ context.Context, seatID string) (*model.LessonAnalysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, analysis := range m.analyses {
		if analysis.SeatID == seatID {
			cp := *analysis
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAnalysisRepo) Update(_ context.Context, analysis *model.LessonAnalysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *analysis
	m.analyses[analysis.AnalysisID] = &cp
	return nil
}

// ── RecordShare ──

type mockRecordShareRepo struct {
	mu     sync.Mutex
	shares map[string]*model.RecordShare
	seq    int
}

func newMockRecordShareRepo() *mockRecordShareRepo {
	return &mockRecordShareRepo{shares: make(map[string]*model.RecordShare)}
}

func (m *mockRecordShareRepo) Create(_ context.Context, share *model.RecordShare) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if share.ShareID == "" {
		m.seq++
		share.ShareID = fmt.Sprintf("share-%d", m.seq)
	}
	cp := *share
	m.shares[share.ShareID] = &cp
	return nil
}

func (m *mockRecordShareRepo) Exists(_ context.Context, analysisID, sharedWith string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, share := range m.shares {
		if share.AnalysisID == analysisID && share.SharedWith == sharedWith {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRecordShareRepo) ListSharedWith(_ context.Context, instructorID string) ([]model.RecordShare, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.RecordShare
	for _, share := range m.shares {
		if share.SharedWith == instructorID {
			result = append(result, *share)
		}
	}
	return result, nil
}

// ── AuditLog ──

type mockAuditLogRepo struct {
	mu      sync.Mutex
	entries []*model.AuditLog
}

func newMockAuditLogRepo() *mockAuditLogRepo {
	return &mockAuditLogRepo{}
}

func (m *mockAuditLogRepo) Create(_ context.Context, entry *model.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

// ── 组装辅助 ──

// mockRepos 持有全部 mock 实例，供测试直接访问内部状态
type mockRepos struct {
	user           *mockUserRepo
	resort         *mockResortRepo
	lesson         *mockLessonRepo
	orderSeat      *mockOrderSeatRepo
	seatInvitation *mockSeatInvitationRepo
	studentMapping *mockStudentMappingRepo
	identityForm   *mockIdentityFormRepo
	analysis       *mockAnalysisRepo
	recordShare    *mockRecordShareRepo
	auditLog       *mockAuditLogRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		user:           newMockUserRepo(),
		resort:         newMockResortRepo(),
		lesson:         newMockLessonRepo(),
		orderSeat:      newMockOrderSeatRepo(),
		seatInvitation: newMockSeatInvitationRepo(),
		studentMapping: newMockStudentMappingRepo(),
		identityForm:   newMockIdentityFormRepo(),
		analysis:       newMockAnalysisRepo(),
		recordShare:    newMockRecordShareRepo(),
		auditLog:       newMockAuditLogRepo(),
	}
	repo := &repository.Repository{
		User:           m.user,
		Resort:         m.resort,
		Lesson:         m.lesson,
		OrderSeat:      m.orderSeat,
		SeatInvitation: m.seatInvitation,
		StudentMapping: m.studentMapping,
		IdentityForm:   m.identityForm,
		Analysis:       m.analysis,
		RecordShare:    m.recordShare,
		AuditLog:       m.auditLog,
	}
	return repo, m
}

// nopAudit 同步空实现，测试中避免异步审计写入带来的竞态
type nopAudit struct{}

func (nopAudit) Log(string, string, string, string, map[string]interface{}) {}
