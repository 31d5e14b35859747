package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"punchclock/backend/internal/model"
	"punchclock/backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id 与 cpf 双索引
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.CPF
	}
	m.users[user.UserID] = user
	m.users["cpf:"+user.CPF] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByCPF(_ context.Context, cpf string) (*model.User, error) {
	if u, ok := m.users["cpf:"+cpf]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	m.users["cpf:"+user.CPF] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string, _ string) error {
	for key, u := range m.users {
		if u.UserID == id {
			delete(m.users, key)
		}
	}
	return nil
}

func (m *mockUserRepo) List(_ context.Context, status string, offset, limit int) ([]model.User, int64, error) {
	seen := make(map[string]bool)
	var all []model.User
	for _, u := range m.users {
		if seen[u.UserID] {
			continue
		}
		seen[u.UserID] = true
		if status != "" && u.Status != status {
			continue
		}
		all = append(all, *u)
	}
	total := int64(len(all))
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	if offset > len(all) {
		return nil, total, nil
	}
	return all[offset:end], total, nil
}

// ── Mock CompanyRepository ──

type mockCompanyRepo struct {
	companies map[string]*model.Company
}

func newMockCompanyRepo() *mockCompanyRepo {
	return &mockCompanyRepo{companies: make(map[string]*model.Company)}
}

func (m *mockCompanyRepo) Create(_ context.Context, company *model.Company) error {
	if company.CompanyID == "" {
		company.CompanyID = fmt.Sprintf("company-%d", len(m.companies)+1)
	}
	m.companies[company.CompanyID] = company
	return nil
}

func (m *mockCompanyRepo) GetByID(_ context.Context, id string) (*model.Company, error) {
	if c, ok := m.companies[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCompanyRepo) List(_ context.Context, onlyActive bool) ([]model.Company, error) {
	var result []model.Company
	for _, c := range m.companies {
		if onlyActive && !c.IsActive {
			continue
		}
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCompanyRepo) Update(_ context.Context, company *model.Company) error {
	m.companies[company.CompanyID] = company
	return nil
}

func (m *mockCompanyRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.companies, id)
	return nil
}

// ── Mock ClientRepository ──

type mockClientRepo struct {
	clients map[string]*model.Client
}

func newMockClientRepo() *mockClientRepo {
	return &mockClientRepo{clients: make(map[string]*model.Client)}
}

func (m *mockClientRepo) Create(_ context.Context, client *model.Client) error {
	if client.ClientID == "" {
		client.ClientID = fmt.Sprintf("client-%d", len(m.clients)+1)
	}
	m.clients[client.ClientID] = client
	return nil
}

func (m *mockClientRepo) GetByID(_ context.Context, id string) (*model.Client, error) {
	if c, ok := m.clients[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClientRepo) List(_ context.Context, onlyActive bool) ([]model.Client, error) {
	var result []model.Client
	for _, c := range m.clients {
		if onlyActive && !c.IsActive {
			continue
		}
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockClientRepo) Update(_ context.Context, client *model.Client) error {
	m.clients[client.ClientID] = client
	return nil
}

func (m *mockClientRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.clients, id)
	return nil
}

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	shifts map[string]*model.Shift
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{shifts: make(map[string]*model.Shift)}
}

func (m *mockShiftRepo) Create(_ context.Context, shift *model.Shift) error {
	if shift.ShiftID == "" {
		shift.ShiftID = fmt.Sprintf("shift-%d", len(m.shifts)+1)
	}
	m.shifts[shift.ShiftID] = shift
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id string) (*model.Shift, error) {
	if s, ok := m.shifts[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) ListByUser(_ context.Context, userID string) ([]model.Shift, error) {
	var result []model.Shift
	for _, s := range m.shifts {
		if s.UserID == userID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockShiftRepo) Delete(_ context.Context, id string) error {
	delete(m.shifts, id)
	return nil
}

// ── Mock ClientLinkRepository ──

type mockClientLinkRepo struct {
	links []model.ClientLink
}

func newMockClientLinkRepo() *mockClientLinkRepo {
	return &mockClientLinkRepo{}
}

func (m *mockClientLinkRepo) ListByUser(_ context.Context, userID string) ([]model.ClientLink, error) {
	var result []model.ClientLink
	for _, l := range m.links {
		if l.UserID == userID {
			result = append(result, l)
		}
	}
	return result, nil
}

func (m *mockClientLinkRepo) ListByClient(_ context.Context, clientID string) ([]model.ClientLink, error) {
	var result []model.ClientLink
	for _, l := range m.links {
		if l.ClientID == clientID {
			result = append(result, l)
		}
	}
	return result, nil
}

func (m *mockClientLinkRepo) ReplaceForUser(_ context.Context, userID string, links []model.ClientLink) ([]model.ClientLink, error) {
	var kept []model.ClientLink
	for _, l := range m.links {
		if l.UserID != userID {
			kept = append(kept, l)
		}
	}
	for i := range links {
		if links[i].LinkID == "" {
			links[i].LinkID = fmt.Sprintf("link-%d", len(kept)+i+1)
		}
	}
	m.links = append(kept, links...)
	return links, nil
}

// ── Mock TimeRecordRepository ──

// 切片保序：FindLatestByUser 取最后插入的记录，与 created_at DESC 一致
type mockTimeRecordRepo struct {
	records    []*model.TimeRecord
	punchLocks []string // AcquirePunchLock 的调用记录
}

func newMockTimeRecordRepo() *mockTimeRecordRepo {
	return &mockTimeRecordRepo{}
}

func (m *mockTimeRecordRepo) AcquirePunchLock(_ context.Context, userID string) error {
	m.punchLocks = append(m.punchLocks, userID)
	return nil
}

func (m *mockTimeRecordRepo) Create(_ context.Context, record *model.TimeRecord) error {
	if record.RecordID == "" {
		record.RecordID = fmt.Sprintf("record-%d", len(m.records)+1)
	}
	m.records = append(m.records, record)
	return nil
}

func (m *mockTimeRecordRepo) GetByID(_ context.Context, id string) (*model.TimeRecord, error) {
	for _, r := range m.records {
		if r.RecordID == id {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimeRecordRepo) Update(_ context.Context, record *model.TimeRecord) error {
	for i, r := range m.records {
		if r.RecordID == record.RecordID {
			m.records[i] = record
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockTimeRecordRepo) Delete(_ context.Context, id string) error {
	for i, r := range m.records {
		if r.RecordID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockTimeRecordRepo) List(_ context.Context, filter repository.TimeRecordFilter, offset, limit int) ([]model.TimeRecord, int64, error) {
	var all []model.TimeRecord
	for _, r := range m.records {
		if filter.UserID != "" && r.UserID != filter.UserID {
			continue
		}
		if filter.DateFrom != nil && r.ReferenceDate.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && r.ReferenceDate.After(*filter.DateTo) {
			continue
		}
		all = append(all, *r)
	}
	total := int64(len(all))
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	if offset > len(all) {
		return nil, total, nil
	}
	return all[offset:end], total, nil
}

func (m *mockTimeRecordRepo) ListByUserOnDate(_ context.Context, userID string, date time.Time) ([]model.TimeRecord, error) {
	var result []model.TimeRecord
	for _, r := range m.records {
		if r.UserID == userID && sameDate(r.ReferenceDate, date) {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockTimeRecordRepo) FindLatestByUser(_ context.Context, userID string) (*model.TimeRecord, error) {
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].UserID == userID {
			return m.records[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimeRecordRepo) FindLatestByUserLocked(ctx context.Context, userID string) (*model.TimeRecord, error) {
	return m.FindLatestByUser(ctx, userID)
}

func (m *mockTimeRecordRepo) FindByUserOnDate(_ context.Context, userID string, date time.Time) (*model.TimeRecord, error) {
	for i := len(m.records) - 1; i >= 0; i-- {
		r := m.records[i]
		if r.UserID == userID && sameDate(r.ReferenceDate, date) {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// ── Mock PauseRepository ──

type mockPauseRepo struct {
	pauses []*model.Pause
}

func newMockPauseRepo() *mockPauseRepo {
	return &mockPauseRepo{}
}

func (m *mockPauseRepo) Create(_ context.Context, pause *model.Pause) error {
	if pause.PauseID == "" {
		pause.PauseID = fmt.Sprintf("pause-%d", len(m.pauses)+1)
	}
	m.pauses = append(m.pauses, pause)
	return nil
}

func (m *mockPauseRepo) GetByID(_ context.Context, id string) (*model.Pause, error) {
	for _, p := range m.pauses {
		if p.PauseID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPauseRepo) Update(_ context.Context, pause *model.Pause) error {
	for i, p := range m.pauses {
		if p.PauseID == pause.PauseID {
			m.pauses[i] = pause
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockPauseRepo) FindOpenByRecord(_ context.Context, recordID string) (*model.Pause, error) {
	for _, p := range m.pauses {
		if p.RecordID == recordID && p.EndAt == nil {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPauseRepo) ListClosedByRecord(_ context.Context, recordID string) ([]model.Pause, error) {
	var result []model.Pause
	for _, p := range m.pauses {
		if p.RecordID == recordID && p.EndAt != nil {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockPauseRepo) ListByRecord(_ context.Context, recordID string) ([]model.Pause, error) {
	var result []model.Pause
	for _, p := range m.pauses {
		if p.RecordID == recordID {
			result = append(result, *p)
		}
	}
	return result, nil
}

// ── Mock SystemConfigRepository ──

type mockSystemConfigRepo struct {
	entries map[string]*model.SystemConfig
}

func newMockSystemConfigRepo() *mockSystemConfigRepo {
	return &mockSystemConfigRepo{entries: make(map[string]*model.SystemConfig)}
}

func (m *mockSystemConfigRepo) set(key, value string) {
	m.entries[key] = &model.SystemConfig{Key: key, Value: value}
}

func (m *mockSystemConfigRepo) List(_ context.Context) ([]model.SystemConfig, error) {
	var result []model.SystemConfig
	for _, e := range m.entries {
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockSystemConfigRepo) Get(_ context.Context, key string) (*model.SystemConfig, error) {
	if e, ok := m.entries[key]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSystemConfigRepo) Upsert(_ context.Context, entry *model.SystemConfig) error {
	m.entries[entry.Key] = entry
	return nil
}

// ── 测试用 Repository 聚合 ──

func newMockRepository() *repository.Repository {
	return &repository.Repository{
		User:         newMockUserRepo(),
		Company:      newMockCompanyRepo(),
		Client:       newMockClientRepo(),
		Shift:        newMockShiftRepo(),
		ClientLink:   newMockClientLinkRepo(),
		TimeRecord:   newMockTimeRecordRepo(),
		Pause:        newMockPauseRepo(),
		SystemConfig: newMockSystemConfigRepo(),
	}
}
