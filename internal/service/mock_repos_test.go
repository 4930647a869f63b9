package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"crewdash/internal/model"
)

// ══════════════════════════════════════════════════════════════
// 内存版 Repository / 缓存实现（测试专用）
// ══════════════════════════════════════════════════════════════

// ── 员工 ──

type mockEmployeeRepo struct {
	employees []model.Employee
	nextID    int
}

func (m *mockEmployeeRepo) Create(_ context.Context, employee *model.Employee) error {
	if employee.EmployeeID == "" {
		m.nextID++
		employee.EmployeeID = fmt.Sprintf("emp-%d", m.nextID)
	}
	m.employees = append(m.employees, *employee)
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id string) (*model.Employee, error) {
	for i := range m.employees {
		if m.employees[i].EmployeeID == id {
			employee := m.employees[i]
			return &employee, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) List(_ context.Context) ([]model.Employee, error) {
	out := make([]model.Employee, len(m.employees))
	copy(out, m.employees)
	return out, nil
}

func (m *mockEmployeeRepo) Update(_ context.Context, employee *model.Employee) error {
	for i := range m.employees {
		if m.employees[i].EmployeeID == employee.EmployeeID {
			m.employees[i] = *employee
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) Delete(_ context.Context, id string) error {
	for i := range m.employees {
		if m.employees[i].EmployeeID == id {
			m.employees = append(m.employees[:i], m.employees[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── 里程碑模板 ──

type mockMilestoneTemplateRepo struct {
	templates []model.MilestoneTemplate
	nextID    int
}

func (m *mockMilestoneTemplateRepo) Create(_ context.Context, template *model.MilestoneTemplate) error {
	if template.TemplateID == "" {
		m.nextID++
		template.TemplateID = fmt.Sprintf("tpl-%d", m.nextID)
	}
	m.templates = append(m.templates, *template)
	return nil
}

func (m *mockMilestoneTemplateRepo) GetByID(_ context.Context, id string) (*model.MilestoneTemplate, error) {
	for i := range m.templates {
		if m.templates[i].TemplateID == id {
			template := m.templates[i]
			return &template, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMilestoneTemplateRepo) List(_ context.Context) ([]model.MilestoneTemplate, error) {
	out := make([]model.MilestoneTemplate, len(m.templates))
	copy(out, m.templates)
	return out, nil
}

func (m *mockMilestoneTemplateRepo) ListActiveByType(_ context.Context, milestoneType string) ([]model.MilestoneTemplate, error) {
	var out []model.MilestoneTemplate
	for i := range m.templates {
		if m.templates[i].MilestoneType == milestoneType && m.templates[i].IsActive {
			out = append(out, m.templates[i])
		}
	}
	return out, nil
}

func (m *mockMilestoneTemplateRepo) Exists(_ context.Context, milestoneType string, value int, unit string, excludeID string) (bool, error) {
	for i := range m.templates {
		t := &m.templates[i]
		if t.TemplateID == excludeID {
			continue
		}
		if t.MilestoneType == milestoneType && t.Value == value && t.Unit == unit {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockMilestoneTemplateRepo) MaxSortOrder(_ context.Context, milestoneType string) (int, error) {
	maxSort := 0
	for i := range m.templates {
		if m.templates[i].MilestoneType == milestoneType && m.templates[i].SortOrder > maxSort {
			maxSort = m.templates[i].SortOrder
		}
	}
	return maxSort, nil
}

func (m *mockMilestoneTemplateRepo) Update(_ context.Context, template *model.MilestoneTemplate) error {
	for i := range m.templates {
		if m.templates[i].TemplateID == template.TemplateID {
			m.templates[i] = *template
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockMilestoneTemplateRepo) Delete(_ context.Context, id string) error {
	for i := range m.templates {
		if m.templates[i].TemplateID == id {
			m.templates = append(m.templates[:i], m.templates[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── 假日 ──

type mockHolidayRepo struct {
	holidays []model.Holiday
	nextID   int
}

func (m *mockHolidayRepo) Create(_ context.Context, holiday *model.Holiday) error {
	if holiday.HolidayID == "" {
		m.nextID++
		holiday.HolidayID = fmt.Sprintf("hol-%d", m.nextID)
	}
	m.holidays = append(m.holidays, *holiday)
	return nil
}

func (m *mockHolidayRepo) GetByID(_ context.Context, id string) (*model.Holiday, error) {
	for i := range m.holidays {
		if m.holidays[i].HolidayID == id {
			holiday := m.holidays[i]
			return &holiday, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHolidayRepo) List(_ context.Context) ([]model.Holiday, error) {
	out := make([]model.Holiday, len(m.holidays))
	copy(out, m.holidays)
	return out, nil
}

func (m *mockHolidayRepo) ListActive(_ context.Context) ([]model.Holiday, error) {
	var out []model.Holiday
	for i := range m.holidays {
		if m.holidays[i].IsActive {
			out = append(out, m.holidays[i])
		}
	}
	return out, nil
}

func (m *mockHolidayRepo) Update(_ context.Context, holiday *model.Holiday) error {
	for i := range m.holidays {
		if m.holidays[i].HolidayID == holiday.HolidayID {
			m.holidays[i] = *holiday
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockHolidayRepo) Delete(_ context.Context, id string) error {
	for i := range m.holidays {
		if m.holidays[i].HolidayID == id {
			m.holidays = append(m.holidays[:i], m.holidays[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── 自定义事件 ──

type mockCustomEventRepo struct {
	events []model.CustomEvent
	nextID int
}

func (m *mockCustomEventRepo) Create(_ context.Context, event *model.CustomEvent) error {
	if event.EventID == "" {
		m.nextID++
		event.EventID = fmt.Sprintf("evt-%d", m.nextID)
	}
	m.events = append(m.events, *event)
	return nil
}

func (m *mockCustomEventRepo) GetByID(_ context.Context, id string) (*model.CustomEvent, error) {
	for i := range m.events {
		if m.events[i].EventID == id {
			event := m.events[i]
			return &event, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCustomEventRepo) List(_ context.Context) ([]model.CustomEvent, error) {
	out := make([]model.CustomEvent, len(m.events))
	copy(out, m.events)
	return out, nil
}

func (m *mockCustomEventRepo) Update(_ context.Context, event *model.CustomEvent) error {
	for i := range m.events {
		if m.events[i].EventID == event.EventID {
			m.events[i] = *event
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockCustomEventRepo) Delete(_ context.Context, id string, _ string) error {
	for i := range m.events {
		if m.events[i].EventID == id {
			m.events = append(m.events[:i], m.events[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── 日备注 ──

type mockDayNoteRepo struct {
	notes  map[string]model.DayNote // key: "2006-01-02"
	nextID int
}

func newMockDayNoteRepo() *mockDayNoteRepo {
	return &mockDayNoteRepo{notes: make(map[string]model.DayNote)}
}

func (m *mockDayNoteRepo) Upsert(_ context.Context, note *model.DayNote) error {
	key := note.NoteDate.Format("2006-01-02")
	if existing, ok := m.notes[key]; ok {
		existing.Content = note.Content
		existing.UpdatedBy = note.UpdatedBy
		existing.UpdatedAt = time.Now()
		m.notes[key] = existing
		return nil
	}
	m.nextID++
	note.NoteID = fmt.Sprintf("note-%d", m.nextID)
	m.notes[key] = *note
	return nil
}

func (m *mockDayNoteRepo) GetByDate(_ context.Context, date time.Time) (*model.DayNote, error) {
	if note, ok := m.notes[date.Format("2006-01-02")]; ok {
		return &note, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDayNoteRepo) ListBetween(_ context.Context, start, end time.Time) ([]model.DayNote, error) {
	var out []model.DayNote
	for key, note := range m.notes {
		if key >= start.Format("2006-01-02") && key <= end.Format("2006-01-02") {
			out = append(out, note)
		}
	}
	return out, nil
}

func (m *mockDayNoteRepo) DeleteByDate(_ context.Context, date time.Time) error {
	key := date.Format("2006-01-02")
	if _, ok := m.notes[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.notes, key)
	return nil
}

// ── 用户 ──

type mockUserRepo struct {
	users []model.User
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.users = append(m.users, *user)
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	for i := range m.users {
		if m.users[i].UserID == id {
			user := m.users[i]
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for i := range m.users {
		if m.users[i].Email == email {
			user := m.users[i]
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	for i := range m.users {
		if m.users[i].UserID == user.UserID {
			m.users[i] = *user
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── 缓存（同时实现 CalendarCache 与 TokenStore）──

type fakeCache struct {
	mu        sync.Mutex
	version   int64
	store     map[string]string
	blacklist map[string]bool
	bumpCount int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		store:     make(map[string]string),
		blacklist: make(map[string]bool),
	}
}

func (f *fakeCache) CalendarVersion(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.version, nil
}

func (f *fakeCache) BumpCalendarVersion(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.version++
	f.bumpCount++
	return nil
}

func (f *fakeCache) GetCalendarCache(_ context.Context, version int64, rangeKey string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	payload, ok := f.store[fmt.Sprintf("%d:%s", version, rangeKey)]
	return payload, ok, nil
}

func (f *fakeCache) SetCalendarCache(_ context.Context, version int64, rangeKey, payload string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store[fmt.Sprintf("%d:%s", version, rangeKey)] = payload
	return nil
}

func (f *fakeCache) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ttl > 0 {
		f.blacklist[jti] = true
	}
	return nil
}

func (f *fakeCache) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.blacklist[jti], nil
}

// ── 共用构造辅助 ──

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func boolPtr(b bool) *bool    { return &b }

func datePtr(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func mustDate(s string) time.Time { return *datePtr(s) }

// [自证通过] internal/service/mock_repos_test.go
