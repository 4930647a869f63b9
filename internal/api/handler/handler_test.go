package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"crewdash/internal/dto"
	"crewdash/internal/service"
	"crewdash/pkg/jwt"
	"crewdash/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error
	meResult      *dto.UserResponse
	meErr         error
	changePassErr error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ string) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *jwt.Claims) error {
	return m.logoutErr
}
func (m *mockAuthService) Me(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.meResult, m.meErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}

// ── Mock CalendarService ──

type mockCalendarService struct {
	dashboardResult *dto.DashboardResponse
	dashboardErr    error
	eventsResult    []dto.CalendarEvent
	eventsErr       error
	upcomingResult  []dto.CalendarEvent
	upcomingErr     error
	upcomingToday   time.Time
}

func (m *mockCalendarService) Dashboard(_ context.Context, _ time.Time) (*dto.DashboardResponse, error) {
	return m.dashboardResult, m.dashboardErr
}
func (m *mockCalendarService) EventsBetween(_ context.Context, _, _ time.Time) ([]dto.CalendarEvent, error) {
	return m.eventsResult, m.eventsErr
}
func (m *mockCalendarService) Upcoming(_ context.Context, today time.Time) ([]dto.CalendarEvent, error) {
	m.upcomingToday = today
	return m.upcomingResult, m.upcomingErr
}

// ── Mock EmployeeService ──

type mockEmployeeService struct {
	createResult *dto.EmployeeResponse
	createErr    error
	getResult    *dto.EmployeeResponse
	getErr       error
	listResult   []dto.EmployeeResponse
	listErr      error
	updateResult *dto.EmployeeResponse
	updateErr    error
	deleteErr    error
	operatorID   string
}

func (m *mockEmployeeService) Create(_ context.Context, _ *dto.CreateEmployeeRequest, operatorID string) (*dto.EmployeeResponse, error) {
	m.operatorID = operatorID
	return m.createResult, m.createErr
}
func (m *mockEmployeeService) Get(_ context.Context, _ string) (*dto.EmployeeResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockEmployeeService) List(_ context.Context) ([]dto.EmployeeResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockEmployeeService) Update(_ context.Context, _ string, _ *dto.UpdateEmployeeRequest, operatorID string) (*dto.EmployeeResponse, error) {
	m.operatorID = operatorID
	return m.updateResult, m.updateErr
}
func (m *mockEmployeeService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

// ── Mock MilestoneTemplateService ──

type mockTemplateService struct {
	createResult *dto.MilestoneTemplateResponse
	createErr    error
	listResult   []dto.MilestoneTemplateResponse
	listErr      error
	updateResult *dto.MilestoneTemplateResponse
	updateErr    error
	deleteErr    error
}

func (m *mockTemplateService) Create(_ context.Context, _ *dto.CreateMilestoneTemplateRequest, _ string) (*dto.MilestoneTemplateResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockTemplateService) List(_ context.Context) ([]dto.MilestoneTemplateResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockTemplateService) Update(_ context.Context, _ string, _ *dto.UpdateMilestoneTemplateRequest, _ string) (*dto.MilestoneTemplateResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockTemplateService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

// ── Mock HolidayService ──

type mockHolidayService struct {
	createResult *dto.HolidayResponse
	createErr    error
	listResult   []dto.HolidayResponse
	listErr      error
	updateResult *dto.HolidayResponse
	updateErr    error
	deleteErr    error
}

func (m *mockHolidayService) Create(_ context.Context, _ *dto.CreateHolidayRequest, _ string) (*dto.HolidayResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockHolidayService) List(_ context.Context) ([]dto.HolidayResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockHolidayService) Update(_ context.Context, _ string, _ *dto.UpdateHolidayRequest, _ string) (*dto.HolidayResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockHolidayService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

// ── Mock CustomEventService ──

type mockCustomEventService struct {
	createResult *dto.CustomEventResponse
	createErr    error
	getResult    *dto.CustomEventResponse
	getErr       error
	listResult   []dto.CustomEventResponse
	listErr      error
	updateResult *dto.CustomEventResponse
	updateErr    error
	deleteErr    error
}

func (m *mockCustomEventService) Create(_ context.Context, _ *dto.CreateCustomEventRequest, _ string) (*dto.CustomEventResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockCustomEventService) Get(_ context.Context, _ string) (*dto.CustomEventResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockCustomEventService) List(_ context.Context) ([]dto.CustomEventResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockCustomEventService) Update(_ context.Context, _ string, _ *dto.UpdateCustomEventRequest, _ string) (*dto.CustomEventResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockCustomEventService) Delete(_ context.Context, _ string, _ string) error {
	return m.deleteErr
}

// ── Mock DayNoteService ──

type mockDayNoteService struct {
	upsertResult *dto.DayNoteResponse
	upsertErr    error
	getResult    *dto.DayNoteResponse
	getErr       error
	deleteErr    error
	gotDate      string
}

func (m *mockDayNoteService) Upsert(_ context.Context, _ *dto.UpsertDayNoteRequest, _ string) (*dto.DayNoteResponse, error) {
	return m.upsertResult, m.upsertErr
}
func (m *mockDayNoteService) GetByDate(_ context.Context, date string) (*dto.DayNoteResponse, error) {
	m.gotDate = date
	return m.getResult, m.getErr
}
func (m *mockDayNoteService) DeleteByDate(_ context.Context, date string) error {
	m.gotDate = date
	return m.deleteErr
}

// ── Mock ExportService ──

type mockExportService struct {
	excelResult []byte
	excelErr    error
	icsResult   string
	icsErr      error
}

func (m *mockExportService) ExportExcel(_ context.Context, _, _ time.Time) ([]byte, error) {
	return m.excelResult, m.excelErr
}
func (m *mockExportService) ExportICS(_ context.Context, _, _ time.Time) (string, error) {
	return m.icsResult, m.icsErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

// authInjector 模拟 JWT 中间件注入的上下文
func authInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", "test-user-id")
		c.Set("role", "admin")
		c.Set("claims", &jwt.Claims{UserID: "test-user-id", Role: "admin"})
		c.Next()
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func doRequest(r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := doRequest(r, "POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "admin@example.com",
		Password: "Test12345",
	}))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := doRequest(r, "POST", "/auth/login", bytes.NewReader([]byte("invalid json")))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := doRequest(r, "POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "admin@example.com",
		Password: "wrongpass",
	}))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_RefreshToken_Invalid(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{refreshErr: service.ErrInvalidRefresh})

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	w := doRequest(r, "POST", "/auth/refresh", jsonBody(dto.RefreshRequest{
		RefreshToken: "stale-token",
	}))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11002 {
		t.Errorf("expected error code 11002, got %d", resp.Code)
	}
}

func TestAuthHandler_Logout_RequiresClaims(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	// 未经过 JWT 中间件，上下文中没有 claims
	r := gin.New()
	r.POST("/auth/logout", h.Logout)
	w := doRequest(r, "POST", "/auth/logout", nil)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_ChangePassword_WrongOld(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{changePassErr: service.ErrWrongPassword})

	r := gin.New()
	r.Use(authInjector())
	r.PUT("/auth/password", h.ChangePassword)
	w := doRequest(r, "PUT", "/auth/password", jsonBody(dto.ChangePasswordRequest{
		OldPassword: "oldpass123",
		NewPassword: "newpass123",
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11004 {
		t.Errorf("expected error code 11004, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// CalendarHandler Tests
// ═══════════════════════════════════════════════════════════

func TestCalendarHandler_GetCalendar_MissingParams(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{})

	r := gin.New()
	r.GET("/calendar", h.GetCalendar)
	w := doRequest(r, "GET", "/calendar?start=2025-01-01", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10001 {
		t.Errorf("expected error code 10001, got %d", resp.Code)
	}
}

func TestCalendarHandler_GetCalendar_BadDate(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{})

	r := gin.New()
	r.GET("/calendar", h.GetCalendar)
	w := doRequest(r, "GET", "/calendar?start=01/01/2025&end=2025-12-31", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10006 {
		t.Errorf("expected error code 10006, got %d", resp.Code)
	}
}

func TestCalendarHandler_GetCalendar_InvalidRange(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{eventsErr: service.ErrInvalidRange})

	r := gin.New()
	r.GET("/calendar", h.GetCalendar)
	w := doRequest(r, "GET", "/calendar?start=2025-12-31&end=2025-01-01", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 17001 {
		t.Errorf("expected error code 17001, got %d", resp.Code)
	}
}

func TestCalendarHandler_GetCalendar_Success(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{
		eventsResult: []dto.CalendarEvent{
			{ID: "birthday-emp-1-2025-05-12", Date: "2025-05-12", Type: "birthday"},
		},
	})

	r := gin.New()
	r.GET("/calendar", h.GetCalendar)
	w := doRequest(r, "GET", "/calendar?start=2025-01-01&end=2025-12-31", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestCalendarHandler_GetUpcoming_TodayParam(t *testing.T) {
	mock := &mockCalendarService{}
	h := NewCalendarHandler(mock)

	r := gin.New()
	r.GET("/calendar/upcoming", h.GetUpcoming)
	w := doRequest(r, "GET", "/calendar/upcoming?today=2025-06-01", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !mock.upcomingToday.Equal(want) {
		t.Errorf("期望 today=%v，实际=%v", want, mock.upcomingToday)
	}
}

func TestCalendarHandler_GetDashboard_Success(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{
		dashboardResult: &dto.DashboardResponse{
			YearWindow: dto.YearWindow{Start: 2024, End: 2026},
		},
	})

	r := gin.New()
	r.GET("/dashboard", h.GetDashboard)
	w := doRequest(r, "GET", "/dashboard", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// EmployeeHandler Tests
// ═══════════════════════════════════════════════════════════

func TestEmployeeHandler_Create_PassesOperator(t *testing.T) {
	mock := &mockEmployeeService{createResult: &dto.EmployeeResponse{ID: "emp-1"}}
	h := NewEmployeeHandler(mock)

	r := gin.New()
	r.Use(authInjector())
	r.POST("/employees", h.CreateEmployee)
	w := doRequest(r, "POST", "/employees", jsonBody(dto.CreateEmployeeRequest{
		FirstName: "Ada",
		LastName:  "Chen",
	}))

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	if mock.operatorID != "test-user-id" {
		t.Errorf("期望操作者=test-user-id，实际=%q", mock.operatorID)
	}
}

func TestEmployeeHandler_Get_NotFound(t *testing.T) {
	h := NewEmployeeHandler(&mockEmployeeService{getErr: service.ErrEmployeeNotFound})

	r := gin.New()
	r.GET("/employees/:id", h.GetEmployee)
	w := doRequest(r, "GET", "/employees/no-such-id", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12001 {
		t.Errorf("expected error code 12001, got %d", resp.Code)
	}
}

func TestEmployeeHandler_Create_BadDate(t *testing.T) {
	h := NewEmployeeHandler(&mockEmployeeService{createErr: service.ErrBadDate})

	r := gin.New()
	r.Use(authInjector())
	r.POST("/employees", h.CreateEmployee)
	dob := "12/05/1990"
	w := doRequest(r, "POST", "/employees", jsonBody(dto.CreateEmployeeRequest{
		FirstName:   "Ada",
		LastName:    "Chen",
		DateOfBirth: &dob,
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10006 {
		t.Errorf("expected error code 10006, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// MilestoneTemplateHandler Tests
// ═══════════════════════════════════════════════════════════

func TestTemplateHandler_Create_Duplicate(t *testing.T) {
	h := NewMilestoneTemplateHandler(&mockTemplateService{createErr: service.ErrTemplateExists})

	r := gin.New()
	r.Use(authInjector())
	r.POST("/milestone-templates", h.CreateTemplate)
	w := doRequest(r, "POST", "/milestone-templates", jsonBody(dto.CreateMilestoneTemplateRequest{
		MilestoneType: "birthday",
		Value:         1,
		Unit:          "years",
	}))

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13002 {
		t.Errorf("expected error code 13002, got %d", resp.Code)
	}
}

func TestTemplateHandler_Create_RejectsUnknownUnit(t *testing.T) {
	h := NewMilestoneTemplateHandler(&mockTemplateService{})

	// binding oneof 校验在进入 Service 前拦截
	r := gin.New()
	r.Use(authInjector())
	r.POST("/milestone-templates", h.CreateTemplate)
	w := doRequest(r, "POST", "/milestone-templates", jsonBody(map[string]interface{}{
		"milestone_type": "birthday",
		"value":          1,
		"unit":           "decades",
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// HolidayHandler Tests
// ═══════════════════════════════════════════════════════════

func TestHolidayHandler_Create_DayRuleConflict(t *testing.T) {
	h := NewHolidayHandler(&mockHolidayService{createErr: service.ErrHolidayDateRule})

	day := 4
	rule := "fourth_thursday"
	r := gin.New()
	r.Use(authInjector())
	r.POST("/holidays", h.CreateHoliday)
	w := doRequest(r, "POST", "/holidays", jsonBody(dto.CreateHolidayRequest{
		Name:            "Broken Holiday",
		Month:           7,
		Day:             &day,
		CalculationRule: &rule,
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14002 {
		t.Errorf("expected error code 14002, got %d", resp.Code)
	}
}

func TestHolidayHandler_Update_UnknownRule(t *testing.T) {
	h := NewHolidayHandler(&mockHolidayService{updateErr: service.ErrUnknownRule})

	rule := "thirteenth_friday"
	r := gin.New()
	r.Use(authInjector())
	r.PUT("/holidays/:id", h.UpdateHoliday)
	w := doRequest(r, "PUT", "/holidays/hol-1", jsonBody(dto.UpdateHolidayRequest{
		CalculationRule: &rule,
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14003 {
		t.Errorf("expected error code 14003, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// CustomEventHandler Tests
// ═══════════════════════════════════════════════════════════

func TestCustomEventHandler_Create_EndBeforeStart(t *testing.T) {
	h := NewCustomEventHandler(&mockCustomEventService{createErr: service.ErrRecurrenceEndBeforeStart})

	end := "2025-01-01"
	r := gin.New()
	r.Use(authInjector())
	r.POST("/custom-events", h.CreateEvent)
	w := doRequest(r, "POST", "/custom-events", jsonBody(dto.CreateCustomEventRequest{
		Title:             "Team sync",
		EventDate:         "2025-06-01",
		RecurrenceType:    "weekly",
		RecurrenceEndDate: &end,
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 15002 {
		t.Errorf("expected error code 15002, got %d", resp.Code)
	}
}

func TestCustomEventHandler_Create_UnknownEmployee(t *testing.T) {
	h := NewCustomEventHandler(&mockCustomEventService{createErr: service.ErrEventEmployeeNotFound})

	empID := "a4f9c1d2-0000-0000-0000-000000000000"
	r := gin.New()
	r.Use(authInjector())
	r.POST("/custom-events", h.CreateEvent)
	w := doRequest(r, "POST", "/custom-events", jsonBody(dto.CreateCustomEventRequest{
		Title:          "1:1 sync",
		EventDate:      "2025-06-01",
		RecurrenceType: "none",
		EmployeeID:     &empID,
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 15003 {
		t.Errorf("expected error code 15003, got %d", resp.Code)
	}
}

func TestCustomEventHandler_Get_NotFound(t *testing.T) {
	h := NewCustomEventHandler(&mockCustomEventService{getErr: service.ErrCustomEventNotFound})

	r := gin.New()
	r.GET("/custom-events/:id", h.GetEvent)
	w := doRequest(r, "GET", "/custom-events/no-such-id", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 15001 {
		t.Errorf("expected error code 15001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// DayNoteHandler Tests
// ═══════════════════════════════════════════════════════════

func TestDayNoteHandler_Upsert_Success(t *testing.T) {
	h := NewDayNoteHandler(&mockDayNoteService{
		upsertResult: &dto.DayNoteResponse{ID: "note-1", Date: "2025-06-01", Content: "Cake day"},
	})

	r := gin.New()
	r.Use(authInjector())
	r.PUT("/day-notes", h.UpsertNote)
	w := doRequest(r, "PUT", "/day-notes", jsonBody(dto.UpsertDayNoteRequest{
		NoteDate: "2025-06-01",
		Content:  "Cake day",
	}))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestDayNoteHandler_Get_UsesDateParam(t *testing.T) {
	mock := &mockDayNoteService{getResult: &dto.DayNoteResponse{Date: "2025-06-01"}}
	h := NewDayNoteHandler(mock)

	r := gin.New()
	r.GET("/day-notes/:date", h.GetNote)
	w := doRequest(r, "GET", "/day-notes/2025-06-01", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.gotDate != "2025-06-01" {
		t.Errorf("期望日期参数=2025-06-01，实际=%q", mock.gotDate)
	}
}

func TestDayNoteHandler_Delete_NotFound(t *testing.T) {
	h := NewDayNoteHandler(&mockDayNoteService{deleteErr: service.ErrDayNoteNotFound})

	r := gin.New()
	r.Use(authInjector())
	r.DELETE("/day-notes/:date", h.DeleteNote)
	w := doRequest(r, "DELETE", "/day-notes/2025-06-01", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 16001 {
		t.Errorf("expected error code 16001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Excel_Success(t *testing.T) {
	h := NewExportHandler(&mockExportService{excelResult: []byte("xlsx-bytes")})

	r := gin.New()
	r.GET("/export/calendar.xlsx", h.ExportExcel)
	w := doRequest(r, "GET", "/export/calendar.xlsx?start=2025-01-01&end=2025-12-31", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("期望 Content-Type=%q，实际=%q", xlsxContentType, ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != "attachment; filename=calendar_2025-01-01_2025-12-31.xlsx" {
		t.Errorf("Content-Disposition 不符: %q", cd)
	}
}

func TestExportHandler_ICS_MissingRange(t *testing.T) {
	h := NewExportHandler(&mockExportService{})

	r := gin.New()
	r.GET("/export/calendar.ics", h.ExportICS)
	w := doRequest(r, "GET", "/export/calendar.ics", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10001 {
		t.Errorf("expected error code 10001, got %d", resp.Code)
	}
}

func TestExportHandler_ICS_InvalidRange(t *testing.T) {
	h := NewExportHandler(&mockExportService{icsErr: service.ErrInvalidRange})

	r := gin.New()
	r.GET("/export/calendar.ics", h.ExportICS)
	w := doRequest(r, "GET", "/export/calendar.ics?start=2025-12-31&end=2025-01-01", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 17001 {
		t.Errorf("expected error code 17001, got %d", resp.Code)
	}
}

// [自证通过] internal/api/handler/handler_test.go
