package dto

// ── 日历生成模块 DTO ──

// 生成事件类型
const (
	EventTypeBirthday    = "birthday"
	EventTypeAnniversary = "anniversary"
	EventTypeHoliday     = "holiday"
	EventTypeCustom      = "custom"
)

// CalendarEvent 生成的日历事件（值对象，不落库）
// id 由来源实体 + 日期拼接，可重复生成且稳定；
// 公共投影为 id/date/name/type/color(/employee_id)，
// 其余字段按 type 透传
type CalendarEvent struct {
	ID         string  `json:"id"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Date       string  `json:"date"` // "2006-01-02"，零填充保证字典序即时间序
	Name       string  `json:"name"`
	Type       string  `json:"type"` // birthday | anniversary | holiday | custom
	Color      string  `json:"color"`

	// holiday 专属
	HolidayID *string `json:"holiday_id,omitempty"`

	// custom 专属透传
	CustomEventID      *string `json:"custom_event_id,omitempty"`
	Description        *string `json:"description,omitempty"`
	Notes              *string `json:"notes,omitempty"`
	EventTime          *string `json:"event_time,omitempty"`
	RecurrenceType     *string `json:"recurrence_type,omitempty"`
	RecurrenceInterval *int    `json:"recurrence_interval,omitempty"`
	RecurrenceEndDate  *string `json:"recurrence_end_date,omitempty"`
}

// CalendarRangeRequest 任意区间生成请求
type CalendarRangeRequest struct {
	Start string `form:"start" binding:"required"` // "2025-01-01"
	End   string `form:"end"   binding:"required"` // "2025-12-31"
}

// UpcomingRequest 近期事件请求（today 可选，默认取服务器当前日期）
type UpcomingRequest struct {
	Today string `form:"today"`
}

// YearWindow 看板年份窗口
type YearWindow struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// DashboardResponse 看板响应
type DashboardResponse struct {
	CalendarEvents []CalendarEvent            `json:"calendar_events"`
	UpcomingEvents []CalendarEvent            `json:"upcoming_events"`
	DayNotes       map[string]DayNoteResponse `json:"day_notes"`
	Employees      []EmployeePickerItem       `json:"employees"`
	YearWindow     YearWindow                 `json:"year_window"`
}

// [自证通过] internal/dto/calendar.go
