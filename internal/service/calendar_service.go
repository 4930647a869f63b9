package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"crewdash/internal/dto"
	"crewdash/internal/model"
	"crewdash/internal/repository"
)

var (
	ErrInvalidRange = errors.New("结束日期不能早于开始日期")
)

// 单次生成的区间上限，防止恶意超长区间拖垮逐日扫描
const maxRangeDays = 5 * 366

// CalendarService 日历生成服务
// 负责加载数据快照、调用生成引擎、管理 Redis 结果缓存
type CalendarService struct {
	repo     *repository.Repository
	cache    CalendarCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(repo *repository.Repository, cache CalendarCache, cacheTTL time.Duration, logger *zap.Logger) *CalendarService {
	return &CalendarService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// EventsBetween 生成 [start, end]（含两端）的全部日历事件
// 缓存命中直接返回；缓存读写失败不阻断请求，降级为直接生成
func (s *CalendarService) EventsBetween(ctx context.Context, start, end time.Time) ([]dto.CalendarEvent, error) {
	start = model.DateOnly(start)
	end = model.DateOnly(end)
	if end.Before(start) {
		return nil, ErrInvalidRange
	}
	if model.DaysBetween(start, end) > maxRangeDays {
		return nil, fmt.Errorf("%w: 区间最长 %d 天", ErrInvalidRange, maxRangeDays)
	}

	rangeKey := start.Format(dateLayout) + ":" + end.Format(dateLayout)

	// Redis 不可用（cache 为 nil）或读取出错时跳过缓存，直接生成
	var version int64
	cacheUsable := false
	if s.cache != nil {
		v, verErr := s.cache.CalendarVersion(ctx)
		if verErr != nil {
			s.logger.Warn("读取日历缓存版本失败，跳过缓存", zap.Error(verErr))
		} else {
			version = v
			cacheUsable = true
			if payload, ok, cacheErr := s.cache.GetCalendarCache(ctx, version, rangeKey); cacheErr != nil {
				s.logger.Warn("读取日历缓存失败", zap.Error(cacheErr))
			} else if ok {
				var cached []dto.CalendarEvent
				if unmarshalErr := json.Unmarshal([]byte(payload), &cached); unmarshalErr == nil {
					return cached, nil
				}
				s.logger.Warn("日历缓存内容损坏，重新生成", zap.String("range", rangeKey))
			}
		}
	}

	snapshot, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	events, err := generateCalendarEvents(snapshot, start, end)
	if err != nil {
		return nil, fmt.Errorf("生成日历事件失败: %w", err)
	}

	if cacheUsable {
		if payload, marshalErr := json.Marshal(events); marshalErr == nil {
			if cacheErr := s.cache.SetCalendarCache(ctx, version, rangeKey, string(payload), s.cacheTTL); cacheErr != nil {
				s.logger.Warn("写入日历缓存失败", zap.Error(cacheErr))
			}
		}
	}

	return events, nil
}

// Upcoming 近期事件：today 起 10 天内的全部事件，否则最近 3 个未来事件
func (s *CalendarService) Upcoming(ctx context.Context, today time.Time) ([]dto.CalendarEvent, error) {
	start, end := dashboardWindow(today)
	events, err := s.EventsBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return upcomingEvents(events, today), nil
}

// Dashboard 组装看板响应：三年窗口事件 + 近期事件 + 日备注 + 员工选择器
func (s *CalendarService) Dashboard(ctx context.Context, today time.Time) (*dto.DashboardResponse, error) {
	today = model.DateOnly(today)
	start, end := dashboardWindow(today)

	events, err := s.EventsBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	notes, err := s.repo.DayNote.ListBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("查询日备注失败: %w", err)
	}
	noteMap := make(map[string]dto.DayNoteResponse, len(notes))
	for i := range notes {
		note := &notes[i]
		dateKey := model.DateOnly(note.NoteDate).Format(dateLayout)
		noteMap[dateKey] = dto.DayNoteResponse{
			ID:        note.NoteID,
			Date:      dateKey,
			Content:   note.Content,
			UpdatedAt: note.UpdatedAt.UTC().Format(time.RFC3339),
		}
	}

	employees, err := s.repo.Employee.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询员工列表失败: %w", err)
	}
	picker := make([]dto.EmployeePickerItem, 0, len(employees))
	for i := range employees {
		picker = append(picker, dto.EmployeePickerItem{
			ID:   employees[i].EmployeeID,
			Name: employees[i].PickerName(),
		})
	}

	return &dto.DashboardResponse{
		CalendarEvents: events,
		UpcomingEvents: upcomingEvents(events, today),
		DayNotes:       noteMap,
		Employees:      picker,
		YearWindow: dto.YearWindow{
			Start: start.Year(),
			End:   end.Year(),
		},
	}, nil
}

// dashboardWindow 看板窗口：去年 1 月 1 日 至 明年 12 月 31 日
func dashboardWindow(today time.Time) (time.Time, time.Time) {
	year := today.Year()
	start := time.Date(year-1, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year+1, time.December, 31, 0, 0, 0, 0, time.UTC)
	return start, end
}

// loadSnapshot 一次性加载生成引擎所需的全部数据
func (s *CalendarService) loadSnapshot(ctx context.Context) (*calendarSnapshot, error) {
	employees, err := s.repo.Employee.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询员工列表失败: %w", err)
	}

	birthdayTemplates, err := s.repo.MilestoneTemplate.ListActiveByType(ctx, model.MilestoneBirthday)
	if err != nil {
		return nil, fmt.Errorf("查询生日模板失败: %w", err)
	}

	hiringTemplates, err := s.repo.MilestoneTemplate.ListActiveByType(ctx, model.MilestoneHiringAnniversary)
	if err != nil {
		return nil, fmt.Errorf("查询入职周年模板失败: %w", err)
	}

	holidays, err := s.repo.Holiday.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询假日列表失败: %w", err)
	}

	customEvents, err := s.repo.CustomEvent.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询自定义事件失败: %w", err)
	}

	return &calendarSnapshot{
		Employees:         employees,
		BirthdayTemplates: birthdayTemplates,
		HiringTemplates:   hiringTemplates,
		Holidays:          holidays,
		CustomEvents:      customEvents,
	}, nil
}

// [自证通过] internal/service/calendar_service.go
