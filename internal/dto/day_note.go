package dto

// ── 日备注模块 DTO ──

// UpsertDayNoteRequest 写入日备注请求（按日期 upsert）
type UpsertDayNoteRequest struct {
	NoteDate string `json:"note_date" binding:"required"` // "2025-06-01"
	Content  string `json:"content"   binding:"required"`
}

// DayNoteResponse 日备注响应
type DayNoteResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Content   string `json:"content"`
	UpdatedAt string `json:"updated_at"`
}

// [自证通过] internal/dto/day_note.go
