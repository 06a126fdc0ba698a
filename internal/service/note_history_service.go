// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/notevault/note-vault-service/internal/domain"
	"github.com/notevault/note-vault-service/internal/dto"
	"github.com/notevault/note-vault-service/pkg/code"
	"github.com/notevault/note-vault-service/pkg/logger"
	"github.com/notevault/note-vault-service/pkg/timex"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// NoteHistoryService defines the note history business service interface
// NoteHistoryService 定义笔记历史业务服务接口
type NoteHistoryService interface {
	// Get retrieves note history details for a specified ID
	// Get 获取指定 ID 的笔记历史详情
	Get(ctx context.Context, uid int64, id int64) (*dto.NoteHistoryDTO, error)

	// List retrieves history snapshots for a specified note, oldest first
	// List 获取指定笔记的历史快照，从旧到新
	List(ctx context.Context, uid int64, noteID int64) ([]*dto.NoteHistoryNoContentDTO, int64, error)

	// RestoreFromHistory writes a snapshot back to its note and removes the snapshot
	// RestoreFromHistory 将快照写回笔记并删除该快照
	RestoreFromHistory(ctx context.Context, uid int64, historyID int64) (*dto.NoteDTO, error)

	// Delete removes a single history snapshot
	// Delete 删除单条历史快照
	Delete(ctx context.Context, uid int64, id int64) error

	// CleanupByTime removes snapshots created before the cutoff time
	// CleanupByTime 清理截止时间之前创建的历史快照
	CleanupByTime(ctx context.Context, cutoffTime int64) (int64, error)
}

// noteHistoryService 实现 NoteHistoryService 接口
type noteHistoryService struct {
	historyRepo domain.NoteHistoryRepository // History repository // 历史记录仓库
	noteRepo    domain.NoteRepository        // Note repository // 笔记仓库
	sf          *singleflight.Group          // Singleflight group // 并发请求合并组
	logger      *zap.Logger                  // Logger // 日志对象
}

// NewNoteHistoryService creates NoteHistoryService instance
// NewNoteHistoryService 创建 NoteHistoryService 实例
func NewNoteHistoryService(historyRepo domain.NoteHistoryRepository, noteRepo domain.NoteRepository, l *zap.Logger) NoteHistoryService {
	return &noteHistoryService{
		historyRepo: historyRepo,
		noteRepo:    noteRepo,
		sf:          &singleflight.Group{},
		logger:      l,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *noteHistoryService) domainToDTO(history *domain.NoteHistory) *dto.NoteHistoryDTO {
	if history == nil {
		return nil
	}
	return &dto.NoteHistoryDTO{
		ID:         history.ID,
		NoteID:     history.NoteID,
		CategoryID: history.CategoryID,
		Title:      history.Title,
		Content:    history.Content,
		Version:    history.Version,
		CreatedAt:  timex.Time(history.CreatedAt),
	}
}

// domainToNoContentDTO 将领域模型转换为不含内容的 DTO
func (s *noteHistoryService) domainToNoContentDTO(history *domain.NoteHistory) *dto.NoteHistoryNoContentDTO {
	if history == nil {
		return nil
	}
	return &dto.NoteHistoryNoContentDTO{
		ID:         history.ID,
		NoteID:     history.NoteID,
		CategoryID: history.CategoryID,
		Title:      history.Title,
		Version:    history.Version,
		CreatedAt:  timex.Time(history.CreatedAt),
	}
}

// noteToDTO 将笔记领域模型转换为 DTO
func (s *noteHistoryService) noteToDTO(note *domain.Note) *dto.NoteDTO {
	if note == nil {
		return nil
	}
	return &dto.NoteDTO{
		ID:         note.ID,
		CategoryID: note.CategoryID,
		Title:      note.Title,
		Content:    note.Content,
		Version:    note.Version,
		CreatedAt:  timex.Time(note.CreatedAt),
		UpdatedAt:  timex.Time(note.UpdatedAt),
	}
}

// Get 获取指定 ID 的笔记历史详情
func (s *noteHistoryService) Get(ctx context.Context, uid int64, id int64) (*dto.NoteHistoryDTO, error) {
	history, err := s.historyRepo.GetByID(ctx, id, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if history == nil {
		return nil, code.ErrorHistoryNotFound
	}
	return s.domainToDTO(history), nil
}

// List 获取指定笔记的历史快照，从旧到新
func (s *noteHistoryService) List(ctx context.Context, uid int64, noteID int64) ([]*dto.NoteHistoryNoContentDTO, int64, error) {
	// 先确认笔记存在且归属当前用户
	note, err := s.noteRepo.GetByID(ctx, noteID, uid)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if note == nil {
		return nil, 0, code.ErrorNoteNotFound
	}

	histories, err := s.historyRepo.ListByNoteID(ctx, noteID, uid)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}

	list := make([]*dto.NoteHistoryNoContentDTO, 0, len(histories))
	for _, h := range histories {
		list = append(list, s.domainToNoContentDTO(h))
	}
	return list, int64(len(list)), nil
}

// RestoreFromHistory 将快照写回笔记并删除该快照
// 同一用户对同一快照的并发还原请求通过 singleflight 合并为一次执行
// key 必须包含 uid，否则不同用户的请求会被合并并拿到他人的结果
func (s *noteHistoryService) RestoreFromHistory(ctx context.Context, uid int64, historyID int64) (*dto.NoteDTO, error) {
	sfKey := fmt.Sprintf("history_restore_%d_%d", uid, historyID)
	result, err, _ := s.sf.Do(sfKey, func() (interface{}, error) {
		history, err := s.historyRepo.GetByID(ctx, historyID, uid)
		if err != nil {
			return nil, code.ErrorDBQuery.WithDetails(err.Error())
		}
		if history == nil {
			return nil, code.ErrorHistoryNotFound
		}

		// 快照关联的笔记必须存在且归属当前用户
		note, err := s.noteRepo.GetByID(ctx, history.NoteID, uid)
		if err != nil {
			return nil, code.ErrorDBQuery.WithDetails(err.Error())
		}
		if note == nil {
			return nil, code.ErrorHistoryNoteMissing
		}

		restored, err := s.historyRepo.Restore(ctx, history, uid)
		if err != nil {
			s.logger.Error("history restore failed",
				zap.Int64(logger.FieldUID, uid),
				zap.Int64(logger.FieldHistoryID, historyID),
				zap.Int64(logger.FieldNoteID, history.NoteID),
				zap.String(logger.FieldMethod, "noteHistoryService.RestoreFromHistory"),
				zap.Error(err),
			)
			return nil, code.ErrorDBQuery.WithDetails(err.Error())
		}
		if restored == nil {
			return nil, code.ErrorHistoryNoteMissing
		}

		s.logger.Info("note restored from history",
			zap.Int64(logger.FieldUID, uid),
			zap.Int64(logger.FieldHistoryID, historyID),
			zap.Int64(logger.FieldNoteID, restored.ID),
			zap.Int64(logger.FieldVersion, restored.Version),
		)
		return s.noteToDTO(restored), nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*dto.NoteDTO), nil
}

// Delete 删除单条历史快照
func (s *noteHistoryService) Delete(ctx context.Context, uid int64, id int64) error {
	history, err := s.historyRepo.GetByID(ctx, id, uid)
	if err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	if history == nil {
		return code.ErrorHistoryNotFound
	}

	if err := s.historyRepo.Delete(ctx, id, uid); err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}

// CleanupByTime 清理截止时间之前创建的历史快照
func (s *noteHistoryService) CleanupByTime(ctx context.Context, cutoffTime int64) (int64, error) {
	deleted, err := s.historyRepo.DeleteBeforeTime(ctx, cutoffTime)
	if err != nil {
		return 0, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if deleted > 0 {
		s.logger.Info("history cleanup finished",
			zap.Int64("deleted", deleted),
			zap.String("cutoff", time.Unix(cutoffTime, 0).Format("2006-01-02 15:04:05")),
		)
	}
	return deleted, nil
}
