// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"

	"github.com/notevault/note-vault-service/internal/domain"
	"github.com/notevault/note-vault-service/internal/dto"
	"github.com/notevault/note-vault-service/pkg/app"
	"github.com/notevault/note-vault-service/pkg/code"
	"github.com/notevault/note-vault-service/pkg/logger"
	"github.com/notevault/note-vault-service/pkg/timex"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NoteService defines the note business service interface
// NoteService 定义笔记业务服务接口
type NoteService interface {
	// Get retrieves note details for a specified ID
	// Get 获取指定 ID 的笔记详情
	Get(ctx context.Context, uid int64, id int64) (*dto.NoteDTO, error)

	// Create creates a new note with version 1
	// Create 创建笔记，初始版本号为 1
	Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*dto.NoteDTO, error)

	// Update applies a version-guarded mutation and archives the pre-mutation snapshot
	// Update 应用带版本校验的修改并归档修改前快照
	Update(ctx context.Context, uid int64, id int64, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error)

	// List retrieves paged notes, optionally filtered by category
	// List 分页获取笔记列表，可按分类过滤
	List(ctx context.Context, uid int64, params *dto.NoteListRequest, pager *app.Pager) ([]*dto.NoteNoContentDTO, int64, error)

	// Delete removes a note together with all of its history snapshots
	// Delete 删除笔记及其全部历史快照
	Delete(ctx context.Context, uid int64, id int64) error
}

// noteService 实现 NoteService 接口
type noteService struct {
	noteRepo     domain.NoteRepository
	categoryRepo domain.CategoryRepository
	logger       *zap.Logger
}

// NewNoteService creates NoteService instance
// NewNoteService 创建 NoteService 实例
func NewNoteService(noteRepo domain.NoteRepository, categoryRepo domain.CategoryRepository, l *zap.Logger) NoteService {
	return &noteService{
		noteRepo:     noteRepo,
		categoryRepo: categoryRepo,
		logger:       l,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *noteService) domainToDTO(note *domain.Note) *dto.NoteDTO {
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

// checkCategory 校验分类存在且归属当前用户
func (s *noteService) checkCategory(ctx context.Context, categoryID, uid int64) error {
	if categoryID == 0 {
		return nil
	}
	category, err := s.categoryRepo.GetByID(ctx, categoryID, uid)
	if err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	if category == nil {
		return code.ErrorCategoryNotFound
	}
	return nil
}

// Get 获取指定 ID 的笔记详情
func (s *noteService) Get(ctx context.Context, uid int64, id int64) (*dto.NoteDTO, error) {
	note, err := s.noteRepo.GetByID(ctx, id, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if note == nil {
		return nil, code.ErrorNoteNotFound
	}
	return s.domainToDTO(note), nil
}

// Create 创建笔记，初始版本号为 1
func (s *noteService) Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*dto.NoteDTO, error) {
	if err := s.checkCategory(ctx, params.CategoryID, uid); err != nil {
		return nil, err
	}

	note, err := s.noteRepo.Create(ctx, &domain.Note{
		UID:        uid,
		CategoryID: params.CategoryID,
		Title:      params.Title,
		Content:    params.Content,
	})
	if err != nil {
		s.logger.Error("note create failed",
			zap.Int64(logger.FieldUID, uid),
			zap.String(logger.FieldMethod, "noteService.Create"),
			zap.Error(err),
		)
		if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, code.ErrorDBIntegrity.WithDetails(err.Error())
		}
		return nil, code.ErrorNoteCreateFailed.WithDetails(err.Error())
	}
	return s.domainToDTO(note), nil
}

// Update 应用带版本校验的修改
// 修改前快照与条件更新在仓储层的同一事务内完成，
// 版本冲突时不产生任何持久化效果
func (s *noteService) Update(ctx context.Context, uid int64, id int64, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error) {
	note, err := s.noteRepo.GetByID(ctx, id, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if note == nil {
		return nil, code.ErrorNoteNotFound
	}

	if params.CategoryID != nil {
		if err := s.checkCategory(ctx, *params.CategoryID, uid); err != nil {
			return nil, err
		}
	}

	updated, err := s.noteRepo.UpdateWithVersion(ctx, note, &domain.NoteMutation{
		Title:           params.Title,
		Content:         params.Content,
		CategoryID:      params.CategoryID,
		ExpectedVersion: params.Version,
	}, uid)
	if err != nil {
		if errors.Is(err, domain.ErrVersionConflict) {
			s.logger.Info("note update rejected by version guard",
				zap.Int64(logger.FieldUID, uid),
				zap.Int64(logger.FieldNoteID, id),
				zap.Int64(logger.FieldVersion, params.Version),
				zap.String(logger.FieldMethod, "noteService.Update"),
			)
			return nil, code.ErrorNoteVersionConflict
		}
		return nil, storeError(err)
	}
	if updated == nil {
		return nil, code.ErrorNoteNotFound
	}
	return s.domainToDTO(updated), nil
}

// List 分页获取笔记列表，可按分类过滤
func (s *noteService) List(ctx context.Context, uid int64, params *dto.NoteListRequest, pager *app.Pager) ([]*dto.NoteNoContentDTO, int64, error) {
	count, err := s.noteRepo.ListCount(ctx, uid, params.CategoryID)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}

	notes, err := s.noteRepo.List(ctx, uid, params.CategoryID, pager.Page, pager.PageSize)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}

	list := make([]*dto.NoteNoContentDTO, 0, len(notes))
	for _, note := range notes {
		item := &dto.NoteNoContentDTO{}
		if err := copier.Copy(item, note); err != nil {
			return nil, 0, code.ErrorServerInternal.WithDetails(err.Error())
		}
		item.CreatedAt = timex.Time(note.CreatedAt)
		item.UpdatedAt = timex.Time(note.UpdatedAt)
		list = append(list, item)
	}
	return list, count, nil
}

// Delete 删除笔记及其全部历史快照
func (s *noteService) Delete(ctx context.Context, uid int64, id int64) error {
	note, err := s.noteRepo.GetByID(ctx, id, uid)
	if err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	if note == nil {
		return code.ErrorNoteNotFound
	}

	if err := s.noteRepo.Delete(ctx, id, uid); err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}
