// Package dao 实现数据访问层
package dao

import (
	"context"
	"errors"
	"time"

	"github.com/notevault/note-vault-service/internal/domain"
	"github.com/notevault/note-vault-service/internal/model"
	"github.com/notevault/note-vault-service/pkg/timex"

	"gorm.io/gorm"
)

// noteRepository 实现 domain.NoteRepository 接口
type noteRepository struct {
	dao *Dao
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *noteRepository) toDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
	return &domain.Note{
		ID:         m.ID,
		UID:        m.UID,
		CategoryID: m.CategoryID,
		Title:      m.Title,
		Content:    m.Content,
		Version:    m.Version,
		CreatedAt:  time.Time(m.CreatedAt),
		UpdatedAt:  time.Time(m.UpdatedAt),
	}
}

// GetByID 根据ID获取笔记
func (r *noteRepository) GetByID(ctx context.Context, id, uid int64) (*domain.Note, error) {
	var m model.Note
	err := r.dao.DB().WithContext(ctx).Where("id = ? AND uid = ?", id, uid).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建笔记，版本号从 1 开始
func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	now := timex.Now()
	m := &model.Note{
		UID:        note.UID,
		CategoryID: note.CategoryID,
		Title:      note.Title,
		Content:    note.Content,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := r.dao.DB().WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// UpdateWithVersion 带版本条件的更新
// 在同一事务中：
//  1. 写入修改前状态的历史快照
//  2. 以 WHERE version = expected 为条件更新笔记并递增版本号
//
// 条件更新影响行数不为 1 时说明版本已被并发修改抢先，整个事务回滚，
// 返回 domain.ErrVersionConflict，历史快照不会残留
func (r *noteRepository) UpdateWithVersion(ctx context.Context, note *domain.Note, mutation *domain.NoteMutation, uid int64) (*domain.Note, error) {
	var updated *model.Note

	err := r.dao.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.Note
		if err := tx.Where("id = ? AND uid = ?", note.ID, uid).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return gorm.ErrRecordNotFound
			}
			return err
		}

		// 修改前快照
		history := &model.NoteHistory{
			NoteID:     current.ID,
			UID:        current.UID,
			CategoryID: current.CategoryID,
			Title:      current.Title,
			Content:    current.Content,
			Version:    current.Version,
			CreatedAt:  timex.Now(),
		}
		if err := tx.Create(history).Error; err != nil {
			return err
		}

		title := current.Title
		content := current.Content
		categoryID := current.CategoryID
		if mutation.Title != nil {
			title = *mutation.Title
		}
		if mutation.Content != nil {
			content = *mutation.Content
		}
		if mutation.CategoryID != nil {
			categoryID = *mutation.CategoryID
		}

		// 版本条件更新，冲突时影响行数为 0
		result := tx.Model(&model.Note{}).
			Where("id = ? AND uid = ? AND version = ?", note.ID, uid, mutation.ExpectedVersion).
			Updates(map[string]interface{}{
				"title":       title,
				"content":     content,
				"category_id": categoryID,
				"version":     mutation.ExpectedVersion + 1,
				"updated_at":  timex.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 {
			return domain.ErrVersionConflict
		}

		var m model.Note
		if err := tx.Where("id = ? AND uid = ?", note.ID, uid).First(&m).Error; err != nil {
			return err
		}
		updated = &m
		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toDomain(updated), nil
}

// CountByCategoryID 统计引用指定分类的笔记数量
func (r *noteRepository) CountByCategoryID(ctx context.Context, categoryID, uid int64) (int64, error) {
	var count int64
	err := r.dao.DB().WithContext(ctx).Model(&model.Note{}).
		Where("category_id = ? AND uid = ?", categoryID, uid).
		Count(&count).Error
	return count, err
}

// List 分页获取笔记列表
func (r *noteRepository) List(ctx context.Context, uid, categoryID int64, page, pageSize int) ([]*domain.Note, error) {
	db := r.dao.DB().WithContext(ctx).Where("uid = ?", uid)
	if categoryID > 0 {
		db = db.Where("category_id = ?", categoryID)
	}

	var ms []*model.Note
	offset := 0
	if page > 0 {
		offset = (page - 1) * pageSize
	}
	err := db.Order("updated_at DESC, id DESC").Offset(offset).Limit(pageSize).Find(&ms).Error
	if err != nil {
		return nil, err
	}
	list := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list, nil
}

// ListCount 获取笔记数量
func (r *noteRepository) ListCount(ctx context.Context, uid, categoryID int64) (int64, error) {
	db := r.dao.DB().WithContext(ctx).Model(&model.Note{}).Where("uid = ?", uid)
	if categoryID > 0 {
		db = db.Where("category_id = ?", categoryID)
	}
	var count int64
	err := db.Count(&count).Error
	return count, err
}

// Delete 删除笔记及其全部历史
// 笔记与历史在同一事务内删除，避免产生孤儿快照
func (r *noteRepository) Delete(ctx context.Context, id, uid int64) error {
	return r.dao.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("note_id = ? AND uid = ?", id, uid).Delete(&model.NoteHistory{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND uid = ?", id, uid).Delete(&model.Note{}).Error
	})
}
