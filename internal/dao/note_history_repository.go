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

// noteHistoryRepository 实现 domain.NoteHistoryRepository 接口
type noteHistoryRepository struct {
	dao *Dao
}

// NewNoteHistoryRepository 创建 NoteHistoryRepository 实例
func NewNoteHistoryRepository(dao *Dao) domain.NoteHistoryRepository {
	return &noteHistoryRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *noteHistoryRepository) toDomain(m *model.NoteHistory) *domain.NoteHistory {
	if m == nil {
		return nil
	}
	return &domain.NoteHistory{
		ID:         m.ID,
		NoteID:     m.NoteID,
		UID:        m.UID,
		CategoryID: m.CategoryID,
		Title:      m.Title,
		Content:    m.Content,
		Version:    m.Version,
		CreatedAt:  time.Time(m.CreatedAt),
	}
}

// GetByID 根据ID获取历史记录
func (r *noteHistoryRepository) GetByID(ctx context.Context, id, uid int64) (*domain.NoteHistory, error) {
	var m model.NoteHistory
	err := r.dao.DB().WithContext(ctx).Where("id = ? AND uid = ?", id, uid).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

// ListByNoteID 获取笔记的历史记录，按创建顺序从旧到新
func (r *noteHistoryRepository) ListByNoteID(ctx context.Context, noteID, uid int64) ([]*domain.NoteHistory, error) {
	var ms []*model.NoteHistory
	err := r.dao.DB().WithContext(ctx).
		Where("note_id = ? AND uid = ?", noteID, uid).
		Order("id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	list := make([]*domain.NoteHistory, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list, nil
}

// CountByNoteID 获取笔记的历史记录数量
func (r *noteHistoryRepository) CountByNoteID(ctx context.Context, noteID, uid int64) (int64, error) {
	var count int64
	err := r.dao.DB().WithContext(ctx).Model(&model.NoteHistory{}).
		Where("note_id = ? AND uid = ?", noteID, uid).
		Count(&count).Error
	return count, err
}

// Restore 将历史快照写回笔记并删除该快照
// 写回和删除在同一事务内完成，笔记版本号被设置为快照的版本号（不递增）
func (r *noteHistoryRepository) Restore(ctx context.Context, history *domain.NoteHistory, uid int64) (*domain.Note, error) {
	var restored *model.Note

	err := r.dao.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var note model.Note
		if err := tx.Where("id = ? AND uid = ?", history.NoteID, uid).First(&note).Error; err != nil {
			return err
		}

		result := tx.Model(&model.Note{}).
			Where("id = ? AND uid = ?", history.NoteID, uid).
			Updates(map[string]interface{}{
				"title":       history.Title,
				"content":     history.Content,
				"category_id": history.CategoryID,
				"version":     history.Version,
				"updated_at":  timex.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 {
			return gorm.ErrRecordNotFound
		}

		result = tx.Where("id = ? AND uid = ?", history.ID, uid).Delete(&model.NoteHistory{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 {
			// 快照在事务执行期间被并发删除，整体回滚
			return gorm.ErrRecordNotFound
		}

		var m model.Note
		if err := tx.Where("id = ? AND uid = ?", history.NoteID, uid).First(&m).Error; err != nil {
			return err
		}
		restored = &m
		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	noteRepo := noteRepository{dao: r.dao}
	return noteRepo.toDomain(restored), nil
}

// Delete 删除单条历史记录
func (r *noteHistoryRepository) Delete(ctx context.Context, id, uid int64) error {
	return r.dao.DB().WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		Delete(&model.NoteHistory{}).Error
}

// DeleteBeforeTime 删除指定时间之前创建的历史记录，用于保留期清理
func (r *noteHistoryRepository) DeleteBeforeTime(ctx context.Context, timestamp int64) (int64, error) {
	result := r.dao.DB().WithContext(ctx).
		Where("created_at < ?", timex.Time(time.Unix(timestamp, 0))).
		Delete(&model.NoteHistory{})
	return result.RowsAffected, result.Error
}
