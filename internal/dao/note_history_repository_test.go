package dao

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/notevault/note-vault-service/internal/domain"
	"github.com/notevault/note-vault-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteHistoryRepository_ListByNoteID_OldestFirst(t *testing.T) {
	d := newTestDao(t)
	noteRepo := NewNoteRepository(d)
	historyRepo := NewNoteHistoryRepository(d)
	ctx := context.Background()

	note, err := noteRepo.Create(ctx, &domain.Note{UID: 1, Title: "t", Content: "rev-0"})
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		note, err = noteRepo.UpdateWithVersion(ctx, note, &domain.NoteMutation{
			Content:         strPtr(fmt.Sprintf("rev-%d", i)),
			ExpectedVersion: note.Version,
		}, 1)
		require.NoError(t, err)
	}

	histories, err := historyRepo.ListByNoteID(ctx, note.ID, 1)
	require.NoError(t, err)
	require.Len(t, histories, 3)

	// 从旧到新：快照版本 1、2、3
	for i, h := range histories {
		assert.Equal(t, int64(i+1), h.Version)
		assert.Equal(t, fmt.Sprintf("rev-%d", i), h.Content)
	}
}

func TestNoteHistoryRepository_Restore(t *testing.T) {
	d := newTestDao(t)
	noteRepo := NewNoteRepository(d)
	historyRepo := NewNoteHistoryRepository(d)
	ctx := context.Background()

	note, err := noteRepo.Create(ctx, &domain.Note{UID: 1, CategoryID: 7, Title: "old title", Content: "old content"})
	require.NoError(t, err)

	newCategory := int64(9)
	note, err = noteRepo.UpdateWithVersion(ctx, note, &domain.NoteMutation{
		Title:           strPtr("new title"),
		Content:         strPtr("new content"),
		CategoryID:      &newCategory,
		ExpectedVersion: 1,
	}, 1)
	require.NoError(t, err)
	require.Equal(t, int64(2), note.Version)

	histories, err := historyRepo.ListByNoteID(ctx, note.ID, 1)
	require.NoError(t, err)
	require.Len(t, histories, 1)

	restored, err := historyRepo.Restore(ctx, histories[0], 1)
	require.NoError(t, err)
	require.NotNil(t, restored)

	// 笔记回到快照状态，版本号取快照的版本号
	assert.Equal(t, "old title", restored.Title)
	assert.Equal(t, "old content", restored.Content)
	assert.Equal(t, int64(7), restored.CategoryID)
	assert.Equal(t, int64(1), restored.Version)

	// 被还原的快照已删除
	count, err := historyRepo.CountByNoteID(ctx, note.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestNoteHistoryRepository_Restore_NoteMissing(t *testing.T) {
	d := newTestDao(t)
	noteRepo := NewNoteRepository(d)
	historyRepo := NewNoteHistoryRepository(d)
	ctx := context.Background()

	note, err := noteRepo.Create(ctx, &domain.Note{UID: 1, Title: "t", Content: "c"})
	require.NoError(t, err)
	_, err = noteRepo.UpdateWithVersion(ctx, note, &domain.NoteMutation{
		Content:         strPtr("c2"),
		ExpectedVersion: 1,
	}, 1)
	require.NoError(t, err)

	histories, err := historyRepo.ListByNoteID(ctx, note.ID, 1)
	require.NoError(t, err)
	require.Len(t, histories, 1)

	// 手工制造孤儿快照：直接删掉笔记行，保留历史
	require.NoError(t, d.DB().Exec("DELETE FROM note WHERE id = ?", note.ID).Error)

	restored, err := historyRepo.Restore(ctx, histories[0], 1)
	require.NoError(t, err)
	assert.Nil(t, restored)

	// 失败的还原不删除快照
	count, err := historyRepo.CountByNoteID(ctx, note.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestNoteHistoryRepository_Delete(t *testing.T) {
	d := newTestDao(t)
	noteRepo := NewNoteRepository(d)
	historyRepo := NewNoteHistoryRepository(d)
	ctx := context.Background()

	note, err := noteRepo.Create(ctx, &domain.Note{UID: 1, Title: "t", Content: "c"})
	require.NoError(t, err)
	note, err = noteRepo.UpdateWithVersion(ctx, note, &domain.NoteMutation{
		Content:         strPtr("c2"),
		ExpectedVersion: 1,
	}, 1)
	require.NoError(t, err)

	histories, err := historyRepo.ListByNoteID(ctx, note.ID, 1)
	require.NoError(t, err)
	require.Len(t, histories, 1)

	require.NoError(t, historyRepo.Delete(ctx, histories[0].ID, 1))

	got, err := historyRepo.GetByID(ctx, histories[0].ID, 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	// 删除快照不影响笔记本身
	current, err := noteRepo.GetByID(ctx, note.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "c2", current.Content)
	assert.Equal(t, int64(2), current.Version)
}

func TestNoteHistoryRepository_DeleteBeforeTime(t *testing.T) {
	d := newTestDao(t)
	historyRepo := NewNoteHistoryRepository(d)
	ctx := context.Background()

	old := model.NoteHistory{NoteID: 1, UID: 1, Title: "old", Version: 1}
	recent := model.NoteHistory{NoteID: 1, UID: 1, Title: "recent", Version: 2}
	require.NoError(t, d.DB().Create(&old).Error)
	require.NoError(t, d.DB().Create(&recent).Error)

	cutoff := time.Now().Add(-24 * time.Hour)
	require.NoError(t, d.DB().Exec("UPDATE note_history SET created_at = ? WHERE id = ?",
		cutoff.Add(-time.Hour).Format("2006-01-02 15:04:05"), old.ID).Error)

	deleted, err := historyRepo.DeleteBeforeTime(ctx, cutoff.Unix())
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	count, err := historyRepo.CountByNoteID(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
