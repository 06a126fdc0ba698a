package service

import (
	"context"
	"testing"

	"github.com/notevault/note-vault-service/internal/domain"
	"github.com/notevault/note-vault-service/internal/dto"
	"github.com/notevault/note-vault-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockHistoryRepo struct {
	domain.NoteHistoryRepository
	histories  map[int64]*domain.NoteHistory
	restored   *domain.Note
	deletedIDs []int64
}

func (m *mockHistoryRepo) GetByID(ctx context.Context, id, uid int64) (*domain.NoteHistory, error) {
	h, ok := m.histories[id]
	if !ok || h.UID != uid {
		return nil, nil
	}
	return h, nil
}

func (m *mockHistoryRepo) ListByNoteID(ctx context.Context, noteID, uid int64) ([]*domain.NoteHistory, error) {
	var list []*domain.NoteHistory
	for _, h := range m.histories {
		if h.NoteID == noteID && h.UID == uid {
			list = append(list, h)
		}
	}
	return list, nil
}

func (m *mockHistoryRepo) Restore(ctx context.Context, history *domain.NoteHistory, uid int64) (*domain.Note, error) {
	delete(m.histories, history.ID)
	m.restored = &domain.Note{
		ID:         history.NoteID,
		UID:        history.UID,
		CategoryID: history.CategoryID,
		Title:      history.Title,
		Content:    history.Content,
		Version:    history.Version,
	}
	return m.restored, nil
}

func (m *mockHistoryRepo) Delete(ctx context.Context, id, uid int64) error {
	m.deletedIDs = append(m.deletedIDs, id)
	delete(m.histories, id)
	return nil
}

func TestNoteHistoryService_Restore_HistoryNotFound(t *testing.T) {
	historyRepo := &mockHistoryRepo{histories: map[int64]*domain.NoteHistory{}}
	noteRepo := &mockNoteRepo{notes: map[int64]*domain.Note{}}
	svc := NewNoteHistoryService(historyRepo, noteRepo, zap.NewNop())

	_, err := svc.RestoreFromHistory(context.Background(), 1, 99)
	assert.ErrorIs(t, err, code.ErrorHistoryNotFound)
}

func TestNoteHistoryService_Restore_NoteMissing(t *testing.T) {
	historyRepo := &mockHistoryRepo{
		histories: map[int64]*domain.NoteHistory{
			5: {ID: 5, NoteID: 1, UID: 1, Title: "snap", Version: 2},
		},
	}
	noteRepo := &mockNoteRepo{notes: map[int64]*domain.Note{}}
	svc := NewNoteHistoryService(historyRepo, noteRepo, zap.NewNop())

	_, err := svc.RestoreFromHistory(context.Background(), 1, 5)
	assert.ErrorIs(t, err, code.ErrorHistoryNoteMissing)
}

func TestNoteHistoryService_Restore_OtherUserHistory(t *testing.T) {
	// 其他用户的快照表现为不存在
	historyRepo := &mockHistoryRepo{
		histories: map[int64]*domain.NoteHistory{
			5: {ID: 5, NoteID: 1, UID: 2, Title: "snap", Version: 2},
		},
	}
	noteRepo := &mockNoteRepo{notes: map[int64]*domain.Note{}}
	svc := NewNoteHistoryService(historyRepo, noteRepo, zap.NewNop())

	_, err := svc.RestoreFromHistory(context.Background(), 1, 5)
	assert.ErrorIs(t, err, code.ErrorHistoryNotFound)
}

func TestNoteHistoryService_Restore_Success(t *testing.T) {
	historyRepo := &mockHistoryRepo{
		histories: map[int64]*domain.NoteHistory{
			5: {ID: 5, NoteID: 1, UID: 1, CategoryID: 3, Title: "old title", Content: "old content", Version: 2},
		},
	}
	noteRepo := &mockNoteRepo{
		notes: map[int64]*domain.Note{1: {ID: 1, UID: 1, Title: "current", Version: 7}},
	}
	svc := NewNoteHistoryService(historyRepo, noteRepo, zap.NewNop())

	result, err := svc.RestoreFromHistory(context.Background(), 1, 5)

	require.NoError(t, err)
	// 笔记回到快照状态，版本号取快照的版本号
	assert.Equal(t, "old title", result.Title)
	assert.Equal(t, "old content", result.Content)
	assert.Equal(t, int64(3), result.CategoryID)
	assert.Equal(t, int64(2), result.Version)
	// 被还原的快照已删除
	assert.Empty(t, historyRepo.histories)
}

// gatedHistoryRepo 在 Restore 入口阻塞，用于构造还原执行中的并发场景
type gatedHistoryRepo struct {
	*mockHistoryRepo
	entered chan struct{}
	release chan struct{}
}

func (g *gatedHistoryRepo) Restore(ctx context.Context, history *domain.NoteHistory, uid int64) (*domain.Note, error) {
	g.entered <- struct{}{}
	<-g.release
	return g.mockHistoryRepo.Restore(ctx, history, uid)
}

func TestNoteHistoryService_Restore_ConcurrentOtherUserNotMerged(t *testing.T) {
	// 其他用户与所有者并发还原同一快照时，
	// 不得被合并进所有者的执行而拿到他人的笔记内容
	historyRepo := &gatedHistoryRepo{
		mockHistoryRepo: &mockHistoryRepo{
			histories: map[int64]*domain.NoteHistory{
				5: {ID: 5, NoteID: 1, UID: 1, Title: "secret title", Content: "secret content", Version: 2},
			},
		},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	noteRepo := &mockNoteRepo{
		notes: map[int64]*domain.Note{1: {ID: 1, UID: 1, Title: "current", Version: 7}},
	}
	svc := NewNoteHistoryService(historyRepo, noteRepo, zap.NewNop())

	ownerDone := make(chan struct{})
	var ownerResult *dto.NoteDTO
	var ownerErr error
	go func() {
		defer close(ownerDone)
		ownerResult, ownerErr = svc.RestoreFromHistory(context.Background(), 1, 5)
	}()

	// 等所有者进入还原执行
	<-historyRepo.entered

	// 非所有者此刻发起还原，必须表现为快照不存在
	result, err := svc.RestoreFromHistory(context.Background(), 2, 5)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, code.ErrorHistoryNotFound)

	close(historyRepo.release)
	<-ownerDone

	require.NoError(t, ownerErr)
	assert.Equal(t, "secret title", ownerResult.Title)
	assert.Equal(t, int64(2), ownerResult.Version)
}

func TestNoteHistoryService_List_NoteNotFound(t *testing.T) {
	historyRepo := &mockHistoryRepo{histories: map[int64]*domain.NoteHistory{}}
	noteRepo := &mockNoteRepo{notes: map[int64]*domain.Note{}}
	svc := NewNoteHistoryService(historyRepo, noteRepo, zap.NewNop())

	_, _, err := svc.List(context.Background(), 1, 42)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

func TestNoteHistoryService_Delete(t *testing.T) {
	historyRepo := &mockHistoryRepo{
		histories: map[int64]*domain.NoteHistory{
			5: {ID: 5, NoteID: 1, UID: 1, Version: 1},
		},
	}
	noteRepo := &mockNoteRepo{notes: map[int64]*domain.Note{}}
	svc := NewNoteHistoryService(historyRepo, noteRepo, zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), 1, 5))
	assert.Equal(t, []int64{5}, historyRepo.deletedIDs)

	err := svc.Delete(context.Background(), 1, 5)
	assert.ErrorIs(t, err, code.ErrorHistoryNotFound)
}
