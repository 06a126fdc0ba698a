package dao

import (
	"context"
	"testing"

	"github.com/notevault/note-vault-service/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// 任意一串成功的修改之后：
//   - 版本号等于 1 + 修改次数
//   - 历史快照的版本号恰好是 1..n，从旧到新
func TestNoteVersionMonotonicity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)

	properties.Property("version grows by one per accepted mutation", prop.ForAll(
		func(contents []string) bool {
			d := newTestDao(t)
			noteRepo := NewNoteRepository(d)
			historyRepo := NewNoteHistoryRepository(d)
			ctx := context.Background()

			note, err := noteRepo.Create(ctx, &domain.Note{UID: 1, Title: "p", Content: "initial"})
			if err != nil {
				return false
			}

			for i := range contents {
				note, err = noteRepo.UpdateWithVersion(ctx, note, &domain.NoteMutation{
					Content:         &contents[i],
					ExpectedVersion: note.Version,
				}, 1)
				if err != nil {
					return false
				}
			}

			if note.Version != int64(1+len(contents)) {
				return false
			}

			histories, err := historyRepo.ListByNoteID(ctx, note.ID, 1)
			if err != nil || len(histories) != len(contents) {
				return false
			}
			for i, h := range histories {
				if h.Version != int64(i+1) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}
