package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/alexanderramin/quest/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentAccess_ReadDuringWrite verifies that note listings stay
// consistent while another connection keeps inserting. WAL mode allows
// concurrent readers alongside a single writer.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	ctx := context.Background()

	projRepo := NewSQLiteProjectRepo(database)
	qRepo := NewSQLiteQuestionRepo(database)
	noteRepo := NewSQLiteNoteRepo(database)

	proj := testutil.NewTestProject("ReadWrite")
	require.NoError(t, projRepo.Create(ctx, proj))
	q := testutil.NewTestQuestion(proj.ID, "Q")
	require.NoError(t, qRepo.Create(ctx, q))

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			n := testutil.NewTestNote(q.ID, fmt.Sprintf("note-%d", i))
			if err := noteRepo.Create(ctx, n); err != nil {
				t.Errorf("writer: create note %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				notes, err := noteRepo.ListByQuestion(ctx, q.ID)
				if err != nil {
					t.Errorf("reader %d: list notes: %v", reader, err)
					return
				}
				for _, n := range notes {
					if n.ID == "" || n.QuestionID != q.ID {
						t.Errorf("reader %d: half-written note %+v", reader, n)
					}
				}
			}
		}(r)
	}

	wg.Wait()

	notes, err := noteRepo.ListByQuestion(ctx, q.ID)
	require.NoError(t, err)
	assert.Len(t, notes, 20)
}

// TestConcurrentAccess_URLGetOrCreate verifies that racing inserts of the same
// URL converge on a single row.
func TestConcurrentAccess_URLGetOrCreate(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Race")
	require.NoError(t, NewSQLiteProjectRepo(database).Create(ctx, proj))
	urlRepo := NewSQLiteURLInfoRepo(database)

	const workers = 8
	ids := make([]string, workers)
	created := make([]bool, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u, c, err := urlRepo.GetOrCreate(ctx, testutil.NewTestURL(proj.ID, "https://same.test", ""))
			if err != nil {
				t.Errorf("worker %d: %v", i, err)
				return
			}
			ids[i] = u.ID
			created[i] = c
		}(i)
	}
	wg.Wait()

	winners := 0
	for i := range ids {
		assert.Equal(t, ids[0], ids[i])
		if created[i] {
			winners++
		}
	}
	assert.Equal(t, 1, winners)

	all, err := urlRepo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
