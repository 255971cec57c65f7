package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/regscan/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/regscan/internal/core/domain"
)

func seededRunService(t *testing.T) (*RunService, *fakeReportWriter) {
	t.Helper()
	store := memory.NewRunStore()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.SaveRun(ctx, &domain.Run{
		ID:        "old",
		Mode:      domain.RunModeBatch,
		StartedAt: base,
		Documents: 1,
		Records:   []domain.OutputRecord{{RecordID: "1", KeyInformation: "penalty", Sentence: "s"}},
	}))
	require.NoError(t, store.SaveRun(ctx, &domain.Run{
		ID:        "new",
		Mode:      domain.RunModeLookup,
		StartedAt: base.Add(time.Hour),
		Documents: 2,
		Failures:  []domain.DocumentFailure{{RecordID: "2", Error: "fetch failed"}},
	}))

	writer := &fakeReportWriter{}
	return NewRunService(store, writer), writer
}

func TestRunService_List(t *testing.T) {
	svc, _ := seededRunService(t)

	runs, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, 1, runs[0].Failures)
	assert.Equal(t, "old", runs[1].ID)
	assert.Equal(t, 1, runs[1].Records)
}

func TestRunService_Get(t *testing.T) {
	svc, _ := seededRunService(t)

	run, err := svc.Get(context.Background(), "old")
	require.NoError(t, err)
	assert.Len(t, run.Records, 1)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRunService_Export(t *testing.T) {
	t.Run("writes the stored records", func(t *testing.T) {
		svc, writer := seededRunService(t)

		require.NoError(t, svc.Export(context.Background(), "old", "out.csv"))

		assert.Equal(t, "out.csv", writer.path)
		require.Len(t, writer.records, 1)
		assert.Equal(t, "penalty", writer.records[0].KeyInformation)
	})

	t.Run("requires a path", func(t *testing.T) {
		svc, _ := seededRunService(t)
		assert.ErrorIs(t, svc.Export(context.Background(), "old", ""), domain.ErrInvalidInput)
	})

	t.Run("unknown run", func(t *testing.T) {
		svc, _ := seededRunService(t)
		assert.ErrorIs(t, svc.Export(context.Background(), "missing", "out.csv"), domain.ErrNotFound)
	})

	t.Run("writer failure", func(t *testing.T) {
		svc, writer := seededRunService(t)
		writer.err = errors.New("permission denied")

		err := svc.Export(context.Background(), "old", "out.csv")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "export run old")
	})
}

func TestRunService_Delete(t *testing.T) {
	svc, _ := seededRunService(t)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "old"))

	_, err := svc.Get(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, ""), domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.Delete(ctx, "old"), domain.ErrNotFound)
}
