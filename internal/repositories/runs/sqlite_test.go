package runs_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/runs"
)

func TestOpenSQLite_RequiresPath(t *testing.T) {
	_, err := runs.OpenSQLite("  ")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestSQLiteRepository_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "arena.db")

	repo, err := runs.OpenSQLite(path)
	require.NoError(t, err)
	_, err = repo.Save(ctx, &runs.SaveInput{Run: sampleRun("run_kept", 0)})
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened, err := runs.OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	out, err := reopened.Get(ctx, &runs.GetInput{ID: "run_kept"})
	require.NoError(t, err)
	assert.Equal(t, ^uint64(0)-7, out.Run.Seed)
	assert.Equal(t, 50, out.Run.Report.Totals.Fights)
}
