package rowsource

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infortic/infortic/internal/config"
	"github.com/infortic/infortic/internal/logger"
	"github.com/infortic/infortic/internal/models"
)

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.Config{RowSource: config.RowSourceSQLite, SQLitePath: filepath.Join(t.TempDir(), "rows.db")}

	store, closeFn, err := Open(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)
	defer closeFn()

	n, err := store.Count(context.Background(), models.KindCompetition)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestOpen_Unknown(t *testing.T) {
	_, _, err := Open(context.Background(), &config.Config{RowSource: "mongo"}, logger.NewNop())
	assert.Error(t, err)
}
