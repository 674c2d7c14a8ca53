package migration

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"tourapi/internal/logging"
)

func TestEnsureMigrated(t *testing.T) {
	ctx := context.Background()

	t.Run("schema exists", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		var buf bytes.Buffer
		log := logging.New(&buf, time.UTC, zapcore.InfoLevel)

		mock.ExpectQuery("SELECT to_regclass").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		assert.NoError(t, EnsureMigrated(ctx, db, log, "db.local"))
		assert.NoError(t, mock.ExpectationsWereMet())
		assert.Contains(t, buf.String(), "db_migration_skip")
	})

	t.Run("runs all steps", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT to_regclass").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS tour_snapshots").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_tour_snapshots_updated_at").
			WillReturnResult(sqlmock.NewResult(0, 0))

		var buf bytes.Buffer
		err = EnsureMigrated(ctx, db, logging.New(&buf, time.UTC, zapcore.InfoLevel), "db.local")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
		assert.Contains(t, buf.String(), "db_migration_success")
		assert.Contains(t, buf.String(), `"db_host":"db.local"`)
	})

	t.Run("sentinel check fails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT to_regclass").WillReturnError(errors.New("no permission"))

		var buf bytes.Buffer
		err = EnsureMigrated(ctx, db, logging.New(&buf, time.UTC, zapcore.InfoLevel), "db.local")

		assert.ErrorContains(t, err, "failed to check sentinel table: no permission")
		assert.Contains(t, buf.String(), `"level":"error"`)
	})

	t.Run("step fails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT to_regclass").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS tour_snapshots").
			WillReturnError(errors.New("syntax error"))

		var buf bytes.Buffer
		err = EnsureMigrated(ctx, db, logging.New(&buf, time.UTC, zapcore.InfoLevel), "db.local")

		assert.ErrorContains(t, err, "migration step create_table_tour_snapshots failed")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
