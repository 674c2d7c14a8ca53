package database

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"tourapi/internal/config"
	"tourapi/internal/logging"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestBuildPostgresDSN(t *testing.T) {
	base := config.DatabaseConfig{Host: "db", Port: "5432", User: "tours", Name: "tours"}

	tests := []struct {
		name    string
		mutate  func(c *config.DatabaseConfig)
		want    string
		wantErr string
	}{
		{
			name: "password and sslmode",
			mutate: func(c *config.DatabaseConfig) {
				c.Password = "s3cret"
				c.SSLMode = "disable"
			},
			want: "postgres://tours:s3cret@db:5432/tours?sslmode=disable",
		},
		{
			name:   "no password",
			mutate: func(c *config.DatabaseConfig) { c.SSLMode = "require" },
			want:   "postgres://tours@db:5432/tours?sslmode=require",
		},
		{
			name:   "no sslmode",
			mutate: func(c *config.DatabaseConfig) {},
			want:   "postgres://tours@db:5432/tours",
		},
		{
			name:    "missing host",
			mutate:  func(c *config.DatabaseConfig) { c.Host = "" },
			wantErr: "missing host",
		},
		{
			name: "missing several fields",
			mutate: func(c *config.DatabaseConfig) {
				c.Port = ""
				c.Name = ""
			},
			wantErr: "missing port, name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)

			got, err := BuildPostgresDSN(c)
			if tt.wantErr != "" {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func stubOpen(t *testing.T, db *sql.DB, err error) {
	t.Helper()
	orig := sqlOpen
	sqlOpen = func(driverName, dataSourceName string) (*sql.DB, error) {
		return db, err
	}
	t.Cleanup(func() { sqlOpen = orig })
}

func TestNewPostgres(t *testing.T) {
	conf := config.DatabaseConfig{
		Host:               "db",
		Port:               "5432",
		User:               "tours",
		Password:           "s3cret",
		Name:               "tours",
		MaxOpenConns:       10,
		MaxIdleConns:       5,
		ConnMaxLifetimeSec: 300,
	}
	ctx := context.Background()

	t.Run("connects and logs", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		stubOpen(t, db, nil)
		mock.ExpectPing()

		var buf bytes.Buffer
		gotDB, err := NewPostgres(ctx, conf, logging.New(&buf, time.UTC, zapcore.InfoLevel))

		require.NoError(t, err)
		assert.Same(t, db, gotDB)
		assert.Equal(t, 10, gotDB.Stats().MaxOpenConnections)
		assert.Contains(t, buf.String(), `"msg":"db_connected"`)
		assert.Contains(t, buf.String(), `"db_host":"db"`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("open error", func(t *testing.T) {
		stubOpen(t, nil, errors.New("open error"))

		gotDB, err := NewPostgres(ctx, conf, nil)

		assert.ErrorContains(t, err, "sql open: open error")
		assert.Nil(t, gotDB)
	})

	t.Run("ping error is logged", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		stubOpen(t, db, nil)
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		var buf bytes.Buffer
		gotDB, err := NewPostgres(ctx, conf, logging.New(&buf, time.UTC, zapcore.InfoLevel))

		assert.ErrorContains(t, err, "db ping: connection refused")
		assert.Nil(t, gotDB)
		assert.Contains(t, buf.String(), `"msg":"db_connect_failed"`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cancelled context aborts the ping", func(t *testing.T) {
		db, _, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		stubOpen(t, db, nil)

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		gotDB, err := NewPostgres(cctx, conf, nil)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, gotDB)
	})

	t.Run("invalid config", func(t *testing.T) {
		gotDB, err := NewPostgres(ctx, config.DatabaseConfig{}, nil)

		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.Nil(t, gotDB)
	})
}
