package main

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"tourapi/internal/config"
	"tourapi/internal/database"
	"tourapi/internal/database/migration"
	"tourapi/internal/repository"
	"tourapi/internal/repository/object"
	"tourapi/internal/repository/postgres"
	"tourapi/internal/storage"
)

// backend is the opened tours repository plus whatever it holds open.
type backend struct {
	Repo repository.TourRepository
	db   *sql.DB
}

func (b *backend) Close() {
	if b.db != nil {
		_ = b.db.Close()
	}
}

// openBackend builds the repository selected by TOURS_BACKEND. Remote
// backends are seeded from the local dataset file the first time they are used.
func openBackend(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (*backend, error) {
	localStore, err := storage.NewFilesystem(cfg.Tours.DataDir)
	if err != nil {
		return nil, err
	}
	local := object.NewTourObject(localStore, cfg.Tours.File)

	var b backend
	switch cfg.Tours.Backend {
	case config.BackendFile:
		b.Repo = local
		return &b, nil

	case config.BackendMinIO:
		objStore, err := storage.NewMinIO(cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("initialize object storage: %w", err)
		}
		b.Repo = object.NewTourObject(objStore, cfg.Tours.ObjectKey)

	case config.BackendPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database, log)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		b.db = db
		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			b.Close()
			return nil, err
		}
		b.Repo = postgres.NewTourPostgres(db, cfg.Tours.SnapshotName)

	default:
		return nil, fmt.Errorf("unknown tours backend %q", cfg.Tours.Backend)
	}

	seeded, err := repository.Seed(ctx, b.Repo, local)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("seed %s backend: %w", cfg.Tours.Backend, err)
	}
	if seeded {
		log.Info("tours_seeded", zap.String("backend", cfg.Tours.Backend), zap.String("source", cfg.Tours.File))
	}
	return &b, nil
}
