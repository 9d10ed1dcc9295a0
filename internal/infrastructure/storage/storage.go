package storage

import (
	"context"
	"fmt"

	"nodex/internal/app/server/config"
	"nodex/internal/domain/record"
	"nodex/internal/domain/user"
	"nodex/internal/infrastructure/storage/postgres"
	"nodex/internal/infrastructure/storage/sqlite"

	"golang.org/x/exp/slog"
)

// Storage объединяет репозитории выбранного драйвера.
type Storage struct {
	Users   user.Repository
	Records record.Store

	ping  func(ctx context.Context) error
	close func() error
}

// Open подключается к базе согласно cfg.DB.Driver. Миграции должны быть применены заранее.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Storage, error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		pg, err := postgres.New(ctx, cfg.DB.DatabaseURI)
		if err != nil {
			return nil, err
		}
		return &Storage{
			Users:   postgres.NewUserRepository(pg.Pool(), log),
			Records: postgres.NewRecordRepository(pg.Pool(), log),
			ping:    pg.Ping,
			close:   pg.Close,
		}, nil
	case config.DriverSQLite:
		lite, err := sqlite.New(ctx, cfg.DB.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Storage{
			Users:   sqlite.NewUserRepository(lite.DB(), log),
			Records: sqlite.NewRecordRepository(lite.DB(), log),
			ping:    lite.Ping,
			close:   lite.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.DB.Driver)
	}
}

// Ping проверяет соединение с базой, используется проверкой здоровья.
func (s *Storage) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

func (s *Storage) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}
