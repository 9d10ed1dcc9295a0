package migration

import (
	"embed"
	"errors"
	"fmt"

	"nodex/internal/app/server/config"

	"github.com/golang-migrate/migrate/v4"
	// Blank imports register the database drivers for migrations
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql
var sqlFS embed.FS

// Migrator - интерфейс для самой библиотеки migrate.Migrate
type Migrator interface {
	Up() error
	Down() error
	Close() (error, error)
}

// MigrationEngine - фабрика для создания мигратора (чтобы не лезть в ФС и БД в тестах)
type MigrationEngine func(driver, databaseURL string) (Migrator, error)

type Migration struct {
	cfg    *config.Config
	engine MigrationEngine
}

func NewMigration(conf *config.Config, engine MigrationEngine) *Migration {
	return &Migration{
		cfg:    conf,
		engine: engine,
	}
}

// DefaultEngine - реальная реализация: миграции вшиты в бинарник
func DefaultEngine(driver, databaseURL string) (Migrator, error) {
	src, err := iofs.New(sqlFS, "sql/"+driver)
	if err != nil {
		return nil, fmt.Errorf("open %s migrations: %w", driver, err)
	}
	return migrate.NewWithSourceInstance("iofs", src, databaseURL)
}

// DatabaseURL возвращает адрес базы в формате golang-migrate.
func DatabaseURL(cfg *config.Config) string {
	if cfg.DB.Driver == config.DriverSQLite {
		return "sqlite3://" + cfg.DB.SQLitePath
	}
	return cfg.DB.DatabaseURI
}

func (mg *Migration) Up() error {
	return mg.run(func(m Migrator) error { return m.Up() })
}

func (mg *Migration) Down() error {
	return mg.run(func(m Migrator) error { return m.Down() })
}

func (mg *Migration) run(step func(Migrator) error) (err error) {
	m, err := mg.engine(mg.cfg.DB.Driver, DatabaseURL(mg.cfg))
	if err != nil {
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration source error: %v", err, serr)
			} else {
				err = serr
			}
		}
		if dberr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration database error: %v", err, dberr)
			} else {
				err = dberr
			}
		}
	}()
	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration: %w", err)
	}
	return nil
}
