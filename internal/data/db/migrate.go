package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	"github.com/simsportal/sims-portal-backend/internal/domain"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Models lists every persisted type in dependency order.
func Models() []interface{} {
	return []interface{}{
		&domain.NationalSociety{},
		&domain.EmergencyType{},
		&domain.User{},
		&domain.Emergency{},
		&domain.Assignment{},
		&domain.Availability{},
		&domain.Learning{},
		&domain.Portfolio{},
		&domain.Review{},
		&domain.Story{},
		&domain.Log{},
		&domain.Badge{},
		&domain.UserBadge{},
	}
}

// AutoMigrateAll is for local development and tests; deployed databases
// go through RunMigrations.
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// RunMigrations applies the embedded SQL migrations. action is one of
// up, down, version or drop.
func RunMigrations(cfg Config, action string, log *logger.Logger) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migrations source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.URL("pgx5"))
	if err != nil {
		return fmt.Errorf("migrate init: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			log.Warn("migrate close", "source_error", srcErr, "db_error", dbErr)
		}
	}()

	switch action {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "drop":
		err = m.Drop()
	case "version":
		v, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			log.Info("no migrations applied")
			return nil
		}
		if verr != nil {
			return fmt.Errorf("migrate version: %w", verr)
		}
		log.Info("migration version", "version", v, "dirty", dirty)
		return nil
	default:
		return fmt.Errorf("unknown migrate action %q", action)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("migrations: no change", "action", action)
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", action, err)
	}
	log.Info("migrations applied", "action", action)
	return nil
}
