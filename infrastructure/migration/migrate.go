// Package migration applies the embedded schema to the document database.
package migration

import (
	"embed"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

//go:embed sql/*.sql
var files embed.FS

// Version is the schema version this binary expects.
const Version = 1

// Up migrates the database at dsn to Version.
func Up(dsn string) error {
	source, err := iofs.New(files, "sql")
	if err != nil {
		return errors.Wrap(err, "loading migrations")
	}
	defer source.Close()

	mg, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return errors.Wrap(err, "creating migrator")
	}
	defer mg.Close()

	current, dirty, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return errors.Wrap(err, "reading schema version")
	}
	if dirty {
		return errors.Errorf("schema version %d is dirty", current)
	}

	if err := mg.Migrate(Version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "applying migrations")
	}

	logrus.WithField("version", Version).Info("Database schema up to date")
	return nil
}
