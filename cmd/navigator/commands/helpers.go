package commands

import (
	"database/sql"

	"github.com/polarismusic/navigator/config"
	"github.com/polarismusic/navigator/db"
	"github.com/polarismusic/navigator/errors"
	"github.com/polarismusic/navigator/logger"
	"github.com/polarismusic/navigator/session"
)

// openSession loads config, opens the migrated database, and wires a
// full session over it. The caller owns closing the returned database.
func openSession() (*config.Config, *sql.DB, *session.Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "failed to load configuration")
	}

	database, err := db.Open(cfg.Database.Path, logger.Logger)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "failed to open database")
	}
	if err := db.Migrate(database, logger.Logger); err != nil {
		database.Close()
		return nil, nil, nil, errors.Wrap(err, "failed to migrate database")
	}

	return cfg, database, session.New(cfg, database, logger.Logger), nil
}
