package database

import (
	"os"

	"getpetback/config"

	"github.com/jmoiron/sqlx"
	"github.com/umakantv/go-utils/db"
	"github.com/umakantv/go-utils/db/migrations"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// InitializeStateDB opens the local SQLite database that holds the
// persisted session state and brings its schema up to date. Local
// state being unavailable is an unrecoverable environment precondition,
// so failures here terminate the process.
func InitializeStateDB(cfg config.StateConfig) *sqlx.DB {
	dbConn := db.GetDBConnection(db.DatabaseConfig{
		DRIVER: "sqlite3",
		DB:     cfg.DB,
	})

	err := migrations.Migrate(dbConn, cfg.MigrationsDir)
	if err != nil {
		logger.Error("Error while running migration", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("State database initialized", zap.String("path", cfg.DB))
	return dbConn
}
