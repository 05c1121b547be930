package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/takumi-oki/boardops-api/internal/api"
	"github.com/takumi-oki/boardops-api/internal/config"
	"github.com/takumi-oki/boardops-api/internal/db"
	"github.com/takumi-oki/boardops-api/internal/logger"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	// DATABASE_URL wins; a configured postgres host comes next; otherwise
	// fall back to a local sqlite file.
	dbURL := os.Getenv("DATABASE_URL")
	var gormDB *gorm.DB
	switch {
	case dbURL != "":
		gormDB, err = db.OpenPostgresWithURL(dbURL)
	case conf.Postgres != nil && conf.Postgres.Host != "":
		gormDB, err = db.OpenPostgres(conf.Postgres)
	default:
		gormDB, err = db.OpenSQLite("boardops.db")
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	s := api.NewServer(conf, gormDB)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
