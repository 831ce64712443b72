package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rifas-online/rifas-api/internal/api"
	"github.com/rifas-online/rifas-api/internal/config"
	"github.com/rifas-online/rifas-api/internal/db"
	"github.com/rifas-online/rifas-api/internal/logger"
	"github.com/rifas-online/rifas-api/internal/scheduler"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if conf.Scheduler.Enabled {
		sweeper, err := scheduler.NewRaffleStatusSweeper(postgresDB, conf.Scheduler.SweepInterval)
		if err != nil {
			return fmt.Errorf("failed to initialize scheduler -> %w", err)
		}

		sweeper.Start()
		defer sweeper.Stop()
	}

	s := api.NewServer(conf, postgresDB)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
