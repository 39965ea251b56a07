package main

import (
	"fmt"

	log "github.com/charmbracelet/log"

	"github.com/nfransec/twocents/infra"
	"github.com/nfransec/twocents/pkg/config"
	"github.com/nfransec/twocents/pkg/reminder"
	"github.com/nfransec/twocents/pkg/service"
	"github.com/nfransec/twocents/webapi"
)

// @title twocents API
// @version 1.0.0
// @description Credit-card tracking API: balances, due dates, payments and statement ingestion.
// @host localhost:3000
// @BasePath /
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description "Enter your Bearer token in the format: `Bearer {token}`"
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	logger := setupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	uowFactory := infra.NewUoWFactory(db)

	cardSvc := service.NewCardService(uowFactory, logger)
	userSvc := service.NewUserService(uowFactory, logger)
	authSvc := service.NewAuthService(uowFactory, cfg.Jwt, logger)

	if cfg.Reminder.Enabled {
		sched, err := reminder.New(cfg.Reminder, cardSvc, &reminder.LogNotifier{Logger: logger}, logger)
		if err != nil {
			return fmt.Errorf("failed to create reminder scheduler: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	app := webapi.SetupApp(cardSvc, userSvc, authSvc, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)
	return app.Listen(addr)
}
