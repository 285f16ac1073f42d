// meetpoint serves shared meetup events: create, edit, fetch, delete, invite
// by nickname, and leave. Membership lives in a per-event ledger that also
// gates who may touch an event.
//
// @title meetpoint API
// @version 1.0
// @description Shared event (meetup) membership service.
// @BasePath /
package main

import (
	"database/sql"
	"net/http"
	"os"

	_ "github.com/lib/pq"

	"meetpoint/config"
	_ "meetpoint/docs"
	authadapter "meetpoint/internal/adapters/auth"
	delivery "meetpoint/internal/delivery/http"
	"meetpoint/internal/delivery/http/controllers"
	"meetpoint/internal/delivery/http/middleware"
	"meetpoint/internal/repository/postgres"
	"meetpoint/internal/services"
)

func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		logger.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	if err := postgres.RunMigrations(db, cfg.MigrationsDir); err != nil {
		logger.Error("run migrations", "err", err)
		os.Exit(1)
	}

	eventRepo := postgres.NewEventRepository(db)
	memberRepo := postgres.NewMemberRepository(db)
	membershipRepo := postgres.NewMembershipRepository(db)

	verifier := authadapter.NewJWTVerifier(cfg.JWTSecret)
	eventService := services.NewEventService(eventRepo, memberRepo, membershipRepo, cfg.DBTimeout)

	eventController := controllers.NewEventController(logger, eventService)
	requireMember := middleware.RequireMember(verifier, logger)
	router := delivery.NewRouter(eventController, requireMember)

	addr := ":" + cfg.Port
	logger.Info("listening", "addr", addr, "env", cfg.Environment)
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
