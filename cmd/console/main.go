package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"gymdesk/console/internal/client"
	"gymdesk/console/internal/config"
	"gymdesk/console/internal/domain"
	"gymdesk/console/internal/logging"
	"gymdesk/console/internal/session"
	"gymdesk/console/internal/view"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: could not load config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("FATAL: could not build logger: %v", err)
	}
	defer logger.Sync()

	role, err := domain.ParseRole(cfg.Login.Role)
	if err != nil {
		logger.Fatal("bad login.role", zap.Error(err))
	}

	sessions := session.NewStore(logger)
	api := client.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, sessions, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := api.Login(ctx, role, cfg.Login.Email, cfg.Login.Password); err != nil {
		logger.Fatal("login failed", zap.Error(err))
	}
	defer api.Logout()

	if err := render(ctx, role, sessions, api, logger); err != nil {
		if errors.Is(err, view.ErrDenied) {
			logger.Warn("redirected to login", zap.Error(err))
			os.Exit(1)
		}
		logger.Fatal("render failed", zap.Error(err))
	}
}

// render mounts the views for the session's role. The switch is
// exhaustive over the closed role set; an invalid role cannot reach here.
func render(ctx context.Context, role domain.Role, sessions *session.Store, api *client.Client, logger *zap.Logger) error {
	out := os.Stdout
	switch role {
	case domain.RoleManager:
		if err := view.NewManagerDashboard(sessions, api, out, logger).Mount(ctx); err != nil {
			return err
		}
		if err := view.NewMembersView(sessions, api, out, logger).Mount(ctx); err != nil {
			return err
		}
		if err := view.NewTrainersView(sessions, api, out, logger).Mount(ctx); err != nil {
			return err
		}
		return view.NewSchedulesView(sessions, api, out, logger).Mount(ctx)
	case domain.RoleTrainer:
		return view.NewTrainerHome(sessions, api, out, logger).Mount(ctx)
	case domain.RoleMember:
		return view.NewMemberHome(sessions, api, out, logger).Mount(ctx)
	}
	return errors.New("unreachable: role outside closed set")
}
