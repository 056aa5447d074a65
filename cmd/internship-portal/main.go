package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/stazhbg/internship-portal/internal/config"
	"github.com/stazhbg/internship-portal/internal/registry"
	"github.com/stazhbg/internship-portal/internal/repository/sqlite"
	"github.com/stazhbg/internship-portal/internal/service"
	myhttp "github.com/stazhbg/internship-portal/internal/transport/http"
	"github.com/stazhbg/internship-portal/pkg/logger/slogpretty"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.MustLoad()
	log := slogpretty.SetupLogger(cfg.Env)

	log.Info("starting internship-portal", slog.String("env", cfg.Env))

	errChan := make(chan error, 1)

	db, err := sqlite.NewDB(cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to init db: %v", err)
	}
	defer func() {
		err = db.DB().Close()
		if err != nil {
			errChan <- fmt.Errorf("db close failed: %v", err)
		}
	}()

	reg, err := registry.Seed(log)
	if err != nil {
		return fmt.Errorf("failed to seed registry: %v", err)
	}

	sessions := sqlite.NewSessionRepository(db.DB(), log)

	identityService := service.NewIdentityService(sessions, reg, log)
	phaseService := service.NewPhaseService(reg, log)
	applicationService := service.NewApplicationService(reg, phaseService, log)
	companyService := service.NewCompanyService(reg, log)
	meetingService := service.NewMeetingService(reg, log)
	chatService := service.NewChatService(reg, log)
	reportService := service.NewReportService(reg, log)
	adminService := service.NewAdminService(reg, log)

	srv := myhttp.NewServer(
		log,
		identityService,
		phaseService,
		applicationService,
		companyService,
		meetingService,
		chatService,
		reportService,
		adminService,
	)
	httpServer := &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler: srv.Routes(),
	}

	go startServer(log, httpServer, errChan)

	select {
	case err := <-errChan:
		return fmt.Errorf("http server error: %v", err)

	case <-ctx.Done():
		log.Info("stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shuting down http server: %v", err)
	}

	return nil
}

func startServer(log *slog.Logger, httpServer *http.Server, errChan chan error) {
	defer close(errChan)

	log.Info("service started", slog.String("addr", httpServer.Addr))

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		errChan <- fmt.Errorf("error listening and serving: %v", err)
	}
}
