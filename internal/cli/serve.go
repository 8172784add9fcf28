package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/studyscope/studyscope/internal/server"
	"github.com/studyscope/studyscope/internal/session"
)

// Execute implements the go-flags Commander interface for ServeCommand.
func (c *ServeCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	if c.Host != "" {
		cfg.Server.Host = c.Host
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}

	artifactDir, err := cfg.ArtifactDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(artifactDir, 0700); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}

	sessions := session.NewMemoryStore()
	sweeper := &session.Sweeper{
		Dir:    artifactDir,
		MaxAge: time.Duration(cfg.Storage.MaxArtifactAgeHours) * time.Hour,
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(fmt.Sprintf("%d", cfg.Server.MaxUploadBytes)))

	h := server.NewHandler(cfg, sessions, sweeper, artifactDir)
	h.RegisterRoutes(e)

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go sweeper.Run(sweepCtx, time.Duration(cfg.Storage.SweepIntervalHours)*time.Hour)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("StudyScope %s listening on %s (artifacts in %s)", c.version, addr, artifactDir)

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("start server: %w", err)
	case <-quit:
	}

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Println("StudyScope stopped")
	return nil
}
