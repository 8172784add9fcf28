// Package server exposes the counseling history workflow over HTTP:
// students download their own browser history, upload it for analysis,
// and counselors read the resulting context by session id.
package server

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/studyscope/studyscope/internal/browser"
	"github.com/studyscope/studyscope/internal/config"
	"github.com/studyscope/studyscope/internal/history"
	"github.com/studyscope/studyscope/internal/session"
)

// Exporter abstracts local-browser export so handlers can be tested
// without a real browser profile on disk.
type Exporter interface {
	Export(ctx context.Context, name string, w history.Window) (*history.Table, error)
	ExportAny(ctx context.Context, w history.Window) (*history.Table, string, error)
}

// localExporter is the production Exporter reading this machine's
// browser stores.
type localExporter struct{}

func (localExporter) Export(ctx context.Context, name string, w history.Window) (*history.Table, error) {
	return browser.Export(ctx, name, w)
}

func (localExporter) ExportAny(ctx context.Context, w history.Window) (*history.Table, string, error) {
	return browser.ExportAny(ctx, w)
}

// Handler handles HTTP requests.
type Handler struct {
	cfg         *config.Config
	sessions    session.Store
	sweeper     *session.Sweeper
	exporter    Exporter
	artifactDir string
}

// NewHandler creates a handler backed by the local browser exporter.
func NewHandler(cfg *config.Config, sessions session.Store, sweeper *session.Sweeper, artifactDir string) *Handler {
	return &Handler{
		cfg:         cfg,
		sessions:    sessions,
		sweeper:     sweeper,
		exporter:    localExporter{},
		artifactDir: artifactDir,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET("/download/my-history", h.DownloadHistory)
	e.POST("/upload/for-counseling", h.UploadForCounseling)
	e.GET("/context/:session_id", h.GetContext)
	e.DELETE("/session/:session_id", h.DeleteSession)
	e.GET("/health", h.Health)
}
