package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studyscope/studyscope/internal/analysis"
	"github.com/studyscope/studyscope/internal/browser"
	"github.com/studyscope/studyscope/internal/history"
	"github.com/studyscope/studyscope/internal/session"
)

// Root describes the service and its workflow.
func (h *Handler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"service": "StudyScope Browser History Service",
		"workflow": map[string]string{
			"step_1": "Download your browser history: GET /download/my-history",
			"step_2": "Upload for counseling: POST /upload/for-counseling",
		},
		"endpoints": map[string]string{
			"/download/my-history":    "Download your own browser history as CSV",
			"/upload/for-counseling":  "Upload history CSV for counseling context",
			"/context/{session_id}":   "Get counseling context for a session",
			"/session/{session_id}":   "DELETE to remove session data",
			"/health":                 "Service health",
		},
	})
}

// DownloadHistory exports the caller's local browser history as a CSV
// attachment. With no browser parameter, installed browsers are probed in
// a fixed order and the winner is reported in X-Detected-Browser.
func (h *Handler) DownloadHistory(c echo.Context) error {
	daysBack := h.cfg.Export.DefaultDaysBack
	if raw := c.QueryParam("days_back"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid days_back %q", raw)})
		}
		daysBack = n
	}

	ctx := c.Request().Context()
	window := history.Window{DaysBack: daysBack}

	var (
		table    *history.Table
		detected string
		err      error
	)
	if name := c.QueryParam("browser"); name != "" {
		table, err = h.exporter.Export(ctx, name, window)
		detected = name
		if b, lookupErr := browser.Lookup(name); lookupErr == nil {
			detected = b.Name
		}
	} else {
		table, detected, err = h.exporter.ExportAny(ctx, window)
	}

	switch {
	case err == nil:
	case errors.Is(err, history.ErrInvalidWindow), errors.Is(err, browser.ErrUnknownBrowser):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, browser.ErrNoHistory), errors.Is(err, history.ErrStoreNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "no browser history found; make sure your browser is installed and has browsing history",
		})
	default:
		log.Printf("ERROR: export failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	filename := fmt.Sprintf("my_browser_history_%s.csv", time.Now().Format("20060102_150405"))
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+filename)
	c.Response().Header().Set("X-Detected-Browser", detected)
	return c.Blob(http.StatusOK, "text/csv", []byte(table.CSV()))
}

// UploadForCounseling accepts a student's history CSV, stores it as an
// artifact, analyzes it, and creates a session keyed by a fresh id.
func (h *Handler) UploadForCounseling(c echo.Context) error {
	studentID := c.FormValue("student_id")
	if studentID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "student_id is required"})
	}

	fileHeader, err := c.FormFile("history_file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "history_file is required"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "cannot read history_file"})
	}
	defer src.Close()

	// Read one byte past the limit so truncation is detectable: a cut that
	// lands on a row boundary would otherwise analyze as a complete table.
	content, err := io.ReadAll(io.LimitReader(src, h.cfg.Server.MaxUploadBytes+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "cannot read history_file"})
	}
	if int64(len(content)) > h.cfg.Server.MaxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{
			"error": fmt.Sprintf("history_file exceeds the %d byte upload limit", h.cfg.Server.MaxUploadBytes),
		})
	}
	csvContent := string(content)

	ctxObj, err := analysis.Analyze(csvContent)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("error analyzing history: %v", err)})
	}

	sessionID := session.NewID()
	artifact := filepath.Join(h.artifactDir, fmt.Sprintf("%s_%s_%s.csv",
		sessionID, sanitizeID(studentID), time.Now().Format("20060102_150405")))
	if err := os.WriteFile(artifact, content, 0600); err != nil {
		log.Printf("ERROR: write artifact: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to store history file"})
	}

	sess := &session.Session{
		ID:        sessionID,
		StudentID: studentID,
		CSVPath:   artifact,
		CreatedAt: time.Now().UTC(),
		Context:   ctxObj,
	}
	h.sessions.Put(sess)

	// Best-effort cleanup of stale artifacts, off the request path.
	go h.sweeper.Sweep()

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":             "success",
		"session_id":         sessionID,
		"student_id":         studentID,
		"counseling_context": ctxObj,
		"message":            "History uploaded successfully. Share this session_id with your counselor.",
	})
}

// GetContext returns the counseling context for a session.
func (h *Handler) GetContext(c echo.Context) error {
	sess, ok := h.sessions.Get(c.Param("session_id"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found or expired"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"session_id": sess.ID,
		"student_id": sess.StudentID,
		"created_at": sess.CreatedAt.Format(time.RFC3339),
		"context":    sess.Context,
	})
}

// DeleteSession removes session data for privacy, artifact included.
func (h *Handler) DeleteSession(c echo.Context) error {
	sess, ok := h.sessions.Delete(c.Param("session_id"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
	}

	if sess.CSVPath != "" {
		if err := os.Remove(sess.CSVPath); err != nil && !os.IsNotExist(err) {
			log.Printf("ERROR: remove artifact %s: %v", sess.CSVPath, err)
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":     "deleted",
		"session_id": sess.ID,
	})
}

// Health reports liveness plus session and artifact counts.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":     "healthy",
		"sessions":   h.sessions.Len(),
		"temp_files": h.sweeper.ArtifactCount(),
	})
}

// sanitizeID keeps artifact filenames flat: path separators and other
// suspicious runes in a caller-supplied id become underscores.
func sanitizeID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '.' || r == '@':
			return r
		default:
			return '_'
		}
	}, id)
}
