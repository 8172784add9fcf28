package browser

import (
	"context"
	"errors"
	"fmt"

	"github.com/studyscope/studyscope/internal/history"
)

// ErrNoHistory means no installed browser produced an exportable store.
var ErrNoHistory = errors.New("no browser history found")

// Export exports the history of one named browser. A missing store is a
// fatal, non-retriable failure for that browser and wraps
// history.ErrStoreNotFound so callers can tell "not installed" from
// "present but unreadable".
func Export(ctx context.Context, name string, w history.Window) (*history.Table, error) {
	b, err := Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBrowser, name)
	}
	return exportOne(ctx, b, w)
}

// ExportAny tries each known browser in order and returns the first
// successful export along with the browser's name. Per-browser failures
// are expected while probing (most machines have one browser, not five)
// and only surface when every browser fails.
func ExportAny(ctx context.Context, w history.Window) (*history.Table, string, error) {
	if err := w.Validate(); err != nil {
		return nil, "", err
	}
	for _, b := range Known() {
		table, err := exportOne(ctx, b, w)
		if err != nil {
			continue
		}
		return table, b.Name, nil
	}
	return nil, "", ErrNoHistory
}

func exportOne(ctx context.Context, b Browser, w history.Window) (*history.Table, error) {
	path, err := b.StorePath()
	if err != nil {
		return nil, fmt.Errorf("%w: locate %s store: %v", history.ErrStoreNotFound, b.Name, err)
	}

	switch b.Family {
	case FamilyFirefox:
		table, err := history.ExportFirefox(ctx, path, w)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", b.Name, err)
		}
		return table, nil
	default:
		table, err := history.ExportChromium(ctx, path, w)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", b.Name, err)
		}
		return table, nil
	}
}
