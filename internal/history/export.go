package history

import (
	"context"
	"fmt"
)

// ExportChromium snapshots the Chromium-family store at path, exports the
// requested window, and removes the snapshot. Errors are fatal for this
// store: a missing file wraps ErrStoreNotFound, anything else means the
// store is present but unreadable.
func ExportChromium(ctx context.Context, path string, w Window) (*Table, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return exportSnapshot(ctx, path, w, OpenChromium)
}

// ExportFirefox snapshots the Firefox places database at path, detects its
// schema shape, exports the requested window, and removes the snapshot.
func ExportFirefox(ctx context.Context, path string, w Window) (*Table, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return exportSnapshot(ctx, path, w, OpenFirefox)
}

func exportSnapshot(ctx context.Context, path string, w Window, open func(string) (Source, error)) (*Table, error) {
	snap, cleanup, err := Snapshot(path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	src, err := open(snap)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	table, err := src.Export(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", path, err)
	}
	return table, nil
}
