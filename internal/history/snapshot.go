package history

import (
	"fmt"
	"io"
	"os"
)

// Snapshot copies the live history database at path into a private
// temporary file and returns its path plus a cleanup func. Browsers keep
// their stores locked while running, so every export works on its own
// copy; the cleanup must run regardless of export success.
func Snapshot(path string) (string, func(), error) {
	src, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("%w: %s", ErrStoreNotFound, path)
		}
		return "", nil, fmt.Errorf("open history store: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "studyscope-history-*.db")
	if err != nil {
		return "", nil, fmt.Errorf("create snapshot: %w", err)
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("copy history store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("flush snapshot: %w", err)
	}

	cleanup := func() { os.Remove(tmp.Name()) }
	return tmp.Name(), cleanup, nil
}
