// Package browser locates installed browser history stores on the local
// machine and drives exports against them.
package browser

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Family distinguishes the two supported history schemas.
type Family string

const (
	FamilyChromium Family = "chromium"
	FamilyFirefox  Family = "firefox"
)

// Browser pairs a display name with its schema family.
type Browser struct {
	Name   string
	Family Family
}

// ErrUnknownBrowser means the requested browser name is not one of the
// supported set.
var ErrUnknownBrowser = errors.New("unknown browser")

// Known returns the supported browsers in auto-detection order.
func Known() []Browser {
	return []Browser{
		{Name: "Chrome", Family: FamilyChromium},
		{Name: "Chromium", Family: FamilyChromium},
		{Name: "Brave", Family: FamilyChromium},
		{Name: "Edge", Family: FamilyChromium},
		{Name: "Firefox", Family: FamilyFirefox},
	}
}

// Lookup resolves a case-insensitive browser name to its Browser entry.
func Lookup(name string) (Browser, error) {
	for _, b := range Known() {
		if strings.EqualFold(b.Name, name) {
			return b, nil
		}
	}
	return Browser{}, ErrUnknownBrowser
}

// StorePath returns the expected history database path for a browser on
// this OS. For Firefox this scans profile directories for places.sqlite.
// The path may not exist; callers check with os.Stat or let the exporter
// surface ErrStoreNotFound.
func (b Browser) StorePath() (string, error) {
	if b.Family == FamilyFirefox {
		return findFirefoxDB()
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	switch runtime.GOOS {
	case "darwin":
		base := filepath.Join(home, "Library", "Application Support")
		switch b.Name {
		case "Chrome":
			return filepath.Join(base, "Google/Chrome/Default/History"), nil
		case "Chromium":
			return filepath.Join(base, "Chromium/Default/History"), nil
		case "Brave":
			return filepath.Join(base, "BraveSoftware/Brave-Browser/Default/History"), nil
		case "Edge":
			return filepath.Join(base, "Microsoft Edge/Default/History"), nil
		}
	case "windows":
		base := os.Getenv("LOCALAPPDATA")
		switch b.Name {
		case "Chrome":
			return filepath.Join(base, "Google/Chrome/User Data/Default/History"), nil
		case "Chromium":
			return filepath.Join(base, "Chromium/User Data/Default/History"), nil
		case "Brave":
			return filepath.Join(base, "BraveSoftware/Brave-Browser/User Data/Default/History"), nil
		case "Edge":
			return filepath.Join(base, "Microsoft/Edge/User Data/Default/History"), nil
		}
	default: // linux and friends
		base := filepath.Join(home, ".config")
		switch b.Name {
		case "Chrome":
			return filepath.Join(base, "google-chrome/Default/History"), nil
		case "Chromium":
			return filepath.Join(base, "chromium/Default/History"), nil
		case "Brave":
			return filepath.Join(base, "BraveSoftware/Brave-Browser/Default/History"), nil
		case "Edge":
			return filepath.Join(base, "microsoft-edge/Default/History"), nil
		}
	}

	return "", ErrUnknownBrowser
}

// firefoxProfilesDir returns the per-OS Firefox profiles directory.
func firefoxProfilesDir() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support", "Firefox", "Profiles"), nil
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Mozilla", "Firefox", "Profiles"), nil
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".mozilla", "firefox"), nil
	}
}

// findFirefoxDB scans the profiles directory for a default profile that
// carries a places.sqlite.
func findFirefoxDB() (string, error) {
	dir, err := firefoxProfilesDir()
	if err != nil {
		return "", err
	}
	return findFirefoxDBIn(dir)
}

func findFirefoxDBIn(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if !e.IsDir() || !strings.Contains(strings.ToLower(e.Name()), "default") {
			continue
		}
		places := filepath.Join(dir, e.Name(), "places.sqlite")
		if _, err := os.Stat(places); err == nil {
			return places, nil
		}
	}
	return "", os.ErrNotExist
}
