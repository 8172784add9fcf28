package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/studyscope/studyscope/internal/browser"
)

type browserJSON struct {
	Name    string `json:"name"`
	Family  string `json:"family"`
	Path    string `json:"path,omitempty"`
	Present bool   `json:"present"`
}

// Execute implements the go-flags Commander interface for BrowsersCommand.
func (c *BrowsersCommand) Execute(args []string) error {
	var entries []browserJSON
	for _, b := range browser.Known() {
		entry := browserJSON{Name: b.Name, Family: string(b.Family)}
		if path, err := b.StorePath(); err == nil {
			entry.Path = path
			if _, statErr := os.Stat(path); statErr == nil {
				entry.Present = true
			}
		}
		entries = append(entries, entry)
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	fmt.Println("Supported Browsers")
	fmt.Println("==================")
	for _, e := range entries {
		status := "not found"
		if e.Present {
			status = "found"
		}
		fmt.Printf("%-10s %-9s %s\n", e.Name, status, e.Path)
	}
	return nil
}
