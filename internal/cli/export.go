package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/studyscope/studyscope/internal/browser"
	"github.com/studyscope/studyscope/internal/history"
)

// Execute implements the go-flags Commander interface for ExportCommand.
func (c *ExportCommand) Execute(args []string) error {
	ctx := context.Background()
	window := history.Window{DaysBack: c.DaysBack}

	var (
		table    *history.Table
		detected string
		err      error
	)
	if c.Browser != "" {
		table, err = browser.Export(ctx, c.Browser, window)
		detected = c.Browser
		if b, lookupErr := browser.Lookup(c.Browser); lookupErr == nil {
			detected = b.Name
		}
	} else {
		table, detected, err = browser.ExportAny(ctx, window)
	}
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.Verbose {
		fmt.Fprintf(os.Stderr, "Exported %d visit(s) from %s\n", len(table.Records), detected)
	}

	csvText := table.CSV()
	if c.Output != "" {
		if err := os.WriteFile(c.Output, []byte(csvText), 0600); err != nil {
			return fmt.Errorf("write %s: %w", c.Output, err)
		}
		return nil
	}

	fmt.Print(csvText)
	return nil
}
