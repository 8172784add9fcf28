package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/studyscope/studyscope/internal/analysis"
)

// Execute implements the go-flags Commander interface for AnalyzeCommand.
func (c *AnalyzeCommand) Execute(args []string) error {
	input := c.Input
	if input == "" && len(args) > 0 {
		input = args[0]
	}
	if input == "" {
		return fmt.Errorf("--input is required")
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	ctx, err := analysis.Analyze(string(data))
	if err != nil {
		return fmt.Errorf("analyze %s: %w", input, err)
	}

	if c.globals != nil && c.globals.JSON {
		return c.printJSON(ctx)
	}
	return c.printHuman(ctx)
}

func (c *AnalyzeCommand) printJSON(ctx *analysis.CounselingContext) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(ctx)
}

func (c *AnalyzeCommand) printHuman(ctx *analysis.CounselingContext) error {
	fmt.Println("Counseling Context")
	fmt.Println("==================")
	fmt.Printf("Total visits:       %d\n", ctx.TotalVisits)
	fmt.Printf("Search queries:     %d\n", ctx.SearchQueriesCount)
	fmt.Printf("Educational visits: %d\n", ctx.EducationalVisits)

	if len(ctx.TopInterests) > 0 {
		fmt.Printf("Top interests:      %s\n", strings.Join(ctx.TopInterests, ", "))
	}
	if len(ctx.EducationalDomains) > 0 {
		fmt.Println()
		fmt.Println("Educational domains:")
		for _, d := range ctx.EducationalDomains {
			fmt.Printf("  %s\n", d)
		}
	}
	if len(ctx.SearchQueries) > 0 {
		fmt.Println()
		fmt.Println("Recent searches:")
		for _, q := range ctx.SearchQueries {
			fmt.Printf("  %s\n", q)
		}
	}

	return nil
}
