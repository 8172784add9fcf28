// Package cli wires the StudyScope subcommands: export, analyze,
// browsers, and serve.
package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Export   *ExportCommand
	Analyze  *AnalyzeCommand
	Browsers *BrowsersCommand
	Serve    *ServeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "studyscope"
	parser.LongDescription = "Export local browser history and build counseling interest profiles from it."

	cmds := &commands{
		Export:   &ExportCommand{globals: &globals, version: version},
		Analyze:  &AnalyzeCommand{globals: &globals, version: version},
		Browsers: &BrowsersCommand{globals: &globals, version: version},
		Serve:    &ServeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("export", "Export browser history as CSV", "Export a browser's recent history in the canonical CSV form.", cmds.Export)
	parser.AddCommand("analyze", "Analyze an exported history CSV", "Compute the counseling context for an exported history CSV.", cmds.Analyze)
	parser.AddCommand("browsers", "List detected browser history stores", "List supported browsers and whether a history store was found.", cmds.Browsers)
	parser.AddCommand("serve", "Start the StudyScope HTTP service", "Start the HTTP service for history download, upload, and counseling contexts.", cmds.Serve)

	return parser, &globals, cmds
}

// Run is the main entry point for the StudyScope CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("studyscope %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
