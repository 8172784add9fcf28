package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// ExportCommand — export a browser's recent history as canonical CSV.
type ExportCommand struct {
	Browser  string `long:"browser" description:"Browser to export: chrome, chromium, brave, edge, firefox (auto-detect if omitted)"`
	DaysBack int    `long:"days-back" description:"Lookback window in days" default:"7"`
	Output   string `long:"output" description:"Write CSV to this file instead of stdout"`

	globals *GlobalFlags
	version string
}

// AnalyzeCommand — compute the counseling context for an exported CSV.
type AnalyzeCommand struct {
	Input string `long:"input" description:"Path to an exported history CSV (required)"`

	globals *GlobalFlags
	version string
}

// BrowsersCommand — list supported browsers and detected history stores.
type BrowsersCommand struct {
	globals *GlobalFlags
	version string
}

// ServeCommand — run the StudyScope HTTP service.
type ServeCommand struct {
	Host string `long:"host" description:"Override listen host"`
	Port int    `long:"port" description:"Override listen port"`

	globals *GlobalFlags
	version string
}
