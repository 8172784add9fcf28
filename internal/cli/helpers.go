package cli

import (
	"github.com/studyscope/studyscope/internal/config"
)

// loadConfig resolves the effective configuration: an explicit --config
// path must exist, otherwise the default path is loaded or created.
func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	if globals != nil && globals.Config != "" {
		return config.Load(globals.Config)
	}
	return config.LoadOrCreate()
}
