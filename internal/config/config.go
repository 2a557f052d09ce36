// Package config handles configuration for the raffle tool, including
// defaults, JSON overlay, and command-line flags.
package config

// Config holds runtime settings.
//
// Fields:
//   - ResultsFile: path of the live history store (JSON array).
//   - ArchiveDir: directory holding quarterly archive files.
//   - AskSecret: prompt for the secret seed on the terminal (no echo)
//     when the payload does not carry one.
type Config struct {
	ResultsFile string
	ArchiveDir  string
	AskSecret   bool
}

// LoadDefaults populates c with the paths the original deployment used.
func (c *Config) LoadDefaults() {
	c.ResultsFile = "data/results.json"
	c.ArchiveDir = "data/archive"
	c.AskSecret = false
}

// LoadConfig builds a Config by applying defaults, then overlaying
// values from an optional JSON file and finally from command-line
// flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
