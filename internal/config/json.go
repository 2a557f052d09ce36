package config

import (
	"encoding/json"
	"os"

	"raffle/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling; parsed
// values are copied into the runtime Config.
type JsonConfig struct {
	ResultsFile *string `json:"results_file"`
	ArchiveDir  *string `json:"archive_dir"`
	AskSecret   *bool   `json:"ask_secret"`
}

// parseJson overlays Config with values loaded from a JSON file named
// by the -c/-config flag. Absent flag means no JSON is loaded. Fields
// missing from the file keep their current values.
//
// Read or unmarshal errors panic: a config file that was explicitly
// pointed at but cannot be used is an operator mistake, unlike the
// always-tolerated history store reads.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ResultsFile != nil {
		cfg.ResultsFile = *jc.ResultsFile
	}
	if jc.ArchiveDir != nil {
		cfg.ArchiveDir = *jc.ArchiveDir
	}
	if jc.AskSecret != nil {
		cfg.AskSecret = *jc.AskSecret
	}
}
