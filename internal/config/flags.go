package config

import (
	"flag"
	"os"

	"raffle/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-r string   path of the history store file
//	-a string   archive directory
//	-s          prompt for the secret seed on the terminal
//
// The arguments are filtered through flagx.FilterArgs first so the
// subcommand and the positional JSON payload never reach the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-r", "-a", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ResultsFile, "r", cfg.ResultsFile, "path of the history store file")
	fs.StringVar(&cfg.ArchiveDir, "a", cfg.ArchiveDir, "archive directory")
	fs.BoolVar(&cfg.AskSecret, "s", cfg.AskSecret, "prompt for the secret seed (no echo)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
