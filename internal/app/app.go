// Package app wires the components together and runs one invocation:
// either a draw or an archive maintenance pass, then exit.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"raffle/internal/archive"
	"raffle/internal/config"
	"raffle/internal/draw"
	"raffle/internal/logging"
	"raffle/internal/models"
	"raffle/internal/seed"
	"raffle/internal/storage"
	"raffle/internal/version"
)

type App struct {
	cfg      *config.Config
	log      logging.Logger
	out      io.Writer
	in       io.Reader
	deriver  *seed.Deriver
	history  *storage.History
	archiver *archive.Manager
	now      func() time.Time
}

func NewApp(cfg *config.Config) *App {
	log := logging.NewStderr().With("run_id", uuid.NewString())
	history := storage.NewHistory(cfg.ResultsFile)
	return &App{
		cfg:      cfg,
		log:      log,
		out:      os.Stdout,
		in:       os.Stdin,
		deriver:  seed.New(),
		history:  history,
		archiver: archive.NewManager(history, cfg.ArchiveDir, log),
		now:      time.Now,
	}
}

// Run executes one invocation and returns the process exit code.
//
// args are the raw command-line arguments after the program name. The
// subcommand "maintain" selects maintenance mode and tolerates a
// missing payload; draw mode (the default) requires one. A payload with
// "maintenance": true also routes to maintenance, so a scheduler can
// drive both modes through a single payload.
func (a *App) Run(ctx context.Context, args []string) int {
	inv := parseInvocation(args)

	payload, err := a.readPayload(inv)
	if err != nil {
		a.log.Error(ctx, "reading payload", "error", err)
		return 1
	}

	var req models.DrawRequest
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			if inv.maintain {
				// Maintenance tolerates a broken payload; it carries no
				// required fields in this mode.
				a.log.Warn(ctx, "ignoring malformed payload in maintenance mode", "error", err)
			} else {
				a.log.Error(ctx, "malformed payload", "error", err)
				return 1
			}
		}
	} else if !inv.maintain {
		a.log.Error(ctx, "draw mode requires a JSON payload argument (or '-' for stdin)")
		return 1
	}

	if inv.maintain || req.Maintenance {
		return a.runMaintenance(ctx)
	}
	return a.runDraw(ctx, &req)
}

func (a *App) runMaintenance(ctx context.Context) int {
	if err := a.archiver.Run(ctx); err != nil {
		a.log.Error(ctx, "maintenance failed", "error", err)
		return 1
	}
	return 0
}

func (a *App) runDraw(ctx context.Context, req *models.DrawRequest) int {
	if len(req.Participants) == 0 {
		a.log.Info(ctx, "no participants supplied, nothing to draw")
		return 0
	}

	secret := req.SecretSeed
	if secret == "" && a.cfg.AskSecret {
		s, err := a.promptSecret()
		if err != nil {
			a.log.Error(ctx, "reading secret seed", "error", err)
			return 1
		}
		secret = s
	}

	publicSeed, resultSeed := a.deriver.Derive(secret)

	winners, pool, err := draw.Select(req.Participants, req.Excludes, req.Winners(), resultSeed)
	if err != nil {
		a.log.Error(ctx, "selection failed", "error", err)
		return 1
	}

	excludes := req.Excludes
	if excludes == nil {
		excludes = []string{}
	}

	entry := models.ResultEntry{
		ID:               strconv.FormatInt(a.now().Unix(), 10),
		GitVersion:       version.Resolve(),
		Timestamp:        publicSeed,
		Winners:          winners,
		Requester:        req.Requester,
		ParticipantCount: len(pool),
		Participants:     pool,
		Excludes:         excludes,
		ResultSeed:       resultSeed,
		Link:             req.Link,
	}

	// A draw that cannot be persisted must not report success: the
	// record is what makes the result verifiable.
	if err := a.history.Append(entry); err != nil {
		a.log.Error(ctx, "persisting draw result", "error", err)
		return 1
	}

	a.log.Info(ctx, "draw recorded",
		"id", entry.ID, "winners", len(winners), "pool", len(pool), "public_seed", publicSeed)
	fmt.Fprintf(a.out, "Raffle complete. Winners: %s\n", strings.Join(winners, ", "))
	return 0
}

// invocation is the parsed command line, separate from flag parsing
// (which the config package owns).
type invocation struct {
	maintain   bool
	payload    string
	fromStdin  bool
	hasPayload bool
}

// valueFlags are the flags that consume a following argument, so their
// values are not mistaken for the payload.
var valueFlags = map[string]struct{}{
	"-r": {}, "-a": {}, "-c": {}, "-config": {},
}

func parseInvocation(args []string) invocation {
	var inv invocation
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "-" {
			inv.fromStdin = true
			inv.hasPayload = true
			continue
		}
		if strings.HasPrefix(arg, "-") {
			if _, ok := valueFlags[arg]; ok && !strings.Contains(arg, "=") {
				i++
			}
			continue
		}
		if arg == "maintain" {
			inv.maintain = true
			continue
		}
		if !inv.hasPayload {
			inv.payload = arg
			inv.hasPayload = true
		}
	}
	return inv
}

func (a *App) readPayload(inv invocation) (string, error) {
	if !inv.hasPayload {
		return "", nil
	}
	if inv.fromStdin {
		data, err := io.ReadAll(a.in)
		if err != nil {
			return "", fmt.Errorf("read payload from stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return inv.payload, nil
}
