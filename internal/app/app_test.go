package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raffle/internal/archive"
	"raffle/internal/config"
	"raffle/internal/draw"
	"raffle/internal/logging"
	"raffle/internal/seed"
	"raffle/internal/storage"
)

func testApp(t *testing.T) (*App, *storage.History, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()

	cfg := &config.Config{
		ResultsFile: filepath.Join(dir, "results.json"),
		ArchiveDir:  filepath.Join(dir, "archive"),
	}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	hist := storage.NewHistory(cfg.ResultsFile)
	out := &bytes.Buffer{}

	a := &App{
		cfg:      cfg,
		log:      log,
		out:      out,
		in:       strings.NewReader(""),
		deriver:  seed.New(),
		history:  hist,
		archiver: archive.NewManager(hist, cfg.ArchiveDir, log),
		now:      time.Now,
	}
	return a, hist, out
}

func TestRun_DrawRecordsVerifiableResult(t *testing.T) {
	a, hist, out := testApp(t)

	payload := `{"secret_seed":"x","participants":["b","a","c","a"],"excludes":["c"],"winner_count":2,"link":"https://example.com/raffle/1"}`
	code := a.Run(context.Background(), []string{payload})
	require.Equal(t, 0, code)

	entries := hist.Load()
	require.Len(t, entries, 1)
	e := entries[0]

	assert.Equal(t, []string{"a", "b"}, e.Participants)
	assert.Equal(t, 2, e.ParticipantCount)
	assert.Equal(t, []string{"c"}, e.Excludes)
	assert.ElementsMatch(t, []string{"a", "b"}, e.Winners)
	assert.Equal(t, "https://example.com/raffle/1", e.Link)
	assert.NotEmpty(t, e.ID)
	assert.NotEmpty(t, e.GitVersion)

	// Third-party verification: the recorded seeds reproduce the result.
	assert.Equal(t, seed.Result("x", e.Timestamp), e.ResultSeed)
	winners, pool, err := draw.Select(e.Participants, e.Excludes, 2, e.ResultSeed)
	require.NoError(t, err)
	assert.Equal(t, e.Winners, winners)
	assert.Equal(t, e.Participants, pool)

	assert.Contains(t, out.String(), "Raffle complete. Winners: ")
	for _, w := range e.Winners {
		assert.Contains(t, out.String(), w)
	}
}

func TestRun_WinnerCountDefaultsToOne(t *testing.T) {
	a, hist, _ := testApp(t)

	code := a.Run(context.Background(), []string{`{"secret_seed":"x","participants":["a","b","c"]}`})
	require.Equal(t, 0, code)

	entries := hist.Load()
	require.Len(t, entries, 1)
	assert.Len(t, entries[0].Winners, 1)
}

func TestRun_EmptyParticipantsIsSuccessfulNoOp(t *testing.T) {
	a, hist, out := testApp(t)

	code := a.Run(context.Background(), []string{`{"secret_seed":"x","participants":[]}`})
	assert.Equal(t, 0, code)
	assert.Empty(t, hist.Load())
	assert.Empty(t, out.String())

	_, err := os.Stat(a.cfg.ResultsFile)
	assert.True(t, os.IsNotExist(err), "no-op draw must not create the store")
}

func TestRun_MalformedPayloadFailsDrawMode(t *testing.T) {
	a, _, _ := testApp(t)
	assert.Equal(t, 1, a.Run(context.Background(), []string{"{not json"}))
}

func TestRun_MissingPayloadFailsDrawMode(t *testing.T) {
	a, _, _ := testApp(t)
	assert.Equal(t, 1, a.Run(context.Background(), nil))
}

func TestRun_PayloadFromStdin(t *testing.T) {
	a, hist, _ := testApp(t)
	a.in = strings.NewReader(`{"secret_seed":"x","participants":["a","b"]}` + "\n")

	code := a.Run(context.Background(), []string{"-"})
	require.Equal(t, 0, code)
	assert.Len(t, hist.Load(), 1)
}

func TestRun_MaintainToleratesMissingPayload(t *testing.T) {
	a, _, _ := testApp(t)
	assert.Equal(t, 0, a.Run(context.Background(), []string{"maintain"}))
}

func TestRun_MaintainToleratesMalformedPayload(t *testing.T) {
	a, _, _ := testApp(t)
	assert.Equal(t, 0, a.Run(context.Background(), []string{"maintain", "{not json"}))
}

func TestRun_MaintenanceFlagRoutesToMaintenance(t *testing.T) {
	a, hist, _ := testApp(t)

	code := a.Run(context.Background(), []string{`{"maintenance":true,"participants":["a"]}`})
	assert.Equal(t, 0, code)
	assert.Empty(t, hist.Load(), "maintenance mode must not draw")
}

func TestParseInvocation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want invocation
	}{
		{"payload only", []string{`{"a":1}`}, invocation{payload: `{"a":1}`, hasPayload: true}},
		{"maintain no payload", []string{"maintain"}, invocation{maintain: true}},
		{"maintain with payload", []string{"maintain", `{}`}, invocation{maintain: true, payload: `{}`, hasPayload: true}},
		{"stdin marker", []string{"-"}, invocation{fromStdin: true, hasPayload: true}},
		{"flags skipped", []string{"-r", "other.json", `{}`}, invocation{payload: `{}`, hasPayload: true}},
		{"equals-form flag skipped", []string{"-r=other.json", `{}`}, invocation{payload: `{}`, hasPayload: true}},
		{"bool flag does not eat payload", []string{"-s", `{}`}, invocation{payload: `{}`, hasPayload: true}},
		{"nothing", nil, invocation{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parseInvocation(tc.args))
		})
	}
}
