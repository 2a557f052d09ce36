// Package archive rotates completed calendar quarters of draw history
// out of the live store into dated archive files and enforces the
// retention window on old archives.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"raffle/internal/logging"
	"raffle/internal/models"
	"raffle/internal/storage"
)

// RefClockOffset shifts UTC wall time into the reference calendar used
// for quarter boundaries. It is a fixed constant, never the host
// timezone, so the same store archives identically in any deployment.
const RefClockOffset = 9 * time.Hour

// RetentionYears is how many years of archives are kept. The sweep
// deletes archives for the same quarter number this many years before
// the quarter currently being archived.
const RetentionYears = 2

// Manager performs one maintenance pass over a history store and its
// archive directory.
//
// Maintenance is expected to run at most once per quarter per store
// state: merging into an existing archive concatenates without
// deduplicating by id, so re-running against the same unarchived
// entries would duplicate them in the archive.
type Manager struct {
	history *storage.History
	dir     string
	log     logging.Logger
	now     func() time.Time
}

func NewManager(history *storage.History, dir string, log logging.Logger) *Manager {
	return &Manager{history: history, dir: dir, log: log, now: time.Now}
}

// NewManagerWithClock injects the wall clock, for tests.
func NewManagerWithClock(history *storage.History, dir string, log logging.Logger, now func() time.Time) *Manager {
	return &Manager{history: history, dir: dir, log: log, now: now}
}

// FileName is the archive file name for a quarter. The zero-padded year
// and single quarter digit make lexicographic order equal chronological
// order, which the retention sweep relies on.
func FileName(year, quarter int) string {
	return fmt.Sprintf("archive_%04d_Q%d.json", year, quarter)
}

// target describes the quarter a maintenance run archives.
type target struct {
	year       int
	quarter    int
	monthStart time.Month // inclusive
	monthEnd   time.Month // exclusive
}

// resolveTarget maps the reference-clock instant to the completed
// quarter to archive. Only the four months right after a quarter
// boundary trigger work; any other month is a no-op.
func resolveTarget(ref time.Time) (target, bool) {
	year := ref.Year()
	switch ref.Month() {
	case time.January:
		return target{year: year - 1, quarter: 4, monthStart: time.October, monthEnd: time.December + 1}, true
	case time.April:
		return target{year: year, quarter: 1, monthStart: time.January, monthEnd: time.April}, true
	case time.July:
		return target{year: year, quarter: 2, monthStart: time.April, monthEnd: time.July}, true
	case time.October:
		return target{year: year, quarter: 3, monthStart: time.July, monthEnd: time.October}, true
	default:
		return target{}, false
	}
}

// inQuarter reports whether a recorded public-seed timestamp falls in
// the target quarter. Unparseable timestamps are conservatively kept in
// the live store rather than silently lost.
func (t target) inQuarter(timestamp string) bool {
	ts, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return false
	}
	return ts.Year() == t.year && ts.Month() >= t.monthStart && ts.Month() < t.monthEnd
}

// Run executes one maintenance pass: retention sweep, then moving the
// target quarter's entries from the live store into its archive file.
//
// An archive file write happens before the live store rewrite, so a
// crash between the two can leave entries present in both places. That
// window is accepted; the reverse order could lose them.
func (m *Manager) Run(ctx context.Context) error {
	ref := m.now().UTC().Add(RefClockOffset)

	t, ok := resolveTarget(ref)
	if !ok {
		m.log.Info(ctx, "maintenance out of cadence, nothing to do", "month", int(ref.Month()))
		return nil
	}
	m.log.Info(ctx, "archiving quarter", "year", t.year, "quarter", t.quarter)

	if err := m.sweepRetention(ctx, t); err != nil {
		return err
	}

	entries := m.history.Load()
	if len(entries) == 0 {
		m.log.Info(ctx, "history store empty, nothing to archive")
		return nil
	}

	var archived, kept []models.ResultEntry
	for _, e := range entries {
		if t.inQuarter(e.Timestamp) {
			archived = append(archived, e)
		} else {
			kept = append(kept, e)
		}
	}
	if len(archived) == 0 {
		m.log.Info(ctx, "no entries in target quarter", "year", t.year, "quarter", t.quarter)
		return nil
	}

	path := filepath.Join(m.dir, FileName(t.year, t.quarter))
	merged := append(storage.ReadEntries(path), archived...)
	if err := storage.WriteEntries(path, merged); err != nil {
		return fmt.Errorf("write archive %s: %w", path, err)
	}

	if err := m.history.Save(kept); err != nil {
		return fmt.Errorf("rewrite history store: %w", err)
	}

	m.log.Info(ctx, "quarter archived",
		"archive", path, "moved", len(archived), "kept", len(kept))
	return nil
}

// sweepRetention deletes archives older than the retention window. The
// boundary is the file name for the same quarter RetentionYears before
// the target; a plain string comparison suffices because the names sort
// chronologically. The boundary file itself is retained.
func (m *Manager) sweepRetention(ctx context.Context, t target) error {
	boundary := FileName(t.year-RetentionYears, t.quarter)

	dirEntries, err := os.ReadDir(m.dir)
	if err != nil {
		// No archive directory yet means nothing to sweep.
		return nil
	}

	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || !strings.HasPrefix(name, "archive_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		if name >= boundary {
			continue
		}
		path := filepath.Join(m.dir, name)
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("delete expired archive %s: %w", path, err)
		}
		m.log.Info(ctx, "deleted expired archive", "archive", path)
	}
	return nil
}
