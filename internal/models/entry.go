// Package models defines the draw request payload and the persisted
// result record.
package models

// DrawRequest is the trigger payload for a single invocation. It lives
// only for the duration of that invocation and is never persisted.
type DrawRequest struct {
	SecretSeed   string   `json:"secret_seed"`
	Participants []string `json:"participants"`
	Excludes     []string `json:"excludes"`
	WinnerCount  *int     `json:"winner_count"`
	Requester    string   `json:"requester,omitempty"`
	Link         string   `json:"link,omitempty"`
	Maintenance  bool     `json:"maintenance,omitempty"`
}

// Winners returns the requested winner count, defaulting to 1 when the
// payload omitted the field.
func (r *DrawRequest) Winners() int {
	if r.WinnerCount == nil {
		return 1
	}
	return *r.WinnerCount
}

// ResultEntry is one completed draw as recorded in the history store and
// in archive files. The JSON field names are part of the recorded data
// format and must not change: third parties re-verify old draws against
// these records.
type ResultEntry struct {
	ID         string `json:"id"`
	GitVersion string `json:"git_version"`

	// Timestamp is the public seed: the RFC 3339 UTC instant that salted
	// the key derivation for this draw.
	Timestamp string `json:"timestamp"`

	Winners []string `json:"winners"`

	Requester string `json:"requester,omitempty"`

	// Participants is the final eligible pool (deduplicated, exclusions
	// removed, sorted), not the raw payload list.
	ParticipantCount int      `json:"participant_count"`
	Participants     []string `json:"participants"`

	Excludes []string `json:"excludes"`

	// ResultSeed is the derived seed that drove selection. Together with
	// the secret and Timestamp it lets anyone recompute Winners.
	ResultSeed string `json:"result_seed"`

	Link string `json:"link,omitempty"`
}
