package model

import "time"

// IngestRun is the audit row for one batch invocation.
type IngestRun struct {
	ID         string
	Source     string
	StartedAt  time.Time
	FinishedAt time.Time
	Total      int
	Created    int
	Updated    int
	Skipped    int
	Failed     int
}
