// Package model defines shared data structures.
package model

import "time"

// Config defines settings for one typing test.
type Config struct {
	DurationSeconds int
	Race            bool
	Lang            string
	Identity        string
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Identity    string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// WPMSample is one per-second point of a session's WPM history.
type WPMSample struct {
	TimeS int
	WPM   int
}

// Result is the immutable outcome of a finished session.
type Result struct {
	StartedAt       time.Time
	EndedAt         time.Time
	WPM             int
	Accuracy        int
	DurationSeconds int
	History         []WPMSample
}

// StoredResult is a persisted result row.
type StoredResult struct {
	ID              int64
	Identity        string
	EndedAt         time.Time
	WPM             int
	Accuracy        int
	DurationSeconds int
	Excerpt         string
}

// Opponent is a read-only projection target for race mode.
type Opponent struct {
	WPM             int
	DisplayName     string
	Accuracy        int
	DurationSeconds int
}
