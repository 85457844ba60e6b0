// Package model defines shared data structures.
package model

import "time"

// Config defines game settings after merging the config file and flags.
type Config struct {
	Mode                string
	TargetScore         int
	MistakePenalty      string
	InitialResetCounter int
	Countdown           int
	CatalogPath         string
	History             bool

	TextSource    string
	SentencesPath string
	WordListPath  string
	TextCount     int
	CapsPct       float64
	PunctPct      float64
	PunctSet      string
}

// HistoryConfig defines filters for the history report.
type HistoryConfig struct {
	Mode  string
	Since *time.Time
	Last  int
}

// RunRecord captures a completed round.
type RunRecord struct {
	StartedAt      time.Time
	EndedAt        time.Time
	Mode           string
	TargetScore    int
	MistakePenalty string
	FinalScore     int
	ElapsedSeconds int
	Correct        int
	Mistakes       int
	PeakWPM        int
}

// Purchase is an upgrade bought during a run.
type Purchase struct {
	UpgradeID      int
	Cost           int
	ElapsedSeconds int
}

// RunAggregate summarizes a stored run for reporting.
type RunAggregate struct {
	RunID          int64
	EndedAt        time.Time
	Mode           string
	FinalScore     int
	ElapsedSeconds int
	Correct        int
	Mistakes       int
	PeakWPM        int
	Upgrades       int
}

// UpgradeTiming aggregates when an upgrade tends to be bought.
type UpgradeTiming struct {
	UpgradeID         int
	Purchases         int
	AvgElapsedSeconds float64
}
