// Package store handles SQLite persistence of finished runs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/typetycoon/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed width and always UTC so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// Store wraps SQLite access for run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			mode TEXT NOT NULL,
			target_score INTEGER NOT NULL,
			mistake_penalty TEXT NOT NULL,
			final_score INTEGER NOT NULL,
			elapsed_seconds INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			mistakes INTEGER NOT NULL,
			peak_wpm INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_purchases (
			run_id INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			upgrade_id INTEGER NOT NULL,
			cost INTEGER NOT NULL,
			elapsed_seconds INTEGER NOT NULL,
			PRIMARY KEY (run_id, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ended_at ON runs(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_run_purchases_upgrade ON run_purchases(upgrade_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a finished run and the upgrades bought during it.
func (s *Store) InsertRun(ctx context.Context, run model.RunRecord, purchases []model.Purchase) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, ended_at, mode, target_score, mistake_penalty, final_score, elapsed_seconds, correct, mistakes, peak_wpm)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		formatTime(run.StartedAt),
		formatTime(run.EndedAt),
		run.Mode,
		run.TargetScore,
		run.MistakePenalty,
		run.FinalScore,
		run.ElapsedSeconds,
		run.Correct,
		run.Mistakes,
		run.PeakWPM,
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(purchases) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO run_purchases (run_id, seq, upgrade_id, cost, elapsed_seconds)
			 VALUES (?, ?, ?, ?, ?)`)
		if perr != nil {
			err = perr
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for i, p := range purchases {
			if _, err = stmt.ExecContext(ctx, id, i, p.UpgradeID, p.Cost, p.ElapsedSeconds); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListRuns returns runs filtered by cfg, oldest first.
func (s *Store) ListRuns(ctx context.Context, cfg model.HistoryConfig) ([]model.RunAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Mode != "" {
		clauses = append(clauses, "r.mode = ?")
		args = append(args, cfg.Mode)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "r.ended_at >= ?")
		args = append(args, formatTime(*cfg.Since))
	}
	query := fmt.Sprintf(`SELECT r.id, r.ended_at, r.mode, r.final_score, r.elapsed_seconds, r.correct, r.mistakes, r.peak_wpm,
		(SELECT COUNT(*) FROM run_purchases p WHERE p.run_id = r.id) AS upgrades
		FROM runs r
		WHERE %s
		ORDER BY r.ended_at ASC, r.id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunAggregate
	for rows.Next() {
		var agg model.RunAggregate
		var endedAt string
		if err := rows.Scan(&agg.RunID, &endedAt, &agg.Mode, &agg.FinalScore, &agg.ElapsedSeconds, &agg.Correct, &agg.Mistakes, &agg.PeakWPM, &agg.Upgrades); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		runs = append(runs, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(runs) > cfg.Last {
		runs = runs[len(runs)-cfg.Last:]
	}
	return runs, nil
}

// UpgradeTimings aggregates purchase times per upgrade across runs.
func (s *Store) UpgradeTimings(ctx context.Context, runIDs []int64) ([]model.UpgradeTiming, error) {
	if len(runIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(runIDs))
	args := make([]any, len(runIDs))
	for i, id := range runIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT upgrade_id, COUNT(*) AS purchases, AVG(elapsed_seconds) AS avg_elapsed
		FROM run_purchases
		WHERE run_id IN (%s)
		GROUP BY upgrade_id
		ORDER BY avg_elapsed ASC, upgrade_id ASC`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.UpgradeTiming
	for rows.Next() {
		var timing model.UpgradeTiming
		if err := rows.Scan(&timing.UpgradeID, &timing.Purchases, &timing.AvgElapsedSeconds); err != nil {
			return nil, err
		}
		result = append(result, timing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
