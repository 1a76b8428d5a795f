package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/j-veylop/focusflow-insights/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

var timeFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 -0700 MST",
	"2006-01-02 15:04:05 +0000 UTC",
}

func parseTimeString(s string) (time.Time, bool) {
	for _, format := range timeFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SaveInsightRun stores a run. Saving the same ID twice replaces the row.
func (db *DB) SaveInsightRun(run models.InsightRun) error {
	query := `
		INSERT OR REPLACE INTO insight_runs (
			id, generated_at, productivity_score, burnout_level,
			burnout_score, flag_count, error, payload
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	generatedAt := run.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	_, err := db.ExecContext(context.Background(), query,
		run.ID,
		generatedAt.UTC().Format(sqlTimeFormat),
		run.ProductivityScore,
		string(run.BurnoutLevel),
		run.BurnoutScore,
		run.FlagCount,
		nullString(run.Error),
		string(run.Payload),
	)
	if err != nil {
		return fmt.Errorf("failed to save insight run: %w", err)
	}
	return nil
}

const runColumns = `id, generated_at, productivity_score, burnout_level,
	burnout_score, flag_count, error, payload`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (models.InsightRun, error) {
	var run models.InsightRun
	var generatedAt, level, payload string
	var errStr sql.NullString

	err := row.Scan(
		&run.ID,
		&generatedAt,
		&run.ProductivityScore,
		&level,
		&run.BurnoutScore,
		&run.FlagCount,
		&errStr,
		&payload,
	)
	if err != nil {
		return run, err
	}

	if t, ok := parseTimeString(generatedAt); ok {
		run.GeneratedAt = t
	}
	run.BurnoutLevel = models.RiskLevel(level)
	run.Error = errStr.String
	run.Payload = []byte(payload)
	return run, nil
}

// GetRecentRuns returns up to limit runs, newest first.
func (db *DB) GetRecentRuns(limit int) ([]models.InsightRun, error) {
	query := `SELECT ` + runColumns + `
		FROM insight_runs
		ORDER BY generated_at DESC
		LIMIT ?
	`

	rows, err := db.QueryContext(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []models.InsightRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan insight run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// GetInsightRun returns the run with the given ID.
func (db *DB) GetInsightRun(id string) (models.InsightRun, error) {
	query := `SELECT ` + runColumns + ` FROM insight_runs WHERE id = ?`

	run, err := scanRun(db.QueryRowContext(context.Background(), query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return run, fmt.Errorf("insight run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return run, fmt.Errorf("failed to get insight run: %w", err)
	}
	return run, nil
}

// CountInsightRuns returns the number of stored runs.
func (db *DB) CountInsightRuns() (int, error) {
	var count int
	err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM insight_runs").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count insight runs: %w", err)
	}
	return count, nil
}

// PruneRuns deletes all but the newest keep runs and returns how many
// rows were removed.
func (db *DB) PruneRuns(keep int) (int64, error) {
	query := `
		DELETE FROM insight_runs
		WHERE id NOT IN (
			SELECT id FROM insight_runs ORDER BY generated_at DESC LIMIT ?
		)
	`
	result, err := db.ExecContext(context.Background(), query, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune insight runs: %w", err)
	}
	return result.RowsAffected()
}

// UpsertDailyScore records the score for day, replacing an earlier value.
func (db *DB) UpsertDailyScore(day time.Time, score float64) error {
	query := `
		INSERT INTO daily_scores (day, productivity_score, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(day) DO UPDATE SET
			productivity_score = excluded.productivity_score,
			updated_at = excluded.updated_at
	`

	_, err := db.ExecContext(context.Background(), query,
		day.Format(models.DayLayout),
		score,
		time.Now().UTC().Format(sqlTimeFormat),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert daily score: %w", err)
	}
	return nil
}

// GetDailyScores returns stored scores in ascending day order. A positive
// days limits the result to that trailing window.
func (db *DB) GetDailyScores(days int) ([]models.DailyScore, error) {
	query := `SELECT day, productivity_score, updated_at FROM daily_scores `
	var args []any
	if days > 0 {
		query += sqlDayWindowClause + " "
		args = append(args, fmt.Sprintf("-%d days", days))
	}
	query += "ORDER BY day ASC"

	rows, err := db.QueryContext(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var scores []models.DailyScore
	for rows.Next() {
		var s models.DailyScore
		var updatedAt sql.NullString
		if err := rows.Scan(&s.Day, &s.Score, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan daily score: %w", err)
		}
		if t, ok := parseTimeString(updatedAt.String); ok {
			s.UpdatedAt = t
		}
		scores = append(scores, s)
	}

	return scores, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
