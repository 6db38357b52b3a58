package runstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/metalake/readiness/pkg/contracts"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists run lists in sqlite, one row per run. Rows for
// a key are replaced wholesale on save; the run list is the unit of
// persistence, matching the repository contract.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository wraps an opened database handle and applies the
// schema migration.
func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository) migrate() error {
	query := `
    CREATE TABLE IF NOT EXISTS evaluation_runs (
        scope_key TEXT NOT NULL,
        run_id TEXT NOT NULL,
        capability_id TEXT NOT NULL,
        scope_id TEXT NOT NULL,
        run_number INTEGER NOT NULL,
        timestamp DATETIME NOT NULL,
        is_baseline INTEGER NOT NULL DEFAULT 0,
        readiness REAL NOT NULL DEFAULT 0,
        gaps JSON,
        evidence JSON,
        PRIMARY KEY (scope_key, run_number)
    );`
	_, err := r.db.ExecContext(context.Background(), query)
	return err
}

// LoadRuns returns the stored run list for a key in run-number order.
func (r *SQLiteRepository) LoadRuns(ctx context.Context, key string) ([]contracts.EvaluationRun, error) {
	query := `
        SELECT run_id, capability_id, scope_id, run_number, timestamp, is_baseline, readiness, gaps, evidence
        FROM evaluation_runs
        WHERE scope_key = ?
        ORDER BY run_number ASC
    `
	rows, err := r.db.QueryContext(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("load runs for %q: %w", key, err)
	}
	defer func() { _ = rows.Close() }()

	var runs []contracts.EvaluationRun
	for rows.Next() {
		var (
			run          contracts.EvaluationRun
			timestamp    string
			isBaseline   int
			gapsJSON     sql.NullString
			evidenceJSON sql.NullString
		)
		if err := rows.Scan(&run.RunID, &run.CapabilityID, &run.ScopeID, &run.RunNumber,
			&timestamp, &isBaseline, &run.Readiness, &gapsJSON, &evidenceJSON); err != nil {
			return nil, err
		}
		run.Timestamp = parseTime(timestamp)
		run.IsBaseline = isBaseline != 0
		if gapsJSON.Valid && gapsJSON.String != "" {
			if err := json.Unmarshal([]byte(gapsJSON.String), &run.Gaps); err != nil {
				return nil, fmt.Errorf("decode gaps for run %s: %w", run.RunID, err)
			}
		}
		if evidenceJSON.Valid && evidenceJSON.String != "" {
			if err := json.Unmarshal([]byte(evidenceJSON.String), &run.Evidence); err != nil {
				return nil, fmt.Errorf("decode evidence for run %s: %w", run.RunID, err)
			}
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// SaveRuns replaces all rows for a key inside one transaction.
func (r *SQLiteRepository) SaveRuns(ctx context.Context, key string, runs []contracts.EvaluationRun) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save for %q: %w", key, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM evaluation_runs WHERE scope_key = ?`, key); err != nil {
		return fmt.Errorf("clear runs for %q: %w", key, err)
	}

	insert := `INSERT INTO evaluation_runs (
        scope_key, run_id, capability_id, scope_id, run_number, timestamp, is_baseline, readiness, gaps, evidence
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, run := range runs {
		gapsJSON, err := json.Marshal(run.Gaps)
		if err != nil {
			return fmt.Errorf("encode gaps for run %s: %w", run.RunID, err)
		}
		evidenceJSON, err := json.Marshal(run.Evidence)
		if err != nil {
			return fmt.Errorf("encode evidence for run %s: %w", run.RunID, err)
		}
		baseline := 0
		if run.IsBaseline {
			baseline = 1
		}
		if _, err := tx.ExecContext(ctx, insert,
			key, run.RunID, run.CapabilityID, run.ScopeID, run.RunNumber,
			run.Timestamp.UTC().Format(time.RFC3339Nano), baseline, run.Readiness,
			string(gapsJSON), string(evidenceJSON),
		); err != nil {
			return fmt.Errorf("insert run %s: %w", run.RunID, err)
		}
	}
	return tx.Commit()
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	return time.Time{}
}
