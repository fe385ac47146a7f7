package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tkhrsasaki/shiftsense/pkg/db"
)

// GetDiagnosisRuns retrieves all diagnosis records, newest first.
func (d *DB) GetDiagnosisRuns(ctx context.Context) ([]db.DiagnosisRun, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, target_month, status, summary, total_supply, total_demand, issue_count, result_json, executed_at
		FROM diagnosis_run
		ORDER BY executed_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query diagnosis runs: %w", err)
	}
	defer rows.Close()

	var runs []db.DiagnosisRun
	for rows.Next() {
		var run db.DiagnosisRun
		var executedAt time.Time
		if err := rows.Scan(&run.ID, &run.TargetMonth, &run.Status, &run.Summary,
			&run.TotalSupply, &run.TotalDemand, &run.IssueCount, &run.ResultJSON, &executedAt); err != nil {
			return nil, fmt.Errorf("failed to scan diagnosis run: %w", err)
		}
		run.ExecutedAt = executedAt.UTC().Format(time.RFC3339)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating diagnosis runs: %w", err)
	}
	return runs, nil
}

// InsertDiagnosisRun stores one diagnosis record.
func (d *DB) InsertDiagnosisRun(ctx context.Context, run *db.DiagnosisRun) error {
	executedAt, err := time.Parse(time.RFC3339, run.ExecutedAt)
	if err != nil {
		return fmt.Errorf("invalid executed_at %q: %w", run.ExecutedAt, err)
	}
	_, err = d.pool.Exec(ctx, `
		INSERT INTO diagnosis_run (id, target_month, status, summary, total_supply, total_demand, issue_count, result_json, executed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, run.ID, run.TargetMonth, run.Status, run.Summary,
		run.TotalSupply, run.TotalDemand, run.IssueCount, run.ResultJSON, executedAt)
	if err != nil {
		return fmt.Errorf("failed to insert diagnosis run: %w", err)
	}
	return nil
}

// GetEvaluationRuns retrieves all evaluation records, newest first.
func (d *DB) GetEvaluationRuns(ctx context.Context) ([]db.EvaluationRun, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, target_month, score, fulfillment_rate, violation_count, result_json, evaluated_at
		FROM evaluation_run
		ORDER BY evaluated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluation runs: %w", err)
	}
	defer rows.Close()

	var runs []db.EvaluationRun
	for rows.Next() {
		var run db.EvaluationRun
		var evaluatedAt time.Time
		if err := rows.Scan(&run.ID, &run.TargetMonth, &run.Score, &run.FulfillmentRate,
			&run.ViolationCount, &run.ResultJSON, &evaluatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation run: %w", err)
		}
		run.EvaluatedAt = evaluatedAt.UTC().Format(time.RFC3339)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating evaluation runs: %w", err)
	}
	return runs, nil
}

// InsertEvaluationRun stores one evaluation record.
func (d *DB) InsertEvaluationRun(ctx context.Context, run *db.EvaluationRun) error {
	evaluatedAt, err := time.Parse(time.RFC3339, run.EvaluatedAt)
	if err != nil {
		return fmt.Errorf("invalid evaluated_at %q: %w", run.EvaluatedAt, err)
	}
	_, err = d.pool.Exec(ctx, `
		INSERT INTO evaluation_run (id, target_month, score, fulfillment_rate, violation_count, result_json, evaluated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, run.ID, run.TargetMonth, run.Score, run.FulfillmentRate,
		run.ViolationCount, run.ResultJSON, evaluatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert evaluation run: %w", err)
	}
	return nil
}
