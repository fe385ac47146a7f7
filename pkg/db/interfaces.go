package db

import "context"

// DiagnosisRunStore defines the database operations for diagnosis
// history.
type DiagnosisRunStore interface {
	GetDiagnosisRuns(ctx context.Context) ([]DiagnosisRun, error)
	InsertDiagnosisRun(ctx context.Context, run *DiagnosisRun) error
}

// EvaluationRunStore defines the database operations for evaluation
// history.
type EvaluationRunStore interface {
	GetEvaluationRuns(ctx context.Context) ([]EvaluationRun, error)
	InsertEvaluationRun(ctx context.Context, run *EvaluationRun) error
}

// Database defines all database operations. postgres.DB implements it.
type Database interface {
	DiagnosisRunStore
	EvaluationRunStore
}
