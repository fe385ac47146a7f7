package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tkhrsasaki/shiftsense/pkg/db"
)

// HistoryResult holds recent stored runs for display.
type HistoryResult struct {
	DiagnosisRuns  []db.DiagnosisRun
	EvaluationRuns []db.EvaluationRun
}

// ViewHistory fetches the most recent diagnosis and evaluation runs.
// Stores return newest first; limit <= 0 means everything.
func ViewHistory(ctx context.Context, database db.Database, logger *zap.Logger, limit int) (*HistoryResult, error) {
	logger.Debug("Fetching run history", zap.Int("limit", limit))

	diagnosisRuns, err := database.GetDiagnosisRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch diagnosis runs: %w", err)
	}
	evaluationRuns, err := database.GetEvaluationRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch evaluation runs: %w", err)
	}

	if limit > 0 {
		if len(diagnosisRuns) > limit {
			diagnosisRuns = diagnosisRuns[:limit]
		}
		if len(evaluationRuns) > limit {
			evaluationRuns = evaluationRuns[:limit]
		}
	}

	logger.Debug("History fetched",
		zap.Int("diagnosis_runs", len(diagnosisRuns)),
		zap.Int("evaluation_runs", len(evaluationRuns)))

	return &HistoryResult{
		DiagnosisRuns:  diagnosisRuns,
		EvaluationRuns: evaluationRuns,
	}, nil
}
