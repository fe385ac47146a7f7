package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tkhrsasaki/shiftsense/pkg/core/evaluation"
	"github.com/tkhrsasaki/shiftsense/pkg/core/model"
	"github.com/tkhrsasaki/shiftsense/pkg/core/rootcause"
	"github.com/tkhrsasaki/shiftsense/pkg/db"
)

// EvaluateScheduleResult is the outcome of an evaluation service call.
type EvaluateScheduleResult struct {
	Evaluation *evaluation.EvaluationResult

	// RootCauses is populated when cause analysis was requested and the
	// evaluation produced violations.
	RootCauses *rootcause.RootCauseAnalysis

	// RunID identifies the stored history record, when saving was
	// requested.
	RunID string
}

// storedEvaluation is the persisted JSON shape: the evaluation plus
// its root cause analysis, so history replays need no recomputation.
type storedEvaluation struct {
	Evaluation *evaluation.EvaluationResult `json:"evaluation"`
	RootCauses *rootcause.RootCauseAnalysis `json:"rootCauses,omitempty"`
}

// EvaluateSchedule grades a generated schedule, optionally explains
// its violations, and optionally persists the result. The store may be
// nil when persistence is not requested.
func EvaluateSchedule(
	ctx context.Context,
	store db.EvaluationRunStore,
	logger *zap.Logger,
	cfg *model.FacilityConfig,
	schedule *model.Schedule,
	analyzeCauses bool,
	save bool,
) (*EvaluateScheduleResult, error) {
	logger.Debug("Starting schedule evaluation",
		zap.String("target_month", schedule.TargetMonth),
		zap.Int("staff_count", len(schedule.Staff)))

	result, err := evaluation.Evaluate(cfg, schedule)
	if err != nil {
		return nil, err
	}

	logger.Info("Evaluation complete",
		zap.Int("score", result.Score),
		zap.Int("fulfillment_rate", result.FulfillmentRate),
		zap.Int("violation_count", len(result.Violations)))

	out := &EvaluateScheduleResult{Evaluation: result}

	if analyzeCauses && len(result.Violations) > 0 {
		month, err := model.ParseMonth(schedule.TargetMonth)
		if err != nil {
			return nil, err
		}
		analysis, err := rootcause.Analyze(cfg, month, result.Violations)
		if err != nil {
			return nil, err
		}
		logger.Debug("Root cause analysis complete", zap.Int("cause_count", len(analysis.Causes)))
		out.RootCauses = analysis
	}

	if !save {
		return out, nil
	}
	if store == nil {
		return nil, fmt.Errorf("saving requested but no history store configured")
	}

	resultJSON, err := json.Marshal(storedEvaluation{Evaluation: result, RootCauses: out.RootCauses})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize evaluation result: %w", err)
	}

	run := &db.EvaluationRun{
		ID:              uuid.New().String(),
		TargetMonth:     schedule.TargetMonth,
		Score:           result.Score,
		FulfillmentRate: result.FulfillmentRate,
		ViolationCount:  len(result.Violations),
		ResultJSON:      string(resultJSON),
		EvaluatedAt:     result.EvaluatedAt,
	}
	if err := store.InsertEvaluationRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to save evaluation run: %w", err)
	}

	logger.Debug("Evaluation run saved", zap.String("run_id", run.ID))
	out.RunID = run.ID
	return out, nil
}
