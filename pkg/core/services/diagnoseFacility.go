package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tkhrsasaki/shiftsense/pkg/core/diagnosis"
	"github.com/tkhrsasaki/shiftsense/pkg/core/model"
	"github.com/tkhrsasaki/shiftsense/pkg/db"
)

// DiagnoseFacilityResult is the outcome of a diagnosis service call.
type DiagnoseFacilityResult struct {
	Diagnosis *diagnosis.DiagnosisResult

	// RunID identifies the stored history record, when saving was
	// requested.
	RunID string
}

// DiagnoseFacility runs the pre-generation diagnosis for one facility
// and month, optionally persisting the result to the history store.
// The store may be nil when persistence is not requested.
func DiagnoseFacility(
	ctx context.Context,
	store db.DiagnosisRunStore,
	logger *zap.Logger,
	cfg *model.FacilityConfig,
	month model.Month,
	thresholds diagnosis.Thresholds,
	save bool,
) (*DiagnoseFacilityResult, error) {
	logger.Debug("Starting facility diagnosis",
		zap.String("target_month", month.String()),
		zap.Int("staff_count", len(cfg.Staff)),
		zap.Int("time_slot_count", len(cfg.TimeSlots)))

	result, err := diagnosis.DiagnoseWithThresholds(cfg, month, thresholds)
	if err != nil {
		return nil, err
	}

	logger.Info("Diagnosis complete",
		zap.String("status", string(result.Status)),
		zap.Int("balance", result.SupplyDemandBalance.Balance),
		zap.Int("issue_count", len(result.Issues)),
		zap.Int("suggestion_count", len(result.Suggestions)))

	out := &DiagnoseFacilityResult{Diagnosis: result}
	if !save {
		return out, nil
	}
	if store == nil {
		return nil, fmt.Errorf("saving requested but no history store configured")
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize diagnosis result: %w", err)
	}

	run := &db.DiagnosisRun{
		ID:          uuid.New().String(),
		TargetMonth: month.String(),
		Status:      string(result.Status),
		Summary:     result.Summary,
		TotalSupply: result.SupplyDemandBalance.TotalSupply,
		TotalDemand: result.SupplyDemandBalance.TotalDemand,
		IssueCount:  len(result.Issues),
		ResultJSON:  string(resultJSON),
		ExecutedAt:  result.ExecutedAt,
	}
	if err := store.InsertDiagnosisRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to save diagnosis run: %w", err)
	}

	logger.Debug("Diagnosis run saved", zap.String("run_id", run.ID))
	out.RunID = run.ID
	return out, nil
}
