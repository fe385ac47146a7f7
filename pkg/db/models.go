package db

// DiagnosisRun is a stored record of one diagnosis execution, kept so
// operators can compare a facility's balance over time.
type DiagnosisRun struct {
	ID          string `json:"id"`
	TargetMonth string `json:"targetMonth"`
	Status      string `json:"status"`
	Summary     string `json:"summary"`
	TotalSupply int    `json:"totalSupply"`
	TotalDemand int    `json:"totalDemand"`
	IssueCount  int    `json:"issueCount"`

	// ResultJSON is the full DiagnosisResult, serialized.
	ResultJSON string `json:"resultJson"`

	ExecutedAt string `json:"executedAt"` // RFC 3339
}

// EvaluationRun is a stored record of one schedule evaluation.
type EvaluationRun struct {
	ID              string `json:"id"`
	TargetMonth     string `json:"targetMonth"`
	Score           int    `json:"score"`
	FulfillmentRate int    `json:"fulfillmentRate"`
	ViolationCount  int    `json:"violationCount"`

	// ResultJSON is the full EvaluationResult plus any root cause
	// analysis, serialized.
	ResultJSON string `json:"resultJson"`

	EvaluatedAt string `json:"evaluatedAt"` // RFC 3339
}
