package types

// CheckResult is the outcome of a single feasibility check.
type CheckResult struct {
	Passed  bool              `json:"passed"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// VerificationReport is the deterministic feasibility assessment of a route
// against the request it was generated for.
type VerificationReport struct {
	IsFeasible       bool        `json:"is_feasible"`
	OverallScore     float64     `json:"overall_score"`
	BudgetCheck      CheckResult `json:"budget_check"`
	TimeCheck        CheckResult `json:"time_check"`
	ConstraintsCheck CheckResult `json:"constraints_check"`
	PhysicalCheck    CheckResult `json:"physical_check"`
	Issues           []string    `json:"issues,omitempty"`
	AutoFixes        []string    `json:"auto_fixes,omitempty"`
	Recommendations  []string    `json:"recommendations,omitempty"`
}
