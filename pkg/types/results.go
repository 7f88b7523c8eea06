package types

// CheckStatus is the outcome of a single validation check
type CheckStatus string

const (
	CheckPass CheckStatus = "pass"
	CheckFail CheckStatus = "fail"
	CheckWarn CheckStatus = "warn"
)

// ValidationResult is the per-check outcome produced by the doctor.
type ValidationResult struct {
	Name    string
	Status  CheckStatus
	Message string
}

// Report aggregates validation results for one doctor invocation.
type Report struct {
	Results []ValidationResult
}

// Add appends a result to the report
func (r *Report) Add(result ValidationResult) {
	r.Results = append(r.Results, result)
}

// Counts returns the number of passed, failed and warned checks
func (r *Report) Counts() (passed, failed, warned int) {
	for _, res := range r.Results {
		switch res.Status {
		case CheckPass:
			passed++
		case CheckFail:
			failed++
		case CheckWarn:
			warned++
		}
	}
	return passed, failed, warned
}

// HasFailures reports whether any check failed. Warnings do not count
// as failures; only the caller decides the process exit code.
func (r *Report) HasFailures() bool {
	for _, res := range r.Results {
		if res.Status == CheckFail {
			return true
		}
	}
	return false
}
