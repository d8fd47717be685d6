package probe

// Verdict is the single pass/fail outcome of one evaluation run.
//
// Fields:
// - Description: human-readable diagnostic, empty when healthy.
// - Cause: underlying transport or read error when one exists; nil for
//   plain expectation mismatches.
type Verdict struct {
	Healthy     bool   `json:"healthy"`
	Description string `json:"description,omitempty"`
	Cause       error  `json:"-"`
}

// Unhealthy builds a failure verdict.
func Unhealthy(description string, cause error) Verdict {
	return Verdict{Description: description, Cause: cause}
}
