package coursetools

// ValidationResult aggregates every failing rubric check by name.
// A single check never short-circuits the others; the categorizer
// acts on each error string separately. Warnings never block.
type ValidationResult struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

// NewValidationResult returns a passing result with empty lists.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		IsValid:  true,
		Errors:   make([]string, 0),
		Warnings: make([]string, 0),
	}
}

func (r *ValidationResult) addError(msg string) {
	r.IsValid = false
	r.Errors = append(r.Errors, msg)
}

func (r *ValidationResult) addWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Merge folds other into r, preserving error order.
func (r *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	if !other.IsValid {
		r.IsValid = false
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}
