package formtree

// Result is the outcome of one validation pass. An empty issue list
// signals success; validation problems are never surfaced as Go errors.
type Result struct {
	// Valid is true if no error-severity issues were found.
	Valid bool `json:"valid"`

	// Issues contains every finding, in document order.
	Issues []Issue `json:"issues,omitempty"`
}

// NewResult returns an empty, valid result.
func NewResult() *Result {
	return &Result{Valid: true}
}

// Add appends an issue, flipping Valid if it is an error.
func (r *Result) Add(issue Issue) {
	r.Issues = append(r.Issues, issue)
	if issue.IsError() {
		r.Valid = false
	}
}

// AddAll appends a batch of issues.
func (r *Result) AddAll(issues []Issue) {
	for _, issue := range issues {
		r.Add(issue)
	}
}

// ErrorCount returns the number of error-severity issues.
func (r *Result) ErrorCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.IsError() {
			n++
		}
	}
	return n
}

// WarningCount returns the number of warning-severity issues.
func (r *Result) WarningCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

// Errors returns only the error-severity issues.
func (r *Result) Errors() []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.IsError() {
			out = append(out, issue)
		}
	}
	return out
}

// First returns the first issue and true, or a zero issue and false when
// the result is clean. Callers that only surface one finding (for example
// a status bar) use this.
func (r *Result) First() (Issue, bool) {
	if len(r.Issues) == 0 {
		return Issue{}, false
	}
	return r.Issues[0], true
}

// Merge appends all issues from other into r.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.AddAll(other.Issues)
}
