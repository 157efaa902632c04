package types

// StageError records a failed stage of an automation run.
type StageError struct {
	Stage   Stage  `json:"stage"`
	Message string `json:"message"`
}

// AutomationResult is everything one automation run produced. Partial
// results are kept: a created ticket or repository is reported even when a
// later stage failed.
type AutomationResult struct {
	Ticket     *TicketRef     `json:"ticket,omitempty"`
	Repository *RepositoryRef `json:"repository,omitempty"`
	Errors     []StageError   `json:"errors,omitempty"`
	Aborted    bool           `json:"aborted,omitempty"`
}

// RecordError appends a failed stage to the result.
func (r *AutomationResult) RecordError(stage Stage, err error) {
	r.Errors = append(r.Errors, StageError{Stage: stage, Message: err.Error()})
}

// Succeeded reports whether the run completed without any stage failing.
func (r *AutomationResult) Succeeded() bool {
	return !r.Aborted && len(r.Errors) == 0
}
