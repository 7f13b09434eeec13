package entities

import "time"

// RunStatus represents the status of a scenario run
type RunStatus string

const (
	RunStatusPassed RunStatus = "passed"
	RunStatusFailed RunStatus = "failed"
)

// RunReport records what happened during one scenario run
type RunReport struct {
	Scenario   string       `json:"scenario"`
	Status     RunStatus    `json:"status"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Steps      []StepResult `json:"steps"`
	Screenshot string       `json:"screenshot,omitempty"`
	Error      string       `json:"error,omitempty"`
}

// Passed reports whether every step of the run succeeded
func (r RunReport) Passed() bool {
	return r.Status == RunStatusPassed
}
