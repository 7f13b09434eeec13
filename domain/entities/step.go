package entities

import "time"

// StepKind represents the type of step a scenario performs
type StepKind string

const (
	StepNavigate      StepKind = "navigate"
	StepExpectEnabled StepKind = "expect_enabled"
	StepClick         StepKind = "click"
	StepExpectHidden  StepKind = "expect_hidden"
	StepExpectVisible StepKind = "expect_visible"
	StepLocate        StepKind = "locate"
	StepScreenshot    StepKind = "screenshot"
)

// Selector references a DOM element by id or CSS class
type Selector struct {
	CSS string `json:"css"`
	// First narrows the match to the first element when several match.
	First bool `json:"first,omitempty"`
}

func (s Selector) String() string {
	if s.First {
		return s.CSS + " (first)"
	}
	return s.CSS
}

// Step represents a single step of a scenario
type Step struct {
	Kind        StepKind      `json:"kind"`
	Selector    Selector      `json:"selector,omitempty"`
	URL         string        `json:"url,omitempty"`
	Path        string        `json:"path,omitempty"`
	Timeout     time.Duration `json:"timeout,omitempty"` // zero means library default
	Description string        `json:"description"`
}

// StepResult represents the outcome of a step
type StepResult struct {
	Index       int           `json:"index"`
	Kind        StepKind      `json:"kind"`
	Description string        `json:"description"`
	Selector    string        `json:"selector,omitempty"`
	Elapsed     time.Duration `json:"elapsed"`
	Success     bool          `json:"success"`
	Error       string        `json:"error,omitempty"`
}
