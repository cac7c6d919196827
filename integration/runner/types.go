package runner

import (
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/smz3-tracker/internal/handlers"
)

// TestSuite defines a scripted tracker session.
// It either has Steps of its own or references other case files in Cases.
type TestSuite struct {
	Name     string         `json:"name"`
	Preset   string         `json:"preset,omitempty"`   // Used for regular tests
	Settings map[string]any `json:"settings,omitempty"` // Inline settings, mutually exclusive with Preset
	Steps    []TestStep     `json:"steps,omitempty"`    // Used for regular tests
	Cases    []string       `json:"cases,omitempty"`    // Used for suite tests (list of case files)
}

// IsSequence returns true if this is a suite that sequences other cases
func (ts *TestSuite) IsSequence() bool {
	return len(ts.Cases) > 0
}

// TestStep is one interaction with the session followed by checks.
// Exactly one of Action, AutoTrack, Missing or Reset should be set; a step
// with none of them only checks expectations against the current session.
type TestStep struct {
	Name      string                  `json:"name,omitempty"`
	Action    *handlers.ActionRequest `json:"action,omitempty"`
	AutoTrack *handlers.ActionRequest `json:"autotrack,omitempty"`
	Missing   *MissingQuery           `json:"missing,omitempty"`
	Reset     bool                    `json:"reset,omitempty"`
	Expect    Expectations            `json:"expect"`
}

// MissingQuery names the node a missing-items step asks about.
type MissingQuery struct {
	Location string `json:"location,omitempty"`
	Boss     string `json:"boss,omitempty"`
	Reward   string `json:"reward,omitempty"`
	Baseline string `json:"baseline,omitempty"`
}

// Expectations defines what to check after a step executes
type Expectations struct {
	// Status is the expected HTTP status of the step's request. Zero
	// means any 2xx.
	Status int `json:"status,omitempty"`

	// Accessibility maps location names to their expected classification.
	Accessibility map[string]string `json:"accessibility,omitempty"`
	// Counts maps classifications to the expected number of nodes.
	Counts map[string]int `json:"counts,omitempty"`
	// Changed lists node names that must appear in the action's changes.
	Changed []string `json:"changed,omitempty"`

	// Missing-items checks
	Satisfied     *bool    `json:"satisfied,omitempty"`
	Unsatisfiable *bool    `json:"unsatisfiable,omitempty"`
	HintContains  []string `json:"hint_contains,omitempty"`
	OptionItems   []string `json:"option_items,omitempty"` // every item appears in some option
}

// TestResult contains the outcome of running a test step
type TestResult struct {
	TestName  string
	StepName  string
	Success   bool
	Error     error
	Duration  time.Duration
	RequestID string
	IsReset   bool // Reset steps do not count toward pass/fail metrics
}

// TestJob represents a test suite to be executed
type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

// TestRunResult contains the results of running an entire test suite
type TestRunResult struct {
	Job      TestJob
	Results  []TestResult
	Error    error
	Duration time.Duration
	Session  uuid.UUID // ID of the session used for this test
}
