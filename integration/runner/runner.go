package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/smz3-tracker/internal/handlers"
	"github.com/jwebster45206/smz3-tracker/pkg/world"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

// Runner executes scripted sessions against a running tracker API
type Runner struct {
	BaseURL           string
	Client            *http.Client
	Timeout           time.Duration
	Logger            func(format string, args ...interface{})
	ErrorHandlingMode ErrorHandlingMode
	PresetOverride    string // If set, overrides the preset for all test cases
}

// NewRunner creates a new test runner
func NewRunner(baseURL string) *Runner {
	return &Runner{
		BaseURL:           strings.TrimSuffix(baseURL, "/"),
		Client:            &http.Client{Timeout: 60 * time.Second},
		Timeout:           30 * time.Second,
		Logger:            func(string, ...interface{}) {},
		ErrorHandlingMode: ErrorHandlingContinue,
	}
}

// LoadTestSuite loads a test suite from a JSON file
func LoadTestSuite(filename string) (TestSuite, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}

	var suite TestSuite
	if err := json.Unmarshal(content, &suite); err != nil {
		return TestSuite{}, fmt.Errorf("failed to parse JSON in %s: %w", filename, err)
	}
	if suite.Preset != "" && suite.Settings != nil {
		return TestSuite{}, fmt.Errorf("%s: preset and settings are mutually exclusive", filename)
	}

	return suite, nil
}

// LoadTestSuiteWithExpansion loads a test suite and expands it if it's a sequence
func LoadTestSuiteWithExpansion(filename string, casesDir string) ([]TestJob, error) {
	return loadExpanded(filename, casesDir, nil)
}

func loadExpanded(filename, casesDir string, seen []string) ([]TestJob, error) {
	if slices.Contains(seen, filename) {
		return nil, fmt.Errorf("sequence cycle through %s", filename)
	}
	suite, err := LoadTestSuite(filename)
	if err != nil {
		return nil, err
	}

	if !suite.IsSequence() {
		return []TestJob{{
			Name:     suite.Name,
			Suite:    suite,
			CaseFile: filename,
		}}, nil
	}

	var jobs []TestJob
	for _, caseFile := range suite.Cases {
		casePath := filepath.Join(casesDir, caseFile)
		subJobs, err := loadExpanded(casePath, casesDir, append(seen, filename))
		if err != nil {
			return nil, fmt.Errorf("failed to load case '%s' referenced by sequence '%s': %w", caseFile, suite.Name, err)
		}
		jobs = append(jobs, subJobs...)
	}

	return jobs, nil
}

// RunSuite executes a complete test suite against a fresh session, which is
// deleted afterwards.
func (r *Runner) RunSuite(ctx context.Context, suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{
		Job:     TestJob{Name: suite.Name, Suite: suite},
		Results: make([]TestResult, 0, len(suite.Steps)),
	}

	sessionID, err := r.createSession(ctx, suite)
	if err != nil {
		result.Error = fmt.Errorf("failed to create session: %w", err)
		result.Duration = time.Since(start)
		return result, result.Error
	}
	result.Session = sessionID
	defer func() {
		if err := DeleteSession(context.WithoutCancel(ctx), r.Client, r.BaseURL, result.Session); err != nil {
			r.Logger("    Warning: failed to delete session %s: %v", result.Session, err)
		}
	}()

	for i, step := range suite.Steps {
		r.Logger("    [%d/%d] Running step: %s", i+1, len(suite.Steps), step.Name)

		if step.Reset {
			stepStart := time.Now()
			stepResult := TestResult{TestName: suite.Name, StepName: step.Name, IsReset: true}
			if err := DeleteSession(ctx, r.Client, r.BaseURL, result.Session); err != nil {
				stepResult.Error = fmt.Errorf("failed to delete session: %w", err)
			} else if id, err := r.createSession(ctx, suite); err != nil {
				stepResult.Error = fmt.Errorf("failed to recreate session: %w", err)
			} else {
				result.Session = id
				stepResult.Error = r.checkSession(ctx, id, step.Expect)
			}
			stepResult.Success = stepResult.Error == nil
			stepResult.Duration = time.Since(stepStart)
			result.Results = append(result.Results, stepResult)
			if r.stop(&result, i, step, stepResult) {
				break
			}
			continue
		}

		stepResult := r.runStep(ctx, result.Session, step)
		stepResult.TestName = suite.Name
		result.Results = append(result.Results, stepResult)
		if r.stop(&result, i, step, stepResult) {
			break
		}
		r.Logger("    [%d/%d] ✓ %s (%v)", i+1, len(suite.Steps), step.Name, stepResult.Duration)
	}

	result.Duration = time.Since(start)
	return result, result.Error
}

// stop records a failed step and reports whether the suite should end.
func (r *Runner) stop(result *TestRunResult, i int, step TestStep, sr TestResult) bool {
	if sr.Error == nil {
		return false
	}
	r.Logger("    [%d/%d] ✗ %s: %v", i+1, len(result.Job.Suite.Steps), step.Name, sr.Error)
	if result.Error == nil {
		result.Error = fmt.Errorf("step %d (%s) failed: %w", i, step.Name, sr.Error)
	}
	return r.ErrorHandlingMode == ErrorHandlingExit
}

func (r *Runner) createSession(ctx context.Context, suite TestSuite) (uuid.UUID, error) {
	preset := suite.Preset
	if r.PresetOverride != "" {
		preset = r.PresetOverride
	}
	settings := suite.Settings
	if preset != "" {
		settings = nil
	}
	sess, err := CreateSession(ctx, r.Client, r.BaseURL, preset, settings)
	if err != nil {
		return uuid.Nil, err
	}
	return sess.ID, nil
}

// runStep executes a single test step and checks expectations.
func (r *Runner) runStep(ctx context.Context, id uuid.UUID, step TestStep) TestResult {
	start := time.Now()
	result := TestResult{StepName: step.Name}
	stepCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	var err error
	switch {
	case step.Action != nil:
		var resp *handlers.ActionResponse
		resp, err = ApplyAction(stepCtx, r.Client, r.BaseURL, id, *step.Action)
		if err == nil {
			err = checkChanged(step.Expect.Changed, resp.Changes)
		}
	case step.AutoTrack != nil:
		result.RequestID, err = r.autoTrack(stepCtx, id, *step.AutoTrack)
	case step.Missing != nil:
		var resp *handlers.MissingResponse
		resp, err = GetMissing(stepCtx, r.Client, r.BaseURL, id, *step.Missing)
		if err == nil {
			err = checkMissing(step.Expect, resp)
		}
	}

	err = expectStatus(step.Expect.Status, err)
	if err == nil {
		err = r.checkSession(stepCtx, id, step.Expect)
	}

	result.Error = err
	result.Success = err == nil
	result.Duration = time.Since(start)
	return result
}

// autoTrack queues a request and waits for the worker to apply it.
func (r *Runner) autoTrack(ctx context.Context, id uuid.UUID, action handlers.ActionRequest) (string, error) {
	before, err := GetSession(ctx, r.Client, r.BaseURL, id)
	if err != nil {
		return "", fmt.Errorf("failed to get session before auto-track: %w", err)
	}
	requestID, err := PostAutoTrack(ctx, r.Client, r.BaseURL, id, action)
	if err != nil {
		return "", err
	}
	if _, err := PollForUpdate(ctx, r.Client, r.BaseURL, id, before.UpdatedAt); err != nil {
		return requestID, err
	}
	return requestID, nil
}

// expectStatus turns an expected non-2xx status into success.
func expectStatus(want int, err error) error {
	if want == 0 || (want >= 200 && want < 300) {
		return err
	}
	var se *StatusError
	if !errors.As(err, &se) {
		if err == nil {
			return fmt.Errorf("expected status %d, got success", want)
		}
		return err
	}
	if se.Status != want {
		return fmt.Errorf("expected status %d, got %w", want, se)
	}
	return nil
}

// checkSession validates accessibility and counts against the live session.
func (r *Runner) checkSession(ctx context.Context, id uuid.UUID, exp Expectations) error {
	if len(exp.Counts) > 0 {
		sess, err := GetSession(ctx, r.Client, r.BaseURL, id)
		if err != nil {
			return fmt.Errorf("failed to get session: %w", err)
		}
		for acc, want := range exp.Counts {
			if got := sess.Counts[acc]; got != want {
				return fmt.Errorf("expected %d %s nodes, got %d", want, acc, got)
			}
		}
	}

	if len(exp.Accessibility) > 0 {
		locs, err := GetLocations(ctx, r.Client, r.BaseURL, id, nil)
		if err != nil {
			return fmt.Errorf("failed to get locations: %w", err)
		}
		byName := make(map[string]world.Accessibility, len(locs.Nodes))
		for _, n := range locs.Nodes {
			if n.Node.Kind == world.NodeLocation {
				byName[strings.ToLower(n.Name)] = n.Accessibility
			}
		}
		for name, want := range exp.Accessibility {
			got, ok := byName[strings.ToLower(name)]
			if !ok {
				return fmt.Errorf("location %q not found", name)
			}
			if got.String() != want {
				return fmt.Errorf("expected %s to be %s, got %s", name, want, got)
			}
		}
	}
	return nil
}

func checkChanged(want []string, changes []world.Change) error {
	for _, name := range want {
		found := slices.ContainsFunc(changes, func(c world.Change) bool {
			return strings.EqualFold(c.Name, name)
		})
		if !found {
			return fmt.Errorf("expected %s among the changes", name)
		}
	}
	return nil
}

func checkMissing(exp Expectations, resp *handlers.MissingResponse) error {
	if exp.Satisfied != nil && resp.Satisfied != *exp.Satisfied {
		return fmt.Errorf("expected satisfied to be %t, got %t", *exp.Satisfied, resp.Satisfied)
	}
	if exp.Unsatisfiable != nil && resp.Unsatisfiable != *exp.Unsatisfiable {
		return fmt.Errorf("expected unsatisfiable to be %t, got %t", *exp.Unsatisfiable, resp.Unsatisfiable)
	}
	hint := strings.ToLower(resp.Hint)
	for _, text := range exp.HintContains {
		if !strings.Contains(hint, strings.ToLower(text)) {
			return fmt.Errorf("expected hint to contain '%s', got '%s'", text, resp.Hint)
		}
	}
	for _, item := range exp.OptionItems {
		found := slices.ContainsFunc(resp.Options, func(opt []string) bool {
			return slices.ContainsFunc(opt, func(s string) bool { return strings.EqualFold(s, item) })
		})
		if !found {
			return fmt.Errorf("expected %s in some option, got %v", item, resp.Options)
		}
	}
	return nil
}
