package verifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"menu_verification/domain/entities"
	"menu_verification/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// ErrStepFailed wraps every error raised by a scenario step
var ErrStepFailed = errors.New("step failed")

type Verifier struct {
	launcher  interfaces.BrowserLauncher
	preflight interfaces.Preflight
	reports   interfaces.ReportStore
	logger    *logrus.Logger
	now       func() time.Time
}

// NewVerifier - creates new verifier. preflight and reports may be nil.
func NewVerifier(launcher interfaces.BrowserLauncher, preflight interfaces.Preflight, reports interfaces.ReportStore, logger *logrus.Logger) *Verifier {
	return &Verifier{
		launcher:  launcher,
		preflight: preflight,
		reports:   reports,
		logger:    logger,
		now:       time.Now,
	}
}

// Run - executes the scenario steps in order and stops at the first failure.
// The browser is closed on every path once it has been launched.
func (v *Verifier) Run(ctx context.Context, sc entities.Scenario) (entities.RunReport, error) {
	report := entities.RunReport{
		Scenario:  sc.Name,
		StartedAt: v.now(),
		Steps:     make([]entities.StepResult, 0, len(sc.Steps)),
	}
	log := v.logger.WithField("scenario", sc.Name)
	log.Infof("Starting scenario: %s", sc.Description)

	err := v.run(ctx, sc, &report, log)

	report.FinishedAt = v.now()
	if err != nil {
		report.Status = entities.RunStatusFailed
		report.Error = err.Error()
		log.WithError(err).Error("Scenario failed")
	} else {
		report.Status = entities.RunStatusPassed
		log.WithField("elapsed", report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond)).Info("Scenario passed")
	}

	if v.reports != nil {
		if saveErr := v.reports.Save(report); saveErr != nil {
			log.Warnf("Failed to save run report: %v", saveErr)
		}
	}

	return report, err
}

func (v *Verifier) run(ctx context.Context, sc entities.Scenario, report *entities.RunReport, log *logrus.Entry) (err error) {
	if v.preflight != nil && sc.BaseURL != "" {
		if err := v.preflight.Check(ctx, sc.BaseURL); err != nil {
			return fmt.Errorf("preflight: %w", err)
		}
	}

	browser, err := v.launcher.Launch(ctx, sc.Launch)
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}
	defer func() {
		if closeErr := browser.Close(); closeErr != nil {
			if err == nil {
				err = fmt.Errorf("failed to close browser: %w", closeErr)
			} else {
				log.Warnf("Failed to close browser: %v", closeErr)
			}
		}
	}()

	for i, step := range sc.Steps {
		select {
		case <-ctx.Done():
			return fmt.Errorf("scenario canceled: %w", ctx.Err())
		default:
		}

		result := entities.StepResult{
			Index:       i,
			Kind:        step.Kind,
			Description: step.Description,
			Selector:    step.Selector.CSS,
		}
		stepLog := log.WithFields(logrus.Fields{"step": i + 1, "kind": step.Kind})
		if step.Selector.CSS != "" {
			stepLog = stepLog.WithField("selector", step.Selector.String())
		}
		stepLog.Debug(step.Description)

		start := v.now()
		stepErr := v.executeStep(ctx, browser, step, stepLog)
		result.Elapsed = v.now().Sub(start)

		if stepErr != nil {
			result.Error = stepErr.Error()
			report.Steps = append(report.Steps, result)
			if step.Selector.CSS != "" {
				return fmt.Errorf("%w: step %d (%s) on %s: %w", ErrStepFailed, i+1, step.Description, step.Selector, stepErr)
			}
			return fmt.Errorf("%w: step %d (%s): %w", ErrStepFailed, i+1, step.Description, stepErr)
		}

		result.Success = true
		report.Steps = append(report.Steps, result)
		if step.Kind == entities.StepScreenshot {
			report.Screenshot = step.Path
		}
		stepLog.WithField("elapsed", result.Elapsed.Round(time.Millisecond)).Info(step.Description)
	}

	return nil
}

// executeStep - executes single step
func (v *Verifier) executeStep(ctx context.Context, browser interfaces.Browser, step entities.Step, log *logrus.Entry) error {
	switch step.Kind {
	case entities.StepNavigate:
		if step.URL == "" {
			return fmt.Errorf("url is required for %s step", step.Kind)
		}
		log.Infof("Navigating to: %s", step.URL)
		return browser.Navigate(ctx, step.URL)

	case entities.StepExpectEnabled:
		if err := requireSelector(step); err != nil {
			return err
		}
		return browser.ExpectEnabled(ctx, step.Selector, step.Timeout)

	case entities.StepClick:
		if err := requireSelector(step); err != nil {
			return err
		}
		return browser.Click(ctx, step.Selector)

	case entities.StepExpectHidden:
		if err := requireSelector(step); err != nil {
			return err
		}
		return browser.ExpectHidden(ctx, step.Selector, step.Timeout)

	case entities.StepExpectVisible:
		if err := requireSelector(step); err != nil {
			return err
		}
		return browser.ExpectVisible(ctx, step.Selector, step.Timeout)

	case entities.StepLocate:
		if err := requireSelector(step); err != nil {
			return err
		}
		count, err := browser.Locate(ctx, step.Selector)
		if err != nil {
			return err
		}
		log.WithField("count", count).Debug("Located elements")
		return nil

	case entities.StepScreenshot:
		if step.Path == "" {
			return fmt.Errorf("path is required for %s step", step.Kind)
		}
		return browser.Screenshot(ctx, step.Path)

	default:
		return fmt.Errorf("unknown step: %s", step.Kind)
	}
}

// RunAll - runs scenarios one after another, stopping at the first failure
func (v *Verifier) RunAll(ctx context.Context, scenarios []entities.Scenario) ([]entities.RunReport, error) {
	reports := make([]entities.RunReport, 0, len(scenarios))
	for _, sc := range scenarios {
		report, err := v.Run(ctx, sc)
		reports = append(reports, report)
		if err != nil {
			return reports, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
	}
	return reports, nil
}

func requireSelector(step entities.Step) error {
	if step.Selector.CSS == "" {
		return fmt.Errorf("selector is required for %s step", step.Kind)
	}
	return nil
}
