// Package scenarios holds the built-in verification procedures for the
// menu page: the API fix check and the recommendations check.
package scenarios

import (
	"errors"
	"fmt"
	"time"

	"menu_verification/domain/entities"
)

// ErrUnknownScenario is returned by Lookup for names not in the catalogue
var ErrUnknownScenario = errors.New("unknown scenario")

const (
	APIFix          = "api-fix"
	Recommendations = "recommendations"
)

// Selectors the menu page is expected to expose
var (
	ProcessButton   = entities.Selector{CSS: "#process-btn"}
	LoadingSpinner  = entities.Selector{CSS: "#loading-spinner"}
	MenuContainer   = entities.Selector{CSS: "#menu-container"}
	HighlightedDish = entities.Selector{CSS: ".highlight-dish", First: true}
)

const (
	apiTimeout       = 60 * time.Second
	highlightTimeout = 10 * time.Second
)

// Settings binds a scenario to a page server and an evidence path
type Settings struct {
	BaseURL        string
	ScreenshotPath string
	Headless       bool
}

type builder func(Settings) entities.Scenario

var catalogue = map[string]builder{
	APIFix:          apiFix,
	Recommendations: recommendations,
}

// Names returns the catalogue in the order scenarios run with "all"
func Names() []string {
	return []string{APIFix, Recommendations}
}

// Lookup returns the named scenario bound to s
func Lookup(name string, s Settings) (entities.Scenario, error) {
	build, ok := catalogue[name]
	if !ok {
		return entities.Scenario{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScenario, name, Names())
	}
	return build(s), nil
}

// apiFix clicks process and waits for the spinner to go away once the API answers
func apiFix(s Settings) entities.Scenario {
	return entities.Scenario{
		Name:        APIFix,
		Description: "loading spinner hides after the menu API call completes",
		BaseURL:     s.BaseURL,
		Launch:      entities.LaunchOptions{Headless: s.Headless, Console: true},
		Steps: []entities.Step{
			{Kind: entities.StepNavigate, URL: s.BaseURL, Description: "open menu page"},
			{Kind: entities.StepExpectEnabled, Selector: ProcessButton, Description: "process button is enabled"},
			{Kind: entities.StepClick, Selector: ProcessButton, Description: "click process button"},
			{Kind: entities.StepExpectHidden, Selector: LoadingSpinner, Timeout: apiTimeout, Description: "loading spinner disappears"},
			{Kind: entities.StepLocate, Selector: MenuContainer, Description: "locate menu container"},
			{Kind: entities.StepScreenshot, Path: s.ScreenshotPath, Description: "capture screenshot"},
		},
	}
}

// recommendations waits for the rendered menu and at least one highlighted dish
func recommendations(s Settings) entities.Scenario {
	return entities.Scenario{
		Name:        Recommendations,
		Description: "menu renders with a highlighted recommended dish",
		BaseURL:     s.BaseURL,
		Launch:      entities.LaunchOptions{Headless: s.Headless},
		Steps: []entities.Step{
			{Kind: entities.StepNavigate, URL: s.BaseURL + "/index.html", Description: "open menu page"},
			{Kind: entities.StepExpectEnabled, Selector: ProcessButton, Description: "process button is enabled"},
			{Kind: entities.StepClick, Selector: ProcessButton, Description: "click process button"},
			{Kind: entities.StepExpectVisible, Selector: MenuContainer, Timeout: apiTimeout, Description: "menu container is visible"},
			{Kind: entities.StepExpectVisible, Selector: HighlightedDish, Timeout: highlightTimeout, Description: "highlighted dish is visible"},
			{Kind: entities.StepScreenshot, Path: s.ScreenshotPath, Description: "capture screenshot"},
		},
	}
}
