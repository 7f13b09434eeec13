package interfaces

import (
	"context"
	"time"

	"menu_verification/domain/entities"
)

// BrowserLauncher acquires a browser with a single open page
type BrowserLauncher interface {
	// Launch starts the browser and opens one page
	Launch(ctx context.Context, opts entities.LaunchOptions) (Browser, error)
}

// Browser defines the page operations a scenario step can perform.
// A zero timeout means the automation library default.
type Browser interface {
	// Navigate navigates the page to a URL
	Navigate(ctx context.Context, url string) error

	// ExpectEnabled waits until the element is enabled
	ExpectEnabled(ctx context.Context, sel entities.Selector, timeout time.Duration) error

	// Click clicks on the element
	Click(ctx context.Context, sel entities.Selector) error

	// ExpectHidden waits until the element is hidden or detached
	ExpectHidden(ctx context.Context, sel entities.Selector, timeout time.Duration) error

	// ExpectVisible waits until the element is visible
	ExpectVisible(ctx context.Context, sel entities.Selector, timeout time.Duration) error

	// Locate returns the number of elements currently matching the selector
	Locate(ctx context.Context, sel entities.Selector) (int, error)

	// Screenshot writes a screenshot of the page to path
	Screenshot(ctx context.Context, path string) error

	// Close closes the browser
	Close() error
}
