package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"menu_verification/domain/entities"
	"menu_verification/domain/interfaces"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

// Launcher starts Chromium through playwright
type Launcher struct {
	logger  *logrus.Logger
	install bool
}

// NewLauncher - creates new playwright launcher. When install is set the
// Chromium build matching the driver is downloaded before the first run.
func NewLauncher(logger *logrus.Logger, install bool) *Launcher {
	return &Launcher{logger: logger, install: install}
}

type browserController struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	expect  playwright.PlaywrightAssertions
	logger  *logrus.Logger
}

// Launch - starts playwright, launches Chromium and opens one page
func (l *Launcher) Launch(ctx context.Context, opts entities.LaunchOptions) (interfaces.Browser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if l.install {
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
			return nil, fmt.Errorf("failed to install playwright browsers: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	page, err := browser.NewPage()
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	b := &browserController{
		pw:      pw,
		browser: browser,
		page:    page,
		expect:  playwright.NewPlaywrightAssertions(),
		logger:  l.logger,
	}

	if opts.Console {
		page.OnConsole(func(msg playwright.ConsoleMessage) {
			b.logger.WithField("source", "browser").Infof("Browser console: %s", msg.Text())
		})
	}

	return b, nil
}

// Navigate - navigates to the specified URL
func (b *browserController) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := b.page.Goto(url)
	return err
}

// ExpectEnabled - waits until the element is enabled
func (b *browserController) ExpectEnabled(ctx context.Context, sel entities.Selector, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.expect.Locator(b.locator(sel)).ToBeEnabled(playwright.LocatorAssertionsToBeEnabledOptions{
		Timeout: milliseconds(timeout),
	})
}

// Click - clicks on the element
func (b *browserController) Click(ctx context.Context, sel entities.Selector) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.locator(sel).Click()
}

// ExpectHidden - waits until the element is hidden or removed from the DOM
func (b *browserController) ExpectHidden(ctx context.Context, sel entities.Selector, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.expect.Locator(b.locator(sel)).ToBeHidden(playwright.LocatorAssertionsToBeHiddenOptions{
		Timeout: milliseconds(timeout),
	})
}

// ExpectVisible - waits until the element is visible
func (b *browserController) ExpectVisible(ctx context.Context, sel entities.Selector, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.expect.Locator(b.locator(sel)).ToBeVisible(playwright.LocatorAssertionsToBeVisibleOptions{
		Timeout: milliseconds(timeout),
	})
}

// Locate - counts the elements matching the selector without waiting
func (b *browserController) Locate(ctx context.Context, sel entities.Selector) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return b.locator(sel).Count()
}

// Screenshot - takes a screenshot of the current page
func (b *browserController) Screenshot(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create screenshot directory: %w", err)
		}
	}

	_, err := b.page.Screenshot(playwright.PageScreenshotOptions{
		Path: playwright.String(path),
	})
	return err
}

// Close - closes the browser and stops the playwright driver
func (b *browserController) Close() error {
	var closeErr error

	if b.browser != nil {
		if err := b.browser.Close(); err != nil && !isClosedErr(err) {
			closeErr = fmt.Errorf("failed to close browser: %w", err)
		}
		b.browser = nil
	}

	if b.pw != nil {
		if err := b.pw.Stop(); err != nil {
			if closeErr != nil {
				closeErr = fmt.Errorf("%v; failed to stop playwright: %w", closeErr, err)
			} else {
				closeErr = fmt.Errorf("failed to stop playwright: %w", err)
			}
		}
		b.pw = nil
	}

	return closeErr
}

func (b *browserController) locator(sel entities.Selector) playwright.Locator {
	l := b.page.Locator(sel.CSS)
	if sel.First {
		l = l.First()
	}
	return l
}

// milliseconds - converts a timeout to playwright's option, nil keeps the default
func milliseconds(d time.Duration) *float64 {
	if d <= 0 {
		return nil
	}
	return playwright.Float(float64(d.Milliseconds()))
}

func isClosedErr(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "closed") || strings.Contains(errStr, "target closed")
}
