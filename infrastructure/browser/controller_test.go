package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"menu_verification/application/verifier"
	"menu_verification/domain/entities"
	"menu_verification/domain/interfaces"
	"menu_verification/infrastructure/scenarios"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// menuPage behaves like the menu app: the process button starts a fake API
// call, the spinner hides when it completes and the menu renders.
const menuPage = `<!doctype html>
<html>
<body>
  <button id="process-btn">Get menu &amp; recommendations</button>
  <div id="loading-spinner" style="display:none">Loading...</div>
  <div id="menu-container" style="display:none"></div>
  <script>
    document.getElementById('process-btn').addEventListener('click', function () {
      var spinner = document.getElementById('loading-spinner');
      spinner.style.display = 'block';
      console.log('calling menu api');
      setTimeout(function () {
        var menu = document.getElementById('menu-container');
        menu.innerHTML = '<p class="dish">Pasta</p><p class="dish highlight-dish">Curry</p><p class="dish highlight-dish">Tacos</p>';
        menu.style.display = 'block';
        spinner.style.display = 'none';
        console.log('menu rendered');
      }, 300);
    });
  </script>
</body>
</html>`

func menuServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(menuPage))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newLauncher(t *testing.T, logger *logrus.Logger) *Launcher {
	t.Helper()
	if os.Getenv("SKIP_BROWSER") == "true" {
		t.Skip("Skipping browser test")
	}
	return NewLauncher(logger, os.Getenv("PLAYWRIGHT_PREINSTALLED") != "1")
}

func launch(t *testing.T, l *Launcher, opts entities.LaunchOptions) interfaces.Browser {
	t.Helper()
	b, err := l.Launch(context.Background(), opts)
	if err != nil {
		t.Skipf("Could not start Playwright: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func TestControllerMenuFlow(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	srv := menuServer(t)
	b := launch(t, newLauncher(t, logger), entities.LaunchOptions{Headless: true, Console: true})
	ctx := context.Background()

	require.NoError(t, b.Navigate(ctx, srv.URL))
	require.NoError(t, b.ExpectEnabled(ctx, scenarios.ProcessButton, 0))
	require.NoError(t, b.Click(ctx, scenarios.ProcessButton))
	require.NoError(t, b.ExpectHidden(ctx, scenarios.LoadingSpinner, 5*time.Second))
	require.NoError(t, b.ExpectVisible(ctx, scenarios.MenuContainer, 5*time.Second))
	require.NoError(t, b.ExpectVisible(ctx, scenarios.HighlightedDish, 2*time.Second))

	count, err := b.Locate(ctx, entities.Selector{CSS: ".highlight-dish"})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	path := filepath.Join(t.TempDir(), "nested", "shot.png")
	require.NoError(t, b.Screenshot(ctx, path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	var console []string
	for _, e := range hook.AllEntries() {
		if e.Data["source"] == "browser" {
			console = append(console, e.Message)
		}
	}
	assert.Contains(t, console, "Browser console: menu rendered")
}

func TestControllerExpectVisibleTimesOut(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	srv := menuServer(t)
	b := launch(t, newLauncher(t, logger), entities.LaunchOptions{Headless: true})
	ctx := context.Background()

	require.NoError(t, b.Navigate(ctx, srv.URL))

	start := time.Now()
	err := b.ExpectVisible(ctx, scenarios.MenuContainer, 500*time.Millisecond)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 10*time.Second)

	count, err := b.Locate(ctx, entities.Selector{CSS: "#does-not-exist"})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestScenariosAgainstMenuPage(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	srv := menuServer(t)
	launcher := newLauncher(t, logger)

	for _, name := range scenarios.Names() {
		t.Run(name, func(t *testing.T) {
			shot := filepath.Join(t.TempDir(), "verification.png")
			sc, err := scenarios.Lookup(name, scenarios.Settings{
				BaseURL:        srv.URL,
				ScreenshotPath: shot,
				Headless:       true,
			})
			require.NoError(t, err)

			report, err := verifier.NewVerifier(launcher, nil, nil, logger).Run(context.Background(), sc)
			if err != nil && strings.Contains(err.Error(), "failed to launch browser") {
				t.Skipf("Could not start Playwright: %v", err)
			}
			require.NoError(t, err)
			assert.True(t, report.Passed())
			assert.FileExists(t, shot)
		})
	}
}

func TestMilliseconds(t *testing.T) {
	assert.Nil(t, milliseconds(0))
	require.NotNil(t, milliseconds(60*time.Second))
	assert.Equal(t, 60000.0, *milliseconds(60 * time.Second))
}
