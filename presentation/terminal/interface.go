package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"menu_verification/application/verifier"
	"menu_verification/domain/entities"
	"menu_verification/domain/interfaces"
	"menu_verification/infrastructure/browser"
	"menu_verification/infrastructure/config"
	"menu_verification/infrastructure/preflight"
	"menu_verification/infrastructure/scenarios"
	"menu_verification/infrastructure/storage"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

type TerminalInterface struct {
	cfg      *config.Config
	logger   *logrus.Logger
	launcher interfaces.BrowserLauncher
	out      io.Writer
	root     *cobra.Command
}

func NewTerminalInterface() (*TerminalInterface, error) {
	// Setup logger
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	cfg, err := config.Load(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.SetLevel(cfg.LogLevel)

	return newTerminalInterface(cfg, logger, nil, os.Stdout), nil
}

// newTerminalInterface wires the commands; a nil launcher is replaced by
// the playwright launcher on first use.
func newTerminalInterface(cfg *config.Config, logger *logrus.Logger, launcher interfaces.BrowserLauncher, out io.Writer) *TerminalInterface {
	t := &TerminalInterface{
		cfg:      cfg,
		logger:   logger,
		launcher: launcher,
		out:      out,
	}
	t.root = t.rootCommand()
	return t
}

func (t *TerminalInterface) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "menu-verify",
		Short: "Visual verification of the menu page",
		Long: `Drives a headless browser against the locally served menu page,
clicks the process button, waits for the API-driven update and saves a
screenshot as evidence.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(t.out)

	root.AddCommand(t.runCommand(), t.listCommand(), t.versionCommand())
	return root
}

func (t *TerminalInterface) runCommand() *cobra.Command {
	var headed, noPreflight bool

	cmd := &cobra.Command{
		Use:   "run <scenario>... | all",
		Short: "Run verification scenarios",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if headed {
				t.cfg.Headless = false
			}
			if noPreflight {
				t.cfg.Preflight = false
			}
			return t.runScenarios(cmd.Context(), args)
		},
	}

	cmd.Flags().StringVar(&t.cfg.BaseURL, "base-url", t.cfg.BaseURL, "URL of the locally served page")
	cmd.Flags().StringVar(&t.cfg.ScreenshotPath, "screenshot", t.cfg.ScreenshotPath, "Path the screenshot is written to")
	cmd.Flags().StringVar(&t.cfg.ReportPath, "report", t.cfg.ReportPath, "Append a JSON run report to this file")
	cmd.Flags().BoolVar(&headed, "headed", false, "Show the browser window")
	cmd.Flags().BoolVar(&noPreflight, "no-preflight", false, "Skip the page server reachability check")
	return cmd
}

func (t *TerminalInterface) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range scenarios.Names() {
				sc, err := scenarios.Lookup(name, t.settings())
				if err != nil {
					return err
				}
				fmt.Fprintf(t.out, "%-16s %s\n", sc.Name, sc.Description)
			}
			return nil
		},
	}
}

func (t *TerminalInterface) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(t.out, "menu-verify %s\n", t.root.Version)
		},
	}
}

func (t *TerminalInterface) settings() scenarios.Settings {
	return scenarios.Settings{
		BaseURL:        t.cfg.BaseURL,
		ScreenshotPath: t.cfg.ScreenshotPath,
		Headless:       t.cfg.Headless,
	}
}

func (t *TerminalInterface) resolve(names []string) ([]entities.Scenario, error) {
	if len(names) == 1 && names[0] == "all" {
		names = scenarios.Names()
	}
	resolved := make([]entities.Scenario, 0, len(names))
	for _, name := range names {
		sc, err := scenarios.Lookup(name, t.settings())
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, sc)
	}
	return resolved, nil
}

func (t *TerminalInterface) runScenarios(ctx context.Context, names []string) error {
	resolved, err := t.resolve(names)
	if err != nil {
		return err
	}

	if t.launcher == nil {
		t.launcher = browser.NewLauncher(t.logger, t.cfg.InstallBrowsers)
	}
	var check interfaces.Preflight
	if t.cfg.Preflight {
		check = preflight.NewHTTPCheck(t.logger, 0)
	}
	var reports interfaces.ReportStore
	if t.cfg.ReportPath != "" {
		reports = storage.NewRunReports(t.cfg.ReportPath)
	}

	v := verifier.NewVerifier(t.launcher, check, reports, t.logger)
	results, err := v.RunAll(ctx, resolved)
	for _, r := range results {
		t.printReport(r)
	}
	return err
}

func (t *TerminalInterface) printReport(r entities.RunReport) {
	elapsed := r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond)
	if r.Passed() {
		fmt.Fprintf(t.out, "PASS %s (%s) screenshot: %s\n", r.Scenario, elapsed, r.Screenshot)
		return
	}
	fmt.Fprintf(t.out, "FAIL %s (%s): %s\n", r.Scenario, elapsed, r.Error)
}

// Run executes the command line; SIGINT and SIGTERM cancel the running scenario
func (t *TerminalInterface) Run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	t.root.SetArgs(args)
	return t.root.ExecuteContext(ctx)
}
