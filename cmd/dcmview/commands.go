package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/dcmview/internal/browser"
	"github.com/muurk/dcmview/internal/config"
	"github.com/muurk/dcmview/internal/dicomfile"
	"github.com/muurk/dcmview/internal/logging"
	"github.com/muurk/dcmview/internal/tagdiff"
	"github.com/muurk/dcmview/internal/tagtree"
	"github.com/muurk/dcmview/internal/ui"
	"github.com/muurk/dcmview/internal/validation"
)

// Browse command flags
var (
	diffPaths []string
	watchFile bool
	noMouse   bool
)

func init() {
	rootCmd.Flags().StringSliceVar(&diffPaths, "diff", nil, "Compare two files: BASE,MODIFIED")
	rootCmd.Flags().BoolVar(&watchFile, "watch", false, "Reload the file when it changes on disk")
	rootCmd.Flags().BoolVar(&noMouse, "no-mouse", false, "Do not capture the mouse")
}

// setupLogging initializes the logger before any command runs.
func setupLogging(cmd *cobra.Command, args []string) error {
	return logging.Initialize(logLevel, logPath(cmd))
}

// logPath picks the log file for cmd. The browser runs from the root command
// and owns the terminal, so unless told otherwise its logs go to the state
// directory. Other commands log to stderr.
func logPath(cmd *cobra.Command) string {
	if logFile != "" || cmd.HasParent() || os.Getenv(logging.LogFileEnvVar) != "" {
		return logFile
	}
	p, err := config.GetLogPath()
	if err != nil {
		return ""
	}
	return p
}

func newPrinter() *ui.Printer {
	return ui.NewPrinter(os.Stdout)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) == 0 && len(diffPaths) == 0:
		return cmd.Help()
	case len(args) > 0 && len(diffPaths) > 0:
		return errors.New("--diff cannot be combined with a FILE argument")
	case len(diffPaths) > 0 && len(diffPaths) != 2:
		return fmt.Errorf("--diff needs exactly two paths, got %d", len(diffPaths))
	}
	cmd.SilenceUsage = true

	registry, err := config.LoadRegistry()
	if err != nil {
		logging.Warn("Using default configuration", zap.Error(err))
		registry = config.NewRegistry()
	}

	prefs := *registry.Viewer
	if noMouse {
		prefs.Mouse = false
	}
	if cmd.Flags().Changed("watch") {
		prefs.Watch = watchFile
	}
	loadOpts := dicomfile.Options{PreviewLength: prefs.PreviewLength}

	opts := browser.Options{
		Prefs: prefs,
		Theme: *registry.Theme,
	}

	var tree *tagtree.Tree
	if len(diffPaths) == 2 {
		var cmp *comparison
		cmp, err = openDiff(cmd.Context(), loadOpts, diffPaths[0], diffPaths[1])
		if err != nil {
			return reportLoadError(err)
		}
		tree = cmp.tree
		opts.Source = diffPaths[0] + " ↔ " + diffPaths[1]
		opts.Diff = &cmp.stats
		opts.Validation = &cmp.baseline
		if prefs.Watch {
			warnWatchIgnored(newPrinter(), cmd.Flags().Changed("watch"))
		}
	} else {
		path := args[0]
		tree, err = dicomfile.Open(path, loadOpts)
		if err != nil {
			return reportLoadError(err)
		}
		opts.Source = path
		if prefs.Watch {
			opts.WatchPath = path
			opts.Reload = func() (*tagtree.Tree, error) {
				return dicomfile.Open(path, loadOpts)
			}
		}
		rememberFile(registry, path)
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("dcmview needs an interactive terminal on stdout")
	}

	model := browser.New(tree, opts)
	defer model.Close()

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if prefs.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}

	if _, err := tea.NewProgram(model, programOpts...).Run(); err != nil {
		return fmt.Errorf("browser error: %w", err)
	}
	return nil
}

// comparison is a merged tree of two files with the Type 1 check of the
// baseline.
type comparison struct {
	tree     *tagtree.Tree
	stats    tagdiff.Stats
	baseline validation.Result
}

// openDiff decodes both files concurrently and merges them.
func openDiff(ctx context.Context, opts dicomfile.Options, base, modified string) (*comparison, error) {
	loaded, err := dicomfile.LoadAll(ctx, opts, base, modified)
	if err != nil {
		return nil, err
	}
	return compare(loaded[0], loaded[1])
}

func compare(base, modified []tagtree.Element) (*comparison, error) {
	merged, stats := tagdiff.Compare(base, modified)
	tree, err := tagtree.Build(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to build comparison: %w", err)
	}

	logging.Info("Files compared", zap.Stringer("stats", stats))
	return &comparison{
		tree:     tree,
		stats:    stats,
		baseline: validation.Validate(base),
	}, nil
}

// warnWatchIgnored tells the user live reload is off before the browser
// takes over the screen. fromFlag is set when --watch was given explicitly
// rather than through the configuration file.
func warnWatchIgnored(printer *ui.Printer, fromFlag bool) {
	source := "configuration (viewer.watch)"
	if fromFlag {
		source = "--watch flag"
	}
	logging.Warn("Watching is not available when comparing files")
	printer.PrintWarning("Live reload disabled", map[string]string{
		"Reason":  "watching is not available when comparing two files",
		"Ignored": source,
	})
}

// reportLoadError prints a failure box with troubleshooting tips.
func reportLoadError(err error) error {
	printLoadError(ui.NewPrinter(os.Stderr), err)
	return errReported
}

func printLoadError(printer *ui.Printer, err error) {
	tips := dicomfile.Troubleshooting(err)

	var le *dicomfile.LoadError
	if !errors.As(err, &le) {
		printer.PrintError("Cannot open file", err, tips)
		return
	}
	result := ui.NewFailureResult("Cannot open "+filepath.Base(le.Path), err, tips).
		AddDetail("Path", le.Path).
		AddDetail("Problem", le.Type.String())
	printer.PrintResult(result)
}

// rememberFile records path in the recent files list. Failures are logged
// only: the file is already open.
func rememberFile(registry *config.Registry, path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	registry.AddRecentFile(abs)
	if err := registry.Save(); err != nil {
		logging.Warn("Failed to save recent files", zap.Error(err))
	}
}
