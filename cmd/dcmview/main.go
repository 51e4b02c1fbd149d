// Dcmview is a terminal browser for the tag tree of DICOM files.
//
// It opens one file, or a pair of files to compare, and shows every element
// as a collapsible tree. Sequences expand and collapse, the list scrolls
// with the keyboard or the mouse wheel, and incremental search jumps
// between matching tags.
//
// Usage:
//
//	dcmview FILE
//	dcmview --diff BASE,MODIFIED
//
// See 'dcmview --help' for available commands.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/dcmview/internal/logging"
	"github.com/muurk/dcmview/internal/version"
)

// errReported is returned by commands that already printed their failure.
var errReported = errors.New("error already reported")

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dcmview [FILE]",
	Short: "Terminal browser for DICOM tag trees",
	Long: `Browse the tags of a DICOM file as an interactive tree.

Sequences and items expand and collapse, the list scrolls with the keyboard
or the mouse wheel, and '/' searches tag numbers, keywords and values.

With --diff, two files are compared element by element and the differences
are marked in the tree.`,
	Version: version.Version,
	Example: `  # Browse a file
  dcmview scan.dcm

  # Reload the view whenever the file changes
  dcmview --watch scan.dcm

  # Compare an anonymized copy against the original
  dcmview --diff original.dcm,anonymized.dcm`,
	Args:              cobra.MaximumNArgs(1),
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
	RunE:              runBrowse,
}

// Global flags
var (
	logLevel string
	logFile  string
)

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides "+logging.LogLevelEnvVar)
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file (default: state directory while browsing, stderr otherwise)")

	rootCmd.AddCommand(versionCmd)
}

var versionVerbose bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if !versionVerbose {
			fmt.Println("dcmview " + version.Full())
			return
		}
		printer := newPrinter()
		printer.PrintHeader("Version", "dcmview version", version.Details())
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionVerbose, "verbose", false, "Show build details")
}
