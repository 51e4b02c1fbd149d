package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/muurk/dcmview/internal/config"
)

var forceInit bool

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing configuration file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage dcmview preferences",
	Long: `Manage the dcmview configuration file.

The file holds viewer preferences (scroll step, value preview length, mouse
capture, private tag dimming, live reload), the color theme and the list of
recently opened files.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the default settings",
	Example: `  # Create the file
  dcmview config init

  # Reset an existing file to the defaults
  dcmview config init --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	printer := newPrinter()
	if config.ConfigExists() && !forceInit {
		if !isatty.IsTerminal(os.Stdin.Fd()) {
			return fmt.Errorf("configuration file already exists at %s (use --force to overwrite)", path)
		}
		warnings := []string{
			"A configuration file already exists at " + path,
			"Its preferences, theme and recent files will be replaced by the defaults",
		}
		if !printer.Confirm("Configuration exists", warnings, "Overwrite?", os.Stdin) {
			return nil
		}
	}

	if err := config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	printer.PrintSuccess("Configuration written", map[string]string{"Path": path})
	return nil
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}

		source := "defaults (no file)"
		if config.ConfigExists() {
			source = path
		}
		v := registry.Viewer

		printer := newPrinter()
		printer.PrintHeader("Configuration", "dcmview config show", map[string]string{
			"Source":         source,
			"Scroll step":    strconv.Itoa(v.ScrollStep),
			"Preview length": strconv.Itoa(v.PreviewLength),
			"Mouse":          strconv.FormatBool(v.Mouse),
			"Dim private":    strconv.FormatBool(v.DimPrivateTags),
			"Watch":          strconv.FormatBool(v.Watch),
			"Recent files":   strconv.Itoa(len(registry.RecentFiles)),
		})

		data, err := registry.Marshal()
		if err != nil {
			return err
		}
		printer.Newline()
		printer.Print(string(data))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}
