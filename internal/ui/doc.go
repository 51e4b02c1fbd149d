// Package ui provides styled output for the non-interactive dcmview
// commands.
//
// The interactive browser lives in package browser. The components here
// are printed once and the process moves on:
//
//   - Header: command banner showing the operation name and parameters
//   - Result: success, warning, or failure boxes with details and
//     troubleshooting tips
//   - Printer: writes the above to an io.Writer and asks yes/no questions
//
// Example:
//
//	p := ui.NewPrinter(os.Stdout)
//	p.PrintHeader("Configuration", "dcmview config show", map[string]string{
//	    "Path": path,
//	})
//	p.PrintError("Cannot open file", err, dicomfile.Troubleshooting(err))
//
// # Logging Integration
//
// Logging is controlled via the DCMVIEW_LOG_LEVEL environment variable.
// When unset or empty, zap logging is silent so the curated output is
// displayed cleanly.
package ui
