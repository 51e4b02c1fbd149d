// Package logging provides structured logging for dcmview.
//
// This package wraps a global zap logger with convenience functions. Logging
// is silent unless a level is given on the command line (--log-level) or in
// DCMVIEW_LOG_LEVEL.
//
// # Output
//
// The tag browser draws on the alternate screen, so log lines are written to
// a file rather than the terminal. The default location is
// $XDG_STATE_HOME/dcmview/dcmview.log; --log-file or DCMVIEW_LOG_FILE
// override it.
//
//	if err := logging.Initialize("debug", "/tmp/dcmview.log"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// # Specialized Logging
//
//	logging.LogFileLoaded(path, len(elements), time.Since(start))
//	logging.LogModeTransition("normal", "search")
//	logging.LogReload(path, err)
//
// All logging functions are safe for concurrent use.
package logging
