// Package logging provides a subsystem-tagged structured logging system
// for the scraper's CLI, built directly on log/slog.
//
// # Architecture
//
// ## Log Levels
//   - **Debug**: Detailed information for debugging and development
//   - **Info**: General informational messages about run progress
//   - **Warn**: Warning messages that indicate potential issues
//   - **Error**: Error messages for failures and exceptional conditions
//
// ## Structured Logging
// Every log call accepts a subsystem tag for filtering and categorization:
//
//	log := logging.New(logging.LevelInfo, os.Stderr)
//	log.Info("Executor", "starting run against %s", systemInfo.Name)
//	log.Debug("Connection", "probing OS family via uname -s")
//	log.Warn("Registry", "plugin %q not found, skipping", name)
//	log.Error("Connection", err, "failed to connect to %s", host)
//
// # Subsystem organization
//
// Logs are organized by subsystem to make a run's text log filterable:
//
//   - **CLI**: argument parsing and top-level command dispatch
//   - **ConfigLoader**: plugin configuration loading and merge
//   - **Registry**: plugin/connection-manager/collator registration
//   - **Executor**: queue draining and dispatch
//   - **Connection**: transport connect/disconnect/probe
//   - **Differ**: compare-runs loading and diffing
//
// # Thread safety
//
// A *Logger wraps a single *slog.Logger and is safe for concurrent use
// by multiple goroutines, though the executor itself dispatches plugins
// single-threaded and never needs that safety internally.
package logging
