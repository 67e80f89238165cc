// Package log provides structured event capture for the timer engine.
//
// This package defines the Logger interface and Event type for capturing
// engine-level events: context lifecycle, timer lifecycle, sweeps, and
// expiration handling. It is separate from operational logging (slog) -
// event capture provides a complete machine-readable trace for debugging
// and analysis of timer behavior.
//
// # Basic Usage
//
// Applications configure capture by providing a Logger in the context config:
//
//	// For development: log to console via slog
//	cfg.EventLogger = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.EventLogger, _ = log.NewFileLogger("/var/log/stimer/engine.tlog")
//
//	// Both: use MultiLogger
//	cfg.EventLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    log.NewFileLogger("/var/log/stimer/engine.tlog"),
//	)
//
// # File Format
//
// Trace files use CBOR encoding with .tlog extension. The stimer-log CLI
// tool provides viewing, filtering, and export capabilities.
package log
