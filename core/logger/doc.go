// Package logger provides slog construction presets and nil-safe attribute
// helpers used across the library and by applications embedding it.
//
//	log := logger.New(logger.WithDevelopment("todo"))
//	log.Info("store ready", logger.Component("store"))
//
// Core packages accept a *slog.Logger through their WithLogger options and
// default to a discard logger, so logging is always opt-in.
package logger
