// Package ui renders command lifecycle events as human-readable console output.
//
// ConsoleCommandEventLogger translates shell command notifications into concise
// messages so execution feedback stays actionable for CLI users while detailed
// telemetry continues to flow through structured loggers.
package ui
