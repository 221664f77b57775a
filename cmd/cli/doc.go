// Package cli constructs the branchview command-line interface, wiring the
// Cobra root command, configuration loader, and structured logging primitives
// around the branch status report.
package cli
