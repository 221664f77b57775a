// Package branchstatus assembles the branch divergence report.
//
// It resolves the target repository, collects pull request states and branch
// comparisons through the GitHub CLI, sorts the resulting rows with a small
// field specification language, and renders the report as a colored table.
package branchstatus
