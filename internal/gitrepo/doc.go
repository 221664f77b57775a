// Package gitrepo contains helpers for interrogating Git remotes.
//
// It parses textual remote URLs into structured owner and repository
// components so callers can derive GitHub identifiers without shelling out
// more than once.
package gitrepo
