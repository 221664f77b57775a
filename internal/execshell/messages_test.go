package execshell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildStartedMessageForRemoteLookupIncludesRemoteAndDirectory(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"remote", "get-url", "origin"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Checking origin remote for /workspace/repo", message)
}

func TestBuildSuccessMessageForRemoteLookupIncludesRemoteURL(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"remote", "get-url", "origin"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildSuccessMessage(command, ExecutionResult{StandardOutput: "git@github.com:acme/widgets.git\n"})

	require.Equal(t, "origin remote for /workspace/repo points to git@github.com:acme/widgets.git", message)
}

func TestBuildStartedMessageForPullRequestListIncludesStateAndRepository(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGitHub,
		Details: CommandDetails{
			Arguments: []string{"pr", "list", "--repo", "acme/widgets", "--state", "all", "--json", "headRefName,state"},
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Listing all pull requests for acme/widgets", message)
}

func TestBuildStartedMessageForBranchListingNamesRepository(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGitHub,
		Details: CommandDetails{
			Arguments: []string{"api", "repos/acme/widgets/branches", "--paginate"},
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Listing branches for acme/widgets", message)
}

func TestBuildFailureMessageForComparisonIncludesReferencesAndStandardError(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGitHub,
		Details: CommandDetails{
			Arguments: []string{"api", "repos/acme/widgets/compare/main...feature/login"},
		},
	}

	message := formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 1, StandardError: "Not Found\n"})

	require.Equal(t, "Failed to compare main to feature/login for acme/widgets (exit code 1: Not Found)", message)
}

func TestShouldAnnounceStartSuppressesRepositoryViewCommands(t *testing.T) {
	formatter := CommandMessageFormatter{}

	repoViewCommand := ShellCommand{
		Name:    CommandGitHub,
		Details: CommandDetails{Arguments: []string{"repo", "view", "--json", "nameWithOwner"}},
	}
	pullRequestCommand := ShellCommand{
		Name:    CommandGitHub,
		Details: CommandDetails{Arguments: []string{"pr", "list", "--state", "all"}},
	}

	require.False(t, formatter.ShouldAnnounceStart(repoViewCommand))
	require.True(t, formatter.ShouldAnnounceStart(pullRequestCommand))
}

func TestBuildStartedMessageFallsBackToGenericLabelForUnrecognizedCommands(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"status", "--porcelain"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Running git status --porcelain (in /workspace/repo)", message)
}
