package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitRemoteSubcommandNameConstant       = "remote"
	gitRemoteGetURLSubcommandNameConstant = "get-url"
)

const (
	gitRemoteLookupStartTemplateConstant            = "Checking %s remote for %s"
	gitRemoteLookupSuccessTemplateConstant          = "%s remote for %s points to %s"
	gitRemoteLookupFailureTemplateConstant          = "Failed to read %s remote for %s (exit code %d%s)"
	gitRemoteLookupExecutionFailureTemplateConstant = "Unable to read %s remote for %s: %s"
)

const (
	githubRepoSubcommandNameConstant                  = "repo"
	githubRepoViewSubcommandNameConstant              = "view"
	githubPullRequestSubcommandNameConstant           = "pr"
	githubPullRequestListSubcommandNameConstant       = "list"
	githubAPICommandNameConstant                      = "api"
	githubRepoFlagConstant                            = "--repo"
	githubStateFlagConstant                           = "--state"
	githubBranchesEndpointSuffixConstant              = "/branches"
	githubCompareEndpointMarkerConstant               = "/compare/"
	githubCompareRangeSeparatorConstant               = "..."
	githubCurrentRepositoryLabelConstant              = "current repository"
	githubRepoViewIdentificationArgumentCountConstant = 2
)

const (
	githubRepoViewStartTemplateConstant                              = "Retrieving repository details for %s"
	githubRepoViewSuccessTemplateConstant                            = "Retrieved repository details for %s"
	githubRepoViewFailureTemplateConstant                            = "Failed to retrieve repository details for %s (exit code %d%s)"
	githubRepoViewExecutionFailureTemplateConstant                   = "Unable to retrieve repository details for %s: %s"
	githubPullRequestListStartTemplateConstant                       = "Listing %s pull requests for %s"
	githubPullRequestListStartWithoutRepoTemplateConstant            = "Listing %s pull requests in the current repository"
	githubPullRequestListSuccessTemplateConstant                     = "Listed %s pull requests for %s"
	githubPullRequestListSuccessWithoutRepoTemplateConstant          = "Listed %s pull requests in the current repository"
	githubPullRequestListFailureTemplateConstant                     = "Failed to list %s pull requests for %s (exit code %d%s)"
	githubPullRequestListFailureWithoutRepoTemplateConstant          = "Failed to list %s pull requests in the current repository (exit code %d%s)"
	githubPullRequestListExecutionFailureTemplateConstant            = "Unable to list %s pull requests for %s: %s"
	githubPullRequestListExecutionFailureWithoutRepoTemplateConstant = "Unable to list %s pull requests in the current repository: %s"
	githubBranchListStartTemplateConstant                            = "Listing branches for %s"
	githubBranchListSuccessTemplateConstant                          = "Listed branches for %s"
	githubBranchListFailureTemplateConstant                          = "Failed to list branches for %s (exit code %d%s)"
	githubBranchListExecutionFailureTemplateConstant                 = "Unable to list branches for %s: %s"
	githubCompareStartTemplateConstant                               = "Comparing %s to %s for %s"
	githubCompareSuccessTemplateConstant                             = "Compared %s to %s for %s"
	githubCompareFailureTemplateConstant                             = "Failed to compare %s to %s for %s (exit code %d%s)"
	githubCompareExecutionFailureTemplateConstant                    = "Unable to compare %s to %s for %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

// ShouldAnnounceStart reports whether the start of the provided command deserves a console message.
func (formatter CommandMessageFormatter) ShouldAnnounceStart(command ShellCommand) bool {
	if command.Name != CommandGitHub {
		return true
	}
	if formatter.isGitHubRepoViewCommand(command.Details.Arguments) {
		return false
	}
	return true
}

func (formatter CommandMessageFormatter) isGitHubRepoViewCommand(arguments []string) bool {
	if len(arguments) < githubRepoViewIdentificationArgumentCountConstant {
		return false
	}
	primaryArgument := strings.TrimSpace(arguments[0])
	secondaryArgument := strings.TrimSpace(arguments[1])
	return primaryArgument == githubRepoSubcommandNameConstant && secondaryArgument == githubRepoViewSubcommandNameConstant
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandGitHub:
		return formatter.describeGitHubMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
	if strings.TrimSpace(arguments[0]) != gitRemoteSubcommandNameConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
	if strings.TrimSpace(arguments[1]) != gitRemoteGetURLSubcommandNameConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	remoteName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 2))

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitRemoteLookupStartTemplateConstant, remoteName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitRemoteLookupSuccessTemplateConstant, remoteName, workingDirectory, formatter.ensureValue(result.StandardOutput))
	case messageStageFailure:
		return fmt.Sprintf(gitRemoteLookupFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitRemoteLookupExecutionFailureTemplateConstant, remoteName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	primary := strings.TrimSpace(command.Details.Arguments[0])
	switch primary {
	case githubRepoSubcommandNameConstant:
		return formatter.describeGitHubRepoCommand(command, result, failure, stage)
	case githubPullRequestSubcommandNameConstant:
		return formatter.describeGitHubPullRequestCommand(command, result, failure, stage)
	case githubAPICommandNameConstant:
		return formatter.describeGitHubAPICommand(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubRepoCommand(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if !formatter.isGitHubRepoViewCommand(arguments) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	repository := githubCurrentRepositoryLabelConstant
	if positionalArgument := strings.TrimSpace(formatter.argumentAtIndex(arguments, 2)); len(positionalArgument) > 0 && !strings.HasPrefix(positionalArgument, "-") {
		repository = positionalArgument
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(githubRepoViewStartTemplateConstant, repository)
	case messageStageSuccess:
		return fmt.Sprintf(githubRepoViewSuccessTemplateConstant, repository)
	case messageStageFailure:
		return fmt.Sprintf(githubRepoViewFailureTemplateConstant, repository, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(githubRepoViewExecutionFailureTemplateConstant, repository, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubPullRequestCommand(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
	if strings.TrimSpace(arguments[1]) != githubPullRequestListSubcommandNameConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	state := formatter.ensureValue(findFlagValue(arguments, githubStateFlagConstant))
	repository := strings.TrimSpace(findFlagValue(arguments, githubRepoFlagConstant))
	hasRepositoryFlag := len(repository) > 0

	switch stage {
	case messageStageStart:
		if hasRepositoryFlag {
			return fmt.Sprintf(githubPullRequestListStartTemplateConstant, state, repository)
		}
		return fmt.Sprintf(githubPullRequestListStartWithoutRepoTemplateConstant, state)
	case messageStageSuccess:
		if hasRepositoryFlag {
			return fmt.Sprintf(githubPullRequestListSuccessTemplateConstant, state, repository)
		}
		return fmt.Sprintf(githubPullRequestListSuccessWithoutRepoTemplateConstant, state)
	case messageStageFailure:
		if hasRepositoryFlag {
			return fmt.Sprintf(githubPullRequestListFailureTemplateConstant, state, repository, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		}
		return fmt.Sprintf(githubPullRequestListFailureWithoutRepoTemplateConstant, state, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		if hasRepositoryFlag {
			return fmt.Sprintf(githubPullRequestListExecutionFailureTemplateConstant, state, repository, formatter.describeFailure(failure))
		}
		return fmt.Sprintf(githubPullRequestListExecutionFailureWithoutRepoTemplateConstant, state, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubAPICommand(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	endpoint := strings.TrimSpace(arguments[1])

	if baseReference, headReference, repository, isComparison := formatter.parseCompareEndpoint(endpoint); isComparison {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(githubCompareStartTemplateConstant, baseReference, headReference, repository)
		case messageStageSuccess:
			return fmt.Sprintf(githubCompareSuccessTemplateConstant, baseReference, headReference, repository)
		case messageStageFailure:
			return fmt.Sprintf(githubCompareFailureTemplateConstant, baseReference, headReference, repository, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(githubCompareExecutionFailureTemplateConstant, baseReference, headReference, repository, formatter.describeFailure(failure))
		}
	}

	if repository, isBranchListing := formatter.parseBranchesEndpoint(endpoint); isBranchListing {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(githubBranchListStartTemplateConstant, repository)
		case messageStageSuccess:
			return fmt.Sprintf(githubBranchListSuccessTemplateConstant, repository)
		case messageStageFailure:
			return fmt.Sprintf(githubBranchListFailureTemplateConstant, repository, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(githubBranchListExecutionFailureTemplateConstant, repository, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) parseCompareEndpoint(endpoint string) (string, string, string, bool) {
	markerIndex := strings.Index(endpoint, githubCompareEndpointMarkerConstant)
	if markerIndex < 0 {
		return emptyStringConstant, emptyStringConstant, emptyStringConstant, false
	}

	repository := formatter.extractRepositoryFromEndpointPath(endpoint[:markerIndex])
	comparisonRange := strings.TrimSpace(endpoint[markerIndex+len(githubCompareEndpointMarkerConstant):])
	rangeParts := strings.SplitN(comparisonRange, githubCompareRangeSeparatorConstant, 2)
	if len(rangeParts) != 2 {
		return emptyStringConstant, emptyStringConstant, emptyStringConstant, false
	}

	baseReference := formatter.ensureValue(rangeParts[0])
	headReference := formatter.ensureValue(rangeParts[1])
	return baseReference, headReference, repository, true
}

func (formatter CommandMessageFormatter) parseBranchesEndpoint(endpoint string) (string, bool) {
	if !strings.HasSuffix(endpoint, githubBranchesEndpointSuffixConstant) {
		return emptyStringConstant, false
	}
	repository := formatter.extractRepositoryFromEndpointPath(strings.TrimSuffix(endpoint, githubBranchesEndpointSuffixConstant))
	return repository, true
}

func (formatter CommandMessageFormatter) extractRepositoryFromEndpointPath(endpointPath string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(endpointPath), "repos/")
	trimmed = strings.TrimSuffix(trimmed, "/")
	if len(trimmed) == 0 {
		return githubCurrentRepositoryLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	return formatStandardErrorDetail(standardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index >= 0 && index < len(arguments) {
		return arguments[index]
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func findFlagValue(arguments []string, flag string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == flag && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return emptyStringConstant
}
