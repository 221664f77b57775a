package branchstatus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/branchview/internal/execshell"
	"github.com/temirov/branchview/internal/githubcli"
	"github.com/temirov/branchview/internal/ui"
	"github.com/temirov/branchview/internal/utils/flags"
)

const (
	commandUseConstant                    = "branchview [repository]"
	commandShortDescriptionConstant       = "Report every branch of a repository against its main branch"
	commandLongDescriptionConstant        = "branchview lists pull request state and ahead/behind commit counts for every branch of a GitHub repository relative to its main branch."
	commandExecutionErrorTemplateConstant = "branch report failed: %w"
	flagSortNameConstant                  = "sort"
	flagSortDescriptionConstant           = "Comma-separated sort fields (branch, pr, ahead, behind, ours); prefix a field with - for descending order"
	flagFilterNameConstant                = "filter"
	flagFilterDescriptionConstant         = "Keep only branches whose name contains this substring"
	flagSinceNameConstant                 = "since"
	flagSinceDescriptionConstant          = "Commit to test for ancestry; adds the Ours column"
	flagLimitNameConstant                 = "limit"
	flagLimitDescriptionConstant          = "Maximum number of pull requests to examine"
	flagNoColorNameConstant               = "no-color"
	flagNoColorDescriptionConstant        = "Render the report without color attributes"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies command configuration values.
type ConfigurationProvider func() CommandConfiguration

// HumanReadableLoggingProvider reports whether console formatted logging is active.
type HumanReadableLoggingProvider func() bool

// CommandExecutor runs git and GitHub CLI commands for the report pipeline.
type CommandExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// CommandBuilder assembles the Cobra command for the branch status report.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	Executor                     CommandExecutor
	OutputWriter                 io.Writer
}

type commandOptions struct {
	reportOptions Options
	disableColors bool
}

// Build constructs the branchview report command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	defaultConfiguration := builder.resolveConfiguration()

	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}

	command.Flags().String(flagSortNameConstant, defaultConfiguration.Sort, flagSortDescriptionConstant)
	command.Flags().String(flagFilterNameConstant, "", flagFilterDescriptionConstant)
	command.Flags().String(flagSinceNameConstant, "", flagSinceDescriptionConstant)
	command.Flags().Int(flagLimitNameConstant, defaultConfiguration.PullRequestLimit, flagLimitDescriptionConstant)
	flags.AddToggleFlag(command.Flags(), nil, flagNoColorNameConstant, "", defaultConfiguration.DisableColors, flagNoColorDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options := builder.parseOptions(command, arguments)

	logger := builder.resolveLogger()
	executor, executorError := builder.resolveExecutor(logger)
	if executorError != nil {
		return executorError
	}

	githubClient, clientError := githubcli.NewClient(executor)
	if clientError != nil {
		return clientError
	}

	repositoryResolver, resolverError := NewCLIRepositoryResolver(githubClient, executor)
	if resolverError != nil {
		return resolverError
	}

	service, serviceError := NewService(Dependencies{
		Logger:   logger,
		GitHub:   githubClient,
		Resolver: repositoryResolver,
	})
	if serviceError != nil {
		return serviceError
	}

	reportResult, runError := service.Run(command.Context(), options.reportOptions)
	if runError != nil {
		var unknownFieldError UnknownSortFieldError
		if errors.As(runError, &unknownFieldError) {
			return runError
		}
		if errors.Is(runError, ErrNoMainBranch) || errors.Is(runError, ErrRepositoryNotResolved) {
			return runError
		}
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}

	renderer, rendererError := NewTableRenderer(builder.resolveOutputWriter(command), options.disableColors)
	if rendererError != nil {
		return rendererError
	}

	return renderer.Render(reportResult)
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string) commandOptions {
	configuration := builder.resolveConfiguration()

	sortSpecification := configuration.Sort
	if command.Flags().Changed(flagSortNameConstant) {
		sortFlagValue, _ := command.Flags().GetString(flagSortNameConstant)
		sortSpecification = sortFlagValue
	}

	pullRequestLimit := configuration.PullRequestLimit
	if command.Flags().Changed(flagLimitNameConstant) {
		limitFlagValue, _ := command.Flags().GetInt(flagLimitNameConstant)
		pullRequestLimit = limitFlagValue
	}

	disableColors := configuration.DisableColors
	if command.Flags().Changed(flagNoColorNameConstant) {
		noColorFlagValue, _ := command.Flags().GetBool(flagNoColorNameConstant)
		disableColors = noColorFlagValue
	}

	filterSubstring, _ := command.Flags().GetString(flagFilterNameConstant)
	sinceCommit, _ := command.Flags().GetString(flagSinceNameConstant)

	repositoryIdentifier := ""
	if len(arguments) > 0 {
		repositoryIdentifier = strings.TrimSpace(arguments[0])
	}

	return commandOptions{
		reportOptions: Options{
			Repository:        repositoryIdentifier,
			SortSpecification: sortSpecification,
			FilterSubstring:   filterSubstring,
			SinceCommit:       sinceCommit,
			PullRequestLimit:  pullRequestLimit,
		},
		disableColors: disableColors,
	}
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveExecutor(logger *zap.Logger) (CommandExecutor, error) {
	if builder.Executor != nil {
		return builder.Executor, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner)
	if creationError != nil {
		return nil, creationError
	}

	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		shellExecutor.SetCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))
	}

	return shellExecutor, nil
}

func (builder *CommandBuilder) resolveOutputWriter(command *cobra.Command) io.Writer {
	if builder.OutputWriter != nil {
		return builder.OutputWriter
	}
	if command != nil && command.OutOrStdout() != nil {
		return command.OutOrStdout()
	}
	return os.Stdout
}
