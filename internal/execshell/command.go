package execshell

import "context"

const (
	gitExecutableNameConstant    = "git"
	githubExecutableNameConstant = "gh"
)

// CommandName identifies an executable invoked through the shell layer.
type CommandName string

// Supported executables.
const (
	CommandGit    CommandName = CommandName(gitExecutableNameConstant)
	CommandGitHub CommandName = CommandName(githubExecutableNameConstant)
)

// CommandDetails captures the arguments and environment for one invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
}

// ShellCommand pairs an executable name with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable outputs of a completed command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner abstracts process execution so executors can be tested without spawning processes.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}
