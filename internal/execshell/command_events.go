package execshell

// CommandEventObserver receives lifecycle notifications while shell commands run.
type CommandEventObserver interface {
	// CommandStarted notifies observers that a command is about to execute.
	CommandStarted(command ShellCommand)
	// CommandCompleted notifies observers that a command finished and supplies its result.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed reports failures that prevented a command from producing a result.
	CommandExecutionFailed(command ShellCommand, failure error)
}

// noopCommandEventObserver discards every command event.
type noopCommandEventObserver struct{}

// CommandStarted implements CommandEventObserver for the no-op observer.
func (noopCommandEventObserver) CommandStarted(ShellCommand) {}

// CommandCompleted implements CommandEventObserver for the no-op observer.
func (noopCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

// CommandExecutionFailed implements CommandEventObserver for the no-op observer.
func (noopCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}
