package branchstatus

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/branchview/internal/execshell"
	"github.com/temirov/branchview/internal/githubcli"
	"github.com/temirov/branchview/internal/gitrepo"
)

const (
	gitRemoteSubcommandConstant                  = "remote"
	gitRemoteGetURLSubcommandConstant            = "get-url"
	originRemoteNameConstant                     = "origin"
	repositoryNotResolvedMessageConstant         = "no repository specified and the current directory has no GitHub remote"
	metadataResolverNotConfiguredMessageConstant = "repository metadata resolver not configured"
	gitExecutorNotConfiguredMessageConstant      = "git executor not configured"
)

var (
	// ErrRepositoryNotResolved indicates neither the GitHub CLI nor the git remote produced a repository identifier.
	ErrRepositoryNotResolved = errors.New(repositoryNotResolvedMessageConstant)
	// ErrMetadataResolverNotConfigured indicates the resolver was created without a metadata resolver.
	ErrMetadataResolverNotConfigured = errors.New(metadataResolverNotConfiguredMessageConstant)
	// ErrGitExecutorNotConfigured indicates the resolver was created without a git executor.
	ErrGitExecutorNotConfigured = errors.New(gitExecutorNotConfiguredMessageConstant)
)

// RepositoryResolver determines the owner/repository identifier the report runs against.
type RepositoryResolver interface {
	ResolveRepository(executionContext context.Context) (string, error)
}

// RepositoryMetadataResolver resolves repository metadata for the current directory.
type RepositoryMetadataResolver interface {
	ResolveRepoMetadata(executionContext context.Context) (githubcli.RepositoryMetadata, error)
}

// GitRemoteExecutor runs git commands for the remote URL fallback.
type GitRemoteExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// CLIRepositoryResolver resolves the working repository through the GitHub CLI
// and falls back to parsing the origin remote URL when the CLI cannot answer.
type CLIRepositoryResolver struct {
	metadataResolver RepositoryMetadataResolver
	gitExecutor      GitRemoteExecutor
}

// NewCLIRepositoryResolver validates the collaborators and returns a CLIRepositoryResolver.
func NewCLIRepositoryResolver(metadataResolver RepositoryMetadataResolver, gitExecutor GitRemoteExecutor) (*CLIRepositoryResolver, error) {
	if metadataResolver == nil {
		return nil, ErrMetadataResolverNotConfigured
	}
	if gitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &CLIRepositoryResolver{metadataResolver: metadataResolver, gitExecutor: gitExecutor}, nil
}

// ResolveRepository returns the owner/repository identifier for the current
// directory. Failures of both detection paths surface as ErrRepositoryNotResolved.
func (resolver *CLIRepositoryResolver) ResolveRepository(executionContext context.Context) (string, error) {
	repositoryMetadata, metadataError := resolver.metadataResolver.ResolveRepoMetadata(executionContext)
	if metadataError == nil {
		trimmedIdentifier := strings.TrimSpace(repositoryMetadata.NameWithOwner)
		if len(trimmedIdentifier) > 0 {
			return trimmedIdentifier, nil
		}
	}

	remoteDetails := execshell.CommandDetails{
		Arguments: []string{gitRemoteSubcommandConstant, gitRemoteGetURLSubcommandConstant, originRemoteNameConstant},
	}
	executionResult, executionError := resolver.gitExecutor.ExecuteGit(executionContext, remoteDetails)
	if executionError != nil {
		return "", ErrRepositoryNotResolved
	}

	trimmedRemoteURL := strings.TrimSpace(executionResult.StandardOutput)
	if len(trimmedRemoteURL) == 0 {
		return "", ErrRepositoryNotResolved
	}

	parsedRemote, parseError := gitrepo.ParseRemoteURL(trimmedRemoteURL)
	if parseError != nil {
		return "", ErrRepositoryNotResolved
	}

	return parsedRemote.NameWithOwner(), nil
}
