package branchstatus

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/branchview/internal/githubcli"
)

const (
	mainBranchCandidateNameConstant                = "main"
	masterBranchCandidateNameConstant              = "master"
	noMainBranchMessageConstant                    = "no main branch found"
	githubOperationsNotConfiguredMessageConstant   = "github operations not configured"
	repositoryResolverNotConfiguredMessageConstant = "repository resolver not configured"
	listPullRequestsFailureTemplateConstant        = "failed to list pull requests: %w"
	listBranchesFailureTemplateConstant            = "failed to list branches: %w"
	resolvedRepositoryDebugMessageConstant         = "Resolved repository"
	collectedBranchesDebugMessageConstant          = "Collected branches"
	assembledReportDebugMessageConstant            = "Assembled report"
	repositoryLogFieldNameConstant                 = "repository"
	mainBranchLogFieldNameConstant                 = "main_branch"
	candidateCountLogFieldNameConstant             = "candidate_count"
	pullRequestCountLogFieldNameConstant           = "pull_request_count"
	rowCountLogFieldNameConstant                   = "row_count"
)

var mainBranchCandidateNames = []string{mainBranchCandidateNameConstant, masterBranchCandidateNameConstant}

var (
	// ErrGitHubOperationsNotConfigured indicates the service was created without GitHub operations.
	ErrGitHubOperationsNotConfigured = errors.New(githubOperationsNotConfiguredMessageConstant)
	// ErrRepositoryResolverNotConfigured indicates the service was created without a repository resolver.
	ErrRepositoryResolverNotConfigured = errors.New(repositoryResolverNotConfiguredMessageConstant)
	// ErrNoMainBranch indicates the repository lists neither a main nor a master branch.
	ErrNoMainBranch = errors.New(noMainBranchMessageConstant)
)

// GitHubOperations covers the GitHub CLI calls the report pipeline performs.
type GitHubOperations interface {
	ListPullRequests(executionContext context.Context, repository string, options githubcli.PullRequestListOptions) ([]githubcli.PullRequest, error)
	ListBranchNames(executionContext context.Context, repository string) ([]string, error)
	CompareRefs(executionContext context.Context, repository string, baseReference string, headReference string) (githubcli.CommitComparison, error)
}

// Dependencies lists the collaborators required to run the report.
type Dependencies struct {
	Logger   *zap.Logger
	GitHub   GitHubOperations
	Resolver RepositoryResolver
}

// Options captures one report invocation.
type Options struct {
	Repository        string
	SortSpecification string
	FilterSubstring   string
	SinceCommit       string
	PullRequestLimit  int
}

// Result carries the assembled report rows together with the resolved
// repository and main branch. ShowOurs reports whether ancestry was requested.
type Result struct {
	Repository string
	MainBranch string
	Rows       []Row
	ShowOurs   bool
}

// Service orchestrates the report pipeline: resolve repository, fetch pull
// request states and branches, compare candidates against main, and assemble
// sorted rows. Rendering is left to the caller.
type Service struct {
	logger     *zap.Logger
	github     GitHubOperations
	resolver   RepositoryResolver
	comparator *Comparator
}

// NewService validates the dependencies and returns a Service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.GitHub == nil {
		return nil, ErrGitHubOperationsNotConfigured
	}
	if dependencies.Resolver == nil {
		return nil, ErrRepositoryResolverNotConfigured
	}

	serviceLogger := dependencies.Logger
	if serviceLogger == nil {
		serviceLogger = zap.NewNop()
	}

	comparator, comparatorError := NewComparator(dependencies.GitHub)
	if comparatorError != nil {
		return nil, comparatorError
	}

	return &Service{
		logger:     serviceLogger,
		github:     dependencies.GitHub,
		resolver:   dependencies.Resolver,
		comparator: comparator,
	}, nil
}

// Run executes the report pipeline. The sort specification is parsed before
// any remote call so configuration mistakes surface without network activity.
// Per-branch comparison failures degrade to unknown counts; fatal errors are
// an unresolvable repository, a missing main branch, and an unknown sort field.
func (service *Service) Run(executionContext context.Context, options Options) (Result, error) {
	sortKeys, sortError := ParseSortSpecification(options.SortSpecification)
	if sortError != nil {
		return Result{}, sortError
	}

	repositoryIdentifier := strings.TrimSpace(options.Repository)
	if len(repositoryIdentifier) == 0 {
		resolvedIdentifier, resolutionError := service.resolver.ResolveRepository(executionContext)
		if resolutionError != nil {
			return Result{}, resolutionError
		}
		repositoryIdentifier = resolvedIdentifier
	}
	service.logger.Debug(resolvedRepositoryDebugMessageConstant, zap.String(repositoryLogFieldNameConstant, repositoryIdentifier))

	pullRequests, pullRequestError := service.github.ListPullRequests(executionContext, repositoryIdentifier, githubcli.PullRequestListOptions{ResultLimit: options.PullRequestLimit})
	if pullRequestError != nil {
		return Result{}, fmt.Errorf(listPullRequestsFailureTemplateConstant, pullRequestError)
	}
	pullRequestStatuses := make(map[string]string, len(pullRequests))
	for _, pullRequest := range pullRequests {
		pullRequestStatuses[pullRequest.HeadRefName] = strings.ToLower(pullRequest.State)
	}

	branchNames, branchListError := service.github.ListBranchNames(executionContext, repositoryIdentifier)
	if branchListError != nil {
		return Result{}, fmt.Errorf(listBranchesFailureTemplateConstant, branchListError)
	}

	mainBranch, mainBranchFound := findMainBranch(branchNames)
	if !mainBranchFound {
		return Result{}, ErrNoMainBranch
	}

	candidateBranches := excludeBranchName(branchNames, mainBranch)
	service.logger.Debug(collectedBranchesDebugMessageConstant,
		zap.String(mainBranchLogFieldNameConstant, mainBranch),
		zap.Int(candidateCountLogFieldNameConstant, len(candidateBranches)),
		zap.Int(pullRequestCountLogFieldNameConstant, len(pullRequests)))

	comparisons := service.comparator.CompareBranches(executionContext, repositoryIdentifier, mainBranch, candidateBranches)

	sinceCommit := strings.TrimSpace(options.SinceCommit)
	showOurs := len(sinceCommit) > 0
	var ancestryStates []TriState
	if showOurs {
		ancestryStates = service.comparator.CheckAncestry(executionContext, repositoryIdentifier, sinceCommit, candidateBranches)
	}

	reportRows := assembleRows(candidateBranches, pullRequestStatuses, comparisons, ancestryStates, options.FilterSubstring)
	SortRows(reportRows, sortKeys)
	service.logger.Debug(assembledReportDebugMessageConstant, zap.Int(rowCountLogFieldNameConstant, len(reportRows)))

	return Result{
		Repository: repositoryIdentifier,
		MainBranch: mainBranch,
		Rows:       reportRows,
		ShowOurs:   showOurs,
	}, nil
}

func findMainBranch(branchNames []string) (string, bool) {
	for _, candidateName := range mainBranchCandidateNames {
		for _, branchName := range branchNames {
			if branchName == candidateName {
				return candidateName, true
			}
		}
	}
	return "", false
}
