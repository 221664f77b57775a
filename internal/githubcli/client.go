package githubcli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/temirov/branchview/internal/execshell"
)

const (
	repoSubcommandConstant                  = "repo"
	viewSubcommandConstant                  = "view"
	pullRequestSubcommandConstant           = "pr"
	listSubcommandConstant                  = "list"
	apiSubcommandConstant                   = "api"
	jsonFlagConstant                        = "--json"
	repoFlagConstant                        = "--repo"
	stateFlagConstant                       = "--state"
	limitFlagConstant                       = "--limit"
	paginateFlagConstant                    = "--paginate"
	pullRequestStateAllConstant             = "all"
	repositoryFieldNameConstant             = "repository"
	baseReferenceFieldNameConstant          = "base_reference"
	headReferenceFieldNameConstant          = "head_reference"
	requiredValueMessageConstant            = "value required"
	executorNotConfiguredMessageConstant    = "github cli executor not configured"
	pullRequestLimitDefaultValueConstant    = 200
	pullRequestJSONFieldsConstant           = "headRefName,state"
	repoViewJSONFieldsConstant              = "nameWithOwner"
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	responseDecodingErrorTemplateConstant   = "%s response decoding failed: %s"
	invalidInputErrorTemplateConstant       = "%s: %s"
	branchesEndpointTemplateConstant        = "repos/%s/branches"
	compareEndpointTemplateConstant         = "repos/%s/compare/%s...%s"
	repositoryMetadataOperationNameConstant = OperationName("ResolveRepoMetadata")
	listPullRequestsOperationNameConstant   = OperationName("ListPullRequests")
	listBranchNamesOperationNameConstant    = OperationName("ListBranchNames")
	compareRefsOperationNameConstant        = OperationName("CompareRefs")
)

// OperationName describes a named GitHub CLI workflow supported by the client.
type OperationName string

// RepositoryMetadata contains key details resolved from GitHub.
type RepositoryMetadata struct {
	NameWithOwner string
}

// PullRequest represents minimal pull request details returned by GitHub CLI.
type PullRequest struct {
	HeadRefName string
	State       string
}

// PullRequestListOptions configures ListPullRequests queries.
type PullRequestListOptions struct {
	ResultLimit int
}

// CommitComparison captures how far a head reference diverges from a base reference.
type CommitComparison struct {
	Status   string
	AheadBy  int
	BehindBy int
}

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates GitHub CLI invocations through execshell.
type Client struct {
	executor GitHubCommandExecutor
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for GitHub CLI operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// ResponseDecodingError indicates JSON decoding failures.
type ResponseDecodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Operation, decodingError.Cause)
}

// Unwrap exposes the underlying JSON error.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// NewClient constructs a GitHub CLI client.
func NewClient(executor GitHubCommandExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// ResolveRepoMetadata retrieves metadata for the repository associated with the
// current working directory using gh repo view.
func (client *Client) ResolveRepoMetadata(executionContext context.Context) (RepositoryMetadata, error) {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			repoSubcommandConstant,
			viewSubcommandConstant,
			jsonFlagConstant,
			repoViewJSONFieldsConstant,
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return RepositoryMetadata{}, OperationError{Operation: repositoryMetadataOperationNameConstant, Cause: executionError}
	}

	var response struct {
		NameWithOwner string `json:"nameWithOwner"`
	}

	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response)
	if decodingError != nil {
		return RepositoryMetadata{}, ResponseDecodingError{Operation: repositoryMetadataOperationNameConstant, Cause: decodingError}
	}

	return RepositoryMetadata{NameWithOwner: response.NameWithOwner}, nil
}

// ListPullRequests enumerates pull requests across every state using gh pr list.
func (client *Client) ListPullRequests(executionContext context.Context, repository string, options PullRequestListOptions) ([]PullRequest, error) {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return nil, InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	resultLimit := options.ResultLimit
	if resultLimit <= 0 {
		resultLimit = pullRequestLimitDefaultValueConstant
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			pullRequestSubcommandConstant,
			listSubcommandConstant,
			repoFlagConstant,
			repositoryIdentifier,
			stateFlagConstant,
			pullRequestStateAllConstant,
			jsonFlagConstant,
			pullRequestJSONFieldsConstant,
			limitFlagConstant,
			strconv.Itoa(resultLimit),
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return nil, OperationError{Operation: listPullRequestsOperationNameConstant, Cause: executionError}
	}

	var response []struct {
		HeadRefName string `json:"headRefName"`
		State       string `json:"state"`
	}

	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response)
	if decodingError != nil {
		return nil, ResponseDecodingError{Operation: listPullRequestsOperationNameConstant, Cause: decodingError}
	}

	pullRequests := make([]PullRequest, 0, len(response))
	for _, pullRequestEntry := range response {
		pullRequests = append(pullRequests, PullRequest{
			HeadRefName: pullRequestEntry.HeadRefName,
			State:       pullRequestEntry.State,
		})
	}

	return pullRequests, nil
}

// ListBranchNames enumerates every branch name in the repository using gh api
// with pagination. Paginated output concatenates one JSON array per page, so
// the response is drained with a streaming decoder until it is exhausted.
func (client *Client) ListBranchNames(executionContext context.Context, repository string) ([]string, error) {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return nil, InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			fmt.Sprintf(branchesEndpointTemplateConstant, repositoryIdentifier),
			paginateFlagConstant,
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return nil, OperationError{Operation: listBranchNamesOperationNameConstant, Cause: executionError}
	}

	branchNames := []string{}
	responseDecoder := json.NewDecoder(strings.NewReader(executionResult.StandardOutput))
	for {
		var branchPage []struct {
			Name string `json:"name"`
		}

		decodingError := responseDecoder.Decode(&branchPage)
		if decodingError == io.EOF {
			break
		}
		if decodingError != nil {
			return nil, ResponseDecodingError{Operation: listBranchNamesOperationNameConstant, Cause: decodingError}
		}

		for _, branchEntry := range branchPage {
			branchNames = append(branchNames, branchEntry.Name)
		}
	}

	return branchNames, nil
}

// CompareRefs reports how the head reference relates to the base reference using
// the repository compare endpoint.
func (client *Client) CompareRefs(executionContext context.Context, repository string, baseReference string, headReference string) (CommitComparison, error) {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return CommitComparison{}, InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	trimmedBaseReference := strings.TrimSpace(baseReference)
	if len(trimmedBaseReference) == 0 {
		return CommitComparison{}, InvalidInputError{FieldName: baseReferenceFieldNameConstant, Message: requiredValueMessageConstant}
	}

	trimmedHeadReference := strings.TrimSpace(headReference)
	if len(trimmedHeadReference) == 0 {
		return CommitComparison{}, InvalidInputError{FieldName: headReferenceFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			fmt.Sprintf(compareEndpointTemplateConstant, repositoryIdentifier, trimmedBaseReference, trimmedHeadReference),
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return CommitComparison{}, OperationError{Operation: compareRefsOperationNameConstant, Cause: executionError}
	}

	var response struct {
		Status   string `json:"status"`
		AheadBy  int    `json:"ahead_by"`
		BehindBy int    `json:"behind_by"`
	}

	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response)
	if decodingError != nil {
		return CommitComparison{}, ResponseDecodingError{Operation: compareRefsOperationNameConstant, Cause: decodingError}
	}

	return CommitComparison{
		Status:   response.Status,
		AheadBy:  response.AheadBy,
		BehindBy: response.BehindBy,
	}, nil
}
