package branchstatus

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/temirov/branchview/internal/githubcli"
)

const (
	comparisonConcurrencyLimitConstant      = 10
	comparisonStatusAheadConstant           = "ahead"
	comparisonStatusIdenticalConstant       = "identical"
	refComparerNotConfiguredMessageConstant = "reference comparer not configured"
)

// ErrRefComparerNotConfigured indicates the comparator was created without a reference comparer.
var ErrRefComparerNotConfigured = errors.New(refComparerNotConfiguredMessageConstant)

// RefComparer compares two references within a repository.
type RefComparer interface {
	CompareRefs(executionContext context.Context, repository string, baseReference string, headReference string) (githubcli.CommitComparison, error)
}

// Comparator runs reference comparisons for many branches with bounded concurrency.
type Comparator struct {
	refComparer RefComparer
}

// NewComparator validates the reference comparer and returns a Comparator.
func NewComparator(refComparer RefComparer) (*Comparator, error) {
	if refComparer == nil {
		return nil, ErrRefComparerNotConfigured
	}
	return &Comparator{refComparer: refComparer}, nil
}

// CompareBranches resolves ahead and behind counts for every branch relative to
// the base branch. A branch whose comparison fails keeps unknown counts so the
// remaining branches still report.
func (comparator *Comparator) CompareBranches(executionContext context.Context, repository string, baseBranch string, branchNames []string) []BranchComparison {
	comparisons := make([]BranchComparison, len(branchNames))

	comparisonGroup, groupContext := errgroup.WithContext(executionContext)
	comparisonGroup.SetLimit(comparisonConcurrencyLimitConstant)

	for branchIndex, branchName := range branchNames {
		resultIndex := branchIndex
		comparedBranch := branchName
		comparisonGroup.Go(func() error {
			commitComparison, comparisonError := comparator.refComparer.CompareRefs(groupContext, repository, baseBranch, comparedBranch)
			if comparisonError != nil {
				comparisons[resultIndex] = BranchComparison{Ahead: UnknownCount(), Behind: UnknownCount()}
				return nil
			}
			comparisons[resultIndex] = BranchComparison{
				Ahead:  KnownCount(commitComparison.AheadBy),
				Behind: KnownCount(commitComparison.BehindBy),
			}
			return nil
		})
	}

	_ = comparisonGroup.Wait()

	return comparisons
}

// CheckAncestry reports for every branch whether it contains the ancestor
// reference. A branch is considered a descendant when comparing the ancestor to
// the branch yields an ahead or identical status. Comparison failures report a
// negative answer.
func (comparator *Comparator) CheckAncestry(executionContext context.Context, repository string, ancestorReference string, branchNames []string) []TriState {
	ancestryStates := make([]TriState, len(branchNames))

	ancestryGroup, groupContext := errgroup.WithContext(executionContext)
	ancestryGroup.SetLimit(comparisonConcurrencyLimitConstant)

	for branchIndex, branchName := range branchNames {
		resultIndex := branchIndex
		checkedBranch := branchName
		ancestryGroup.Go(func() error {
			commitComparison, comparisonError := comparator.refComparer.CompareRefs(groupContext, repository, ancestorReference, checkedBranch)
			if comparisonError != nil {
				ancestryStates[resultIndex] = TriStateNo
				return nil
			}
			switch commitComparison.Status {
			case comparisonStatusAheadConstant, comparisonStatusIdenticalConstant:
				ancestryStates[resultIndex] = TriStateYes
			default:
				ancestryStates[resultIndex] = TriStateNo
			}
			return nil
		})
	}

	_ = ancestryGroup.Wait()

	return ancestryStates
}
