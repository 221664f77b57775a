package branchstatus_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/branchview/internal/branchstatus"
	"github.com/temirov/branchview/internal/githubcli"
)

const (
	comparatorRepositoryConstant             = "acme/widgets"
	comparatorBaseBranchConstant             = "main"
	comparatorAncestorReferenceConstant      = "release/v2"
	failingBranchNameConstant                = "feature/broken"
	comparisonFailureMessageConstant         = "comparison failed"
	missingComparerCaseNameConstant          = "missing_comparer"
	partialResultsCaseNameConstant           = "failed_comparison_keeps_other_results"
	boundedConcurrencyCaseNameConstant       = "concurrent_requests_stay_bounded"
	ancestryStatusesCaseNameConstant         = "ancestry_statuses"
	ancestryFailureCaseNameConstant          = "ancestry_failure_reports_negative"
	comparisonStatusDivergedConstant         = "diverged"
	comparisonStatusBehindConstant           = "behind"
	comparisonStatusAheadLiteralConstant     = "ahead"
	comparisonStatusIdenticalLiteralConstant = "identical"
)

type stubRefComparer struct {
	mutex            sync.Mutex
	comparisons      map[string]githubcli.CommitComparison
	failingBranches  map[string]bool
	activeCalls      int
	maximumActive    int
	recordedRequests []string
}

func (comparer *stubRefComparer) CompareRefs(_ context.Context, repository string, baseReference string, headReference string) (githubcli.CommitComparison, error) {
	comparer.mutex.Lock()
	comparer.activeCalls++
	if comparer.activeCalls > comparer.maximumActive {
		comparer.maximumActive = comparer.activeCalls
	}
	comparer.recordedRequests = append(comparer.recordedRequests, fmt.Sprintf("%s:%s...%s", repository, baseReference, headReference))
	comparer.mutex.Unlock()

	defer func() {
		comparer.mutex.Lock()
		comparer.activeCalls--
		comparer.mutex.Unlock()
	}()

	if comparer.failingBranches[headReference] {
		return githubcli.CommitComparison{}, errors.New(comparisonFailureMessageConstant)
	}
	return comparer.comparisons[headReference], nil
}

func TestNewComparatorValidation(testInstance *testing.T) {
	testInstance.Run(missingComparerCaseNameConstant, func(subtestInstance *testing.T) {
		comparator, creationError := branchstatus.NewComparator(nil)
		require.Nil(subtestInstance, comparator)
		require.ErrorIs(subtestInstance, creationError, branchstatus.ErrRefComparerNotConfigured)
	})
}

func TestCompareBranchesKeepsPartialResults(testInstance *testing.T) {
	testInstance.Run(partialResultsCaseNameConstant, func(subtestInstance *testing.T) {
		refComparer := &stubRefComparer{
			comparisons: map[string]githubcli.CommitComparison{
				"feature/login":  {Status: comparisonStatusAheadLiteralConstant, AheadBy: 4, BehindBy: 1},
				"bugfix/timeout": {Status: comparisonStatusBehindConstant, AheadBy: 0, BehindBy: 7},
			},
			failingBranches: map[string]bool{failingBranchNameConstant: true},
		}

		comparator, creationError := branchstatus.NewComparator(refComparer)
		require.NoError(subtestInstance, creationError)

		branchNames := []string{"feature/login", failingBranchNameConstant, "bugfix/timeout"}
		comparisons := comparator.CompareBranches(context.Background(), comparatorRepositoryConstant, comparatorBaseBranchConstant, branchNames)

		require.Len(subtestInstance, comparisons, len(branchNames))
		require.Equal(subtestInstance, branchstatus.KnownCount(4), comparisons[0].Ahead)
		require.Equal(subtestInstance, branchstatus.KnownCount(1), comparisons[0].Behind)
		require.Equal(subtestInstance, branchstatus.UnknownCount(), comparisons[1].Ahead)
		require.Equal(subtestInstance, branchstatus.UnknownCount(), comparisons[1].Behind)
		require.Equal(subtestInstance, branchstatus.KnownCount(0), comparisons[2].Ahead)
		require.Equal(subtestInstance, branchstatus.KnownCount(7), comparisons[2].Behind)
	})
}

func TestCompareBranchesBoundsConcurrency(testInstance *testing.T) {
	testInstance.Run(boundedConcurrencyCaseNameConstant, func(subtestInstance *testing.T) {
		comparisonsByBranch := map[string]githubcli.CommitComparison{}
		branchNames := make([]string, 0, 40)
		for branchNumber := 0; branchNumber < 40; branchNumber++ {
			branchName := fmt.Sprintf("feature/branch-%02d", branchNumber)
			branchNames = append(branchNames, branchName)
			comparisonsByBranch[branchName] = githubcli.CommitComparison{Status: comparisonStatusAheadLiteralConstant, AheadBy: branchNumber, BehindBy: 0}
		}

		refComparer := &stubRefComparer{comparisons: comparisonsByBranch}
		comparator, creationError := branchstatus.NewComparator(refComparer)
		require.NoError(subtestInstance, creationError)

		comparisons := comparator.CompareBranches(context.Background(), comparatorRepositoryConstant, comparatorBaseBranchConstant, branchNames)

		require.Len(subtestInstance, comparisons, len(branchNames))
		for branchIndex, branchName := range branchNames {
			require.Equal(subtestInstance, branchstatus.KnownCount(comparisonsByBranch[branchName].AheadBy), comparisons[branchIndex].Ahead)
		}
		require.LessOrEqual(subtestInstance, refComparer.maximumActive, 10)
		require.Len(subtestInstance, refComparer.recordedRequests, len(branchNames))
	})
}

func TestCheckAncestry(testInstance *testing.T) {
	testInstance.Run(ancestryStatusesCaseNameConstant, func(subtestInstance *testing.T) {
		refComparer := &stubRefComparer{
			comparisons: map[string]githubcli.CommitComparison{
				"feature/login":      {Status: comparisonStatusAheadLiteralConstant, AheadBy: 3},
				"feature/checkout":   {Status: comparisonStatusIdenticalLiteralConstant},
				"bugfix/timeout":     {Status: comparisonStatusDivergedConstant, AheadBy: 2, BehindBy: 2},
				"chore/dependencies": {Status: comparisonStatusBehindConstant, BehindBy: 5},
			},
		}

		comparator, creationError := branchstatus.NewComparator(refComparer)
		require.NoError(subtestInstance, creationError)

		branchNames := []string{"feature/login", "feature/checkout", "bugfix/timeout", "chore/dependencies"}
		ancestryStates := comparator.CheckAncestry(context.Background(), comparatorRepositoryConstant, comparatorAncestorReferenceConstant, branchNames)

		require.Equal(subtestInstance, []branchstatus.TriState{
			branchstatus.TriStateYes,
			branchstatus.TriStateYes,
			branchstatus.TriStateNo,
			branchstatus.TriStateNo,
		}, ancestryStates)
	})

	testInstance.Run(ancestryFailureCaseNameConstant, func(subtestInstance *testing.T) {
		refComparer := &stubRefComparer{
			failingBranches: map[string]bool{failingBranchNameConstant: true},
		}

		comparator, creationError := branchstatus.NewComparator(refComparer)
		require.NoError(subtestInstance, creationError)

		ancestryStates := comparator.CheckAncestry(context.Background(), comparatorRepositoryConstant, comparatorAncestorReferenceConstant, []string{failingBranchNameConstant})

		require.Equal(subtestInstance, []branchstatus.TriState{branchstatus.TriStateNo}, ancestryStates)
	})
}
