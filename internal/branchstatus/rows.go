package branchstatus

import "strings"

const missingPullRequestStatusPlaceholderConstant = "-"

// OptionalCount carries an integer that is unavailable when the backing comparison failed.
type OptionalCount struct {
	Known bool
	Value int
}

// KnownCount constructs an OptionalCount holding a resolved value.
func KnownCount(value int) OptionalCount {
	return OptionalCount{Known: true, Value: value}
}

// UnknownCount constructs an OptionalCount representing a failed comparison.
func UnknownCount() OptionalCount {
	return OptionalCount{}
}

// TriState answers whether a branch contains the reference commit. The report
// omits the answer entirely when no reference commit was supplied.
type TriState int

// TriState values ordered by ascending sort rank.
const (
	TriStateAbsent TriState = iota
	TriStateNo
	TriStateYes
)

// Row captures one branch entry of the report.
type Row struct {
	BranchName        string
	PullRequestStatus string
	AheadCount        OptionalCount
	BehindCount       OptionalCount
	Ours              TriState
}

// BranchComparison pairs the divergence counts of one branch against the main branch.
type BranchComparison struct {
	Ahead  OptionalCount
	Behind OptionalCount
}

func excludeBranchName(branchNames []string, excludedName string) []string {
	remaining := make([]string, 0, len(branchNames))
	for _, branchName := range branchNames {
		if branchName == excludedName {
			continue
		}
		remaining = append(remaining, branchName)
	}
	return remaining
}

// assembleRows joins branch names with their pull request statuses,
// comparison counts, and ancestry answers. The filter substring is matched
// case-sensitively against branch names; rows keep branch-list order.
func assembleRows(branchNames []string, pullRequestStatuses map[string]string, comparisons []BranchComparison, ancestry []TriState, filterSubstring string) []Row {
	rows := make([]Row, 0, len(branchNames))
	for branchIndex, branchName := range branchNames {
		if len(filterSubstring) > 0 && !strings.Contains(branchName, filterSubstring) {
			continue
		}

		pullRequestStatus, hasStatus := pullRequestStatuses[branchName]
		if !hasStatus {
			pullRequestStatus = missingPullRequestStatusPlaceholderConstant
		}

		row := Row{
			BranchName:        branchName,
			PullRequestStatus: pullRequestStatus,
			AheadCount:        comparisons[branchIndex].Ahead,
			BehindCount:       comparisons[branchIndex].Behind,
			Ours:              TriStateAbsent,
		}
		if ancestry != nil {
			row.Ours = ancestry[branchIndex]
		}

		rows = append(rows, row)
	}
	return rows
}
