package branchstatus

import (
	"fmt"
	"sort"
	"strings"
)

const (
	sortFieldSeparatorConstant            = ","
	sortDescendingPrefixConstant          = "-"
	sortFieldBranchKeywordConstant        = "branch"
	sortFieldPullRequestKeywordConstant   = "pr"
	sortFieldAheadKeywordConstant         = "ahead"
	sortFieldBehindKeywordConstant        = "behind"
	sortFieldOursKeywordConstant          = "ours"
	supportedSortFieldListConstant        = "branch, pr, ahead, behind, ours"
	unknownSortFieldErrorTemplateConstant = "unknown sort field: %q (use: %s)"
)

// SortField enumerates the row attributes the sort specification can reference.
type SortField int

// Supported sort fields.
const (
	SortFieldBranch SortField = iota
	SortFieldPullRequest
	SortFieldAhead
	SortFieldBehind
	SortFieldOurs
)

// SortKey pairs a sort field with its direction.
type SortKey struct {
	Field      SortField
	Descending bool
}

// UnknownSortFieldError reports a specification token that names no row attribute.
type UnknownSortFieldError struct {
	FieldName string
}

// Error describes the unsupported field.
func (fieldError UnknownSortFieldError) Error() string {
	return fmt.Sprintf(unknownSortFieldErrorTemplateConstant, fieldError.FieldName, supportedSortFieldListConstant)
}

var sortFieldsByKeyword = map[string]SortField{
	sortFieldBranchKeywordConstant:      SortFieldBranch,
	sortFieldPullRequestKeywordConstant: SortFieldPullRequest,
	sortFieldAheadKeywordConstant:       SortFieldAhead,
	sortFieldBehindKeywordConstant:      SortFieldBehind,
	sortFieldOursKeywordConstant:        SortFieldOurs,
}

// ParseSortSpecification converts a comma-separated field list into sort keys.
// A leading "-" on a field selects descending order.
func ParseSortSpecification(specification string) ([]SortKey, error) {
	fieldTokens := strings.Split(specification, sortFieldSeparatorConstant)
	sortKeys := make([]SortKey, 0, len(fieldTokens))

	for _, fieldToken := range fieldTokens {
		trimmedToken := strings.TrimSpace(fieldToken)
		descending := strings.HasPrefix(trimmedToken, sortDescendingPrefixConstant)
		fieldName := strings.TrimPrefix(trimmedToken, sortDescendingPrefixConstant)

		sortField, isSupported := sortFieldsByKeyword[fieldName]
		if !isSupported {
			return nil, UnknownSortFieldError{FieldName: fieldName}
		}

		sortKeys = append(sortKeys, SortKey{Field: sortField, Descending: descending})
	}

	return sortKeys, nil
}

// SortRows orders the rows according to the sort keys. The sort is stable so
// rows that compare equal keep their report order.
func SortRows(rows []Row, sortKeys []SortKey) {
	sort.SliceStable(rows, func(leftIndex, rightIndex int) bool {
		for _, sortKey := range sortKeys {
			comparison := compareRows(rows[leftIndex], rows[rightIndex], sortKey)
			if comparison != 0 {
				return comparison < 0
			}
		}
		return false
	})
}

func compareRows(leftRow Row, rightRow Row, sortKey SortKey) int {
	switch sortKey.Field {
	case SortFieldBranch:
		return compareText(leftRow.BranchName, rightRow.BranchName, sortKey.Descending)
	case SortFieldPullRequest:
		return compareText(leftRow.PullRequestStatus, rightRow.PullRequestStatus, sortKey.Descending)
	case SortFieldAhead:
		return compareOptionalCounts(leftRow.AheadCount, rightRow.AheadCount, sortKey.Descending)
	case SortFieldBehind:
		return compareOptionalCounts(leftRow.BehindCount, rightRow.BehindCount, sortKey.Descending)
	case SortFieldOurs:
		return compareTriStates(leftRow.Ours, rightRow.Ours, sortKey.Descending)
	default:
		return 0
	}
}

func compareText(leftValue string, rightValue string, descending bool) int {
	comparison := strings.Compare(leftValue, rightValue)
	if descending {
		return -comparison
	}
	return comparison
}

// compareOptionalCounts orders unknown counts after known ones regardless of
// direction so failed comparisons sink to the bottom of the report.
func compareOptionalCounts(leftCount OptionalCount, rightCount OptionalCount, descending bool) int {
	switch {
	case leftCount.Known && !rightCount.Known:
		return -1
	case !leftCount.Known && rightCount.Known:
		return 1
	case !leftCount.Known && !rightCount.Known:
		return 0
	}

	comparison := compareIntegers(leftCount.Value, rightCount.Value)
	if descending {
		return -comparison
	}
	return comparison
}

func compareTriStates(leftState TriState, rightState TriState, descending bool) int {
	comparison := compareIntegers(int(leftState), int(rightState))
	if descending {
		return -comparison
	}
	return comparison
}

func compareIntegers(leftValue int, rightValue int) int {
	switch {
	case leftValue < rightValue:
		return -1
	case leftValue > rightValue:
		return 1
	default:
		return 0
	}
}
