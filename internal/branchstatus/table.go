package branchstatus

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const (
	tableTitleTemplateConstant               = "Branches vs %s"
	branchColumnHeaderConstant               = "Branch"
	pullRequestColumnHeaderConstant          = "PR"
	aheadColumnHeaderConstant                = "Ahead"
	behindColumnHeaderConstant               = "Behind"
	oursColumnHeaderConstant                 = "Ours"
	unknownCountPlaceholderConstant          = "?"
	ancestryYesLabelConstant                 = "yes"
	ancestryNoLabelConstant                  = "no"
	ancestryAbsentLabelConstant              = "-"
	branchColumnColorConstant                = "6"
	pullRequestColumnColorConstant           = "5"
	aheadColumnColorConstant                 = "2"
	behindColumnColorConstant                = "1"
	ancestryYesColorConstant                 = "2"
	titlePaddingTrimCutsetConstant           = " "
	renderedReportTemplateConstant           = "%s\n%s\n"
	outputWriterNotConfiguredMessageConstant = "output writer not configured"
)

const (
	branchColumnIndexConstant = iota
	pullRequestColumnIndexConstant
	aheadColumnIndexConstant
	behindColumnIndexConstant
	oursColumnIndexConstant
)

// ErrOutputWriterNotConfigured indicates the renderer was created without a destination writer.
var ErrOutputWriterNotConfigured = errors.New(outputWriterNotConfiguredMessageConstant)

// TableRenderer renders report rows as a bordered table with per-column styling.
type TableRenderer struct {
	outputWriter  io.Writer
	disableColors bool
}

// NewTableRenderer validates the destination writer and returns a TableRenderer.
func NewTableRenderer(outputWriter io.Writer, disableColors bool) (*TableRenderer, error) {
	if outputWriter == nil {
		return nil, ErrOutputWriterNotConfigured
	}
	return &TableRenderer{outputWriter: outputWriter, disableColors: disableColors}, nil
}

type tableStyles struct {
	title              lipgloss.Style
	header             lipgloss.Style
	base               lipgloss.Style
	branchCell         lipgloss.Style
	pullRequestCell    lipgloss.Style
	aheadCell          lipgloss.Style
	behindCell         lipgloss.Style
	ancestryYesCell    lipgloss.Style
	ancestryNoCell     lipgloss.Style
	ancestryAbsentCell lipgloss.Style
}

func buildTableStyles(disableColors bool) tableStyles {
	baseCell := lipgloss.NewStyle().Padding(0, 1)
	rightAlignedCell := baseCell.Align(lipgloss.Right)
	centeredCell := baseCell.Align(lipgloss.Center)

	styles := tableStyles{
		title:              lipgloss.NewStyle(),
		header:             baseCell,
		base:               baseCell,
		branchCell:         baseCell,
		pullRequestCell:    baseCell,
		aheadCell:          rightAlignedCell,
		behindCell:         rightAlignedCell,
		ancestryYesCell:    centeredCell,
		ancestryNoCell:     centeredCell,
		ancestryAbsentCell: centeredCell,
	}
	if disableColors {
		return styles
	}

	styles.title = styles.title.Bold(true)
	styles.header = styles.header.Bold(true)
	styles.branchCell = styles.branchCell.Foreground(lipgloss.Color(branchColumnColorConstant))
	styles.pullRequestCell = styles.pullRequestCell.Foreground(lipgloss.Color(pullRequestColumnColorConstant))
	styles.aheadCell = styles.aheadCell.Foreground(lipgloss.Color(aheadColumnColorConstant))
	styles.behindCell = styles.behindCell.Foreground(lipgloss.Color(behindColumnColorConstant))
	styles.ancestryYesCell = styles.ancestryYesCell.Foreground(lipgloss.Color(ancestryYesColorConstant))
	styles.ancestryNoCell = styles.ancestryNoCell.Faint(true)
	return styles
}

// Render writes the titled report table to the configured writer. An empty row
// set still renders the title and column headers.
func (renderer *TableRenderer) Render(result Result) error {
	styles := buildTableStyles(renderer.disableColors)

	columnHeaders := []string{branchColumnHeaderConstant, pullRequestColumnHeaderConstant, aheadColumnHeaderConstant, behindColumnHeaderConstant}
	if result.ShowOurs {
		columnHeaders = append(columnHeaders, oursColumnHeaderConstant)
	}

	tableRows := make([][]string, 0, len(result.Rows))
	for _, reportRow := range result.Rows {
		tableRow := []string{
			reportRow.BranchName,
			reportRow.PullRequestStatus,
			formatOptionalCount(reportRow.AheadCount),
			formatOptionalCount(reportRow.BehindCount),
		}
		if result.ShowOurs {
			tableRow = append(tableRow, formatAncestryState(reportRow.Ours))
		}
		tableRows = append(tableRows, tableRow)
	}

	reportTable := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(rowIndex int, columnIndex int) lipgloss.Style {
			if rowIndex == table.HeaderRow {
				return styles.header
			}
			switch columnIndex {
			case branchColumnIndexConstant:
				return styles.branchCell
			case pullRequestColumnIndexConstant:
				return styles.pullRequestCell
			case aheadColumnIndexConstant:
				return styles.aheadCell
			case behindColumnIndexConstant:
				return styles.behindCell
			case oursColumnIndexConstant:
				return ancestryCellStyle(styles, result.Rows, rowIndex)
			default:
				return styles.base
			}
		}).
		Headers(columnHeaders...).
		Rows(tableRows...)

	renderedTable := reportTable.Render()
	titleText := styles.title.Render(fmt.Sprintf(tableTitleTemplateConstant, result.MainBranch))
	centeredTitle := lipgloss.PlaceHorizontal(lipgloss.Width(renderedTable), lipgloss.Center, titleText)
	titleLine := strings.TrimRight(centeredTitle, titlePaddingTrimCutsetConstant)

	_, writeError := fmt.Fprintf(renderer.outputWriter, renderedReportTemplateConstant, titleLine, renderedTable)
	return writeError
}

func ancestryCellStyle(styles tableStyles, reportRows []Row, rowIndex int) lipgloss.Style {
	if rowIndex < 0 || rowIndex >= len(reportRows) {
		return styles.ancestryAbsentCell
	}
	switch reportRows[rowIndex].Ours {
	case TriStateYes:
		return styles.ancestryYesCell
	case TriStateNo:
		return styles.ancestryNoCell
	default:
		return styles.ancestryAbsentCell
	}
}

func formatOptionalCount(count OptionalCount) string {
	if !count.Known {
		return unknownCountPlaceholderConstant
	}
	return strconv.Itoa(count.Value)
}

func formatAncestryState(state TriState) string {
	switch state {
	case TriStateYes:
		return ancestryYesLabelConstant
	case TriStateNo:
		return ancestryNoLabelConstant
	default:
		return ancestryAbsentLabelConstant
	}
}
