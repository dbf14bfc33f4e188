package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

const flagOutput = "output"

// Output formats
const (
	outputJSON  = "json"
	outputTable = "table"
)

var outputFormat = outputJSON

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	footerStyle = lipgloss.NewStyle().Faint(true)
)

func addOutputFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&outputFormat, flagOutput, "o", outputJSON, "Output format: json or table")
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	prettyJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting response: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(prettyJSON))
	return err
}

func printTable(cmd *cobra.Command, headers []string, rows [][]string, footer string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	out := t.Render()
	if footer != "" {
		out += "\n" + footerStyle.Render(footer)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

// printRecord writes v as JSON, or as a one-row table when table output is selected
func printRecord(cmd *cobra.Command, v interface{}, headers []string, row []string) error {
	if outputFormat == outputTable {
		return printTable(cmd, headers, [][]string{row}, "")
	}
	return printJSON(cmd, v)
}

func checkOutputFormat() error {
	switch outputFormat {
	case outputJSON, outputTable:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want %s)", outputFormat, strings.Join([]string{outputJSON, outputTable}, " or "))
	}
}

func deletedMark(deleted bool) string {
	if deleted {
		return "yes"
	}
	return ""
}
