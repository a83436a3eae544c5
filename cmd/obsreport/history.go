package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/obsreport/internal/config"
	"github.com/nao1215/obsreport/internal/database"
	"github.com/spf13/cobra"
)

// historyTimeLayout is how run timestamps are shown.
const historyTimeLayout = "2006-01-02 15:04:05"

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past render runs",
		Long: `History lists the render runs recorded in the history database.

Every successful 'obsreport render' stores its JSON records unless
--no-history is given.

Examples:
  # List recent runs
  obsreport history

  # List runs as a Markdown table
  obsreport history --markdown

  # Print the JSON records of one run
  obsreport history --show 0b6f4c1e-6c1d-4c8e-8d43-6a4b1f0f6a51`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to list (0 for all)")
	cmd.Flags().BoolP("markdown", "m", false, "List runs as a Markdown table")
	cmd.Flags().String("show", "", "Print the JSON records of the run with this ID")
	cmd.Flags().String("db-dir", "",
		"Directory of the history database (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	asMarkdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	showID, err := cmd.Flags().GetString("show")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false})
	if err != nil {
		fmt.Fprintln(out, "No render history found.")
		fmt.Fprintln(out, "\nUse 'obsreport render' to render results and record them.")
		return nil
	}
	defer db.Close()

	if showID != "" {
		run, err := db.GetRun(cmd.Context(), showID)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, run.Records)
		return err
	}

	runs, err := db.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No render history found.")
		return nil
	}

	if asMarkdown {
		return writeHistoryMarkdown(out, runs)
	}
	writeHistoryText(out, runs)
	return nil
}

// writeHistoryText prints runs as an aligned plain-text listing.
func writeHistoryText(w io.Writer, runs []database.Run) {
	fmt.Fprintf(w, "Render history (%d runs):\n\n", len(runs))
	fmt.Fprintf(w, "  %-36s  %-19s  %-6s  %-7s  %s\n", "ID", "Date", "Format", "Targets", "Inputs")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 90))
	for _, run := range runs {
		fmt.Fprintf(w, "  %-36s  %-19s  %-6s  %-7d  %s\n",
			run.ID,
			run.Created.Local().Format(historyTimeLayout),
			run.Format,
			run.TargetCount,
			strings.Join(run.Inputs, ","),
		)
	}
	fmt.Fprintln(w, "\nUse 'obsreport history --show <id>' to print a run's records.")
}

// writeHistoryMarkdown prints runs as a Markdown table.
func writeHistoryMarkdown(w io.Writer, runs []database.Run) error {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			"`" + run.ID + "`",
			run.Created.Local().Format(historyTimeLayout),
			run.Format,
			strconv.Itoa(run.TargetCount),
			strings.Join(run.Inputs, "<br>"),
		})
	}

	md := markdown.NewMarkdown(w)
	md.H1("Render History")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"ID", "Date", "Format", "Targets", "Inputs"},
		Rows:   rows,
	})
	return md.Build()
}
