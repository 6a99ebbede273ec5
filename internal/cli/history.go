package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/onenotestats/internal/stats"
	"github.com/aidanlsb/onenotestats/internal/store"
	"github.com/aidanlsb/onenotestats/internal/ui"
)

// HistoryEntry is one recorded run in JSON output.
type HistoryEntry struct {
	RunID     int64     `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
	stats.Summary
}

func newHistoryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "history <NotebookNickName>",
		Short: "Show recorded runs of a notebook",
		Long: `Lists the runs recorded in the SQLite database (--db or database in
config.toml), newest first.

Examples:
  onenotestats history Work --db runs.db
  onenotestats history Work --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			dbPath := opts.databasePath()
			if dbPath == "" {
				return withCode(ErrMissingArgument, errors.New("no database configured"),
					"Pass --db or set database in config.toml")
			}

			db, err := store.Open(dbPath)
			if err != nil {
				return withCode(ErrDatabaseError, err, "")
			}
			defer db.Close()

			runs, err := db.Runs(cmd.Context(), args[0])
			if err != nil {
				return withCode(ErrDatabaseError, err, "")
			}

			if isJSONOutput() {
				entries := make([]HistoryEntry, 0, len(runs))
				for _, r := range runs {
					entries = append(entries, HistoryEntry{RunID: r.ID, CreatedAt: r.CreatedAt, Summary: r.Summary})
				}
				outputSuccess(entries, &Meta{Count: len(entries), QueryTimeMs: time.Since(start).Milliseconds()})
				return nil
			}

			if len(runs) == 0 {
				printLine(ui.Hint(fmt.Sprintf("No runs recorded for %q", args[0])))
				return nil
			}
			printLine(ui.Header(fmt.Sprintf("Runs of %s", args[0])))
			for _, r := range runs {
				printLine(fmt.Sprintf("%s  %s  %s",
					ui.Muted.Render(fmt.Sprintf("#%d", r.ID)),
					r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					ui.Accent.Render(fmt.Sprintf("groups=%d sections=%d pages=%d",
						r.Summary.SectionGroupCount, r.Summary.SectionCount, r.Summary.PageCount))))
			}
			return nil
		},
	}
}
