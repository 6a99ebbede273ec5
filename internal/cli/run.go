package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aidanlsb/onenotestats/internal/atomicfile"
	"github.com/aidanlsb/onenotestats/internal/export"
	"github.com/aidanlsb/onenotestats/internal/hierarchy"
	"github.com/aidanlsb/onenotestats/internal/stats"
	"github.com/aidanlsb/onenotestats/internal/store"
	"github.com/aidanlsb/onenotestats/internal/ui"
)

// InventoryResult is the JSON payload of an inventory run.
type InventoryResult struct {
	stats.Summary
	DumpListFile string `json:"dump_list_file,omitempty"`
	RunID        int64  `json:"run_id,omitempty"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func runInventory(ctx context.Context, opts *options, nickname, outPath string) error {
	start := time.Now()
	log := opts.logger.WithField("notebook", nickname)

	source := firstNonEmpty(opts.hierarchyPath, opts.cfg.HierarchyFile)
	if source == "" {
		return withCode(ErrSourceMissing, errors.New("no hierarchy source configured"),
			"Pass --hierarchy or set hierarchy_file in config.toml")
	}
	separator := firstNonEmpty(opts.separator, opts.cfg.Separator, export.DefaultSeparator)
	pathSeparator := firstNonEmpty(opts.pathSeparator, opts.cfg.PathSeparator, stats.DefaultPathSeparator)

	// The output target is validated before the hierarchy is read so a bad
	// path fails fast and an existing file is never truncated.
	if !opts.noExport {
		if outPath == "" {
			outPath = nickname + ".tsv"
		}
		abs, err := filepath.Abs(outPath)
		if err != nil {
			return fmt.Errorf("resolve output path: %w", err)
		}
		outPath = abs
		if err := atomicfile.CheckTarget(outPath); err != nil {
			return err
		}
	}

	log.WithField("source", source).Debug("loading hierarchy")
	analyzer, err := stats.Open(ctx, hierarchy.NewFileProvider(source), nickname, stats.Options{PathSeparator: pathSeparator})
	if err != nil {
		return err
	}

	summary := analyzer.Summary()
	summary.Notebook = nickname
	log.WithFields(logrus.Fields{
		"section_groups": summary.SectionGroupCount,
		"sections":       summary.SectionCount,
		"pages":          summary.PageCount,
	}).Debug("hierarchy analyzed")

	if !isJSONOutput() {
		printSummary(summary)
	}

	dbPath := opts.databasePath()
	result := InventoryResult{Summary: summary}
	if opts.noExport && dbPath == "" {
		return finish(result, 0, start)
	}

	records, err := analyzer.ExtractPages()
	if err != nil {
		return err
	}

	if !opts.noExport {
		err := atomicfile.CreateNew(outPath, func(w io.Writer) error {
			return export.Write(w, records, separator)
		})
		if err != nil {
			if errors.Is(err, atomicfile.ErrTargetConflict) {
				return err
			}
			return withCode(ErrFileWriteError, err, "")
		}
		result.DumpListFile = outPath
		log.WithField("path", outPath).Debug("dump written")
		if !isJSONOutput() {
			printLine(ui.SummaryLines([]ui.Field{{Label: "DumpListFile", Value: outPath}})[0])
		}
	}

	if dbPath != "" {
		runID, err := saveRun(ctx, dbPath, summary, records)
		if err != nil {
			return withCode(ErrDatabaseError, err, "")
		}
		result.RunID = runID
		log.WithField("run_id", runID).Debug("run recorded")
	}

	return finish(result, len(records), start)
}

func finish(result InventoryResult, count int, start time.Time) error {
	if isJSONOutput() {
		outputSuccess(result, &Meta{Count: count, QueryTimeMs: time.Since(start).Milliseconds()})
	}
	return nil
}

func printSummary(s stats.Summary) {
	for _, line := range ui.SummaryLines([]ui.Field{
		{Label: "Notebook", Value: s.Notebook},
		{Label: "SectionGroup", Value: strconv.Itoa(s.SectionGroupCount)},
		{Label: "Section", Value: strconv.Itoa(s.SectionCount)},
		{Label: "Page", Value: strconv.Itoa(s.PageCount)},
	}) {
		printLine(line)
	}
}

func saveRun(ctx context.Context, dbPath string, summary stats.Summary, records []stats.PageRecord) (int64, error) {
	db, err := store.Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer db.Close()
	return db.SaveRun(ctx, summary, records)
}
