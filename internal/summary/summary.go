// Package summary reports what a dump collected and what it left out
package summary

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/bethropolis/dump-source/internal/walker"
)

// Logger is the part of the application logger the reports need
type Logger interface {
	Info(format string, args ...interface{})
}

// DisplayResults logs the collected file count, the skipped entries grouped
// by reason and the elapsed time. Nothing is logged when quiet.
func DisplayResults(logger Logger, collected int, skipped []walker.SkippedItem, elapsed time.Duration, quiet bool) {
	if quiet {
		return
	}

	if len(skipped) == 0 {
		logger.Info("Collected %d files.", collected)
	} else {
		logger.Info("Collected %d files, left out %d: %s.", collected, len(skipped), countByReason(skipped))
	}
	logger.Info("Dump finished in %v.", elapsed.Round(time.Millisecond))
}

// countByReason renders "N reason" pairs, most frequent first and by reason
// on ties.
func countByReason(items []walker.SkippedItem) string {
	counts := make(map[walker.SkippedReason]int)
	for _, item := range items {
		counts[item.Reason]++
	}

	reasons := make([]walker.SkippedReason, 0, len(counts))
	for r := range counts {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool {
		if counts[reasons[i]] != counts[reasons[j]] {
			return counts[reasons[i]] > counts[reasons[j]]
		}
		return reasons[i] < reasons[j]
	})

	parts := make([]string, len(reasons))
	for i, r := range reasons {
		parts[i] = fmt.Sprintf("%d %s", counts[r], r)
	}
	return strings.Join(parts, ", ")
}

// DisplaySkippedItems writes one row per left-out path to out, ordered by
// path. The items slice is not reordered.
func DisplaySkippedItems(logger Logger, items []walker.SkippedItem, out io.Writer, quiet bool) {
	if len(items) == 0 {
		if !quiet {
			logger.Info("Nothing was left out.")
		}
		return
	}

	byPath := append([]walker.SkippedItem(nil), items...)
	sort.SliceStable(byPath, func(i, j int) bool { return byPath[i].Path < byPath[j].Path })

	if !quiet {
		logger.Info("Left out %d entries:", len(byPath))
	}
	for _, item := range byPath {
		kind := "file"
		if item.IsDir {
			kind = "dir"
		}
		fmt.Fprintf(out, "  %-4s %-50s %s\n", kind, item.Path, item.Reason)
	}
}
