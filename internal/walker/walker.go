package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Walk traverses the tree below rootDir depth first, entering directories
// the filter accepts and handing every accepted file to walkFn. Entries are
// visited in name order. Failures on individual entries are logged and
// tracked; only an unusable root is returned as an error.
func Walk(rootDir string, filter *Filter, walkFn WalkFunc, opts ...Option) ([]SkippedItem, error) {
	startTime := time.Now()

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("walker: failed to get absolute path for '%s': %w", rootDir, err)
	}
	info, err := os.Stat(absRootDir)
	if err != nil {
		return nil, fmt.Errorf("walker: cannot access root '%s': %w", absRootDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("walker: root '%s' is not a directory", absRootDir)
	}

	w := &walk{
		filter:  filter,
		walkFn:  walkFn,
		options: options,
		tracker: NewSkippedTracker(64),
	}
	if options.Symlinks == SymlinkFollow {
		w.visited = make(map[string]struct{})
		w.markVisited(absRootDir)
	}

	options.Logger.Debug("walker.Walk started. Root: %s, Symlinks: %s", absRootDir, options.Symlinks)
	w.dir(absRootDir, "")
	options.Logger.Debug("walker.Walk finished in %s", time.Since(startTime))

	return w.tracker.Items(), nil
}

type walk struct {
	filter  *Filter
	walkFn  WalkFunc
	options WalkOptions
	tracker *SkippedTracker

	// Real paths of entered directories; only kept when following links.
	visited map[string]struct{}
}

func (w *walk) dir(absDir, relDir string) {
	log := w.options.Logger

	entries, err := os.ReadDir(absDir)
	if err != nil {
		reason := ReasonSkippedWalkError
		if os.IsPermission(err) {
			reason = ReasonSkippedPermError
		}
		log.Error("Walker Error: Failed to read directory %q: %v", displayPath(relDir), err)
		w.tracker.Track(displayPath(relDir), reason, true)
		if len(entries) == 0 {
			return
		}
		// Partial listing: keep what was read.
	}

	for _, entry := range entries {
		name := entry.Name()
		absPath := filepath.Join(absDir, name)
		relPath := name
		if relDir != "" {
			relPath = relDir + "/" + name
		}

		isDir, ok := w.resolve(absPath, relPath, entry)
		if !ok {
			continue
		}

		if isDir {
			if descend, reason := w.filter.ShouldDescend(relPath); !descend {
				log.Debug("Walker: Not descending into %q: %s", relPath, reason)
				w.tracker.Track(relPath, reason, true)
				continue
			}
			if w.visited != nil && !w.markVisited(absPath) {
				log.Debug("Walker: %q resolves to a directory already visited", relPath)
				w.tracker.Track(relPath, ReasonSkippedCycle, true)
				continue
			}
			log.Debug("Walker: Descending into directory %q", relPath)
			w.dir(absPath, relPath)
			continue
		}

		if include, reason := w.filter.ShouldInclude(relPath); !include {
			log.Debug("Walker: Skipping %q: %s", relPath, reason)
			w.tracker.Track(relPath, reason, false)
			continue
		}

		log.Debug("Walker: File %q PASSED all checks, will be processed", relPath)
		processFile(absPath, relPath, w.options, w.walkFn, w.tracker)
	}
}

// resolve reports whether the entry is a directory, applying the symlink
// policy. ok is false when the entry must be skipped.
func (w *walk) resolve(absPath, relPath string, entry fs.DirEntry) (isDir bool, ok bool) {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir(), true
	}

	if w.options.Symlinks != SymlinkFollow {
		w.options.Logger.Debug("Walker: Skipping symbolic link %q", relPath)
		w.tracker.Track(relPath, ReasonSkippedSymlink, false)
		return false, false
	}

	info, err := os.Stat(absPath)
	if err != nil {
		w.options.Logger.Error("Walker Error: Failed to resolve link %q: %v", relPath, err)
		w.tracker.Track(relPath, ReasonSkippedInfoError, false)
		return false, false
	}
	return info.IsDir(), true
}

// markVisited records the real path of dir and reports whether it was new.
func (w *walk) markVisited(dir string) bool {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		resolved = dir
	}
	if _, seen := w.visited[resolved]; seen {
		return false
	}
	w.visited[resolved] = struct{}{}
	return true
}

func displayPath(rel string) string {
	if rel == "" {
		return "."
	}
	return rel
}
