package walker

import (
	"fmt"
	"os"
)

// processFile reads an accepted file and hands it to walkFn. Problems are
// reported through walkFn and the tracker; they never stop the walk.
func processFile(path, relativePath string, options WalkOptions, walkFn WalkFunc, tracker *SkippedTracker) {
	options.Logger.Debug("processFile: Reading [%s]", relativePath)

	info, err := os.Stat(path)
	if err != nil {
		options.Logger.Error("processFile Error [%s]: Failed to get file info: %v", relativePath, err)
		tracker.Track(relativePath, ReasonSkippedInfoError, false)
		walkFn(relativePath, nil, fmt.Errorf("failed to get file info: %w", err))
		return
	}

	if !info.Mode().IsRegular() {
		options.Logger.Debug("processFile Skipping [%s]: Not a regular file.", relativePath)
		tracker.Track(relativePath, ReasonSkippedNotRegular, false)
		return
	}

	if options.MaxFileSize > 0 && info.Size() > options.MaxFileSize {
		options.Logger.Debug("processFile Skipping [%s]: Exceeds size limit (%d > %d bytes)",
			relativePath, info.Size(), options.MaxFileSize)
		tracker.Track(relativePath, ReasonSkippedSizeLimit, false)
		return
	}

	content, err := os.ReadFile(path)
	if err != nil {
		reason := ReasonSkippedReadError
		if os.IsPermission(err) {
			reason = ReasonSkippedPermError
		}
		options.Logger.Error("processFile Error [%s]: Failed to read file: %v", relativePath, err)
		tracker.Track(relativePath, reason, false)
		walkFn(relativePath, nil, fmt.Errorf("failed to read file: %w", err))
		return
	}

	options.Logger.Debug("processFile Success [%s]: Read %d bytes. Calling walkFn.", relativePath, len(content))
	if err := walkFn(relativePath, content, nil); err != nil {
		options.Logger.Error("processFile Error [%s]: Callback function returned error: %v", relativePath, err)
	}
}
