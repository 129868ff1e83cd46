// Package walker handles directory traversal and file selection
package walker

// WalkFunc receives every accepted file. err is non-nil when the file was
// accepted but could not be read; content is nil in that case.
type WalkFunc func(relativePath string, content []byte, err error) error

// SkippedReason clarifies why a file/directory was not processed.
type SkippedReason string

const (
	ReasonIgnoredRule       SkippedReason = "Ignored (Registry/Pattern Rule)"
	ReasonExcludedName      SkippedReason = "Excluded (Protected File Name)"
	ReasonIgnoredName       SkippedReason = "Ignored (Registry Name)"
	ReasonFilteredExtension SkippedReason = "Filtered (Extension Mismatch)"
	ReasonPrunedDir         SkippedReason = "Pruned (Tooling Directory)"
	ReasonSkippedSymlink    SkippedReason = "Skipped (Symbolic Link)"
	ReasonSkippedCycle      SkippedReason = "Skipped (Directory Already Visited)"
	ReasonSkippedSizeLimit  SkippedReason = "Skipped (Size Limit Exceeded)"
	ReasonSkippedNotRegular SkippedReason = "Skipped (Not a Regular File)"
	ReasonSkippedPermError  SkippedReason = "Skipped (Permission Error)"
	ReasonSkippedWalkError  SkippedReason = "Skipped (Walk Error)"
	ReasonSkippedReadError  SkippedReason = "Skipped (Read Error)"
	ReasonSkippedInfoError  SkippedReason = "Skipped (File Info Error)"
)

// SkippedItem holds information about a skipped path.
type SkippedItem struct {
	Path   string        `json:"path"`
	Reason SkippedReason `json:"reason"`
	IsDir  bool          `json:"is_dir"`
}

// SkippedTracker records skipped items in the order they are met
type SkippedTracker struct {
	items []SkippedItem
}

// NewSkippedTracker creates a new SkippedTracker
func NewSkippedTracker(capacity int) *SkippedTracker {
	return &SkippedTracker{
		items: make([]SkippedItem, 0, capacity),
	}
}

// Track adds a skipped item to the tracker
func (st *SkippedTracker) Track(path string, reason SkippedReason, isDir bool) {
	st.items = append(st.items, SkippedItem{Path: path, Reason: reason, IsDir: isDir})
}

// Items returns the tracked skipped items
func (st *SkippedTracker) Items() []SkippedItem {
	return st.items
}
