// Package collector accumulates the files accepted by a scan in discovery
// order.
package collector

// CollectedFile is one accepted file. It is never modified after it is
// added.
type CollectedFile struct {
	Path    string `json:"path"`
	Content []byte `json:"content"`
}

// Collector holds accepted files in the order they were discovered
type Collector struct {
	files []CollectedFile
}

// New creates an empty Collector
func New() *Collector {
	return &Collector{}
}

// Add appends a file. The content slice is owned by the collector from here on.
func (c *Collector) Add(path string, content []byte) {
	c.files = append(c.files, CollectedFile{Path: path, Content: content})
}

// Files returns the collected files in discovery order
func (c *Collector) Files() []CollectedFile {
	out := make([]CollectedFile, len(c.files))
	copy(out, c.files)
	return out
}

// Len returns the number of collected files
func (c *Collector) Len() int {
	return len(c.files)
}
