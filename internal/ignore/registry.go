package ignore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/bethropolis/dump-source/internal/filelock"
	"github.com/bethropolis/dump-source/internal/utils"
)

// StoreFileName is the persisted ignore list at the scan root
const StoreFileName = "ignore.json"

// errMalformedStore marks store content that is not a JSON object.
var errMalformedStore = errors.New("malformed ignore store")

// Registry is the persisted set of paths the user explicitly ignored.
// Keys are numeric strings allocated in increasing order; the values are the
// source of truth for membership.
type Registry struct {
	storePath  string
	normalizer *utils.Normalizer
	logger     utils.Logger
	entries    map[string]string
	values     map[string]struct{}
}

// RegistryOption configures a Registry
type RegistryOption func(*Registry)

// WithRegistryLogger sets the logger used for store recovery messages
func WithRegistryLogger(logger utils.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// LoadRegistry reads the ignore store at root. A missing store yields an
// empty registry. A malformed store is reported, rewritten as "{}" and also
// yields an empty registry.
func LoadRegistry(root string, opts ...RegistryOption) *Registry {
	normalizer := utils.NewNormalizer(root)
	r := &Registry{
		storePath:  filepath.Join(normalizer.Root(), StoreFileName),
		normalizer: normalizer,
		logger:     utils.NoopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}

	entries, err := r.read()
	if err != nil {
		r.logger.Warn("Error reading %s, resetting it: %v", r.storePath, err)
		if resetErr := r.write(map[string]string{}); resetErr != nil {
			r.logger.Error("Error resetting %s: %v", r.storePath, resetErr)
		}
		entries = map[string]string{}
	}
	r.setEntries(entries)

	return r
}

// StorePath returns the location of the backing store
func (r *Registry) StorePath() string {
	return r.storePath
}

// Len returns the number of stored entries
func (r *Registry) Len() int {
	return len(r.entries)
}

// Paths returns the stored paths ordered by key
func (r *Registry) Paths() []string {
	keys := sortedKeys(r.entries)
	paths := make([]string, 0, len(keys))
	for _, k := range keys {
		paths = append(paths, r.entries[k])
	}
	return paths
}

// Contains reports whether p is stored verbatim
func (r *Registry) Contains(p string) bool {
	if r == nil {
		return false
	}
	_, ok := r.values[p]
	return ok
}

// Add normalizes paths and stores the ones not already present, each under
// the next free numeric key. The store is re-read under lock so concurrent
// invocations do not drop each other's entries. It returns the normalized
// paths that were added.
func (r *Registry) Add(paths []string) ([]string, error) {
	var added []string

	err := filelock.WithLock(r.storePath, func() error {
		entries, err := r.read()
		if err != nil {
			r.logger.Warn("Error reading %s, starting from an empty list: %v", r.storePath, err)
			entries = map[string]string{}
		}
		r.setEntries(entries)

		next := nextKey(entries)
		for _, p := range paths {
			normalized := r.normalizer.Normalize(p)
			if r.Contains(normalized) {
				r.logger.Debug("ignore.Add: %q already ignored", normalized)
				continue
			}
			entries[strconv.Itoa(next)] = normalized
			r.values[normalized] = struct{}{}
			added = append(added, normalized)
			next++
		}

		return filelock.AtomicWrite(r.storePath, encodeStore(entries))
	})
	if err != nil {
		return nil, fmt.Errorf("ignore: failed to update %s: %w", r.storePath, err)
	}

	return added, nil
}

// Reset replaces the store with an empty object
func (r *Registry) Reset() error {
	if err := filelock.LockAndWrite(r.storePath, encodeStore(nil)); err != nil {
		return fmt.Errorf("ignore: failed to reset %s: %w", r.storePath, err)
	}
	r.setEntries(map[string]string{})
	return nil
}

func (r *Registry) read() (map[string]string, error) {
	data, err := os.ReadFile(r.storePath)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedStore, err)
	}

	// Only string values are paths; anything else a hand edit left behind
	// is dropped without losing its siblings.
	entries := make(map[string]string, len(raw))
	for k, v := range raw {
		s, ok := v.(string)
		if !ok {
			r.logger.Warn("Skipping entry %q in %s: value is not a path", k, r.storePath)
			continue
		}
		entries[k] = s
	}
	return entries, nil
}

func (r *Registry) write(entries map[string]string) error {
	return filelock.AtomicWrite(r.storePath, encodeStore(entries))
}

func (r *Registry) setEntries(entries map[string]string) {
	r.entries = entries
	r.values = make(map[string]struct{}, len(entries))
	for _, v := range entries {
		r.values[v] = struct{}{}
	}
}

// nextKey is one past the largest numeric key, or 1 when there is none.
// Keys that are not integers are left alone.
func nextKey(entries map[string]string) int {
	highest := 0
	for k := range entries {
		if n, err := strconv.Atoi(k); err == nil && n > highest {
			highest = n
		}
	}
	return highest + 1
}

// sortedKeys orders numeric keys numerically, then any other keys
// lexically.
func sortedKeys(entries map[string]string) []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}

// encodeStore renders entries as an indented JSON object in key order.
// An empty map is exactly "{}".
func encodeStore(entries map[string]string) []byte {
	if len(entries) == 0 {
		return []byte("{}")
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	keys := sortedKeys(entries)
	for i, k := range keys {
		key, _ := json.Marshal(k)
		value, _ := json.Marshal(entries[k])
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
		if i < len(keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}")
	return buf.Bytes()
}
