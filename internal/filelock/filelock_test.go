package filelock

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockPath(t *testing.T) {
	dir := t.TempDir()
	a := LockPath(filepath.Join(dir, "ignore.json"))
	b := LockPath(filepath.Join(dir, "other.json"))

	assert.Equal(t, os.TempDir(), filepath.Dir(a))
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, LockPath(filepath.Join(dir, ".", "ignore.json")))
}

func TestAtomicWrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "state.json")

	require.NoError(t, AtomicWrite(target, []byte("{}")))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	// No temp files are left behind.
	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAtomicWriteOverwrites(t *testing.T) {
	target := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(target, []byte("old content"), 0644))

	require.NoError(t, AtomicWrite(target, []byte("new")))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestWithLockPropagatesError(t *testing.T) {
	target := filepath.Join(t.TempDir(), "state.json")
	sentinel := errors.New("boom")

	err := WithLock(target, func() error { return sentinel })
	assert.ErrorIs(t, err, sentinel)

	// The lock is released even when fn fails.
	require.NoError(t, WithLock(target, func() error { return nil }))
}

func TestWithLockSerializesReadModifyWrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "counter.txt")
	require.NoError(t, os.WriteFile(target, []byte("0"), 0644))

	const goroutines = 5
	const iterations = 10

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				err := WithLock(target, func() error {
					data, err := os.ReadFile(target)
					if err != nil {
						return err
					}
					n, err := strconv.Atoi(string(data))
					if err != nil {
						return err
					}
					return AtomicWrite(target, []byte(strconv.Itoa(n+1)))
				})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(goroutines*iterations), string(data))
}

func TestLockAndWrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(target, []byte(`{"1": "a"}`), 0644))

	require.NoError(t, LockAndWrite(target, []byte("{}")))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
	_, err = os.Stat(LockPath(target))
	assert.NoError(t, err, "lock file stays in place for later writers")
}
