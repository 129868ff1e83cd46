package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectorKeepsDiscoveryOrder(t *testing.T) {
	c := New()
	c.Add("b.c", []byte("b"))
	c.Add("a.c", []byte("a"))
	c.Add("dir/z.c", []byte("z"))

	files := c.Files()
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"b.c", "a.c", "dir/z.c"}, []string{files[0].Path, files[1].Path, files[2].Path})
}

func TestCollectorFilesIsACopy(t *testing.T) {
	c := New()
	c.Add("a.c", []byte("a"))

	files := c.Files()
	files[0].Path = "changed"

	assert.Equal(t, "a.c", c.Files()[0].Path)
}
