package pathresolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pseudofs/internal/bitmap"
	"pseudofs/internal/directory"
	"pseudofs/internal/inodetable"
	"pseudofs/internal/pathresolver"
	"pseudofs/pkg/image"
	"pseudofs/pkg/types"
)

// fixture builds: root (0) containing directory "sub" (1), which contains
// a file "note" (2).
func fixture(t *testing.T) *pathresolver.Resolver {
	t.Helper()
	img, err := image.Create(t.TempDir()+"/disk.dat", 1<<20)
	require.NoError(t, err)
	t.Cleanup(func() { img.Close() })

	sb := types.NewSuperblock(1<<20, 100)
	bm := bitmap.NewAllFree(img, int64(sb.BitmapStart), sb.ClusterCount)
	tbl := inodetable.NewAllFree(img, int64(sb.InodeStart))

	root := tbl.Get(0)
	root.IsFree = false
	root.IsDir = true
	root.ParentID = 0
	tbl.Set(root)

	root = tbl.Get(0)
	root, err = directory.Reserve(root, bm.Allocate, bm.Free)
	require.NoError(t, err)
	root, err = directory.Write(img, sb, root, append(directory.NewRoot(0), types.NewDirEntry(1, "sub")))
	require.NoError(t, err)
	tbl.Set(root)

	sub := tbl.Get(1)
	sub.IsFree = false
	sub.IsDir = true
	sub.ParentID = 0
	tbl.Set(sub)
	sub = tbl.Get(1)
	sub, err = directory.Reserve(sub, bm.Allocate, bm.Free)
	require.NoError(t, err)
	sub, err = directory.Write(img, sb, sub, append(directory.NewEntries(1, 0), types.NewDirEntry(2, "note")))
	require.NoError(t, err)
	tbl.Set(sub)

	note := tbl.Get(2)
	note.IsFree = false
	note.IsDir = false
	note.ParentID = 1
	tbl.Set(note)

	loadInode := func(id int32) types.Inode { return tbl.Get(id) }
	readDir := func(n types.Inode) ([]types.DirEntry, error) { return directory.Read(img, sb, n) }
	return pathresolver.New(img, sb, loadInode, readDir)
}

func TestResolveAbsolutePath(t *testing.T) {
	r := fixture(t)

	id, err := r.Resolve("/sub/note", 0)
	require.NoError(t, err)
	assert.Equal(t, int32(2), id)
}

func TestResolveRelativePath(t *testing.T) {
	r := fixture(t)

	id, err := r.Resolve("note", 1)
	require.NoError(t, err)
	assert.Equal(t, int32(2), id)
}

func TestResolveDotDot(t *testing.T) {
	r := fixture(t)

	id, err := r.Resolve("..", 1)
	require.NoError(t, err)
	assert.Equal(t, int32(0), id)
}

func TestResolveMissingComponentFails(t *testing.T) {
	r := fixture(t)

	id, err := r.Resolve("/sub/missing", 0)
	require.NoError(t, err)
	assert.Equal(t, int32(types.NullPointer), id)
}

func TestResolveThroughNonDirectoryFails(t *testing.T) {
	r := fixture(t)

	id, err := r.Resolve("/sub/note/x", 0)
	require.NoError(t, err)
	assert.Equal(t, int32(types.NullPointer), id)
}

func TestToPathForFile(t *testing.T) {
	r := fixture(t)

	p, err := r.ToPath(2)
	require.NoError(t, err)
	assert.Equal(t, "/sub/note/", p)
}

func TestToPathForRoot(t *testing.T) {
	r := fixture(t)

	p, err := r.ToPath(0)
	require.NoError(t, err)
	assert.Equal(t, "/", p)
}
