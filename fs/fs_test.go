package fs_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pseudofs/fs"
)

func newMounted(t *testing.T) *fs.FileSystem {
	t.Helper()
	path := filepath.Join(t.TempDir(), "disk.img")
	fsys, err := fs.Format(path, 1<<20, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)
	t.Cleanup(func() { fsys.Close() })
	return fsys
}

func TestMkdirCdPwd(t *testing.T) {
	f := newMounted(t)

	require.NoError(t, fs.Mkdir(f, "Documents"))
	require.NoError(t, fs.Cd(f, "Documents"))

	p, err := f.Pwd()
	require.NoError(t, err)
	assert.Equal(t, "/Documents/", p)
}

func TestMkdirDuplicateNameReportsExists(t *testing.T) {
	f := newMounted(t)

	require.NoError(t, fs.Mkdir(f, "A"))
	err := fs.Mkdir(f, "A")
	assert.Error(t, err)

	entries, err := fs.Ls(f, "")
	require.NoError(t, err)
	count := 0
	for _, e := range entries {
		if e.Name == "A" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestIncpOutcpRoundTrip(t *testing.T) {
	f := newMounted(t)

	hostPath := filepath.Join(t.TempDir(), "host_2500B.bin")
	payload := bytes.Repeat([]byte{0xAB}, 2500)
	require.NoError(t, os.WriteFile(hostPath, payload, 0o644))

	require.NoError(t, fs.Incp(f, hostPath, "note"))

	outPath := filepath.Join(t.TempDir(), "out.bin")
	require.NoError(t, fs.Outcp(f, "note", outPath))

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	content, err := fs.Cat(f, "note")
	require.NoError(t, err)
	assert.Equal(t, payload, content)
}

func TestIncpSixThousandBytesUsesIndirectBlock(t *testing.T) {
	f := newMounted(t)

	hostPath := filepath.Join(t.TempDir(), "host_6000B.bin")
	payload := bytes.Repeat([]byte{0x7F}, 6000)
	require.NoError(t, os.WriteFile(hostPath, payload, 0o644))

	require.NoError(t, fs.Incp(f, hostPath, "big"))

	info, err := fs.Info(f, "big")
	require.NoError(t, err)
	assert.Len(t, info.Clusters, 6)
}

func TestSlinkFollowsToTarget(t *testing.T) {
	f := newMounted(t)

	hostPath := filepath.Join(t.TempDir(), "src.txt")
	require.NoError(t, os.WriteFile(hostPath, []byte("hello"), 0o644))
	require.NoError(t, fs.Incp(f, hostPath, "note"))

	require.NoError(t, fs.Slink(f, "note", "alias"))

	content, err := fs.Cat(f, "alias")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), content)

	entries, err := fs.Ls(f, "")
	require.NoError(t, err)
	var alias *fs.LsEntry
	for i := range entries {
		if entries[i].Name == "alias" {
			alias = &entries[i]
		}
	}
	require.NotNil(t, alias)
	assert.Equal(t, "/note", alias.LinkTarget)
}

func TestRmdirNotEmptyThenSucceedsAfterRm(t *testing.T) {
	f := newMounted(t)

	require.NoError(t, fs.Mkdir(f, "D"))
	hostPath := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(hostPath, []byte("x"), 0o644))
	require.NoError(t, fs.Incp(f, hostPath, "D/"))

	err := fs.Rmdir(f, "D")
	assert.Error(t, err)

	require.NoError(t, fs.Rm(f, "D/f.txt"))
	require.NoError(t, fs.Rmdir(f, "D"))
}

func TestCpPreservesContentAndMvPreservesID(t *testing.T) {
	f := newMounted(t)

	hostPath := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(hostPath, []byte("payload"), 0o644))
	require.NoError(t, fs.Incp(f, hostPath, "f"))

	require.NoError(t, fs.Cp(f, "f", "g"))
	content, err := fs.Cat(f, "g")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), content)

	require.NoError(t, fs.Mkdir(f, "sub"))
	infoBefore, err := fs.Info(f, "g")
	require.NoError(t, err)

	require.NoError(t, fs.Mv(f, "g", "sub/g2"))
	infoAfter, err := fs.Info(f, "sub/g2")
	require.NoError(t, err)
	assert.Equal(t, infoBefore.InodeID, infoAfter.InodeID)
}

func TestMvRenameWithinSameDirectory(t *testing.T) {
	f := newMounted(t)

	hostPath := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(hostPath, []byte("payload"), 0o644))
	require.NoError(t, fs.Incp(f, hostPath, "note"))

	infoBefore, err := fs.Info(f, "note")
	require.NoError(t, err)

	require.NoError(t, fs.Mv(f, "note", "renamed"))

	entries, err := fs.Ls(f, "")
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Contains(t, names, "renamed")
	assert.NotContains(t, names, "note")
	assert.Len(t, names, 3) // ".", "..", "renamed"

	infoAfter, err := fs.Info(f, "renamed")
	require.NoError(t, err)
	assert.Equal(t, infoBefore.InodeID, infoAfter.InodeID)

	content, err := fs.Cat(f, "renamed")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), content)

	status, err := f.Check()
	require.NoError(t, err)
	assert.Equal(t, "OK", status)
}

func TestCheckReportsOKOnFreshlyFormattedImage(t *testing.T) {
	f := newMounted(t)

	status, err := f.Check()
	require.NoError(t, err)
	assert.Equal(t, "OK", status)
}

func TestCheckStillOKAfterMutations(t *testing.T) {
	f := newMounted(t)

	require.NoError(t, fs.Mkdir(f, "A"))
	require.NoError(t, fs.Mkdir(f, "A/B"))
	require.NoError(t, fs.Rmdir(f, "A/B"))

	status, err := f.Check()
	require.NoError(t, err)
	assert.Equal(t, "OK", status)
}
