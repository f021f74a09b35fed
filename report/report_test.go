package report

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RobertReece/os-project3-fscheck/common"
	"github.com/RobertReece/os-project3-fscheck/disk"
	"github.com/RobertReece/os-project3-fscheck/fsck"
	"github.com/RobertReece/os-project3-fscheck/inode"
	"github.com/RobertReece/os-project3-fscheck/mkfs"
)

func mkReporter() (*Reporter, *bytes.Buffer, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	var out bytes.Buffer
	return New(&out, log), &out, hook
}

func TestResultConsistent(t *testing.T) {
	r, out, hook := mkReporter()
	assert.True(t, r.Result("fs.img", nil))
	assert.Empty(t, out.String())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
}

func TestResultViolation(t *testing.T) {
	f, err := mkfs.MkFs(1024, 200)
	require.NoError(t, err)
	inum, err := f.Ialloc(common.T_FILE)
	require.NoError(t, err)
	img, err := f.Image()
	require.NoError(t, err)

	r, out, hook := mkReporter()
	assert.False(t, r.Result("fs.img", fsck.Check(img)))
	assert.Equal(t, "ERROR: inode marked use but not found in a directory.\n", out.String())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, inum, hook.LastEntry().Data["inum"])
	assert.Equal(t, "fs.img", hook.LastEntry().Data["image"])
}

func TestResultImageError(t *testing.T) {
	r, out, hook := mkReporter()
	err := fmt.Errorf("open fs.img: %w", disk.ErrEmptyImage)
	assert.False(t, r.Result("fs.img", err))
	assert.Contains(t, out.String(), "ERROR: cannot check image")
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestListings(t *testing.T) {
	f, err := mkfs.MkFs(1024, 200)
	require.NoError(t, err)
	r, out, _ := mkReporter()

	r.Super(f.Super())
	assert.Equal(t, "size 1024 nblocks 995 ninodes 200\n"+
		"inode blocks 2-27, bitmap blocks 28-28, data blocks 29-1023\n", out.String())

	out.Reset()
	r.Inode(3, &inode.Dinode{Type: common.T_DEV, Nlink: 1, Major: 1, Minor: 2})
	assert.Equal(t, "   3 dev  nlink 1 size 0 dev 1,2\n", out.String())

	out.Reset()
	r.Entry(fsck.Entry{Path: "/.", Inode: f.Rinode(common.ROOTINUM)})
	assert.Contains(t, out.String(), "/.")
	assert.Contains(t, out.String(), "dir")
}
