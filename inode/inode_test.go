package inode_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RobertReece/os-project3-fscheck/common"
	"github.com/RobertReece/os-project3-fscheck/inode"
	"github.com/RobertReece/os-project3-fscheck/mkfs"
)

func TestEncodeDecode(t *testing.T) {
	ip := &inode.Dinode{Type: common.T_DEV, Major: 3, Minor: 7, Nlink: 2, Size: 1000}
	for i := range ip.Addrs {
		ip.Addrs[i] = common.Bnum(100 + i)
	}
	b := ip.Encode()
	assert.Equal(t, common.INODESZ, uint64(len(b)))
	if diff := cmp.Diff(ip, inode.Decode(b)); diff != "" {
		t.Errorf("decode (-want +got):\n%s", diff)
	}
}

func TestLayout(t *testing.T) {
	b := make([]byte, common.INODESZ)
	b[0] = 2  // type
	b[6] = 1  // nlink
	b[8] = 44 // size
	b[12] = 29
	b[60] = 42
	ip := inode.Decode(b)
	assert.Equal(t, common.T_FILE, ip.Type)
	assert.Equal(t, uint16(1), ip.Nlink)
	assert.Equal(t, uint64(44), ip.Size)
	assert.Equal(t, common.Bnum(29), ip.Addrs[0])
	assert.Equal(t, common.Bnum(42), ip.Indirect())
	assert.False(t, ip.IsFree())
}

func TestReadExpand(t *testing.T) {
	f, err := mkfs.MkFs(1024, 200)
	require.NoError(t, err)
	inum, err := f.Create(common.ROOTINUM, "f", make([]byte, (common.NDIRECT+3)*common.BSIZE))
	require.NoError(t, err)
	img, err := f.Image()
	require.NoError(t, err)

	ip, err := inode.Read(img, f.Super(), inum)
	require.NoError(t, err)
	assert.Equal(t, common.T_FILE, ip.Type)

	ind, err := inode.Expand(img, f.Super(), ip.Indirect())
	require.NoError(t, err)
	assert.Len(t, ind, int(common.NINDIRECT))
	for i, bn := range ind {
		if i < 3 {
			assert.NotEqual(t, common.NULLBNUM, bn)
		} else {
			assert.Equal(t, common.NULLBNUM, bn)
		}
	}

	bns, err := inode.Blocks(img, f.Super(), ip)
	require.NoError(t, err)
	assert.Len(t, bns, int(common.MAXFILE))
	assert.Equal(t, ip.Addrs[0], bns[0])
	assert.Equal(t, ind[0], bns[common.NDIRECT])
}

func TestBlocksDirectOnly(t *testing.T) {
	f, err := mkfs.MkFs(1024, 200)
	require.NoError(t, err)
	img, err := f.Image()
	require.NoError(t, err)
	ip, err := inode.Read(img, f.Super(), common.ROOTINUM)
	require.NoError(t, err)
	bns, err := inode.Blocks(img, f.Super(), ip)
	require.NoError(t, err)
	assert.Len(t, bns, int(common.NDIRECT))
	assert.Equal(t, f.Super().DataStart(), bns[0])
}
