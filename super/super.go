// Package super decodes the superblock and maps inode and block numbers to
// their on-disk addresses.
package super

import (
	"errors"
	"fmt"

	"github.com/tchajed/marshal"

	"github.com/RobertReece/os-project3-fscheck/addr"
	"github.com/RobertReece/os-project3-fscheck/common"
	"github.com/RobertReece/os-project3-fscheck/disk"
)

var ErrBadSuperblock = errors.New("bad superblock")

// Superblock is the on-disk superblock.
type Superblock struct {
	Size    uint64 // size of the file system image in blocks
	Nblocks uint64 // number of data blocks
	Ninodes uint64 // number of inodes
}

func (sb Superblock) Encode() []byte {
	enc := marshal.NewEnc(common.BSIZE)
	enc.PutInt32(uint32(sb.Size))
	enc.PutInt32(uint32(sb.Nblocks))
	enc.PutInt32(uint32(sb.Ninodes))
	return enc.Finish()
}

func Decode(b []byte) Superblock {
	dec := marshal.NewDec(b)
	return Superblock{
		Size:    uint64(dec.GetInt32()),
		Nblocks: uint64(dec.GetInt32()),
		Ninodes: uint64(dec.GetInt32()),
	}
}

// FsSuper is the geometry of an image, derived from its superblock and the
// compiled-in format constants. It only computes addresses; callers read
// through the bounds-checked disk.Image.
type FsSuper struct {
	Superblock
	NInodeBlk    uint64
	NBlockBitmap uint64
}

func MkFsSuper(sb Superblock) *FsSuper {
	return &FsSuper{
		Superblock:   sb,
		NInodeBlk:    sb.Ninodes/common.INODEBLK + 1,
		NBlockBitmap: sb.Size/common.NBITBLOCK + 1,
	}
}

// ReadFsSuper reads and sanity checks the superblock of img.
func ReadFsSuper(img *disk.Image) (*FsSuper, error) {
	b, err := img.Block(common.SUPERBLK)
	if err != nil {
		return nil, fmt.Errorf("image too small for superblock: %w", err)
	}
	fs := MkFsSuper(Decode(b))
	if err := fs.validate(img.NBlocks()); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *FsSuper) validate(imgBlocks uint64) error {
	if fs.Ninodes == 0 {
		return fmt.Errorf("%w: no inodes", ErrBadSuperblock)
	}
	if fs.Size > imgBlocks {
		return fmt.Errorf("%w: size %d exceeds image of %d blocks",
			ErrBadSuperblock, fs.Size, imgBlocks)
	}
	if fs.Nblocks > fs.Size {
		return fmt.Errorf("%w: nblocks %d exceeds size %d",
			ErrBadSuperblock, fs.Nblocks, fs.Size)
	}
	if fs.DataStart() < fs.NMeta() {
		return fmt.Errorf("%w: data blocks start at %d inside metadata ending at %d",
			ErrBadSuperblock, fs.DataStart(), fs.NMeta())
	}
	return nil
}

func (fs *FsSuper) InodeStart() common.Bnum {
	return common.INODEBLK0
}

func (fs *FsSuper) BitmapStart() common.Bnum {
	return fs.InodeStart() + common.Bnum(fs.NInodeBlk)
}

// NMeta is the number of metadata blocks: boot block, superblock, inode
// table and bitmap. They occupy [0, NMeta()).
func (fs *FsSuper) NMeta() uint64 {
	return fs.BitmapStart() + fs.NBlockBitmap
}

// DataStart is the first valid data block number.
func (fs *FsSuper) DataStart() common.Bnum {
	return fs.Size - fs.Nblocks
}

// ValidData reports whether bn lies in [size-nblocks, size).
func (fs *FsSuper) ValidData(bn common.Bnum) bool {
	return bn >= fs.DataStart() && bn < fs.Size
}

func (fs *FsSuper) Block2Addr(blkno common.Bnum) addr.Addr {
	return addr.MkBlockAddr(blkno)
}

// Inum2Addr is the address of inode inum in the inode table.
func (fs *FsSuper) Inum2Addr(inum common.Inum) addr.Addr {
	return addr.MkAddr(fs.InodeStart()+common.Bnum(uint64(inum)/common.INODEBLK),
		(uint64(inum)%common.INODEBLK)*common.INODESZ*8)
}

// Bit2Addr is the address of the bitmap bit for block bn.
func (fs *FsSuper) Bit2Addr(bn common.Bnum) addr.Addr {
	return addr.MkBitAddr(fs.BitmapStart(), bn)
}

func (fs *FsSuper) NInode() common.Inum {
	return common.Inum(fs.Ninodes)
}
