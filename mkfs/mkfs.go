// Package mkfs builds well-formed file system images: a root directory plus
// whatever directories, files, devices and links the caller adds.
package mkfs

import (
	"errors"
	"fmt"

	goosedisk "github.com/tchajed/goose/machine/disk"

	"github.com/RobertReece/os-project3-fscheck/alloc"
	"github.com/RobertReece/os-project3-fscheck/buf"
	"github.com/RobertReece/os-project3-fscheck/common"
	"github.com/RobertReece/os-project3-fscheck/dir"
	"github.com/RobertReece/os-project3-fscheck/disk"
	"github.com/RobertReece/os-project3-fscheck/inode"
	"github.com/RobertReece/os-project3-fscheck/super"
	"github.com/RobertReece/os-project3-fscheck/util"
)

var (
	ErrNoInodes = errors.New("out of inodes")
	ErrNoBlocks = errors.New("out of data blocks")
	ErrTooBig   = errors.New("file too big")
)

// Fs is an image under construction, held in memory.
type Fs struct {
	fs        *super.FsSuper
	img       []byte
	balloc    *alloc.Alloc
	freeinode common.Inum
}

// MkFs lays out an empty image of size blocks with ninodes inodes and
// creates the root directory.
func MkFs(size, ninodes uint64) (*Fs, error) {
	if ninodes == 0 {
		return nil, fmt.Errorf("mkfs: need at least one inode")
	}
	geom := super.MkFsSuper(super.Superblock{Size: size, Ninodes: ninodes})
	nmeta := geom.NMeta()
	if size <= nmeta {
		return nil, fmt.Errorf("mkfs: %d blocks leave no room for data after %d metadata blocks",
			size, nmeta)
	}
	sb := super.Superblock{Size: size, Nblocks: size - nmeta, Ninodes: ninodes}
	util.DPrintf(1, "mkfs: nmeta %d (boot, super, inode blocks %d, bitmap blocks %d) blocks %d total %d\n",
		nmeta, geom.NInodeBlk, geom.NBlockBitmap, sb.Nblocks, size)

	f := &Fs{
		fs:        super.MkFsSuper(sb),
		img:       make([]byte, util.RoundUp(size*common.BSIZE, goosedisk.BlockSize)*goosedisk.BlockSize),
		balloc:    alloc.MkMaxAlloc(size),
		freeinode: common.ROOTINUM,
	}
	copy(f.block(common.SUPERBLK), sb.Encode())
	for bn := uint64(0); bn < nmeta; bn++ {
		f.balloc.MarkUsed(bn)
		f.SetBit(bn, true)
	}

	root, err := f.Ialloc(common.T_DIR)
	if err != nil {
		return nil, err
	}
	if err := f.AddEntry(root, ".", root); err != nil {
		return nil, err
	}
	if err := f.AddEntry(root, "..", root); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Fs) Super() *super.FsSuper {
	return f.fs
}

func (f *Fs) block(bn common.Bnum) []byte {
	off := bn * common.BSIZE
	return f.img[off : off+common.BSIZE]
}

// Bytes is the live image; changes to it are visible to Image.
func (f *Fs) Bytes() []byte {
	return f.img
}

func (f *Fs) Image() (*disk.Image, error) {
	return disk.FromBytes(f.img)
}

// NDiskBlocks is the size of the image in device blocks.
func (f *Fs) NDiskBlocks() uint64 {
	return uint64(len(f.img)) / goosedisk.BlockSize
}

// WriteTo copies the image onto d, which must hold NDiskBlocks blocks.
func (f *Fs) WriteTo(d goosedisk.Disk) error {
	if d.Size() < f.NDiskBlocks() {
		return fmt.Errorf("mkfs: device of %d blocks cannot hold %d", d.Size(), f.NDiskBlocks())
	}
	for a := uint64(0); a < f.NDiskBlocks(); a++ {
		off := a * goosedisk.BlockSize
		d.Write(a, f.img[off:off+goosedisk.BlockSize])
	}
	d.Barrier()
	return nil
}

// NumFree is the number of data blocks not yet allocated.
func (f *Fs) NumFree() uint64 {
	return f.balloc.NumFree()
}

// SetBit sets or clears the bitmap bit of block bn in the image only; the
// allocator is not consulted.
func (f *Fs) SetBit(bn common.Bnum, used bool) {
	a := f.fs.Bit2Addr(bn)
	bit := byte(1) << (a.Off % 8)
	if used {
		f.img[a.ByteOff()] |= bit
	} else {
		f.img[a.ByteOff()] &^= bit
	}
}

func (f *Fs) balloc1() (common.Bnum, error) {
	bn := f.balloc.AllocNum()
	if bn == 0 {
		return 0, ErrNoBlocks
	}
	f.SetBit(bn, true)
	util.DPrintf(5, "balloc: %d\n", bn)
	return bn, nil
}

// Rinode decodes inode inum from the image.
func (f *Fs) Rinode(inum common.Inum) *inode.Dinode {
	off := f.fs.Inum2Addr(inum).ByteOff()
	return inode.Decode(f.img[off : off+common.INODESZ])
}

// Winode overwrites inode inum in the image.
func (f *Fs) Winode(inum common.Inum, ip *inode.Dinode) {
	off := f.fs.Inum2Addr(inum).ByteOff()
	copy(f.img[off:off+common.INODESZ], ip.Encode())
}

// Ialloc takes the next free inode and initializes it with type t and a
// link count of one.
func (f *Fs) Ialloc(t common.Itype) (common.Inum, error) {
	inum := f.freeinode
	if uint64(inum) > f.fs.Ninodes {
		return 0, ErrNoInodes
	}
	f.freeinode++
	f.Winode(inum, &inode.Dinode{Type: t, Nlink: 1})
	return inum, nil
}

// Append writes data at the end of inode inum, allocating direct blocks
// first and then the indirect block and its entries. On error the inode
// keeps whatever was written before the failure.
func (f *Fs) Append(inum common.Inum, data []byte) error {
	ip := f.Rinode(inum)
	err := f.append(inum, ip, data)
	f.Winode(inum, ip)
	return err
}

func (f *Fs) append(inum common.Inum, ip *inode.Dinode, data []byte) error {
	for n := uint64(len(data)); n > 0; {
		off := ip.Size
		fbn := off / common.BSIZE
		if fbn >= common.MAXFILE {
			return fmt.Errorf("inode %d: %w", inum, ErrTooBig)
		}
		bn, err := f.bmap(ip, fbn)
		if err != nil {
			return err
		}
		n1 := util.Min(n, (fbn+1)*common.BSIZE-off)
		start := off - fbn*common.BSIZE
		copy(f.block(bn)[start:start+n1], data[:n1])
		data = data[n1:]
		n -= n1
		ip.Size = off + n1
	}
	return nil
}

// ifree releases every block of inode inum, the indirect block included, and
// marks the inode free.
func (f *Fs) ifree(inum common.Inum) {
	ip := f.Rinode(inum)
	bns := append([]common.Bnum{}, ip.Direct()...)
	if ind := ip.Indirect(); ind != common.NULLBNUM {
		b := buf.MkBufLoad(f.fs.Block2Addr(ind), common.NBITBLOCK, f.block(ind))
		bns = append(bns, b.Bnums()...)
		bns = append(bns, ind)
	}
	for _, bn := range bns {
		if bn == common.NULLBNUM {
			continue
		}
		f.balloc.FreeNum(bn)
		f.SetBit(bn, false)
		util.DPrintf(5, "bfree: %d\n", bn)
	}
	f.Winode(inum, &inode.Dinode{})
}

// bmap returns the block holding file block fbn of ip, allocating it (and
// the indirect block) if needed.
func (f *Fs) bmap(ip *inode.Dinode, fbn uint64) (common.Bnum, error) {
	if fbn < common.NDIRECT {
		if ip.Addrs[fbn] == common.NULLBNUM {
			bn, err := f.balloc1()
			if err != nil {
				return 0, err
			}
			ip.Addrs[fbn] = bn
		}
		return ip.Addrs[fbn], nil
	}
	if ip.Indirect() == common.NULLBNUM {
		bn, err := f.balloc1()
		if err != nil {
			return 0, err
		}
		ip.Addrs[common.NDIRECT] = bn
	}
	ind := buf.MkBufLoad(f.fs.Block2Addr(ip.Indirect()), common.NBITBLOCK, f.block(ip.Indirect()))
	bn := ind.BnumGet(fbn - common.NDIRECT)
	if bn == common.NULLBNUM {
		var err error
		bn, err = f.balloc1()
		if err != nil {
			return 0, err
		}
		ind.BnumPut(fbn-common.NDIRECT, bn)
	}
	return bn, nil
}

// AddEntry appends a directory entry to directory parent without touching
// any link count.
func (f *Fs) AddEntry(parent common.Inum, name string, inum common.Inum) error {
	de, err := dir.MkDirent(inum, name)
	if err != nil {
		return err
	}
	return f.Append(parent, de.Encode())
}

// Mkdir creates a directory with "." and ".." in parent.
func (f *Fs) Mkdir(parent common.Inum, name string) (common.Inum, error) {
	inum, err := f.Ialloc(common.T_DIR)
	if err != nil {
		return 0, err
	}
	if err := f.AddEntry(inum, ".", inum); err != nil {
		return 0, err
	}
	if err := f.AddEntry(inum, "..", parent); err != nil {
		return 0, err
	}
	return inum, f.AddEntry(parent, name, inum)
}

// Create makes a regular file holding data in parent.
func (f *Fs) Create(parent common.Inum, name string, data []byte) (common.Inum, error) {
	inum, err := f.Ialloc(common.T_FILE)
	if err != nil {
		return 0, err
	}
	if err := f.Append(inum, data); err != nil {
		f.ifree(inum)
		return 0, err
	}
	return inum, f.AddEntry(parent, name, inum)
}

// Mknod makes a device inode in parent.
func (f *Fs) Mknod(parent common.Inum, name string, major, minor uint16) (common.Inum, error) {
	inum, err := f.Ialloc(common.T_DEV)
	if err != nil {
		return 0, err
	}
	ip := f.Rinode(inum)
	ip.Major = major
	ip.Minor = minor
	f.Winode(inum, ip)
	return inum, f.AddEntry(parent, name, inum)
}

// Link adds another name for inum in parent and bumps its link count.
func (f *Fs) Link(parent common.Inum, name string, inum common.Inum) error {
	if err := f.AddEntry(parent, name, inum); err != nil {
		return err
	}
	ip := f.Rinode(inum)
	ip.Nlink++
	f.Winode(inum, ip)
	return nil
}
