// Package fsck checks the structural consistency of a file system image.
//
// The check runs in phases, each of which stops at the first violation:
//
//  1. every inode's type, block addresses, and the bitmap bits of the blocks
//     it uses (checkInodes);
//  2. no block is used twice, and every block the bitmap marks in use is
//     used (checkBlocks);
//  3. a walk of the directory tree from the root that checks "." and ".."
//     and counts references to each inode (walk);
//  4. link counts and reachability from the counts of the walk (audit).
//
// All scan state belongs to the Checker, so one process may check many
// images.
package fsck

import (
	"github.com/RobertReece/os-project3-fscheck/bitmap"
	"github.com/RobertReece/os-project3-fscheck/common"
	"github.com/RobertReece/os-project3-fscheck/dir"
	"github.com/RobertReece/os-project3-fscheck/disk"
	"github.com/RobertReece/os-project3-fscheck/inode"
	"github.com/RobertReece/os-project3-fscheck/super"
	"github.com/RobertReece/os-project3-fscheck/util"
)

// Entry describes one directory entry seen during the tree walk.
type Entry struct {
	Path   string
	Dir    common.Inum
	Dirent dir.Dirent
	Inode  *inode.Dinode
}

type Checker struct {
	img *disk.Image
	fs  *super.FsSuper
	bm  *bitmap.Bitmap

	inodes []*inode.Dinode // decoded inode table, indexed by inum

	used    []bool        // block ledger, indexed by block number
	refs    []uint64      // directory entries naming each inode, without "." and ".."
	visited []bool        // directories the walk has entered
	parent  []common.Inum // directory the walk entered each directory from
	dotdot  []common.Inum // ".." of each walked directory

	observe func(Entry)
}

// MkChecker reads the superblock of img. The only errors are image errors.
func MkChecker(img *disk.Image) (*Checker, error) {
	fs, err := super.ReadFsSuper(img)
	if err != nil {
		return nil, err
	}
	util.DPrintf(1, "fs size %d, no. of blocks %d, no. of inodes %d\n",
		fs.Size, fs.Nblocks, fs.Ninodes)
	n := fs.Ninodes + 1
	return &Checker{
		img:     img,
		fs:      fs,
		bm:      bitmap.MkBitmap(img, fs),
		inodes:  make([]*inode.Dinode, n),
		used:    make([]bool, fs.Size),
		refs:    make([]uint64, n),
		visited: make([]bool, n),
		parent:  make([]common.Inum, n),
		dotdot:  make([]common.Inum, n),
	}, nil
}

// Super is the geometry of the image being checked.
func (c *Checker) Super() *super.FsSuper {
	return c.fs
}

// Observe registers fn to be called for every non-empty directory entry the
// tree walk visits.
func (c *Checker) Observe(fn func(Entry)) {
	c.observe = fn
}

// Inode returns the decoded inode inum. Only valid after a check has read the
// inode table.
func (c *Checker) Inode(inum common.Inum) *inode.Dinode {
	if uint64(inum) >= uint64(len(c.inodes)) {
		return nil
	}
	return c.inodes[inum]
}

// Check runs every phase. It returns nil for a consistent image, a
// *Violation for the first inconsistency, or an image error.
func (c *Checker) Check() error {
	if err := c.checkInodes(); err != nil {
		return err
	}
	if err := c.checkBlocks(); err != nil {
		return err
	}
	if err := c.walk(); err != nil {
		return err
	}
	return c.audit()
}

// Check checks img from scratch.
func Check(img *disk.Image) error {
	c, err := MkChecker(img)
	if err != nil {
		return err
	}
	return c.Check()
}
