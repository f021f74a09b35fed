package fsck

import (
	"github.com/RobertReece/os-project3-fscheck/common"
	"github.com/RobertReece/os-project3-fscheck/inode"
)

// checkBlocks builds the block ledger from every in-use inode, failing on a
// block used twice, then compares the ledger with the bitmap. Requires
// checkInodes to have validated every address.
func (c *Checker) checkBlocks() error {
	for inum := common.ROOTINUM; uint64(inum) <= c.fs.Ninodes; inum++ {
		ip := c.inodes[inum]
		if ip.IsFree() {
			continue
		}
		if err := c.markBlocks(inum, ip); err != nil {
			return err
		}
	}
	for bn := uint64(0); bn < c.fs.NMeta(); bn++ {
		c.used[bn] = true
	}
	for bn := common.Bnum(0); bn < c.fs.Size; bn++ {
		alloc, err := c.bm.IsAllocated(bn)
		if err != nil {
			return err
		}
		if alloc && !c.used[bn] {
			return blockViolation(ErrBitmapNotInUse, common.NULLINUM, bn)
		}
	}
	return nil
}

func (c *Checker) markBlocks(inum common.Inum, ip *inode.Dinode) error {
	for _, bn := range ip.Direct() {
		if err := c.mark(inum, bn, ErrDirectDup); err != nil {
			return err
		}
	}
	ind := ip.Indirect()
	if ind == common.NULLBNUM {
		return nil
	}
	if err := c.mark(inum, ind, ErrIndirectDup); err != nil {
		return err
	}
	bns, err := inode.Expand(c.img, c.fs, ind)
	if err != nil {
		return err
	}
	for _, bn := range bns {
		if err := c.mark(inum, bn, ErrIndirectDup); err != nil {
			return err
		}
	}
	return nil
}

// mark records bn as used, reporting dup if it already was.
func (c *Checker) mark(inum common.Inum, bn common.Bnum, dup error) error {
	if bn == common.NULLBNUM {
		return nil
	}
	if c.used[bn] {
		return blockViolation(dup, inum, bn)
	}
	c.used[bn] = true
	return nil
}
