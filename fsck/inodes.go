package fsck

import (
	"github.com/RobertReece/os-project3-fscheck/common"
	"github.com/RobertReece/os-project3-fscheck/inode"
	"github.com/RobertReece/os-project3-fscheck/util"
)

// checkInodes reads the whole inode table and validates each inode's type
// and block addresses, checking each block in the bitmap as it goes.
func (c *Checker) checkInodes() error {
	for inum := common.ROOTINUM; uint64(inum) <= c.fs.Ninodes; inum++ {
		ip, err := inode.Read(c.img, c.fs, inum)
		if err != nil {
			return err
		}
		c.inodes[inum] = ip
		if err := c.checkType(inum, ip); err != nil {
			return err
		}
		if ip.IsFree() {
			continue
		}
		util.DPrintf(1, "inode %d: type %v size %d nlink %d\n", inum, ip.Type, ip.Size, ip.Nlink)
		if err := c.checkAddrs(inum, ip); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkType(inum common.Inum, ip *inode.Dinode) error {
	if !ip.Type.Valid() && !(ip.Type == common.T_FREE && ip.Size == 0) {
		return inodeViolation(ErrBadInode, inum)
	}
	if inum == common.ROOTINUM && (ip.Size == 0 || ip.Type != common.T_DIR) {
		return inodeViolation(ErrNoRoot, inum)
	}
	return nil
}

// checkAddrs range checks every block ip points to, the indirect block and
// its entries included, and checks that the bitmap marks each one in use.
func (c *Checker) checkAddrs(inum common.Inum, ip *inode.Dinode) error {
	for _, bn := range ip.Direct() {
		if bn == common.NULLBNUM {
			continue
		}
		if !c.fs.ValidData(bn) {
			return blockViolation(ErrBadDirectAddr, inum, bn)
		}
		if err := c.checkMarked(inum, bn, "direct"); err != nil {
			return err
		}
	}
	ind := ip.Indirect()
	if ind == common.NULLBNUM {
		return nil
	}
	if !c.fs.ValidData(ind) {
		return blockViolation(ErrBadIndirectAddr, inum, ind)
	}
	if err := c.checkMarked(inum, ind, "indirect block"); err != nil {
		return err
	}
	bns, err := inode.Expand(c.img, c.fs, ind)
	if err != nil {
		return err
	}
	for _, bn := range bns {
		if bn == common.NULLBNUM {
			continue
		}
		if !c.fs.ValidData(bn) {
			return blockViolation(ErrBadIndirectAddr, inum, bn)
		}
		if err := c.checkMarked(inum, bn, "indirect"); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkMarked(inum common.Inum, bn common.Bnum, kind string) error {
	alloc, err := c.bm.IsAllocated(bn)
	if err != nil {
		return err
	}
	util.DPrintf(2, "Block %d used by inode %d (%s) allocated: %v\n", bn, inum, kind, alloc)
	if !alloc {
		return blockViolation(ErrMarkedFree, inum, bn)
	}
	return nil
}
