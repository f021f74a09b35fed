package fsck

import (
	"github.com/RobertReece/os-project3-fscheck/common"
)

// audit compares link counts and reachability with the counts collected by
// walk.
func (c *Checker) audit() error {
	n := common.Inum(c.fs.Ninodes)
	for inum := common.ROOTINUM; inum <= n; inum++ {
		ip := c.inodes[inum]
		// Unreferenced files are reported as unreachable below.
		if ip.Type == common.T_FILE && c.refs[inum] > 0 && uint64(ip.Nlink) != c.refs[inum] {
			return inodeViolation(ErrBadRefCount, inum)
		}
	}
	for inum := common.ROOTINUM; inum <= n; inum++ {
		if c.inodes[inum].Type != common.T_DIR {
			continue
		}
		// The root is named only by "." and "..".
		limit := uint64(1)
		if inum == common.ROOTINUM {
			limit = 0
		}
		if c.refs[inum] > limit {
			return inodeViolation(ErrDirMultiLinked, inum)
		}
	}
	for inum := common.ROOTINUM + 1; inum <= n; inum++ {
		if c.visited[inum] && c.dotdot[inum] != c.parent[inum] {
			return inodeViolation(ErrParentMismatch, inum)
		}
	}
	for inum := common.ROOTINUM; inum <= n; inum++ {
		if c.inodes[inum].IsFree() {
			continue
		}
		if inum != common.ROOTINUM && c.refs[inum] == 0 {
			return inodeViolation(ErrUnreferenced, inum)
		}
	}
	return nil
}
