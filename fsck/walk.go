package fsck

import (
	"strings"

	"github.com/RobertReece/os-project3-fscheck/addr"
	"github.com/RobertReece/os-project3-fscheck/common"
	"github.com/RobertReece/os-project3-fscheck/dir"
	"github.com/RobertReece/os-project3-fscheck/inode"
	"github.com/RobertReece/os-project3-fscheck/util"
)

// walk traverses the directory tree depth-first from the root, counting the
// entries that name each inode. A directory is entered at most once, so the
// walk terminates on cyclic directory graphs.
func (c *Checker) walk() error {
	c.visited[common.ROOTINUM] = true
	c.parent[common.ROOTINUM] = common.ROOTINUM
	return c.walkDir(common.ROOTINUM, "/")
}

// entries returns the directory entries of ip within its first ip.Size
// bytes. Bytes past the size in the last block are never read. Slots of
// unassigned blocks are skipped.
func (c *Checker) entries(ip *inode.Dinode) ([]dir.Dirent, error) {
	bns, err := inode.Blocks(c.img, c.fs, ip)
	if err != nil {
		return nil, err
	}
	size := util.Min(ip.Size, uint64(len(bns))*common.BSIZE)
	var des []dir.Dirent
	for off := uint64(0); off+common.DIRENTSZ <= size; off += common.DIRENTSZ {
		bn := bns[off/common.BSIZE]
		if bn == common.NULLBNUM {
			continue
		}
		b, err := c.img.Load(addr.MkAddr(bn, (off%common.BSIZE)*8), common.DIRENTSZ*8)
		if err != nil {
			return nil, err
		}
		des = append(des, dir.Decode(b.Data))
	}
	return des, nil
}

// entryPath names an entry of the directory at p without cleaning, so "."
// and ".." keep their names.
func entryPath(p, name string) string {
	return strings.TrimSuffix(p, "/") + "/" + name
}

func (c *Checker) walkDir(dinum common.Inum, p string) error {
	des, err := c.entries(c.inodes[dinum])
	if err != nil {
		return err
	}
	var foundSelf, foundParent bool
	for _, de := range des {
		if de.IsEmpty() {
			continue
		}
		name := de.NameString()
		util.DPrintf(2, "dir %d: inum %d, name %s\n", dinum, de.Inum, name)
		if uint64(de.Inum) > c.fs.Ninodes || c.inodes[de.Inum].IsFree() {
			return entryViolation(ErrDirInodeFree, dinum, name)
		}
		ip := c.inodes[de.Inum]
		if c.observe != nil {
			c.observe(Entry{Path: entryPath(p, name), Dir: dinum, Dirent: de, Inode: ip})
		}

		switch {
		case de.IsDot():
			if foundSelf || de.Inum != dinum {
				return entryViolation(ErrBadDirFormat, dinum, name)
			}
			foundSelf = true
		case de.IsDotDot():
			if foundParent {
				return entryViolation(ErrBadDirFormat, dinum, name)
			}
			if dinum == common.ROOTINUM && de.Inum != common.ROOTINUM {
				return entryViolation(ErrNoRoot, dinum, name)
			}
			foundParent = true
			c.dotdot[dinum] = de.Inum
		default:
			c.refs[de.Inum]++
			if ip.Type != common.T_DIR || c.visited[de.Inum] {
				continue
			}
			c.visited[de.Inum] = true
			c.parent[de.Inum] = dinum
			util.DPrintf(1, "recursively checking directory %s\n", entryPath(p, name))
			if err := c.walkDir(de.Inum, entryPath(p, name)); err != nil {
				return err
			}
		}
	}
	if !foundSelf || !foundParent {
		return inodeViolation(ErrBadDirFormat, dinum)
	}
	return nil
}
