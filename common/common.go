package common

// On-disk geometry of the checked file system. These are fixed by the
// format version and are never read from the image.
const (
	BSIZE uint64 = 512 // block size in bytes

	NBITBLOCK uint64 = BSIZE * 8 // bits per block, also blocks per bitmap block

	NDIRECT   uint64 = 12
	NINDIRECT uint64 = BSIZE / BNUMSZ
	MAXFILE   uint64 = NDIRECT + NINDIRECT

	BNUMSZ   uint64 = 4  // on-disk size of a block number
	INODESZ  uint64 = 64 // on-disk size of an inode
	INODEBLK uint64 = BSIZE / INODESZ

	DIRSIZ   uint64 = 14
	DIRENTSZ uint64 = 2 + DIRSIZ

	SUPERBLK  uint64 = 1 // block holding the superblock
	INODEBLK0 uint64 = 2 // first inode-table block
)

type Inum uint64
type Bnum = uint64

const (
	NULLINUM Inum = 0
	ROOTINUM Inum = 1
	NULLBNUM Bnum = 0
)

// Itype is the type tag of an on-disk inode.
type Itype uint16

const (
	T_FREE Itype = 0
	T_DIR  Itype = 1
	T_FILE Itype = 2
	T_DEV  Itype = 3
)

func (t Itype) Valid() bool {
	return t == T_DIR || t == T_FILE || t == T_DEV
}

func (t Itype) String() string {
	switch t {
	case T_FREE:
		return "free"
	case T_DIR:
		return "dir"
	case T_FILE:
		return "file"
	case T_DEV:
		return "dev"
	}
	return "unknown"
}
