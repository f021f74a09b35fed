package addr

import (
	"github.com/RobertReece/os-project3-fscheck/common"
)

// Addr identifies the start of an on-disk object.
//
// Blkno is the block number containing the object, and Off is the location of
// the object within the block (expressed as a bit offset). The size of the
// object is determined by the context in which Addr is used.
type Addr struct {
	Blkno common.Bnum
	Off   uint64 // offset in bits
}

func (a Addr) Flatid() uint64 {
	return uint64(a.Blkno)*common.NBITBLOCK + a.Off
}

// ByteOff is the byte offset of the object within the image. Bit objects
// report the byte holding their bit.
func (a Addr) ByteOff() uint64 {
	return a.Flatid() / 8
}

func MkAddr(blkno common.Bnum, off uint64) Addr {
	return Addr{Blkno: blkno, Off: off}
}

// MkBlockAddr is the address of the first bit of block blkno.
func MkBlockAddr(blkno common.Bnum) Addr {
	return MkAddr(blkno, 0)
}

// MkBitAddr is the address of bit n of a bitmap that starts at block start
// and spans as many blocks as needed.
func MkBitAddr(start common.Bnum, n uint64) Addr {
	bit := n % common.NBITBLOCK
	i := n / common.NBITBLOCK
	addr := MkAddr(start+common.Bnum(i), bit)
	return addr
}
