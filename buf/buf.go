// buf holds sub-block objects (an inode, a directory entry, a bitmap bit, or
// a whole block) loaded from the image.
package buf

import (
	"github.com/tchajed/marshal"

	"github.com/RobertReece/os-project3-fscheck/addr"
	"github.com/RobertReece/os-project3-fscheck/common"
)

// A Buf is a view of a disk object; Data aliases the underlying block
type Buf struct {
	Addr addr.Addr
	Sz   uint64 // number of bits
	Data []byte
}

func MkBuf(addr addr.Addr, sz uint64, data []byte) *Buf {
	b := &Buf{
		Addr: addr,
		Sz:   sz,
		Data: data,
	}
	return b
}

// Load the bits of a disk block into a new buf, as specified by addr
func MkBufLoad(addr addr.Addr, sz uint64, blk []byte) *Buf {
	bytefirst := addr.Off / 8
	bytelast := (addr.Off + sz - 1) / 8
	data := blk[bytefirst : bytelast+1]
	return MkBuf(addr, sz, data)
}

// Bit returns the value of a 1-bit object.
func (buf *Buf) Bit() bool {
	if buf.Sz != 1 {
		panic("Bit: not a bit object")
	}
	bit := buf.Addr.Off % 8
	return buf.Data[0]&(1<<bit) != 0
}

// BnumGet decodes the i-th block number of a block-pointer array.
func (buf *Buf) BnumGet(i uint64) common.Bnum {
	off := i * common.BNUMSZ
	dec := marshal.NewDec(buf.Data[off : off+common.BNUMSZ])
	return common.Bnum(dec.GetInt32())
}

// Bnums decodes the whole buf as a dense array of block numbers.
func (buf *Buf) Bnums() []common.Bnum {
	n := uint64(len(buf.Data)) / common.BNUMSZ
	bns := make([]common.Bnum, n)
	dec := marshal.NewDec(buf.Data)
	for i := range bns {
		bns[i] = common.Bnum(dec.GetInt32())
	}
	return bns
}

// BnumPut encodes v as the i-th block number of a block-pointer array.
func (buf *Buf) BnumPut(i uint64, v common.Bnum) {
	off := i * common.BNUMSZ
	enc := marshal.NewEnc(common.BNUMSZ)
	enc.PutInt32(uint32(v))
	copy(buf.Data[off:off+common.BNUMSZ], enc.Finish())
}
