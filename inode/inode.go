package inode

import (
	"fmt"

	"github.com/tchajed/marshal"

	"github.com/RobertReece/os-project3-fscheck/common"
	"github.com/RobertReece/os-project3-fscheck/disk"
	"github.com/RobertReece/os-project3-fscheck/super"
)

// Dinode is the on-disk inode record.
type Dinode struct {
	Type  common.Itype
	Major uint16
	Minor uint16
	Nlink uint16
	Size  uint64
	Addrs [common.NDIRECT + 1]common.Bnum
}

// Indirect is the indirect block number, NULLBNUM if unassigned.
func (ip *Dinode) Indirect() common.Bnum {
	return ip.Addrs[common.NDIRECT]
}

func (ip *Dinode) Direct() []common.Bnum {
	return ip.Addrs[:common.NDIRECT]
}

func (ip *Dinode) IsFree() bool {
	return ip.Type == common.T_FREE
}

// The four 16-bit header fields are packed in pairs into two 32-bit words.
func (ip *Dinode) Encode() []byte {
	enc := marshal.NewEnc(common.INODESZ)
	enc.PutInt32(uint32(ip.Type) | uint32(ip.Major)<<16)
	enc.PutInt32(uint32(ip.Minor) | uint32(ip.Nlink)<<16)
	enc.PutInt32(uint32(ip.Size))
	for _, a := range ip.Addrs {
		enc.PutInt32(uint32(a))
	}
	return enc.Finish()
}

func Decode(b []byte) *Dinode {
	ip := &Dinode{}
	dec := marshal.NewDec(b)
	w := dec.GetInt32()
	ip.Type = common.Itype(w)
	ip.Major = uint16(w >> 16)
	w = dec.GetInt32()
	ip.Minor = uint16(w)
	ip.Nlink = uint16(w >> 16)
	ip.Size = uint64(dec.GetInt32())
	for i := range ip.Addrs {
		ip.Addrs[i] = common.Bnum(dec.GetInt32())
	}
	return ip
}

// Read loads inode inum from the inode table.
func Read(img *disk.Image, fs *super.FsSuper, inum common.Inum) (*Dinode, error) {
	b, err := img.Load(fs.Inum2Addr(inum), common.INODESZ*8)
	if err != nil {
		return nil, fmt.Errorf("read inode %d: %w", inum, err)
	}
	return Decode(b.Data), nil
}
