package addr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RobertReece/os-project3-fscheck/common"
)

func TestByteOff(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint64(0), MkBlockAddr(0).ByteOff())
	assert.Equal(common.BSIZE, MkBlockAddr(1).ByteOff())
	assert.Equal(2*common.BSIZE+64, MkAddr(2, 64*8).ByteOff())
}

func TestMkBitAddr(t *testing.T) {
	assert := assert.New(t)
	a := MkBitAddr(28, 0)
	assert.Equal(Addr{Blkno: 28, Off: 0}, a)

	a = MkBitAddr(28, 13)
	assert.Equal(common.Bnum(28), a.Blkno)
	assert.Equal(uint64(13), a.Off)
	assert.Equal(28*common.BSIZE+1, a.ByteOff(), "bit 13 is in byte 1")

	a = MkBitAddr(28, common.NBITBLOCK+9)
	assert.Equal(common.Bnum(29), a.Blkno, "spills into next bitmap block")
	assert.Equal(uint64(9), a.Off)
}
