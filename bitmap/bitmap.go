// Package bitmap answers whether a block is marked allocated in the block
// allocation bitmap.
package bitmap

import (
	"fmt"

	"github.com/RobertReece/os-project3-fscheck/common"
	"github.com/RobertReece/os-project3-fscheck/disk"
	"github.com/RobertReece/os-project3-fscheck/super"
)

type Bitmap struct {
	img *disk.Image
	fs  *super.FsSuper
}

func MkBitmap(img *disk.Image, fs *super.FsSuper) *Bitmap {
	return &Bitmap{img: img, fs: fs}
}

// IsAllocated reads the bit for block bn, which must be in [0, size).
func (bm *Bitmap) IsAllocated(bn common.Bnum) (bool, error) {
	if bn >= bm.fs.Size {
		return false, fmt.Errorf("bitmap lookup of block %d beyond size %d: %w",
			bn, bm.fs.Size, disk.ErrOutOfRange)
	}
	b, err := bm.img.Load(bm.fs.Bit2Addr(bn), 1)
	if err != nil {
		return false, err
	}
	return b.Bit(), nil
}
