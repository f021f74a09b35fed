package disk

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/RobertReece/os-project3-fscheck/addr"
	"github.com/RobertReece/os-project3-fscheck/buf"
	"github.com/RobertReece/os-project3-fscheck/common"
	"github.com/RobertReece/os-project3-fscheck/util"
)

var (
	ErrOutOfRange = errors.New("access outside of image")
	ErrEmptyImage = errors.New("empty image")
)

// Image is a fixed-length, read-only file system image. Every access is
// bounds checked against the length of the image.
type Image struct {
	bytes   []byte
	release func() error
}

// FromBytes wraps b as an image. The caller must not modify b while the
// image is in use.
func FromBytes(b []byte) (*Image, error) {
	if len(b) == 0 {
		return nil, ErrEmptyImage
	}
	return &Image{bytes: b}, nil
}

// Len is the size of the image in bytes.
func (img *Image) Len() uint64 {
	return uint64(len(img.bytes))
}

// NBlocks is the number of whole blocks in the image.
func (img *Image) NBlocks() uint64 {
	return img.Len() / common.BSIZE
}

// Close releases the image. It is a no-op for in-memory images.
func (img *Image) Close() error {
	if img.release == nil {
		return nil
	}
	err := img.release()
	img.release = nil
	img.bytes = nil
	return err
}

// checkRange checks whether the range [off, off+n) is valid.
func (img *Image) checkRange(off, n uint64) bool {
	size := img.Len()
	if util.SumOverflows(off, n) {
		return false
	}
	end := off + n
	return off < size && end <= size
}

// BytesAt returns the bytes at [off, off+n) of the image.
func (img *Image) BytesAt(off, n uint64) ([]byte, error) {
	if !img.checkRange(off, n) {
		logrus.WithFields(logrus.Fields{
			"off":  off,
			"n":    n,
			"size": img.Len(),
		}).Warn("invalid byte range for image")
		return nil, fmt.Errorf("read [%d, %d): %w", off, off+n, ErrOutOfRange)
	}
	return img.bytes[off : off+n], nil
}

// Block returns the contents of block bn.
func (img *Image) Block(bn common.Bnum) ([]byte, error) {
	return img.BytesAt(bn*common.BSIZE, common.BSIZE)
}

// Load reads the sz-bit object at a into a buf.
func (img *Image) Load(a addr.Addr, sz uint64) (*buf.Buf, error) {
	blk, err := img.Block(a.Blkno)
	if err != nil {
		return nil, err
	}
	if a.Off+sz > common.NBITBLOCK {
		return nil, fmt.Errorf("object at %v spans blocks: %w", a, ErrOutOfRange)
	}
	util.DPrintf(20, "Load: %v sz %d\n", a, sz)
	return buf.MkBufLoad(a, sz, blk), nil
}
