package disk

import (
	"fmt"
	"os"

	goosedisk "github.com/tchajed/goose/machine/disk"
	"golang.org/x/sys/unix"
)

// Open maps the image file at path read-only. The file is never written.
func Open(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if stat.Size() == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyImage)
	}
	b, err := unix.Mmap(int(f.Fd()), 0, int(stat.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	img := &Image{
		bytes:   b,
		release: func() error { return unix.Munmap(b) },
	}
	return img, nil
}

// FromDisk copies the contents of a block device into an image.
func FromDisk(d goosedisk.Disk) (*Image, error) {
	n := d.Size()
	b := make([]byte, 0, n*goosedisk.BlockSize)
	for a := uint64(0); a < n; a++ {
		b = append(b, d.Read(a)...)
	}
	return FromBytes(b)
}
