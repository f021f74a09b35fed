package inode

import (
	"fmt"

	"github.com/RobertReece/os-project3-fscheck/common"
	"github.com/RobertReece/os-project3-fscheck/disk"
	"github.com/RobertReece/os-project3-fscheck/super"
)

// Expand returns the NINDIRECT block numbers stored in indirect block bn,
// verbatim and in order; zero entries are unassigned slots. The caller must
// have range checked bn.
func Expand(img *disk.Image, fs *super.FsSuper, bn common.Bnum) ([]common.Bnum, error) {
	b, err := img.Load(fs.Block2Addr(bn), common.NBITBLOCK)
	if err != nil {
		return nil, fmt.Errorf("read indirect block %d: %w", bn, err)
	}
	return b.Bnums(), nil
}

// Blocks returns the file's block list: the direct slots followed by the
// expanded indirect slots (if any), zeros included, so that index i holds
// the i-th block of the file.
func Blocks(img *disk.Image, fs *super.FsSuper, ip *Dinode) ([]common.Bnum, error) {
	bns := make([]common.Bnum, 0, common.MAXFILE)
	bns = append(bns, ip.Direct()...)
	if ip.Indirect() == common.NULLBNUM {
		return bns, nil
	}
	ind, err := Expand(img, fs, ip.Indirect())
	if err != nil {
		return nil, err
	}
	return append(bns, ind...), nil
}
