package fsck

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/RobertReece/os-project3-fscheck/common"
)

// Kinds of structural violation. The text of each is the diagnostic printed
// for it.
var (
	ErrBadInode        = errors.New("bad inode")
	ErrBadDirectAddr   = errors.New("bad direct address in inode")
	ErrBadIndirectAddr = errors.New("bad indirect address in inode")
	ErrNoRoot          = errors.New("root directory does not exist")
	ErrBadDirFormat    = errors.New("directory not properly formatted")
	ErrMarkedFree      = errors.New("address used by inode but marked free in bitmap")
	ErrBitmapNotInUse  = errors.New("bitmap marks block in use but it is not in use")
	ErrDirectDup       = errors.New("direct address used more than once")
	ErrIndirectDup     = errors.New("indirect address used more than once")
	ErrUnreferenced    = errors.New("inode marked use but not found in a directory")
	ErrDirInodeFree    = errors.New("inode referred to in directory but marked free")
	ErrBadRefCount     = errors.New("bad reference count for file")
	ErrDirMultiLinked  = errors.New("directory appears more than once in file system")
	ErrParentMismatch  = errors.New("parent directory mismatch")
)

// Violation is a structural inconsistency found in an image. It wraps one of
// the Err* kinds above.
type Violation struct {
	Err   error
	Inum  common.Inum // offending inode, NULLINUM if none
	Bnum  common.Bnum
	HasBn bool
	Name  string // offending directory entry, if any
}

func (v *Violation) Unwrap() error {
	return v.Err
}

func (v *Violation) Error() string {
	var ctx []string
	if v.Inum != common.NULLINUM {
		ctx = append(ctx, fmt.Sprintf("inode %d", v.Inum))
	}
	if v.HasBn {
		ctx = append(ctx, fmt.Sprintf("block %d", v.Bnum))
	}
	if v.Name != "" {
		ctx = append(ctx, fmt.Sprintf("entry %q", v.Name))
	}
	if len(ctx) == 0 {
		return v.Err.Error()
	}
	return v.Err.Error() + " (" + strings.Join(ctx, ", ") + ")"
}

// Message is the one-line diagnostic for v.
func (v *Violation) Message() string {
	return "ERROR: " + v.Err.Error() + "."
}

func (v *Violation) Fields() logrus.Fields {
	f := logrus.Fields{}
	if v.Inum != common.NULLINUM {
		f["inum"] = v.Inum
	}
	if v.HasBn {
		f["bnum"] = v.Bnum
	}
	if v.Name != "" {
		f["name"] = v.Name
	}
	return f
}

func inodeViolation(err error, inum common.Inum) *Violation {
	return &Violation{Err: err, Inum: inum}
}

func blockViolation(err error, inum common.Inum, bn common.Bnum) *Violation {
	return &Violation{Err: err, Inum: inum, Bnum: bn, HasBn: true}
}

func entryViolation(err error, dir common.Inum, name string) *Violation {
	return &Violation{Err: err, Inum: dir, Name: name}
}

// IsViolation reports whether err is a structural violation rather than an
// error reading the image.
func IsViolation(err error) bool {
	var v *Violation
	return errors.As(err, &v)
}
