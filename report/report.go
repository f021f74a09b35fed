// Package report prints check results and image listings.
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/RobertReece/os-project3-fscheck/common"
	"github.com/RobertReece/os-project3-fscheck/fsck"
	"github.com/RobertReece/os-project3-fscheck/inode"
	"github.com/RobertReece/os-project3-fscheck/super"
)

// Reporter writes diagnostics to w, which is normally stderr, and logs the
// details of each to log.
type Reporter struct {
	w   io.Writer
	log logrus.FieldLogger
}

func New(w io.Writer, log logrus.FieldLogger) *Reporter {
	return &Reporter{w: w, log: log}
}

// Result reports the outcome of a check and returns whether the image is
// consistent. A violation is printed as its one-line diagnostic; any other
// error means the image could not be checked at all.
func (r *Reporter) Result(image string, err error) bool {
	if err == nil {
		r.log.WithField("image", image).Info("file system is consistent")
		return true
	}
	var v *fsck.Violation
	if errors.As(err, &v) {
		fmt.Fprintln(r.w, v.Message())
		r.log.WithFields(v.Fields()).WithField("image", image).Debug(v.Error())
		return false
	}
	fmt.Fprintf(r.w, "ERROR: cannot check image: %v\n", err)
	r.log.WithError(err).WithField("image", image).Error("cannot check image")
	return false
}

func (r *Reporter) Super(fs *super.FsSuper) {
	fmt.Fprintf(r.w, "size %d nblocks %d ninodes %d\n", fs.Size, fs.Nblocks, fs.Ninodes)
	fmt.Fprintf(r.w, "inode blocks %d-%d, bitmap blocks %d-%d, data blocks %d-%d\n",
		fs.InodeStart(), fs.BitmapStart()-1,
		fs.BitmapStart(), fs.NMeta()-1,
		fs.DataStart(), fs.Size-1)
}

func (r *Reporter) Inode(inum common.Inum, ip *inode.Dinode) {
	fmt.Fprintf(r.w, "%4d %-4v nlink %d size %d", inum, ip.Type, ip.Nlink, ip.Size)
	if ip.Type == common.T_DEV {
		fmt.Fprintf(r.w, " dev %d,%d", ip.Major, ip.Minor)
	}
	fmt.Fprintln(r.w)
}

// Entry prints one line of a tree listing.
func (r *Reporter) Entry(e fsck.Entry) {
	fmt.Fprintf(r.w, "%-30s %4d %-4v %d\n", e.Path, e.Dirent.Inum, e.Inode.Type, e.Inode.Size)
}
