package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/RobertReece/os-project3-fscheck/common"
	"github.com/RobertReece/os-project3-fscheck/disk"
	"github.com/RobertReece/os-project3-fscheck/fsck"
	"github.com/RobertReece/os-project3-fscheck/report"
)

// Info implements subcommands.Command for the "info" command.
type Info struct {
	inodes bool
	tree   bool
}

// Name implements subcommands.Command.
func (*Info) Name() string {
	return "info"
}

// Synopsis implements subcommands.Command.
func (*Info) Synopsis() string {
	return "print the geometry, inodes and directory tree of an image"
}

// Usage implements subcommands.Command.
func (*Info) Usage() string {
	return `info [-inodes] [-tree] <image> - print the layout of the image.
`
}

// SetFlags implements subcommands.Command.
func (i *Info) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&i.inodes, "inodes", false, "list every allocated inode.")
	f.BoolVar(&i.tree, "tree", false, "list the directory tree.")
}

// Execute implements subcommands.Command.Execute.
func (i *Info) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)
	r := report.New(os.Stdout, logrus.StandardLogger())

	img, err := disk.Open(name)
	if err != nil {
		r.Result(name, err)
		return subcommands.ExitFailure
	}
	defer img.Close()
	c, err := fsck.MkChecker(img)
	if err != nil {
		r.Result(name, err)
		return subcommands.ExitFailure
	}
	r.Super(c.Super())
	if i.tree {
		c.Observe(r.Entry)
	}
	// The listings need the decoded inode table, so the check runs even
	// when its result is only reported.
	err = c.Check()
	if i.inodes {
		for inum := common.ROOTINUM; inum <= c.Super().NInode(); inum++ {
			if ip := c.Inode(inum); ip != nil && !ip.IsFree() {
				r.Inode(inum, ip)
			}
		}
	}
	if !report.New(os.Stderr, logrus.StandardLogger()).Result(name, err) {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
