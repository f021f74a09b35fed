package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/RobertReece/os-project3-fscheck/disk"
	"github.com/RobertReece/os-project3-fscheck/fsck"
	"github.com/RobertReece/os-project3-fscheck/report"
)

// Check implements subcommands.Command for the "check" command.
type Check struct{}

// Name implements subcommands.Command.
func (*Check) Name() string {
	return "check"
}

// Synopsis implements subcommands.Command.
func (*Check) Synopsis() string {
	return "check the consistency of a file system image"
}

// Usage implements subcommands.Command.
func (*Check) Usage() string {
	return `check <image> - check the image and print the first inconsistency found.
`
}

// SetFlags implements subcommands.Command.
func (*Check) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (*Check) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)
	r := report.New(os.Stderr, logrus.StandardLogger())
	if !r.Result(name, checkImage(name)) {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func checkImage(name string) error {
	img, err := disk.Open(name)
	if err != nil {
		return err
	}
	defer img.Close()
	return fsck.Check(img)
}
