package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
	goosedisk "github.com/tchajed/goose/machine/disk"

	"github.com/RobertReece/os-project3-fscheck/common"
	"github.com/RobertReece/os-project3-fscheck/config"
	"github.com/RobertReece/os-project3-fscheck/mkfs"
)

// Mkfs implements subcommands.Command for the "mkfs" command.
type Mkfs struct {
	conf    *config.Config
	size    uint64
	ninodes uint64
}

// Name implements subcommands.Command.
func (*Mkfs) Name() string {
	return "mkfs"
}

// Synopsis implements subcommands.Command.
func (*Mkfs) Synopsis() string {
	return "create a well-formed image holding the given files"
}

// Usage implements subcommands.Command.
func (*Mkfs) Usage() string {
	return `mkfs [-size N] [-ninodes N] <image> [file...] - create an image with the
files in its root directory.
`
}

// SetFlags implements subcommands.Command.
func (m *Mkfs) SetFlags(f *flag.FlagSet) {
	f.Uint64Var(&m.size, "size", 0, "image size in blocks; 0 uses the configured size.")
	f.Uint64Var(&m.ninodes, "ninodes", 0, "number of inodes; 0 uses the configured count.")
}

// Execute implements subcommands.Command.Execute.
func (m *Mkfs) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	size, ninodes := m.conf.Mkfs.Size, m.conf.Mkfs.Ninodes
	if m.size != 0 {
		size = m.size
	}
	if m.ninodes != 0 {
		ninodes = m.ninodes
	}
	if err := makeImage(f.Arg(0), size, ninodes, f.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "mkfs: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func makeImage(name string, size, ninodes uint64, files []string) error {
	fs, err := mkfs.MkFs(size, ninodes)
	if err != nil {
		return err
	}
	for _, p := range files {
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		inum, err := fs.Create(common.ROOTINUM, filepath.Base(p), data)
		if err != nil {
			return fmt.Errorf("add %s: %w", p, err)
		}
		logrus.WithFields(logrus.Fields{"file": p, "inum": inum, "size": len(data)}).Debug("added file")
	}
	logrus.WithFields(logrus.Fields{"image": name, "free": fs.NumFree()}).Info("created image")
	d, err := goosedisk.NewFileDisk(name, fs.NDiskBlocks())
	if err != nil {
		return err
	}
	defer d.Close()
	return fs.WriteTo(d)
}
