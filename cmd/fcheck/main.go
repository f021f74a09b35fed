// Binary fcheck checks the consistency of xv6 file system images.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/RobertReece/os-project3-fscheck/config"
	"github.com/RobertReece/os-project3-fscheck/util"
)

var (
	configPath = flag.String("config", "", "path to a TOML configuration file.")
	logLevel   = flag.String("log-level", "", "log level: debug, info, warn or error.")
	debug      = flag.Int("debug", -1, "trace level for the checker; overrides the configuration if not negative.")
)

// loadConfig builds the configuration from the file, the environment and the
// global flags, and applies its logging settings.
func loadConfig() (*config.Config, error) {
	conf, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	if *logLevel != "" {
		conf.LogLevel = *logLevel
	}
	if *debug >= 0 {
		conf.Debug = uint64(*debug)
	}
	lvl, err := conf.Level()
	if err != nil {
		return nil, err
	}
	logrus.SetLevel(lvl)
	if conf.Debug > 0 && lvl < logrus.DebugLevel {
		logrus.SetLevel(logrus.DebugLevel)
	}
	util.SetDebug(conf.Debug)
	return conf, nil
}

func main() {
	logrus.SetOutput(os.Stderr)

	conf := config.Default()
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&Check{}, "")
	subcommands.Register(&Info{}, "")
	subcommands.Register(&Mkfs{conf: conf}, "")

	flag.Parse()

	c, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fcheck: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}
	*conf = *c

	os.Exit(int(subcommands.Execute(context.Background())))
}
