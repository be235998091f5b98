package main

import (
	"io"

	"github.com/urfave/cli/v3"

	"github.com/koustreak/graphix/internal/config"
	"github.com/koustreak/graphix/internal/logger"
)

const envFileFlag = "env-file"

// newApp builds the command tree. Command output goes to stdout, logs to
// stderr.
func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "graphix",
		Usage:     "Generate Atlas schema documents from record declarations",
		Writer:    stdout,
		ErrWriter: stderr,
		Commands: []*cli.Command{
			generateCommand(stdout, stderr),
			fetchCommand(stdout, stderr),
			typesCommand(stdout),
			serveCommand(stderr),
		},
	}
}

func envFile() cli.Flag {
	return &cli.StringFlag{
		Name:  envFileFlag,
		Usage: "load GRAPHIX_* variables from this file when it exists",
		Value: ".env",
	}
}

// setup loads configuration and installs the process logger.
func setup(cmd *cli.Command, stderr io.Writer) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(cmd.String(envFileFlag))
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(cfg.Log.Logger(stderr))
	logger.SetGlobal(log)
	return cfg, log, nil
}
